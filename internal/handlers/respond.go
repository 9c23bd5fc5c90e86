package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// Every endpoint answers with the same envelope so panels and the admin UI
// share one response parser.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(envelope{
		Success: status < fiber.StatusBadRequest,
		Message: message,
		Data:    data,
	})
}

func ok(c *fiber.Ctx, message string, data any) error {
	return respond(c, fiber.StatusOK, message, data)
}

func created(c *fiber.Ctx, message string, data any) error {
	return respond(c, fiber.StatusCreated, message, data)
}

func fail(c *fiber.Ctx, status int, message string) error {
	return respond(c, status, message, nil)
}

func badRequest(c *fiber.Ctx, message string) error {
	return fail(c, fiber.StatusBadRequest, message)
}

func internalError(c *fiber.Ctx) error {
	return fail(c, fiber.StatusInternalServerError, "Internal server error")
}
