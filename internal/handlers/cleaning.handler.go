package handlers

import (
	"context"
	"errors"

	"sanitrack/internal/app"
	cleaningController "sanitrack/internal/controllers/cleaning"
	"sanitrack/internal/handlers/middleware"
	"sanitrack/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type CleaningHandler struct {
	Handler
	cleaningController cleaningController.CleaningControllerInterface
}

func NewCleaningHandler(app app.App, router fiber.Router) *CleaningHandler {
	return &CleaningHandler{
		cleaningController: app.Controllers.Cleaning,
		Handler: Handler{
			log:        logger.New("handlers").File("cleaning_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *CleaningHandler) Register() {
	tasks := h.router.Group("/tasks", h.middleware.RequireAuth())

	tasks.Get("/", h.getTasks)
	tasks.Post("/", h.startTask)
	tasks.Put("/:id/begin", h.beginTask)
	tasks.Put("/:id/complete", h.completeTask)

	// The cleaner app in the field still calls the verb-style paths.
	cleaning := h.router.Group("/cleaning", h.middleware.RequireAuth())

	cleaning.Get("/tasks", h.getTasks)
	cleaning.Post("/start", h.startTask)
	cleaning.Put("/begin/:id", h.beginTask)
	cleaning.Put("/complete/:id", h.completeTask)
}

func (h *CleaningHandler) startTask(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("startTask")

	user := middleware.GetUser(c)

	var request cleaningController.StartTaskRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Invalid request body")
	}

	task, err := h.cleaningController.Start(c.UserContext(), user, &request)
	if err != nil {
		switch {
		case errors.Is(err, cleaningController.ErrNotFound):
			return fail(c, fiber.StatusNotFound, "Toilet not found")
		case errors.Is(err, cleaningController.ErrConflict):
			return fail(c, fiber.StatusConflict, "Toilet already has an active cleaning task")
		default:
			log.Er("failed to start task", err, "toiletID", request.ToiletID)
			return internalError(c)
		}
	}

	return created(c, "Cleaning task created", task)
}

func (h *CleaningHandler) beginTask(c *fiber.Ctx) error {
	return h.transition(c, "begin", h.cleaningController.Begin)
}

func (h *CleaningHandler) completeTask(c *fiber.Ctx) error {
	return h.transition(c, "complete", h.cleaningController.Complete)
}

func (h *CleaningHandler) transition(
	c *fiber.Ctx,
	action string,
	transition func(ctx context.Context, user *models.User, taskID int) (*models.CleaningTask, error),
) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("transition")

	user := middleware.GetUser(c)

	taskID, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid task id")
	}

	task, err := transition(c.UserContext(), user, taskID)
	if err != nil {
		switch {
		case errors.Is(err, cleaningController.ErrNotFound):
			return fail(c, fiber.StatusNotFound, "Task not found")
		case errors.Is(err, cleaningController.ErrForbidden):
			return fail(c, fiber.StatusForbidden, "Task is assigned to another cleaner")
		case errors.Is(err, cleaningController.ErrInvalidState):
			return fail(c, fiber.StatusUnprocessableEntity,
				"Task state does not permit this transition")
		default:
			log.Er("failed to transition task", err, "taskID", taskID, "action", action)
			return internalError(c)
		}
	}

	return ok(c, "Task updated", task)
}

func (h *CleaningHandler) getTasks(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getTasks")

	request := cleaningController.ListTasksRequest{
		Status:   models.TaskStatus(c.Query("status")),
		ToiletID: c.QueryInt("toilet_id", 0),
	}

	tasks, err := h.cleaningController.List(c.UserContext(), &request)
	if err != nil {
		if errors.Is(err, cleaningController.ErrInvalidState) {
			return badRequest(c, "Invalid status filter")
		}
		log.Er("failed to list tasks", err)
		return internalError(c)
	}

	return ok(c, "Tasks retrieved", tasks)
}
