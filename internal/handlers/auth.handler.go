package handlers

import (
	"errors"

	"sanitrack/internal/app"
	authController "sanitrack/internal/controllers/auth"
	"sanitrack/internal/handlers/middleware"
	"sanitrack/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	authController authController.AuthControllerInterface
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	return &AuthHandler{
		authController: app.Controllers.Auth,
		Handler: Handler{
			log:        logger.New("handlers").File("auth_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AuthHandler) Register() {
	auth := h.router.Group("/auth")

	auth.Post("/login", h.login)
	auth.Get("/me", h.middleware.RequireAuth(), h.me)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("login")

	var request models.LoginRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if request.Username == "" || request.Password == "" {
		return badRequest(c, "Username and password are required")
	}

	response, err := h.authController.Login(c.UserContext(), &request)
	if err != nil {
		if errors.Is(err, authController.ErrInvalidCredentials) {
			return fail(c, fiber.StatusUnauthorized, "Invalid username or password")
		}
		log.Er("login failed", err)
		return internalError(c)
	}

	return ok(c, "Login successful", response)
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return fail(c, fiber.StatusUnauthorized, "Authentication required")
	}

	return ok(c, "Current user", user)
}
