package handlers

import (
	"errors"

	"sanitrack/internal/app"
	statsController "sanitrack/internal/controllers/stats"
	toiletController "sanitrack/internal/controllers/toilets"
	userController "sanitrack/internal/controllers/users"
	"sanitrack/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdminHandler groups everything behind the administrator role: staff
// accounts, toilet management, and the dashboard aggregates.
type AdminHandler struct {
	Handler
	userController   userController.UserControllerInterface
	toiletController toiletController.ToiletControllerInterface
	statsController  statsController.StatsControllerInterface
}

func NewAdminHandler(app app.App, router fiber.Router) *AdminHandler {
	return &AdminHandler{
		userController:   app.Controllers.User,
		toiletController: app.Controllers.Toilet,
		statsController:  app.Controllers.Stats,
		Handler: Handler{
			log:        logger.New("handlers").File("admin_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AdminHandler) Register() {
	admin := h.router.Group("/admin", h.middleware.RequireAuth(), h.middleware.RequireAdmin())

	admin.Get("/stats", h.getSystemStats)
	admin.Get("/stats/cleaners", h.getCleanerStats)

	admin.Get("/users", h.getUsers)
	admin.Get("/cleaners", h.getCleaners)
	admin.Post("/users", h.createUser)
	admin.Put("/users/:id", h.updateUser)
	admin.Delete("/users/:id", h.deleteUser)

	admin.Post("/toilets", h.createToilet)
	admin.Put("/toilets/:id", h.updateToilet)
}

func (h *AdminHandler) getSystemStats(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getSystemStats")

	stats, err := h.statsController.GetSystemStats(c.UserContext())
	if err != nil {
		log.Er("failed to get system stats", err)
		return internalError(c)
	}

	return ok(c, "Statistics retrieved", stats)
}

func (h *AdminHandler) getCleanerStats(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getCleanerStats")

	stats, err := h.statsController.GetCleanerStats(c.UserContext())
	if err != nil {
		log.Er("failed to get cleaner stats", err)
		return internalError(c)
	}

	return ok(c, "Statistics retrieved", stats)
}

func (h *AdminHandler) getUsers(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getUsers")

	users, err := h.userController.GetAll(c.UserContext())
	if err != nil {
		log.Er("failed to list users", err)
		return internalError(c)
	}

	return ok(c, "Users retrieved", users)
}

func (h *AdminHandler) getCleaners(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getCleaners")

	cleaners, err := h.userController.GetCleaners(c.UserContext())
	if err != nil {
		log.Er("failed to list cleaners", err)
		return internalError(c)
	}

	return ok(c, "Cleaners retrieved", cleaners)
}

func (h *AdminHandler) createUser(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("createUser")

	var request models.CreateUserRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.userController.Create(c.UserContext(), &request)
	if err != nil {
		switch {
		case errors.Is(err, userController.ErrValidation):
			return badRequest(c, err.Error())
		case errors.Is(err, userController.ErrConflict):
			return fail(c, fiber.StatusConflict, "Username already exists")
		default:
			log.Er("failed to create user", err)
			return internalError(c)
		}
	}

	return created(c, "User created", user)
}

func (h *AdminHandler) updateUser(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("updateUser")

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	var request models.UpdateUserRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.userController.Update(c.UserContext(), id, &request)
	if err != nil {
		switch {
		case errors.Is(err, userController.ErrValidation):
			return badRequest(c, err.Error())
		case errors.Is(err, userController.ErrNotFound):
			return fail(c, fiber.StatusNotFound, "User not found")
		case errors.Is(err, userController.ErrConflict):
			return fail(c, fiber.StatusConflict, "Username already exists")
		default:
			log.Er("failed to update user", err, "userID", id)
			return internalError(c)
		}
	}

	return ok(c, "User updated", user)
}

func (h *AdminHandler) deleteUser(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("deleteUser")

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	if err := h.userController.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, userController.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "User not found")
		}
		log.Er("failed to delete user", err, "userID", id)
		return internalError(c)
	}

	return ok(c, "User deleted", nil)
}

func (h *AdminHandler) createToilet(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("createToilet")

	var request toiletController.CreateToiletRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Invalid request body")
	}

	toilet, err := h.toiletController.Create(c.UserContext(), &request)
	if err != nil {
		if errors.Is(err, toiletController.ErrValidation) {
			return badRequest(c, err.Error())
		}
		log.Er("failed to create toilet", err)
		return internalError(c)
	}

	return created(c, "Toilet created", toilet)
}

func (h *AdminHandler) updateToilet(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("updateToilet")

	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid toilet id")
	}

	var request toiletController.UpdateToiletRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Invalid request body")
	}

	toilet, err := h.toiletController.Update(c.UserContext(), id, &request)
	if err != nil {
		if errors.Is(err, toiletController.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "Toilet not found")
		}
		log.Er("failed to update toilet", err, "toiletID", id)
		return internalError(c)
	}

	return ok(c, "Toilet updated", toilet)
}
