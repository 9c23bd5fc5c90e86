package handlers

import (
	"errors"

	"sanitrack/internal/app"
	statusController "sanitrack/internal/controllers/status"
	toiletController "sanitrack/internal/controllers/toilets"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

// ToiletHandler serves the public read surface: the toilet list and the
// derived status views the hallway panels poll.
type ToiletHandler struct {
	Handler
	toiletController toiletController.ToiletControllerInterface
	statusController statusController.StatusControllerInterface
}

func NewToiletHandler(app app.App, router fiber.Router) *ToiletHandler {
	return &ToiletHandler{
		toiletController: app.Controllers.Toilet,
		statusController: app.Controllers.Status,
		Handler: Handler{
			log:        logger.New("handlers").File("toilet_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ToiletHandler) Register() {
	toilets := h.router.Group("/toilets")

	toilets.Get("/", h.getToilets)
	toilets.Get("/status", h.getAllStatuses)
	toilets.Get("/:id", h.getToilet)
	toilets.Get("/:id/status", h.getStatus)
}

func (h *ToiletHandler) getToilets(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getToilets")

	toilets, err := h.toiletController.GetActive(c.UserContext())
	if err != nil {
		log.Er("failed to list toilets", err)
		return internalError(c)
	}

	return ok(c, "Toilets retrieved", toilets)
}

func (h *ToiletHandler) getToilet(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getToilet")

	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid toilet id")
	}

	toilet, err := h.toiletController.GetByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, toiletController.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "Toilet not found")
		}
		log.Er("failed to get toilet", err, "toiletID", id)
		return internalError(c)
	}

	return ok(c, "Toilet retrieved", toilet)
}

func (h *ToiletHandler) getAllStatuses(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getAllStatuses")

	statuses, err := h.statusController.GetAllStatuses(c.UserContext())
	if err != nil {
		log.Er("failed to get statuses", err)
		return internalError(c)
	}

	return ok(c, "Statuses retrieved", statuses)
}

func (h *ToiletHandler) getStatus(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getStatus")

	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid toilet id")
	}

	status, err := h.statusController.GetStatus(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, statusController.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "Toilet not found")
		}
		log.Er("failed to get status", err, "toiletID", id)
		return internalError(c)
	}

	return ok(c, "Status retrieved", status)
}
