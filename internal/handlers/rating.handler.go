package handlers

import (
	"errors"

	"sanitrack/internal/app"
	ratingController "sanitrack/internal/controllers/ratings"
	"sanitrack/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type RatingHandler struct {
	Handler
	ratingController ratingController.RatingControllerInterface
}

func NewRatingHandler(app app.App, router fiber.Router) *RatingHandler {
	return &RatingHandler{
		ratingController: app.Controllers.Rating,
		Handler: Handler{
			log:        logger.New("handlers").File("rating_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *RatingHandler) Register() {
	// Submission is anonymous: the kiosk next to the door has no login.
	h.router.Post("/ratings", h.submitRating)
	h.router.Get("/toilets/:id/ratings", h.getToiletRatings)

	// Deployed kiosks and panels were built against these paths.
	h.router.Post("/rating", h.submitRating)
	h.router.Get("/toilet/:id/ratings/paginated", h.getToiletRatings)

	protected := h.router.Group("/ratings", h.middleware.RequireAuth())
	protected.Get("/", h.getRatings)
	protected.Get("/:id", h.getRating)
}

func (h *RatingHandler) submitRating(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("submitRating")

	var request ratingController.SubmitRatingRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Invalid request body")
	}

	rating, err := h.ratingController.Submit(c.UserContext(), &request)
	if err != nil {
		switch {
		case errors.Is(err, ratingController.ErrValidation):
			return badRequest(c, err.Error())
		case errors.Is(err, ratingController.ErrNotFound):
			return fail(c, fiber.StatusNotFound, "Toilet not found")
		default:
			log.Er("failed to submit rating", err)
			return internalError(c)
		}
	}

	return created(c, "Rating submitted", rating)
}

// getToiletRatings pages a toilet's rating history, newest first. Query
// params: page (1-based) and limit.
func (h *RatingHandler) getToiletRatings(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getToiletRatings")

	toiletID, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid toilet id")
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", ratingController.DefaultPageLimit)

	ratings, err := h.ratingController.GetPageByToilet(c.UserContext(), toiletID, page, limit)
	if err != nil {
		if errors.Is(err, ratingController.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "Toilet not found")
		}
		log.Er("failed to page ratings", err, "toiletID", toiletID)
		return internalError(c)
	}

	return ok(c, "Ratings retrieved", ratings)
}

func (h *RatingHandler) getRatings(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getRatings")

	var ratings []models.Rating
	var err error

	if toiletID := c.QueryInt("toilet_id", 0); toiletID > 0 {
		ratings, err = h.ratingController.GetByToilet(c.UserContext(), toiletID)
	} else {
		ratings, err = h.ratingController.GetAll(c.UserContext())
	}
	if err != nil {
		if errors.Is(err, ratingController.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "Toilet not found")
		}
		log.Er("failed to list ratings", err)
		return internalError(c)
	}

	return ok(c, "Ratings retrieved", ratings)
}

func (h *RatingHandler) getRating(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getRating")

	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid rating id")
	}

	rating, err := h.ratingController.GetByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, ratingController.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "Rating not found")
		}
		log.Er("failed to get rating", err, "ratingID", id)
		return internalError(c)
	}

	return ok(c, "Rating retrieved", rating)
}
