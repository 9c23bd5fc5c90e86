package handlers

import (
	"testing"

	"sanitrack/internal/app"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// The kiosks and the cleaner app in the field were shipped against the
// verb-style paths; renaming a route server-side strands those clients on 404.
func TestFieldClientPathsAreRouted(t *testing.T) {
	fiberApp := fiber.New()
	api := fiberApp.Group("/api")

	var a app.App
	NewRatingHandler(a, api).Register()
	NewCleaningHandler(a, api).Register()

	routed := make(map[string]bool)
	for _, route := range fiberApp.GetRoutes() {
		routed[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"POST /api/rating",
		"GET /api/toilet/:id/ratings/paginated",
		"POST /api/cleaning/start",
		"PUT /api/cleaning/begin/:id",
		"PUT /api/cleaning/complete/:id",
		"GET /api/cleaning/tasks",
		"POST /api/ratings",
	} {
		assert.True(t, routed[want], "missing route %s", want)
	}
}
