package controllers

import (
	"sanitrack/config"
	"sanitrack/internal/database"
	"sanitrack/internal/events"
	"sanitrack/internal/repositories"
	"sanitrack/internal/services"

	authController "sanitrack/internal/controllers/auth"
	cleaningController "sanitrack/internal/controllers/cleaning"
	ratingController "sanitrack/internal/controllers/ratings"
	statsController "sanitrack/internal/controllers/stats"
	statusController "sanitrack/internal/controllers/status"
	toiletController "sanitrack/internal/controllers/toilets"
	userController "sanitrack/internal/controllers/users"
)

type Controllers struct {
	Auth     authController.AuthControllerInterface
	Toilet   toiletController.ToiletControllerInterface
	Rating   ratingController.RatingControllerInterface
	Cleaning cleaningController.CleaningControllerInterface
	Status   statusController.StatusControllerInterface
	User     userController.UserControllerInterface
	Stats    statsController.StatsControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	eventBus *events.EventBus,
	config config.Config,
	db database.DB,
) Controllers {
	return Controllers{
		Auth:     authController.New(repos, services.Token, config),
		Toilet:   toiletController.New(repos, config),
		Rating:   ratingController.New(repos, eventBus, config),
		Cleaning: cleaningController.New(repos, eventBus, config),
		Status:   statusController.New(db, repos, config),
		User:     userController.New(repos, config),
		Stats:    statsController.New(repos, config),
	}
}
