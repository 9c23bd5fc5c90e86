package repositories

import (
	"sanitrack/internal/database"
)

type Repository struct {
	User   UserRepository
	Toilet ToiletRepository
	Rating RatingRepository
	Task   CleaningTaskRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:   NewUserRepository(db),
		Toilet: NewToiletRepository(db),
		Rating: NewRatingRepository(db),
		Task:   NewCleaningTaskRepository(db),
	}
}
