package services

import (
	"sanitrack/config"
	"sanitrack/internal/database"
)

type Service struct {
	Token       *TokenService
	Transaction *TransactionService
	Scheduler   *SchedulerService
}

func New(db database.DB, config config.Config) (Service, error) {
	tokenService, err := NewTokenService(config)
	if err != nil {
		return Service{}, err
	}

	return Service{
		Token:       tokenService,
		Transaction: NewTransactionService(db),
		Scheduler:   NewSchedulerService(),
	}, nil
}
