package usecase

import (
	"library-seating/internal/data/repository"
	"library-seating/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Seat     SeatService
	Notifier *Notifier
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Seat:     NewSeatService(repo, config, log),
		Notifier: NewNotifier(config.Sweeper.NotifyBuffer, log),
	}
}
