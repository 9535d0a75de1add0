package adaptor

import (
	"library-seating/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Seat         *SeatHandler
	Notification *NotificationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Seat:         NewSeatHandler(service.Seat, log),
		Notification: NewNotificationHandler(service.Notifier, log),
	}
}
