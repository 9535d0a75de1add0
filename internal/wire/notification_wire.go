package wire

import (
	"library-seating/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireNotification(r chi.Router, notificationHandler *adaptor.NotificationHandler) {
	// GET /api/notifications - polled expiry alert feed
	r.Get("/api/notifications", notificationHandler.GetNotifications)
}
