package adaptor

import (
	"net/http"

	"library-seating/internal/usecase"
	"library-seating/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	notifier *usecase.Notifier
	log      *zap.Logger
}

func NewNotificationHandler(notifier *usecase.Notifier, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		notifier: notifier,
		log:      log.With(zap.String("handler", "notification")),
	}
}

// GetNotifications handles GET /api/notifications
//
// Clients poll with ?after=<last seen event id> to pick up expiry alerts
// emitted since their previous poll.
func (h *NotificationHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	afterID := uuid.Nil
	if after := query.Get("after"); after != "" {
		parsed, err := uuid.Parse(after)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid after id", nil)
			return
		}
		afterID = parsed
	}

	limit := utils.ParseInt(query.Get("limit"), 20)

	events := h.notifier.Since(afterID, limit)
	utils.ResponseSuccess(w, "success", events)
}
