package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wedloom/api/internal/platform/httpx"
	"github.com/wedloom/api/internal/services"
)

// NotificationHandlers serves the active operator announcements to any
// visitor. Management of announcements lives under the admin surface.
type NotificationHandlers struct {
	notifications services.NotificationService
}

// NewNotificationHandlers constructs the public announcement handlers.
func NewNotificationHandlers(notifications services.NotificationService) *NotificationHandlers {
	return &NotificationHandlers{notifications: notifications}
}

// Routes registers the announcement endpoints on the provided router.
func (h *NotificationHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.listActive)
}

func (h *NotificationHandlers) listActive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.notifications == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "notification service unavailable", http.StatusServiceUnavailable))
		return
	}

	notifications, err := h.notifications.ListActive(ctx)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("internal_error", "failed to list notifications", http.StatusInternalServerError))
		return
	}

	payloads := make([]notificationPayload, 0, len(notifications))
	for _, notification := range notifications {
		payloads = append(payloads, buildNotificationPayload(notification))
	}
	writeJSONResponse(w, http.StatusOK, struct {
		Notifications []notificationPayload `json:"notifications"`
	}{Notifications: payloads})
}
