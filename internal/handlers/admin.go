package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wedloom/api/internal/platform/auth"
	"github.com/wedloom/api/internal/platform/httpx"
	"github.com/wedloom/api/internal/services"
)

const maxAdminRequestBody = 32 * 1024

// AdminHandlers exposes the operator surface: announcement management.
type AdminHandlers struct {
	authn         *auth.Authenticator
	notifications services.NotificationService
}

// NewAdminHandlers constructs handlers restricted to admin identities.
func NewAdminHandlers(authn *auth.Authenticator, notifications services.NotificationService) *AdminHandlers {
	return &AdminHandlers{authn: authn, notifications: notifications}
}

// Routes registers the admin endpoints on the provided router.
func (h *AdminHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	if h.authn != nil {
		r.Use(h.authn.RequireFirebaseAuth(auth.RoleAdmin))
	}

	r.Route("/notifications", func(rt chi.Router) {
		rt.Get("/", h.listNotifications)
		rt.Post("/", h.createNotification)
		rt.Put("/{notificationID}", h.updateNotification)
		rt.Delete("/{notificationID}", h.deleteNotification)
	})
}

type notificationRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body,omitempty"`
	Level  string `json:"level,omitempty"`
	Active bool   `json:"active"`
}

func (h *AdminHandlers) listNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.notifications == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "notification service unavailable", http.StatusServiceUnavailable))
		return
	}

	pager, err := parsePagination(r)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	page, err := h.notifications.List(ctx, pager)
	if err != nil {
		writeNotificationError(ctx, w, err)
		return
	}

	payloads := make([]notificationPayload, 0, len(page.Items))
	for _, notification := range page.Items {
		payloads = append(payloads, buildNotificationPayload(notification))
	}
	writeJSONResponse(w, http.StatusOK, struct {
		Notifications []notificationPayload `json:"notifications"`
		NextPageToken string                `json:"nextPageToken,omitempty"`
	}{
		Notifications: payloads,
		NextPageToken: page.NextPageToken,
	})
}

func (h *AdminHandlers) createNotification(w http.ResponseWriter, r *http.Request) {
	h.upsertNotification(w, r, "")
}

func (h *AdminHandlers) updateNotification(w http.ResponseWriter, r *http.Request) {
	h.upsertNotification(w, r, chi.URLParam(r, "notificationID"))
}

func (h *AdminHandlers) upsertNotification(w http.ResponseWriter, r *http.Request, notificationID string) {
	ctx := r.Context()
	if h.notifications == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "notification service unavailable", http.StatusServiceUnavailable))
		return
	}
	identity, ok := auth.IdentityFromContext(ctx)
	if !ok || identity == nil {
		httpx.WriteError(ctx, w, httpx.NewError("unauthenticated", "authentication required", http.StatusUnauthorized))
		return
	}

	var req notificationRequest
	if err := decodeJSONBody(r, maxAdminRequestBody, &req); err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	notification, err := h.notifications.Upsert(ctx, services.UpsertNotificationCommand{
		NotificationID: notificationID,
		Title:          req.Title,
		Body:           req.Body,
		Level:          req.Level,
		Active:         req.Active,
		ActorID:        identity.UID,
	})
	if err != nil {
		writeNotificationError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if notificationID == "" {
		status = http.StatusCreated
	}
	writeJSONResponse(w, status, buildNotificationPayload(notification))
}

func (h *AdminHandlers) deleteNotification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.notifications == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "notification service unavailable", http.StatusServiceUnavailable))
		return
	}

	if err := h.notifications.Delete(ctx, chi.URLParam(r, "notificationID")); err != nil {
		writeNotificationError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeNotificationError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotificationNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("not_found", "notification not found", http.StatusNotFound))
	case errors.Is(err, services.ErrNotificationInvalid):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("internal_error", "notification operation failed", http.StatusInternalServerError))
	}
}
