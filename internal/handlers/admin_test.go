package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domain "github.com/wedloom/api/internal/domain"
	"github.com/wedloom/api/internal/services"
)

type stubNotificationService struct {
	listActiveFunc func(ctx context.Context) ([]services.Notification, error)
	listFunc       func(ctx context.Context, pager services.Pagination) (domain.CursorPage[services.Notification], error)
	upsertFunc     func(ctx context.Context, cmd services.UpsertNotificationCommand) (services.Notification, error)
	deleteFunc     func(ctx context.Context, notificationID string) error
}

func (s *stubNotificationService) ListActive(ctx context.Context) ([]services.Notification, error) {
	if s.listActiveFunc == nil {
		return nil, errors.New("list active not implemented")
	}
	return s.listActiveFunc(ctx)
}

func (s *stubNotificationService) List(ctx context.Context, pager services.Pagination) (domain.CursorPage[services.Notification], error) {
	if s.listFunc == nil {
		return domain.CursorPage[services.Notification]{}, errors.New("list not implemented")
	}
	return s.listFunc(ctx, pager)
}

func (s *stubNotificationService) Upsert(ctx context.Context, cmd services.UpsertNotificationCommand) (services.Notification, error) {
	if s.upsertFunc == nil {
		return services.Notification{}, errors.New("upsert not implemented")
	}
	return s.upsertFunc(ctx, cmd)
}

func (s *stubNotificationService) Delete(ctx context.Context, notificationID string) error {
	if s.deleteFunc == nil {
		return errors.New("delete not implemented")
	}
	return s.deleteFunc(ctx, notificationID)
}

var _ services.NotificationService = (*stubNotificationService)(nil)

func TestNotificationHandlersListActive(t *testing.T) {
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	notifications := &stubNotificationService{
		listActiveFunc: func(ctx context.Context) ([]services.Notification, error) {
			return []services.Notification{
				{ID: "n1", Title: "Bảo trì hệ thống", Level: domain.NotificationLevelWarning, Active: true, CreatedAt: created},
			}, nil
		},
	}
	handler := NewNotificationHandlers(notifications)

	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	rr := httptest.NewRecorder()
	handler.listActive(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Notifications []notificationPayload `json:"notifications"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("expected JSON response: %v", err)
	}
	if len(resp.Notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(resp.Notifications))
	}
	got := resp.Notifications[0]
	if got.ID != "n1" || got.Level != domain.NotificationLevelWarning || !got.Active {
		t.Fatalf("unexpected payload %#v", got)
	}
}

func TestAdminHandlersListNotifications(t *testing.T) {
	var capturedPager services.Pagination
	notifications := &stubNotificationService{
		listFunc: func(ctx context.Context, pager services.Pagination) (domain.CursorPage[services.Notification], error) {
			capturedPager = pager
			return domain.CursorPage[services.Notification]{
				Items:         []services.Notification{{ID: "n1", Title: "Thông báo", Active: false}},
				NextPageToken: "token-2",
			}, nil
		},
	}
	handler := NewAdminHandlers(nil, notifications)

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/admin/notifications?pageSize=25", nil), "admin-1")
	rr := httptest.NewRecorder()
	handler.listNotifications(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if capturedPager.PageSize != 25 {
		t.Fatalf("expected page size 25, got %d", capturedPager.PageSize)
	}
	var resp struct {
		Notifications []notificationPayload `json:"notifications"`
		NextPageToken string                `json:"nextPageToken"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("expected JSON response: %v", err)
	}
	if resp.NextPageToken != "token-2" {
		t.Fatalf("unexpected next token %q", resp.NextPageToken)
	}
}

func TestAdminHandlersCreateNotification(t *testing.T) {
	var captured services.UpsertNotificationCommand
	notifications := &stubNotificationService{
		upsertFunc: func(ctx context.Context, cmd services.UpsertNotificationCommand) (services.Notification, error) {
			captured = cmd
			return services.Notification{
				ID:     "n-new",
				Title:  cmd.Title,
				Body:   cmd.Body,
				Level:  cmd.Level,
				Active: cmd.Active,
			}, nil
		},
	}
	handler := NewAdminHandlers(nil, notifications)

	body := bytes.NewBufferString(`{"title":"Khuyến mãi","body":"Giảm giá gói VIP","level":"info","active":true}`)
	req := authedRequest(httptest.NewRequest(http.MethodPost, "/admin/notifications", body), "admin-1")
	rr := httptest.NewRecorder()
	handler.createNotification(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if captured.NotificationID != "" {
		t.Fatalf("create must not carry an id, got %q", captured.NotificationID)
	}
	if captured.Title != "Khuyến mãi" || captured.ActorID != "admin-1" || !captured.Active {
		t.Fatalf("unexpected command %#v", captured)
	}

	var resp notificationPayload
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("expected JSON response: %v", err)
	}
	if resp.ID != "n-new" || resp.Level != "info" {
		t.Fatalf("unexpected payload %#v", resp)
	}
}

func TestAdminHandlersUpdateNotification(t *testing.T) {
	var captured services.UpsertNotificationCommand
	notifications := &stubNotificationService{
		upsertFunc: func(ctx context.Context, cmd services.UpsertNotificationCommand) (services.Notification, error) {
			captured = cmd
			return services.Notification{ID: cmd.NotificationID, Title: cmd.Title}, nil
		},
	}
	handler := NewAdminHandlers(nil, notifications)

	body := bytes.NewBufferString(`{"title":"Cập nhật","active":false}`)
	req := authedRequest(httptest.NewRequest(http.MethodPut, "/admin/notifications/n1", body), "admin-1")
	req = withRouteParams(req, map[string]string{"notificationID": "n1"})
	rr := httptest.NewRecorder()
	handler.updateNotification(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if captured.NotificationID != "n1" || captured.Title != "Cập nhật" {
		t.Fatalf("unexpected command %#v", captured)
	}
}

func TestAdminHandlersUpdateNotificationNotFound(t *testing.T) {
	notifications := &stubNotificationService{
		upsertFunc: func(ctx context.Context, cmd services.UpsertNotificationCommand) (services.Notification, error) {
			return services.Notification{}, services.ErrNotificationNotFound
		},
	}
	handler := NewAdminHandlers(nil, notifications)

	body := bytes.NewBufferString(`{"title":"Cập nhật"}`)
	req := authedRequest(httptest.NewRequest(http.MethodPut, "/admin/notifications/missing", body), "admin-1")
	req = withRouteParams(req, map[string]string{"notificationID": "missing"})
	rr := httptest.NewRecorder()
	handler.updateNotification(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("expected JSON error: %v", err)
	}
	if resp["error"] != "not_found" {
		t.Fatalf("unexpected error code %v", resp["error"])
	}
}

func TestAdminHandlersUpsertRequiresIdentity(t *testing.T) {
	handler := NewAdminHandlers(nil, &stubNotificationService{})

	body := bytes.NewBufferString(`{"title":"x"}`)
	req := httptest.NewRequest(http.MethodPost, "/admin/notifications", body)
	rr := httptest.NewRecorder()
	handler.createNotification(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rr.Code)
	}
}

func TestAdminHandlersDeleteNotification(t *testing.T) {
	var deleted string
	notifications := &stubNotificationService{
		deleteFunc: func(ctx context.Context, notificationID string) error {
			deleted = notificationID
			return nil
		},
	}
	handler := NewAdminHandlers(nil, notifications)

	req := authedRequest(httptest.NewRequest(http.MethodDelete, "/admin/notifications/n1", nil), "admin-1")
	req = withRouteParams(req, map[string]string{"notificationID": "n1"})
	rr := httptest.NewRecorder()
	handler.deleteNotification(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rr.Code)
	}
	if deleted != "n1" {
		t.Fatalf("expected n1 deleted, got %q", deleted)
	}
}
