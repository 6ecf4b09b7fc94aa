package services

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/wedloom/api/internal/domain"
	"github.com/wedloom/api/internal/repositories"
)

type stubNotificationRepository struct {
	stored     map[string]domain.Notification
	upserts    []domain.Notification
	deleted    []string
	activeList []domain.Notification
	page       domain.CursorPage[domain.Notification]
}

func newStubNotificationRepository(existing ...domain.Notification) *stubNotificationRepository {
	repo := &stubNotificationRepository{stored: make(map[string]domain.Notification)}
	for _, n := range existing {
		repo.stored[n.ID] = n
	}
	return repo
}

func (r *stubNotificationRepository) Upsert(_ context.Context, notification domain.Notification) error {
	r.upserts = append(r.upserts, notification)
	r.stored[notification.ID] = notification
	return nil
}

func (r *stubNotificationRepository) FindByID(_ context.Context, notificationID string) (domain.Notification, error) {
	notification, ok := r.stored[notificationID]
	if !ok {
		return domain.Notification{}, stubRepoError{notFound: true}
	}
	return notification, nil
}

func (r *stubNotificationRepository) ListActive(_ context.Context) ([]domain.Notification, error) {
	return r.activeList, nil
}

func (r *stubNotificationRepository) List(_ context.Context, _ domain.Pagination) (domain.CursorPage[domain.Notification], error) {
	return r.page, nil
}

func (r *stubNotificationRepository) Delete(_ context.Context, notificationID string) error {
	if _, ok := r.stored[notificationID]; !ok {
		return stubRepoError{notFound: true}
	}
	delete(r.stored, notificationID)
	r.deleted = append(r.deleted, notificationID)
	return nil
}

var _ repositories.NotificationRepository = (*stubNotificationRepository)(nil)

func TestNotificationService_Upsert_CreatesWithGeneratedID(t *testing.T) {
	repo := newStubNotificationRepository()
	now := time.Date(2026, time.April, 1, 12, 0, 0, 0, time.UTC)

	service, err := NewNotificationService(NotificationServiceDeps{
		Notifications: repo,
		Clock:         fixedClock(now),
		IDGenerator:   func() string { return "ntf-1" },
	})
	if err != nil {
		t.Fatalf("NewNotificationService: %v", err)
	}

	notification, err := service.Upsert(context.Background(), UpsertNotificationCommand{
		Title:  "  Bảo trì hệ thống ",
		Body:   "Tạm dừng 30 phút",
		Active: true,
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if notification.ID != "ntf-1" {
		t.Fatalf("unexpected id %q", notification.ID)
	}
	if notification.Title != "Bảo trì hệ thống" {
		t.Fatalf("title not trimmed: %q", notification.Title)
	}
	if notification.Level != domain.NotificationLevelInfo {
		t.Fatalf("expected default level info, got %q", notification.Level)
	}
	if !notification.CreatedAt.Equal(now) {
		t.Fatalf("unexpected createdAt %v", notification.CreatedAt)
	}
}

func TestNotificationService_Upsert_PreservesCreatedAtOnUpdate(t *testing.T) {
	createdAt := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	repo := newStubNotificationRepository(domain.Notification{
		ID:        "ntf-1",
		Title:     "Cũ",
		CreatedAt: createdAt,
	})
	now := createdAt.AddDate(0, 3, 0)

	service, err := NewNotificationService(NotificationServiceDeps{
		Notifications: repo,
		Clock:         fixedClock(now),
	})
	if err != nil {
		t.Fatalf("NewNotificationService: %v", err)
	}

	notification, err := service.Upsert(context.Background(), UpsertNotificationCommand{
		NotificationID: "ntf-1",
		Title:          "Mới",
		Level:          domain.NotificationLevelWarning,
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if !notification.CreatedAt.Equal(createdAt) {
		t.Fatalf("createdAt must survive updates, got %v", notification.CreatedAt)
	}
	if !notification.UpdatedAt.Equal(now) {
		t.Fatalf("expected updatedAt %v, got %v", now, notification.UpdatedAt)
	}
}

func TestNotificationService_Upsert_RejectsUnknownLevel(t *testing.T) {
	service, err := NewNotificationService(NotificationServiceDeps{Notifications: newStubNotificationRepository()})
	if err != nil {
		t.Fatalf("NewNotificationService: %v", err)
	}

	_, err = service.Upsert(context.Background(), UpsertNotificationCommand{
		Title: "Thông báo",
		Level: "critical",
	})
	if !errors.Is(err, ErrNotificationInvalid) {
		t.Fatalf("expected ErrNotificationInvalid, got %v", err)
	}
}

func TestNotificationService_Delete_MapsNotFound(t *testing.T) {
	service, err := NewNotificationService(NotificationServiceDeps{Notifications: newStubNotificationRepository()})
	if err != nil {
		t.Fatalf("NewNotificationService: %v", err)
	}

	if err := service.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound, got %v", err)
	}
}
