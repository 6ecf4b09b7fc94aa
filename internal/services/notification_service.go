package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"

	domain "github.com/wedloom/api/internal/domain"
	"github.com/wedloom/api/internal/repositories"
)

const (
	maxNotificationTitleLength = 160
	maxNotificationBodyLength  = 2000
)

// ErrNotificationRepositoryMissing indicates the notification service was
// constructed without its repository.
var ErrNotificationRepositoryMissing = errors.New("notification service: repository dependency is required")

// ErrNotificationNotFound indicates the referenced announcement does not exist.
var ErrNotificationNotFound = errors.New("notification service: notification not found")

// ErrNotificationInvalid indicates the announcement payload failed validation.
var ErrNotificationInvalid = errors.New("notification service: invalid notification")

// NotificationServiceDeps groups constructor parameters for the
// notification service.
type NotificationServiceDeps struct {
	Notifications repositories.NotificationRepository
	Clock         func() time.Time
	IDGenerator   func() string
	Logger        func(ctx context.Context, event string, fields map[string]any)
}

type notificationService struct {
	notifications repositories.NotificationRepository
	clock         func() time.Time
	idGen         func() string
	logger        func(ctx context.Context, event string, fields map[string]any)
}

var _ NotificationService = (*notificationService)(nil)

// NewNotificationService constructs the operator announcement manager.
func NewNotificationService(deps NotificationServiceDeps) (NotificationService, error) {
	if deps.Notifications == nil {
		return nil, ErrNotificationRepositoryMissing
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = func() string { return ulid.Make().String() }
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	return &notificationService{
		notifications: deps.Notifications,
		clock:         func() time.Time { return clock().UTC() },
		idGen:         idGen,
		logger:        logger,
	}, nil
}

// ListActive returns the announcements currently shown to signed-in users.
func (s *notificationService) ListActive(ctx context.Context) ([]Notification, error) {
	return s.notifications.ListActive(ctx)
}

// List returns all announcements, newest first, for the operator console.
func (s *notificationService) List(ctx context.Context, pager Pagination) (domain.CursorPage[Notification], error) {
	return s.notifications.List(ctx, pager)
}

// Upsert creates or replaces an announcement. A blank id creates a new one.
func (s *notificationService) Upsert(ctx context.Context, cmd UpsertNotificationCommand) (Notification, error) {
	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		return Notification{}, fmt.Errorf("%w: title is required", ErrNotificationInvalid)
	}
	if utf8.RuneCountInString(title) > maxNotificationTitleLength {
		return Notification{}, fmt.Errorf("%w: title exceeds %d characters", ErrNotificationInvalid, maxNotificationTitleLength)
	}
	body := strings.TrimSpace(cmd.Body)
	if utf8.RuneCountInString(body) > maxNotificationBodyLength {
		return Notification{}, fmt.Errorf("%w: body exceeds %d characters", ErrNotificationInvalid, maxNotificationBodyLength)
	}
	level := strings.TrimSpace(cmd.Level)
	switch level {
	case "":
		level = domain.NotificationLevelInfo
	case domain.NotificationLevelInfo, domain.NotificationLevelWarning:
	default:
		return Notification{}, fmt.Errorf("%w: unknown level %q", ErrNotificationInvalid, level)
	}

	now := s.clock()
	notification := domain.Notification{
		ID:        strings.TrimSpace(cmd.NotificationID),
		Title:     title,
		Body:      body,
		Level:     level,
		Active:    cmd.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if notification.ID == "" {
		notification.ID = s.idGen()
	} else if existing, err := s.notifications.FindByID(ctx, notification.ID); err == nil {
		notification.CreatedAt = existing.CreatedAt
	} else if !isRepositoryNotFound(err) {
		return Notification{}, err
	}

	if err := s.notifications.Upsert(ctx, notification); err != nil {
		return Notification{}, err
	}
	s.logger(ctx, "notification.upserted", map[string]any{
		"notificationId": notification.ID,
		"active":         notification.Active,
		"actorUid":       strings.TrimSpace(cmd.ActorID),
	})
	return notification, nil
}

// Delete removes an announcement.
func (s *notificationService) Delete(ctx context.Context, notificationID string) error {
	notificationID = strings.TrimSpace(notificationID)
	if notificationID == "" {
		return fmt.Errorf("%w: id is required", ErrNotificationInvalid)
	}
	if err := s.notifications.Delete(ctx, notificationID); err != nil {
		if isRepositoryNotFound(err) {
			return ErrNotificationNotFound
		}
		return err
	}
	s.logger(ctx, "notification.deleted", map[string]any{"notificationId": notificationID})
	return nil
}
