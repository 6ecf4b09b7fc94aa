package repositories

import (
	"context"
	"time"

	domain "github.com/wedloom/api/internal/domain"
)

// Registry exposes typed repository accessors and lifecycle hooks for dependency injection.
type Registry interface {
	Close(ctx context.Context) error

	Weddings() WeddingRepository
	RSVPs() RSVPRepository
	Wishes() WishRepository
	Notifications() NotificationRepository
	Health() HealthRepository
	UnitOfWork
}

// RepositoryError wraps low-level persistence failures with categorisation used by services.
type RepositoryError interface {
	error
	IsNotFound() bool
	IsConflict() bool
	IsUnavailable() bool
}

// UnitOfWork allows grouping repository operations in a transactional boundary when supported.
type UnitOfWork interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// WeddingListFilter narrows owner-scoped wedding listings.
type WeddingListFilter struct {
	Pagination domain.Pagination
	SortOrder  domain.SortOrder
}

// WeddingRepository persists wedding site documents keyed by their public slug.
type WeddingRepository interface {
	// Create stores a new record under its slug. A slug collision surfaces as
	// a conflict error, never as a silent overwrite.
	Create(ctx context.Context, record domain.WeddingRecord) error
	UpdateFields(ctx context.Context, weddingID string, fields map[string]any) error
	SetSections(ctx context.Context, weddingID string, sections []domain.Section) error
	FindByID(ctx context.Context, weddingID string) (domain.WeddingRecord, error)
	Exists(ctx context.Context, weddingID string) (bool, error)
	ListByOwner(ctx context.Context, ownerID string, filter WeddingListFilter) (domain.CursorPage[domain.WeddingRecord], error)
	Delete(ctx context.Context, weddingID string) error
}

// SubmissionListFilter narrows guest submission listings.
type SubmissionListFilter struct {
	Pagination domain.Pagination
	Since      *time.Time
}

// RSVPRepository stores attendance replies beneath a wedding document.
type RSVPRepository interface {
	Add(ctx context.Context, submission domain.RSVPSubmission) error
	List(ctx context.Context, weddingID string, filter SubmissionListFilter) (domain.CursorPage[domain.RSVPSubmission], error)
	DeleteAll(ctx context.Context, weddingID string) error
}

// WishRepository stores guestbook entries beneath a wedding document.
type WishRepository interface {
	Add(ctx context.Context, wish domain.Wish) error
	List(ctx context.Context, weddingID string, filter SubmissionListFilter) (domain.CursorPage[domain.Wish], error)
	DeleteAll(ctx context.Context, weddingID string) error
}

// NotificationRepository stores global operator announcements.
type NotificationRepository interface {
	Upsert(ctx context.Context, notification domain.Notification) error
	FindByID(ctx context.Context, notificationID string) (domain.Notification, error)
	ListActive(ctx context.Context) ([]domain.Notification, error)
	List(ctx context.Context, pager domain.Pagination) (domain.CursorPage[domain.Notification], error)
	Delete(ctx context.Context, notificationID string) error
}

// HealthRepository exposes status of downstream dependencies for health checks.
type HealthRepository interface {
	Collect(ctx context.Context) (domain.SystemHealthReport, error)
}
