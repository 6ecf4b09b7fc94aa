package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	domain "github.com/wedloom/api/internal/domain"
	pfirestore "github.com/wedloom/api/internal/platform/firestore"
	"github.com/wedloom/api/internal/repositories"
)

const notificationsCollection = "notifications"

// NotificationRepository persists operator announcements.
type NotificationRepository struct {
	base *pfirestore.BaseRepository[notificationDocument]
}

// NewNotificationRepository constructs a Firestore-backed notification repository.
func NewNotificationRepository(provider *pfirestore.Provider) (*NotificationRepository, error) {
	if provider == nil {
		return nil, errors.New("notification repository: firestore provider is required")
	}
	base := pfirestore.NewBaseRepository[notificationDocument](provider, notificationsCollection, nil, nil)
	return &NotificationRepository{base: base}, nil
}

// Upsert stores or replaces an announcement.
func (r *NotificationRepository) Upsert(ctx context.Context, notification domain.Notification) error {
	if r == nil || r.base == nil {
		return errors.New("notification repository not initialised")
	}
	notificationID := strings.TrimSpace(notification.ID)
	if notificationID == "" {
		return errors.New("notification repository: id is required")
	}
	doc := notificationDocument{
		Title:     strings.TrimSpace(notification.Title),
		Body:      strings.TrimSpace(notification.Body),
		Level:     strings.TrimSpace(notification.Level),
		Active:    notification.Active,
		CreatedAt: notification.CreatedAt.UTC(),
		UpdatedAt: notification.UpdatedAt.UTC(),
	}
	if _, err := r.base.Set(ctx, notificationID, doc); err != nil {
		return err
	}
	return nil
}

// FindByID loads a single announcement.
func (r *NotificationRepository) FindByID(ctx context.Context, notificationID string) (domain.Notification, error) {
	if r == nil || r.base == nil {
		return domain.Notification{}, errors.New("notification repository not initialised")
	}
	notificationID = strings.TrimSpace(notificationID)
	if notificationID == "" {
		return domain.Notification{}, errors.New("notification repository: id is required")
	}
	doc, err := r.base.Get(ctx, notificationID)
	if err != nil {
		return domain.Notification{}, err
	}
	return decodeNotificationDocument(notificationID, doc.Data, doc.CreateTime, doc.UpdateTime), nil
}

// ListActive returns announcements currently shown to signed-in users.
func (r *NotificationRepository) ListActive(ctx context.Context) ([]domain.Notification, error) {
	if r == nil || r.base == nil {
		return nil, errors.New("notification repository not initialised")
	}
	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.Where("active", "==", true).OrderBy("createdAt", firestore.Desc)
	})
	if err != nil {
		return nil, err
	}
	items := make([]domain.Notification, 0, len(docs))
	for _, doc := range docs {
		items = append(items, decodeNotificationDocument(doc.ID, doc.Data, doc.CreateTime, doc.UpdateTime))
	}
	return items, nil
}

// List returns announcements for the operator console, newest first.
func (r *NotificationRepository) List(ctx context.Context, pager domain.Pagination) (domain.CursorPage[domain.Notification], error) {
	if r == nil || r.base == nil {
		return domain.CursorPage[domain.Notification]{}, errors.New("notification repository not initialised")
	}

	limit := pager.PageSize
	if limit < 0 {
		limit = 0
	}
	fetchLimit := limit
	if limit > 0 {
		fetchLimit = limit + 1
	}

	var startAfter []any
	if token := strings.TrimSpace(pager.PageToken); token != "" {
		tokenTime, tokenID, err := decodeWeddingListToken(token)
		if err != nil {
			return domain.CursorPage[domain.Notification]{}, fmt.Errorf("notification repository: invalid page token: %w", err)
		}
		startAfter = []any{tokenTime, tokenID}
	}

	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		q = q.OrderBy("createdAt", firestore.Desc).OrderBy(firestore.DocumentID, firestore.Desc)
		if len(startAfter) == 2 {
			q = q.StartAfter(startAfter...)
		}
		if fetchLimit > 0 {
			q = q.Limit(fetchLimit)
		}
		return q
	})
	if err != nil {
		return domain.CursorPage[domain.Notification]{}, err
	}

	valueDocs := docs
	nextToken := ""
	if limit > 0 && len(valueDocs) == fetchLimit {
		last := valueDocs[len(valueDocs)-1]
		tokenTime := last.Data.CreatedAt
		if tokenTime.IsZero() {
			tokenTime = last.CreateTime
		}
		nextToken = encodeWeddingListToken(tokenTime, last.ID)
		valueDocs = valueDocs[:len(valueDocs)-1]
	}

	items := make([]domain.Notification, 0, len(valueDocs))
	for _, doc := range valueDocs {
		items = append(items, decodeNotificationDocument(doc.ID, doc.Data, doc.CreateTime, doc.UpdateTime))
	}

	return domain.CursorPage[domain.Notification]{Items: items, NextPageToken: nextToken}, nil
}

// Delete removes an announcement permanently.
func (r *NotificationRepository) Delete(ctx context.Context, notificationID string) error {
	if r == nil || r.base == nil {
		return errors.New("notification repository not initialised")
	}
	notificationID = strings.TrimSpace(notificationID)
	if notificationID == "" {
		return errors.New("notification repository: id is required")
	}
	return r.base.Delete(ctx, notificationID)
}

type notificationDocument struct {
	Title     string    `firestore:"title"`
	Body      string    `firestore:"body"`
	Level     string    `firestore:"level"`
	Active    bool      `firestore:"active"`
	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

func decodeNotificationDocument(id string, doc notificationDocument, createdAt, updatedAt time.Time) domain.Notification {
	level := strings.TrimSpace(doc.Level)
	if level == "" {
		level = domain.NotificationLevelInfo
	}
	return domain.Notification{
		ID:        strings.TrimSpace(id),
		Title:     doc.Title,
		Body:      doc.Body,
		Level:     level,
		Active:    doc.Active,
		CreatedAt: chooseTime(doc.CreatedAt, createdAt),
		UpdatedAt: chooseTime(doc.UpdatedAt, updatedAt),
	}
}

var _ repositories.NotificationRepository = (*NotificationRepository)(nil)
