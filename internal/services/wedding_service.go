package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	domain "github.com/wedloom/api/internal/domain"
	"github.com/wedloom/api/internal/repositories"
)

var slugPattern = regexp.MustCompile(domain.SlugPattern)

// WeddingServiceDeps groups constructor parameters for the wedding service.
type WeddingServiceDeps struct {
	Weddings repositories.WeddingRepository
	RSVPs    repositories.RSVPRepository
	Wishes   repositories.WishRepository
	Events   WeddingEventPublisher
	Clock    func() time.Time
	Logger   func(ctx context.Context, event string, fields map[string]any)
}

type weddingService struct {
	weddings repositories.WeddingRepository
	rsvps    repositories.RSVPRepository
	wishes   repositories.WishRepository
	events   WeddingEventPublisher
	clock    func() time.Time
	logger   func(ctx context.Context, event string, fields map[string]any)
}

var _ WeddingService = (*weddingService)(nil)

// NewWeddingService constructs the wedding lifecycle service.
func NewWeddingService(deps WeddingServiceDeps) (WeddingService, error) {
	if deps.Weddings == nil {
		return nil, ErrWeddingRepositoryMissing
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	return &weddingService{
		weddings: deps.Weddings,
		rsvps:    deps.RSVPs,
		wishes:   deps.Wishes,
		events:   deps.Events,
		clock:    func() time.Time { return clock().UTC() },
		logger:   logger,
	}, nil
}

// CreateWedding reserves the slug and seeds the section list in a single
// write. A concurrent claim of the same slug loses with ErrSlugUnavailable
// rather than overwriting the winner.
func (s *weddingService) CreateWedding(ctx context.Context, cmd CreateWeddingCommand) (WeddingRecord, error) {
	ownerID := strings.TrimSpace(cmd.OwnerID)
	if ownerID == "" {
		return WeddingRecord{}, errors.New("wedding service: owner id is required")
	}
	groom := strings.TrimSpace(cmd.GroomName)
	bride := strings.TrimSpace(cmd.BrideName)
	if groom == "" && bride == "" {
		return WeddingRecord{}, ErrCoupleNamesRequired
	}

	slug := strings.TrimSpace(cmd.CustomSlug)
	if slug != "" {
		slug = strings.ToLower(slug)
		if !slugPattern.MatchString(slug) {
			return WeddingRecord{}, ErrSlugInvalid
		}
	} else {
		slug = domain.GenerateSlug(groom, bride, cmd.EventDate, s.clock)
	}
	if slug == "" {
		return WeddingRecord{}, ErrSlugInvalid
	}

	now := s.clock()
	record := WeddingRecord{
		ID:        slug,
		OwnerID:   ownerID,
		GroomName: groom,
		BrideName: bride,
		EventDate: normalizeDate(cmd.EventDate),
		Sections:  domain.InitializeSections(nil),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.weddings.Create(ctx, record); err != nil {
		if isRepositoryConflict(err) {
			return WeddingRecord{}, ErrSlugUnavailable
		}
		return WeddingRecord{}, err
	}

	s.publish(ctx, WeddingEvent{
		Type:       WeddingEventCreated,
		WeddingID:  slug,
		OwnerID:    ownerID,
		OccurredAt: now,
	})
	s.logger(ctx, "wedding.created", map[string]any{"weddingId": slug, "ownerId": ownerID})

	return record, nil
}

func (s *weddingService) GetWedding(ctx context.Context, cmd WeddingReadCommand) (WeddingRecord, error) {
	record, err := s.ownedRecord(ctx, cmd.WeddingID, cmd.ActorID)
	if err != nil {
		return WeddingRecord{}, err
	}
	record.Sections = domain.InitializeSections(record.Sections)
	return record, nil
}

func (s *weddingService) ListWeddings(ctx context.Context, filter WeddingListFilter) (domain.CursorPage[WeddingRecord], error) {
	ownerID := strings.TrimSpace(filter.OwnerID)
	if ownerID == "" {
		return domain.CursorPage[WeddingRecord]{}, errors.New("wedding service: owner id is required")
	}
	return s.weddings.ListByOwner(ctx, ownerID, repositories.WeddingListFilter{
		Pagination: domain.Pagination{
			PageSize:  filter.Pagination.PageSize,
			PageToken: strings.TrimSpace(filter.Pagination.PageToken),
		},
		SortOrder: filter.SortOrder,
	})
}

// DeleteWedding removes the document tree including guest subcollections.
func (s *weddingService) DeleteWedding(ctx context.Context, cmd DeleteWeddingCommand) error {
	record, err := s.ownedRecord(ctx, cmd.WeddingID, cmd.ActorID)
	if err != nil {
		return err
	}
	if s.rsvps != nil {
		if err := s.rsvps.DeleteAll(ctx, record.ID); err != nil {
			return err
		}
	}
	if s.wishes != nil {
		if err := s.wishes.DeleteAll(ctx, record.ID); err != nil {
			return err
		}
	}
	if err := s.weddings.Delete(ctx, record.ID); err != nil {
		return err
	}
	s.publish(ctx, WeddingEvent{
		Type:       WeddingEventDeleted,
		WeddingID:  record.ID,
		OwnerID:    record.OwnerID,
		OccurredAt: s.clock(),
	})
	return nil
}

// CheckSlug reports whether the candidate slug (explicit or derived from the
// couple's names) is still free. The answer is advisory: the create path
// still claims atomically.
func (s *weddingService) CheckSlug(ctx context.Context, cmd CheckSlugCommand) (SlugAvailability, error) {
	slug := strings.ToLower(strings.TrimSpace(cmd.Slug))
	if slug == "" {
		slug = domain.GenerateSlug(cmd.GroomName, cmd.BrideName, cmd.EventDate, s.clock)
	}
	if slug == "" || !slugPattern.MatchString(slug) {
		return SlugAvailability{}, ErrSlugInvalid
	}
	exists, err := s.weddings.Exists(ctx, slug)
	if err != nil {
		return SlugAvailability{}, err
	}
	return SlugAvailability{Slug: slug, Available: !exists}, nil
}

// PublicSite resolves a slug into the fully defaulted render model. No
// authentication applies; unknown slugs yield ErrWeddingNotFound.
func (s *weddingService) PublicSite(ctx context.Context, slug string) (WeddingViewModel, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return WeddingViewModel{}, ErrWeddingNotFound
	}
	record, err := s.weddings.FindByID(ctx, slug)
	if err != nil {
		if isRepositoryNotFound(err) {
			return WeddingViewModel{}, ErrWeddingNotFound
		}
		return WeddingViewModel{}, err
	}
	return domain.ToViewModel(record), nil
}

func (s *weddingService) ownedRecord(ctx context.Context, weddingID, actorID string) (WeddingRecord, error) {
	weddingID = strings.TrimSpace(weddingID)
	if weddingID == "" {
		return WeddingRecord{}, errors.New("wedding service: wedding id is required")
	}
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return WeddingRecord{}, errors.New("wedding service: actor id is required")
	}
	record, err := s.weddings.FindByID(ctx, weddingID)
	if err != nil {
		if isRepositoryNotFound(err) {
			return WeddingRecord{}, ErrWeddingNotFound
		}
		return WeddingRecord{}, err
	}
	if record.OwnerID != actorID {
		return WeddingRecord{}, ErrWeddingForbidden
	}
	return record, nil
}

func (s *weddingService) publish(ctx context.Context, event WeddingEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishWeddingEvent(ctx, event); err != nil {
		s.logger(ctx, "wedding.event.publish_failed", map[string]any{
			"type":      event.Type,
			"weddingId": event.WeddingID,
			"error":     err.Error(),
		})
	}
}

func normalizeDate(value *time.Time) *time.Time {
	if value == nil || value.IsZero() {
		return nil
	}
	ts := value.UTC()
	return &ts
}

func isRepositoryNotFound(err error) bool {
	if err == nil {
		return false
	}
	var repoErr repositories.RepositoryError
	if errors.As(err, &repoErr) {
		return repoErr.IsNotFound()
	}
	return false
}

func isRepositoryConflict(err error) bool {
	if err == nil {
		return false
	}
	var repoErr repositories.RepositoryError
	if errors.As(err, &repoErr) {
		return repoErr.IsConflict()
	}
	return false
}
