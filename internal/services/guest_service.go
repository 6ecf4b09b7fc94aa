package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/oklog/ulid/v2"

	domain "github.com/wedloom/api/internal/domain"
	"github.com/wedloom/api/internal/repositories"
)

const (
	maxGuestNameLength    = 120
	maxGuestMessageLength = 1000
	maxRSVPGuestCount     = 20
)

// ErrRSVPRepositoryMissing indicates the guest service was constructed
// without an RSVP repository.
var ErrRSVPRepositoryMissing = errors.New("guest service: rsvp repository dependency is required")

// ErrWishRepositoryMissing indicates the guest service was constructed
// without a wish repository.
var ErrWishRepositoryMissing = errors.New("guest service: wish repository dependency is required")

// GuestServiceDeps groups constructor parameters for the guest service.
type GuestServiceDeps struct {
	Weddings    repositories.WeddingRepository
	RSVPs       repositories.RSVPRepository
	Wishes      repositories.WishRepository
	Events      WeddingEventPublisher
	Clock       func() time.Time
	IDGenerator func() string
	Logger      func(ctx context.Context, event string, fields map[string]any)
}

type guestService struct {
	weddings repositories.WeddingRepository
	rsvps    repositories.RSVPRepository
	wishes   repositories.WishRepository
	events   WeddingEventPublisher
	clock    func() time.Time
	idGen    func() string
	logger   func(ctx context.Context, event string, fields map[string]any)
	policy   *bluemonday.Policy
}

var _ GuestService = (*guestService)(nil)

// NewGuestService constructs the public submission intake. Guest-supplied
// text is stripped of markup before storage.
func NewGuestService(deps GuestServiceDeps) (GuestService, error) {
	if deps.Weddings == nil {
		return nil, ErrWeddingRepositoryMissing
	}
	if deps.RSVPs == nil {
		return nil, ErrRSVPRepositoryMissing
	}
	if deps.Wishes == nil {
		return nil, ErrWishRepositoryMissing
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
	return &guestService{
		weddings: deps.Weddings,
		rsvps:    deps.RSVPs,
		wishes:   deps.Wishes,
		events:   deps.Events,
		clock:    func() time.Time { return clock().UTC() },
		idGen:    idGen,
		logger:   logger,
		policy:   bluemonday.StrictPolicy(),
	}, nil
}

// SubmitRSVP records a public attendance reply. Replies are rejected once
// the site's deadline has passed.
func (s *guestService) SubmitRSVP(ctx context.Context, cmd SubmitRSVPCommand) (RSVPSubmission, error) {
	record, err := s.publicRecord(ctx, cmd.Slug)
	if err != nil {
		return RSVPSubmission{}, err
	}
	now := s.clock()
	if record.RSVPDeadline != nil && now.After(*record.RSVPDeadline) {
		return RSVPSubmission{}, ErrRSVPClosed
	}

	name := s.sanitize(cmd.Name)
	if name == "" {
		return RSVPSubmission{}, fmt.Errorf("%w: name is required", ErrSubmissionInvalid)
	}
	if utf8.RuneCountInString(name) > maxGuestNameLength {
		return RSVPSubmission{}, fmt.Errorf("%w: name exceeds %d characters", ErrSubmissionInvalid, maxGuestNameLength)
	}
	message := s.sanitize(cmd.Message)
	if utf8.RuneCountInString(message) > maxGuestMessageLength {
		return RSVPSubmission{}, fmt.Errorf("%w: message exceeds %d characters", ErrSubmissionInvalid, maxGuestMessageLength)
	}
	guestCount := cmd.GuestCount
	if guestCount < 1 {
		guestCount = 1
	}
	if guestCount > maxRSVPGuestCount {
		return RSVPSubmission{}, fmt.Errorf("%w: guest count exceeds %d", ErrSubmissionInvalid, maxRSVPGuestCount)
	}

	submission := domain.RSVPSubmission{
		ID:         s.idGen(),
		WeddingID:  record.ID,
		Name:       name,
		Attending:  cmd.Attending,
		GuestCount: guestCount,
		Message:    message,
		CreatedAt:  now,
	}
	if err := s.rsvps.Add(ctx, submission); err != nil {
		return RSVPSubmission{}, err
	}
	s.publish(ctx, WeddingEvent{
		Type:       WeddingEventRSVPReceived,
		WeddingID:  record.ID,
		OwnerID:    record.OwnerID,
		OccurredAt: now,
	})
	s.logger(ctx, "guest.rsvp_received", map[string]any{
		"weddingId": record.ID,
		"attending": cmd.Attending,
	})
	return submission, nil
}

// SubmitWish records a public guestbook entry when the site has the
// guestbook enabled.
func (s *guestService) SubmitWish(ctx context.Context, cmd SubmitWishCommand) (Wish, error) {
	record, err := s.publicRecord(ctx, cmd.Slug)
	if err != nil {
		return Wish{}, err
	}
	if !record.WishesEnabled {
		return Wish{}, ErrWishesDisabled
	}

	name := s.sanitize(cmd.Name)
	if name == "" {
		return Wish{}, fmt.Errorf("%w: name is required", ErrSubmissionInvalid)
	}
	if utf8.RuneCountInString(name) > maxGuestNameLength {
		return Wish{}, fmt.Errorf("%w: name exceeds %d characters", ErrSubmissionInvalid, maxGuestNameLength)
	}
	message := s.sanitize(cmd.Message)
	if message == "" {
		return Wish{}, fmt.Errorf("%w: message is required", ErrSubmissionInvalid)
	}
	if utf8.RuneCountInString(message) > maxGuestMessageLength {
		return Wish{}, fmt.Errorf("%w: message exceeds %d characters", ErrSubmissionInvalid, maxGuestMessageLength)
	}

	now := s.clock()
	wish := domain.Wish{
		ID:        s.idGen(),
		WeddingID: record.ID,
		Name:      name,
		Message:   message,
		CreatedAt: now,
	}
	if err := s.wishes.Add(ctx, wish); err != nil {
		return Wish{}, err
	}
	s.publish(ctx, WeddingEvent{
		Type:       WeddingEventWishReceived,
		WeddingID:  record.ID,
		OwnerID:    record.OwnerID,
		OccurredAt: now,
	})
	s.logger(ctx, "guest.wish_received", map[string]any{"weddingId": record.ID})
	return wish, nil
}

// ListRSVPs returns the owner's attendance replies, newest first.
func (s *guestService) ListRSVPs(ctx context.Context, cmd ListSubmissionsCommand) (domain.CursorPage[RSVPSubmission], error) {
	record, err := s.ownedRecord(ctx, cmd.WeddingID, cmd.ActorID)
	if err != nil {
		return domain.CursorPage[RSVPSubmission]{}, err
	}
	return s.rsvps.List(ctx, record.ID, repositories.SubmissionListFilter{
		Pagination: cmd.Pagination,
		Since:      cmd.Since,
	})
}

// ListWishes returns the owner's guestbook entries, newest first.
func (s *guestService) ListWishes(ctx context.Context, cmd ListSubmissionsCommand) (domain.CursorPage[Wish], error) {
	record, err := s.ownedRecord(ctx, cmd.WeddingID, cmd.ActorID)
	if err != nil {
		return domain.CursorPage[Wish]{}, err
	}
	return s.wishes.List(ctx, record.ID, repositories.SubmissionListFilter{
		Pagination: cmd.Pagination,
		Since:      cmd.Since,
	})
}

// PublicWishes returns the guestbook entries shown on the public site.
// A site with the guestbook disabled reads as empty rather than erroring.
func (s *guestService) PublicWishes(ctx context.Context, slug string, pager Pagination) (domain.CursorPage[Wish], error) {
	record, err := s.publicRecord(ctx, slug)
	if err != nil {
		return domain.CursorPage[Wish]{}, err
	}
	if !record.WishesEnabled {
		return domain.CursorPage[Wish]{}, nil
	}
	return s.wishes.List(ctx, record.ID, repositories.SubmissionListFilter{Pagination: pager})
}

func (s *guestService) publicRecord(ctx context.Context, slug string) (WeddingRecord, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return WeddingRecord{}, ErrWeddingNotFound
	}
	record, err := s.weddings.FindByID(ctx, slug)
	if err != nil {
		if isRepositoryNotFound(err) {
			return WeddingRecord{}, ErrWeddingNotFound
		}
		return WeddingRecord{}, err
	}
	return record, nil
}

func (s *guestService) ownedRecord(ctx context.Context, weddingID, actorID string) (WeddingRecord, error) {
	weddingID = strings.TrimSpace(weddingID)
	if weddingID == "" {
		return WeddingRecord{}, errors.New("guest service: wedding id is required")
	}
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return WeddingRecord{}, errors.New("guest service: actor id is required")
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

func (s *guestService) publish(ctx context.Context, event WeddingEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishWeddingEvent(ctx, event); err != nil {
		s.logger(ctx, "guest.event_publish_failed", map[string]any{
			"weddingId": event.WeddingID,
			"type":      event.Type,
			"error":     err.Error(),
		})
	}
}

func (s *guestService) sanitize(value string) string {
	return strings.TrimSpace(s.policy.Sanitize(value))
}
