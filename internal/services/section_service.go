package services

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "github.com/wedloom/api/internal/domain"
	"github.com/wedloom/api/internal/repositories"
)

// SectionServiceDeps groups constructor parameters for the section service.
type SectionServiceDeps struct {
	Weddings repositories.WeddingRepository
	Events   WeddingEventPublisher
	Clock    func() time.Time
}

type sectionService struct {
	weddings repositories.WeddingRepository
	events   WeddingEventPublisher
	clock    func() time.Time
}

var _ SectionService = (*sectionService)(nil)

// NewSectionService constructs the section ordering service.
func NewSectionService(deps SectionServiceDeps) (SectionService, error) {
	if deps.Weddings == nil {
		return nil, ErrWeddingRepositoryMissing
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &sectionService{
		weddings: deps.Weddings,
		events:   deps.Events,
		clock:    func() time.Time { return clock().UTC() },
	}, nil
}

// ListSections returns the site's section list with registry defaults
// applied. A record persisted before a registry addition gains the missing
// section at the end; the decorated list is written back so the next read
// needs no repair.
func (s *sectionService) ListSections(ctx context.Context, cmd WeddingReadCommand) ([]Section, error) {
	record, err := s.ownedRecord(ctx, cmd.WeddingID, cmd.ActorID)
	if err != nil {
		return nil, err
	}
	sections := domain.InitializeSections(record.Sections)
	if len(sections) != len(record.Sections) {
		if err := s.weddings.SetSections(ctx, record.ID, sections); err != nil {
			return nil, err
		}
	}
	return sections, nil
}

// Reorder moves the section at FromIndex to ToIndex and persists the
// renumbered list. Out-of-range indices leave the order untouched.
func (s *sectionService) Reorder(ctx context.Context, cmd ReorderSectionsCommand) ([]Section, error) {
	record, err := s.ownedRecord(ctx, cmd.WeddingID, cmd.ActorID)
	if err != nil {
		return nil, err
	}
	sections := domain.InitializeSections(record.Sections)
	reordered := domain.ReorderSections(sections, cmd.FromIndex, cmd.ToIndex)
	if err := s.weddings.SetSections(ctx, record.ID, reordered); err != nil {
		return nil, err
	}
	return reordered, nil
}

// Toggle flips one section's visibility. Unknown section ids are rejected.
func (s *sectionService) Toggle(ctx context.Context, cmd ToggleSectionCommand) ([]Section, error) {
	sectionID := strings.TrimSpace(cmd.SectionID)
	if !domain.KnownSectionID(sectionID) {
		return nil, ErrUnknownSection
	}
	record, err := s.ownedRecord(ctx, cmd.WeddingID, cmd.ActorID)
	if err != nil {
		return nil, err
	}
	sections := domain.ToggleSection(domain.InitializeSections(record.Sections), sectionID)
	if err := s.weddings.SetSections(ctx, record.ID, sections); err != nil {
		return nil, err
	}
	if s.events != nil {
		_ = s.events.PublishWeddingEvent(ctx, WeddingEvent{
			Type:       WeddingEventSectionToggled,
			WeddingID:  record.ID,
			OwnerID:    record.OwnerID,
			SectionID:  sectionID,
			OccurredAt: s.clock(),
		})
	}
	return sections, nil
}

func (s *sectionService) ownedRecord(ctx context.Context, weddingID, actorID string) (WeddingRecord, error) {
	weddingID = strings.TrimSpace(weddingID)
	if weddingID == "" {
		return WeddingRecord{}, errors.New("section service: wedding id is required")
	}
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return WeddingRecord{}, errors.New("section service: actor id is required")
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
