package services

import (
	"context"
	"time"

	domain "github.com/wedloom/api/internal/domain"
)

// Type aliases expose domain models to the services package without reversing dependency direction.
type (
	Pagination         = domain.Pagination
	SortOrder          = domain.SortOrder
	WeddingRecord      = domain.WeddingRecord
	WeddingViewModel   = domain.WeddingViewModel
	Section            = domain.Section
	SectionSettings    = domain.SectionSettings
	StoryEvent         = domain.StoryEvent
	BankAccount        = domain.BankAccount
	AgendaEvent        = domain.AgendaEvent
	RSVPSubmission     = domain.RSVPSubmission
	Wish               = domain.Wish
	Notification       = domain.Notification
	Tier               = domain.Tier
	VipFeature         = domain.VipFeature
	CatalogEntry       = domain.CatalogEntry
	SystemHealthReport = domain.SystemHealthReport
)

// WeddingService owns the site lifecycle: slug reservation on create,
// owner-scoped reads, and teardown of the document tree.
type WeddingService interface {
	CreateWedding(ctx context.Context, cmd CreateWeddingCommand) (WeddingRecord, error)
	GetWedding(ctx context.Context, cmd WeddingReadCommand) (WeddingRecord, error)
	ListWeddings(ctx context.Context, filter WeddingListFilter) (domain.CursorPage[WeddingRecord], error)
	DeleteWedding(ctx context.Context, cmd DeleteWeddingCommand) error
	CheckSlug(ctx context.Context, cmd CheckSlugCommand) (SlugAvailability, error)
	PublicSite(ctx context.Context, slug string) (WeddingViewModel, error)
}

// SectionService manages the per-site section list: seeding defaults,
// drag-reordering, and visibility toggles.
type SectionService interface {
	ListSections(ctx context.Context, cmd WeddingReadCommand) ([]Section, error)
	Reorder(ctx context.Context, cmd ReorderSectionsCommand) ([]Section, error)
	Toggle(ctx context.Context, cmd ToggleSectionCommand) ([]Section, error)
}

// CustomizerService drives the shared edit pipeline behind every section's
// editor panel: preview against draft settings, persist only the edited
// section's fields, or discard the draft.
type CustomizerService interface {
	Preview(ctx context.Context, cmd CustomizeSectionCommand) (WeddingViewModel, error)
	Save(ctx context.Context, cmd CustomizeSectionCommand) (WeddingRecord, error)
	Reset(ctx context.Context, cmd ResetSectionCommand) (WeddingViewModel, error)
}

// PricingService prices premium selections and exposes the option catalog.
type PricingService interface {
	Quote(ctx context.Context, cmd QuoteCommand) (PricingQuote, error)
	Catalog(ctx context.Context) (PricingCatalog, error)
}

// GuestService accepts public attendance replies and guestbook entries and
// lists them for the owning couple.
type GuestService interface {
	SubmitRSVP(ctx context.Context, cmd SubmitRSVPCommand) (RSVPSubmission, error)
	SubmitWish(ctx context.Context, cmd SubmitWishCommand) (Wish, error)
	ListRSVPs(ctx context.Context, cmd ListSubmissionsCommand) (domain.CursorPage[RSVPSubmission], error)
	ListWishes(ctx context.Context, cmd ListSubmissionsCommand) (domain.CursorPage[Wish], error)
	PublicWishes(ctx context.Context, slug string, pager Pagination) (domain.CursorPage[Wish], error)
}

// NotificationService manages operator announcements.
type NotificationService interface {
	ListActive(ctx context.Context) ([]Notification, error)
	List(ctx context.Context, pager Pagination) (domain.CursorPage[Notification], error)
	Upsert(ctx context.Context, cmd UpsertNotificationCommand) (Notification, error)
	Delete(ctx context.Context, notificationID string) error
}

// MediaService issues signed upload URLs for wedding imagery and audio.
type MediaService interface {
	IssueSignedUpload(ctx context.Context, cmd SignedUploadCommand) (SignedUploadResponse, error)
}

// SystemService aggregates health reporting and build metadata.
type SystemService interface {
	HealthReport(ctx context.Context) (SystemHealthReport, error)
}

// WeddingEventPublisher accepts site lifecycle notifications for downstream processing.
type WeddingEventPublisher interface {
	PublishWeddingEvent(ctx context.Context, event WeddingEvent) error
}

// Command and DTO definitions ------------------------------------------------

type CreateWeddingCommand struct {
	OwnerID    string
	GroomName  string
	BrideName  string
	EventDate  *time.Time
	CustomSlug string
}

// WeddingReadCommand identifies a wedding plus the caller for ownership checks.
type WeddingReadCommand struct {
	WeddingID string
	ActorID   string
}

type WeddingListFilter struct {
	OwnerID    string
	SortOrder  SortOrder
	Pagination Pagination
}

type DeleteWeddingCommand struct {
	WeddingID string
	ActorID   string
}

type CheckSlugCommand struct {
	GroomName string
	BrideName string
	EventDate *time.Time
	Slug      string
}

// SlugAvailability reports whether a slug can still be claimed and the
// normalised candidate that would be reserved.
type SlugAvailability struct {
	Slug      string
	Available bool
}

type ReorderSectionsCommand struct {
	WeddingID string
	ActorID   string
	FromIndex int
	ToIndex   int
}

type ToggleSectionCommand struct {
	WeddingID string
	ActorID   string
	SectionID string
}

type CustomizeSectionCommand struct {
	WeddingID string
	ActorID   string
	SectionID string
	Settings  SectionSettings
}

type ResetSectionCommand struct {
	WeddingID string
	ActorID   string
	SectionID string
}

type QuoteCommand struct {
	Color           string
	FlowerFrame     string
	Effect          string
	MusicTrackCount int
}

// PricingQuote itemises the premium features of a selection and totals them.
type PricingQuote struct {
	Tier           Tier
	Features       []VipFeature
	Total          int64
	FormattedTotal string
}

// PricingCatalog lists the selectable options per slot with their tier and price.
type PricingCatalog struct {
	Colors        []CatalogEntry
	FlowerFrames  []CatalogEntry
	Effects       []CatalogEntry
	MusicPerTrack int64
	FreeTracks    int
}

type SubmitRSVPCommand struct {
	Slug       string
	Name       string
	Attending  bool
	GuestCount int
	Message    string
}

type SubmitWishCommand struct {
	Slug    string
	Name    string
	Message string
}

type ListSubmissionsCommand struct {
	WeddingID  string
	ActorID    string
	Since      *time.Time
	Pagination Pagination
}

type UpsertNotificationCommand struct {
	NotificationID string
	Title          string
	Body           string
	Level          string
	Active         bool
	ActorID        string
}

type SignedUploadCommand struct {
	WeddingID   string
	ActorID     string
	Purpose     string
	FileName    string
	ContentType string
	SizeBytes   int64
}

// SignedUploadResponse carries everything the client needs to PUT the object.
type SignedUploadResponse struct {
	UploadURL  string
	Method     string
	ObjectPath string
	PublicURL  string
	ExpiresAt  time.Time
	Headers    map[string]string
}

// WeddingEvent is the message emitted on site lifecycle changes.
type WeddingEvent struct {
	Type       string
	WeddingID  string
	OwnerID    string
	SectionID  string
	OccurredAt time.Time
	Metadata   map[string]string
}

// Wedding event types.
const (
	WeddingEventCreated        = "wedding.created"
	WeddingEventDeleted        = "wedding.deleted"
	WeddingEventSectionSaved   = "wedding.section.saved"
	WeddingEventRSVPReceived   = "wedding.rsvp.received"
	WeddingEventWishReceived   = "wedding.wish.received"
	WeddingEventSectionToggled = "wedding.section.toggled"
)
