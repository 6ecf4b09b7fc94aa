package domain

import "time"

// WeddingRecord is the flat persisted field bag for one couple's site. The
// document id doubles as the public slug. Customizers mutate it through
// partial field patches only; the full record is never overwritten in place.
type WeddingRecord struct {
	ID        string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time

	GroomName string
	BrideName string
	EventDate *time.Time

	// Theming.
	Color          string
	CustomColor    string
	CustomEndColor string
	FlowerFrame    string
	Effect         string
	HeroImageURL   string
	ImageScale     float64
	ImageOffsetX   float64
	ImageOffsetY   float64

	// Per-section sub-bags.
	VideoTitle       string
	VideoDescription string
	VideoURL         string

	StoryTitle       string
	StoryDescription string
	StoryEvents      []StoryEvent

	BrideGroomTitle       string
	BrideGroomDescription string
	GroomBio              string
	GroomImage            string
	BrideBio              string
	BrideImage            string

	GiftTitle       string
	GiftDescription string
	BankAccounts    []BankAccount

	RSVPTitle       string
	RSVPDescription string
	RSVPDeadline    *time.Time

	MusicTitle       string
	MusicDescription string
	MusicURLs        []string

	WishesTitle       string
	WishesDescription string
	WishesEnabled     bool

	AlbumTitle       string
	AlbumDescription string
	AlbumImages      []string

	EventsTitle       string
	EventsDescription string
	Events            []AgendaEvent

	Sections []Section
}

// StoryEvent is one entry on the Story section's timeline. Position
// alternates left/right by default and may be overridden per entry.
type StoryEvent struct {
	ID          string
	Date        string
	Title       string
	Description string
	Image       string
	Position    string
}

// Story event positions.
const (
	StoryPositionLeft  = "left"
	StoryPositionRight = "right"
)

// BankAccount is one entry of the Gift section. No uniqueness is enforced
// beyond the id.
type BankAccount struct {
	ID            string
	BankName      string
	AccountNumber string
	AccountName   string
	QRCode        string
}

// AgendaEvent is one scheduled ceremony entry of the Events section.
type AgendaEvent struct {
	ID          string
	Title       string
	Time        string
	Venue       string
	Address     string
	MapURL      string
	Description string
}

// RSVPSubmission is one public attendance reply, stored under the wedding
// document.
type RSVPSubmission struct {
	ID         string
	WeddingID  string
	Name       string
	Attending  bool
	GuestCount int
	Message    string
	CreatedAt  time.Time
}

// Wish is one public guestbook entry, stored under the wedding document.
type Wish struct {
	ID        string
	WeddingID string
	Name      string
	Message   string
	CreatedAt time.Time
}

// Notification is a global announcement managed by administrators and shown
// to every signed-in user.
type Notification struct {
	ID        string
	Title     string
	Body      string
	Level     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Notification levels.
const (
	NotificationLevelInfo    = "info"
	NotificationLevelWarning = "warning"
)
