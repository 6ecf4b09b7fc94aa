package domain

import (
	"strings"
	"time"
)

// Default display copy applied when the record leaves a field unset, so a
// brand-new record still renders every section.
const (
	DefaultVideoTitle      = "Video cưới"
	DefaultAlbumTitle      = "Album ảnh"
	DefaultStoryTitle      = "Chuyện tình yêu"
	DefaultBrideGroomTitle = "Cô dâu & Chú rể"
	DefaultEventsTitle     = "Sự kiện cưới"
	DefaultWishesTitle     = "Sổ lưu bút"
	DefaultGiftTitle       = "Mừng cưới"
	DefaultMusicTitle      = "Nhạc nền"
	DefaultRSVPTitle       = "Xác nhận tham dự"

	DefaultColor      = "blush"
	DefaultImageScale = 1.0
)

// HeroSettings is the view model for the hero/theme block.
type HeroSettings struct {
	GroomName      string
	BrideName      string
	EventDate      *time.Time
	Color          string
	CustomColor    string
	CustomEndColor string
	FlowerFrame    string
	Effect         string
	HeroImageURL   string
	ImageScale     float64
	ImageOffsetX   float64
	ImageOffsetY   float64
}

// VideoSettings is the view model for the video block.
type VideoSettings struct {
	Title       string
	Description string
	URL         string
}

// AlbumSettings is the view model for the photo album block.
type AlbumSettings struct {
	Title       string
	Description string
	Images      []string
}

// StorySettings is the view model for the story timeline block.
type StorySettings struct {
	Title       string
	Description string
	Events      []StoryEvent
}

// BrideGroomSettings is the view model for the couple introduction block.
type BrideGroomSettings struct {
	Title       string
	Description string
	GroomBio    string
	GroomImage  string
	BrideBio    string
	BrideImage  string
}

// EventsSettings is the view model for the ceremony agenda block.
type EventsSettings struct {
	Title       string
	Description string
	Events      []AgendaEvent
}

// WishesSettings is the view model for the guestbook block.
type WishesSettings struct {
	Title       string
	Description string
	Enabled     bool
}

// GiftSettings is the view model for the gift/bank account block.
type GiftSettings struct {
	Title        string
	Description  string
	BankAccounts []BankAccount
}

// MusicSettings is the view model for background music.
type MusicSettings struct {
	Title       string
	Description string
	URLs        []string
}

// RSVPSettings is the view model for the attendance form.
type RSVPSettings struct {
	Title       string
	Description string
	Deadline    *time.Time
}

// WeddingViewModel is the fully populated render model for one site. Every
// section is present with defaults applied; rendering never needs to guard
// against missing data.
type WeddingViewModel struct {
	Slug       string
	Hero       HeroSettings
	Video      VideoSettings
	Album      AlbumSettings
	Story      StorySettings
	BrideGroom BrideGroomSettings
	Events     EventsSettings
	Wishes     WishesSettings
	Gift       GiftSettings
	Music      MusicSettings
	RSVP       RSVPSettings
	Sections   []Section
}

// SectionSettings carries the edit payload for exactly one section; the
// pointer matching the section id is consulted, the rest are ignored. The
// union keeps ToPersistedFields exhaustive over the section id enumeration.
type SectionSettings struct {
	Hero       *HeroSettings
	Video      *VideoSettings
	Album      *AlbumSettings
	Story      *StorySettings
	BrideGroom *BrideGroomSettings
	Events     *EventsSettings
	Wishes     *WishesSettings
	Gift       *GiftSettings
	Music      *MusicSettings
	RSVP       *RSVPSettings
}

// ToViewModel maps a persisted record into per-section view models with
// documented defaults filled in. It is total: any record, including a
// freshly created one, yields a renderable model.
func ToViewModel(record WeddingRecord) WeddingViewModel {
	vm := WeddingViewModel{
		Slug: record.ID,
		Hero: HeroSettings{
			GroomName:      record.GroomName,
			BrideName:      record.BrideName,
			EventDate:      record.EventDate,
			Color:          defaultString(record.Color, DefaultColor),
			CustomColor:    record.CustomColor,
			CustomEndColor: record.CustomEndColor,
			FlowerFrame:    record.FlowerFrame,
			Effect:         record.Effect,
			HeroImageURL:   record.HeroImageURL,
			ImageScale:     record.ImageScale,
			ImageOffsetX:   record.ImageOffsetX,
			ImageOffsetY:   record.ImageOffsetY,
		},
		Video: VideoSettings{
			Title:       defaultString(record.VideoTitle, DefaultVideoTitle),
			Description: record.VideoDescription,
			URL:         record.VideoURL,
		},
		Album: AlbumSettings{
			Title:       defaultString(record.AlbumTitle, DefaultAlbumTitle),
			Description: record.AlbumDescription,
			Images:      cloneStrings(record.AlbumImages),
		},
		Story: StorySettings{
			Title:       defaultString(record.StoryTitle, DefaultStoryTitle),
			Description: record.StoryDescription,
			Events:      defaultStoryPositions(record.StoryEvents),
		},
		BrideGroom: BrideGroomSettings{
			Title:       defaultString(record.BrideGroomTitle, DefaultBrideGroomTitle),
			Description: record.BrideGroomDescription,
			GroomBio:    record.GroomBio,
			GroomImage:  record.GroomImage,
			BrideBio:    record.BrideBio,
			BrideImage:  record.BrideImage,
		},
		Events: EventsSettings{
			Title:       defaultString(record.EventsTitle, DefaultEventsTitle),
			Description: record.EventsDescription,
			Events:      cloneAgenda(record.Events),
		},
		Wishes: WishesSettings{
			Title:       defaultString(record.WishesTitle, DefaultWishesTitle),
			Description: record.WishesDescription,
			Enabled:     record.WishesEnabled,
		},
		Gift: GiftSettings{
			Title:        defaultString(record.GiftTitle, DefaultGiftTitle),
			Description:  record.GiftDescription,
			BankAccounts: cloneAccounts(record.BankAccounts),
		},
		Music: MusicSettings{
			Title:       defaultString(record.MusicTitle, DefaultMusicTitle),
			Description: record.MusicDescription,
			URLs:        cloneStrings(record.MusicURLs),
		},
		RSVP: RSVPSettings{
			Title:       defaultString(record.RSVPTitle, DefaultRSVPTitle),
			Description: record.RSVPDescription,
			Deadline:    record.RSVPDeadline,
		},
		Sections: InitializeSections(record.Sections),
	}
	if vm.Hero.ImageScale == 0 {
		vm.Hero.ImageScale = DefaultImageScale
	}
	return vm
}

// ToPersistedFields maps one section's settings back into the flat record
// field names owned by that section. Empty strings are dropped so a partial
// update never clobbers sibling fields with blanks, and fields belonging to
// other sections are never written. Unrecognised ids return an empty map:
// adding a section type must not break existing call sites.
func ToPersistedFields(sectionID string, settings SectionSettings) map[string]any {
	fields := map[string]any{}
	switch sectionID {
	case SectionHero:
		if settings.Hero == nil {
			break
		}
		s := settings.Hero
		putString(fields, "groomName", s.GroomName)
		putString(fields, "brideName", s.BrideName)
		if s.EventDate != nil && !s.EventDate.IsZero() {
			fields["eventDate"] = s.EventDate.UTC()
		}
		putString(fields, "color", s.Color)
		putString(fields, "customColor", s.CustomColor)
		putString(fields, "customEndColor", s.CustomEndColor)
		putString(fields, "flowerFrame", s.FlowerFrame)
		putString(fields, "effect", s.Effect)
		putString(fields, "heroImageUrl", s.HeroImageURL)
		if s.ImageScale != 0 && s.ImageScale != DefaultImageScale {
			fields["imageScale"] = s.ImageScale
		}
		if s.ImageOffsetX != 0 {
			fields["imageOffsetX"] = s.ImageOffsetX
		}
		if s.ImageOffsetY != 0 {
			fields["imageOffsetY"] = s.ImageOffsetY
		}
	case SectionVideo:
		if settings.Video == nil {
			break
		}
		putString(fields, "videoTitle", settings.Video.Title)
		putString(fields, "videoDescription", settings.Video.Description)
		putString(fields, "videoUrl", settings.Video.URL)
	case SectionAlbum:
		if settings.Album == nil {
			break
		}
		putString(fields, "albumTitle", settings.Album.Title)
		putString(fields, "albumDescription", settings.Album.Description)
		if len(settings.Album.Images) > 0 {
			fields["albumImages"] = cloneStrings(settings.Album.Images)
		}
	case SectionStory:
		if settings.Story == nil {
			break
		}
		putString(fields, "storyTitle", settings.Story.Title)
		putString(fields, "storyDescription", settings.Story.Description)
		if len(settings.Story.Events) > 0 {
			fields["storyEvents"] = defaultStoryPositions(settings.Story.Events)
		}
	case SectionBrideGroom:
		if settings.BrideGroom == nil {
			break
		}
		s := settings.BrideGroom
		putString(fields, "brideGroomTitle", s.Title)
		putString(fields, "brideGroomDescription", s.Description)
		putString(fields, "groomBio", s.GroomBio)
		putString(fields, "groomImage", s.GroomImage)
		putString(fields, "brideBio", s.BrideBio)
		putString(fields, "brideImage", s.BrideImage)
	case SectionEvents:
		if settings.Events == nil {
			break
		}
		putString(fields, "eventsTitle", settings.Events.Title)
		putString(fields, "eventsDescription", settings.Events.Description)
		if len(settings.Events.Events) > 0 {
			fields["events"] = cloneAgenda(settings.Events.Events)
		}
	case SectionWishes:
		if settings.Wishes == nil {
			break
		}
		putString(fields, "wishesTitle", settings.Wishes.Title)
		putString(fields, "wishesDescription", settings.Wishes.Description)
		fields["wishesEnabled"] = settings.Wishes.Enabled
	case SectionGift:
		if settings.Gift == nil {
			break
		}
		putString(fields, "giftTitle", settings.Gift.Title)
		putString(fields, "giftDescription", settings.Gift.Description)
		if len(settings.Gift.BankAccounts) > 0 {
			fields["bankAccounts"] = cloneAccounts(settings.Gift.BankAccounts)
		}
	case SectionMusic:
		if settings.Music == nil {
			break
		}
		putString(fields, "musicTitle", settings.Music.Title)
		putString(fields, "musicDescription", settings.Music.Description)
		if len(settings.Music.URLs) > 0 {
			fields["musicUrls"] = cloneStrings(settings.Music.URLs)
		}
	case SectionRSVP:
		if settings.RSVP == nil {
			break
		}
		putString(fields, "rsvpTitle", settings.RSVP.Title)
		putString(fields, "rsvpDescription", settings.RSVP.Description)
		if settings.RSVP.Deadline != nil && !settings.RSVP.Deadline.IsZero() {
			fields["rsvpDeadline"] = settings.RSVP.Deadline.UTC()
		}
	}
	return fields
}

// defaultStoryPositions fills unset timeline positions, alternating
// left/right in list order. Explicit positions are kept.
func defaultStoryPositions(events []StoryEvent) []StoryEvent {
	if len(events) == 0 {
		return nil
	}
	out := make([]StoryEvent, len(events))
	copy(out, events)
	for i := range out {
		if out[i].Position != StoryPositionLeft && out[i].Position != StoryPositionRight {
			if i%2 == 0 {
				out[i].Position = StoryPositionLeft
			} else {
				out[i].Position = StoryPositionRight
			}
		}
	}
	return out
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func putString(fields map[string]any, key, value string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return
	}
	fields[key] = trimmed
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

func cloneAccounts(values []BankAccount) []BankAccount {
	if len(values) == 0 {
		return nil
	}
	out := make([]BankAccount, len(values))
	copy(out, values)
	return out
}

func cloneAgenda(values []AgendaEvent) []AgendaEvent {
	if len(values) == 0 {
		return nil
	}
	out := make([]AgendaEvent, len(values))
	copy(out, values)
	return out
}
