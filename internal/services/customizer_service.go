package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	domain "github.com/wedloom/api/internal/domain"
	"github.com/wedloom/api/internal/repositories"
)

const (
	maxSectionTitleLength       = 120
	maxSectionDescriptionLength = 2000
	maxStoryEvents              = 30
	maxBankAccounts             = 10
	maxAlbumImages              = 60
	maxMusicTracks              = 20
)

// CustomizerServiceDeps groups constructor parameters for the customizer service.
type CustomizerServiceDeps struct {
	Weddings repositories.WeddingRepository
	Events   WeddingEventPublisher
	Clock    func() time.Time
	Logger   func(ctx context.Context, event string, fields map[string]any)
}

type customizerService struct {
	weddings repositories.WeddingRepository
	events   WeddingEventPublisher
	clock    func() time.Time
	logger   func(ctx context.Context, event string, fields map[string]any)
	policy   *bluemonday.Policy
}

var _ CustomizerService = (*customizerService)(nil)

// NewCustomizerService constructs the per-section edit pipeline.
func NewCustomizerService(deps CustomizerServiceDeps) (CustomizerService, error) {
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
	return &customizerService{
		weddings: deps.Weddings,
		events:   deps.Events,
		clock:    func() time.Time { return clock().UTC() },
		logger:   logger,
		policy:   bluemonday.StrictPolicy(),
	}, nil
}

// Preview overlays the draft settings on the persisted record and returns
// the resulting render model without writing anything.
func (s *customizerService) Preview(ctx context.Context, cmd CustomizeSectionCommand) (WeddingViewModel, error) {
	record, sectionID, settings, err := s.prepare(ctx, cmd)
	if err != nil {
		return WeddingViewModel{}, err
	}
	fields := domain.ToPersistedFields(sectionID, settings)
	overlayFields(&record, fields)
	return domain.ToViewModel(record), nil
}

// Save validates the draft and patches only the edited section's fields.
// Sibling sections never change, and a draft that reduces to no persistable
// values is rejected rather than issuing an empty write.
func (s *customizerService) Save(ctx context.Context, cmd CustomizeSectionCommand) (WeddingRecord, error) {
	record, sectionID, settings, err := s.prepare(ctx, cmd)
	if err != nil {
		return WeddingRecord{}, err
	}
	fields := domain.ToPersistedFields(sectionID, settings)
	if len(fields) == 0 {
		return WeddingRecord{}, ErrNothingToSave
	}
	if err := s.weddings.UpdateFields(ctx, record.ID, fields); err != nil {
		return WeddingRecord{}, err
	}
	overlayFields(&record, fields)
	record.UpdatedAt = s.clock()

	if s.events != nil {
		_ = s.events.PublishWeddingEvent(ctx, WeddingEvent{
			Type:       WeddingEventSectionSaved,
			WeddingID:  record.ID,
			OwnerID:    record.OwnerID,
			SectionID:  sectionID,
			OccurredAt: record.UpdatedAt,
		})
	}
	s.logger(ctx, "customizer.saved", map[string]any{
		"weddingId": record.ID,
		"sectionId": sectionID,
		"fields":    len(fields),
	})
	return record, nil
}

// Reset discards the caller's draft by re-reading the persisted state.
func (s *customizerService) Reset(ctx context.Context, cmd ResetSectionCommand) (WeddingViewModel, error) {
	if !domain.CustomizableSectionID(strings.TrimSpace(cmd.SectionID)) {
		return WeddingViewModel{}, ErrUnknownSection
	}
	record, err := s.ownedRecord(ctx, cmd.WeddingID, cmd.ActorID)
	if err != nil {
		return WeddingViewModel{}, err
	}
	return domain.ToViewModel(record), nil
}

func (s *customizerService) prepare(ctx context.Context, cmd CustomizeSectionCommand) (WeddingRecord, string, SectionSettings, error) {
	sectionID := strings.TrimSpace(cmd.SectionID)
	if !domain.CustomizableSectionID(sectionID) {
		return WeddingRecord{}, "", SectionSettings{}, ErrUnknownSection
	}
	settings, err := s.validateSettings(sectionID, cmd.Settings)
	if err != nil {
		return WeddingRecord{}, "", SectionSettings{}, err
	}
	record, err := s.ownedRecord(ctx, cmd.WeddingID, cmd.ActorID)
	if err != nil {
		return WeddingRecord{}, "", SectionSettings{}, err
	}
	return record, sectionID, settings, nil
}

func (s *customizerService) ownedRecord(ctx context.Context, weddingID, actorID string) (WeddingRecord, error) {
	weddingID = strings.TrimSpace(weddingID)
	if weddingID == "" {
		return WeddingRecord{}, errors.New("customizer service: wedding id is required")
	}
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return WeddingRecord{}, errors.New("customizer service: actor id is required")
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

// validateSettings enforces per-section limits, strips markup from free text,
// and normalises values. It returns a copy so callers' drafts are never
// mutated.
func (s *customizerService) validateSettings(sectionID string, settings SectionSettings) (SectionSettings, error) {
	switch sectionID {
	case domain.SectionHero:
		if settings.Hero == nil {
			break
		}
		hero := *settings.Hero
		hero.GroomName = s.scrub(hero.GroomName)
		hero.BrideName = s.scrub(hero.BrideName)
		if err := checkLength("groom name", hero.GroomName, maxSectionTitleLength); err != nil {
			return settings, err
		}
		if err := checkLength("bride name", hero.BrideName, maxSectionTitleLength); err != nil {
			return settings, err
		}
		settings.Hero = &hero
	case domain.SectionVideo:
		if settings.Video == nil {
			break
		}
		video := *settings.Video
		video.Title = s.scrub(video.Title)
		video.Description = s.scrub(video.Description)
		if err := checkTitleAndDescription(video.Title, video.Description); err != nil {
			return settings, err
		}
		if trimmed := strings.TrimSpace(video.URL); trimmed != "" {
			canonical, err := CanonicalYouTubeEmbedURL(trimmed)
			if err != nil {
				return settings, err
			}
			video.URL = canonical
		}
		settings.Video = &video
	case domain.SectionAlbum:
		if settings.Album == nil {
			break
		}
		album := *settings.Album
		album.Title = s.scrub(album.Title)
		album.Description = s.scrub(album.Description)
		if err := checkTitleAndDescription(album.Title, album.Description); err != nil {
			return settings, err
		}
		if len(album.Images) > maxAlbumImages {
			return settings, fmt.Errorf("customizer service: album exceeds %d images", maxAlbumImages)
		}
		settings.Album = &album
	case domain.SectionStory:
		if settings.Story == nil {
			break
		}
		story := *settings.Story
		story.Title = s.scrub(story.Title)
		story.Description = s.scrub(story.Description)
		if err := checkTitleAndDescription(story.Title, story.Description); err != nil {
			return settings, err
		}
		if len(story.Events) > maxStoryEvents {
			return settings, fmt.Errorf("customizer service: story exceeds %d events", maxStoryEvents)
		}
		if len(story.Events) > 0 {
			events := make([]domain.StoryEvent, len(story.Events))
			copy(events, story.Events)
			for i := range events {
				events[i].Title = s.scrub(events[i].Title)
				events[i].Description = s.scrub(events[i].Description)
				if err := checkLength("story event title", events[i].Title, maxSectionTitleLength); err != nil {
					return settings, err
				}
			}
			story.Events = events
		}
		settings.Story = &story
	case domain.SectionBrideGroom:
		if settings.BrideGroom == nil {
			break
		}
		brideGroom := *settings.BrideGroom
		brideGroom.Title = s.scrub(brideGroom.Title)
		brideGroom.Description = s.scrub(brideGroom.Description)
		brideGroom.GroomBio = s.scrub(brideGroom.GroomBio)
		brideGroom.BrideBio = s.scrub(brideGroom.BrideBio)
		if err := checkTitleAndDescription(brideGroom.Title, brideGroom.Description); err != nil {
			return settings, err
		}
		settings.BrideGroom = &brideGroom
	case domain.SectionEvents:
		if settings.Events == nil {
			break
		}
		agenda := *settings.Events
		agenda.Title = s.scrub(agenda.Title)
		agenda.Description = s.scrub(agenda.Description)
		if err := checkTitleAndDescription(agenda.Title, agenda.Description); err != nil {
			return settings, err
		}
		settings.Events = &agenda
	case domain.SectionWishes:
		if settings.Wishes == nil {
			break
		}
		wishes := *settings.Wishes
		wishes.Title = s.scrub(wishes.Title)
		wishes.Description = s.scrub(wishes.Description)
		if err := checkTitleAndDescription(wishes.Title, wishes.Description); err != nil {
			return settings, err
		}
		settings.Wishes = &wishes
	case domain.SectionGift:
		if settings.Gift == nil {
			break
		}
		gift := *settings.Gift
		gift.Title = s.scrub(gift.Title)
		gift.Description = s.scrub(gift.Description)
		if err := checkTitleAndDescription(gift.Title, gift.Description); err != nil {
			return settings, err
		}
		if len(gift.BankAccounts) > maxBankAccounts {
			return settings, fmt.Errorf("customizer service: gift exceeds %d accounts", maxBankAccounts)
		}
		settings.Gift = &gift
	case domain.SectionMusic:
		if settings.Music == nil {
			break
		}
		music := *settings.Music
		music.Title = s.scrub(music.Title)
		music.Description = s.scrub(music.Description)
		if err := checkTitleAndDescription(music.Title, music.Description); err != nil {
			return settings, err
		}
		if len(music.URLs) > maxMusicTracks {
			return settings, fmt.Errorf("customizer service: music exceeds %d tracks", maxMusicTracks)
		}
		settings.Music = &music
	case domain.SectionRSVP:
		if settings.RSVP == nil {
			break
		}
		rsvp := *settings.RSVP
		rsvp.Title = s.scrub(rsvp.Title)
		rsvp.Description = s.scrub(rsvp.Description)
		if err := checkTitleAndDescription(rsvp.Title, rsvp.Description); err != nil {
			return settings, err
		}
		settings.RSVP = &rsvp
	}
	return settings, nil
}

// scrub drops any markup a couple pastes into free text. Titles and
// descriptions render into site HTML, so they get the same strict policy the
// guest service applies to wishes.
func (s *customizerService) scrub(value string) string {
	return strings.TrimSpace(s.policy.Sanitize(value))
}

func checkTitleAndDescription(title, description string) error {
	if err := checkLength("title", title, maxSectionTitleLength); err != nil {
		return err
	}
	return checkLength("description", description, maxSectionDescriptionLength)
}

func checkLength(field, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return fmt.Errorf("customizer service: %s exceeds %d characters", field, limit)
	}
	return nil
}

// CanonicalYouTubeEmbedURL normalises the supported YouTube URL shapes
// (watch, youtu.be, shorts, embed) into the embed form used by the player.
func CanonicalYouTubeEmbedURL(raw string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", ErrInvalidVideoURL
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", ErrInvalidVideoURL
	}

	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")

	videoID := ""
	switch host {
	case "youtube.com", "youtube-nocookie.com":
		segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
		switch {
		case parsed.Path == "/watch":
			videoID = parsed.Query().Get("v")
		case len(segments) == 2 && (segments[0] == "embed" || segments[0] == "shorts" || segments[0] == "live" || segments[0] == "v"):
			videoID = segments[1]
		}
	case "youtu.be":
		videoID = strings.Trim(parsed.Path, "/")
	default:
		return "", ErrInvalidVideoURL
	}

	videoID = strings.TrimSpace(videoID)
	if videoID == "" || strings.ContainsAny(videoID, "/?&#") {
		return "", ErrInvalidVideoURL
	}
	return "https://www.youtube.com/embed/" + videoID, nil
}

// overlayFields applies a persisted-field patch onto the in-memory record so
// the caller sees the post-save state without a re-read.
func overlayFields(record *domain.WeddingRecord, fields map[string]any) {
	for key, value := range fields {
		switch key {
		case "groomName":
			record.GroomName = value.(string)
		case "brideName":
			record.BrideName = value.(string)
		case "eventDate":
			ts := value.(time.Time)
			record.EventDate = &ts
		case "color":
			record.Color = value.(string)
		case "customColor":
			record.CustomColor = value.(string)
		case "customEndColor":
			record.CustomEndColor = value.(string)
		case "flowerFrame":
			record.FlowerFrame = value.(string)
		case "effect":
			record.Effect = value.(string)
		case "heroImageUrl":
			record.HeroImageURL = value.(string)
		case "imageScale":
			record.ImageScale = value.(float64)
		case "imageOffsetX":
			record.ImageOffsetX = value.(float64)
		case "imageOffsetY":
			record.ImageOffsetY = value.(float64)
		case "videoTitle":
			record.VideoTitle = value.(string)
		case "videoDescription":
			record.VideoDescription = value.(string)
		case "videoUrl":
			record.VideoURL = value.(string)
		case "albumTitle":
			record.AlbumTitle = value.(string)
		case "albumDescription":
			record.AlbumDescription = value.(string)
		case "albumImages":
			record.AlbumImages = value.([]string)
		case "storyTitle":
			record.StoryTitle = value.(string)
		case "storyDescription":
			record.StoryDescription = value.(string)
		case "storyEvents":
			record.StoryEvents = value.([]domain.StoryEvent)
		case "brideGroomTitle":
			record.BrideGroomTitle = value.(string)
		case "brideGroomDescription":
			record.BrideGroomDescription = value.(string)
		case "groomBio":
			record.GroomBio = value.(string)
		case "groomImage":
			record.GroomImage = value.(string)
		case "brideBio":
			record.BrideBio = value.(string)
		case "brideImage":
			record.BrideImage = value.(string)
		case "eventsTitle":
			record.EventsTitle = value.(string)
		case "eventsDescription":
			record.EventsDescription = value.(string)
		case "events":
			record.Events = value.([]domain.AgendaEvent)
		case "wishesTitle":
			record.WishesTitle = value.(string)
		case "wishesDescription":
			record.WishesDescription = value.(string)
		case "wishesEnabled":
			record.WishesEnabled = value.(bool)
		case "giftTitle":
			record.GiftTitle = value.(string)
		case "giftDescription":
			record.GiftDescription = value.(string)
		case "bankAccounts":
			record.BankAccounts = value.([]domain.BankAccount)
		case "musicTitle":
			record.MusicTitle = value.(string)
		case "musicDescription":
			record.MusicDescription = value.(string)
		case "musicUrls":
			record.MusicURLs = value.([]string)
		case "rsvpTitle":
			record.RSVPTitle = value.(string)
		case "rsvpDescription":
			record.RSVPDescription = value.(string)
		case "rsvpDeadline":
			ts := value.(time.Time)
			record.RSVPDeadline = &ts
		}
	}
}
