package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	domain "github.com/wedloom/api/internal/domain"
	"github.com/wedloom/api/internal/services"
)

// sectionSettingsRequest mirrors domain.SectionSettings for JSON decoding.
// Only the block matching the path's section id is consulted by the service;
// the rest are ignored.
type sectionSettingsRequest struct {
	Hero       *heroSettingsRequest       `json:"hero,omitempty"`
	Video      *videoSettingsRequest      `json:"video,omitempty"`
	Album      *albumSettingsRequest      `json:"album,omitempty"`
	Story      *storySettingsRequest      `json:"story,omitempty"`
	BrideGroom *brideGroomSettingsRequest `json:"brideGroom,omitempty"`
	Events     *eventsSettingsRequest     `json:"events,omitempty"`
	Wishes     *wishesSettingsRequest     `json:"wishes,omitempty"`
	Gift       *giftSettingsRequest       `json:"gift,omitempty"`
	Music      *musicSettingsRequest      `json:"music,omitempty"`
	RSVP       *rsvpSettingsRequest       `json:"rsvp,omitempty"`
}

type heroSettingsRequest struct {
	GroomName      string     `json:"groomName,omitempty"`
	BrideName      string     `json:"brideName,omitempty"`
	EventDate      *time.Time `json:"eventDate,omitempty"`
	Color          string     `json:"color,omitempty"`
	CustomColor    string     `json:"customColor,omitempty"`
	CustomEndColor string     `json:"customEndColor,omitempty"`
	FlowerFrame    string     `json:"flowerFrame,omitempty"`
	Effect         string     `json:"effect,omitempty"`
	HeroImageURL   string     `json:"heroImageUrl,omitempty"`
	ImageScale     float64    `json:"imageScale,omitempty"`
	ImageOffsetX   float64    `json:"imageOffsetX,omitempty"`
	ImageOffsetY   float64    `json:"imageOffsetY,omitempty"`
}

type videoSettingsRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

type albumSettingsRequest struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
}

type storySettingsRequest struct {
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	Events      []storyEventPayload `json:"events,omitempty"`
}

type brideGroomSettingsRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	GroomBio    string `json:"groomBio,omitempty"`
	GroomImage  string `json:"groomImage,omitempty"`
	BrideBio    string `json:"brideBio,omitempty"`
	BrideImage  string `json:"brideImage,omitempty"`
}

type eventsSettingsRequest struct {
	Title       string               `json:"title,omitempty"`
	Description string               `json:"description,omitempty"`
	Events      []agendaEventPayload `json:"events,omitempty"`
}

type wishesSettingsRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Enabled     bool   `json:"enabled"`
}

type giftSettingsRequest struct {
	Title        string               `json:"title,omitempty"`
	Description  string               `json:"description,omitempty"`
	BankAccounts []bankAccountPayload `json:"bankAccounts,omitempty"`
}

type musicSettingsRequest struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	URLs        []string `json:"urls,omitempty"`
}

type rsvpSettingsRequest struct {
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

func (req sectionSettingsRequest) toDomain() domain.SectionSettings {
	settings := domain.SectionSettings{}
	if req.Hero != nil {
		settings.Hero = &domain.HeroSettings{
			GroomName:      req.Hero.GroomName,
			BrideName:      req.Hero.BrideName,
			EventDate:      req.Hero.EventDate,
			Color:          req.Hero.Color,
			CustomColor:    req.Hero.CustomColor,
			CustomEndColor: req.Hero.CustomEndColor,
			FlowerFrame:    req.Hero.FlowerFrame,
			Effect:         req.Hero.Effect,
			HeroImageURL:   req.Hero.HeroImageURL,
			ImageScale:     req.Hero.ImageScale,
			ImageOffsetX:   req.Hero.ImageOffsetX,
			ImageOffsetY:   req.Hero.ImageOffsetY,
		}
	}
	if req.Video != nil {
		settings.Video = &domain.VideoSettings{
			Title:       req.Video.Title,
			Description: req.Video.Description,
			URL:         req.Video.URL,
		}
	}
	if req.Album != nil {
		settings.Album = &domain.AlbumSettings{
			Title:       req.Album.Title,
			Description: req.Album.Description,
			Images:      req.Album.Images,
		}
	}
	if req.Story != nil {
		events := make([]domain.StoryEvent, 0, len(req.Story.Events))
		for _, ev := range req.Story.Events {
			events = append(events, domain.StoryEvent(ev))
		}
		settings.Story = &domain.StorySettings{
			Title:       req.Story.Title,
			Description: req.Story.Description,
			Events:      events,
		}
	}
	if req.BrideGroom != nil {
		settings.BrideGroom = &domain.BrideGroomSettings{
			Title:       req.BrideGroom.Title,
			Description: req.BrideGroom.Description,
			GroomBio:    req.BrideGroom.GroomBio,
			GroomImage:  req.BrideGroom.GroomImage,
			BrideBio:    req.BrideGroom.BrideBio,
			BrideImage:  req.BrideGroom.BrideImage,
		}
	}
	if req.Events != nil {
		events := make([]domain.AgendaEvent, 0, len(req.Events.Events))
		for _, ev := range req.Events.Events {
			events = append(events, domain.AgendaEvent(ev))
		}
		settings.Events = &domain.EventsSettings{
			Title:       req.Events.Title,
			Description: req.Events.Description,
			Events:      events,
		}
	}
	if req.Wishes != nil {
		settings.Wishes = &domain.WishesSettings{
			Title:       req.Wishes.Title,
			Description: req.Wishes.Description,
			Enabled:     req.Wishes.Enabled,
		}
	}
	if req.Gift != nil {
		accounts := make([]domain.BankAccount, 0, len(req.Gift.BankAccounts))
		for _, account := range req.Gift.BankAccounts {
			accounts = append(accounts, domain.BankAccount(account))
		}
		settings.Gift = &domain.GiftSettings{
			Title:        req.Gift.Title,
			Description:  req.Gift.Description,
			BankAccounts: accounts,
		}
	}
	if req.Music != nil {
		settings.Music = &domain.MusicSettings{
			Title:       req.Music.Title,
			Description: req.Music.Description,
			URLs:        req.Music.URLs,
		}
	}
	if req.RSVP != nil {
		settings.RSVP = &domain.RSVPSettings{
			Title:       req.RSVP.Title,
			Description: req.RSVP.Description,
			Deadline:    req.RSVP.Deadline,
		}
	}
	return settings
}

func decodeCustomizeCommand(r *http.Request, actorID string) (services.CustomizeSectionCommand, error) {
	var req sectionSettingsRequest
	if err := decodeJSONBody(r, maxWeddingRequestBody, &req); err != nil {
		return services.CustomizeSectionCommand{}, err
	}
	return services.CustomizeSectionCommand{
		WeddingID: chi.URLParam(r, "weddingID"),
		ActorID:   actorID,
		SectionID: chi.URLParam(r, "sectionID"),
		Settings:  req.toDomain(),
	}, nil
}
