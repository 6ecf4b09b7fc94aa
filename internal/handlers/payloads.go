package handlers

import (
	domain "github.com/wedloom/api/internal/domain"
)

type sectionPayload struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Order   int    `json:"order"`
	Icon    string `json:"icon,omitempty"`
}

func sectionsPayload(sections []domain.Section) []sectionPayload {
	out := make([]sectionPayload, 0, len(sections))
	for _, sec := range sections {
		out = append(out, sectionPayload{
			ID:      sec.ID,
			Name:    sec.Name,
			Enabled: sec.Enabled,
			Order:   sec.Order,
			Icon:    sec.Icon,
		})
	}
	return out
}

type storyEventPayload struct {
	ID          string `json:"id,omitempty"`
	Date        string `json:"date,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Position    string `json:"position,omitempty"`
}

type bankAccountPayload struct {
	ID            string `json:"id,omitempty"`
	BankName      string `json:"bankName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	AccountName   string `json:"accountName,omitempty"`
	QRCode        string `json:"qrCode,omitempty"`
}

type agendaEventPayload struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title,omitempty"`
	Time        string `json:"time,omitempty"`
	Venue       string `json:"venue,omitempty"`
	Address     string `json:"address,omitempty"`
	MapURL      string `json:"mapUrl,omitempty"`
	Description string `json:"description,omitempty"`
}

func storyEventsPayload(events []domain.StoryEvent) []storyEventPayload {
	if len(events) == 0 {
		return nil
	}
	out := make([]storyEventPayload, 0, len(events))
	for _, ev := range events {
		out = append(out, storyEventPayload(ev))
	}
	return out
}

func bankAccountsPayload(accounts []domain.BankAccount) []bankAccountPayload {
	if len(accounts) == 0 {
		return nil
	}
	out := make([]bankAccountPayload, 0, len(accounts))
	for _, acc := range accounts {
		out = append(out, bankAccountPayload(acc))
	}
	return out
}

func agendaEventsPayload(events []domain.AgendaEvent) []agendaEventPayload {
	if len(events) == 0 {
		return nil
	}
	out := make([]agendaEventPayload, 0, len(events))
	for _, ev := range events {
		out = append(out, agendaEventPayload(ev))
	}
	return out
}

type weddingViewPayload struct {
	Slug string `json:"slug"`

	Hero struct {
		GroomName      string  `json:"groomName,omitempty"`
		BrideName      string  `json:"brideName,omitempty"`
		EventDate      string  `json:"eventDate,omitempty"`
		Color          string  `json:"color"`
		CustomColor    string  `json:"customColor,omitempty"`
		CustomEndColor string  `json:"customEndColor,omitempty"`
		FlowerFrame    string  `json:"flowerFrame,omitempty"`
		Effect         string  `json:"effect,omitempty"`
		HeroImageURL   string  `json:"heroImageUrl,omitempty"`
		ImageScale     float64 `json:"imageScale"`
		ImageOffsetX   float64 `json:"imageOffsetX"`
		ImageOffsetY   float64 `json:"imageOffsetY"`
	} `json:"hero"`

	Video struct {
		Title       string `json:"title"`
		Description string `json:"description,omitempty"`
		URL         string `json:"url,omitempty"`
	} `json:"video"`

	Album struct {
		Title       string   `json:"title"`
		Description string   `json:"description,omitempty"`
		Images      []string `json:"images,omitempty"`
	} `json:"album"`

	Story struct {
		Title       string              `json:"title"`
		Description string              `json:"description,omitempty"`
		Events      []storyEventPayload `json:"events,omitempty"`
	} `json:"story"`

	BrideGroom struct {
		Title       string `json:"title"`
		Description string `json:"description,omitempty"`
		GroomBio    string `json:"groomBio,omitempty"`
		GroomImage  string `json:"groomImage,omitempty"`
		BrideBio    string `json:"brideBio,omitempty"`
		BrideImage  string `json:"brideImage,omitempty"`
	} `json:"brideGroom"`

	Events struct {
		Title       string               `json:"title"`
		Description string               `json:"description,omitempty"`
		Events      []agendaEventPayload `json:"events,omitempty"`
	} `json:"events"`

	Wishes struct {
		Title       string `json:"title"`
		Description string `json:"description,omitempty"`
		Enabled     bool   `json:"enabled"`
	} `json:"wishes"`

	Gift struct {
		Title        string               `json:"title"`
		Description  string               `json:"description,omitempty"`
		BankAccounts []bankAccountPayload `json:"bankAccounts,omitempty"`
	} `json:"gift"`

	Music struct {
		Title       string   `json:"title"`
		Description string   `json:"description,omitempty"`
		URLs        []string `json:"urls,omitempty"`
	} `json:"music"`

	RSVP struct {
		Title       string `json:"title"`
		Description string `json:"description,omitempty"`
		Deadline    string `json:"deadline,omitempty"`
	} `json:"rsvp"`

	Sections []sectionPayload `json:"sections"`
}

func buildWeddingViewPayload(vm domain.WeddingViewModel) weddingViewPayload {
	var payload weddingViewPayload
	payload.Slug = vm.Slug

	payload.Hero.GroomName = vm.Hero.GroomName
	payload.Hero.BrideName = vm.Hero.BrideName
	payload.Hero.EventDate = formatTimePointer(vm.Hero.EventDate)
	payload.Hero.Color = vm.Hero.Color
	payload.Hero.CustomColor = vm.Hero.CustomColor
	payload.Hero.CustomEndColor = vm.Hero.CustomEndColor
	payload.Hero.FlowerFrame = vm.Hero.FlowerFrame
	payload.Hero.Effect = vm.Hero.Effect
	payload.Hero.HeroImageURL = vm.Hero.HeroImageURL
	payload.Hero.ImageScale = vm.Hero.ImageScale
	payload.Hero.ImageOffsetX = vm.Hero.ImageOffsetX
	payload.Hero.ImageOffsetY = vm.Hero.ImageOffsetY

	payload.Video.Title = vm.Video.Title
	payload.Video.Description = vm.Video.Description
	payload.Video.URL = vm.Video.URL

	payload.Album.Title = vm.Album.Title
	payload.Album.Description = vm.Album.Description
	payload.Album.Images = vm.Album.Images

	payload.Story.Title = vm.Story.Title
	payload.Story.Description = vm.Story.Description
	payload.Story.Events = storyEventsPayload(vm.Story.Events)

	payload.BrideGroom.Title = vm.BrideGroom.Title
	payload.BrideGroom.Description = vm.BrideGroom.Description
	payload.BrideGroom.GroomBio = vm.BrideGroom.GroomBio
	payload.BrideGroom.GroomImage = vm.BrideGroom.GroomImage
	payload.BrideGroom.BrideBio = vm.BrideGroom.BrideBio
	payload.BrideGroom.BrideImage = vm.BrideGroom.BrideImage

	payload.Events.Title = vm.Events.Title
	payload.Events.Description = vm.Events.Description
	payload.Events.Events = agendaEventsPayload(vm.Events.Events)

	payload.Wishes.Title = vm.Wishes.Title
	payload.Wishes.Description = vm.Wishes.Description
	payload.Wishes.Enabled = vm.Wishes.Enabled

	payload.Gift.Title = vm.Gift.Title
	payload.Gift.Description = vm.Gift.Description
	payload.Gift.BankAccounts = bankAccountsPayload(vm.Gift.BankAccounts)

	payload.Music.Title = vm.Music.Title
	payload.Music.Description = vm.Music.Description
	payload.Music.URLs = vm.Music.URLs

	payload.RSVP.Title = vm.RSVP.Title
	payload.RSVP.Description = vm.RSVP.Description
	payload.RSVP.Deadline = formatTimePointer(vm.RSVP.Deadline)

	payload.Sections = sectionsPayload(vm.Sections)
	return payload
}

type weddingSummaryPayload struct {
	Slug      string `json:"slug"`
	GroomName string `json:"groomName,omitempty"`
	BrideName string `json:"brideName,omitempty"`
	EventDate string `json:"eventDate,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

func buildWeddingSummaryPayload(record domain.WeddingRecord) weddingSummaryPayload {
	return weddingSummaryPayload{
		Slug:      record.ID,
		GroomName: record.GroomName,
		BrideName: record.BrideName,
		EventDate: formatTimePointer(record.EventDate),
		CreatedAt: formatTime(record.CreatedAt),
		UpdatedAt: formatTime(record.UpdatedAt),
	}
}

type rsvpPayload struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Attending  bool   `json:"attending"`
	GuestCount int    `json:"guestCount"`
	Message    string `json:"message,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

func buildRSVPPayloads(items []domain.RSVPSubmission) []rsvpPayload {
	out := make([]rsvpPayload, 0, len(items))
	for _, item := range items {
		out = append(out, rsvpPayload{
			ID:         item.ID,
			Name:       item.Name,
			Attending:  item.Attending,
			GuestCount: item.GuestCount,
			Message:    item.Message,
			CreatedAt:  formatTime(item.CreatedAt),
		})
	}
	return out
}

type wishPayload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}

func buildWishPayloads(items []domain.Wish) []wishPayload {
	out := make([]wishPayload, 0, len(items))
	for _, item := range items {
		out = append(out, wishPayload{
			ID:        item.ID,
			Name:      item.Name,
			Message:   item.Message,
			CreatedAt: formatTime(item.CreatedAt),
		})
	}
	return out
}

type notificationPayload struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body,omitempty"`
	Level     string `json:"level"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

func buildNotificationPayload(n domain.Notification) notificationPayload {
	return notificationPayload{
		ID:        n.ID,
		Title:     n.Title,
		Body:      n.Body,
		Level:     n.Level,
		Active:    n.Active,
		CreatedAt: formatTime(n.CreatedAt),
		UpdatedAt: formatTime(n.UpdatedAt),
	}
}

type catalogEntryPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Tier  string `json:"tier"`
	Price int64  `json:"price,omitempty"`
}

func buildCatalogEntryPayloads(entries []domain.CatalogEntry) []catalogEntryPayload {
	out := make([]catalogEntryPayload, 0, len(entries))
	for _, entry := range entries {
		out = append(out, catalogEntryPayload{
			ID:    entry.ID,
			Name:  entry.Name,
			Tier:  string(entry.Tier),
			Price: entry.Price,
		})
	}
	return out
}
