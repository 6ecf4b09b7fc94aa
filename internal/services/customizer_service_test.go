package services

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/wedloom/api/internal/domain"
)

func TestCustomizerService_Save_PatchesOnlyEditedSection(t *testing.T) {
	record := domain.WeddingRecord{
		ID:        "minh-hoa-08112026",
		OwnerID:   "uid-1",
		GroomName: "Minh",
		BrideName: "Hoa",
	}
	repo := newStubWeddingRepository(record)
	publisher := &stubEventPublisher{}
	now := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)

	service, err := NewCustomizerService(CustomizerServiceDeps{
		Weddings: repo,
		Events:   publisher,
		Clock:    fixedClock(now),
	})
	if err != nil {
		t.Fatalf("NewCustomizerService: %v", err)
	}

	saved, err := service.Save(context.Background(), CustomizeSectionCommand{
		WeddingID: "minh-hoa-08112026",
		ActorID:   "uid-1",
		SectionID: domain.SectionGift,
		Settings: SectionSettings{
			Gift: &domain.GiftSettings{
				Title: "Hộp mừng cưới",
				BankAccounts: []domain.BankAccount{
					{ID: "acc-1", BankName: "VCB", AccountNumber: "007", AccountName: "Minh"},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	fields := repo.updates["minh-hoa-08112026"]
	if len(fields) != 2 {
		t.Fatalf("expected exactly two patched fields, got %#v", fields)
	}
	if fields["giftTitle"] != "Hộp mừng cưới" {
		t.Fatalf("unexpected giftTitle %#v", fields["giftTitle"])
	}
	if _, ok := fields["groomName"]; ok {
		t.Fatal("hero fields must not be touched by a gift save")
	}
	if saved.GroomName != "Minh" {
		t.Fatalf("sibling field changed: %q", saved.GroomName)
	}
	if saved.GiftTitle != "Hộp mừng cưới" {
		t.Fatalf("returned record missing patch, got %q", saved.GiftTitle)
	}
	if len(publisher.events) != 1 || publisher.events[0].SectionID != domain.SectionGift {
		t.Fatalf("expected section-saved event, got %#v", publisher.events)
	}
}

func TestCustomizerService_Save_StripsMarkupFromText(t *testing.T) {
	record := domain.WeddingRecord{ID: "minh-hoa-08112026", OwnerID: "uid-1"}
	repo := newStubWeddingRepository(record)

	service, err := NewCustomizerService(CustomizerServiceDeps{
		Weddings: repo,
		Clock:    fixedClock(time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)),
	})
	if err != nil {
		t.Fatalf("NewCustomizerService: %v", err)
	}

	saved, err := service.Save(context.Background(), CustomizeSectionCommand{
		WeddingID: "minh-hoa-08112026",
		ActorID:   "uid-1",
		SectionID: domain.SectionStory,
		Settings: SectionSettings{
			Story: &domain.StorySettings{
				Title:       `<script>alert(1)</script>Chuyện tình`,
				Description: "Ngày <b>đầu tiên</b>",
				Events: []domain.StoryEvent{
					{ID: "ev-1", Title: `<img src=x onerror=alert(1)>Gặp nhau`, Description: "Hà Nội"},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if saved.StoryTitle != "Chuyện tình" {
		t.Fatalf("expected markup stripped from title, got %q", saved.StoryTitle)
	}
	if saved.StoryDescription != "Ngày đầu tiên" {
		t.Fatalf("expected markup stripped from description, got %q", saved.StoryDescription)
	}
	if len(saved.StoryEvents) != 1 || saved.StoryEvents[0].Title != "Gặp nhau" {
		t.Fatalf("expected markup stripped from event title, got %#v", saved.StoryEvents)
	}

	fields := repo.updates["minh-hoa-08112026"]
	if fields["storyTitle"] != "Chuyện tình" {
		t.Fatalf("persisted title still carries markup: %#v", fields["storyTitle"])
	}
}

func TestCustomizerService_Save_EmptyDraftIsRejected(t *testing.T) {
	record := domain.WeddingRecord{ID: "minh-hoa-08112026", OwnerID: "uid-1"}
	repo := newStubWeddingRepository(record)

	service, err := NewCustomizerService(CustomizerServiceDeps{Weddings: repo})
	if err != nil {
		t.Fatalf("NewCustomizerService: %v", err)
	}

	_, err = service.Save(context.Background(), CustomizeSectionCommand{
		WeddingID: "minh-hoa-08112026",
		ActorID:   "uid-1",
		SectionID: domain.SectionVideo,
		Settings:  SectionSettings{Video: &domain.VideoSettings{}},
	})
	if !errors.Is(err, ErrNothingToSave) {
		t.Fatalf("expected ErrNothingToSave, got %v", err)
	}
	if len(repo.updates) != 0 {
		t.Fatalf("no write expected, got %#v", repo.updates)
	}
}

func TestCustomizerService_Save_UnknownSection(t *testing.T) {
	service, err := NewCustomizerService(CustomizerServiceDeps{Weddings: newStubWeddingRepository()})
	if err != nil {
		t.Fatalf("NewCustomizerService: %v", err)
	}

	_, err = service.Save(context.Background(), CustomizeSectionCommand{
		WeddingID: "minh-hoa-08112026",
		ActorID:   "uid-1",
		SectionID: "countdown",
	})
	if !errors.Is(err, ErrUnknownSection) {
		t.Fatalf("expected ErrUnknownSection, got %v", err)
	}
}

func TestCustomizerService_Save_CanonicalizesYouTubeURL(t *testing.T) {
	record := domain.WeddingRecord{ID: "minh-hoa-08112026", OwnerID: "uid-1"}
	repo := newStubWeddingRepository(record)

	service, err := NewCustomizerService(CustomizerServiceDeps{Weddings: repo})
	if err != nil {
		t.Fatalf("NewCustomizerService: %v", err)
	}

	saved, err := service.Save(context.Background(), CustomizeSectionCommand{
		WeddingID: "minh-hoa-08112026",
		ActorID:   "uid-1",
		SectionID: domain.SectionVideo,
		Settings: SectionSettings{
			Video: &domain.VideoSettings{URL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		},
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.VideoURL != "https://www.youtube.com/embed/dQw4w9WgXcQ" {
		t.Fatalf("unexpected canonical url %q", saved.VideoURL)
	}
}

func TestCustomizerService_Save_RejectsNonYouTubeURL(t *testing.T) {
	record := domain.WeddingRecord{ID: "minh-hoa-08112026", OwnerID: "uid-1"}
	repo := newStubWeddingRepository(record)

	service, err := NewCustomizerService(CustomizerServiceDeps{Weddings: repo})
	if err != nil {
		t.Fatalf("NewCustomizerService: %v", err)
	}

	_, err = service.Save(context.Background(), CustomizeSectionCommand{
		WeddingID: "minh-hoa-08112026",
		ActorID:   "uid-1",
		SectionID: domain.SectionVideo,
		Settings: SectionSettings{
			Video: &domain.VideoSettings{URL: "https://vimeo.com/123456"},
		},
	})
	if !errors.Is(err, ErrInvalidVideoURL) {
		t.Fatalf("expected ErrInvalidVideoURL, got %v", err)
	}
}

func TestCanonicalYouTubeEmbedURL_Shapes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://www.youtube.com/watch?v=abc123", "https://www.youtube.com/embed/abc123"},
		{"https://youtu.be/abc123", "https://www.youtube.com/embed/abc123"},
		{"https://m.youtube.com/shorts/abc123", "https://www.youtube.com/embed/abc123"},
		{"https://www.youtube.com/embed/abc123", "https://www.youtube.com/embed/abc123"},
	}
	for _, tc := range cases {
		got, err := CanonicalYouTubeEmbedURL(tc.in)
		if err != nil {
			t.Fatalf("CanonicalYouTubeEmbedURL(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("CanonicalYouTubeEmbedURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	for _, bad := range []string{"", "ftp://youtube.com/watch?v=abc", "https://youtube.com/watch", "not a url ://"} {
		if _, err := CanonicalYouTubeEmbedURL(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestCustomizerService_Preview_DoesNotPersist(t *testing.T) {
	record := domain.WeddingRecord{ID: "minh-hoa-08112026", OwnerID: "uid-1"}
	repo := newStubWeddingRepository(record)

	service, err := NewCustomizerService(CustomizerServiceDeps{Weddings: repo})
	if err != nil {
		t.Fatalf("NewCustomizerService: %v", err)
	}

	vm, err := service.Preview(context.Background(), CustomizeSectionCommand{
		WeddingID: "minh-hoa-08112026",
		ActorID:   "uid-1",
		SectionID: domain.SectionStory,
		Settings: SectionSettings{
			Story: &domain.StorySettings{
				Title: "Ngày đầu gặp nhau",
				Events: []domain.StoryEvent{
					{ID: "ev-1", Title: "Gặp nhau"},
					{ID: "ev-2", Title: "Cầu hôn"},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}

	if vm.Story.Title != "Ngày đầu gặp nhau" {
		t.Fatalf("preview missing draft title, got %q", vm.Story.Title)
	}
	if vm.Story.Events[0].Position != domain.StoryPositionLeft || vm.Story.Events[1].Position != domain.StoryPositionRight {
		t.Fatalf("expected alternating positions, got %#v", vm.Story.Events)
	}
	if len(repo.updates) != 0 {
		t.Fatalf("preview must not write, got %#v", repo.updates)
	}
}

func TestCustomizerService_Reset_ReturnsPersistedState(t *testing.T) {
	record := domain.WeddingRecord{
		ID:         "minh-hoa-08112026",
		OwnerID:    "uid-1",
		StoryTitle: "Chuyện của hai đứa",
	}
	repo := newStubWeddingRepository(record)

	service, err := NewCustomizerService(CustomizerServiceDeps{Weddings: repo})
	if err != nil {
		t.Fatalf("NewCustomizerService: %v", err)
	}

	vm, err := service.Reset(context.Background(), ResetSectionCommand{
		WeddingID: "minh-hoa-08112026",
		ActorID:   "uid-1",
		SectionID: domain.SectionStory,
	})
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if vm.Story.Title != "Chuyện của hai đứa" {
		t.Fatalf("expected persisted title, got %q", vm.Story.Title)
	}
}
