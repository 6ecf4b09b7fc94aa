package services

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/wedloom/api/internal/domain"
)

func newGuestServiceForTest(t *testing.T, repo *stubWeddingRepository, rsvps *stubSubmissionRepository, wishes *stubWishRepository, now time.Time) GuestService {
	t.Helper()
	service, err := NewGuestService(GuestServiceDeps{
		Weddings:    repo,
		RSVPs:       rsvps,
		Wishes:      wishes,
		Clock:       fixedClock(now),
		IDGenerator: func() string { return "sub-1" },
	})
	if err != nil {
		t.Fatalf("NewGuestService: %v", err)
	}
	return service
}

func TestGuestService_SubmitRSVP_StoresSanitizedReply(t *testing.T) {
	now := time.Date(2026, time.October, 1, 9, 0, 0, 0, time.UTC)
	record := domain.WeddingRecord{ID: "minh-hoa-08112026", OwnerID: "uid-1"}
	repo := newStubWeddingRepository(record)
	rsvps := &stubSubmissionRepository{}
	wishes := &stubWishRepository{}

	service := newGuestServiceForTest(t, repo, rsvps, wishes, now)

	submission, err := service.SubmitRSVP(context.Background(), SubmitRSVPCommand{
		Slug:       "Minh-Hoa-08112026",
		Name:       "  <b>Chú Ba</b> ",
		Attending:  true,
		GuestCount: 0,
		Message:    "<script>alert(1)</script>Chúc hai cháu hạnh phúc",
	})
	if err != nil {
		t.Fatalf("SubmitRSVP: %v", err)
	}

	if submission.ID != "sub-1" {
		t.Fatalf("unexpected id %q", submission.ID)
	}
	if submission.Name != "Chú Ba" {
		t.Fatalf("markup not stripped from name: %q", submission.Name)
	}
	if submission.Message != "Chúc hai cháu hạnh phúc" {
		t.Fatalf("markup not stripped from message: %q", submission.Message)
	}
	if submission.GuestCount != 1 {
		t.Fatalf("expected guest count clamped to 1, got %d", submission.GuestCount)
	}
	if len(rsvps.rsvps) != 1 {
		t.Fatalf("expected stored submission, got %#v", rsvps.rsvps)
	}
}

func TestGuestService_SubmitRSVP_ClosedAfterDeadline(t *testing.T) {
	deadline := time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC)
	record := domain.WeddingRecord{ID: "minh-hoa-08112026", OwnerID: "uid-1", RSVPDeadline: &deadline}
	repo := newStubWeddingRepository(record)
	rsvps := &stubSubmissionRepository{}
	wishes := &stubWishRepository{}

	service := newGuestServiceForTest(t, repo, rsvps, wishes, deadline.Add(time.Hour))

	_, err := service.SubmitRSVP(context.Background(), SubmitRSVPCommand{
		Slug: "minh-hoa-08112026",
		Name: "Chú Ba",
	})
	if !errors.Is(err, ErrRSVPClosed) {
		t.Fatalf("expected ErrRSVPClosed, got %v", err)
	}
	if len(rsvps.rsvps) != 0 {
		t.Fatal("closed rsvp must not be stored")
	}
}

func TestGuestService_SubmitRSVP_RequiresName(t *testing.T) {
	record := domain.WeddingRecord{ID: "minh-hoa-08112026", OwnerID: "uid-1"}
	service := newGuestServiceForTest(t, newStubWeddingRepository(record), &stubSubmissionRepository{}, &stubWishRepository{}, time.Now())

	_, err := service.SubmitRSVP(context.Background(), SubmitRSVPCommand{
		Slug: "minh-hoa-08112026",
		Name: "<i></i>",
	})
	if !errors.Is(err, ErrSubmissionInvalid) {
		t.Fatalf("expected ErrSubmissionInvalid, got %v", err)
	}
}

func TestGuestService_SubmitWish_DisabledGuestbook(t *testing.T) {
	record := domain.WeddingRecord{ID: "minh-hoa-08112026", OwnerID: "uid-1", WishesEnabled: false}
	wishes := &stubWishRepository{}
	service := newGuestServiceForTest(t, newStubWeddingRepository(record), &stubSubmissionRepository{}, wishes, time.Now())

	_, err := service.SubmitWish(context.Background(), SubmitWishCommand{
		Slug:    "minh-hoa-08112026",
		Name:    "Lan",
		Message: "Chúc mừng!",
	})
	if !errors.Is(err, ErrWishesDisabled) {
		t.Fatalf("expected ErrWishesDisabled, got %v", err)
	}
	if len(wishes.wishes) != 0 {
		t.Fatal("disabled guestbook must not store wishes")
	}
}

func TestGuestService_SubmitWish_StoresEntryAndPublishes(t *testing.T) {
	now := time.Date(2026, time.October, 1, 9, 0, 0, 0, time.UTC)
	record := domain.WeddingRecord{ID: "minh-hoa-08112026", OwnerID: "uid-1", WishesEnabled: true}
	repo := newStubWeddingRepository(record)
	wishes := &stubWishRepository{}
	publisher := &stubEventPublisher{}

	service, err := NewGuestService(GuestServiceDeps{
		Weddings: repo,
		RSVPs:    &stubSubmissionRepository{},
		Wishes:   wishes,
		Events:   publisher,
		Clock:    fixedClock(now),
	})
	if err != nil {
		t.Fatalf("NewGuestService: %v", err)
	}

	wish, err := service.SubmitWish(context.Background(), SubmitWishCommand{
		Slug:    "minh-hoa-08112026",
		Name:    "Lan",
		Message: "Trăm năm hạnh phúc",
	})
	if err != nil {
		t.Fatalf("SubmitWish: %v", err)
	}

	if wish.ID == "" {
		t.Fatal("expected generated wish id")
	}
	if !wish.CreatedAt.Equal(now) {
		t.Fatalf("unexpected createdAt %v", wish.CreatedAt)
	}
	if len(wishes.wishes) != 1 {
		t.Fatalf("expected stored wish, got %#v", wishes.wishes)
	}
	if len(publisher.events) != 1 || publisher.events[0].Type != WeddingEventWishReceived {
		t.Fatalf("expected wish event, got %#v", publisher.events)
	}
}

func TestGuestService_ListRSVPs_EnforcesOwnership(t *testing.T) {
	record := domain.WeddingRecord{ID: "minh-hoa-08112026", OwnerID: "uid-1"}
	rsvps := &stubSubmissionRepository{}
	service := newGuestServiceForTest(t, newStubWeddingRepository(record), rsvps, &stubWishRepository{}, time.Now())

	_, err := service.ListRSVPs(context.Background(), ListSubmissionsCommand{
		WeddingID: "minh-hoa-08112026",
		ActorID:   "uid-2",
	})
	if !errors.Is(err, ErrWeddingForbidden) {
		t.Fatalf("expected ErrWeddingForbidden, got %v", err)
	}

	since := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
	if _, err := service.ListRSVPs(context.Background(), ListSubmissionsCommand{
		WeddingID: "minh-hoa-08112026",
		ActorID:   "uid-1",
		Since:     &since,
	}); err != nil {
		t.Fatalf("ListRSVPs: %v", err)
	}
	if len(rsvps.listCalls) != 1 || rsvps.listCalls[0].Since == nil || !rsvps.listCalls[0].Since.Equal(since) {
		t.Fatalf("expected since filter forwarded, got %#v", rsvps.listCalls)
	}
}

func TestGuestService_PublicWishes_DisabledReadsEmpty(t *testing.T) {
	record := domain.WeddingRecord{ID: "minh-hoa-08112026", OwnerID: "uid-1", WishesEnabled: false}
	wishes := &stubWishRepository{
		page: domain.CursorPage[domain.Wish]{Items: []domain.Wish{{ID: "w-1"}}},
	}
	service := newGuestServiceForTest(t, newStubWeddingRepository(record), &stubSubmissionRepository{}, wishes, time.Now())

	page, err := service.PublicWishes(context.Background(), "minh-hoa-08112026", Pagination{})
	if err != nil {
		t.Fatalf("PublicWishes: %v", err)
	}
	if len(page.Items) != 0 {
		t.Fatalf("expected empty page for disabled guestbook, got %#v", page.Items)
	}
	if len(wishes.listedFor) != 0 {
		t.Fatal("repository must not be queried when the guestbook is disabled")
	}
}
