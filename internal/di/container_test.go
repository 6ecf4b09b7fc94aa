package di

import (
	"context"
	"testing"

	domain "github.com/wedloom/api/internal/domain"
	"github.com/wedloom/api/internal/platform/config"
	"github.com/wedloom/api/internal/repositories"
)

type stubRegistry struct {
	weddings      repositories.WeddingRepository
	rsvps         repositories.RSVPRepository
	wishes        repositories.WishRepository
	notifications repositories.NotificationRepository
	health        repositories.HealthRepository
	closed        bool
}

func (s *stubRegistry) Close(ctx context.Context) error { s.closed = true; return nil }

func (s *stubRegistry) Weddings() repositories.WeddingRepository { return s.weddings }

func (s *stubRegistry) RSVPs() repositories.RSVPRepository { return s.rsvps }

func (s *stubRegistry) Wishes() repositories.WishRepository { return s.wishes }

func (s *stubRegistry) Notifications() repositories.NotificationRepository { return s.notifications }

func (s *stubRegistry) Health() repositories.HealthRepository { return s.health }

func (s *stubRegistry) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var _ repositories.Registry = (*stubRegistry)(nil)

type noopWeddingRepository struct{}

func (noopWeddingRepository) Create(context.Context, domain.WeddingRecord) error { return nil }

func (noopWeddingRepository) UpdateFields(context.Context, string, map[string]any) error { return nil }

func (noopWeddingRepository) SetSections(context.Context, string, []domain.Section) error {
	return nil
}

func (noopWeddingRepository) FindByID(context.Context, string) (domain.WeddingRecord, error) {
	return domain.WeddingRecord{}, nil
}

func (noopWeddingRepository) Exists(context.Context, string) (bool, error) { return false, nil }

func (noopWeddingRepository) ListByOwner(context.Context, string, repositories.WeddingListFilter) (domain.CursorPage[domain.WeddingRecord], error) {
	return domain.CursorPage[domain.WeddingRecord]{}, nil
}

func (noopWeddingRepository) Delete(context.Context, string) error { return nil }

type noopHealthRepository struct{}

func (noopHealthRepository) Collect(context.Context) (domain.SystemHealthReport, error) {
	return domain.SystemHealthReport{}, nil
}

func TestNewContainerRequiresRegistry(t *testing.T) {
	if _, err := NewContainer(context.Background(), config.Config{}, nil, nil); err == nil {
		t.Fatalf("expected error when registry missing")
	}
}

func TestNewContainerBuildsAvailableServices(t *testing.T) {
	reg := &stubRegistry{
		weddings: noopWeddingRepository{},
		health:   noopHealthRepository{},
	}

	container, err := NewContainer(context.Background(), config.Config{}, reg, nil)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}

	if container.Services.Weddings == nil {
		t.Fatalf("expected wedding service")
	}
	if container.Services.Sections == nil {
		t.Fatalf("expected section service")
	}
	if container.Services.Customizer == nil {
		t.Fatalf("expected customizer service")
	}
	if container.Services.Pricing == nil {
		t.Fatalf("expected pricing service")
	}
	if container.Services.System == nil {
		t.Fatalf("expected system service")
	}
	if container.Services.Guests != nil {
		t.Fatalf("guest service needs rsvp and wish repositories")
	}
	if container.Services.Notifications != nil {
		t.Fatalf("notification service needs its repository")
	}

	if err := container.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !reg.closed {
		t.Fatalf("expected registry closed")
	}
}
