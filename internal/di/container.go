package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wedloom/api/internal/platform/config"
	"github.com/wedloom/api/internal/repositories"
	"github.com/wedloom/api/internal/services"
)

// Services bundles the service-layer contracts that handlers rely upon. Concrete implementations
// are assembled via dependency injection in NewContainer.
type Services struct {
	Weddings      services.WeddingService
	Sections      services.SectionService
	Customizer    services.CustomizerService
	Pricing       services.PricingService
	Guests        services.GuestService
	Notifications services.NotificationService
	System        services.SystemService
}

// Container wires repositories, services, and background infrastructure for runtime use.
type Container struct {
	Config       config.Config
	Repositories repositories.Registry
	Services     Services
}

// NewContainer constructs the runtime dependencies. Production wiring provides real
// implementations, while tests can supply in-memory registries.
func NewContainer(ctx context.Context, cfg config.Config, reg repositories.Registry, events services.WeddingEventPublisher) (*Container, error) {
	if reg == nil {
		return nil, errors.New("repositories registry is required")
	}

	svc, err := buildServices(reg, cfg, events)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config:       cfg,
		Repositories: reg,
		Services:     svc,
	}, nil
}

// Close releases resources such as repository clients, background workers, or caches.
func (c *Container) Close(ctx context.Context) error {
	if c == nil || c.Repositories == nil {
		return nil
	}
	return c.Repositories.Close(ctx)
}

func buildServices(reg repositories.Registry, cfg config.Config, events services.WeddingEventPublisher) (Services, error) {
	var svc Services

	weddingRepo := reg.Weddings()
	rsvpRepo := reg.RSVPs()
	wishRepo := reg.Wishes()

	if weddingRepo != nil {
		weddingSvc, err := services.NewWeddingService(services.WeddingServiceDeps{
			Weddings: weddingRepo,
			RSVPs:    rsvpRepo,
			Wishes:   wishRepo,
			Events:   events,
			Clock:    time.Now,
		})
		if err != nil {
			return Services{}, fmt.Errorf("build wedding service: %w", err)
		}
		svc.Weddings = weddingSvc

		sectionSvc, err := services.NewSectionService(services.SectionServiceDeps{
			Weddings: weddingRepo,
			Events:   events,
			Clock:    time.Now,
		})
		if err != nil {
			return Services{}, fmt.Errorf("build section service: %w", err)
		}
		svc.Sections = sectionSvc

		customizerSvc, err := services.NewCustomizerService(services.CustomizerServiceDeps{
			Weddings: weddingRepo,
			Events:   events,
			Clock:    time.Now,
		})
		if err != nil {
			return Services{}, fmt.Errorf("build customizer service: %w", err)
		}
		svc.Customizer = customizerSvc
	}

	pricingSvc, err := services.NewPricingService(services.PricingServiceDeps{})
	if err != nil {
		return Services{}, fmt.Errorf("build pricing service: %w", err)
	}
	svc.Pricing = pricingSvc

	if weddingRepo != nil && rsvpRepo != nil && wishRepo != nil {
		guestSvc, err := services.NewGuestService(services.GuestServiceDeps{
			Weddings: weddingRepo,
			RSVPs:    rsvpRepo,
			Wishes:   wishRepo,
			Events:   events,
			Clock:    time.Now,
		})
		if err != nil {
			return Services{}, fmt.Errorf("build guest service: %w", err)
		}
		svc.Guests = guestSvc
	}

	if notificationRepo := reg.Notifications(); notificationRepo != nil {
		notificationSvc, err := services.NewNotificationService(services.NotificationServiceDeps{
			Notifications: notificationRepo,
			Clock:         time.Now,
		})
		if err != nil {
			return Services{}, fmt.Errorf("build notification service: %w", err)
		}
		svc.Notifications = notificationSvc
	}

	if healthRepo := reg.Health(); healthRepo != nil {
		systemSvc, err := services.NewSystemService(services.SystemServiceDeps{
			HealthRepository: healthRepo,
			Clock:            time.Now,
			Build: services.BuildInfo{
				StartedAt: time.Now().UTC(),
			},
		})
		if err != nil {
			return Services{}, fmt.Errorf("build system service: %w", err)
		}
		svc.System = systemSvc
	}

	return svc, nil
}
