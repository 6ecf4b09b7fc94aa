package services

import (
	"context"
	"testing"

	domain "github.com/wedloom/api/internal/domain"
)

func TestPricingService_Quote_AllFreeSelection(t *testing.T) {
	service, err := NewPricingService(PricingServiceDeps{})
	if err != nil {
		t.Fatalf("NewPricingService: %v", err)
	}

	quote, err := service.Quote(context.Background(), QuoteCommand{
		Color:           "blush",
		FlowerFrame:     "none",
		Effect:          "none",
		MusicTrackCount: 1,
	})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}

	if quote.Tier != domain.TierFree {
		t.Fatalf("expected free tier, got %q", quote.Tier)
	}
	if quote.Total != 0 {
		t.Fatalf("expected zero total, got %d", quote.Total)
	}
	if len(quote.Features) != 0 {
		t.Fatalf("expected no chargeable features, got %#v", quote.Features)
	}
}

func TestPricingService_Quote_VIPColorAndFrame(t *testing.T) {
	service, err := NewPricingService(PricingServiceDeps{})
	if err != nil {
		t.Fatalf("NewPricingService: %v", err)
	}

	quote, err := service.Quote(context.Background(), QuoteCommand{
		Color:           "burgundy",
		FlowerFrame:     "peony-arch",
		Effect:          "none",
		MusicTrackCount: 1,
	})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}

	if quote.Tier != domain.TierVIP {
		t.Fatalf("expected vip tier, got %q", quote.Tier)
	}
	if quote.Total != 250000 {
		t.Fatalf("expected total 250000, got %d", quote.Total)
	}
	if len(quote.Features) != 2 {
		t.Fatalf("expected two chargeable features, got %#v", quote.Features)
	}
	if quote.FormattedTotal != domain.FormatVND(250000) {
		t.Fatalf("unexpected formatted total %q", quote.FormattedTotal)
	}
}

func TestPricingService_Quote_BillsExtraMusicTracks(t *testing.T) {
	service, err := NewPricingService(PricingServiceDeps{})
	if err != nil {
		t.Fatalf("NewPricingService: %v", err)
	}

	quote, err := service.Quote(context.Background(), QuoteCommand{
		Color:           "sage",
		MusicTrackCount: 3,
	})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}

	if len(quote.Features) != 1 {
		t.Fatalf("expected one chargeable feature, got %#v", quote.Features)
	}
	feature := quote.Features[0]
	if feature.Count != 2 {
		t.Fatalf("expected 2 billed tracks, got %d", feature.Count)
	}
	if quote.Total != 2*domain.PriceMusicTrack {
		t.Fatalf("expected total %d, got %d", 2*domain.PriceMusicTrack, quote.Total)
	}
}

func TestPricingService_Quote_UnknownSelectionIsFree(t *testing.T) {
	service, err := NewPricingService(PricingServiceDeps{})
	if err != nil {
		t.Fatalf("NewPricingService: %v", err)
	}

	quote, err := service.Quote(context.Background(), QuoteCommand{
		Color:       "laser-chrome",
		FlowerFrame: "discontinued-frame",
	})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if quote.Total != 0 || quote.Tier != domain.TierFree {
		t.Fatalf("stale selection must not bill, got %#v", quote)
	}
}

func TestPricingService_Catalog_MatchesQuoteSource(t *testing.T) {
	service, err := NewPricingService(PricingServiceDeps{})
	if err != nil {
		t.Fatalf("NewPricingService: %v", err)
	}

	catalog, err := service.Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}

	if len(catalog.Colors) != len(domain.ColorCatalog) {
		t.Fatalf("expected %d colors, got %d", len(domain.ColorCatalog), len(catalog.Colors))
	}
	if catalog.MusicPerTrack != domain.PriceMusicTrack {
		t.Fatalf("unexpected per-track price %d", catalog.MusicPerTrack)
	}
	if catalog.FreeTracks != domain.FreeMusicTracks {
		t.Fatalf("unexpected free tracks %d", catalog.FreeTracks)
	}

	// Mutating the returned slice must not touch the shared catalog.
	catalog.Colors[0].Price = 999
	if domain.ColorCatalog[0].Price == 999 {
		t.Fatal("catalog response aliases the shared catalog")
	}
}
