package services

import (
	"context"

	domain "github.com/wedloom/api/internal/domain"
)

// PricingServiceDeps groups constructor parameters for the pricing service.
type PricingServiceDeps struct {
	Logger func(ctx context.Context, event string, fields map[string]any)
}

type pricingService struct {
	logger func(ctx context.Context, event string, fields map[string]any)
}

var _ PricingService = (*pricingService)(nil)

// NewPricingService constructs the VIP upgrade calculator. It is pure over
// the built-in catalogs and needs no repositories.
func NewPricingService(deps PricingServiceDeps) (PricingService, error) {
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	return &pricingService{logger: logger}, nil
}

// Quote itemises the chargeable features of a selection. Unknown option ids
// classify as free, so a quote never bills for something the catalog does
// not carry.
func (s *pricingService) Quote(ctx context.Context, cmd QuoteCommand) (PricingQuote, error) {
	var features []VipFeature

	if tier, price := domain.ClassifySelection(domain.ColorCatalog, cmd.Color); tier == domain.TierVIP {
		features = append(features, VipFeature{Name: "Màu VIP", Count: 1, Price: price})
	}
	if tier, price := domain.ClassifySelection(domain.FlowerFrameCatalog, cmd.FlowerFrame); tier == domain.TierVIP {
		features = append(features, VipFeature{Name: "Khung hoa VIP", Count: 1, Price: price})
	}
	if tier, price := domain.ClassifySelection(domain.EffectCatalog, cmd.Effect); tier == domain.TierVIP {
		features = append(features, VipFeature{Name: "Hiệu ứng VIP", Count: 1, Price: price})
	}
	if extra := cmd.MusicTrackCount - domain.FreeMusicTracks; extra > 0 {
		features = append(features, VipFeature{Name: "Nhạc nền thêm", Count: extra, Price: domain.PriceMusicTrack})
	}

	total := domain.ComputeTotal(features)
	tier := domain.TierFree
	if total > 0 {
		tier = domain.TierVIP
	}
	quote := PricingQuote{
		Tier:           tier,
		Features:       features,
		Total:          total,
		FormattedTotal: domain.FormatVND(total),
	}
	s.logger(ctx, "pricing.quoted", map[string]any{
		"tier":     string(tier),
		"features": len(features),
		"total":    total,
	})
	return quote, nil
}

// Catalog returns the selectable options per slot together with the music
// billing parameters, so clients render prices from the same source the
// quote uses.
func (s *pricingService) Catalog(ctx context.Context) (PricingCatalog, error) {
	return PricingCatalog{
		Colors:        cloneCatalog(domain.ColorCatalog),
		FlowerFrames:  cloneCatalog(domain.FlowerFrameCatalog),
		Effects:       cloneCatalog(domain.EffectCatalog),
		MusicPerTrack: domain.PriceMusicTrack,
		FreeTracks:    domain.FreeMusicTracks,
	}, nil
}

func cloneCatalog(entries []CatalogEntry) []CatalogEntry {
	out := make([]CatalogEntry, len(entries))
	copy(out, entries)
	return out
}
