package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	domain "github.com/wedloom/api/internal/domain"
	"github.com/wedloom/api/internal/services"
)

type stubPricingService struct {
	quoteFunc   func(ctx context.Context, cmd services.QuoteCommand) (services.PricingQuote, error)
	catalogFunc func(ctx context.Context) (services.PricingCatalog, error)
}

func (s *stubPricingService) Quote(ctx context.Context, cmd services.QuoteCommand) (services.PricingQuote, error) {
	if s.quoteFunc == nil {
		return services.PricingQuote{}, errors.New("quote not implemented")
	}
	return s.quoteFunc(ctx, cmd)
}

func (s *stubPricingService) Catalog(ctx context.Context) (services.PricingCatalog, error) {
	if s.catalogFunc == nil {
		return services.PricingCatalog{}, errors.New("catalog not implemented")
	}
	return s.catalogFunc(ctx)
}

var _ services.PricingService = (*stubPricingService)(nil)

func TestPricingHandlersGetCatalog(t *testing.T) {
	pricing := &stubPricingService{
		catalogFunc: func(ctx context.Context) (services.PricingCatalog, error) {
			return services.PricingCatalog{
				Colors: []domain.CatalogEntry{
					{ID: "blush", Name: "Hồng phấn", Tier: domain.TierFree},
					{ID: "burgundy", Name: "Đỏ rượu vang", Tier: domain.TierVIP, Price: domain.PriceColorVIP},
				},
				FlowerFrames: []domain.CatalogEntry{
					{ID: "none", Name: "Không khung", Tier: domain.TierFree},
				},
				Effects: []domain.CatalogEntry{
					{ID: "petals", Name: "Cánh hoa rơi", Tier: domain.TierVIP, Price: domain.PriceEffectVIP},
				},
				MusicPerTrack: domain.PriceMusicTrack,
				FreeTracks:    domain.FreeMusicTracks,
			}, nil
		},
	}
	handler := NewPricingHandlers(pricing)

	req := httptest.NewRequest(http.MethodGet, "/pricing/catalog", nil)
	rr := httptest.NewRecorder()
	handler.getCatalog(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Colors        []catalogEntryPayload `json:"colors"`
		FlowerFrames  []catalogEntryPayload `json:"flowerFrames"`
		Effects       []catalogEntryPayload `json:"effects"`
		MusicPerTrack int64                 `json:"musicPerTrack"`
		FreeTracks    int                   `json:"freeTracks"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("expected JSON response: %v", err)
	}
	if len(resp.Colors) != 2 {
		t.Fatalf("expected 2 colors, got %d", len(resp.Colors))
	}
	if resp.Colors[1].Tier != string(domain.TierVIP) || resp.Colors[1].Price != domain.PriceColorVIP {
		t.Fatalf("unexpected vip color %#v", resp.Colors[1])
	}
	if resp.Colors[0].Price != 0 {
		t.Fatalf("free entries carry no price, got %d", resp.Colors[0].Price)
	}
	if resp.MusicPerTrack != domain.PriceMusicTrack || resp.FreeTracks != domain.FreeMusicTracks {
		t.Fatalf("unexpected music pricing %d/%d", resp.MusicPerTrack, resp.FreeTracks)
	}
}

func TestPricingHandlersQuote(t *testing.T) {
	var captured services.QuoteCommand
	pricing := &stubPricingService{
		quoteFunc: func(ctx context.Context, cmd services.QuoteCommand) (services.PricingQuote, error) {
			captured = cmd
			return services.PricingQuote{
				Tier: domain.TierVIP,
				Features: []domain.VipFeature{
					{Name: "Màu VIP", Count: 1, Price: domain.PriceColorVIP},
					{Name: "Nhạc nền", Count: 2, Price: domain.PriceMusicTrack},
				},
				Total:          200000,
				FormattedTotal: domain.FormatVND(200000),
			}, nil
		},
	}
	handler := NewPricingHandlers(pricing)

	body := bytes.NewBufferString(`{"color":"burgundy","flowerFrame":"none","effect":"none","musicTrackCount":3}`)
	req := httptest.NewRequest(http.MethodPost, "/pricing/quote", body)
	rr := httptest.NewRecorder()
	handler.quote(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if captured.Color != "burgundy" || captured.MusicTrackCount != 3 {
		t.Fatalf("unexpected command %#v", captured)
	}

	var resp struct {
		Tier           string                `json:"tier"`
		Features       []quoteFeaturePayload `json:"features"`
		Total          int64                 `json:"total"`
		FormattedTotal string                `json:"formattedTotal"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("expected JSON response: %v", err)
	}
	if resp.Tier != string(domain.TierVIP) {
		t.Fatalf("expected vip tier, got %q", resp.Tier)
	}
	if len(resp.Features) != 2 {
		t.Fatalf("expected 2 features, got %d", len(resp.Features))
	}
	if resp.Features[0].Total != domain.PriceColorVIP {
		t.Fatalf("unexpected color line total %d", resp.Features[0].Total)
	}
	if resp.Features[1].Total != 2*domain.PriceMusicTrack {
		t.Fatalf("unexpected music line total %d", resp.Features[1].Total)
	}
	if resp.Total != 200000 {
		t.Fatalf("unexpected total %d", resp.Total)
	}
	if resp.FormattedTotal == "" {
		t.Fatalf("expected formatted total")
	}
}

func TestPricingHandlersQuoteBadBody(t *testing.T) {
	handler := NewPricingHandlers(&stubPricingService{})

	body := bytes.NewBufferString(`{"musicTrackCount":`)
	req := httptest.NewRequest(http.MethodPost, "/pricing/quote", body)
	rr := httptest.NewRecorder()
	handler.quote(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestPricingHandlersCatalogUnavailable(t *testing.T) {
	handler := NewPricingHandlers(nil)

	req := httptest.NewRequest(http.MethodGet, "/pricing/catalog", nil)
	rr := httptest.NewRecorder()
	handler.getCatalog(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rr.Code)
	}
}
