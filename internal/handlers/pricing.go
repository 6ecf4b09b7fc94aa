package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wedloom/api/internal/platform/httpx"
	"github.com/wedloom/api/internal/services"
)

const maxQuoteRequestBody = 8 * 1024

// PricingHandlers exposes the option catalog and the quote calculator. Both
// endpoints are public: the builder prices selections before any account or
// site exists.
type PricingHandlers struct {
	pricing services.PricingService
}

// NewPricingHandlers constructs handlers backed by the given pricing service.
func NewPricingHandlers(pricing services.PricingService) *PricingHandlers {
	return &PricingHandlers{pricing: pricing}
}

// Routes registers the pricing endpoints on the provided router.
func (h *PricingHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/catalog", h.getCatalog)
	r.Post("/quote", h.quote)
}

func (h *PricingHandlers) getCatalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.pricing == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "pricing service unavailable", http.StatusServiceUnavailable))
		return
	}

	catalog, err := h.pricing.Catalog(ctx)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("internal_error", "failed to load catalog", http.StatusInternalServerError))
		return
	}

	writeJSONResponse(w, http.StatusOK, struct {
		Colors        []catalogEntryPayload `json:"colors"`
		FlowerFrames  []catalogEntryPayload `json:"flowerFrames"`
		Effects       []catalogEntryPayload `json:"effects"`
		MusicPerTrack int64                 `json:"musicPerTrack"`
		FreeTracks    int                   `json:"freeTracks"`
	}{
		Colors:        buildCatalogEntryPayloads(catalog.Colors),
		FlowerFrames:  buildCatalogEntryPayloads(catalog.FlowerFrames),
		Effects:       buildCatalogEntryPayloads(catalog.Effects),
		MusicPerTrack: catalog.MusicPerTrack,
		FreeTracks:    catalog.FreeTracks,
	})
}

type quoteRequest struct {
	Color           string `json:"color,omitempty"`
	FlowerFrame     string `json:"flowerFrame,omitempty"`
	Effect          string `json:"effect,omitempty"`
	MusicTrackCount int    `json:"musicTrackCount,omitempty"`
}

type quoteFeaturePayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Price int64  `json:"price"`
	Total int64  `json:"total"`
}

func (h *PricingHandlers) quote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.pricing == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "pricing service unavailable", http.StatusServiceUnavailable))
		return
	}

	var req quoteRequest
	if err := decodeJSONBody(r, maxQuoteRequestBody, &req); err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	quote, err := h.pricing.Quote(ctx, services.QuoteCommand{
		Color:           req.Color,
		FlowerFrame:     req.FlowerFrame,
		Effect:          req.Effect,
		MusicTrackCount: req.MusicTrackCount,
	})
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("internal_error", "failed to compute quote", http.StatusInternalServerError))
		return
	}

	features := make([]quoteFeaturePayload, 0, len(quote.Features))
	for _, feature := range quote.Features {
		features = append(features, quoteFeaturePayload{
			Name:  feature.Name,
			Count: feature.Count,
			Price: feature.Price,
			Total: feature.Total(),
		})
	}

	writeJSONResponse(w, http.StatusOK, struct {
		Tier           string                `json:"tier"`
		Features       []quoteFeaturePayload `json:"features"`
		Total          int64                 `json:"total"`
		FormattedTotal string                `json:"formattedTotal"`
	}{
		Tier:           string(quote.Tier),
		Features:       features,
		Total:          quote.Total,
		FormattedTotal: quote.FormattedTotal,
	})
}
