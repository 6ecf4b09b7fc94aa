package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wedloom/api/internal/platform/httpx"
	"github.com/wedloom/api/internal/services"
)

const (
	maxGuestRequestBody = 16 * 1024

	defaultSubmissionLimit  = 10
	defaultSubmissionWindow = time.Minute
)

// PublicHandlers serves the unauthenticated site surface: rendered site
// models, the guestbook, and attendance submissions. Submissions are rate
// limited per client address.
type PublicHandlers struct {
	weddings services.WeddingService
	guests   services.GuestService
	limiter  submissionLimiter
}

// PublicOption customises public handler construction.
type PublicOption func(*publicConfig)

type publicConfig struct {
	limit  int
	window time.Duration
	clock  func() time.Time
}

// WithSubmissionRateLimit overrides the per-address submission allowance.
func WithSubmissionRateLimit(limit int, window time.Duration) PublicOption {
	return func(cfg *publicConfig) {
		cfg.limit = limit
		cfg.window = window
	}
}

// WithSubmissionClock injects a custom clock for the rate limiter.
func WithSubmissionClock(clock func() time.Time) PublicOption {
	return func(cfg *publicConfig) {
		cfg.clock = clock
	}
}

// NewPublicHandlers constructs the public site handlers.
func NewPublicHandlers(weddings services.WeddingService, guests services.GuestService, opts ...PublicOption) *PublicHandlers {
	cfg := publicConfig{
		limit:  defaultSubmissionLimit,
		window: defaultSubmissionWindow,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &PublicHandlers{
		weddings: weddings,
		guests:   guests,
		limiter:  newGuestSubmissionLimiter(cfg.limit, cfg.window, cfg.clock),
	}
}

// Routes registers the public endpoints on the provided router.
func (h *PublicHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/sites/{slug}", h.getSite)
	r.Get("/sites/{slug}/wishes", h.listWishes)
	r.Post("/sites/{slug}/rsvp", h.submitRSVP)
	r.Post("/sites/{slug}/wishes", h.submitWish)
}

func (h *PublicHandlers) allowSubmission(w http.ResponseWriter, r *http.Request) bool {
	if h.limiter == nil {
		return true
	}
	if h.limiter.Allow(clientKey(r)) {
		return true
	}
	httpx.WriteError(r.Context(), w, httpx.NewError("rate_limited", "too many submissions, slow down", http.StatusTooManyRequests))
	return false
}

func clientKey(r *http.Request) string {
	host := r.RemoteAddr
	if idx := strings.LastIndex(host, ":"); idx > 0 {
		host = host[:idx]
	}
	return host
}

func (h *PublicHandlers) getSite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.weddings == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "wedding service unavailable", http.StatusServiceUnavailable))
		return
	}

	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	vm, err := h.weddings.PublicSite(ctx, slug)
	if err != nil {
		writeWeddingError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, buildWeddingViewPayload(vm))
}

func (h *PublicHandlers) listWishes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.guests == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "guest service unavailable", http.StatusServiceUnavailable))
		return
	}

	pager, err := parsePagination(r)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	page, err := h.guests.PublicWishes(ctx, slug, pager)
	if err != nil {
		writeWeddingError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, struct {
		Wishes        []wishPayload `json:"wishes"`
		NextPageToken string        `json:"nextPageToken,omitempty"`
	}{
		Wishes:        buildWishPayloads(page.Items),
		NextPageToken: page.NextPageToken,
	})
}

type submitRSVPRequest struct {
	Name       string `json:"name"`
	Attending  bool   `json:"attending"`
	GuestCount int    `json:"guestCount"`
	Message    string `json:"message"`
}

func (h *PublicHandlers) submitRSVP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.guests == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "guest service unavailable", http.StatusServiceUnavailable))
		return
	}
	if !h.allowSubmission(w, r) {
		return
	}

	var req submitRSVPRequest
	if err := decodeJSONBody(r, maxGuestRequestBody, &req); err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	submission, err := h.guests.SubmitRSVP(ctx, services.SubmitRSVPCommand{
		Slug:       chi.URLParam(r, "slug"),
		Name:       req.Name,
		Attending:  req.Attending,
		GuestCount: req.GuestCount,
		Message:    req.Message,
	})
	if err != nil {
		writeWeddingError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, buildRSVPPayloads([]services.RSVPSubmission{submission})[0])
}

type submitWishRequest struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (h *PublicHandlers) submitWish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.guests == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "guest service unavailable", http.StatusServiceUnavailable))
		return
	}
	if !h.allowSubmission(w, r) {
		return
	}

	var req submitWishRequest
	if err := decodeJSONBody(r, maxGuestRequestBody, &req); err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	wish, err := h.guests.SubmitWish(ctx, services.SubmitWishCommand{
		Slug:    chi.URLParam(r, "slug"),
		Name:    req.Name,
		Message: req.Message,
	})
	if err != nil {
		writeWeddingError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, buildWishPayloads([]services.Wish{wish})[0])
}

func writeBodyError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, errBodyTooLarge) {
		status = http.StatusRequestEntityTooLarge
	}
	httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), status))
}

// writeWeddingError maps service sentinels onto HTTP statuses shared by the
// public and owner surfaces.
func writeWeddingError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrWeddingNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("wedding_not_found", "wedding not found", http.StatusNotFound))
	case errors.Is(err, services.ErrWeddingForbidden):
		httpx.WriteError(ctx, w, httpx.NewError("forbidden", "insufficient permissions for wedding", http.StatusForbidden))
	case errors.Is(err, services.ErrSlugUnavailable):
		httpx.WriteError(ctx, w, httpx.NewError("slug_unavailable", "slug is already taken", http.StatusConflict))
	case errors.Is(err, services.ErrSlugInvalid):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_slug", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrCoupleNamesRequired):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrUnknownSection):
		httpx.WriteError(ctx, w, httpx.NewError("unknown_section", "unknown section id", http.StatusBadRequest))
	case errors.Is(err, services.ErrNothingToSave):
		httpx.WriteError(ctx, w, httpx.NewError("nothing_to_save", "no persistable fields in request", http.StatusBadRequest))
	case errors.Is(err, services.ErrInvalidVideoURL):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_video_url", "video url must be a YouTube link", http.StatusBadRequest))
	case errors.Is(err, services.ErrRSVPClosed):
		httpx.WriteError(ctx, w, httpx.NewError("rsvp_closed", "rsvp deadline has passed", http.StatusConflict))
	case errors.Is(err, services.ErrWishesDisabled):
		httpx.WriteError(ctx, w, httpx.NewError("wishes_disabled", "guestbook is disabled for this site", http.StatusConflict))
	case errors.Is(err, services.ErrSubmissionInvalid):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrUploadInvalid):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("internal_error", "unexpected error", http.StatusInternalServerError))
	}
}
