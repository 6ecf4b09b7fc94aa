package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	domain "github.com/wedloom/api/internal/domain"
	"github.com/wedloom/api/internal/platform/auth"
	"github.com/wedloom/api/internal/platform/httpx"
	"github.com/wedloom/api/internal/services"
)

const maxWeddingRequestBody = 256 * 1024

// WeddingHandlers exposes the owner-facing site management endpoints:
// lifecycle, section ordering, the per-section customizer, guest submission
// listings, and signed media uploads.
type WeddingHandlers struct {
	authn      *auth.Authenticator
	weddings   services.WeddingService
	sections   services.SectionService
	customizer services.CustomizerService
	guests     services.GuestService
	media      services.MediaService
}

// NewWeddingHandlers constructs handlers enforcing Firebase authentication.
func NewWeddingHandlers(
	authn *auth.Authenticator,
	weddings services.WeddingService,
	sections services.SectionService,
	customizer services.CustomizerService,
	guests services.GuestService,
	media services.MediaService,
) *WeddingHandlers {
	return &WeddingHandlers{
		authn:      authn,
		weddings:   weddings,
		sections:   sections,
		customizer: customizer,
		guests:     guests,
		media:      media,
	}
}

// Routes registers the wedding endpoints on the provided router.
func (h *WeddingHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	if h.authn != nil {
		r.Use(h.authn.RequireFirebaseAuth())
	}

	r.Post("/", h.createWedding)
	r.Get("/", h.listWeddings)
	r.Post("/slug:check", h.checkSlug)

	r.Route("/{weddingID}", func(rt chi.Router) {
		rt.Get("/", h.getWedding)
		rt.Delete("/", h.deleteWedding)

		rt.Get("/sections", h.listSections)
		rt.Post("/sections:reorder", h.reorderSections)
		rt.Post("/sections/{sectionID}:toggle", h.toggleSection)

		rt.Put("/sections/{sectionID}", h.saveSection)
		rt.Post("/sections/{sectionID}:preview", h.previewSection)
		rt.Post("/sections/{sectionID}:reset", h.resetSection)

		rt.Get("/rsvps", h.listRSVPs)
		rt.Get("/wishes", h.listWishes)

		rt.Post("/assets:signed-upload", h.issueSignedUpload)
	})
}

func (h *WeddingHandlers) actor(w http.ResponseWriter, r *http.Request) (string, bool) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok || identity == nil || strings.TrimSpace(identity.UID) == "" {
		httpx.WriteError(r.Context(), w, httpx.NewError("unauthenticated", "authentication required", http.StatusUnauthorized))
		return "", false
	}
	return identity.UID, true
}

type createWeddingRequest struct {
	GroomName  string `json:"groomName"`
	BrideName  string `json:"brideName"`
	EventDate  string `json:"eventDate,omitempty"`
	CustomSlug string `json:"customSlug,omitempty"`
}

func (h *WeddingHandlers) createWedding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.weddings == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "wedding service unavailable", http.StatusServiceUnavailable))
		return
	}
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req createWeddingRequest
	if err := decodeJSONBody(r, maxWeddingRequestBody, &req); err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	eventDate, err := parseDateParam(req.EventDate)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	record, err := h.weddings.CreateWedding(ctx, services.CreateWeddingCommand{
		OwnerID:    actorID,
		GroomName:  req.GroomName,
		BrideName:  req.BrideName,
		EventDate:  eventDate,
		CustomSlug: req.CustomSlug,
	})
	if err != nil {
		writeWeddingError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, struct {
		weddingSummaryPayload
		Sections []sectionPayload `json:"sections"`
	}{
		weddingSummaryPayload: buildWeddingSummaryPayload(record),
		Sections:              sectionsPayload(record.Sections),
	})
}

func (h *WeddingHandlers) listWeddings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.weddings == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "wedding service unavailable", http.StatusServiceUnavailable))
		return
	}
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	pager, err := parsePagination(r)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}
	order := domain.SortDesc
	if strings.EqualFold(strings.TrimSpace(r.URL.Query().Get("order")), string(domain.SortAsc)) {
		order = domain.SortAsc
	}

	page, err := h.weddings.ListWeddings(ctx, services.WeddingListFilter{
		OwnerID:    actorID,
		SortOrder:  order,
		Pagination: pager,
	})
	if err != nil {
		writeWeddingError(ctx, w, err)
		return
	}

	summaries := make([]weddingSummaryPayload, 0, len(page.Items))
	for _, record := range page.Items {
		summaries = append(summaries, buildWeddingSummaryPayload(record))
	}
	writeJSONResponse(w, http.StatusOK, struct {
		Weddings      []weddingSummaryPayload `json:"weddings"`
		NextPageToken string                  `json:"nextPageToken,omitempty"`
	}{
		Weddings:      summaries,
		NextPageToken: page.NextPageToken,
	})
}

type checkSlugRequest struct {
	Slug      string `json:"slug,omitempty"`
	GroomName string `json:"groomName,omitempty"`
	BrideName string `json:"brideName,omitempty"`
	EventDate string `json:"eventDate,omitempty"`
}

func (h *WeddingHandlers) checkSlug(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.weddings == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "wedding service unavailable", http.StatusServiceUnavailable))
		return
	}
	if _, ok := h.actor(w, r); !ok {
		return
	}

	var req checkSlugRequest
	if err := decodeJSONBody(r, maxWeddingRequestBody, &req); err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	eventDate, err := parseDateParam(req.EventDate)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	availability, err := h.weddings.CheckSlug(ctx, services.CheckSlugCommand{
		Slug:      req.Slug,
		GroomName: req.GroomName,
		BrideName: req.BrideName,
		EventDate: eventDate,
	})
	if err != nil {
		writeWeddingError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, struct {
		Slug      string `json:"slug"`
		Available bool   `json:"available"`
	}{
		Slug:      availability.Slug,
		Available: availability.Available,
	})
}

func (h *WeddingHandlers) getWedding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.weddings == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "wedding service unavailable", http.StatusServiceUnavailable))
		return
	}
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	record, err := h.weddings.GetWedding(ctx, services.WeddingReadCommand{
		WeddingID: chi.URLParam(r, "weddingID"),
		ActorID:   actorID,
	})
	if err != nil {
		writeWeddingError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, struct {
		weddingSummaryPayload
		View weddingViewPayload `json:"view"`
	}{
		weddingSummaryPayload: buildWeddingSummaryPayload(record),
		View:                  buildWeddingViewPayload(domain.ToViewModel(record)),
	})
}

func (h *WeddingHandlers) deleteWedding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.weddings == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "wedding service unavailable", http.StatusServiceUnavailable))
		return
	}
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	if err := h.weddings.DeleteWedding(ctx, services.DeleteWeddingCommand{
		WeddingID: chi.URLParam(r, "weddingID"),
		ActorID:   actorID,
	}); err != nil {
		writeWeddingError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *WeddingHandlers) listSections(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.sections == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "section service unavailable", http.StatusServiceUnavailable))
		return
	}
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	sections, err := h.sections.ListSections(ctx, services.WeddingReadCommand{
		WeddingID: chi.URLParam(r, "weddingID"),
		ActorID:   actorID,
	})
	if err != nil {
		writeWeddingError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, struct {
		Sections []sectionPayload `json:"sections"`
	}{Sections: sectionsPayload(sections)})
}

type reorderSectionsRequest struct {
	FromIndex *int `json:"fromIndex"`
	ToIndex   *int `json:"toIndex"`
}

func (h *WeddingHandlers) reorderSections(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.sections == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "section service unavailable", http.StatusServiceUnavailable))
		return
	}
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req reorderSectionsRequest
	if err := decodeJSONBody(r, maxWeddingRequestBody, &req); err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	// Dropping a section outside any slot leaves the order untouched.
	if req.FromIndex == nil || req.ToIndex == nil {
		sections, err := h.sections.ListSections(ctx, services.WeddingReadCommand{
			WeddingID: chi.URLParam(r, "weddingID"),
			ActorID:   actorID,
		})
		if err != nil {
			writeWeddingError(ctx, w, err)
			return
		}
		writeJSONResponse(w, http.StatusOK, struct {
			Sections []sectionPayload `json:"sections"`
		}{Sections: sectionsPayload(sections)})
		return
	}

	sections, err := h.sections.Reorder(ctx, services.ReorderSectionsCommand{
		WeddingID: chi.URLParam(r, "weddingID"),
		ActorID:   actorID,
		FromIndex: *req.FromIndex,
		ToIndex:   *req.ToIndex,
	})
	if err != nil {
		writeWeddingError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, struct {
		Sections []sectionPayload `json:"sections"`
	}{Sections: sectionsPayload(sections)})
}

func (h *WeddingHandlers) toggleSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.sections == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "section service unavailable", http.StatusServiceUnavailable))
		return
	}
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	sections, err := h.sections.Toggle(ctx, services.ToggleSectionCommand{
		WeddingID: chi.URLParam(r, "weddingID"),
		ActorID:   actorID,
		SectionID: chi.URLParam(r, "sectionID"),
	})
	if err != nil {
		writeWeddingError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, struct {
		Sections []sectionPayload `json:"sections"`
	}{Sections: sectionsPayload(sections)})
}

func (h *WeddingHandlers) saveSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.customizer == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "customizer service unavailable", http.StatusServiceUnavailable))
		return
	}
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	cmd, err := decodeCustomizeCommand(r, actorID)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	record, err := h.customizer.Save(ctx, cmd)
	if err != nil {
		writeWeddingError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, struct {
		weddingSummaryPayload
		View weddingViewPayload `json:"view"`
	}{
		weddingSummaryPayload: buildWeddingSummaryPayload(record),
		View:                  buildWeddingViewPayload(domain.ToViewModel(record)),
	})
}

func (h *WeddingHandlers) previewSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.customizer == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "customizer service unavailable", http.StatusServiceUnavailable))
		return
	}
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	cmd, err := decodeCustomizeCommand(r, actorID)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	vm, err := h.customizer.Preview(ctx, cmd)
	if err != nil {
		writeWeddingError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, buildWeddingViewPayload(vm))
}

func (h *WeddingHandlers) resetSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.customizer == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "customizer service unavailable", http.StatusServiceUnavailable))
		return
	}
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	vm, err := h.customizer.Reset(ctx, services.ResetSectionCommand{
		WeddingID: chi.URLParam(r, "weddingID"),
		ActorID:   actorID,
		SectionID: chi.URLParam(r, "sectionID"),
	})
	if err != nil {
		writeWeddingError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, buildWeddingViewPayload(vm))
}

func (h *WeddingHandlers) listRSVPs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.guests == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "guest service unavailable", http.StatusServiceUnavailable))
		return
	}
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	cmd, err := buildSubmissionListCommand(r, actorID)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	page, err := h.guests.ListRSVPs(ctx, cmd)
	if err != nil {
		writeWeddingError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, struct {
		RSVPs         []rsvpPayload `json:"rsvps"`
		NextPageToken string        `json:"nextPageToken,omitempty"`
	}{
		RSVPs:         buildRSVPPayloads(page.Items),
		NextPageToken: page.NextPageToken,
	})
}

func (h *WeddingHandlers) listWishes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.guests == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "guest service unavailable", http.StatusServiceUnavailable))
		return
	}
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	cmd, err := buildSubmissionListCommand(r, actorID)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	page, err := h.guests.ListWishes(ctx, cmd)
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

type signedUploadRequest struct {
	Purpose     string `json:"purpose"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes,omitempty"`
}

func (h *WeddingHandlers) issueSignedUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.media == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "media service unavailable", http.StatusServiceUnavailable))
		return
	}
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req signedUploadRequest
	if err := decodeJSONBody(r, maxGuestRequestBody, &req); err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	response, err := h.media.IssueSignedUpload(ctx, services.SignedUploadCommand{
		WeddingID:   chi.URLParam(r, "weddingID"),
		ActorID:     actorID,
		Purpose:     req.Purpose,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
	})
	if err != nil {
		writeWeddingError(ctx, w, err)
		return
	}

	payload := struct {
		UploadURL  string            `json:"uploadUrl"`
		Method     string            `json:"method"`
		ObjectPath string            `json:"objectPath"`
		PublicURL  string            `json:"publicUrl"`
		ExpiresAt  string            `json:"expiresAt,omitempty"`
		Headers    map[string]string `json:"headers,omitempty"`
	}{
		UploadURL:  response.UploadURL,
		Method:     response.Method,
		ObjectPath: response.ObjectPath,
		PublicURL:  response.PublicURL,
		Headers:    response.Headers,
	}
	if !response.ExpiresAt.IsZero() {
		payload.ExpiresAt = response.ExpiresAt.UTC().Format(time.RFC3339)
	}

	writeJSONResponse(w, http.StatusOK, payload)
}

func buildSubmissionListCommand(r *http.Request, actorID string) (services.ListSubmissionsCommand, error) {
	pager, err := parsePagination(r)
	if err != nil {
		return services.ListSubmissionsCommand{}, err
	}
	since, err := parseSinceParam(r)
	if err != nil {
		return services.ListSubmissionsCommand{}, err
	}
	return services.ListSubmissionsCommand{
		WeddingID:  chi.URLParam(r, "weddingID"),
		ActorID:    actorID,
		Since:      since,
		Pagination: pager,
	}, nil
}
