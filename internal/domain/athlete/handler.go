package athlete

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/scoutline/scoutline-api/internal/middleware"
	"github.com/scoutline/scoutline-api/internal/pkg/logger"
	"github.com/scoutline/scoutline-api/internal/pkg/response"
	"github.com/scoutline/scoutline-api/internal/pkg/validator"
)

const maxPreviewBody = 1 << 20

// Handler handles athlete completion HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates athlete handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetCompletion handles GET /athletes/{id}/completion
func (h *Handler) GetCompletion(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	view, err := h.service.Completion(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.OK(w, view)
}

// PreviewCompletion handles POST /athletes/completion/preview
func (h *Handler) PreviewCompletion(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPreviewBody))
	decoder.UseNumber()
	if err := decoder.Decode(&raw); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	response.OK(w, h.service.Preview(raw))
}

// GetScore handles GET /athletes/{id}/score
func (h *Handler) GetScore(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	view, err := h.service.Score(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.OK(w, view)
}

// RecordView handles POST /athletes/{id}/views
func (h *Handler) RecordView(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if _, err := h.service.RecordView(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	response.NoContent(w)
}

// Publish handles POST /athletes/{id}/publish
func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	view, err := h.service.Publish(r.Context(), id, middleware.GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, ErrCompletionTooLow) && view != nil {
			response.Unprocessable(w, "COMPLETION_TOO_LOW", err.Error(), view)
			return
		}
		h.handleError(w, r, err)
		return
	}

	response.OK(w, PublishStatus{AthleteID: id, IsPublished: true, Completion: view.Completion})
}

// Unpublish handles DELETE /athletes/{id}/publish
func (h *Handler) Unpublish(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	status, err := h.service.Unpublish(r.Context(), id, middleware.GetUserID(r.Context()))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.OK(w, status)
}

// RefreshCompletion handles POST /athletes/{id}/completion/refresh
func (h *Handler) RefreshCompletion(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	view, err := h.service.RefreshCompletion(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	logger.LogInfo(r.Context(), "Completion refreshed by operator",
		"athlete_id", id, "operator_id", middleware.GetUserID(r.Context()), "completion", view.Completion)
	response.OK(w, view)
}

// ReviewContacts handles PUT /athletes/{id}/contacts/review
func (h *Handler) ReviewContacts(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	view, err := h.service.ReviewContacts(r.Context(), id, req.ReviewStatus)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	logger.LogInfo(r.Context(), "Contacts reviewed",
		"athlete_id", id, "operator_id", middleware.GetUserID(r.Context()), "review_status", req.ReviewStatus)
	response.OK(w, view)
}

// ListMedia handles GET /athletes/{id}/media
func (h *Handler) ListMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	category := r.URL.Query().Get("category")
	if category != "" {
		if err := validator.ValidateVar(category, "media_category"); err != nil {
			response.BadRequest(w, "Invalid media category")
			return
		}
	}

	items, err := h.service.ListMedia(r.Context(), id, category)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.OK(w, items)
}

// DeleteMedia handles DELETE /athletes/{id}/media/{mediaId}
func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	mediaID, ok := parseID(w, r, "mediaId")
	if !ok {
		return
	}

	if err := h.service.DeleteMedia(r.Context(), id, mediaID, middleware.GetUserID(r.Context())); err != nil {
		h.handleError(w, r, err)
		return
	}

	response.NoContent(w)
}

func parseID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		response.BadRequest(w, "Invalid "+param)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrAthleteNotFound):
		response.NotFound(w, "Athlete not found")
	case errors.Is(err, ErrMediaNotFound):
		response.NotFound(w, "Media item not found")
	case errors.Is(err, ErrContactsNotFound):
		response.NotFound(w, "Contacts verification not submitted")
	case errors.Is(err, ErrNotOwner):
		response.Forbidden(w, err.Error())
	default:
		logger.LogError(r.Context(), err, "Athlete request failed", "path", r.URL.Path)
		response.InternalError(w)
	}
}
