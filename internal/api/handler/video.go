package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cinephile-dev/cinephile/internal/domain/model"
	"github.com/cinephile-dev/cinephile/internal/domain/repository"
	"github.com/cinephile-dev/cinephile/internal/usecase"
)

const (
	defaultFeedLimit     = 20
	defaultSearchLimit   = 10
	defaultTrendingLimit = 10
)

// Request/Response types

type CreateVideoRequest struct {
	ID           string `json:"id,omitempty"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnailUrl"`
	VideoURL     string `json:"videoUrl"`
	Category     string `json:"category"`
	Duration     string `json:"duration"`
	Trending     bool   `json:"trending"`
	Views        int64  `json:"views"`
	ReleasedAt   string `json:"releasedAt,omitempty"`
}

type CreateVideoResponse struct {
	ID string `json:"id"`
}

type VideoResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnailUrl"`
	VideoURL     string `json:"videoUrl"`
	Category     string `json:"category"`
	Duration     string `json:"duration"`
	Trending     bool   `json:"trending"`
	Views        int64  `json:"views"`
	ReleasedAt   string `json:"releasedAt,omitempty"`
	WatchedAt    string `json:"watchedAt,omitempty"`
}

// VideoHandler handles catalog HTTP requests.
type VideoHandler struct {
	svc usecase.CatalogService
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(svc usecase.CatalogService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// Feed handles GET /api/v1/videos/feed
func (h *VideoHandler) Feed(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	limit := queryInt(r, "limit", defaultFeedLimit)

	videos, err := h.svc.Feed(r.Context(), category, limit)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toVideoResponses(videos))
}

// Search handles GET /api/v1/videos/search/query
func (h *VideoHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		Error(w, http.StatusBadRequest, "invalid_query", "Query parameter q is required")
		return
	}
	limit := queryInt(r, "limit", defaultSearchLimit)

	videos, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toVideoResponses(videos))
}

// Get handles GET /api/v1/videos/{video_id}
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "video_id")

	video, err := h.svc.Get(r.Context(), videoID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toVideoResponse(video))
}

// TrackView handles POST /api/v1/videos/{video_id}/view
//
// The response is success regardless of whether the video exists; view
// beacons from stale clients are not errors worth surfacing.
func (h *VideoHandler) TrackView(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "video_id")

	if err := h.svc.TrackView(r.Context(), videoID); err != nil {
		if !errors.Is(err, repository.ErrVideoNotFound) {
			h.handleServiceError(w, err)
			return
		}
		slog.Debug("view tracked for unknown video", "video_id", videoID)
	}

	JSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// Trending handles GET /api/v1/videos/trending/now
func (h *VideoHandler) Trending(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultTrendingLimit)

	videos, err := h.svc.Trending(r.Context(), limit)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toVideoResponses(videos))
}

// Create handles POST /api/v1/videos (administrative seed/create).
func (h *VideoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	video := &model.Video{
		ID:           req.ID,
		Title:        req.Title,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
		VideoURL:     req.VideoURL,
		Category:     req.Category,
		Duration:     req.Duration,
		Trending:     req.Trending,
		Views:        req.Views,
		ReleasedAt:   req.ReleasedAt,
	}

	id, err := h.svc.Create(r.Context(), video)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, CreateVideoResponse{ID: id})
}

func (h *VideoHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrVideoNotFound):
		Error(w, http.StatusNotFound, "video_not_found", "Video not found")
	case errors.Is(err, model.ErrEmptyTitle):
		Error(w, http.StatusBadRequest, "invalid_title", "Title cannot be empty")
	case errors.Is(err, model.ErrNegativeViews):
		Error(w, http.StatusBadRequest, "invalid_views", "Views cannot be negative")
	default:
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}

func toVideoResponse(v *model.Video) VideoResponse {
	return VideoResponse{
		ID:           v.ID,
		Title:        v.Title,
		Description:  v.Description,
		ThumbnailURL: v.ThumbnailURL,
		VideoURL:     v.VideoURL,
		Category:     v.Category,
		Duration:     v.Duration,
		Trending:     v.Trending,
		Views:        v.Views,
		ReleasedAt:   v.ReleasedAt,
	}
}

func toVideoResponses(videos []model.Video) []VideoResponse {
	out := make([]VideoResponse, 0, len(videos))
	for i := range videos {
		out = append(out, toVideoResponse(&videos[i]))
	}
	return out
}

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
