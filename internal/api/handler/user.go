package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cinephile-dev/cinephile/internal/api/middleware"
	"github.com/cinephile-dev/cinephile/internal/domain/model"
	"github.com/cinephile-dev/cinephile/internal/usecase"
)

const defaultHistoryLimit = 20

type ToggleFavoriteResponse struct {
	Success    bool `json:"success"`
	IsFavorite bool `json:"isFavorite"`
}

// UserHandler handles the authenticated per-user routes. All handlers
// assume middleware.Authenticator has already placed the caller in the
// request context.
type UserHandler struct {
	svc usecase.AccountService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc usecase.AccountService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Profile handles GET /api/v1/user/profile
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	JSON(w, http.StatusOK, toUserResponse(user))
}

// GetHistory handles GET /api/v1/user/watch-history
func (h *UserHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	limit := queryInt(r, "limit", defaultHistoryLimit)

	watched, err := h.svc.GetHistory(r.Context(), user.ID, limit)
	if err != nil {
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	JSON(w, http.StatusOK, toWatchedResponses(watched))
}

// AddHistory handles POST /api/v1/user/watch-history
func (h *UserHandler) AddHistory(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	videoID := r.URL.Query().Get("video_id")
	if videoID == "" {
		Error(w, http.StatusBadRequest, "invalid_request", "Query parameter video_id is required")
		return
	}

	if err := h.svc.AddHistory(r.Context(), user.ID, videoID); err != nil {
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	JSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// GetFavorites handles GET /api/v1/user/favorites
func (h *UserHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	videos, err := h.svc.GetFavorites(r.Context(), user.ID)
	if err != nil {
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	JSON(w, http.StatusOK, toVideoResponses(videos))
}

// ToggleFavorite handles POST /api/v1/user/favorites/{video_id}
func (h *UserHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	videoID := chi.URLParam(r, "video_id")

	isFavorite, err := h.svc.ToggleFavorite(r.Context(), user.ID, videoID)
	if err != nil {
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	JSON(w, http.StatusOK, ToggleFavoriteResponse{
		Success:    true,
		IsFavorite: isFavorite,
	})
}

func toWatchedResponses(watched []model.WatchedVideo) []VideoResponse {
	out := make([]VideoResponse, 0, len(watched))
	for i := range watched {
		resp := toVideoResponse(&watched[i].Video)
		resp.WatchedAt = watched[i].WatchedAt.Format(time.RFC3339)
		out = append(out, resp)
	}
	return out
}
