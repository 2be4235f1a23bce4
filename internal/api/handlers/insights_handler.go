package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/localserve/backend/internal/domain/entities"
)

// InsightsProvider defines the analytics operations used by the handler.
type InsightsProvider interface {
	ServiceReviewSummary(ctx context.Context, serviceID string) (entities.ReviewSummary, error)
	ServiceRatingChart(ctx context.Context, serviceID string) (entities.RatingChart, error)
	RankServices(ctx context.Context, opts entities.RankOptions) ([]entities.RankedService, error)
	ClassifyReview(ctx context.Context, review entities.Review) entities.SentimentResult
	Overview(ctx context.Context) (entities.MarketplaceOverview, error)
}

// InsightsHandler serves the derived analytics endpoints.
type InsightsHandler struct {
	service InsightsProvider
}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler(service InsightsProvider) *InsightsHandler {
	return &InsightsHandler{service: service}
}

// RankedServicesResponse wraps a ranking pass.
type RankedServicesResponse struct {
	Services       []entities.RankedService `json:"services"`
	Count          int                      `json:"count"`
	TargetLocation *string                  `json:"targetLocation"`
}

// RankedServices handles GET /api/services/ranked?search=&location=
func (h *InsightsHandler) RankedServices(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	opts := entities.RankOptions{
		Search:         query.Get("search"),
		FilterLocation: query.Get("location"),
	}
	if known := strings.TrimSpace(query.Get("knownLocations")); known != "" {
		opts.KnownLocations = strings.Split(known, ",")
	}

	ranked, err := h.service.RankServices(r.Context(), opts)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	resp := RankedServicesResponse{Services: ranked, Count: len(ranked)}
	if len(ranked) > 0 {
		resp.TargetLocation = ranked[0].RankMeta.TargetLocation
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// ReviewSummary handles GET /api/services/{id}/reviews/summary
func (h *InsightsHandler) ReviewSummary(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "service ID is required")
		return
	}

	summary, err := h.service.ServiceReviewSummary(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, summary)
}

// RatingChart handles GET /api/services/{id}/rating-chart
func (h *InsightsHandler) RatingChart(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "service ID is required")
		return
	}

	chart, err := h.service.ServiceRatingChart(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, chart)
}

type classifyRequest struct {
	Rating float64 `json:"rating"`
	Text   string  `json:"text"`
}

// ClassifyReview handles POST /api/reviews/classify
func (h *InsightsHandler) ClassifyReview(w http.ResponseWriter, r *http.Request) {
	var payload classifyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	result := h.service.ClassifyReview(r.Context(), entities.Review{Rating: payload.Rating, Text: payload.Text})
	respondWithJSON(w, http.StatusOK, result)
}

// Overview handles GET /api/admin/overview
func (h *InsightsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, overview)
}
