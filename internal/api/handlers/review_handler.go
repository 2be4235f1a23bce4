package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/localserve/backend/internal/domain/entities"
	"github.com/localserve/backend/internal/domain/providers"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 64 << 10

// ReviewSubmitter defines the write operations used by the handler.
type ReviewSubmitter interface {
	Submit(ctx context.Context, review *entities.Review) error
	SubmitRequest(ctx context.Context, request *entities.ContactRequest) error
}

// ReviewHandler handles review and contact request submissions.
type ReviewHandler struct {
	service ReviewSubmitter
	guard   *submissionGuard
}

// NewReviewHandler creates a new review handler. store may be nil, in
// which case rate limiting and de-duplication are process-local.
func NewReviewHandler(service ReviewSubmitter, store providers.KeyValueStore) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		guard:   newSubmissionGuard(store),
	}
}

type reviewRequest struct {
	ServiceID  string  `json:"serviceId"`
	Rating     float64 `json:"rating"`
	Text       string  `json:"text"`
	CustomerID string  `json:"customerId"`
}

type contactRequestPayload struct {
	ServiceID  string `json:"serviceId"`
	CustomerID string `json:"customerId"`
	Message    string `json:"message"`
}

// SubmitReview handles POST /api/reviews
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var payload reviewRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	ip := clientIP(r)
	rateKey := "reviews:rate:" + ip
	if !h.admit(w, r, rateKey) {
		return
	}
	dupKey := "reviews:dup:" + fingerprint(payload.ServiceID, payload.CustomerID, payload.Text, strconv.FormatFloat(payload.Rating, 'f', -1, 64), ip)
	if h.guard.isDuplicate(r.Context(), dupKey) {
		respondWithJSON(w, http.StatusAccepted, map[string]string{
			"status": "duplicate_ignored",
		})
		return
	}

	review := &entities.Review{
		ServiceID:  payload.ServiceID,
		Rating:     payload.Rating,
		Text:       payload.Text,
		CustomerID: payload.CustomerID,
	}
	if err := h.service.Submit(r.Context(), review); err != nil {
		respondWithAppError(w, err)
		return
	}
	h.guard.recordAccepted(r.Context(), rateKey, dupKey)

	respondWithJSON(w, http.StatusCreated, review)
}

// SubmitContactRequest handles POST /api/requests
func (h *ReviewHandler) SubmitContactRequest(w http.ResponseWriter, r *http.Request) {
	var payload contactRequestPayload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	ip := clientIP(r)
	rateKey := "requests:rate:" + ip
	if !h.admit(w, r, rateKey) {
		return
	}
	dupKey := "requests:dup:" + fingerprint(payload.ServiceID, payload.CustomerID, payload.Message, ip)
	if h.guard.isDuplicate(r.Context(), dupKey) {
		respondWithJSON(w, http.StatusAccepted, map[string]string{
			"status": "duplicate_ignored",
		})
		return
	}

	request := &entities.ContactRequest{
		ServiceID:  payload.ServiceID,
		CustomerID: payload.CustomerID,
		Message:    payload.Message,
	}
	if err := h.service.SubmitRequest(r.Context(), request); err != nil {
		respondWithAppError(w, err)
		return
	}
	h.guard.recordAccepted(r.Context(), rateKey, dupKey)

	respondWithJSON(w, http.StatusCreated, request)
}

func (h *ReviewHandler) admit(w http.ResponseWriter, r *http.Request, key string) bool {
	allowed, retryAfter := h.guard.allow(r.Context(), key)
	if !allowed {
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Round(time.Second).Seconds())))
		respondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return false
	}
	return true
}
