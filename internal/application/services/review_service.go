package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/localserve/backend/internal/domain/entities"
	"github.com/localserve/backend/internal/domain/repositories"
	"github.com/localserve/backend/internal/infrastructure/observability"
	apperrors "github.com/localserve/backend/pkg/errors"
)

// MaxReviewTextLength caps review and request message bodies, in characters.
const MaxReviewTextLength = 2000

// ReviewService handles review and contact request submissions.
type ReviewService struct {
	services repositories.ServiceRepository
	reviews  repositories.ReviewRepository
	requests repositories.RequestRepository
	now      func() time.Time
}

// NewReviewService creates a new review service.
func NewReviewService(
	services repositories.ServiceRepository,
	reviews repositories.ReviewRepository,
	requests repositories.RequestRepository,
) *ReviewService {
	return &ReviewService{
		services: services,
		reviews:  reviews,
		requests: requests,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates and stores a review. ID and CreatedAt are filled in
// when missing.
func (s *ReviewService) Submit(ctx context.Context, review *entities.Review) error {
	ctx, span := observability.StartSpan(ctx, "ReviewService.Submit")
	defer span.End()

	if review == nil {
		return apperrors.NewValidationError("review is required")
	}
	review.ServiceID = strings.TrimSpace(review.ServiceID)
	review.Text = strings.TrimSpace(review.Text)

	if review.ServiceID == "" {
		return apperrors.NewValidationError("serviceId is required")
	}
	if math.IsNaN(review.Rating) || review.Rating < entities.MinStars || review.Rating > entities.MaxStars {
		return apperrors.NewValidationError(fmt.Sprintf("rating must be between %d and %d", entities.MinStars, entities.MaxStars))
	}
	if utf8.RuneCountInString(review.Text) > MaxReviewTextLength {
		return apperrors.NewValidationError(fmt.Sprintf("text must be at most %d characters", MaxReviewTextLength))
	}
	if _, err := s.services.GetByID(ctx, review.ServiceID); err != nil {
		observability.RecordError(span, err)
		return err
	}

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = s.now()
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		observability.RecordError(span, err)
		return err
	}

	observability.LoggerFromContext(ctx).Info().
		Str("review_id", review.ID).
		Str("service_id", review.ServiceID).
		Float64("rating", review.Rating).
		Msg("Review submitted")
	return nil
}

// SubmitRequest validates and stores a contact request for a listing.
func (s *ReviewService) SubmitRequest(ctx context.Context, request *entities.ContactRequest) error {
	ctx, span := observability.StartSpan(ctx, "ReviewService.SubmitRequest")
	defer span.End()

	if request == nil {
		return apperrors.NewValidationError("request is required")
	}
	request.ServiceID = strings.TrimSpace(request.ServiceID)
	request.Message = strings.TrimSpace(request.Message)

	if request.ServiceID == "" {
		return apperrors.NewValidationError("serviceId is required")
	}
	if request.Message == "" {
		return apperrors.NewValidationError("message is required")
	}
	if utf8.RuneCountInString(request.Message) > MaxReviewTextLength {
		return apperrors.NewValidationError(fmt.Sprintf("message must be at most %d characters", MaxReviewTextLength))
	}
	if _, err := s.services.GetByID(ctx, request.ServiceID); err != nil {
		observability.RecordError(span, err)
		return err
	}

	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	if request.CreatedAt.IsZero() {
		request.CreatedAt = s.now()
	}
	if request.Status == "" {
		request.Status = entities.RequestPending
	}

	if err := s.requests.Create(ctx, request); err != nil {
		observability.RecordError(span, err)
		return err
	}

	observability.LoggerFromContext(ctx).Info().
		Str("request_id", request.ID).
		Str("service_id", request.ServiceID).
		Msg("Contact request submitted")
	return nil
}
