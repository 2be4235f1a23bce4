package services

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/localserve/backend/internal/domain/entities"
	"github.com/localserve/backend/internal/domain/repositories"
	"github.com/localserve/backend/internal/infrastructure/observability"
)

// statusOther buckets listings whose status is not one of the known values.
const statusOther = "Other"

// InsightsService loads record snapshots and feeds them to the pure
// analytics components. It holds no state between calls.
type InsightsService struct {
	services   repositories.ServiceRepository
	reviews    repositories.ReviewRepository
	requests   repositories.RequestRepository
	classifier *SentimentClassifier
	summarizer *ReviewSummarizer
	ranker     *ServiceRankingService
	metrics    *observability.Metrics
}

// NewInsightsService creates a new insights service.
func NewInsightsService(
	services repositories.ServiceRepository,
	reviews repositories.ReviewRepository,
	requests repositories.RequestRepository,
	classifier *SentimentClassifier,
	ranker *ServiceRankingService,
) *InsightsService {
	if classifier == nil {
		classifier = NewSentimentClassifier()
	}
	if ranker == nil {
		ranker = NewServiceRankingService()
	}
	return &InsightsService{
		services:   services,
		reviews:    reviews,
		requests:   requests,
		classifier: classifier,
		summarizer: NewReviewSummarizer(classifier),
		ranker:     ranker,
	}
}

// SetMetrics enables metric recording.
func (s *InsightsService) SetMetrics(metrics *observability.Metrics) {
	s.metrics = metrics
}

// ClassifyReview labels a single review without touching the store.
func (s *InsightsService) ClassifyReview(ctx context.Context, review entities.Review) entities.SentimentResult {
	ctx, span := observability.StartSpan(ctx, "InsightsService.ClassifyReview")
	defer span.End()

	result := s.classifier.Classify(review)
	span.SetAttributes(
		attribute.String("review.sentiment", string(result.Sentiment)),
		attribute.Int("review.score", result.Score),
	)
	observability.RecordClassified(ctx, s.metrics, string(result.Sentiment), 1)
	return result
}

// ServiceReviewSummary summarizes the current reviews of one listing.
func (s *InsightsService) ServiceReviewSummary(ctx context.Context, serviceID string) (entities.ReviewSummary, error) {
	ctx, span := observability.StartSpan(ctx, "InsightsService.ServiceReviewSummary")
	defer span.End()
	span.SetAttributes(attribute.String("service.id", serviceID))

	if _, err := s.services.GetByID(ctx, serviceID); err != nil {
		observability.RecordError(span, err)
		return entities.ReviewSummary{}, err
	}

	reviews, err := s.loadReviews(ctx, serviceID)
	if err != nil {
		observability.RecordError(span, err)
		return entities.ReviewSummary{}, err
	}

	summary := s.summarize(ctx, reviews)
	observability.LoggerFromContext(ctx).Debug().
		Str("service_id", serviceID).
		Int("reviews", summary.Total).
		Str("trust", summary.Trust.Label).
		Msg("Summarized service reviews")
	return summary, nil
}

// ServiceRatingChart builds the rating donut for one listing.
func (s *InsightsService) ServiceRatingChart(ctx context.Context, serviceID string) (entities.RatingChart, error) {
	ctx, span := observability.StartSpan(ctx, "InsightsService.ServiceRatingChart")
	defer span.End()
	span.SetAttributes(attribute.String("service.id", serviceID))

	if _, err := s.services.GetByID(ctx, serviceID); err != nil {
		observability.RecordError(span, err)
		return entities.RatingChart{}, err
	}

	reviews, err := s.loadReviews(ctx, serviceID)
	if err != nil {
		observability.RecordError(span, err)
		return entities.RatingChart{}, err
	}
	return BuildRatingChart(reviews), nil
}

// RankServices ranks every stored listing. When opts carries no known
// locations, the distinct locations of the stored listings are used.
func (s *InsightsService) RankServices(ctx context.Context, opts entities.RankOptions) ([]entities.RankedService, error) {
	ctx, span := observability.StartSpan(ctx, "InsightsService.RankServices")
	defer span.End()

	start := time.Now()
	listings, err := s.services.List(ctx)
	observability.RecordStoreMetric(ctx, s.metrics, "services.list", time.Since(start))
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	if len(opts.KnownLocations) == 0 {
		opts.KnownLocations = DistinctLocations(listings)
	}

	rankStart := time.Now()
	ranked := s.ranker.Rank(listings, opts)
	observability.RecordRanking(ctx, s.metrics, len(listings), time.Since(rankStart))

	target, hasTarget := ResolveTargetLocation(opts)
	span.SetAttributes(
		attribute.Int("ranking.candidates", len(listings)),
		attribute.String("ranking.target_location", target),
	)
	observability.LoggerFromContext(ctx).Debug().
		Str("search", opts.Search).
		Bool("has_target", hasTarget).
		Str("target_location", target).
		Int("results", len(ranked)).
		Msg("Ranked services")

	return ranked, nil
}

// Overview builds the admin analytics snapshot.
func (s *InsightsService) Overview(ctx context.Context) (entities.MarketplaceOverview, error) {
	ctx, span := observability.StartSpan(ctx, "InsightsService.Overview")
	defer span.End()

	listings, err := s.services.List(ctx)
	if err != nil {
		observability.RecordError(span, err)
		return entities.MarketplaceOverview{}, err
	}
	reviews, err := s.loadReviews(ctx, "")
	if err != nil {
		observability.RecordError(span, err)
		return entities.MarketplaceOverview{}, err
	}
	var requests []entities.ContactRequest
	if s.requests != nil {
		requests, err = s.requests.List(ctx)
		if err != nil {
			observability.RecordError(span, err)
			return entities.MarketplaceOverview{}, err
		}
	}

	overview := entities.MarketplaceOverview{
		TotalServices:    len(listings),
		ServicesByStatus: map[string]int{entities.StatusAvailable: 0, entities.StatusBusy: 0, entities.StatusOffline: 0},
		TotalRequests:    len(requests),
		RequestsByStatus: map[string]int{},
		Reviews:          s.summarize(ctx, reviews),
		RatingChart:      BuildRatingChart(reviews),
	}
	for _, svc := range listings {
		overview.ServicesByStatus[canonicalStatus(svc.Status)]++
		if svc.Verified {
			overview.VerifiedServices++
		}
	}
	for _, req := range requests {
		status := strings.TrimSpace(req.Status)
		if status == "" {
			status = entities.RequestPending
		}
		overview.RequestsByStatus[status]++
	}
	return overview, nil
}

// loadReviews reads one listing's reviews, or all reviews when serviceID is empty.
func (s *InsightsService) loadReviews(ctx context.Context, serviceID string) ([]entities.Review, error) {
	start := time.Now()
	var (
		reviews []entities.Review
		err     error
	)
	if serviceID == "" {
		reviews, err = s.reviews.List(ctx)
		observability.RecordStoreMetric(ctx, s.metrics, "reviews.list", time.Since(start))
	} else {
		reviews, err = s.reviews.ListByService(ctx, serviceID)
		observability.RecordStoreMetric(ctx, s.metrics, "reviews.list_by_service", time.Since(start))
	}
	return reviews, err
}

func (s *InsightsService) summarize(ctx context.Context, reviews []entities.Review) entities.ReviewSummary {
	summary := s.summarizer.Summarize(reviews)
	observability.RecordClassified(ctx, s.metrics, string(entities.SentimentPositive), summary.Counts.Positive)
	observability.RecordClassified(ctx, s.metrics, string(entities.SentimentNeutral), summary.Counts.Neutral)
	observability.RecordClassified(ctx, s.metrics, string(entities.SentimentNegative), summary.Counts.Negative)
	return summary
}

// DistinctLocations returns the non-empty listing locations in first-seen
// order, compared case-insensitively.
func DistinctLocations(listings []entities.ServiceListing) []string {
	seen := make(map[string]struct{}, len(listings))
	out := make([]string, 0, len(listings))
	for _, svc := range listings {
		loc := strings.TrimSpace(svc.Location)
		if loc == "" {
			continue
		}
		key := strings.ToLower(loc)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, loc)
	}
	return out
}

func canonicalStatus(status string) string {
	switch entities.NormalizeStatus(status) {
	case "available":
		return entities.StatusAvailable
	case "busy":
		return entities.StatusBusy
	case "offline":
		return entities.StatusOffline
	default:
		return statusOther
	}
}
