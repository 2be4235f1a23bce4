package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/localserve/backend/internal/application/services"
	"github.com/localserve/backend/internal/domain/entities"
	apperrors "github.com/localserve/backend/pkg/errors"
	"github.com/localserve/backend/tests/mocks"
)

func newInsightsService(t *testing.T) (*services.InsightsService, *mocks.MockServiceRepository, *mocks.MockReviewRepository, *mocks.MockRequestRepository) {
	serviceRepo := mocks.NewMockServiceRepository(t)
	reviewRepo := mocks.NewMockReviewRepository(t)
	requestRepo := mocks.NewMockRequestRepository(t)
	svc := services.NewInsightsService(serviceRepo, reviewRepo, requestRepo, nil, nil)
	return svc, serviceRepo, reviewRepo, requestRepo
}

func TestInsightsService_ServiceReviewSummary(t *testing.T) {
	ctx := context.Background()
	svc, serviceRepo, reviewRepo, _ := newInsightsService(t)

	serviceRepo.EXPECT().
		GetByID(mock.Anything, "svc-1").
		Return(&entities.ServiceListing{ID: "svc-1", Name: "Quick Fix"}, nil)
	reviewRepo.EXPECT().
		ListByService(mock.Anything, "svc-1").
		Return([]entities.Review{
			{ID: "r1", ServiceID: "svc-1", Rating: 5, Text: "prompt and friendly"},
			{ID: "r2", ServiceID: "svc-1", Rating: 4, Text: "good job"},
			{ID: "r3", ServiceID: "svc-1", Rating: 1, Text: "very rude"},
		}, nil)

	summary, err := svc.ServiceReviewSummary(ctx, "svc-1")

	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, entities.SentimentCounts{Positive: 2, Negative: 1}, summary.Counts)
	assert.Equal(t, "3.3", summary.AvgRatingDisplay)
	assert.Equal(t, "Mixed feedback", summary.Trust.Label)
	assert.Contains(t, summary.ByReviewID, "r3")
}

func TestInsightsService_ServiceReviewSummary_UnknownService(t *testing.T) {
	svc, serviceRepo, _, _ := newInsightsService(t)

	serviceRepo.EXPECT().
		GetByID(mock.Anything, "missing").
		Return(nil, apperrors.NewNotFoundError("service not found"))

	_, err := svc.ServiceReviewSummary(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestInsightsService_ServiceReviewSummary_StoreFailure(t *testing.T) {
	svc, serviceRepo, reviewRepo, _ := newInsightsService(t)

	serviceRepo.EXPECT().
		GetByID(mock.Anything, "svc-1").
		Return(&entities.ServiceListing{ID: "svc-1"}, nil)
	reviewRepo.EXPECT().
		ListByService(mock.Anything, "svc-1").
		Return(nil, apperrors.NewExternalError("review store unavailable", errors.New("connection refused")))

	_, err := svc.ServiceReviewSummary(context.Background(), "svc-1")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
}

func TestInsightsService_ServiceRatingChart(t *testing.T) {
	svc, serviceRepo, reviewRepo, _ := newInsightsService(t)

	serviceRepo.EXPECT().
		GetByID(mock.Anything, "svc-1").
		Return(&entities.ServiceListing{ID: "svc-1"}, nil)
	reviewRepo.EXPECT().
		ListByService(mock.Anything, "svc-1").
		Return([]entities.Review{{Rating: 5}, {Rating: 5}, {Rating: 5}, {Rating: 1}}, nil)

	chart, err := svc.ServiceRatingChart(context.Background(), "svc-1")

	require.NoError(t, err)
	assert.Equal(t, 4, chart.Total)
	require.Len(t, chart.Segments, 5)
	assert.Equal(t, 270.0, chart.Segments[0].EndAngle)
}

func TestInsightsService_RankServices_InfersKnownLocations(t *testing.T) {
	svc, serviceRepo, _, _ := newInsightsService(t)

	serviceRepo.EXPECT().
		List(mock.Anything).
		Return([]entities.ServiceListing{
			{ID: "1", Name: "Bandra Pipes", Rating: 4, Status: entities.StatusAvailable, Location: "Bandra"},
			{ID: "2", Name: "Andheri Plumbers", Rating: 4, Status: entities.StatusAvailable, Location: "Andheri"},
			{ID: "3", Name: "West Side", Rating: 4, Status: entities.StatusAvailable, Location: "Andheri West"},
		}, nil)

	ranked, err := svc.RankServices(context.Background(), entities.RankOptions{Search: "plumber near andheri"})

	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, "2", ranked[0].ID)
	assert.Equal(t, "3", ranked[1].ID)
	require.NotNil(t, ranked[0].RankMeta.TargetLocation)
	assert.Equal(t, "Andheri", *ranked[0].RankMeta.TargetLocation)
}

func TestInsightsService_RankServices_StoreFailure(t *testing.T) {
	svc, serviceRepo, _, _ := newInsightsService(t)

	serviceRepo.EXPECT().
		List(mock.Anything).
		Return(nil, apperrors.NewExternalError("service store unavailable", errors.New("timeout")))

	ranked, err := svc.RankServices(context.Background(), entities.RankOptions{})

	assert.Error(t, err)
	assert.Nil(t, ranked)
}

func TestInsightsService_ClassifyReview(t *testing.T) {
	svc, _, _, _ := newInsightsService(t)

	result := svc.ClassifyReview(context.Background(), entities.Review{Rating: 2, Text: "not helpful at all"})

	assert.Equal(t, entities.SentimentNegative, result.Sentiment)
	assert.Equal(t, -3, result.Score)
}

func TestInsightsService_ClassifyReviewTraced(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	svc, _, _, _ := newInsightsService(t)
	svc.ClassifyReview(context.Background(), entities.Review{Rating: 5, Text: "very polite"})

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "InsightsService.ClassifyReview", ended[0].Name())
	assert.Contains(t, ended[0].Attributes(), attribute.String("review.sentiment", string(entities.SentimentPositive)))
}

func TestInsightsService_Overview(t *testing.T) {
	svc, serviceRepo, reviewRepo, requestRepo := newInsightsService(t)

	serviceRepo.EXPECT().
		List(mock.Anything).
		Return([]entities.ServiceListing{
			{ID: "1", Status: "available", Verified: true},
			{ID: "2", Status: entities.StatusBusy},
			{ID: "3", Status: "Offline", Verified: true},
			{ID: "4", Status: "suspended"},
		}, nil)
	reviewRepo.EXPECT().
		List(mock.Anything).
		Return([]entities.Review{{ID: "r1", Rating: 5}, {ID: "r2", Rating: 1}}, nil)
	requestRepo.EXPECT().
		List(mock.Anything).
		Return([]entities.ContactRequest{
			{ID: "q1", Status: entities.RequestPending},
			{ID: "q2", Status: entities.RequestAccepted},
			{ID: "q3"},
		}, nil)

	overview, err := svc.Overview(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, overview.TotalServices)
	assert.Equal(t, 2, overview.VerifiedServices)
	assert.Equal(t, map[string]int{"Available": 1, "Busy": 1, "Offline": 1, "Other": 1}, overview.ServicesByStatus)
	assert.Equal(t, 3, overview.TotalRequests)
	assert.Equal(t, map[string]int{"Pending": 2, "Accepted": 1}, overview.RequestsByStatus)
	assert.Equal(t, 2, overview.Reviews.Total)
	assert.Equal(t, "New listing", overview.Reviews.Trust.Label)
	assert.Equal(t, 2, overview.RatingChart.Total)
}

func TestDistinctLocations(t *testing.T) {
	got := services.DistinctLocations([]entities.ServiceListing{
		{Location: "Andheri"},
		{Location: " bandra "},
		{Location: "ANDHERI"},
		{Location: ""},
		{Location: "Powai"},
	})

	assert.Equal(t, []string{"Andheri", "bandra", "Powai"}, got)
}
