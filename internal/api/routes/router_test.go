package routes_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localserve/backend/internal/adapters/cache"
	"github.com/localserve/backend/internal/adapters/kvstore"
	"github.com/localserve/backend/internal/api/handlers"
	"github.com/localserve/backend/internal/api/routes"
	"github.com/localserve/backend/internal/application/services"
	"github.com/localserve/backend/internal/domain/entities"
	redisclient "github.com/localserve/backend/internal/infrastructure/clients/redis"
)

// newTestServer wires the full stack over a miniredis-backed record store.
func newTestServer(t *testing.T, health routes.HealthChecker) http.Handler {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	kv := cache.NewRedisAdapter(redisclient.NewFromRedis(rdb))

	serviceStore := kvstore.NewServiceStore(kv, "test")
	reviewStore := kvstore.NewReviewStore(kv, "test")
	requestStore := kvstore.NewRequestStore(kv, "test")

	ctx := context.Background()
	for _, svc := range []entities.ServiceListing{
		{ID: "s1", Name: "QuickFix Plumbing", Rating: 4.7, Status: entities.StatusAvailable, Location: "Andheri"},
		{ID: "s2", Name: "Sparkle Cleaning", Rating: 4.0, Status: entities.StatusBusy, Location: "Bandra"},
	} {
		svc := svc
		require.NoError(t, serviceStore.Create(ctx, &svc))
	}

	insights := services.NewInsightsService(serviceStore, reviewStore, requestStore, nil, nil)
	reviews := services.NewReviewService(serviceStore, reviewStore, requestStore)

	router := routes.NewRouter(
		handlers.NewInsightsHandler(insights),
		handlers.NewReviewHandler(reviews, kv),
		health,
		[]string{"http://localhost:5173"},
		nil,
	)
	return router.SetupRoutes()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRouter_Health(t *testing.T) {
	h := newTestServer(t, nil)
	rr := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())

	down := newTestServer(t, func(ctx context.Context) error { return errors.New("connection refused") })
	rr = do(t, down, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestRouter_SubmitThenSummarize(t *testing.T) {
	h := newTestServer(t, nil)

	rr := do(t, h, http.MethodPost, "/api/reviews", `{"serviceId":"s1","rating":5,"text":"Very professional and quick","customerId":"c1"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created entities.Review
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)

	rr = do(t, h, http.MethodPost, "/api/reviews", `{"serviceId":"s1","rating":1,"text":"Rude and late, terrible","customerId":"c2"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = do(t, h, http.MethodGet, "/api/services/s1/reviews/summary", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var summary entities.ReviewSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Counts.Positive)
	assert.Equal(t, 1, summary.Counts.Negative)
	assert.Equal(t, "New listing", summary.Trust.Label)
	assert.Equal(t, "3.0", summary.AvgRatingDisplay)
	assert.Contains(t, summary.ByReviewID, created.ID)

	rr = do(t, h, http.MethodGet, "/api/services/s1/rating-chart", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var chart entities.RatingChart
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &chart))
	assert.Equal(t, 2, chart.Total)
	require.Len(t, chart.Segments, 5)
	assert.Equal(t, 5, chart.Segments[0].Stars)
	assert.InDelta(t, 0.5, chart.Segments[0].EndFraction, 1e-9)
	assert.Equal(t, 1.0, chart.Segments[4].EndFraction)
}

func TestRouter_SubmitReviewForUnknownService(t *testing.T) {
	h := newTestServer(t, nil)
	rr := do(t, h, http.MethodPost, "/api/reviews", `{"serviceId":"ghost","rating":4,"text":"fine"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/services/ghost/reviews/summary", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_RankedServicesInfersLocation(t *testing.T) {
	h := newTestServer(t, nil)

	rr := do(t, h, http.MethodGet, "/api/services/ranked?search=plumber+near+andheri", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp handlers.RankedServicesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)
	require.NotNil(t, resp.TargetLocation)
	assert.Equal(t, "Andheri", *resp.TargetLocation)
	assert.Equal(t, "s1", resp.Services[0].ID)
	assert.Contains(t, resp.Services[0].RankMeta.Reasons, "Located in Andheri")
}

func TestRouter_ClassifyAndOverview(t *testing.T) {
	h := newTestServer(t, nil)

	rr := do(t, h, http.MethodPost, "/api/reviews/classify", `{"rating":5,"text":"really helpful"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var result entities.SentimentResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, entities.SentimentPositive, result.Sentiment)

	rr = do(t, h, http.MethodPost, "/api/requests", `{"serviceId":"s2","customerId":"c1","message":"Free on Sunday?"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = do(t, h, http.MethodGet, "/api/admin/overview", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var overview entities.MarketplaceOverview
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &overview))
	assert.Equal(t, 2, overview.TotalServices)
	assert.Equal(t, 1, overview.ServicesByStatus[entities.StatusAvailable])
	assert.Equal(t, 1, overview.ServicesByStatus[entities.StatusBusy])
	assert.Equal(t, 1, overview.RequestsByStatus[entities.RequestPending])
}

func TestRouter_MethodAndCORS(t *testing.T) {
	h := newTestServer(t, nil)

	rr := do(t, h, http.MethodDelete, "/api/reviews", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	req := httptest.NewRequest(http.MethodOptions, "/api/reviews", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
