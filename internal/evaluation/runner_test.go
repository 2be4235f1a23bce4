package evaluation

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localserve/backend/internal/application/services"
	"github.com/localserve/backend/internal/domain/entities"
)

type fixedClassifier entities.Sentiment

func (f fixedClassifier) Classify(entities.Review) entities.SentimentResult {
	return entities.SentimentResult{Sentiment: entities.Sentiment(f)}
}

func TestRunner_EvaluateSentiment(t *testing.T) {
	runner := NewRunner(fixedClassifier(entities.SentimentPositive), services.NewServiceRankingService())

	report, err := runner.EvaluateSentiment(context.Background(), []GoldenReview{
		{ID: "a", Expected: entities.SentimentPositive},
		{ID: "b", Expected: entities.SentimentPositive},
		{ID: "c", Expected: entities.SentimentNegative},
		{ID: "d", Expected: entities.SentimentNeutral},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, report.Correct)
	assert.Equal(t, 0.5, report.Accuracy)
	assert.Equal(t, 0.5, report.ByClass[entities.SentimentPositive].Precision)
	assert.Equal(t, 1.0, report.ByClass[entities.SentimentPositive].Recall)
	assert.Equal(t, 0.0, report.ByClass[entities.SentimentNegative].Recall)
	assert.Len(t, report.Misses, 2)
}

func TestRunner_EvaluateRanking(t *testing.T) {
	runner := NewRunner(services.NewSentimentClassifier(), services.NewServiceRankingService())
	listings := []entities.ServiceListing{
		{ID: "far", Name: "Far", Rating: 5, Status: entities.StatusAvailable, Location: "Bandra"},
		{ID: "near", Name: "Near", Rating: 4, Status: entities.StatusAvailable, Location: "Andheri"},
	}

	report, err := runner.EvaluateRanking(context.Background(), listings, []GoldenQuery{
		{ID: "q1", Search: "plumber in andheri", Relevant: []string{"near"}, Difficulty: "easy"},
		{ID: "q2", Search: "plumber", Relevant: []string{"near"}, Difficulty: "hard"},
	}, 0)

	require.NoError(t, err)
	assert.Equal(t, DefaultK, report.K)
	require.Len(t, report.Queries, 2)
	assert.Equal(t, "Andheri", report.Queries[0].TargetLocation)
	assert.Equal(t, 1.0, report.Queries[0].MRRAtK)
	assert.Equal(t, 0.5, report.Queries[1].MRRAtK)
	assert.InDelta(t, 0.75, report.AvgMRRAtK, 1e-9)
	assert.Equal(t, 1.0, report.AvgRecallAtK)
	assert.Equal(t, 2, report.QueriesWithHits)
	assert.Equal(t, 1, report.ByDifficulty["hard"].Count)
}

func TestRunner_CancelledContext(t *testing.T) {
	runner := NewRunner(services.NewSentimentClassifier(), services.NewServiceRankingService())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, &GoldenSet{Reviews: []GoldenReview{{ID: "a"}}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_BundledGoldenSetClearsGuardrails(t *testing.T) {
	set, err := LoadGoldenSet(filepath.Join("..", "..", "config", "golden_set.json"))
	require.NoError(t, err)

	runner := NewRunner(services.NewSentimentClassifier(), services.NewServiceRankingService())
	report, err := runner.Run(context.Background(), set)
	require.NoError(t, err)

	assert.Equal(t, len(set.Reviews), report.Sentiment.Total)
	assert.Equal(t, len(set.Queries), report.Ranking.TotalQueries)

	g := NewGuardrails(GuardrailConfig{MinAccuracy: 0.85, MinRecallAtK: 0.9, MinMRRAtK: 0.7})
	assert.Empty(t, g.Check(report))
}
