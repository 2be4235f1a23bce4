package evaluation

import (
	"context"
	"time"

	"github.com/localserve/backend/internal/domain/entities"
)

// ReviewClassifier labels a single review.
type ReviewClassifier interface {
	Classify(review entities.Review) entities.SentimentResult
}

// ServiceRanker orders listings for a query.
type ServiceRanker interface {
	Rank(listings []entities.ServiceListing, opts entities.RankOptions) []entities.RankedService
}

// Runner runs the classifier and the ranker over a golden set.
type Runner struct {
	classifier ReviewClassifier
	ranker     ServiceRanker
}

func NewRunner(classifier ReviewClassifier, ranker ServiceRanker) *Runner {
	return &Runner{classifier: classifier, ranker: ranker}
}

// Run evaluates both components. It stops early only when ctx is done.
func (r *Runner) Run(ctx context.Context, set *GoldenSet) (*Report, error) {
	sentiment, err := r.EvaluateSentiment(ctx, set.Reviews)
	if err != nil {
		return nil, err
	}
	ranking, err := r.EvaluateRanking(ctx, set.Services, set.Queries, set.K)
	if err != nil {
		return nil, err
	}
	return &Report{Sentiment: *sentiment, Ranking: *ranking}, nil
}

// EvaluateSentiment computes accuracy and per-class precision/recall.
func (r *Runner) EvaluateSentiment(ctx context.Context, reviews []GoldenReview) (*SentimentReport, error) {
	report := &SentimentReport{
		Total: len(reviews),
		ByClass: map[entities.Sentiment]*ClassStats{
			entities.SentimentPositive: {},
			entities.SentimentNeutral:  {},
			entities.SentimentNegative: {},
		},
	}

	for _, gr := range reviews {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		got := r.classifier.Classify(entities.Review{ID: gr.ID, Rating: gr.Rating, Text: gr.Text})
		classStats(report, gr.Expected).Support++
		classStats(report, got.Sentiment).Predicted++

		if got.Sentiment == gr.Expected {
			report.Correct++
			classStats(report, gr.Expected).Correct++
			continue
		}
		report.Misses = append(report.Misses, SentimentMiss{
			ReviewID: gr.ID,
			Expected: gr.Expected,
			Got:      got.Sentiment,
			Score:    got.Score,
		})
	}

	if report.Total > 0 {
		report.Accuracy = float64(report.Correct) / float64(report.Total)
	}
	for _, cs := range report.ByClass {
		cs.Precision = Precision(cs.Correct, cs.Predicted)
		cs.Recall = Recall(cs.Correct, cs.Support)
	}
	return report, nil
}

func classStats(report *SentimentReport, s entities.Sentiment) *ClassStats {
	cs, ok := report.ByClass[s]
	if !ok {
		cs = &ClassStats{}
		report.ByClass[s] = cs
	}
	return cs
}

// EvaluateRanking computes Recall@K and MRR@K per query and on average.
func (r *Runner) EvaluateRanking(ctx context.Context, listings []entities.ServiceListing, queries []GoldenQuery, k int) (*RankingReport, error) {
	if k <= 0 {
		k = DefaultK
	}
	report := &RankingReport{
		TotalQueries: len(queries),
		K:            k,
		ByDifficulty: make(map[string]*DifficultySummary),
		Queries:      make([]QueryResult, 0, len(queries)),
	}

	known := make([]string, 0, len(listings))
	seen := make(map[string]struct{}, len(listings))
	for _, l := range listings {
		if _, ok := seen[l.Location]; ok || l.Location == "" {
			continue
		}
		seen[l.Location] = struct{}{}
		known = append(known, l.Location)
	}

	for _, gq := range queries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		opts := entities.RankOptions{Search: gq.Search, FilterLocation: gq.Location, KnownLocations: known}
		start := time.Now()
		ranked := r.ranker.Rank(listings, opts)
		duration := time.Since(start)

		ids := make([]string, len(ranked))
		for i, rs := range ranked {
			ids[i] = rs.ID
		}

		result := QueryResult{
			QueryID:   gq.ID,
			Search:    gq.Search,
			RecallAtK: RecallAtK(gq.Relevant, ids, k),
			MRRAtK:    MRRAtK(gq.Relevant, ids, k),
			Retrieved: topK(ids, k),
			Latency:   duration,
		}
		if len(ranked) > 0 && ranked[0].RankMeta.TargetLocation != nil {
			result.TargetLocation = *ranked[0].RankMeta.TargetLocation
		}

		r.updateRanking(report, gq.Difficulty, result)
	}

	r.finalizeRanking(report)
	return report, nil
}

func (r *Runner) updateRanking(s *RankingReport, difficulty string, res QueryResult) {
	s.Queries = append(s.Queries, res)
	s.AvgRecallAtK += res.RecallAtK
	s.AvgMRRAtK += res.MRRAtK
	s.AvgLatency += res.Latency
	if res.MRRAtK > 0 {
		s.QueriesWithHits++
	}

	if _, ok := s.ByDifficulty[difficulty]; !ok {
		s.ByDifficulty[difficulty] = &DifficultySummary{}
	}
	ds := s.ByDifficulty[difficulty]
	ds.Count++
	ds.AvgRecallAtK += res.RecallAtK
	ds.AvgMRRAtK += res.MRRAtK
}

func (r *Runner) finalizeRanking(s *RankingReport) {
	if s.TotalQueries > 0 {
		n := float64(s.TotalQueries)
		s.AvgRecallAtK /= n
		s.AvgMRRAtK /= n
		s.AvgLatency /= time.Duration(s.TotalQueries)
	}

	for _, ds := range s.ByDifficulty {
		if ds.Count > 0 {
			n := float64(ds.Count)
			ds.AvgRecallAtK /= n
			ds.AvgMRRAtK /= n
		}
	}
}
