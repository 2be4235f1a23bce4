package evaluation

import (
	"time"

	"github.com/localserve/backend/internal/domain/entities"
)

// DefaultK is the ranking cut-off used when a golden set does not set one.
const DefaultK = 5

// GoldenReview is a review with a hand-assigned sentiment label.
type GoldenReview struct {
	ID         string             `json:"id"`
	Text       string             `json:"text"`
	Rating     float64            `json:"rating"`
	Expected   entities.Sentiment `json:"expected"`
	Difficulty string             `json:"difficulty"` // easy, medium, hard
}

// GoldenQuery is a ranking query with the listings a user would expect near the top.
type GoldenQuery struct {
	ID         string   `json:"id"`
	Search     string   `json:"search"`
	Location   string   `json:"location,omitempty"`
	Relevant   []string `json:"relevant_ids"`
	Difficulty string   `json:"difficulty"`
}

// GoldenSet is a labelled catalogue: the listings ranking runs over, plus
// the labelled reviews and queries.
type GoldenSet struct {
	K        int                       `json:"k,omitempty"`
	Services []entities.ServiceListing `json:"services"`
	Reviews  []GoldenReview            `json:"reviews"`
	Queries  []GoldenQuery             `json:"queries"`
}

// ClassStats holds precision/recall bookkeeping for one sentiment class.
type ClassStats struct {
	Support   int     `json:"support"`   // golden reviews labelled with the class
	Predicted int     `json:"predicted"` // reviews the classifier put in the class
	Correct   int     `json:"correct"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
}

// SentimentMiss records a misclassified golden review.
type SentimentMiss struct {
	ReviewID string             `json:"review_id"`
	Expected entities.Sentiment `json:"expected"`
	Got      entities.Sentiment `json:"got"`
	Score    int                `json:"score"`
}

// SentimentReport holds classifier quality across the golden reviews.
type SentimentReport struct {
	Total    int                                `json:"total"`
	Correct  int                                `json:"correct"`
	Accuracy float64                            `json:"accuracy"`
	ByClass  map[entities.Sentiment]*ClassStats `json:"by_class"`
	Misses   []SentimentMiss                    `json:"misses,omitempty"`
}

// QueryResult holds the evaluation outcome for a single ranking query.
type QueryResult struct {
	QueryID        string        `json:"query_id"`
	Search         string        `json:"search"`
	TargetLocation string        `json:"target_location,omitempty"`
	RecallAtK      float64       `json:"recall_at_k"`
	MRRAtK         float64       `json:"mrr_at_k"`
	Retrieved      []string      `json:"retrieved"`
	Latency        time.Duration `json:"latency"`
}

// RankingReport holds aggregate ranking metrics across all golden queries.
type RankingReport struct {
	TotalQueries    int                           `json:"total_queries"`
	K               int                           `json:"k"`
	AvgRecallAtK    float64                       `json:"avg_recall_at_k"`
	AvgMRRAtK       float64                       `json:"avg_mrr_at_k"`
	AvgLatency      time.Duration                 `json:"avg_latency"`
	QueriesWithHits int                           `json:"queries_with_hits"` // queries with a relevant listing in the top K
	ByDifficulty    map[string]*DifficultySummary `json:"by_difficulty"`
	Queries         []QueryResult                 `json:"queries"`
}

// DifficultySummary holds ranking metrics grouped by query difficulty.
type DifficultySummary struct {
	Count        int     `json:"count"`
	AvgRecallAtK float64 `json:"avg_recall_at_k"`
	AvgMRRAtK    float64 `json:"avg_mrr_at_k"`
}

// Report bundles both evaluations.
type Report struct {
	Sentiment SentimentReport `json:"sentiment"`
	Ranking   RankingReport   `json:"ranking"`
}
