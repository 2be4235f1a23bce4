package services

import (
	"sort"
	"strconv"

	"github.com/localserve/backend/internal/domain/entities"
)

// topKeywordLimit caps each keyword list in a summary.
const topKeywordLimit = 6

// TrustPolicy holds the share thresholds behind the trust badge.
type TrustPolicy struct {
	MinReviews            int
	MostlyPositiveMinPos  float64
	MostlyPositiveMaxNeg  float64
	MostlyNegativeMinNeg  float64
	GenerallyPositiveMinP float64
	GenerallyPositiveMaxN float64
}

// DefaultTrustPolicy returns the thresholds used for the listing badges.
func DefaultTrustPolicy() TrustPolicy {
	return TrustPolicy{
		MinReviews:            3,
		MostlyPositiveMinPos:  0.70,
		MostlyPositiveMaxNeg:  0.15,
		MostlyNegativeMinNeg:  0.45,
		GenerallyPositiveMinP: 0.45,
		GenerallyPositiveMaxN: 0.25,
	}
}

// ReviewSummarizer aggregates classified reviews into counts, shares, a
// trust badge and keyword highlights.
type ReviewSummarizer struct {
	classifier *SentimentClassifier
	policy     TrustPolicy
}

// NewReviewSummarizer creates a summarizer. A nil classifier falls back to
// the default one.
func NewReviewSummarizer(classifier *SentimentClassifier) *ReviewSummarizer {
	if classifier == nil {
		classifier = NewSentimentClassifier()
	}
	return &ReviewSummarizer{
		classifier: classifier,
		policy:     DefaultTrustPolicy(),
	}
}

// Summarize builds the summary for a set of reviews. Nil and empty input
// both produce the zero summary.
func (s *ReviewSummarizer) Summarize(reviews []entities.Review) entities.ReviewSummary {
	summary := emptySummary()
	if len(reviews) == 0 {
		return summary
	}

	posFreq := newKeywordCounter()
	negFreq := newKeywordCounter()
	sumRatings := 0.0

	for _, review := range reviews {
		result := s.classifier.Classify(review)

		switch result.Sentiment {
		case entities.SentimentPositive:
			summary.Counts.Positive++
		case entities.SentimentNegative:
			summary.Counts.Negative++
		default:
			summary.Counts.Neutral++
		}

		sumRatings += result.Rating
		posFreq.add(result.PosHits)
		negFreq.add(result.NegHits)
		summary.ByReviewID[review.ID] = result
	}

	total := len(reviews)
	summary.Total = total
	summary.AvgRating = sumRatings / float64(total)
	summary.AvgRatingDisplay = strconv.FormatFloat(summary.AvgRating, 'f', 1, 64)
	summary.Pct = entities.SentimentShares{
		Positive: float64(summary.Counts.Positive) / float64(total),
		Neutral:  float64(summary.Counts.Neutral) / float64(total),
		Negative: float64(summary.Counts.Negative) / float64(total),
	}
	summary.Trust = s.trustBadge(total, summary.Pct)
	summary.TopPositiveKeywords = posFreq.top(topKeywordLimit)
	summary.TopNegativeKeywords = negFreq.top(topKeywordLimit)

	return summary
}

func (s *ReviewSummarizer) trustBadge(total int, pct entities.SentimentShares) entities.TrustBadge {
	p := s.policy
	switch {
	case total < p.MinReviews:
		return entities.TrustBadge{Label: "New listing", Tone: entities.ToneNeutral}
	case pct.Positive >= p.MostlyPositiveMinPos && pct.Negative <= p.MostlyPositiveMaxNeg:
		return entities.TrustBadge{Label: "Mostly positive", Tone: entities.TonePositive}
	case pct.Negative >= p.MostlyNegativeMinNeg:
		return entities.TrustBadge{Label: "Mostly negative", Tone: entities.ToneNegative}
	case pct.Positive >= p.GenerallyPositiveMinP && pct.Negative <= p.GenerallyPositiveMaxN:
		return entities.TrustBadge{Label: "Generally positive", Tone: entities.TonePositive}
	default:
		return entities.TrustBadge{Label: "Mixed feedback", Tone: entities.ToneNeutral}
	}
}

func emptySummary() entities.ReviewSummary {
	return entities.ReviewSummary{
		AvgRatingDisplay:    "0.0",
		Trust:               entities.TrustBadge{Label: "No reviews yet", Tone: entities.ToneNeutral},
		TopPositiveKeywords: []entities.KeywordCount{},
		TopNegativeKeywords: []entities.KeywordCount{},
		ByReviewID:          map[string]entities.SentimentResult{},
	}
}

// keywordCounter counts words while remembering first-seen order, so ties
// in the top list resolve deterministically.
type keywordCounter struct {
	order  []string
	counts map[string]int
}

func newKeywordCounter() *keywordCounter {
	return &keywordCounter{counts: make(map[string]int)}
}

func (k *keywordCounter) add(words []string) {
	for _, w := range words {
		if _, seen := k.counts[w]; !seen {
			k.order = append(k.order, w)
		}
		k.counts[w]++
	}
}

func (k *keywordCounter) top(limit int) []entities.KeywordCount {
	out := make([]entities.KeywordCount, 0, len(k.order))
	for _, w := range k.order {
		out = append(out, entities.KeywordCount{Word: w, Count: k.counts[w]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
