package services

import (
	"strings"
	"unicode"

	"github.com/localserve/backend/internal/domain/entities"
)

// DefaultSentimentThreshold is the absolute score a review needs to be
// classified positive or negative.
const DefaultSentimentThreshold = 2

const ratingPriorWeight = 2

// SentimentClassifier scores reviews with a keyword lexicon, negation and
// intensifier handling, and a prior derived from the star rating.
//
// A classifier is immutable once built and safe for concurrent use.
type SentimentClassifier struct {
	lexicon   *Lexicon
	threshold int
}

// ClassifierOption customizes a SentimentClassifier.
type ClassifierOption func(*SentimentClassifier)

// WithLexicon swaps the built-in lexicon. A nil lexicon is ignored.
func WithLexicon(l *Lexicon) ClassifierOption {
	return func(c *SentimentClassifier) {
		if l != nil {
			c.lexicon = l
		}
	}
}

// WithThreshold sets the positive/negative cut-off. Non-positive values
// are ignored.
func WithThreshold(threshold int) ClassifierOption {
	return func(c *SentimentClassifier) {
		if threshold > 0 {
			c.threshold = threshold
		}
	}
}

// NewSentimentClassifier creates a classifier with the default lexicon and
// threshold unless overridden.
func NewSentimentClassifier(opts ...ClassifierOption) *SentimentClassifier {
	c := &SentimentClassifier{
		lexicon:   DefaultLexicon(),
		threshold: DefaultSentimentThreshold,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify labels a single review. It never fails: empty text yields no
// keyword hits and an invalid rating contributes no prior.
func (c *SentimentClassifier) Classify(review entities.Review) entities.SentimentResult {
	rating := entities.NormalizeRating(review.Rating)
	textScore, posHits, negHits := c.scoreText(review.Text)
	total := ratingPrior(rating) + textScore

	sentiment := entities.SentimentNeutral
	switch {
	case total >= c.threshold:
		sentiment = entities.SentimentPositive
	case total <= -c.threshold:
		sentiment = entities.SentimentNegative
	}

	return entities.SentimentResult{
		Sentiment: sentiment,
		Score:     total,
		Rating:    rating,
		PosHits:   posHits,
		NegHits:   negHits,
	}
}

func (c *SentimentClassifier) scoreText(text string) (int, []string, []string) {
	tokens := tokenizeReview(text)
	posHits := []string{}
	negHits := []string{}
	score := 0

	for i, tok := range tokens {
		polarity := c.lexicon.polarity(tok)
		if polarity == 0 {
			continue
		}

		if (i >= 1 && c.lexicon.isNegation(tokens[i-1])) ||
			(i >= 2 && c.lexicon.isNegation(tokens[i-2])) {
			polarity = -polarity
		}

		magnitude := 1
		if i >= 1 && c.lexicon.isIntensifier(tokens[i-1]) {
			magnitude = 2
		}

		score += polarity * magnitude
		if polarity > 0 {
			posHits = append(posHits, tok)
		} else {
			negHits = append(negHits, tok)
		}
	}

	return score, posHits, negHits
}

// ratingPrior expects a rating already passed through NormalizeRating.
func ratingPrior(rating float64) int {
	switch {
	case rating >= 4:
		return ratingPriorWeight
	case rating == 3:
		return 0
	case rating > 0 && rating <= 2:
		return -ratingPriorWeight
	default:
		return 0
	}
}

// tokenizeReview lowercases text, replaces punctuation other than hyphens
// and apostrophes with spaces, and splits on whitespace.
func tokenizeReview(text string) []string {
	if text == "" {
		return nil
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r == '’' || r == '‘':
			b.WriteRune('\'')
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '\'':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Fields(b.String())
}
