package entities

// Sentiment is the coarse three-way tone of a review.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// SentimentResult is the classifier output for one review.
type SentimentResult struct {
	Sentiment Sentiment `json:"sentiment"`
	Score     int       `json:"score"`
	Rating    float64   `json:"rating"`
	PosHits   []string  `json:"posHits"`
	NegHits   []string  `json:"negHits"`
}

// SentimentCounts holds per-sentiment review counts.
type SentimentCounts struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// SentimentShares holds per-sentiment fractions of the total, each in [0,1].
type SentimentShares struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// Trust badge tones.
const (
	ToneNeutral  = "neutral"
	TonePositive = "positive"
	ToneNegative = "negative"
)

// TrustBadge is the qualitative label shown next to a listing's reviews.
type TrustBadge struct {
	Label string `json:"label"`
	Tone  string `json:"tone"`
}

// KeywordCount is a lexicon word and how often it was hit.
type KeywordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// ReviewSummary aggregates the reviews of one subject.
type ReviewSummary struct {
	Total               int                        `json:"total"`
	AvgRating           float64                    `json:"avgRating"`
	AvgRatingDisplay    string                     `json:"avgRatingDisplay"`
	Counts              SentimentCounts            `json:"counts"`
	Pct                 SentimentShares            `json:"pct"`
	Trust               TrustBadge                 `json:"trust"`
	TopPositiveKeywords []KeywordCount             `json:"topPositiveKeywords"`
	TopNegativeKeywords []KeywordCount             `json:"topNegativeKeywords"`
	ByReviewID          map[string]SentimentResult `json:"byReviewId"`
}

// RankOptions is the context a ranking pass is evaluated against.
type RankOptions struct {
	Search         string   `json:"search"`
	FilterLocation string   `json:"filterLocation"`
	KnownLocations []string `json:"knownLocations"`
}

// AllLocations is the FilterLocation sentinel meaning "no filter".
const AllLocations = "all"

// RankMeta explains where a listing landed in a ranking pass.
type RankMeta struct {
	Score          float64  `json:"score"`
	Reasons        []string `json:"reasons"`
	Why            string   `json:"why"`
	TargetLocation *string  `json:"targetLocation"`
}

// RankedService is a listing annotated with its ranking metadata.
type RankedService struct {
	ServiceListing
	RankMeta RankMeta `json:"rankMeta"`
}

// RatingDistribution counts reviews per star bucket (1..5).
type RatingDistribution map[int]int

// Total returns the number of reviews across the 1..5 buckets.
func (d RatingDistribution) Total() int {
	total := 0
	for stars := MinStars; stars <= MaxStars; stars++ {
		if n := d[stars]; n > 0 {
			total += n
		}
	}
	return total
}

// ChartSegment is one arc of the rating donut. Stars is 0 for the
// placeholder ring drawn when there are no reviews.
type ChartSegment struct {
	Stars         int     `json:"stars"`
	Count         int     `json:"count"`
	StartFraction float64 `json:"startFraction"`
	EndFraction   float64 `json:"endFraction"`
	StartAngle    float64 `json:"startAngle"`
	EndAngle      float64 `json:"endAngle"`
	Color         string  `json:"color"`
}

// RatingChart bundles a distribution with its drawable geometry.
type RatingChart struct {
	Distribution RatingDistribution `json:"distribution"`
	Total        int                `json:"total"`
	Segments     []ChartSegment     `json:"segments"`
	Gradient     string             `json:"gradient"`
}

// MarketplaceOverview is the admin analytics snapshot.
type MarketplaceOverview struct {
	TotalServices    int            `json:"totalServices"`
	VerifiedServices int            `json:"verifiedServices"`
	ServicesByStatus map[string]int `json:"servicesByStatus"`
	TotalRequests    int            `json:"totalRequests"`
	RequestsByStatus map[string]int `json:"requestsByStatus"`
	Reviews          ReviewSummary  `json:"reviews"`
	RatingChart      RatingChart    `json:"ratingChart"`
}
