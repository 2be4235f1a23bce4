package services

// Lexicon holds the word sets the sentiment classifier scores against.
// Sets are read-only after construction and safe to share.
type Lexicon struct {
	positive     map[string]struct{}
	negative     map[string]struct{}
	negations    map[string]struct{}
	intensifiers map[string]struct{}
}

var defaultPositiveWords = []string{
	"good", "great", "excellent", "amazing", "awesome", "fantastic", "wonderful",
	"perfect", "best", "love", "professional", "prompt", "punctual", "friendly",
	"helpful", "polite", "courteous", "clean", "neat", "reliable", "trustworthy",
	"recommend", "recommended", "quick", "fast", "efficient", "skilled",
	"knowledgeable", "thorough", "affordable", "reasonable", "satisfied", "happy",
}

var defaultNegativeWords = []string{
	"bad", "poor", "terrible", "awful", "horrible", "worst", "hate", "rude",
	"unprofessional", "late", "slow", "delayed", "overpriced", "expensive",
	"dirty", "messy", "careless", "sloppy", "unreliable", "unhelpful", "lazy",
	"incompetent", "disappointed", "disappointing", "broken", "damaged", "scam",
	"cheated", "waste", "problem", "issue", "noisy",
}

var defaultNegationWords = []string{
	"not", "no", "never", "hardly", "barely", "nothing", "nor", "without",
	"don't", "didn't", "doesn't", "isn't", "wasn't", "weren't", "won't",
	"can't", "couldn't", "shouldn't", "wouldn't", "aren't", "dont", "didnt",
	"doesnt", "isnt", "wasnt", "cant", "wont",
}

var defaultIntensifierWords = []string{"very", "really", "extremely", "super", "too"}

var defaultLexicon = NewLexicon(
	defaultPositiveWords,
	defaultNegativeWords,
	defaultNegationWords,
	defaultIntensifierWords,
)

// DefaultLexicon returns the built-in service-marketplace lexicon.
func DefaultLexicon() *Lexicon {
	return defaultLexicon
}

// NewLexicon builds a lexicon from word lists. Words are matched after the
// same normalization applied to review text, so they should be lowercase.
func NewLexicon(positive, negative, negations, intensifiers []string) *Lexicon {
	return &Lexicon{
		positive:     wordSet(positive),
		negative:     wordSet(negative),
		negations:    wordSet(negations),
		intensifiers: wordSet(intensifiers),
	}
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		for _, tok := range tokenizeReview(w) {
			set[tok] = struct{}{}
		}
	}
	return set
}

// polarity returns +1 for a positive word, -1 for a negative word and 0
// otherwise. A word present in both sets counts as positive.
func (l *Lexicon) polarity(token string) int {
	if _, ok := l.positive[token]; ok {
		return 1
	}
	if _, ok := l.negative[token]; ok {
		return -1
	}
	return 0
}

func (l *Lexicon) isNegation(token string) bool {
	_, ok := l.negations[token]
	return ok
}

func (l *Lexicon) isIntensifier(token string) bool {
	_, ok := l.intensifiers[token]
	return ok
}
