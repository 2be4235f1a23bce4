package evaluation

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/localserve/backend/internal/domain/entities"
)

// LoadGoldenSet reads and parses a golden set from a JSON file.
func LoadGoldenSet(path string) (*GoldenSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read golden set file: %w", err)
	}

	var set GoldenSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse golden set: %w", err)
	}
	if set.K <= 0 {
		set.K = DefaultK
	}

	return &set, nil
}

var validDifficulties = map[string]bool{
	"easy":   true,
	"medium": true,
	"hard":   true,
}

func validSentiment(s entities.Sentiment) bool {
	switch s {
	case entities.SentimentPositive, entities.SentimentNeutral, entities.SentimentNegative:
		return true
	}
	return false
}

// ValidateGoldenSet checks ids, labels and difficulties, and that every
// relevant id of a query names a listing in the set.
func ValidateGoldenSet(set *GoldenSet) error {
	if set == nil {
		return fmt.Errorf("golden set is empty")
	}

	serviceIDs := make(map[string]struct{}, len(set.Services))
	for i, svc := range set.Services {
		if svc.ID == "" {
			return fmt.Errorf("service at index %d: missing id", i)
		}
		if _, dup := serviceIDs[svc.ID]; dup {
			return fmt.Errorf("service at index %d: duplicate id %q", i, svc.ID)
		}
		serviceIDs[svc.ID] = struct{}{}
	}

	seen := make(map[string]struct{}, len(set.Reviews))
	for i, r := range set.Reviews {
		if r.ID == "" {
			return fmt.Errorf("review at index %d: missing id", i)
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("review at index %d: duplicate id %q", i, r.ID)
		}
		seen[r.ID] = struct{}{}

		if !validSentiment(r.Expected) {
			return fmt.Errorf("review %q: invalid expected sentiment %q", r.ID, r.Expected)
		}
		if !validDifficulties[r.Difficulty] {
			return fmt.Errorf("review %q: invalid difficulty %q (must be easy/medium/hard)", r.ID, r.Difficulty)
		}
	}

	seen = make(map[string]struct{}, len(set.Queries))
	for i, q := range set.Queries {
		if q.ID == "" {
			return fmt.Errorf("query at index %d: missing id", i)
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("query at index %d: duplicate id %q", i, q.ID)
		}
		seen[q.ID] = struct{}{}

		if q.Search == "" && q.Location == "" {
			return fmt.Errorf("query %q: missing search text and location", q.ID)
		}
		if len(q.Relevant) == 0 {
			return fmt.Errorf("query %q: no relevant ids", q.ID)
		}
		for _, id := range q.Relevant {
			if _, ok := serviceIDs[id]; !ok {
				return fmt.Errorf("query %q: relevant id %q is not a listed service", q.ID, id)
			}
		}
		if !validDifficulties[q.Difficulty] {
			return fmt.Errorf("query %q: invalid difficulty %q (must be easy/medium/hard)", q.ID, q.Difficulty)
		}
	}

	return nil
}
