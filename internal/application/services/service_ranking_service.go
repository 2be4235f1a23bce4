package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/localserve/backend/internal/domain/entities"
)

// RankingPolicy holds the weights and sub-score tiers of the ranking
// heuristic. Weights are expected to sum to 1.
type RankingPolicy struct {
	RatingWeight       float64
	AvailabilityWeight float64
	LocationWeight     float64

	AvailableScore     float64
	BusyScore          float64
	OfflineScore       float64
	UnknownStatusScore float64

	NoTargetScore        float64
	MissingLocationScore float64
	ExactLocationScore   float64
	PartialLocationScore float64
	OtherLocationScore   float64
}

// DefaultRankingPolicy returns the marketplace's default ranking policy.
func DefaultRankingPolicy() RankingPolicy {
	return RankingPolicy{
		RatingWeight:       0.55,
		AvailabilityWeight: 0.25,
		LocationWeight:     0.20,

		AvailableScore:     1.0,
		BusyScore:          0.55,
		OfflineScore:       0.15,
		UnknownStatusScore: 0.35,

		NoTargetScore:        0.55,
		MissingLocationScore: 0.20,
		ExactLocationScore:   1.0,
		PartialLocationScore: 0.75,
		OtherLocationScore:   0.25,
	}
}

const (
	maxRankReasons  = 3
	reasonSeparator = " · "
)

type locationMatch int

const (
	matchNone locationMatch = iota
	matchMissing
	matchExact
	matchPartial
	matchOther
)

// ServiceRankingService orders service listings for display.
type ServiceRankingService struct {
	policy RankingPolicy
}

// NewServiceRankingService creates a ranking service with the default policy.
func NewServiceRankingService() *ServiceRankingService {
	return &ServiceRankingService{policy: DefaultRankingPolicy()}
}

// NewServiceRankingServiceWithPolicy creates a ranking service with a custom policy.
func NewServiceRankingServiceWithPolicy(policy RankingPolicy) *ServiceRankingService {
	return &ServiceRankingService{policy: policy}
}

// Policy returns the policy in effect.
func (s *ServiceRankingService) Policy() RankingPolicy {
	return s.policy
}

type scoredService struct {
	ranked       entities.RankedService
	availability float64
	rating       float64
}

// Rank scores every listing against opts and returns them best first. The
// input slice is left untouched.
func (s *ServiceRankingService) Rank(listings []entities.ServiceListing, opts entities.RankOptions) []entities.RankedService {
	if len(listings) == 0 {
		return []entities.RankedService{}
	}

	target, hasTarget := ResolveTargetLocation(opts)

	scored := make([]scoredService, len(listings))
	for i, raw := range listings {
		svc := raw.Normalized()
		score, breakdown, match := s.calculateScore(svc, target, hasTarget)
		reasons := s.reasons(svc, target, hasTarget, match)

		meta := entities.RankMeta{
			Score:   score,
			Reasons: reasons,
			Why:     strings.Join(reasons, reasonSeparator),
		}
		if hasTarget {
			t := target
			meta.TargetLocation = &t
		}

		scored[i] = scoredService{
			ranked:       entities.RankedService{ServiceListing: raw, RankMeta: meta},
			availability: breakdown["availability"],
			rating:       svc.Rating,
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.ranked.RankMeta.Score != b.ranked.RankMeta.Score {
			return a.ranked.RankMeta.Score > b.ranked.RankMeta.Score
		}
		if a.availability != b.availability {
			return a.availability > b.availability
		}
		if a.rating != b.rating {
			return a.rating > b.rating
		}
		return a.ranked.Name < b.ranked.Name
	})

	out := make([]entities.RankedService, len(scored))
	for i := range scored {
		out[i] = scored[i].ranked
	}
	return out
}

// ResolveTargetLocation picks the location a ranking pass matches against:
// an explicit filter wins, otherwise the first known location mentioned in
// the search text.
func ResolveTargetLocation(opts entities.RankOptions) (string, bool) {
	filter := strings.TrimSpace(opts.FilterLocation)
	if filter != "" && !strings.EqualFold(filter, entities.AllLocations) {
		return filter, true
	}

	search := strings.ToLower(opts.Search)
	if strings.TrimSpace(search) == "" {
		return "", false
	}
	for _, loc := range opts.KnownLocations {
		needle := strings.ToLower(strings.TrimSpace(loc))
		if needle == "" {
			continue
		}
		if strings.Contains(search, needle) {
			return loc, true
		}
	}
	return "", false
}

func (s *ServiceRankingService) calculateScore(svc entities.ServiceListing, target string, hasTarget bool) (float64, map[string]float64, locationMatch) {
	breakdown := make(map[string]float64, 3)

	// 1. Rating
	breakdown["rating"] = svc.Rating / entities.MaxStars

	// 2. Availability
	breakdown["availability"] = s.availabilityScore(svc.Status)

	// 3. Location
	match := classifyLocation(svc.Location, target, hasTarget)
	breakdown["location"] = s.locationScore(match)

	total := breakdown["rating"]*s.policy.RatingWeight +
		breakdown["availability"]*s.policy.AvailabilityWeight +
		breakdown["location"]*s.policy.LocationWeight

	return roundOneDecimal(total * 100), breakdown, match
}

func (s *ServiceRankingService) availabilityScore(status string) float64 {
	switch entities.NormalizeStatus(status) {
	case "available":
		return s.policy.AvailableScore
	case "busy":
		return s.policy.BusyScore
	case "offline":
		return s.policy.OfflineScore
	default:
		return s.policy.UnknownStatusScore
	}
}

func (s *ServiceRankingService) locationScore(match locationMatch) float64 {
	switch match {
	case matchMissing:
		return s.policy.MissingLocationScore
	case matchExact:
		return s.policy.ExactLocationScore
	case matchPartial:
		return s.policy.PartialLocationScore
	case matchOther:
		return s.policy.OtherLocationScore
	default:
		return s.policy.NoTargetScore
	}
}

func classifyLocation(location, target string, hasTarget bool) locationMatch {
	if !hasTarget {
		return matchNone
	}
	loc := strings.ToLower(strings.TrimSpace(location))
	if loc == "" {
		return matchMissing
	}
	t := strings.ToLower(strings.TrimSpace(target))
	switch {
	case loc == t:
		return matchExact
	case strings.Contains(loc, t) || strings.Contains(t, loc):
		return matchPartial
	default:
		return matchOther
	}
}

func (s *ServiceRankingService) reasons(svc entities.ServiceListing, target string, hasTarget bool, match locationMatch) []string {
	reasons := make([]string, 0, maxRankReasons)

	switch {
	case svc.Rating >= 4.5:
		reasons = append(reasons, fmt.Sprintf("Highly rated (%.1f★)", svc.Rating))
	case svc.Rating >= 4.0:
		reasons = append(reasons, fmt.Sprintf("Well rated (%.1f★)", svc.Rating))
	case svc.Rating > 0:
		reasons = append(reasons, fmt.Sprintf("Rated %.1f★", svc.Rating))
	}

	switch entities.NormalizeStatus(svc.Status) {
	case "available":
		reasons = append(reasons, "Available now")
	case "busy":
		reasons = append(reasons, "Currently busy")
	case "offline":
		reasons = append(reasons, "Offline right now")
	}

	if svc.Location != "" {
		switch {
		case hasTarget && match == matchExact:
			reasons = append(reasons, "Located in "+svc.Location)
		case hasTarget && match == matchPartial:
			reasons = append(reasons, fmt.Sprintf("Near %s (%s)", target, svc.Location))
		default:
			reasons = append(reasons, "Location: "+svc.Location)
		}
	}

	if len(reasons) > maxRankReasons {
		reasons = reasons[:maxRankReasons]
	}
	return reasons
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
