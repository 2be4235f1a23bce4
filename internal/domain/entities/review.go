package entities

import (
	"math"
	"time"
)

// Review is a customer's rating and free-text comment on a service listing.
type Review struct {
	ID         string    `json:"id" db:"id"`
	ServiceID  string    `json:"serviceId" db:"service_id"`
	Rating     float64   `json:"rating" db:"rating"`
	Text       string    `json:"text" db:"text"`
	CustomerID string    `json:"customerId,omitempty" db:"customer_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// Rating bounds for a review star value.
const (
	MinStars = 1
	MaxStars = 5
)

// NormalizeRating coerces a raw rating into [0,5]. NaN, infinities and
// non-positive values become 0, which means "no rating".
func NormalizeRating(r float64) float64 {
	if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
		return 0
	}
	if r > MaxStars {
		return MaxStars
	}
	if r < MinStars {
		return MinStars
	}
	return r
}

// ClampStars maps a raw rating onto a whole star bucket in [1,5].
// Missing or invalid ratings land in the 1 star bucket.
func ClampStars(r float64) int {
	n := NormalizeRating(r)
	if n == 0 {
		return MinStars
	}
	stars := int(math.Round(n))
	if stars < MinStars {
		return MinStars
	}
	if stars > MaxStars {
		return MaxStars
	}
	return stars
}
