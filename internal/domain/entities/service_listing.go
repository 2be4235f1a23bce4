package entities

import (
	"math"
	"strings"
	"time"
)

// Availability statuses a vendor can set on a listing.
const (
	StatusAvailable = "Available"
	StatusBusy      = "Busy"
	StatusOffline   = "Offline"
)

// ServiceListing is a vendor's public service profile.
type ServiceListing struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Category  string    `json:"category,omitempty" db:"category"`
	Rating    float64   `json:"rating" db:"rating"`
	Status    string    `json:"status" db:"status"`
	Location  string    `json:"location" db:"location"`
	VendorID  string    `json:"vendorId,omitempty" db:"vendor_id"`
	Verified  bool      `json:"verified" db:"verified"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Normalized returns a copy with the coercion rules applied: rating in
// [0,5], status and location trimmed.
func (s ServiceListing) Normalized() ServiceListing {
	out := s
	if math.IsNaN(out.Rating) || math.IsInf(out.Rating, 0) || out.Rating < 0 {
		out.Rating = 0
	}
	if out.Rating > MaxStars {
		out.Rating = MaxStars
	}
	out.Name = strings.TrimSpace(out.Name)
	out.Status = strings.TrimSpace(out.Status)
	out.Location = strings.TrimSpace(out.Location)
	return out
}

// NormalizeStatus lowercases and trims a status value for comparison.
func NormalizeStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}
