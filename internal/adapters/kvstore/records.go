package kvstore

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/localserve/backend/internal/domain/entities"
)

// Records in the key-value store are loosely shaped: numbers may arrive as
// strings, ids as numbers, fields may be missing. The flex types below
// decode whatever is there and fall back to zero values instead of failing.

type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*f = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = ""
			return nil
		}
		*f = flexString(s)
	case data[0] == '{' || data[0] == '[':
		*f = ""
	default:
		*f = flexString(data)
	}
	return nil
}

type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	*f = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		*f = flexFloat(v)
	}
	return nil
}

type flexBool bool

func (f *flexBool) UnmarshalJSON(data []byte) error {
	*f = false
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("true")):
		*f = true
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			b, _ := strconv.ParseBool(strings.TrimSpace(s))
			*f = flexBool(b)
		}
	default:
		if v, err := strconv.ParseFloat(string(data), 64); err == nil {
			*f = v != 0
		}
	}
	return nil
}

// flexTime accepts RFC 3339 strings or Unix milliseconds.
type flexTime time.Time

func (f *flexTime) UnmarshalJSON(data []byte) error {
	*f = flexTime(time.Time{})
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		if t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s)); err == nil {
			*f = flexTime(t.UTC())
		}
		return nil
	}
	if ms, err := strconv.ParseFloat(string(data), 64); err == nil {
		*f = flexTime(time.UnixMilli(int64(ms)).UTC())
	}
	return nil
}

type reviewRecord struct {
	ID         flexString `json:"id"`
	ServiceID  flexString `json:"serviceId"`
	Rating     flexFloat  `json:"rating"`
	Text       flexString `json:"text"`
	CustomerID flexString `json:"customerId"`
	CreatedAt  flexTime   `json:"createdAt"`
}

func (r reviewRecord) toEntity() entities.Review {
	return entities.Review{
		ID:         string(r.ID),
		ServiceID:  string(r.ServiceID),
		Rating:     float64(r.Rating),
		Text:       string(r.Text),
		CustomerID: string(r.CustomerID),
		CreatedAt:  time.Time(r.CreatedAt),
	}
}

type serviceRecord struct {
	ID        flexString `json:"id"`
	Name      flexString `json:"name"`
	Category  flexString `json:"category"`
	Rating    flexFloat  `json:"rating"`
	Status    flexString `json:"status"`
	Location  flexString `json:"location"`
	VendorID  flexString `json:"vendorId"`
	Verified  flexBool   `json:"verified"`
	CreatedAt flexTime   `json:"createdAt"`
}

func (r serviceRecord) toEntity() entities.ServiceListing {
	return entities.ServiceListing{
		ID:        string(r.ID),
		Name:      string(r.Name),
		Category:  string(r.Category),
		Rating:    float64(r.Rating),
		Status:    string(r.Status),
		Location:  string(r.Location),
		VendorID:  string(r.VendorID),
		Verified:  bool(r.Verified),
		CreatedAt: time.Time(r.CreatedAt),
	}
}

type requestRecord struct {
	ID         flexString `json:"id"`
	ServiceID  flexString `json:"serviceId"`
	CustomerID flexString `json:"customerId"`
	Message    flexString `json:"message"`
	Status     flexString `json:"status"`
	CreatedAt  flexTime   `json:"createdAt"`
}

func (r requestRecord) toEntity() entities.ContactRequest {
	return entities.ContactRequest{
		ID:         string(r.ID),
		ServiceID:  string(r.ServiceID),
		CustomerID: string(r.CustomerID),
		Message:    string(r.Message),
		Status:     string(r.Status),
		CreatedAt:  time.Time(r.CreatedAt),
	}
}
