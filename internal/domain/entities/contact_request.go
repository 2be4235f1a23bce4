package entities

import "time"

// Contact request statuses.
const (
	RequestPending  = "Pending"
	RequestAccepted = "Accepted"
	RequestDeclined = "Declined"
)

// ContactRequest is a customer's enquiry sent to a vendor about a listing.
type ContactRequest struct {
	ID         string    `json:"id" db:"id"`
	ServiceID  string    `json:"serviceId" db:"service_id"`
	CustomerID string    `json:"customerId,omitempty" db:"customer_id"`
	Message    string    `json:"message" db:"message"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
