package repositories

import (
	"context"

	"github.com/localserve/backend/internal/domain/entities"
)

// RequestRepository defines the interface for contact request persistence.
type RequestRepository interface {
	Create(ctx context.Context, request *entities.ContactRequest) error
	List(ctx context.Context) ([]entities.ContactRequest, error)
}
