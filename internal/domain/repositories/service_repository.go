package repositories

import (
	"context"

	"github.com/localserve/backend/internal/domain/entities"
)

// ServiceRepository defines the interface for service listing persistence.
type ServiceRepository interface {
	Create(ctx context.Context, service *entities.ServiceListing) error
	GetByID(ctx context.Context, id string) (*entities.ServiceListing, error)
	List(ctx context.Context) ([]entities.ServiceListing, error)
}
