package repositories

import (
	"context"

	"github.com/localserve/backend/internal/domain/entities"
)

// ReviewRepository defines the interface for review persistence.
type ReviewRepository interface {
	Create(ctx context.Context, review *entities.Review) error
	ListByService(ctx context.Context, serviceID string) ([]entities.Review, error)
	List(ctx context.Context) ([]entities.Review, error)
}
