package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/localserve/backend/internal/domain/entities"
	"github.com/localserve/backend/internal/domain/repositories"
	"github.com/localserve/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/localserve/backend/pkg/errors"
)

var serviceColumns = []interface{}{
	"id", "name", "category", "rating", "status", "location", "vendor_id", "verified", "created_at",
}

// ServiceAdapter implements service listing persistence in Postgres.
type ServiceAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewServiceAdapter creates a new service listing adapter.
func NewServiceAdapter(client *postgres.Client) repositories.ServiceRepository {
	return &ServiceAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a service listing.
func (a *ServiceAdapter) Create(ctx context.Context, service *entities.ServiceListing) error {
	if service == nil {
		return apperrors.NewInternalError("service is nil", fmt.Errorf("service is nil"))
	}

	record := goqu.Record{
		"id":         service.ID,
		"name":       service.Name,
		"category":   sql.NullString{String: service.Category, Valid: service.Category != ""},
		"rating":     service.Rating,
		"status":     service.Status,
		"location":   sql.NullString{String: service.Location, Valid: service.Location != ""},
		"vendor_id":  sql.NullString{String: service.VendorID, Valid: service.VendorID != ""},
		"verified":   service.Verified,
		"created_at": service.CreatedAt,
	}

	query, args, err := a.db.Insert("services").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build service insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewExternalError("failed to create service", err)
	}
	return nil
}

// GetByID retrieves a service listing by ID.
func (a *ServiceAdapter) GetByID(ctx context.Context, id string) (*entities.ServiceListing, error) {
	query, args, err := a.db.Select(serviceColumns...).From("services").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	service, err := scanService(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("service with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewExternalError("failed to get service", err)
	}
	return service, nil
}

// List returns every service listing in creation order.
func (a *ServiceAdapter) List(ctx context.Context) ([]entities.ServiceListing, error) {
	query, args, err := a.db.Select(serviceColumns...).From("services").
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build service list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to list services", err)
	}
	defer rows.Close()

	services := []entities.ServiceListing{}
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan service", err)
		}
		services = append(services, *service)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewExternalError("failed to iterate services", err)
	}
	return services, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*entities.ServiceListing, error) {
	var (
		service                    entities.ServiceListing
		category, status, location sql.NullString
		vendorID                   sql.NullString
		rating                     sql.NullFloat64
	)
	err := row.Scan(
		&service.ID,
		&service.Name,
		&category,
		&rating,
		&status,
		&location,
		&vendorID,
		&service.Verified,
		&service.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	service.Category = category.String
	service.Rating = rating.Float64
	service.Status = status.String
	service.Location = location.String
	service.VendorID = vendorID.String
	return &service, nil
}
