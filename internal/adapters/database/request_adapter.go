package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/localserve/backend/internal/domain/entities"
	"github.com/localserve/backend/internal/domain/repositories"
	"github.com/localserve/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/localserve/backend/pkg/errors"
)

// RequestAdapter implements contact request persistence in Postgres.
type RequestAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewRequestAdapter creates a new contact request adapter.
func NewRequestAdapter(client *postgres.Client) repositories.RequestRepository {
	return &RequestAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a contact request.
func (a *RequestAdapter) Create(ctx context.Context, request *entities.ContactRequest) error {
	if request == nil {
		return apperrors.NewInternalError("request is nil", fmt.Errorf("request is nil"))
	}

	record := goqu.Record{
		"id":          request.ID,
		"service_id":  request.ServiceID,
		"customer_id": sql.NullString{String: request.CustomerID, Valid: request.CustomerID != ""},
		"message":     request.Message,
		"status":      request.Status,
		"created_at":  request.CreatedAt,
	}

	query, args, err := a.db.Insert("contact_requests").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build request insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewExternalError("failed to create contact request", err)
	}
	return nil
}

// List returns every contact request, oldest first.
func (a *RequestAdapter) List(ctx context.Context) ([]entities.ContactRequest, error) {
	query, args, err := a.db.Select("id", "service_id", "customer_id", "message", "status", "created_at").
		From("contact_requests").
		Order(goqu.I("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build request list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to list contact requests", err)
	}
	defer rows.Close()

	requests := []entities.ContactRequest{}
	for rows.Next() {
		var (
			req        entities.ContactRequest
			customerID sql.NullString
			message    sql.NullString
		)
		if err := rows.Scan(&req.ID, &req.ServiceID, &customerID, &message, &req.Status, &req.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan contact request", err)
		}
		req.CustomerID = customerID.String
		req.Message = message.String
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewExternalError("failed to iterate contact requests", err)
	}
	return requests, nil
}
