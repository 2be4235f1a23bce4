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

var reviewColumns = []interface{}{"id", "service_id", "rating", "text", "customer_id", "created_at"}

// ReviewAdapter implements review persistence in Postgres.
type ReviewAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReviewAdapter creates a new review adapter.
func NewReviewAdapter(client *postgres.Client) repositories.ReviewRepository {
	return &ReviewAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a review record.
func (a *ReviewAdapter) Create(ctx context.Context, review *entities.Review) error {
	if review == nil {
		return apperrors.NewInternalError("review is nil", fmt.Errorf("review is nil"))
	}

	record := goqu.Record{
		"id":          review.ID,
		"service_id":  review.ServiceID,
		"rating":      review.Rating,
		"text":        review.Text,
		"customer_id": sql.NullString{String: review.CustomerID, Valid: review.CustomerID != ""},
		"created_at":  review.CreatedAt,
	}

	query, args, err := a.db.Insert("reviews").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build review insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewExternalError("failed to create review", err)
	}
	return nil
}

// ListByService returns the reviews of one service, oldest first.
func (a *ReviewAdapter) ListByService(ctx context.Context, serviceID string) ([]entities.Review, error) {
	return a.list(ctx, a.db.Select(reviewColumns...).From("reviews").
		Where(goqu.Ex{"service_id": serviceID}).
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()))
}

// List returns every review, oldest first.
func (a *ReviewAdapter) List(ctx context.Context) ([]entities.Review, error) {
	return a.list(ctx, a.db.Select(reviewColumns...).From("reviews").
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()))
}

func (a *ReviewAdapter) list(ctx context.Context, ds *goqu.SelectDataset) ([]entities.Review, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build review list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to list reviews", err)
	}
	defer rows.Close()

	reviews := []entities.Review{}
	for rows.Next() {
		var (
			review     entities.Review
			rating     sql.NullFloat64
			text       sql.NullString
			customerID sql.NullString
		)
		if err := rows.Scan(&review.ID, &review.ServiceID, &rating, &text, &customerID, &review.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		review.Rating = rating.Float64
		review.Text = text.String
		review.CustomerID = customerID.String
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewExternalError("failed to iterate reviews", err)
	}

	return reviews, nil
}
