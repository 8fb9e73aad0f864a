package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/clinicdesk/backend/internal/domain/entities"
	"github.com/clinicdesk/backend/internal/domain/repositories"
	"github.com/clinicdesk/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/clinicdesk/backend/pkg/errors"
)

const recommendationsTable = "recommendations"

// RecommendationAdapter implements the RecommendationRepository interface
type RecommendationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewRecommendationAdapter creates a new recommendation adapter
func NewRecommendationAdapter(client *postgres.Client) repositories.RecommendationRepository {
	return &RecommendationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByLabel retrieves the entry for a diagnosis label
func (a *RecommendationAdapter) GetByLabel(ctx context.Context, label string) (*entities.RecommendationEntry, error) {
	query, args, err := a.db.Select("id", "label", "text").
		From(recommendationsTable).
		Where(goqu.Ex{"label": label}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	entry := &entities.RecommendationEntry{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.Label, &entry.Text)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no recommendation for label %q", label))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get recommendation", err)
	}

	return entry, nil
}

// Exists reports whether an entry with the given label is stored
func (a *RecommendationAdapter) Exists(ctx context.Context, label string) (bool, error) {
	query, args, err := a.db.Select(goqu.COUNT(goqu.Star())).
		From(recommendationsTable).
		Where(goqu.Ex{"label": label}).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build exists query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, apperrors.NewInternalError("failed to check recommendation existence", err)
	}

	return count > 0, nil
}

// Create stores a new entry. Each insert is its own statement, so a failed
// entry never affects the ones before or after it.
func (a *RecommendationAdapter) Create(ctx context.Context, entry *entities.RecommendationEntry) error {
	query, args, err := a.db.Insert(recommendationsTable).
		Rows(goqu.Record{
			"label": entry.Label,
			"text":  entry.Text,
		}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create recommendation", err)
	}

	return nil
}
