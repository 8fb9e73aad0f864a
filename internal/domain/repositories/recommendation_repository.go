package repositories

import (
	"context"

	"github.com/clinicdesk/backend/internal/domain/entities"
)

// RecommendationRepository defines the interface for recommendation lookups
type RecommendationRepository interface {
	// GetByLabel retrieves the entry for a diagnosis label; a not-found
	// error signals the label has no stored recommendation
	GetByLabel(ctx context.Context, label string) (*entities.RecommendationEntry, error)

	// Exists reports whether an entry with the given label is stored
	Exists(ctx context.Context, label string) (bool, error)

	// Create stores a new entry
	Create(ctx context.Context, entry *entities.RecommendationEntry) error
}
