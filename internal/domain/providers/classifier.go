package providers

import (
	"context"
)

// Classifier is the opaque text-to-label inference function. Implementations
// are read-only after construction and safe for concurrent use.
type Classifier interface {
	Predict(ctx context.Context, text string) (string, error)
}
