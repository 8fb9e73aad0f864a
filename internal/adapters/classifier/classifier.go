package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/clinicdesk/backend/internal/domain/providers"
	apperrors "github.com/clinicdesk/backend/pkg/errors"
)

const modelFileName = "model.json"

// modelFile is the on-disk artifact: class labels plus a per-token weight
// vector aligned with the label order.
type modelFile struct {
	Labels  []string             `json:"labels"`
	Weights map[string][]float64 `json:"weights"`
}

// LinearClassifier scores a text by summing the weight vectors of its tokens
// and picking the label with the highest total. Ties resolve to the label
// with the lowest index, so predictions are deterministic.
type LinearClassifier struct {
	labels  []string
	weights map[string][]float64
}

// New loads the model artifact from dir and validates that every weight
// vector matches the label count.
func New(dir string) (*LinearClassifier, error) {
	path := filepath.Join(dir, modelFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model artifact %s: %w", path, err)
	}

	var m modelFile
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing model artifact %s: %w", path, err)
	}
	if len(m.Labels) == 0 {
		return nil, fmt.Errorf("model artifact %s has no labels", path)
	}
	for token, vector := range m.Weights {
		if len(vector) != len(m.Labels) {
			return nil, fmt.Errorf("model artifact %s: token %q has %d weights, expected %d",
				path, token, len(vector), len(m.Labels))
		}
	}

	return &LinearClassifier{labels: m.Labels, weights: m.Weights}, nil
}

var (
	loadOnce   sync.Once
	loadedOnce *LinearClassifier
	loadErr    error
)

// Load returns a process-wide classifier instance. The artifact is read at
// most once; later calls reuse the first result.
func Load(dir string) (*LinearClassifier, error) {
	loadOnce.Do(func() {
		loadedOnce, loadErr = New(dir)
	})
	return loadedOnce, loadErr
}

// Predict implements providers.Classifier.
func (c *LinearClassifier) Predict(_ context.Context, text string) (string, error) {
	tokens := tokenize(strings.ToLower(text))
	if len(tokens) == 0 {
		return "", apperrors.NewValidationError("input text cannot be empty")
	}

	scores := make([]float64, len(c.labels))
	for _, token := range tokens {
		vector, ok := c.weights[token]
		if !ok {
			continue
		}
		for i, w := range vector {
			scores[i] += w
		}
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return c.labels[best], nil
}

func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

var _ providers.Classifier = (*LinearClassifier)(nil)
