package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/backend/internal/application/services"
	"github.com/clinicdesk/backend/internal/domain/entities"
	apperrors "github.com/clinicdesk/backend/pkg/errors"
)

type mockClassifier struct {
	mock.Mock
}

func (m *mockClassifier) Predict(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

type mockRecommendationRepository struct {
	mock.Mock
}

func (m *mockRecommendationRepository) GetByLabel(ctx context.Context, label string) (*entities.RecommendationEntry, error) {
	args := m.Called(ctx, label)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RecommendationEntry), args.Error(1)
}

func (m *mockRecommendationRepository) Exists(ctx context.Context, label string) (bool, error) {
	args := m.Called(ctx, label)
	return args.Bool(0), args.Error(1)
}

func (m *mockRecommendationRepository) Create(ctx context.Context, entry *entities.RecommendationEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func TestInferenceService_Diagnose(t *testing.T) {
	t.Run("returns diagnosis with its recommendation", func(t *testing.T) {
		clf := new(mockClassifier)
		recs := new(mockRecommendationRepository)
		svc := services.NewInferenceService(clf, recs)

		clf.On("Predict", mock.Anything, "кашель и температура").Return("грипп", nil)
		recs.On("GetByLabel", mock.Anything, "грипп").Return(&entities.RecommendationEntry{
			Label: "грипп",
			Text:  "  постельный режим\nобильное питьё  ",
		}, nil)

		result, err := svc.Diagnose(context.Background(), "кашель и температура")

		require.NoError(t, err)
		assert.Equal(t, "грипп", result.Diagnosis)
		assert.Equal(t, "постельный режим\nобильное питьё", result.Recommendations)
	})

	t.Run("missing recommendation degrades to empty text", func(t *testing.T) {
		clf := new(mockClassifier)
		recs := new(mockRecommendationRepository)
		svc := services.NewInferenceService(clf, recs)

		clf.On("Predict", mock.Anything, mock.Anything).Return("редкий диагноз", nil)
		recs.On("GetByLabel", mock.Anything, "редкий диагноз").
			Return(nil, apperrors.NewNotFoundError("no recommendation"))

		result, err := svc.Diagnose(context.Background(), "симптомы")

		require.NoError(t, err)
		assert.Equal(t, "редкий диагноз", result.Diagnosis)
		assert.Empty(t, result.Recommendations)
	})

	t.Run("rejects blank input", func(t *testing.T) {
		svc := services.NewInferenceService(new(mockClassifier), new(mockRecommendationRepository))

		_, err := svc.Diagnose(context.Background(), "   ")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("classifier failure is internal", func(t *testing.T) {
		clf := new(mockClassifier)
		svc := services.NewInferenceService(clf, new(mockRecommendationRepository))

		clf.On("Predict", mock.Anything, mock.Anything).Return("", errors.New("model exploded"))

		_, err := svc.Diagnose(context.Background(), "симптомы")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
	})

	t.Run("lookup failure is internal", func(t *testing.T) {
		clf := new(mockClassifier)
		recs := new(mockRecommendationRepository)
		svc := services.NewInferenceService(clf, recs)

		clf.On("Predict", mock.Anything, mock.Anything).Return("грипп", nil)
		recs.On("GetByLabel", mock.Anything, "грипп").Return(nil, errors.New("connection refused"))

		_, err := svc.Diagnose(context.Background(), "симптомы")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
	})
}
