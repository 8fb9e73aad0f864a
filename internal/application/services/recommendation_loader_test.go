package services_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/backend/internal/application/services"
	"github.com/clinicdesk/backend/internal/domain/entities"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recommendations.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRecommendationLoader_LoadFile(t *testing.T) {
	t.Run("parses quoted labels and escaped newlines", func(t *testing.T) {
		repo := new(mockRecommendationRepository)
		loader := services.NewRecommendationLoader(repo)
		path := writeSeed(t, `"грипп"$постельный режим\nобильное питьё`+"\n")

		repo.On("Exists", mock.Anything, "грипп").Return(false, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(e *entities.RecommendationEntry) bool {
			return e.Label == "грипп" && e.Text == "постельный режим\nобильное питьё"
		})).Return(nil)

		require.NoError(t, loader.LoadFile(context.Background(), path))
		repo.AssertExpectations(t)
	})

	t.Run("skips labels already stored", func(t *testing.T) {
		repo := new(mockRecommendationRepository)
		loader := services.NewRecommendationLoader(repo)
		path := writeSeed(t, `"грипп"$текст`+"\n")

		repo.On("Exists", mock.Anything, "грипп").Return(true, nil)

		require.NoError(t, loader.LoadFile(context.Background(), path))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("skips blank and malformed lines", func(t *testing.T) {
		repo := new(mockRecommendationRepository)
		loader := services.NewRecommendationLoader(repo)
		path := writeSeed(t, "\nстрока без разделителя\n\n\"ангина\"$полоскание\n")

		repo.On("Exists", mock.Anything, "ангина").Return(false, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		require.NoError(t, loader.LoadFile(context.Background(), path))
		repo.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("storage failure on one entry does not stop the rest", func(t *testing.T) {
		repo := new(mockRecommendationRepository)
		loader := services.NewRecommendationLoader(repo)
		path := writeSeed(t, "\"первый\"$а\n\"второй\"$б\n")

		repo.On("Exists", mock.Anything, mock.Anything).Return(false, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(e *entities.RecommendationEntry) bool {
			return e.Label == "первый"
		})).Return(errors.New("insert failed"))
		repo.On("Create", mock.Anything, mock.MatchedBy(func(e *entities.RecommendationEntry) bool {
			return e.Label == "второй"
		})).Return(nil)

		require.NoError(t, loader.LoadFile(context.Background(), path))
		repo.AssertNumberOfCalls(t, "Create", 2)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		loader := services.NewRecommendationLoader(new(mockRecommendationRepository))

		err := loader.LoadFile(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))

		assert.Error(t, err)
	})

	t.Run("separator inside the text is preserved", func(t *testing.T) {
		repo := new(mockRecommendationRepository)
		loader := services.NewRecommendationLoader(repo)
		path := writeSeed(t, `"метка"$цена 100$ за курс`+"\n")

		repo.On("Exists", mock.Anything, "метка").Return(false, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(e *entities.RecommendationEntry) bool {
			return e.Text == "цена 100$ за курс"
		})).Return(nil)

		require.NoError(t, loader.LoadFile(context.Background(), path))
		repo.AssertExpectations(t)
	})
}
