package services

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/backend/internal/domain/entities"
	"github.com/clinicdesk/backend/internal/domain/repositories"
)

// RecommendationLoader seeds the recommendation store from a text file. Each
// non-blank line holds a quoted label and the recommendation text separated
// by the first "$"; literal "\n" sequences in the text become newlines.
type RecommendationLoader struct {
	repo repositories.RecommendationRepository
}

// NewRecommendationLoader creates a new recommendation loader
func NewRecommendationLoader(repo repositories.RecommendationRepository) *RecommendationLoader {
	return &RecommendationLoader{repo: repo}
}

// LoadFile reads the seed file and stores every entry whose label is not
// already present. Malformed lines and individual storage failures are
// logged and skipped so one bad entry does not abort the seeding.
func (l *RecommendationLoader) LoadFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening recommendation seed %s: %w", path, err)
	}
	defer file.Close()

	loaded := 0
	skipped := 0
	lineNo := 0

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		entry, err := parseSeedLine(line)
		if err != nil {
			log.Warn().Int("line", lineNo).Err(err).Msg("skipping malformed seed line")
			continue
		}

		exists, err := l.repo.Exists(ctx, entry.Label)
		if err != nil {
			log.Warn().Int("line", lineNo).Str("label", entry.Label).Err(err).
				Msg("cannot check recommendation, skipping")
			continue
		}
		if exists {
			skipped++
			continue
		}

		if err := l.repo.Create(ctx, entry); err != nil {
			log.Warn().Int("line", lineNo).Str("label", entry.Label).Err(err).
				Msg("cannot store recommendation, skipping")
			continue
		}
		loaded++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading recommendation seed %s: %w", path, err)
	}

	log.Info().
		Int("loaded", loaded).
		Int("already_present", skipped).
		Str("path", path).
		Msg("recommendation seed processed")
	return nil
}

func parseSeedLine(line string) (*entities.RecommendationEntry, error) {
	label, text, found := strings.Cut(line, "$")
	if !found {
		return nil, fmt.Errorf("no label separator in %q", line)
	}

	label = strings.Trim(strings.TrimSpace(label), `"`)
	if label == "" {
		return nil, fmt.Errorf("empty label in %q", line)
	}

	text = strings.TrimSpace(strings.ReplaceAll(text, `\n`, "\n"))

	return &entities.RecommendationEntry{Label: label, Text: text}, nil
}
