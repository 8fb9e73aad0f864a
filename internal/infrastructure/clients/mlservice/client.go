// Package mlservice is the HTTP client for the diagnosis inference backend.
// It turns patient attributes into the prompt the model expects and maps
// transport and status failures onto distinct domain errors.
package mlservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/clinicdesk/backend/internal/domain/entities"
	"github.com/clinicdesk/backend/internal/domain/providers"
	"github.com/clinicdesk/backend/pkg/config"
	apperrors "github.com/clinicdesk/backend/pkg/errors"
)

const (
	predictPath    = "/api/v1/model/predict"
	defaultTimeout = 40 * time.Second
)

var genderWords = map[entities.Gender]string{
	entities.GenderMale:   "Мужчина",
	entities.GenderFemale: "Женщина",
}

// Client talks to the inference backend over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new inference backend client
func NewClient(cfg *config.MLServiceConfig) providers.DiagnosisProvider {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BuildPrompt renders the deterministic model prompt for patient attributes:
// "{Мужчина|Женщина}, {age} лет, {complaints}".
func BuildPrompt(gender entities.Gender, age int, complaints string) string {
	return fmt.Sprintf("%s, %d лет, %s", genderWords[gender], age, complaints)
}

// RequestDiagnosis sends the rendered prompt to the predict endpoint and
// decodes the diagnosis/recommendations pair. Non-2xx responses surface as
// upstream rejections carrying the status and body; transport failures as
// unavailable errors.
func (c *Client) RequestDiagnosis(ctx context.Context, gender entities.Gender, age int, complaints string) (*entities.InferenceResult, error) {
	endpoint, err := url.Parse(c.baseURL + predictPath)
	if err != nil {
		return nil, apperrors.NewInternalError("invalid ml service url", err)
	}

	query := endpoint.Query()
	query.Set("text", BuildPrompt(gender, age, complaints))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), nil)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build ml service request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUnavailableError("cannot connect to ml service", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
		return nil, apperrors.NewExternalError(
			fmt.Sprintf("ml service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
			nil,
		)
	}

	var result entities.InferenceResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, apperrors.NewExternalError("malformed ml service response", err)
	}
	if result.Diagnosis == "" {
		return nil, apperrors.NewExternalError("ml service response missing diagnosis", nil)
	}

	return &result, nil
}
