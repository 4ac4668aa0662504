package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/felixgeelhaar/parley/internal/directory/domain"
	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
)

// HTTPDirectoryConfig configures the directory HTTP client.
type HTTPDirectoryConfig struct {
	// BaseURL is the directory service root, without a trailing slash.
	BaseURL string

	// RequestTimeout bounds a single lookup.
	RequestTimeout time.Duration

	// MaxRequests is the maximum number of requests allowed in half-open state.
	MaxRequests uint32

	// Interval is the cyclic period of the closed state.
	Interval time.Duration

	// Timeout is the period of the open state.
	Timeout time.Duration

	// FailureThreshold is the consecutive-failure count that trips the breaker.
	FailureThreshold uint32
}

// DefaultHTTPDirectoryConfig returns a sensible default configuration.
func DefaultHTTPDirectoryConfig(baseURL string) HTTPDirectoryConfig {
	return HTTPDirectoryConfig{
		BaseURL:          baseURL,
		RequestTimeout:   5 * time.Second,
		MaxRequests:      3,
		Interval:         10 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// HTTPDirectory resolves names against the firm directory service. Lookups
// go through a circuit breaker so a directory outage degrades views to raw
// ids instead of stalling every query.
type HTTPDirectory struct {
	client  *http.Client
	config  HTTPDirectoryConfig
	breaker *gobreaker.CircuitBreaker[string]
	logger  *slog.Logger
}

// NewHTTPDirectory creates a directory client against the given service.
func NewHTTPDirectory(config HTTPDirectoryConfig, logger *slog.Logger) *HTTPDirectory {
	if logger == nil {
		logger = slog.Default()
	}

	settings := gobreaker.Settings{
		Name:        "directory",
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			// A missing entry is an answer, not an outage.
			return err == nil || errors.Is(err, domain.ErrNameNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &HTTPDirectory{
		client:  &http.Client{Timeout: config.RequestTimeout},
		config:  config,
		breaker: gobreaker.NewCircuitBreaker[string](settings),
		logger:  logger,
	}
}

// PartyName resolves a requester or responder reference.
func (d *HTTPDirectory) PartyName(ctx context.Context, id uuid.UUID) (string, error) {
	return d.lookup(ctx, "parties", id)
}

// SubjectName resolves a case or matter reference.
func (d *HTTPDirectory) SubjectName(ctx context.Context, id uuid.UUID) (string, error) {
	return d.lookup(ctx, "subjects", id)
}

func (d *HTTPDirectory) lookup(ctx context.Context, resource string, id uuid.UUID) (string, error) {
	return d.breaker.Execute(func() (string, error) {
		url := fmt.Sprintf("%s/%s/%s", d.config.BaseURL, resource, id)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := d.client.Do(req)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
		case http.StatusNotFound:
			return "", domain.ErrNameNotFound
		default:
			return "", fmt.Errorf("directory lookup returned status %d", resp.StatusCode)
		}

		var body struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return "", fmt.Errorf("failed to decode directory response: %w", err)
		}
		if body.Name == "" {
			return "", domain.ErrNameNotFound
		}

		return body.Name, nil
	})
}
