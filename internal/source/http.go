package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// BackoffConfig controls exponential backoff behaviour.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

var (
	errRateLimited   = errors.New("rate limited")
	errServerError   = errors.New("server error")
	errUnexpected    = errors.New("unexpected status code")
	errCircuitOpen   = errors.New("circuit breaker open")
	errNoHTTPClient  = errors.New("http client not configured")
	errInvalidConfig = errors.New("invalid backoff configuration")
)

// HTTPOpener downloads datasets over HTTP(S) with retries and a circuit breaker.
type HTTPOpener struct {
	client  *http.Client
	backoff BackoffConfig
	circuit *gobreaker.CircuitBreaker
}

// NewHTTPOpener creates an HTTPOpener using client for every attempt.
func NewHTTPOpener(client *http.Client, backoff BackoffConfig) *HTTPOpener {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "dataset-source",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &HTTPOpener{
		client:  client,
		backoff: backoff,
		circuit: cb,
	}
}

// DefaultBackoff is used for dataset downloads at startup.
var DefaultBackoff = BackoffConfig{
	MaxRetries:      3,
	InitialInterval: 500 * time.Millisecond,
	MaxInterval:     5 * time.Second,
}

// Open implements Opener. The caller must close the returned body.
func (o *HTTPOpener) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	buildRequest := func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, ref, nil)
	}

	resp, err := o.doRequestWithResilience(ctx, buildRequest)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// doRequestWithResilience executes the HTTP request with retries, exponential backoff,
// and a circuit breaker.
func (o *HTTPOpener) doRequestWithResilience(
	ctx context.Context,
	buildRequest func() (*http.Request, error),
) (*http.Response, error) {
	if o.client == nil {
		return nil, errNoHTTPClient
	}
	if o.backoff.MaxRetries < 0 || o.backoff.InitialInterval <= 0 {
		return nil, errInvalidConfig
	}

	var attempt int

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := buildRequest()
		if err != nil {
			return nil, err
		}
		req = req.WithContext(ctx)

		result, err := o.circuit.Execute(func() (interface{}, error) {
			resp, execErr := o.client.Do(req)
			if execErr != nil {
				return nil, execErr
			}

			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				resp.Body.Close()
			}
			if resp.StatusCode == http.StatusTooManyRequests {
				return nil, errRateLimited
			}
			if resp.StatusCode >= 500 {
				return nil, errServerError
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
			}

			return resp, nil
		})

		if err == nil {
			resp, ok := result.(*http.Response)
			if !ok {
				return nil, fmt.Errorf("unexpected result type from circuit breaker")
			}
			return resp, nil
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		// Client errors other than 429 will not change on retry.
		if errors.Is(err, errUnexpected) || attempt >= o.backoff.MaxRetries {
			return nil, err
		}

		delay := o.backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if delay > o.backoff.MaxInterval && o.backoff.MaxInterval > 0 {
			delay = o.backoff.MaxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		attempt++
	}
}
