package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BaseClient wraps an HTTP client with a bounded timeout and a circuit
// breaker. Failures are surfaced directly to the caller; this layer does
// not retry.
type BaseClient struct {
	name           string
	httpClient     *http.Client
	logger         *zap.Logger
	circuitBreaker *gobreaker.CircuitBreaker
}

type ClientConfig struct {
	Timeout        time.Duration
	BreakerTimeout time.Duration
}

func NewBaseClient(name string, config ClientConfig, logger *zap.Logger) *BaseClient {
	httpClient := &http.Client{
		Timeout: config.Timeout,
	}

	breakerSettings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    0,
		Timeout:     config.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state changed",
				zap.String("client", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &BaseClient{
		name:           name,
		httpClient:     httpClient,
		logger:         logger,
		circuitBreaker: gobreaker.NewCircuitBreaker(breakerSettings),
	}
}

// Get issues a GET request through the circuit breaker and returns the
// response body.
func (c *BaseClient) Get(ctx context.Context, url string) ([]byte, error) {
	return c.execute(ctx, http.MethodGet, url, nil)
}

// Post issues a JSON POST request through the circuit breaker and returns
// the response body.
func (c *BaseClient) Post(ctx context.Context, url string, body []byte) ([]byte, error) {
	return c.execute(ctx, http.MethodPost, url, body)
}

func (c *BaseClient) execute(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	var response []byte
	var err error

	_, execErr := c.circuitBreaker.Execute(func() (interface{}, error) {
		response, err = c.do(ctx, method, url, body)
		return response, err
	})

	if execErr != nil {
		if errors.Is(execErr, gobreaker.ErrOpenState) || errors.Is(execErr, gobreaker.ErrTooManyRequests) {
			return nil, &UpstreamError{
				Kind:     ErrKindUnknown,
				Provider: c.name,
				Message:  "Service temporarily unavailable. Please try again later.",
				Err:      execErr,
			}
		}
		return nil, execErr
	}

	return response, err
}

func (c *BaseClient) do(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request failed: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.logger.Warn("HTTP request timed out",
				zap.String("client", c.name),
				zap.String("url", url))
			return nil, timeoutError(c.name, err)
		}
		c.logger.Warn("HTTP request failed",
			zap.String("client", c.name),
			zap.String("url", url),
			zap.Error(err))
		return nil, &UpstreamError{
			Kind:     ErrKindUnknown,
			Provider: c.name,
			Message:  "Unable to reach the service. Please try again later.",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("HTTP request returned error status",
			zap.String("client", c.name),
			zap.String("url", url),
			zap.Int("status", resp.StatusCode))
		return nil, statusError(c.name, resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response failed: %w", err)
	}

	c.logger.Debug("Request successful",
		zap.String("client", c.name),
		zap.Int("status", resp.StatusCode),
		zap.Int("body_size", len(respBody)))

	return respBody, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
