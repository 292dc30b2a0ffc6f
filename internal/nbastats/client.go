package nbastats

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hirememorey/nba-lineup-optimizer-sub000/internal/logger"
)

// ClientConfig holds the rate-limit and retry knobs for the stats client.
type ClientConfig struct {
	BaseURL string

	// MinRequestInterval is the minimum spacing between any two requests
	// issued through this client, shared across all workers.
	MinRequestInterval time.Duration
	// RequestJitter is the upper bound of the uniform jitter added on top
	// of the minimum spacing before every request.
	RequestJitter time.Duration

	Timeout    time.Duration
	MaxRetries int

	// Backoff between retries grows as base * factor^attempt, clamped to
	// BackoffCap, plus uniform(JitterMin, JitterMax).
	BackoffBase   time.Duration
	BackoffFactor float64
	BackoffCap    time.Duration
	JitterMin     time.Duration
	JitterMax     time.Duration

	Identities []Identity
}

// Client issues rate-limited, retrying requests against the stats API.
// One Client instance is shared by every fetch worker; the spacing state
// is guarded so concurrent callers serialize only the slot reservation,
// not the request itself.
type Client struct {
	http *resty.Client
	cfg  ClientConfig
	log  *logger.Logger

	mu       sync.Mutex
	nextSlot time.Time
}

// NewClient creates a stats API client. Retries are driven by resty's
// retry machinery with the backoff policy from cfg; request spacing and
// identity rotation run as request middleware so they apply to every
// attempt, retries included.
func NewClient(cfg ClientConfig, log *logger.Logger) *Client {
	c := &Client{cfg: cfg, log: log}

	r := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.MaxRetries).
		SetRetryMaxWaitTime(cfg.BackoffCap + cfg.JitterMax)

	r.AddRetryCondition(func(resp *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		code := resp.StatusCode()
		return code == http.StatusTooManyRequests || code >= 500
	})

	r.SetRetryAfter(func(_ *resty.Client, resp *resty.Response) (time.Duration, error) {
		attempt := 1
		endpoint := ""
		status := 0
		if resp != nil && resp.Request != nil {
			attempt = resp.Request.Attempt
			endpoint = resp.Request.URL
			status = resp.StatusCode()
		}
		if status == http.StatusTooManyRequests {
			if hint, ok := retryAfterHint(resp); ok {
				c.log.WithFields(logger.Fields{
					logger.FieldEndpoint: endpoint,
					logger.FieldAttempt:  attempt,
					logger.FieldSleepMS:  hint.Milliseconds(),
				}).Warn("Rate limited, honoring Retry-After hint")
				return hint, nil
			}
		}
		sleep := c.backoff(attempt)
		c.log.WithFields(logger.Fields{
			logger.FieldEndpoint: endpoint,
			logger.FieldAttempt:  attempt,
			logger.FieldStatus:   status,
			logger.FieldSleepMS:  sleep.Milliseconds(),
		}).Warn("Transient failure, backing off before retry")
		return sleep, nil
	})

	r.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		req.SetHeaders(pickIdentity(cfg.Identities).headers())
		return c.waitTurn(req.Context())
	})

	c.http = r
	return c
}

// Get fetches one endpoint with the given query parameters and decodes
// the stats payload. 429 and 5xx responses and connection errors are
// retried internally; the returned error is terminal for the caller.
func (c *Client) Get(ctx context.Context, endpoint string, params map[string]string) (*Response, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/" + endpoint)
	if err != nil {
		attempts := 1
		if resp != nil && resp.Request != nil {
			attempts = resp.Request.Attempt
		}
		return nil, &TransientError{Endpoint: endpoint, Attempts: attempts, Err: err}
	}

	code := resp.StatusCode()
	switch {
	case resp.IsSuccess():
		var out Response
		if err := json.Unmarshal(resp.Body(), &out); err != nil {
			return nil, fmt.Errorf("decode %s response: %w", endpoint, err)
		}
		return &out, nil
	case code == http.StatusTooManyRequests || code >= 500:
		return nil, &TransientError{Endpoint: endpoint, StatusCode: code, Attempts: resp.Request.Attempt}
	default:
		return nil, &PermanentError{Endpoint: endpoint, StatusCode: code}
	}
}

// waitTurn reserves the next request slot and sleeps until it arrives.
// The reservation happens under the lock so concurrent workers space out
// rather than pile onto the same slot; the sleep itself is unlocked.
func (c *Client) waitTurn(ctx context.Context) error {
	jitter := time.Duration(0)
	if c.cfg.RequestJitter > 0 {
		jitter = time.Duration(rand.Int63n(int64(c.cfg.RequestJitter)))
	}

	c.mu.Lock()
	now := time.Now()
	slot := c.nextSlot
	if slot.Before(now) {
		slot = now
	}
	slot = slot.Add(jitter)
	c.nextSlot = slot.Add(c.cfg.MinRequestInterval)
	c.mu.Unlock()

	wait := time.Until(slot)
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// backoff computes the sleep before the attempt-th retry (1-based):
// base * factor^(attempt-1), clamped to the cap, plus uniform jitter.
func (c *Client) backoff(attempt int) time.Duration {
	return backoffDelay(c.cfg, attempt) + backoffJitter(c.cfg)
}

func backoffDelay(cfg ClientConfig, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := time.Duration(float64(cfg.BackoffBase) * math.Pow(cfg.BackoffFactor, float64(attempt-1)))
	if cfg.BackoffCap > 0 && (d > cfg.BackoffCap || d < 0) {
		d = cfg.BackoffCap
	}
	return d
}

func backoffJitter(cfg ClientConfig) time.Duration {
	if cfg.JitterMax <= cfg.JitterMin {
		return cfg.JitterMin
	}
	return cfg.JitterMin + time.Duration(rand.Int63n(int64(cfg.JitterMax-cfg.JitterMin)))
}

// retryAfterHint parses the Retry-After header of a 429 response, either
// a delay in seconds or an HTTP date.
func retryAfterHint(resp *resty.Response) (time.Duration, bool) {
	if resp == nil {
		return 0, false
	}
	raw := resp.Header().Get("Retry-After")
	if raw == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second, true
	}
	if at, err := http.ParseTime(raw); err == nil {
		if d := time.Until(at); d > 0 {
			return d, true
		}
	}
	return 0, false
}
