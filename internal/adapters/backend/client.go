// internal/adapters/backend/client.go
package backend

import (
	"context"
	crand "crypto/rand"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"listing_portal/internal/adapters/observability"
	"listing_portal/internal/domain"
)

const maxBody = 4 << 20 // 4MB guard

type Options struct {
	RPS     int
	Retries int // 0 disables retries
	Timeout time.Duration
}

type Client struct {
	base  string
	hc    *retryablehttp.Client
	creds domain.CredentialProvider
	rl    *rate.Limiter
}

var _ domain.PropertyClient = (*Client)(nil)

func New(base string, creds domain.CredentialProvider, opt Options) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}
	if creds == nil {
		return nil, fmt.Errorf("credential provider is required")
	}
	if opt.RPS <= 0 {
		opt.RPS = 5
	}
	if opt.Timeout <= 0 {
		opt.Timeout = 20 * time.Second
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = opt.Retries
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.Backoff = retryBackoff
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = leveled{l: log.Logger.With().Str("component", "backend").Logger()}
	rc.HTTPClient.Timeout = opt.Timeout

	return &Client{
		base:  strings.TrimRight(base, "/"),
		hc:    rc,
		creds: creds,
		rl:    rate.NewLimiter(rate.Limit(opt.RPS), opt.RPS),
	}, nil
}

// ---- Public API ----

func (c *Client) ListProperties(ctx context.Context) ([]domain.PropertyRecord, error) {
	body, err := c.get(ctx, "list", c.base+"/property")
	if err != nil {
		return nil, err
	}
	return decodeList(body)
}

func (c *Client) GetProperty(ctx context.Context, id domain.PropertyID) (domain.PropertyRecord, error) {
	if id == "" {
		return domain.PropertyRecord{}, domain.ErrEmptyID
	}
	u, err := url.JoinPath(c.base, "property", string(id))
	if err != nil {
		return domain.PropertyRecord{}, err
	}
	body, err := c.get(ctx, "detail", u)
	if err != nil {
		return domain.PropertyRecord{}, err
	}
	return decodeDetail(body)
}

// ---- Internals ----

// get performs an authenticated GET with client-side rate limiting and returns
// the (size-guarded) body of a 2xx answer. Non-2xx answers become *domain.HTTPError;
// transport faults wrap domain.ErrNetwork. Context cancellation is returned as is.
func (c *Client) get(ctx context.Context, endpoint, u string) ([]byte, error) {
	if err := c.rl.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	token, err := c.creds.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("credential: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "listing-portal/1.0")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("backend", endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("backend", endpoint, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNoContent:
		io.Copy(io.Discard, resp.Body)
		return []byte("{}"), nil

	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: read body: %v", domain.ErrNetwork, err)
		}
		if int64(len(b)) > maxBody {
			return nil, fmt.Errorf("%w: payload too large", domain.ErrParse)
		}
		if len(strings.TrimSpace(string(b))) == 0 {
			return []byte("{}"), nil
		}
		return b, nil

	default:
		// read a small error body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &domain.HTTPError{Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
}

// retryBackoff prefers a server-provided Retry-After; otherwise exponential
// backoff with jitter, capped at max. Only consulted when Retries > 0.
func retryBackoff(min, max time.Duration, attempt int, resp *http.Response) time.Duration {
	if resp != nil {
		if wait := retryAfter(resp); wait > 0 {
			if wait > max {
				return max
			}
			return wait
		}
	}
	d := backoff(attempt, min)
	if d > max {
		return max
	}
	return d
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	// seconds form
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	// HTTP-date form
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles base each attempt with up to +50% jitter.
func backoff(i int, base time.Duration) time.Duration {
	d := time.Duration(1<<i) * base
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return d
	}
	f := float64(b[0]) / 255.0
	return d + time.Duration(0.5*f*float64(d))
}

// leveled adapts zerolog to retryablehttp.LeveledLogger.
type leveled struct{ l zerolog.Logger }

func (z leveled) Error(msg string, kv ...interface{}) { z.l.Error().Fields(kv).Msg(msg) }
func (z leveled) Info(msg string, kv ...interface{})  { z.l.Debug().Fields(kv).Msg(msg) }
func (z leveled) Debug(msg string, kv ...interface{}) { z.l.Debug().Fields(kv).Msg(msg) }
func (z leveled) Warn(msg string, kv ...interface{})  { z.l.Warn().Fields(kv).Msg(msg) }

