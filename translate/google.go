package translate

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"
)

// DefaultEndpoint is the public Google "gtx" translation endpoint.
const DefaultEndpoint = "https://translate.googleapis.com/translate_a/single"

// userAgents are rotated per request.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/121.0",
}

// StatusError is returned when the endpoint answers with a status that is
// not worth retrying, or keeps answering 429 until attempts run out.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("endpoint returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("endpoint returned status %d: %s", e.StatusCode, e.Body)
}

// ---------------------------------------------------------------------------
// Google client options
// ---------------------------------------------------------------------------

// GoogleOptions configures a GoogleClient. Zero values select the defaults.
type GoogleOptions struct {
	// Endpoint overrides DefaultEndpoint.
	Endpoint string
	// MaxAttempts bounds the requests made for one string (default 5).
	MaxAttempts int
	// BaseDelay is the first backoff wait; it doubles after every 429
	// (default 2s).
	BaseDelay time.Duration
	// Timeout is the per-request timeout (default 60s).
	Timeout time.Duration
	// Proxy is an explicit proxy URL; HTTP_PROXY/HTTPS_PROXY apply otherwise.
	Proxy string
	// OnLog emits debug messages (requests, retries).
	OnLog func(format string, args ...any)
}

func (o *GoogleOptions) log(format string, args ...any) {
	if o.OnLog != nil {
		o.OnLog(format, args...)
	}
}

func (o *GoogleOptions) effectiveEndpoint() string {
	if o.Endpoint != "" {
		return o.Endpoint
	}
	return DefaultEndpoint
}

func (o *GoogleOptions) effectiveMaxAttempts() int {
	if o.MaxAttempts > 0 {
		return o.MaxAttempts
	}
	return 5
}

func (o *GoogleOptions) effectiveBaseDelay() time.Duration {
	if o.BaseDelay > 0 {
		return o.BaseDelay
	}
	return 2 * time.Second
}

func (o *GoogleOptions) effectiveTimeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return 60 * time.Second
}

// ---------------------------------------------------------------------------
// HTTP client with real proxy support
// ---------------------------------------------------------------------------

func makeHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if proxyURL != "" {
		parsed, err := url.Parse(proxyURL)
		if err == nil {
			transport.Proxy = http.ProxyURL(parsed)
		}
	} else {
		transport.Proxy = http.ProxyFromEnvironment
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// ---------------------------------------------------------------------------
// Google client
// ---------------------------------------------------------------------------

// GoogleClient is an Engine backed by the gtx endpoint.
type GoogleClient struct {
	opts   GoogleOptions
	client *http.Client
}

// NewGoogleClient returns a client configured by opts.
func NewGoogleClient(opts GoogleOptions) *GoogleClient {
	return &GoogleClient{
		opts:   opts,
		client: makeHTTPClient(opts.Proxy, opts.effectiveTimeout()),
	}
}

// Translate sends text to the endpoint.
//
// A 429 answer waits BaseDelay, doubling after each one, and retries. Any
// other non-2xx status gives up at once with a *StatusError. Transport
// failures wait the current delay and retry. At most MaxAttempts requests
// are made. A payload with no translated segment fails with
// ErrUnreadablePayload.
func (c *GoogleClient) Translate(ctx context.Context, text, sl, tl string) (string, error) {
	attempts := c.opts.effectiveMaxAttempts()
	delay := c.opts.effectiveBaseDelay()

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		status, body, err := c.get(ctx, text, sl, tl)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			lastErr = err
			c.opts.log("[WARN] request failed, retrying in %v (attempt %d/%d): %v", delay, attempt, attempts, err)
			if attempt < attempts {
				if err := sleep(ctx, delay); err != nil {
					return "", err
				}
			}

		case status == http.StatusTooManyRequests:
			lastErr = &StatusError{StatusCode: status}
			c.opts.log("[WARN] 429 rate limited, waiting %v before retry (attempt %d/%d)", delay, attempt, attempts)
			if attempt < attempts {
				if err := sleep(ctx, delay); err != nil {
					return "", err
				}
			}
			delay *= 2

		case status < 200 || status > 299:
			return "", &StatusError{StatusCode: status, Body: truncate(string(body), 200)}

		default:
			out, err := parseSegments(body)
			if err != nil {
				c.opts.log("[WARN] unexpected payload (%d bytes): %v", len(body), err)
				return "", fmt.Errorf("%w: %v", ErrUnreadablePayload, err)
			}
			return out, nil
		}
	}
	return "", fmt.Errorf("giving up after %d attempts: %w", attempts, lastErr)
}

func (c *GoogleClient) get(ctx context.Context, text, sl, tl string) (int, []byte, error) {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", sl)
	q.Set("tl", tl)
	q.Set("dt", "t")
	q.Set("q", text)
	endpoint := c.opts.effectiveEndpoint() + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgents[rand.Intn(len(userAgents))])

	c.opts.log("[DEBUG] GET %s (sl=%s tl=%s, %d chars)", c.opts.effectiveEndpoint(), sl, tl, len([]rune(text)))

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("reading response: %w", err)
	}
	return resp.StatusCode, body, nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
