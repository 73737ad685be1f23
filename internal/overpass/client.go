package overpass

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// transportSlack is how much longer the HTTP client waits beyond the
// server-side query timeout, so the transport never cuts off a response
// the server was still allowed to produce. Tunable; fixed rather than
// proportional on purpose.
const transportSlack = 30 * time.Second

// Options configures the Overpass client.
type Options struct {
	Endpoint     string
	UserAgent    string
	QueryTimeout time.Duration
	Limiter      *rate.Limiter
}

// Client issues Overpass QL queries against a single endpoint. Public
// Overpass instances expect polite clients, so every request waits on a
// rate limiter and carries a User-Agent.
type Client struct {
	http     *http.Client
	endpoint string
	ua       string
	limiter  *rate.Limiter
}

// NewClient creates an Overpass client for the given endpoint.
func NewClient(opts Options) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = "chargesnap/1.0"
	}
	if opts.QueryTimeout == 0 {
		opts.QueryTimeout = 900 * time.Second
	}
	if opts.Limiter == nil {
		opts.Limiter = rate.NewLimiter(1, 1)
	}
	return &Client{
		http: &http.Client{
			Timeout: opts.QueryTimeout + transportSlack,
		},
		endpoint: opts.Endpoint,
		ua:       opts.UserAgent,
		limiter:  opts.Limiter,
	}
}

// Fetch POSTs the query as a text/plain body and returns the complete
// response bytes. There is no size cap; the dataset is expected to fit
// in memory. Connection failures surface as *TransportError, non-2xx
// statuses as *RemoteError. No retries.
func (c *Client) Fetch(ctx context.Context, query string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "overpass: rate limiter wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBufferString(query))
	if err != nil {
		return nil, eris.Wrap(err, "overpass: build request")
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("User-Agent", c.ua)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteError{Status: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	zap.L().Debug("overpass response received",
		zap.String("endpoint", c.endpoint),
		zap.Int("bytes", len(raw)),
	)

	return raw, nil
}
