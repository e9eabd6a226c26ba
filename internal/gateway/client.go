package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ForwardedHeaders are copied from the gateway request onto every Ledger API call.
var ForwardedHeaders = []string{"Authorization", "X-Correlation-ID"}

var errUpstream = errors.New("ledger api unavailable")

// Reply is a Ledger API response relayed as-is.
type Reply struct {
	Status int
	Body   []byte
}

type LedgerClient struct {
	baseURL    string
	httpClient *http.Client
	maxRetries uint64
}

func NewLedgerClient(baseURL string, timeout time.Duration, maxRetries uint64) *LedgerClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &LedgerClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
	}
}

// Get retries transport failures and 5xx replies with exponential backoff.
func (c *LedgerClient) Get(ctx context.Context, path string, header http.Header) (Reply, error) {
	var reply Reply

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	err := backoff.Retry(func() error {
		var err error
		reply, err = c.do(ctx, http.MethodGet, path, header, nil)
		if err != nil {
			return err
		}
		if reply.Status >= http.StatusInternalServerError {
			return fmt.Errorf("%w: status %d", errUpstream, reply.Status)
		}

		return nil
	}, policy)
	if err != nil && reply.Status == 0 {
		return Reply{}, fmt.Errorf("c.do GET %s -> %w", path, err)
	}

	return reply, nil
}

// Post is sent once; donations and claims are not idempotent.
func (c *LedgerClient) Post(ctx context.Context, path string, header http.Header, body []byte) (Reply, error) {
	reply, err := c.do(ctx, http.MethodPost, path, header, body)
	if err != nil {
		return Reply{}, fmt.Errorf("c.do POST %s -> %w", path, err)
	}

	return reply, nil
}

func (c *LedgerClient) do(ctx context.Context, method, path string, header http.Header, body []byte) (Reply, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return Reply{}, fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}

	for _, h := range ForwardedHeaders {
		if v := header.Get(h); v != "" {
			req.Header.Set(h, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Reply{}, fmt.Errorf("c.httpClient.Do -> %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Reply{}, fmt.Errorf("io.ReadAll -> %w", err)
	}

	return Reply{Status: resp.StatusCode, Body: respBody}, nil
}
