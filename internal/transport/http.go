package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/iishyfishyy/lazyshell/internal/provider"
)

// HTTP posts requests with an in-process net/http client
type HTTP struct {
	client *http.Client
}

// NewHTTP creates an HTTP transport. A nil client uses a client without a
// timeout; cancellation comes from the request context.
func NewHTTP(client *http.Client) *HTTP {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTP{client: client}
}

// Post sends req and streams the response body into out
func (h *HTTP) Post(ctx context.Context, req provider.Request, out io.Writer) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	return nil
}
