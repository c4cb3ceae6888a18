package rembg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fitted/internal/domain"
)

// Remover strips the background from an image.
type Remover interface {
	Remove(ctx context.Context, image []byte) ([]byte, error)
}

// Options controls how the background-removal client is configured.
type Options struct {
	URL        string
	HTTPClient *http.Client
}

// Client posts image bytes to a background-removal service and returns the
// alpha-masked result.
type Client struct {
	url        string
	httpClient *http.Client
}

const defaultTimeout = 120 * time.Second

func NewClient(opts Options) (*Client, error) {
	url := strings.TrimSpace(opts.URL)
	if url == "" {
		return nil, errors.New("rembg: url is required")
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{url: url, httpClient: client}, nil
}

func (c *Client) Remove(ctx context.Context, image []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("%w: create rembg request: %v", domain.ErrSynthesis, err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: invoke rembg: %v", domain.ErrSynthesis, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: rembg status %d: %s", domain.ErrSynthesis, resp.StatusCode, strings.TrimSpace(string(data)))
	}
	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read rembg response: %v", domain.ErrSynthesis, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: rembg returned an empty image", domain.ErrSynthesis)
	}
	return out, nil
}

var _ Remover = (*Client)(nil)
