package imageprep

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"fitted/internal/domain"
)

// Resolver turns image references into raw bytes. A reference is either a
// filesystem path, a URL under the service's own base address (those point
// at files the service itself serves, so they are read from disk instead of
// fetched), or a genuine remote URL downloaded fully into memory.
type Resolver struct {
	baseURL    string
	httpClient *http.Client
}

type ResolverOptions struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewResolver(opts ResolverOptions) *Resolver {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Resolver{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: client,
	}
}

// Resolve reads the referenced image fully into memory.
func (r *Resolver) Resolve(ctx context.Context, ref string) ([]byte, error) {
	if local := r.localPath(ref); local != "" {
		data, err := os.ReadFile(local)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", domain.ErrImageFetch, local, err)
		}
		return data, nil
	}
	return r.download(ctx, ref)
}

// localPath maps the reference to an existing local file, or "" when the
// reference has to be fetched remotely.
func (r *Resolver) localPath(ref string) string {
	candidate := ref
	if r.baseURL != "" && strings.HasPrefix(ref, r.baseURL+"/") {
		candidate = strings.TrimPrefix(ref, r.baseURL+"/")
	}
	if strings.HasPrefix(candidate, "http://") || strings.HasPrefix(candidate, "https://") {
		return ""
	}
	if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
		return candidate
	}
	return ""
}

func (r *Resolver) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", domain.ErrImageFetch, err)
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", domain.ErrImageFetch, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: get %s: status %d", domain.ErrImageFetch, url, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrImageFetch, err)
	}
	return data, nil
}
