package imagefetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const userAgent = "Mozilla/5.0 (compatible; LegoBot/1.0)"

// Fetcher downloads image bytes for re-upload to the messaging platform.
type Fetcher struct {
	client *http.Client
}

// New creates a Fetcher with a 20 second request timeout. Redirects are
// followed.
func New() *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: 20 * time.Second}}
}

// Fetch downloads url and returns the body. It fails on an error status
// or when the response does not declare an image content type; that
// error carries the declared type and a short body sample.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build image request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("image URL returned status %s", resp.Status)
	}

	ct := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "image/") {
		sample, _ := io.ReadAll(io.LimitReader(resp.Body, 120))
		return nil, fmt.Errorf("not an image: content-type %q, body sample %q", ct, sample)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read image data: %w", err)
	}
	return data, nil
}
