package rebrickable

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pycarrot2/rebrickable-bot/core"
)

const defaultBaseURL = "https://rebrickable.com/api/v3"

// Client calls the Rebrickable catalog API.
type Client struct {
	apiKey  string
	client  *http.Client
	baseURL string
}

// New creates a catalog client with the given API key.
func New(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultBaseURL,
	}
}

// WithBaseURL sets a custom base URL (for testing).
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

type setResponse struct {
	SetNum    string `json:"set_num"`
	Name      string `json:"name"`
	Year      *int   `json:"year"`
	NumParts  *int   `json:"num_parts"`
	SetImgURL string `json:"set_img_url"`
	SetURL    string `json:"set_url"`
}

// GetSet fetches metadata for a set by its bare numeric id. The catalog
// keys sets as "<num>-<variant>", so a bare id is looked up as variant 1.
func (c *Client) GetSet(ctx context.Context, id int) (core.CatalogRecord, error) {
	endpoint := fmt.Sprintf("%s/lego/sets/%d-1/", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return core.CatalogRecord{}, fmt.Errorf("build set request: %w", err)
	}
	req.Header.Set("Authorization", "key "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return core.CatalogRecord{}, fmt.Errorf("get set %d: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return core.CatalogRecord{}, fmt.Errorf("get set %d: %w", id, core.ErrSetNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return core.CatalogRecord{}, fmt.Errorf("get set %d: unexpected status %s: %s", id, resp.Status, body)
	}

	var sr setResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return core.CatalogRecord{}, fmt.Errorf("decode set %d: %w", id, err)
	}

	return core.CatalogRecord{
		SetNum:   sr.SetNum,
		Name:     sr.Name,
		Year:     sr.Year,
		NumParts: sr.NumParts,
		SetURL:   sr.SetURL,
		ImageURL: sr.SetImgURL,
	}, nil
}
