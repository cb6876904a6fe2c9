// Package quran fetches surahs and their Urdu translation from the
// Al Quran Cloud API.
package quran

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// DefaultBaseURL is the public Al Quran Cloud API.
const DefaultBaseURL = "https://api.alquran.cloud"

// UrduEdition is the translation rendered under each ayah.
const UrduEdition = "ur.ahmedali"

// Client fetches the surah index and per-surah editions. The content is
// immutable, so everything fetched is cached for the process lifetime;
// the cache is bounded by the size of the Quran itself.
type Client struct {
	base string
	http *http.Client

	mu     sync.Mutex
	surahs []Surah
	ayahs  map[string][]Ayah // keyed by request path
}

// NewClient returns a Client for the given base URL ("" for the default).
func NewClient(base string) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		base:  base,
		http:  &http.Client{Timeout: 15 * time.Second},
		ayahs: map[string][]Ayah{},
	}
}

// Surahs returns the 114-chapter index, fetched once.
func (c *Client) Surahs(ctx context.Context) ([]Surah, error) {
	c.mu.Lock()
	cached := c.surahs
	c.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	var resp listResponse
	if err := c.getJSON(ctx, "/v1/surah", &resp); err != nil {
		return nil, err
	}
	if resp.Code != http.StatusOK {
		return nil, fmt.Errorf("quran API status %d %s", resp.Code, resp.Status)
	}

	c.mu.Lock()
	c.surahs = resp.Data
	c.mu.Unlock()
	return resp.Data, nil
}

// Ayahs returns a surah's Arabic text and its Urdu translation, verse by
// verse. The translation is best-effort: when its fetch fails the Arabic
// still renders, so urdu may be nil.
func (c *Client) Ayahs(ctx context.Context, number int) (arabic, urdu []Ayah, err error) {
	arabic, err = c.edition(ctx, fmt.Sprintf("/v1/surah/%d", number))
	if err != nil {
		return nil, nil, err
	}
	urdu, _ = c.edition(ctx, fmt.Sprintf("/v1/surah/%d/%s", number, UrduEdition))
	return arabic, urdu, nil
}

func (c *Client) edition(ctx context.Context, path string) ([]Ayah, error) {
	c.mu.Lock()
	if ayahs, ok := c.ayahs[path]; ok {
		c.mu.Unlock()
		return ayahs, nil
	}
	c.mu.Unlock()

	var resp surahResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	if resp.Code != http.StatusOK {
		return nil, fmt.Errorf("quran API status %d %s", resp.Code, resp.Status)
	}

	c.mu.Lock()
	c.ayahs[path] = resp.Data.Ayahs
	c.mu.Unlock()
	return resp.Data.Ayahs, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetching quran data: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("quran API returned %d", res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding quran data: %w", err)
	}
	return nil
}
