package praytimes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// DefaultBaseURL is the public Al Adhan API.
const DefaultBaseURL = "https://api.aladhan.com"

// Calculation parameters used across the app: method 2 is the University
// of Islamic Sciences, Karachi; school 1 is Hanafi (affects Asr).
const (
	methodKarachi = 2
	schoolHanafi  = 1
)

// Client fetches daily timings, with a per-(day,location) cache so the
// scheduler's minute tick never refetches the same day.
type Client struct {
	base string
	http *http.Client

	mu    sync.Mutex
	cache map[string]*Response
}

// NewClient returns a Client for the given base URL ("" for the default).
func NewClient(base string) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		base:  base,
		http:  &http.Client{Timeout: 15 * time.Second},
		cache: map[string]*Response{},
	}
}

// Timings returns the prayer timings for the given day and location.
// Fetch failures surface to the caller; there is no retry.
func (c *Client) Timings(ctx context.Context, lat, lon float64, day time.Time) (*Response, error) {
	key := fmt.Sprintf("%s|%.4f|%.4f", day.Format("02-01-2006"), lat, lon)

	c.mu.Lock()
	if resp, ok := c.cache[key]; ok {
		c.mu.Unlock()
		return resp, nil
	}
	c.mu.Unlock()

	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%f", lat))
	q.Set("longitude", fmt.Sprintf("%f", lon))
	q.Set("method", fmt.Sprintf("%d", methodKarachi))
	q.Set("school", fmt.Sprintf("%d", schoolHanafi))

	endpoint := fmt.Sprintf("%s/v1/timings/%s?%s", c.base, day.Format("02-01-2006"), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching prayer times: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("prayer times API returned %d", res.StatusCode)
	}

	var resp Response
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decoding prayer times: %w", err)
	}
	if resp.Code != http.StatusOK {
		return nil, fmt.Errorf("prayer times API status %d %s", resp.Code, resp.Status)
	}

	c.mu.Lock()
	// stale days never get asked for again; keep the cache at one day's cities
	dayPrefix := day.Format("02-01-2006") + "|"
	for k := range c.cache {
		if !strings.HasPrefix(k, dayPrefix) {
			delete(c.cache, k)
		}
	}
	c.cache[key] = &resp
	c.mu.Unlock()
	return &resp, nil
}
