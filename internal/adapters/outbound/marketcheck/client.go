// Package marketcheck fetches comparable used-car listings from MarketCheck.
package marketcheck

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tradecheck/tradecheck/internal/adapters/outbound/httpapi"
	"github.com/tradecheck/tradecheck/internal/domain"
)

const DefaultEndpoint = "https://api.marketcheck.com/v2"

// Client implements domain.MarketLookup with the active used-car search.
type Client struct {
	endpoint string
	apiKey   string
	rows     int
	client   *http.Client
}

func New(endpoint, apiKey string, rows int, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		rows:     rows,
		client:   &http.Client{Timeout: timeout},
	}
}

type searchResponse struct {
	NumFound int       `json:"num_found"`
	Listings []listing `json:"listings"`
}

type listing struct {
	ID    string   `json:"id"`
	Price *float64 `json:"price"`
	Miles *float64 `json:"miles"`
}

func (c *Client) Comparables(ctx context.Context, q domain.MarketQuery) ([]domain.Listing, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("include_relevant_links", "true")
	params.Set("car_type", "used")
	params.Set("make", q.Make)
	params.Set("model", q.Model)
	if q.Year > 0 {
		params.Set("year", strconv.Itoa(q.Year))
	}
	if c.rows > 0 {
		params.Set("rows", strconv.Itoa(c.rows))
	}

	var resp searchResponse
	if err := httpapi.GetJSON(ctx, c.client, c.endpoint+"/search/car/active?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("searching %d %s %s: %w", q.Year, q.Make, q.Model, err)
	}

	// Listings without mileage cannot be adjusted and are dropped here so the
	// result stays JSON-encodable for the cache.
	out := make([]domain.Listing, 0, len(resp.Listings))
	for _, l := range resp.Listings {
		if l.Miles == nil || math.IsNaN(*l.Miles) {
			continue
		}
		out = append(out, domain.Listing{Price: l.Price, Miles: l.Miles})
	}
	return out, nil
}
