// Package nhtsa decodes VINs through the NHTSA vPIC API.
package nhtsa

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tradecheck/tradecheck/internal/adapters/outbound/httpapi"
	"github.com/tradecheck/tradecheck/internal/domain"
)

const DefaultEndpoint = "https://vpic.nhtsa.dot.gov/api"

// Decoder implements domain.VINDecoder against vehicles/DecodeVinValues.
type Decoder struct {
	endpoint string
	client   *http.Client
}

func New(endpoint string, timeout time.Duration) *Decoder {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Decoder{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: timeout},
	}
}

type decodeResponse struct {
	Count   int            `json:"Count"`
	Message string         `json:"Message"`
	Results []decodeResult `json:"Results"`
}

type decodeResult struct {
	Make      string `json:"Make"`
	Model     string `json:"Model"`
	ModelYear string `json:"ModelYear"`
	VIN       string `json:"VIN"`
	ErrorCode string `json:"ErrorCode"`
	ErrorText string `json:"ErrorText"`
}

func (d *Decoder) Decode(ctx context.Context, vin string) (*domain.VehicleIdentity, error) {
	vin = strings.TrimSpace(vin)
	if vin == "" {
		return nil, fmt.Errorf("decoding vin: empty vin")
	}
	u := fmt.Sprintf("%s/vehicles/DecodeVinValues/%s?format=json", d.endpoint, url.PathEscape(vin))

	var resp decodeResponse
	if err := httpapi.GetJSON(ctx, d.client, u, &resp); err != nil {
		return nil, fmt.Errorf("decoding vin %s: %w", vin, err)
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("decoding vin %s: no results", vin)
	}

	r := resp.Results[0]
	year, _ := strconv.Atoi(strings.TrimSpace(r.ModelYear))
	id := &domain.VehicleIdentity{
		Make:  strings.TrimSpace(r.Make),
		Model: strings.TrimSpace(r.Model),
		Year:  year,
		VIN:   strings.TrimSpace(r.VIN),
	}
	if id.VIN == "" {
		id.VIN = vin
	}
	if id.Make == "" && id.Model == "" && year == 0 {
		return nil, fmt.Errorf("decoding vin %s: %s", vin, strings.TrimSpace(r.ErrorText))
	}
	return id, nil
}
