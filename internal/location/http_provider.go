package location

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/screenomics/locationworker/internal/domain"
)

// HTTPProvider resolves an approximate position from an IP geolocation
// endpoint answering with JSON. Both {"lat","lon"} and
// {"latitude","longitude"} shapes are understood; a "status" field other
// than "success" means no fix.
type HTTPProvider struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

type geoResponse struct {
	Status    string   `json:"status"`
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 64 << 10

// NewHTTPProvider creates a provider querying endpoint with the given timeout.
func NewHTTPProvider(endpoint string, timeout time.Duration, logger *slog.Logger) *HTTPProvider {
	return &HTTPProvider{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger.With("component", "http_location_provider"),
	}
}

// CurrentLocation implements Provider.
func (p *HTTPProvider) CurrentLocation(ctx context.Context, priority domain.Priority) (*domain.Sample, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geolocation request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geolocation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.logger.Debug("geolocation endpoint unavailable",
			"status_code", resp.StatusCode,
			"priority", priority.String())
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read geolocation response: %w", err)
	}
	if len(body) == 0 {
		return nil, nil
	}

	var geo geoResponse
	if err := json.Unmarshal(body, &geo); err != nil {
		return nil, fmt.Errorf("failed to decode geolocation response: %w", err)
	}

	if geo.Status != "" && geo.Status != "success" {
		return nil, nil
	}

	lat, lng := geo.Lat, geo.Lon
	if lat == nil || lng == nil {
		lat, lng = geo.Latitude, geo.Longitude
	}
	if lat == nil || lng == nil {
		return nil, nil
	}

	return domain.NewSample(*lat, *lng)
}
