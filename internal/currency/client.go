package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tair/product-catalog/pkg/logger"
)

// usdState is the state token identifying the USD record in the HNB
// exchange-rate response ("SAD" = Sjedinjene Americke Drzave).
const usdState = "SAD"

// ErrRateNotFound is returned when the exchange-rate response carries no
// USD record.
var ErrRateNotFound = errors.New("Unable to get currency rate for USD")

// UpstreamError is returned when the HNB API responds with a non-success
// status. The raw body is logged, never surfaced to HTTP clients.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("hnb api returned status %d", e.StatusCode)
}

// exchangeRate is a single record of the HNB exchange-rate response.
// Rates come rendered with a comma as the decimal separator.
type exchangeRate struct {
	State      string `json:"drzava"`
	BuyingRate string `json:"kupovni_tecaj"`
}

// HnbClient fetches exchange rates from the HNB API
type HnbClient struct {
	url    string
	client *http.Client
}

// NewHnbClient creates a new HNB API client for the given endpoint
func NewHnbClient(url string) *HnbClient {
	return &HnbClient{
		url:    url,
		client: http.DefaultClient,
	}
}

// FetchUSDBuyingRate returns the USD buying rate as a standard decimal
// string. Locale normalization (comma to dot) happens here so the rest of
// the system only ever sees standard decimals.
func (c *HnbClient) FetchUSDBuyingRate(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build hnb request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call hnb api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		logger.Logger.Error().
			Int("status", resp.StatusCode).
			Str("body", string(body)).
			Msg("Hnb api error")
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var rates []exchangeRate
	if err := json.NewDecoder(resp.Body).Decode(&rates); err != nil {
		return "", fmt.Errorf("failed to decode hnb response: %w", err)
	}

	for _, rate := range rates {
		if rate.State == usdState {
			return strings.ReplaceAll(rate.BuyingRate, ",", "."), nil
		}
	}
	return "", ErrRateNotFound
}
