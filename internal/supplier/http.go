package supplier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultHTTPTimeout bounds a single price request
const DefaultHTTPTimeout = 5 * time.Second

// HTTPFetcher queries a remote price service:
// GET {BaseURL}/prices?material=...&base_price=... -> {"price": 12.34}
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
	APIKey  string
}

// NewHTTPFetcher creates a fetcher for the service at baseURL
func NewHTTPFetcher(baseURL string) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: DefaultHTTPTimeout},
	}
}

type priceResponse struct {
	Price *float64 `json:"price"`
}

// Fetch implements PriceFetcher
func (f *HTTPFetcher) Fetch(ctx context.Context, materialName string, basePrice float64) (float64, error) {
	q := url.Values{}
	q.Set("material", materialName)
	q.Set("base_price", strconv.FormatFloat(basePrice, 'f', -1, 64))
	endpoint := f.BaseURL + "/prices?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, &Error{Material: materialName, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, &Error{Material: materialName, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return 0, &Error{Material: materialName, Message: "failed to read response body", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return 0, &Error{Material: materialName, StatusCode: resp.StatusCode, Message: "unexpected status"}
	}

	var parsed priceResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, &Error{Material: materialName, Message: "invalid response body", Cause: err}
	}
	if parsed.Price == nil {
		return 0, &Error{Material: materialName, Message: "response has no price"}
	}
	if *parsed.Price < 0 {
		return 0, &Error{Material: materialName, Message: fmt.Sprintf("negative price %v", *parsed.Price)}
	}
	return *parsed.Price, nil
}
