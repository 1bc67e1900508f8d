// Package freecurrency implements the FreeCurrencyAPI client used by the
// rate sync engine. All rates it publishes are relative to a single base
// currency per request.
package freecurrency

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/currency_converter_app/internal/apperrors"
	"github.com/SscSPs/currency_converter_app/internal/core/ports/providers"
	"github.com/shopspring/decimal"
)

// DefaultTimeout bounds every provider call so a stalled upstream surfaces
// as a request failure instead of hanging a sync run.
const DefaultTimeout = 10 * time.Second

// Client talks to the FreeCurrencyAPI HTTP endpoints.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New constructs a Client for the given API base URL and key. A
// non-positive timeout falls back to DefaultTimeout.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

var _ providers.RateProvider = (*Client)(nil)

// FetchLatestRates loads the latest rates relative to baseCode, optionally
// restricted to currencyCodes, keyed by uppercased target code.
func (c *Client) FetchLatestRates(ctx context.Context, baseCode string, currencyCodes []string) (map[string]decimal.Decimal, error) {
	query := url.Values{}
	query.Set("apikey", c.apiKey)
	query.Set("base_currency", strings.ToUpper(baseCode))
	if len(currencyCodes) > 0 {
		upper := make([]string, len(currencyCodes))
		for i, code := range currencyCodes {
			upper[i] = strings.ToUpper(code)
		}
		query.Set("currencies", strings.Join(upper, ","))
	}

	body, err := c.get(ctx, "/latest", query)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Data map[string]json.Number `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: malformed payload: %v", apperrors.ErrAPIInvalidResponse, err)
	}
	if payload.Data == nil {
		return nil, fmt.Errorf("%w: missing data field", apperrors.ErrAPIInvalidResponse)
	}

	rates := make(map[string]decimal.Decimal, len(payload.Data))
	for code, value := range payload.Data {
		rate, err := decimal.NewFromString(value.String())
		if err != nil {
			return nil, fmt.Errorf("%w: bad rate value for %s: %v", apperrors.ErrAPIInvalidResponse, code, err)
		}
		rates[strings.ToUpper(code)] = rate
	}
	return rates, nil
}

// FetchCurrencies loads the full currency list the provider knows about.
func (c *Client) FetchCurrencies(ctx context.Context) ([]providers.CurrencyData, error) {
	query := url.Values{}
	query.Set("apikey", c.apiKey)

	body, err := c.get(ctx, "/currencies", query)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Data map[string]struct {
			Name   string `json:"name"`
			Symbol string `json:"symbol"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: malformed payload: %v", apperrors.ErrAPIInvalidResponse, err)
	}
	if payload.Data == nil {
		return nil, fmt.Errorf("%w: missing data field", apperrors.ErrAPIInvalidResponse)
	}

	currencies := make([]providers.CurrencyData, 0, len(payload.Data))
	for code, info := range payload.Data {
		currencies = append(currencies, providers.CurrencyData{
			Code:   strings.ToUpper(code),
			Name:   info.Name,
			Symbol: info.Symbol,
		})
	}
	return currencies, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := c.baseURL + path + "?" + query.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", apperrors.ErrAPIRequestFailed, err)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrAPIRequestFailed, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d from %s", apperrors.ErrAPIRequestFailed, response.StatusCode, path)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", apperrors.ErrAPIRequestFailed, err)
	}
	return body, nil
}
