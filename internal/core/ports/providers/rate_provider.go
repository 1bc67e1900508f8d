package providers

import (
	"context"

	"github.com/shopspring/decimal"
)

// CurrencyData is a single currency entry returned by the upstream provider.
type CurrencyData struct {
	Code   string
	Name   string
	Symbol string
}

// RateProvider is the upstream exchange-rate API consumed by the sync engine.
// Implementations must enforce a bounded timeout on every call.
type RateProvider interface {
	// FetchLatestRates returns the latest rates published relative to
	// baseCode, keyed by target currency code. When currencyCodes is
	// non-empty the fetch is restricted to those codes.
	FetchLatestRates(ctx context.Context, baseCode string, currencyCodes []string) (map[string]decimal.Decimal, error)

	// FetchCurrencies returns the full list of currencies the provider knows.
	FetchCurrencies(ctx context.Context) ([]CurrencyData, error)
}
