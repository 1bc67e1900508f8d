package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RateResolverSvc resolves an applicable exchange rate between two currency
// codes as of a date, via direct, inverse or anchor-triangulated lookup.
type RateResolverSvc interface {
	Resolve(ctx context.Context, fromCode, toCode string, asOf time.Time) (decimal.Decimal, error)
}

// ConverterSvcFacade converts monetary amounts between currencies.
type ConverterSvcFacade interface {
	// Convert parses amount, resolves a rate as of today and returns the
	// converted amount formatted to precision fractional digits.
	Convert(ctx context.Context, amount, fromCode, toCode string, precision int32) (string, error)
}
