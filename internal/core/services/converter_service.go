package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/currency_converter_app/internal/apperrors"
	portssvc "github.com/SscSPs/currency_converter_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// defaultPrecision is the number of fractional digits used when the caller
// does not ask for a specific precision.
const defaultPrecision = 2

// ConverterService converts monetary amounts between currencies using rates
// resolved by a RateResolverSvc.
type ConverterService struct {
	currencyService portssvc.CurrencyReaderSvc
	rateResolver    portssvc.RateResolverSvc
}

// NewConverterService creates a new ConverterService.
func NewConverterService(currencyService portssvc.CurrencyReaderSvc, rateResolver portssvc.RateResolverSvc) *ConverterService {
	return &ConverterService{
		currencyService: currencyService,
		rateResolver:    rateResolver,
	}
}

// Convert converts amount from one currency to another and formats the result
// to precision fractional digits. The final value is truncated toward zero at
// the requested precision, then zero-padded. A negative precision selects the
// default of 2.
//
// Equal codes short-circuit before any currency or rate lookup; otherwise
// both currencies must exist in the directory and a rate must resolve as of
// today.
func (s *ConverterService) Convert(ctx context.Context, amount, fromCode, toCode string, precision int32) (string, error) {
	if precision < 0 {
		precision = defaultPrecision
	}

	amt, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return "", fmt.Errorf("%w: %q is not a number", apperrors.ErrInvalidAmount, amount)
	}
	if amt.IsNegative() {
		return "", fmt.Errorf("%w: %q is negative", apperrors.ErrInvalidAmount, amount)
	}

	from := strings.ToUpper(strings.TrimSpace(fromCode))
	to := strings.ToUpper(strings.TrimSpace(toCode))

	if from == to {
		return amt.Truncate(precision).StringFixed(precision), nil
	}

	if _, err := s.currencyService.GetCurrencyByCode(ctx, from); err != nil {
		return "", err
	}
	if _, err := s.currencyService.GetCurrencyByCode(ctx, to); err != nil {
		return "", err
	}

	rate, err := s.rateResolver.Resolve(ctx, from, to, dateOnly(time.Now().UTC()))
	if err != nil {
		return "", err
	}

	return amt.Mul(rate).Truncate(precision).StringFixed(precision), nil
}
