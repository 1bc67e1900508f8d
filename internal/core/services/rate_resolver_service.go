package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/currency_converter_app/internal/apperrors"
	portsrepo "github.com/SscSPs/currency_converter_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// anchorCurrencyCode is the currency all upstream rates are published
// relative to. It doubles as the triangulation hub for pairs with no stored
// rate in either direction.
const anchorCurrencyCode = "USD"

// intermediateScale is the number of fractional digits kept when
// reciprocating a rate. Derived rates are truncated at this scale, not
// rounded, before any final formatting happens in the converter.
const intermediateScale = 10

// dateOnly strips the time component, leaving a UTC calendar day.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// RateResolverService finds an applicable exchange rate between two currency
// codes for an as-of date.
type RateResolverService struct {
	rateRepo portsrepo.ExchangeRateReader
}

// NewRateResolverService creates a new RateResolverService.
func NewRateResolverService(rateRepo portsrepo.ExchangeRateReader) *RateResolverService {
	return &RateResolverService{rateRepo: rateRepo}
}

// Resolve returns the exchange rate from fromCode to toCode as of asOf.
// Lookup order: identity, direct, inverse, triangulation through the anchor
// currency. Upstream data is anchor-centric, so most pairs are derived; a
// single hop through the anchor reaches every pair the sync can store.
func (s *RateResolverService) Resolve(ctx context.Context, fromCode, toCode string, asOf time.Time) (decimal.Decimal, error) {
	from := strings.ToUpper(fromCode)
	to := strings.ToUpper(toCode)
	asOf = dateOnly(asOf)

	if from == to {
		return decimal.NewFromInt(1), nil
	}

	direct, err := s.rateRepo.FindRateOnOrBefore(ctx, from, to, asOf)
	if err == nil {
		return direct.Rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Decimal{}, fmt.Errorf("failed to find direct rate: %w", err)
	}

	inverse, err := s.rateRepo.FindRateOnOrBefore(ctx, to, from, asOf)
	if err == nil {
		if !inverse.Rate.IsZero() {
			reciprocal, _ := decimal.NewFromInt(1).QuoRem(inverse.Rate, intermediateScale)
			return reciprocal, nil
		}
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Decimal{}, fmt.Errorf("failed to find inverse rate: %w", err)
	}

	if from != anchorCurrencyCode && to != anchorCurrencyCode {
		rate, err := s.triangulate(ctx, from, to, asOf)
		if err == nil {
			return rate, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Decimal{}, err
		}
	}

	return decimal.Decimal{}, fmt.Errorf("%w: no rate from %s to %s", apperrors.ErrRateNotFound, from, to)
}

// triangulate derives from->to by composing the stored anchor->from and
// anchor->to rates: (1 / rate(anchor->from)) * rate(anchor->to), truncated
// at intermediateScale after each step.
func (s *RateResolverService) triangulate(ctx context.Context, from, to string, asOf time.Time) (decimal.Decimal, error) {
	anchorToFrom, err := s.rateRepo.FindRateOnOrBefore(ctx, anchorCurrencyCode, from, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Decimal{}, err
		}
		return decimal.Decimal{}, fmt.Errorf("failed to find anchor rate for %s: %w", from, err)
	}

	anchorToTarget, err := s.rateRepo.FindRateOnOrBefore(ctx, anchorCurrencyCode, to, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Decimal{}, err
		}
		return decimal.Decimal{}, fmt.Errorf("failed to find anchor rate for %s: %w", to, err)
	}

	if anchorToFrom.Rate.IsZero() {
		return decimal.Decimal{}, apperrors.ErrNotFound
	}

	fromInAnchor, _ := decimal.NewFromInt(1).QuoRem(anchorToFrom.Rate, intermediateScale)
	return fromInAnchor.Mul(anchorToTarget.Rate).Truncate(intermediateScale), nil
}
