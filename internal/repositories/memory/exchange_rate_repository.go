package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/currency_converter_app/internal/apperrors"
	"github.com/SscSPs/currency_converter_app/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_converter_app/internal/core/ports/repositories"
)

type rateKey struct {
	base   string
	target string
	date   time.Time
}

// ExchangeRateRepository is an in-memory ExchangeRateRepositoryFacade.
// Rows are keyed by (base, target, rate date), enforcing the same
// uniqueness invariant as the database constraint.
type ExchangeRateRepository struct {
	mu    sync.RWMutex
	rates map[rateKey]domain.ExchangeRate
}

// NewExchangeRateRepository creates an empty in-memory rate repository.
func NewExchangeRateRepository() *ExchangeRateRepository {
	return &ExchangeRateRepository{rates: make(map[rateKey]domain.ExchangeRate)}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*ExchangeRateRepository)(nil)

func normalizeDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func keyFor(base, target string, date time.Time) rateKey {
	return rateKey{
		base:   strings.ToUpper(base),
		target: strings.ToUpper(target),
		date:   normalizeDay(date),
	}
}

// SaveExchangeRates upserts all given rates; the batch is applied atomically
// under the repository lock.
func (r *ExchangeRateRepository) SaveExchangeRates(_ context.Context, rates []domain.ExchangeRate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rate := range rates {
		rate.BaseCurrencyCode = strings.ToUpper(rate.BaseCurrencyCode)
		rate.TargetCurrencyCode = strings.ToUpper(rate.TargetCurrencyCode)
		rate.RateDate = normalizeDay(rate.RateDate)
		key := keyFor(rate.BaseCurrencyCode, rate.TargetCurrencyCode, rate.RateDate)
		if existing, ok := r.rates[key]; ok {
			existing.Rate = rate.Rate
			existing.LastUpdatedAt = rate.LastUpdatedAt
			r.rates[key] = existing
			continue
		}
		r.rates[key] = rate
	}
	return nil
}

// FindRateOnOrBefore returns the most recent rate for the pair dated on or
// before asOf.
func (r *ExchangeRateRepository) FindRateOnOrBefore(_ context.Context, baseCode, targetCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	base := strings.ToUpper(baseCode)
	target := strings.ToUpper(targetCode)
	cutoff := normalizeDay(asOf)

	var best *domain.ExchangeRate
	for key, rate := range r.rates {
		if key.base != base || key.target != target || key.date.After(cutoff) {
			continue
		}
		if best == nil || key.date.After(best.RateDate) {
			candidate := rate
			best = &candidate
		}
	}
	if best == nil {
		return nil, apperrors.ErrNotFound
	}
	return best, nil
}

// FindRateForDate returns the rate stored for exactly the given day.
func (r *ExchangeRateRepository) FindRateForDate(_ context.Context, baseCode, targetCode string, date time.Time) (*domain.ExchangeRate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rate, ok := r.rates[keyFor(baseCode, targetCode, date)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &rate, nil
}

// ListRatesForDate returns all rates for the day ordered by base then target.
func (r *ExchangeRateRepository) ListRatesForDate(_ context.Context, date time.Time) ([]domain.ExchangeRate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	day := normalizeDay(date)
	var result []domain.ExchangeRate
	for key, rate := range r.rates {
		if key.date.Equal(day) {
			result = append(result, rate)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].BaseCurrencyCode != result[j].BaseCurrencyCode {
			return result[i].BaseCurrencyCode < result[j].BaseCurrencyCode
		}
		return result[i].TargetCurrencyCode < result[j].TargetCurrencyCode
	})
	return result, nil
}

// Len reports how many rate rows are stored. Test helper.
func (r *ExchangeRateRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rates)
}
