// Package memory provides in-memory implementations of the repository ports.
// They back unit tests that need stateful storage without a database and
// honor the same contracts as the pgsql repositories.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/SscSPs/currency_converter_app/internal/apperrors"
	"github.com/SscSPs/currency_converter_app/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_converter_app/internal/core/ports/repositories"
)

// CurrencyRepository is an in-memory CurrencyRepositoryFacade.
type CurrencyRepository struct {
	mu         sync.RWMutex
	currencies map[string]domain.Currency
}

// NewCurrencyRepository creates an empty in-memory currency repository.
func NewCurrencyRepository() *CurrencyRepository {
	return &CurrencyRepository{currencies: make(map[string]domain.Currency)}
}

var _ portsrepo.CurrencyRepositoryFacade = (*CurrencyRepository)(nil)

// SaveCurrency creates or replaces the currency keyed by its uppercased code.
func (r *CurrencyRepository) SaveCurrency(_ context.Context, currency domain.Currency) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	currency.CurrencyCode = strings.ToUpper(currency.CurrencyCode)
	if existing, ok := r.currencies[currency.CurrencyCode]; ok {
		// Updates touch name and symbol only, mirroring the pgsql upsert.
		existing.Name = currency.Name
		existing.Symbol = currency.Symbol
		existing.LastUpdatedAt = currency.LastUpdatedAt
		r.currencies[currency.CurrencyCode] = existing
		return nil
	}
	r.currencies[currency.CurrencyCode] = currency
	return nil
}

// FindCurrencyByCode retrieves a currency by exact uppercased code match.
func (r *CurrencyRepository) FindCurrencyByCode(_ context.Context, currencyCode string) (*domain.Currency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	currency, ok := r.currencies[strings.ToUpper(currencyCode)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &currency, nil
}

// ListActiveCurrencies returns active currencies sorted by code ascending.
func (r *CurrencyRepository) ListActiveCurrencies(_ context.Context) ([]domain.Currency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	active := make([]domain.Currency, 0, len(r.currencies))
	for _, currency := range r.currencies {
		if currency.IsActive {
			active = append(active, currency)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].CurrencyCode < active[j].CurrencyCode
	})
	return active, nil
}
