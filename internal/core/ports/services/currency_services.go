package services

import (
	"context"

	"github.com/SscSPs/currency_converter_app/internal/core/domain"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListActiveCurrencies retrieves all active currencies sorted by code.
	ListActiveCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencySvcFacade combines all currency-related service interfaces.
// The directory is read-only; currencies are only mutated by the sync path.
type CurrencySvcFacade interface {
	CurrencyReaderSvc
}
