package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/currency_converter_app/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindRateOnOrBefore retrieves the most recent stored rate with the given
	// base and target whose rate date is on or before asOf.
	FindRateOnOrBefore(ctx context.Context, baseCode, targetCode string, asOf time.Time) (*domain.ExchangeRate, error)

	// FindRateForDate retrieves the rate stored for exactly the given date, if any.
	FindRateForDate(ctx context.Context, baseCode, targetCode string, date time.Time) (*domain.ExchangeRate, error)

	// ListRatesForDate retrieves all rates stored for the given date, ordered
	// by base then target code.
	ListRatesForDate(ctx context.Context, date time.Time) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveExchangeRates persists the given rates as a single batch. Rows are
	// upserted keyed by (base, target, rate date); the whole batch commits or
	// rolls back together.
	SaveExchangeRates(ctx context.Context, rates []domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}

// ExchangeRateRepositoryWithTx extends ExchangeRateRepositoryFacade with transaction capabilities
type ExchangeRateRepositoryWithTx interface {
	ExchangeRateRepositoryFacade
	TransactionManager
}
