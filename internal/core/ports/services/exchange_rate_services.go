package services

import (
	"context"
	"time"

	"github.com/SscSPs/currency_converter_app/internal/core/domain"
)

// ExchangeRateReaderSvc defines read operations for stored exchange rates.
type ExchangeRateReaderSvc interface {
	// ListRatesForDate retrieves all rates stored for the given date.
	ListRatesForDate(ctx context.Context, date time.Time) ([]domain.ExchangeRate, error)
}
