package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/currency_converter_app/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_converter_app/internal/core/ports/repositories"
)

// ExchangeRateService exposes read access to stored exchange rates.
type ExchangeRateService struct {
	rateRepo portsrepo.ExchangeRateReader
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateReader) *ExchangeRateService {
	return &ExchangeRateService{rateRepo: rateRepo}
}

// ListRatesForDate retrieves all rates stored for the given calendar day,
// ordered by base then target code.
func (s *ExchangeRateService) ListRatesForDate(ctx context.Context, date time.Time) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListRatesForDate(ctx, dateOnly(date))
	if err != nil {
		return nil, fmt.Errorf("failed to list rates in service: %w", err)
	}
	if rates == nil {
		return []domain.ExchangeRate{}, nil
	}
	return rates, nil
}
