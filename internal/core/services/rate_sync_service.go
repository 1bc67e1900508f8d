package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/currency_converter_app/internal/apperrors"
	"github.com/SscSPs/currency_converter_app/internal/core/domain"
	"github.com/SscSPs/currency_converter_app/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/currency_converter_app/internal/core/ports/repositories"
	"github.com/google/uuid"
)

// RateSyncService pulls currency metadata and latest anchor-based rates from
// the upstream provider and reconciles them into local storage with
// create-or-update semantics. It runs as a single sequential pass; the
// uniqueness constraint on (base, target, rate date) is what protects two
// overlapping runs from creating duplicate rows for the same day.
type RateSyncService struct {
	provider     providers.RateProvider
	currencyRepo portsrepo.CurrencyRepositoryFacade
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	logger       *slog.Logger
}

// NewRateSyncService creates a new RateSyncService. A nil logger disables
// event logging.
func NewRateSyncService(
	provider providers.RateProvider,
	currencyRepo portsrepo.CurrencyRepositoryFacade,
	rateRepo portsrepo.ExchangeRateRepositoryFacade,
	logger *slog.Logger,
) *RateSyncService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &RateSyncService{
		provider:     provider,
		currencyRepo: currencyRepo,
		rateRepo:     rateRepo,
		logger:       logger,
	}
}

// SyncCurrencies fetches the full currency list from the provider and
// creates unknown currencies or updates name and symbol of known ones. The
// code is the immutable key and every fetched entry counts toward the
// result, created or updated alike. Re-running with identical upstream data
// changes nothing but reports the same count.
func (s *RateSyncService) SyncCurrencies(ctx context.Context) (int, error) {
	apiCurrencies, err := s.provider.FetchCurrencies(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	syncedCount := 0

	for _, apiCurrency := range apiCurrencies {
		code := strings.ToUpper(apiCurrency.Code)

		existing, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return 0, fmt.Errorf("failed to look up currency %s: %w", code, err)
		}

		var currency domain.Currency
		if existing == nil {
			currency = domain.Currency{
				CurrencyCode: code,
				Name:         apiCurrency.Name,
				Symbol:       apiCurrency.Symbol,
				IsActive:     true,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					LastUpdatedAt: now,
				},
			}
			s.logger.Debug("created currency", slog.String("code", code))
		} else {
			currency = *existing
			currency.Name = apiCurrency.Name
			currency.Symbol = apiCurrency.Symbol
			currency.LastUpdatedAt = now
			s.logger.Debug("updated currency", slog.String("code", code))
		}

		if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
			return 0, fmt.Errorf("failed to save currency %s: %w", code, err)
		}
		syncedCount++
	}

	s.logger.Info("currencies synced", slog.Int("count", syncedCount))
	return syncedCount, nil
}

// UpdateRates fetches the latest anchor-based rates for the active
// currencies and upserts one row per (anchor, target, today). The provider
// fetch strictly precedes any write, so a provider error leaves storage
// untouched. All touched rows commit as a single batch at the end.
//
// Returns 0 without error when no currencies are active or the anchor
// currency is not among them; both are configuration states the operator
// must resolve, not retryable failures.
func (s *RateSyncService) UpdateRates(ctx context.Context) (int, error) {
	activeCurrencies, err := s.currencyRepo.ListActiveCurrencies(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active currencies: %w", err)
	}
	if len(activeCurrencies) == 0 {
		s.logger.Warn("no active currencies found")
		return 0, nil
	}

	activeByCode := make(map[string]domain.Currency, len(activeCurrencies))
	currencyCodes := make([]string, 0, len(activeCurrencies))
	for _, currency := range activeCurrencies {
		activeByCode[currency.CurrencyCode] = currency
		currencyCodes = append(currencyCodes, currency.CurrencyCode)
	}

	if _, ok := activeByCode[anchorCurrencyCode]; !ok {
		s.logger.Error("anchor currency not found in active currencies", slog.String("anchor", anchorCurrencyCode))
		return 0, nil
	}

	rates, err := s.provider.FetchLatestRates(ctx, anchorCurrencyCode, currencyCodes)
	if err != nil {
		return 0, err
	}

	targetCodes := make([]string, 0, len(rates))
	for code := range rates {
		targetCodes = append(targetCodes, code)
	}
	sort.Strings(targetCodes)

	now := time.Now().UTC()
	today := dateOnly(now)
	batch := make([]domain.ExchangeRate, 0, len(targetCodes))
	savedCount := 0

	for _, targetCode := range targetCodes {
		if _, ok := activeByCode[targetCode]; !ok {
			continue
		}
		if targetCode == anchorCurrencyCode {
			continue
		}

		existing, err := s.rateRepo.FindRateForDate(ctx, anchorCurrencyCode, targetCode, today)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return 0, fmt.Errorf("failed to look up rate %s/%s: %w", anchorCurrencyCode, targetCode, err)
		}

		if existing != nil {
			updated := *existing
			updated.Rate = rates[targetCode]
			updated.LastUpdatedAt = now
			batch = append(batch, updated)
			s.logger.Debug("updated rate",
				slog.String("base", anchorCurrencyCode),
				slog.String("target", targetCode),
				slog.String("rate", updated.Rate.String()))
		} else {
			batch = append(batch, domain.ExchangeRate{
				ExchangeRateID:     uuid.NewString(),
				BaseCurrencyCode:   anchorCurrencyCode,
				TargetCurrencyCode: targetCode,
				Rate:               rates[targetCode],
				RateDate:           today,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					LastUpdatedAt: now,
				},
			})
			s.logger.Debug("created rate",
				slog.String("base", anchorCurrencyCode),
				slog.String("target", targetCode),
				slog.String("rate", rates[targetCode].String()))
		}
		savedCount++
	}

	if len(batch) > 0 {
		if err := s.rateRepo.SaveExchangeRates(ctx, batch); err != nil {
			return 0, fmt.Errorf("failed to save exchange rates: %w", err)
		}
	}

	s.logger.Info("exchange rates updated", slog.Int("count", savedCount))
	return savedCount, nil
}
