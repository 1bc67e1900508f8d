package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/currency_converter_app/internal/core/domain"
	"github.com/SscSPs/currency_converter_app/internal/core/ports/providers"
	portssvc "github.com/SscSPs/currency_converter_app/internal/core/ports/services"
	"github.com/SscSPs/currency_converter_app/internal/core/services"
	"github.com/SscSPs/currency_converter_app/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RateProvider ---
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) FetchLatestRates(ctx context.Context, baseCode string, currencyCodes []string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, baseCode, currencyCodes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockRateProvider) FetchCurrencies(ctx context.Context) ([]providers.CurrencyData, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]providers.CurrencyData), args.Error(1)
}

// --- Test Suite ---
type RateSyncServiceTestSuite struct {
	suite.Suite
	mockProvider *MockRateProvider
	currencyRepo *memory.CurrencyRepository
	rateRepo     *memory.ExchangeRateRepository
	service      portssvc.RateSyncSvcFacade
}

func (suite *RateSyncServiceTestSuite) SetupTest() {
	suite.mockProvider = new(MockRateProvider)
	suite.currencyRepo = memory.NewCurrencyRepository()
	suite.rateRepo = memory.NewExchangeRateRepository()
	suite.service = services.NewRateSyncService(suite.mockProvider, suite.currencyRepo, suite.rateRepo, nil)
}

func (suite *RateSyncServiceTestSuite) seedCurrency(code, name string, active bool) {
	now := time.Now().UTC()
	err := suite.currencyRepo.SaveCurrency(context.Background(), domain.Currency{
		CurrencyCode: code,
		Name:         name,
		IsActive:     active,
		AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	})
	suite.Require().NoError(err)
}

// --- SyncCurrencies ---

func (suite *RateSyncServiceTestSuite) TestSyncCurrencies_CreatesAndUpdates() {
	ctx := context.Background()
	suite.seedCurrency("USD", "Dollar", true)

	suite.mockProvider.On("FetchCurrencies", ctx).Return([]providers.CurrencyData{
		{Code: "USD", Name: "US Dollar", Symbol: "$"},
		{Code: "EUR", Name: "Euro", Symbol: "€"},
	}, nil).Once()

	count, err := suite.service.SyncCurrencies(ctx)

	suite.Require().NoError(err)
	suite.Equal(2, count)

	usd, err := suite.currencyRepo.FindCurrencyByCode(ctx, "USD")
	suite.Require().NoError(err)
	suite.Equal("US Dollar", usd.Name)
	suite.Equal("$", usd.Symbol)

	eur, err := suite.currencyRepo.FindCurrencyByCode(ctx, "EUR")
	suite.Require().NoError(err)
	suite.True(eur.IsActive)
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *RateSyncServiceTestSuite) TestSyncCurrencies_Idempotent() {
	ctx := context.Background()
	upstream := []providers.CurrencyData{
		{Code: "USD", Name: "US Dollar", Symbol: "$"},
		{Code: "EUR", Name: "Euro", Symbol: "€"},
	}
	suite.mockProvider.On("FetchCurrencies", ctx).Return(upstream, nil).Twice()

	first, err := suite.service.SyncCurrencies(ctx)
	suite.Require().NoError(err)
	second, err := suite.service.SyncCurrencies(ctx)
	suite.Require().NoError(err)

	suite.Equal(first, second)
	suite.Equal(2, second)
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *RateSyncServiceTestSuite) TestSyncCurrencies_ProviderError() {
	ctx := context.Background()
	suite.mockProvider.On("FetchCurrencies", ctx).Return(nil, assert.AnError).Once()

	count, err := suite.service.SyncCurrencies(ctx)

	suite.Require().Error(err)
	suite.Zero(count)
}

// --- UpdateRates ---

func (suite *RateSyncServiceTestSuite) TestUpdateRates_CreatesRowsAndSkipsSilently() {
	ctx := context.Background()
	suite.seedCurrency("USD", "US Dollar", true)
	suite.seedCurrency("EUR", "Euro", true)
	suite.seedCurrency("RUB", "Russian Ruble", true)

	suite.mockProvider.On("FetchLatestRates", ctx, "USD", mock.MatchedBy(func(codes []string) bool {
		return len(codes) == 3
	})).Return(map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("0.92"),
		"RUB": decimal.RequireFromString("91.5"),
		// the anchor self-rate and unknown codes are skipped silently
		"USD": decimal.NewFromInt(1),
		"XXX": decimal.RequireFromString("5"),
	}, nil).Once()

	count, err := suite.service.UpdateRates(ctx)

	suite.Require().NoError(err)
	suite.Equal(2, count)
	suite.Equal(2, suite.rateRepo.Len())

	today := time.Now().UTC().Truncate(24 * time.Hour)
	eurRate, err := suite.rateRepo.FindRateForDate(ctx, "USD", "EUR", today)
	suite.Require().NoError(err)
	suite.True(eurRate.Rate.Equal(decimal.RequireFromString("0.92")))
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *RateSyncServiceTestSuite) TestUpdateRates_SecondRunUpdatesInPlace() {
	ctx := context.Background()
	suite.seedCurrency("USD", "US Dollar", true)
	suite.seedCurrency("EUR", "Euro", true)
	suite.seedCurrency("RUB", "Russian Ruble", true)

	suite.mockProvider.On("FetchLatestRates", ctx, "USD", mock.Anything).Return(map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("0.92"),
		"RUB": decimal.RequireFromString("91.5"),
	}, nil).Once()

	count, err := suite.service.UpdateRates(ctx)
	suite.Require().NoError(err)
	suite.Equal(2, count)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	original, err := suite.rateRepo.FindRateForDate(ctx, "USD", "EUR", today)
	suite.Require().NoError(err)

	suite.mockProvider.On("FetchLatestRates", ctx, "USD", mock.Anything).Return(map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("0.93"),
	}, nil).Once()

	count, err = suite.service.UpdateRates(ctx)
	suite.Require().NoError(err)
	suite.Equal(1, count)
	suite.Equal(2, suite.rateRepo.Len(), "no new row for the same day")

	updated, err := suite.rateRepo.FindRateForDate(ctx, "USD", "EUR", today)
	suite.Require().NoError(err)
	suite.True(updated.Rate.Equal(decimal.RequireFromString("0.93")))
	suite.Equal(original.ExchangeRateID, updated.ExchangeRateID)
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *RateSyncServiceTestSuite) TestUpdateRates_NoActiveCurrencies() {
	ctx := context.Background()

	count, err := suite.service.UpdateRates(ctx)

	suite.Require().NoError(err)
	suite.Zero(count)
	suite.mockProvider.AssertNotCalled(suite.T(), "FetchLatestRates")
}

func (suite *RateSyncServiceTestSuite) TestUpdateRates_AnchorMissing() {
	ctx := context.Background()
	suite.seedCurrency("EUR", "Euro", true)

	count, err := suite.service.UpdateRates(ctx)

	suite.Require().NoError(err)
	suite.Zero(count)
	suite.mockProvider.AssertNotCalled(suite.T(), "FetchLatestRates")
}

func (suite *RateSyncServiceTestSuite) TestUpdateRates_ProviderErrorWritesNothing() {
	ctx := context.Background()
	suite.seedCurrency("USD", "US Dollar", true)
	suite.seedCurrency("EUR", "Euro", true)

	suite.mockProvider.On("FetchLatestRates", ctx, "USD", mock.Anything).
		Return(nil, assert.AnError).Once()

	count, err := suite.service.UpdateRates(ctx)

	suite.Require().Error(err)
	suite.Zero(count)
	suite.Zero(suite.rateRepo.Len())
}

func TestRateSyncServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateSyncServiceTestSuite))
}
