package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/currency_converter_app/internal/apperrors"
	"github.com/SscSPs/currency_converter_app/internal/core/domain"
	portssvc "github.com/SscSPs/currency_converter_app/internal/core/ports/services"
	"github.com/SscSPs/currency_converter_app/internal/dto"
	"github.com/SscSPs/currency_converter_app/internal/handlers"
	"github.com/SscSPs/currency_converter_app/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ConverterService ---
type MockConverterService struct {
	mock.Mock
}

func (m *MockConverterService) Convert(ctx context.Context, amount, fromCode, toCode string, precision int32) (string, error) {
	args := m.Called(ctx, amount, fromCode, toCode, precision)
	return args.String(0), args.Error(1)
}

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListActiveCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) ListRatesForDate(ctx context.Context, date time.Time) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

// --- Mock RateSyncService ---
type MockRateSyncService struct {
	mock.Mock
}

func (m *MockRateSyncService) SyncCurrencies(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRateSyncService) UpdateRates(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

const testJWTSecret = "test-secret"

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockConverter *MockConverterService
	mockCurrency  *MockCurrencyService
	mockRates     *MockExchangeRateService
	mockRateSync  *MockRateSyncService
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.mockConverter = new(MockConverterService)
	suite.mockCurrency = new(MockCurrencyService)
	suite.mockRates = new(MockExchangeRateService)
	suite.mockRateSync = new(MockRateSyncService)

	cfg := &config.Config{
		JWTSecret:        testJWTSecret,
		ConvertRateLimit: "1000-M",
	}
	services := &portssvc.ServiceContainer{
		Currency:     suite.mockCurrency,
		Converter:    suite.mockConverter,
		ExchangeRate: suite.mockRates,
		RateSync:     suite.mockRateSync,
	}

	suite.router = gin.New()
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, cfg, services))
}

func (suite *HandlerTestSuite) perform(method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	suite.router.ServeHTTP(recorder, req)
	return recorder
}

func (suite *HandlerTestSuite) adminToken() string {
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	suite.Require().NoError(err)
	return token
}

// --- Convert ---

func (suite *HandlerTestSuite) TestConvert_Success() {
	suite.mockConverter.On("Convert", mock.Anything, "100", "USD", "EUR", int32(-1)).
		Return("92.00", nil).Once()

	recorder := suite.perform(http.MethodGet, "/api/v1/convert?amount=100&from=usd&to=eur", "")

	suite.Equal(http.StatusOK, recorder.Code)
	var resp dto.ConvertResponse
	suite.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &resp))
	suite.Equal("92.00", resp.Result)
	suite.Equal("USD", resp.From)
	suite.Equal("EUR", resp.To)
	suite.mockConverter.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestConvert_PrecisionPassedThrough() {
	suite.mockConverter.On("Convert", mock.Anything, "100", "USD", "EUR", int32(4)).
		Return("92.3456", nil).Once()

	recorder := suite.perform(http.MethodGet, "/api/v1/convert?amount=100&from=USD&to=EUR&precision=4", "")

	suite.Equal(http.StatusOK, recorder.Code)
	suite.mockConverter.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestConvert_MissingParams() {
	recorder := suite.perform(http.MethodGet, "/api/v1/convert?amount=100&from=USD", "")

	suite.Equal(http.StatusBadRequest, recorder.Code)
	suite.mockConverter.AssertNotCalled(suite.T(), "Convert")
}

func (suite *HandlerTestSuite) TestConvert_InvalidAmount() {
	suite.mockConverter.On("Convert", mock.Anything, "abc", "USD", "EUR", int32(-1)).
		Return("", apperrors.ErrInvalidAmount).Once()

	recorder := suite.perform(http.MethodGet, "/api/v1/convert?amount=abc&from=USD&to=EUR", "")

	suite.Equal(http.StatusBadRequest, recorder.Code)
}

func (suite *HandlerTestSuite) TestConvert_RateNotFound() {
	suite.mockConverter.On("Convert", mock.Anything, "100", "EUR", "GBP", int32(-1)).
		Return("", apperrors.ErrRateNotFound).Once()

	recorder := suite.perform(http.MethodGet, "/api/v1/convert?amount=100&from=EUR&to=GBP", "")

	suite.Equal(http.StatusNotFound, recorder.Code)
}

// --- Currencies ---

func (suite *HandlerTestSuite) TestListCurrencies_Success() {
	suite.mockCurrency.On("ListActiveCurrencies", mock.Anything).Return([]domain.Currency{
		{CurrencyCode: "EUR", Name: "Euro", IsActive: true},
		{CurrencyCode: "USD", Name: "US Dollar", IsActive: true},
	}, nil).Once()

	recorder := suite.perform(http.MethodGet, "/api/v1/currencies", "")

	suite.Equal(http.StatusOK, recorder.Code)
	var resp []dto.CurrencyResponse
	suite.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &resp))
	suite.Len(resp, 2)
	suite.Equal("EUR", resp[0].CurrencyCode)
}

func (suite *HandlerTestSuite) TestGetCurrency_NotFound() {
	suite.mockCurrency.On("GetCurrencyByCode", mock.Anything, "XXX").
		Return(nil, apperrors.ErrCurrencyNotFound).Once()

	recorder := suite.perform(http.MethodGet, "/api/v1/currencies/xxx", "")

	suite.Equal(http.StatusNotFound, recorder.Code)
}

// --- Rates ---

func (suite *HandlerTestSuite) TestListRates_InvalidDate() {
	recorder := suite.perform(http.MethodGet, "/api/v1/rates?date=27-08-2026", "")

	suite.Equal(http.StatusBadRequest, recorder.Code)
	suite.mockRates.AssertNotCalled(suite.T(), "ListRatesForDate")
}

func (suite *HandlerTestSuite) TestListRates_Success() {
	day := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
	suite.mockRates.On("ListRatesForDate", mock.Anything, day).
		Return([]domain.ExchangeRate{}, nil).Once()

	recorder := suite.perform(http.MethodGet, "/api/v1/rates?date=2026-08-27", "")

	suite.Equal(http.StatusOK, recorder.Code)
	suite.mockRates.AssertExpectations(suite.T())
}

// --- Admin sync ---

func (suite *HandlerTestSuite) TestUpdateRates_RequiresAuth() {
	recorder := suite.perform(http.MethodPost, "/api/v1/admin/rates/update", "")

	suite.Equal(http.StatusUnauthorized, recorder.Code)
	suite.mockRateSync.AssertNotCalled(suite.T(), "UpdateRates")
}

func (suite *HandlerTestSuite) TestUpdateRates_Success() {
	suite.mockRateSync.On("UpdateRates", mock.Anything).Return(2, nil).Once()

	recorder := suite.perform(http.MethodPost, "/api/v1/admin/rates/update", suite.adminToken())

	suite.Equal(http.StatusOK, recorder.Code)
	var resp dto.SyncResponse
	suite.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &resp))
	suite.Equal(2, resp.Count)
}

func (suite *HandlerTestSuite) TestSyncCurrencies_ProviderFailure() {
	suite.mockRateSync.On("SyncCurrencies", mock.Anything).
		Return(0, apperrors.ErrAPIRequestFailed).Once()

	recorder := suite.perform(http.MethodPost, "/api/v1/admin/currencies/sync", suite.adminToken())

	suite.Equal(http.StatusBadGateway, recorder.Code)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
