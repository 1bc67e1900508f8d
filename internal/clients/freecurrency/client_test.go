package freecurrency_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/currency_converter_app/internal/apperrors"
	"github.com/SscSPs/currency_converter_app/internal/clients/freecurrency"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ClientTestSuite struct {
	suite.Suite
}

func (suite *ClientTestSuite) newServer(handler http.HandlerFunc) (*httptest.Server, *freecurrency.Client) {
	server := httptest.NewServer(handler)
	suite.T().Cleanup(server.Close)
	return server, freecurrency.New(server.URL, "test-key", 5*time.Second)
}

func (suite *ClientTestSuite) TestFetchLatestRates_Success() {
	var gotQuery map[string]string
	_, client := suite.newServer(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"apikey":        r.URL.Query().Get("apikey"),
			"base_currency": r.URL.Query().Get("base_currency"),
			"currencies":    r.URL.Query().Get("currencies"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"EUR": 0.92, "RUB": 91.5}}`))
	})

	rates, err := client.FetchLatestRates(context.Background(), "usd", []string{"eur", "rub"})

	suite.Require().NoError(err)
	suite.Equal("test-key", gotQuery["apikey"])
	suite.Equal("USD", gotQuery["base_currency"])
	suite.Equal("EUR,RUB", gotQuery["currencies"])
	suite.Len(rates, 2)
	suite.True(rates["EUR"].Equal(decimal.RequireFromString("0.92")))
	suite.True(rates["RUB"].Equal(decimal.RequireFromString("91.5")))
}

func (suite *ClientTestSuite) TestFetchLatestRates_MissingDataField() {
	_, client := suite.newServer(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": "ok"}`))
	})

	_, err := client.FetchLatestRates(context.Background(), "USD", nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAPIInvalidResponse)
}

func (suite *ClientTestSuite) TestFetchLatestRates_MalformedPayload() {
	_, client := suite.newServer(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := client.FetchLatestRates(context.Background(), "USD", nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAPIInvalidResponse)
}

func (suite *ClientTestSuite) TestFetchLatestRates_HTTPErrorStatus() {
	_, client := suite.newServer(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.FetchLatestRates(context.Background(), "USD", nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAPIRequestFailed)
}

func (suite *ClientTestSuite) TestFetchCurrencies_Success() {
	_, client := suite.newServer(func(w http.ResponseWriter, r *http.Request) {
		suite.Equal("/currencies", r.URL.Path)
		w.Write([]byte(`{"data": {"usd": {"name": "US Dollar", "symbol": "$"}, "eur": {"name": "Euro", "symbol": "€"}}}`))
	})

	currencies, err := client.FetchCurrencies(context.Background())

	suite.Require().NoError(err)
	suite.Len(currencies, 2)
	byCode := map[string]string{}
	for _, currency := range currencies {
		byCode[currency.Code] = currency.Name
	}
	suite.Equal("US Dollar", byCode["USD"])
	suite.Equal("Euro", byCode["EUR"])
}

func (suite *ClientTestSuite) TestFetchCurrencies_ConnectionError() {
	server, client := suite.newServer(func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := client.FetchCurrencies(context.Background())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAPIRequestFailed)
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}
