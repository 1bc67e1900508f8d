package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores the conversion rate between two currencies for a
// specific calendar day. At most one rate exists per
// (base, target, rate date) triple; the schema enforces that.
type ExchangeRate struct {
	ExchangeRateID     string          `json:"exchangeRateID"`     // Primary Key (UUID)
	BaseCurrencyCode   string          `json:"baseCurrencyCode"`   // FK -> Currency.currencyCode
	TargetCurrencyCode string          `json:"targetCurrencyCode"` // FK -> Currency.currencyCode
	Rate               decimal.Decimal `json:"rate"`
	RateDate           time.Time       `json:"rateDate"` // day granularity, no time component
	AuditFields
}
