package models

// Currency represents a supported currency as persisted.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Name         string `json:"name"`         // e.g., "US Dollar"
	Symbol       string `json:"symbol"`       // e.g., "$"
	IsActive     bool   `json:"isActive"`
	AuditFields
}
