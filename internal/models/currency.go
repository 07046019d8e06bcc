package models

// Currency represents a supported currency.
type Currency struct {
	CurrencyCode  string `db:"currency_code"` // Primary Key (e.g., "USD")
	Symbol        string `db:"symbol"`        // e.g., "$"
	Name          string `db:"name"`          // e.g., "US Dollar"
	Precision     int32  `db:"precision"`
	InMultiplesOf int32  `db:"in_multiples_of"`
	AuditFields
}
