package domain

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode  string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol        string `json:"symbol"`       // e.g., "$"
	Name          string `json:"name"`         // e.g., "US Dollar"
	Precision     int32  `json:"precision"`    // decimal places
	InMultiplesOf int32  `json:"inMultiplesOf"`
	AuditFields
}

// CurrencyData is the accounting metadata an account and its journal output carry.
type CurrencyData struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	DecimalPlaces int32  `json:"decimalPlaces"`
	InMultiplesOf int32  `json:"inMultiplesOf"`
	DisplaySymbol string `json:"displaySymbol"`
}

// Data projects a catalog currency to the metadata attached to ledger output.
func (c Currency) Data() CurrencyData {
	return CurrencyData{
		Code:          c.CurrencyCode,
		Name:          c.Name,
		DecimalPlaces: c.Precision,
		InMultiplesOf: c.InMultiplesOf,
		DisplaySymbol: c.Symbol,
	}
}
