package domain

// PaymentDetail records how money entered or left the account. The ledger
// only keeps its id; the detail itself is owned by the payment capture store.
type PaymentDetail struct {
	PaymentDetailID string  `json:"paymentDetailID"`
	PaymentTypeID   string  `json:"paymentTypeID"`
	AccountNumber   *string `json:"accountNumber,omitempty"`
	CheckNumber     *string `json:"checkNumber,omitempty"`
	RoutingCode     *string `json:"routingCode,omitempty"`
	ReceiptNumber   *string `json:"receiptNumber,omitempty"`
	BankNumber      *string `json:"bankNumber,omitempty"`
	AuditFields
}

// Changes lists the captured fields for the command result.
func (p PaymentDetail) Changes() map[string]any {
	changes := map[string]any{"paymentTypeId": p.PaymentTypeID}
	optional := map[string]*string{
		"accountNumber": p.AccountNumber,
		"checkNumber":   p.CheckNumber,
		"routingCode":   p.RoutingCode,
		"receiptNumber": p.ReceiptNumber,
		"bankNumber":    p.BankNumber,
	}
	for k, v := range optional {
		if v != nil {
			changes[k] = *v
		}
	}
	return changes
}

// CalendarSettings are the tenant switches consulted alongside the holiday
// and working day calendars.
type CalendarSettings struct {
	AllowTransactionsOnHoliday       bool `json:"allowTransactionsOnHoliday"`
	AllowTransactionsOnNonWorkingDay bool `json:"allowTransactionsOnNonWorkingDay"`
}
