package models

// PaymentDetail is a payment_details row.
type PaymentDetail struct {
	PaymentDetailID string  `db:"payment_detail_id"`
	PaymentTypeID   string  `db:"payment_type_id"`
	AccountNumber   *string `db:"account_number"`
	CheckNumber     *string `db:"check_number"`
	RoutingCode     *string `db:"routing_code"`
	ReceiptNumber   *string `db:"receipt_number"`
	BankNumber      *string `db:"bank_number"`
	AuditFields
}
