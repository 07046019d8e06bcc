package dto

import (
	"time"

	"github.com/SscSPs/savings_ledger/internal/apperrors"
	"github.com/SscSPs/savings_ledger/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateFormat is the layout of every date field in savings account requests.
const DateFormat = time.DateOnly

// ParseDate parses a request date, reporting failures against parameter.
func ParseDate(parameter, value string) (time.Time, error) {
	d, err := time.Parse(DateFormat, value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(parameter, value, "must be a date in "+DateFormat+" format")
	}
	return d, nil
}

// ParseOptionalDate is ParseDate for optional fields.
func ParseOptionalDate(parameter string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	d, err := ParseDate(parameter, *value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// PaymentDetailRequest captures the payment instrument of a deposit, withdrawal or payout.
type PaymentDetailRequest struct {
	PaymentTypeID string  `json:"paymentTypeId" binding:"required"`
	AccountNumber *string `json:"accountNumber" binding:"omitempty,max=100"`
	CheckNumber   *string `json:"checkNumber" binding:"omitempty,max=100"`
	RoutingCode   *string `json:"routingCode" binding:"omitempty,max=100"`
	ReceiptNumber *string `json:"receiptNumber" binding:"omitempty,max=100"`
	BankNumber    *string `json:"bankNumber" binding:"omitempty,max=100"`
}

// ToPaymentDetail builds the domain payment detail with a fresh id.
func (r *PaymentDetailRequest) ToPaymentDetail(userID string, now time.Time) *domain.PaymentDetail {
	if r == nil {
		return nil
	}
	return &domain.PaymentDetail{
		PaymentDetailID: uuid.NewString(),
		PaymentTypeID:   r.PaymentTypeID,
		AccountNumber:   r.AccountNumber,
		CheckNumber:     r.CheckNumber,
		RoutingCode:     r.RoutingCode,
		ReceiptNumber:   r.ReceiptNumber,
		BankNumber:      r.BankNumber,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
}

// ActivateSavingsAccountRequest defines the data needed to activate an account.
type ActivateSavingsAccountRequest struct {
	ActivatedOnDate       string  `json:"activatedOnDate" binding:"required,datetime=2006-01-02"`
	TransferFromAccountID *string `json:"transferFromAccountId" binding:"omitempty,uuid"`
}

// SavingsTransactionRequest defines a deposit, or the replacement values of an adjustment.
type SavingsTransactionRequest struct {
	TransactionDate   string                `json:"transactionDate" binding:"required,datetime=2006-01-02"`
	TransactionAmount decimal.Decimal       `json:"transactionAmount"`
	Note              string                `json:"note" binding:"max=1000"`
	PaymentDetail     *PaymentDetailRequest `json:"paymentDetail"`
}

// SavingsWithdrawalRequest defines a withdrawal.
type SavingsWithdrawalRequest struct {
	SavingsTransactionRequest
	AllowOverdraft bool `json:"allowOverdraft"`
}

// UndoTransactionRequest defines an undo. The body is optional.
type UndoTransactionRequest struct {
	AllowTransferModification bool `json:"allowTransferModification"`
}

// PostInterestRequest defines an interest posting. The date defaults to the business date.
type PostInterestRequest struct {
	TransactionDate *string `json:"transactionDate" binding:"omitempty,datetime=2006-01-02"`
}

// CloseSavingsAccountRequest defines a closure or a premature closure.
type CloseSavingsAccountRequest struct {
	ClosedOnDate  string                `json:"closedOnDate" binding:"required,datetime=2006-01-02"`
	Note          string                `json:"note" binding:"max=1000"`
	PaymentDetail *PaymentDetailRequest `json:"paymentDetail"`
}

// AddChargeRequest attaches a charge from the catalog.
type AddChargeRequest struct {
	ChargeID string           `json:"chargeId" binding:"required"`
	DueDate  *string          `json:"dueDate" binding:"omitempty,datetime=2006-01-02"`
	Amount   *decimal.Decimal `json:"amount"`
}

// UpdateChargeRequest changes an unpaid charge. Omitted fields are left unchanged.
type UpdateChargeRequest struct {
	DueDate *string          `json:"dueDate" binding:"omitempty,datetime=2006-01-02"`
	Amount  *decimal.Decimal `json:"amount"`
}

// PayChargeRequest collects an amount against a charge.
type PayChargeRequest struct {
	TransactionDate string          `json:"transactionDate" binding:"required,datetime=2006-01-02"`
	Amount          decimal.Decimal `json:"amount"`
}

// TransferRequest defines initiate and withdraw transfer steps.
type TransferRequest struct {
	TransferDate string `json:"transferDate" binding:"required,datetime=2006-01-02"`
}

// AcceptTransferRequest completes a transfer into the destination office.
type AcceptTransferRequest struct {
	TransferDate        string  `json:"transferDate" binding:"required,datetime=2006-01-02"`
	DestinationOfficeID string  `json:"destinationOfficeId" binding:"required"`
	FieldOfficerID      *string `json:"fieldOfficerId"`
}

// ListTransactionsParams defines the query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// TransactionResponse defines the data returned for a savings transaction.
type TransactionResponse struct {
	TransactionID   string          `json:"transactionID"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate string          `json:"transactionDate"`
	RunningBalance  decimal.Decimal `json:"runningBalance"`
	Reversed        bool            `json:"reversed"`
	ReversedOn      *string         `json:"reversedOn,omitempty"`
	PaymentDetailID *string         `json:"paymentDetailID,omitempty"`
	ChargeID        *string         `json:"chargeID,omitempty"`
	TransferLinked  bool            `json:"transferLinked"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ChargeResponse defines the data returned for an account charge.
type ChargeResponse struct {
	ChargeID          string          `json:"chargeID"`
	ChargeDefinition  string          `json:"chargeDefinitionID"`
	Name              string          `json:"name"`
	TimeType          string          `json:"timeType"`
	Penalty           bool            `json:"penalty"`
	DueDate           *string         `json:"dueDate,omitempty"`
	InstallmentAmount decimal.Decimal `json:"installmentAmount"`
	Amount            decimal.Decimal `json:"amount"`
	AmountPaid        decimal.Decimal `json:"amountPaid"`
	AmountWaived      decimal.Decimal `json:"amountWaived"`
	AmountOutstanding decimal.Decimal `json:"amountOutstanding"`
	Active            bool            `json:"active"`
}

// SavingsAccountResponse defines the data returned for a savings account.
type SavingsAccountResponse struct {
	AccountID          string                `json:"accountID"`
	AccountNumber      string                `json:"accountNumber"`
	ProductID          string                `json:"productID"`
	DepositType        string                `json:"depositType"`
	Status             string                `json:"status"`
	OfficeID           string                `json:"officeID"`
	ClientID           *string               `json:"clientID,omitempty"`
	GroupID            *string               `json:"groupID,omitempty"`
	FieldOfficerID     *string               `json:"fieldOfficerID,omitempty"`
	Currency           domain.CurrencyData   `json:"currency"`
	ActivatedOn        *string               `json:"activatedOn,omitempty"`
	ClosedOn           *string               `json:"closedOn,omitempty"`
	MaturityDate       *string               `json:"maturityDate,omitempty"`
	InterestPostedTill *string               `json:"interestPostedTill,omitempty"`
	Summary            domain.AccountSummary `json:"summary"`
	Charges            []ChargeResponse      `json:"charges"`
	Version            int64                 `json:"version"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateFormat)
	return &s
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		Type:            string(txn.Type),
		Amount:          txn.Amount,
		TransactionDate: txn.TransactionDate.Format(DateFormat),
		RunningBalance:  txn.RunningBalance,
		Reversed:        txn.IsReversed(),
		ReversedOn:      formatDate(txn.ReversedOn),
		PaymentDetailID: txn.PaymentDetailID,
		ChargeID:        txn.ChargeID,
		TransferLinked:  txn.TransferLinked,
		CreatedAt:       txn.CreatedAt,
		CreatedBy:       txn.CreatedBy,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}

// ToChargeResponse converts a domain.Charge to ChargeResponse DTO.
func ToChargeResponse(c *domain.Charge) ChargeResponse {
	return ChargeResponse{
		ChargeID:          c.ChargeID,
		ChargeDefinition:  c.Definition.ChargeDefinitionID,
		Name:              c.Definition.Name,
		TimeType:          string(c.Definition.TimeType),
		Penalty:           c.Definition.Penalty,
		DueDate:           formatDate(c.DueDate),
		InstallmentAmount: c.InstallmentAmount,
		Amount:            c.Amount,
		AmountPaid:        c.AmountPaid,
		AmountWaived:      c.AmountWaived,
		AmountOutstanding: c.Outstanding(),
		Active:            c.Active,
	}
}

// ToSavingsAccountResponse converts a domain.SavingsAccount to SavingsAccountResponse DTO.
func ToSavingsAccountResponse(a *domain.SavingsAccount) SavingsAccountResponse {
	charges := make([]ChargeResponse, len(a.Charges))
	for i := range a.Charges {
		charges[i] = ToChargeResponse(&a.Charges[i])
	}
	return SavingsAccountResponse{
		AccountID:          a.AccountID,
		AccountNumber:      a.AccountNumber,
		ProductID:          a.ProductID,
		DepositType:        string(a.DepositType),
		Status:             string(a.Status),
		OfficeID:           a.OfficeID,
		ClientID:           a.ClientID,
		GroupID:            a.GroupID,
		FieldOfficerID:     a.FieldOfficerID,
		Currency:           a.Currency,
		ActivatedOn:        formatDate(a.ActivatedOn),
		ClosedOn:           formatDate(a.ClosedOn),
		MaturityDate:       formatDate(a.MaturityDate),
		InterestPostedTill: formatDate(a.InterestPostedTill),
		Summary:            a.Summary,
		Charges:            charges,
		Version:            a.Version,
	}
}
