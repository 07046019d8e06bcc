package domain

import (
	"slices"
	"time"

	"github.com/SscSPs/savings_ledger/internal/apperrors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultMaxChargeCatchUpPeriods bounds ApplyChargeDue when the caller passes no limit.
const DefaultMaxChargeCatchUpPeriods = 120

// ChargeTimeType says when a charge falls due.
type ChargeTimeType string

const (
	ChargeSpecifiedDueDate  ChargeTimeType = "SPECIFIED_DUE_DATE"
	ChargeSavingsActivation ChargeTimeType = "SAVINGS_ACTIVATION"
	ChargeWithdrawalFee     ChargeTimeType = "WITHDRAWAL_FEE"
	ChargeAnnualFee         ChargeTimeType = "ANNUAL_FEE"
	ChargeMonthlyFee        ChargeTimeType = "MONTHLY_FEE"
)

// IsPeriodic reports whether the charge recurs on a schedule.
func (t ChargeTimeType) IsPeriodic() bool {
	return t == ChargeAnnualFee || t == ChargeMonthlyFee
}

func (t ChargeTimeType) requiresDueDate() bool {
	return t == ChargeSpecifiedDueDate || t.IsPeriodic()
}

// ChargeCalculationType says how the charge amount is derived.
type ChargeCalculationType string

const (
	ChargeFlat            ChargeCalculationType = "FLAT"
	ChargePercentOfAmount ChargeCalculationType = "PERCENT_OF_AMOUNT"
)

// ChargeDefinition is a catalog entry. Accounts keep a snapshot of it.
type ChargeDefinition struct {
	ChargeDefinitionID string                `json:"chargeDefinitionID"`
	Name               string                `json:"name"`
	CurrencyCode       string                `json:"currencyCode"`
	TimeType           ChargeTimeType        `json:"timeType"`
	CalculationType    ChargeCalculationType `json:"calculationType"`
	Amount             decimal.Decimal       `json:"amount"`
	Penalty            bool                  `json:"penalty"`
	FeeInterval        int                   `json:"feeInterval"` // months for MONTHLY_FEE, years for ANNUAL_FEE
	Active             bool                  `json:"active"`
}

// Charge is a fee or penalty attached to one account. Amount accumulates every
// installment raised so far, so Amount == AmountPaid + AmountWaived + Outstanding.
type Charge struct {
	ChargeID          string           `json:"chargeID"`
	SavingsAccountID  string           `json:"savingsAccountID"`
	Definition        ChargeDefinition `json:"definition"`
	DueDate           *time.Time       `json:"dueDate,omitempty"`
	InstallmentAmount decimal.Decimal  `json:"installmentAmount"`
	Amount            decimal.Decimal  `json:"amount"`
	AmountPaid        decimal.Decimal  `json:"amountPaid"`
	AmountWaived      decimal.Decimal  `json:"amountWaived"`
	Active            bool             `json:"active"`
	AuditFields
}

// Outstanding is what is still owed on the current installment.
func (c Charge) Outstanding() decimal.Decimal {
	return c.Amount.Sub(c.AmountPaid).Sub(c.AmountWaived)
}

func (c Charge) interval() (years, months int) {
	n := c.Definition.FeeInterval
	if n <= 0 {
		n = 1
	}
	if c.Definition.TimeType == ChargeAnnualFee {
		return n, 0
	}
	return 0, n
}

// advance raises the next installment of a periodic charge.
func (c *Charge) advance(pc ProcessingContext) {
	if c.DueDate == nil {
		return
	}
	years, months := c.interval()
	next := addMonthsClamped(*c.DueDate, years*12+months)
	c.DueDate = &next
	c.Amount = c.Amount.Add(c.InstallmentAmount)
	c.LastUpdatedAt = pc.Now
	c.LastUpdatedBy = pc.UserID
}

// stepBack undoes advance when the current installment is untouched.
func (c *Charge) stepBack() bool {
	if c.DueDate == nil || !c.Outstanding().Equal(c.InstallmentAmount) || c.Amount.LessThan(c.InstallmentAmount.Mul(decimal.NewFromInt(2))) {
		return false
	}
	years, months := c.interval()
	prev := addMonthsClamped(*c.DueDate, -(years*12 + months))
	c.DueDate = &prev
	c.Amount = c.Amount.Sub(c.InstallmentAmount)
	return true
}

// addMonthsClamped moves d by n months, keeping the day of month where the
// target month is long enough and using its last day otherwise.
func addMonthsClamped(d time.Time, n int) time.Time {
	first := time.Date(d.Year(), d.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	day := d.Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// AddChargeCommand attaches a charge definition to an account.
type AddChargeCommand struct {
	Definition ChargeDefinition
	DueDate    *time.Time
	Amount     *decimal.Decimal
}

// FindCharge returns the index of the charge with the given id or -1.
func (a *SavingsAccount) FindCharge(chargeID string) int {
	return slices.IndexFunc(a.Charges, func(c Charge) bool { return c.ChargeID == chargeID })
}

// ChargeByID returns a copy of the charge with the given id.
func (a *SavingsAccount) ChargeByID(chargeID string) (Charge, bool) {
	idx := a.FindCharge(chargeID)
	if idx < 0 {
		return Charge{}, false
	}
	return a.Charges[idx], true
}

func (a *SavingsAccount) requireMutable(action string) error {
	if a.Status.IsTerminal() {
		return a.requireStatus(action)
	}
	return nil
}

// AddCharge attaches a charge. Calendar checks on the due date are done by the
// caller, which owns the calendars. An activation fee added to an already
// active account is collected immediately.
func (a *SavingsAccount) AddCharge(pc ProcessingContext, cmd AddChargeCommand) (Charge, error) {
	if err := a.requireMutable("addcharge"); err != nil {
		return Charge{}, err
	}
	def := cmd.Definition
	if !def.Active {
		return Charge{}, apperrors.NewValidationError("chargeId", def.ChargeDefinitionID, "charge definition is inactive")
	}
	amount := def.Amount
	if cmd.Amount != nil {
		amount = *cmd.Amount
	}
	// charges are collected from the balance, so both must share a currency
	if _, err := a.BalanceMoney().Sub(NewMoney(amount, def.CurrencyCode)); err != nil {
		return Charge{}, err
	}
	if !amount.IsPositive() {
		return Charge{}, apperrors.NewValidationError("amount", amount.String(), "must be greater than zero")
	}

	var due *time.Time
	switch {
	case def.TimeType.requiresDueDate():
		if cmd.DueDate == nil {
			return Charge{}, apperrors.NewValidationError("dueDate", nil, "is required for "+string(def.TimeType)+" charges")
		}
		d := DateOf(*cmd.DueDate)
		if a.ActivatedOn != nil && d.Before(*a.ActivatedOn) {
			return Charge{}, apperrors.NewValidationError("dueDate", d.Format(time.DateOnly), "cannot be before the activation date")
		}
		due = &d
	case cmd.DueDate != nil:
		return Charge{}, apperrors.NewValidationError("dueDate", cmd.DueDate.Format(time.DateOnly), "is not applicable to "+string(def.TimeType)+" charges")
	}

	if def.TimeType == ChargeSavingsActivation || def.TimeType == ChargeWithdrawalFee {
		dup := slices.ContainsFunc(a.Charges, func(c Charge) bool {
			return c.Active && c.Definition.ChargeDefinitionID == def.ChargeDefinitionID
		})
		if dup {
			return Charge{}, apperrors.NewConflictError(def.ChargeDefinitionID, "error.msg.savings.account.duplicate.charge", "charge is already attached to the account")
		}
	}

	charge := Charge{
		ChargeID:          uuid.NewString(),
		SavingsAccountID:  a.AccountID,
		Definition:        def,
		DueDate:           due,
		InstallmentAmount: amount,
		Amount:            amount,
		Active:            true,
		AuditFields:       pc.audit(),
	}
	if def.TimeType == ChargeWithdrawalFee {
		// raised per withdrawal
		charge.Amount = decimal.Zero
	}
	a.Charges = append(a.Charges, charge)
	idx := len(a.Charges) - 1
	a.touch(pc)

	if def.TimeType == ChargeSavingsActivation && a.Status == StatusActive {
		a.payChargeAt(pc, idx, pc.Today, amount)
		a.recomputeInterest(pc, pc.Today)
		if err := a.validateBalance("charge collection"); err != nil {
			return Charge{}, err
		}
	}
	return a.Charges[idx], nil
}

// UpdateCharge changes the amount or due date of a charge nothing has been paid or waived on.
func (a *SavingsAccount) UpdateCharge(pc ProcessingContext, chargeID string, dueDate *time.Time, amount *decimal.Decimal) (Charge, error) {
	if err := a.requireMutable("updatecharge"); err != nil {
		return Charge{}, err
	}
	idx := a.FindCharge(chargeID)
	if idx < 0 {
		return Charge{}, apperrors.NewNotFoundError("savingsaccount.charge", chargeID)
	}
	c := &a.Charges[idx]
	if c.AmountPaid.IsPositive() || c.AmountWaived.IsPositive() {
		return Charge{}, apperrors.NewConflictError(chargeID, "error.msg.savings.account.charge.update.not.allowed", "charge has payments or waivers recorded")
	}
	if amount != nil {
		if !amount.IsPositive() {
			return Charge{}, apperrors.NewValidationError("amount", amount.String(), "must be greater than zero")
		}
		c.InstallmentAmount = *amount
		if c.Definition.TimeType != ChargeWithdrawalFee {
			c.Amount = *amount
		}
	}
	if dueDate != nil {
		if !c.Definition.TimeType.requiresDueDate() {
			return Charge{}, apperrors.NewValidationError("dueDate", dueDate.Format(time.DateOnly), "is not applicable to "+string(c.Definition.TimeType)+" charges")
		}
		d := DateOf(*dueDate)
		if a.ActivatedOn != nil && d.Before(*a.ActivatedOn) {
			return Charge{}, apperrors.NewValidationError("dueDate", d.Format(time.DateOnly), "cannot be before the activation date")
		}
		c.DueDate = &d
	}
	c.LastUpdatedAt = pc.Now
	c.LastUpdatedBy = pc.UserID
	a.touch(pc)
	return *c, nil
}

// PayCharge collects amount against a charge. Paying more than is outstanding is rejected.
func (a *SavingsAccount) PayCharge(pc ProcessingContext, chargeID string, date time.Time, amount decimal.Decimal) (Transaction, error) {
	if err := a.requireStatus("paycharge", StatusActive); err != nil {
		return Transaction{}, err
	}
	idx := a.FindCharge(chargeID)
	if idx < 0 {
		return Transaction{}, apperrors.NewNotFoundError("savingsaccount.charge", chargeID)
	}
	c := a.Charges[idx]
	if !c.Active {
		return Transaction{}, apperrors.NewValidationError("chargeId", chargeID, "charge is inactive")
	}
	if !amount.IsPositive() {
		return Transaction{}, apperrors.NewValidationError("amount", amount.String(), "must be greater than zero")
	}
	if amount.GreaterThan(c.Outstanding()) {
		return Transaction{}, apperrors.NewValidationError("amount", amount.String(), "exceeds the outstanding amount "+c.Outstanding().String())
	}
	if err := a.validateTransactionDate(pc, "transactionDate", date); err != nil {
		return Transaction{}, err
	}

	txn := a.payChargeAt(pc, idx, date, amount)
	a.touch(pc)

	a.recomputeInterest(pc, txn.TransactionDate)
	if err := a.validateBalance("charge payment"); err != nil {
		return Transaction{}, err
	}
	return a.mustTransaction(txn.TransactionID), nil
}

// payChargeAt records the payment and its transaction. A periodic charge whose
// installment is now settled moves on to its next due date.
func (a *SavingsAccount) payChargeAt(pc ProcessingContext, idx int, date time.Time, amount decimal.Decimal) Transaction {
	c := &a.Charges[idx]
	c.AmountPaid = c.AmountPaid.Add(amount)
	c.LastUpdatedAt = pc.Now
	c.LastUpdatedBy = pc.UserID
	chargeID := c.ChargeID

	txn := a.appendTransaction(pc, TxnPayCharge, date, amount, appendOptions{chargeID: &chargeID})
	if c.Definition.TimeType.IsPeriodic() && c.Outstanding().IsZero() {
		c.advance(pc)
	}
	return txn
}

// WaiveCharge forgives the outstanding amount. No transaction is recorded.
func (a *SavingsAccount) WaiveCharge(pc ProcessingContext, chargeID string) (Charge, error) {
	if err := a.requireStatus("waivecharge", StatusActive); err != nil {
		return Charge{}, err
	}
	idx := a.FindCharge(chargeID)
	if idx < 0 {
		return Charge{}, apperrors.NewNotFoundError("savingsaccount.charge", chargeID)
	}
	c := &a.Charges[idx]
	outstanding := c.Outstanding()
	if !outstanding.IsPositive() {
		return Charge{}, apperrors.NewValidationError("chargeId", chargeID, "charge has nothing outstanding to waive")
	}
	dueDate := pc.Today
	if c.DueDate != nil {
		dueDate = *c.DueDate
	}
	c.AmountWaived = c.AmountWaived.Add(outstanding)
	c.LastUpdatedAt = pc.Now
	c.LastUpdatedBy = pc.UserID
	if c.Definition.TimeType.IsPeriodic() {
		c.advance(pc)
	}
	waived := *c
	a.touch(pc)

	a.recomputeInterest(pc, dueDate)
	if err := a.validateBalance("charge waiver"); err != nil {
		return Charge{}, err
	}
	return waived, nil
}

// RemoveCharge detaches a charge that has never been paid.
func (a *SavingsAccount) RemoveCharge(pc ProcessingContext, chargeID string) error {
	if err := a.requireMutable("removecharge"); err != nil {
		return err
	}
	idx := a.FindCharge(chargeID)
	if idx < 0 {
		return apperrors.NewNotFoundError("savingsaccount.charge", chargeID)
	}
	if a.Charges[idx].AmountPaid.IsPositive() {
		return apperrors.NewConflictError(chargeID, "error.msg.savings.account.charge.delete.not.allowed.once.paid", "charge has payments recorded")
	}
	a.Charges = slices.Delete(a.Charges, idx, idx+1)
	a.touch(pc)
	return nil
}

// ApplyChargeDue collects every missed installment of a periodic charge on the
// business date, until the due date is no longer in the past. At most
// maxPeriods installments are collected per call.
func (a *SavingsAccount) ApplyChargeDue(pc ProcessingContext, chargeID string, maxPeriods int) ([]Transaction, error) {
	if err := a.requireStatus("applychargedue", StatusActive); err != nil {
		return nil, err
	}
	idx := a.FindCharge(chargeID)
	if idx < 0 {
		return nil, apperrors.NewNotFoundError("savingsaccount.charge", chargeID)
	}
	c := a.Charges[idx]
	if !c.Active || !c.Definition.TimeType.IsPeriodic() || c.DueDate == nil {
		return nil, apperrors.NewValidationError("chargeId", chargeID, "charge is not an active periodic charge")
	}
	if maxPeriods <= 0 {
		maxPeriods = DefaultMaxChargeCatchUpPeriods
	}

	var collected []Transaction
	for n := 0; n < maxPeriods; n++ {
		cur := a.Charges[idx]
		if !pc.Today.After(*cur.DueDate) {
			break
		}
		outstanding := cur.Outstanding()
		if !outstanding.IsPositive() {
			a.Charges[idx].advance(pc)
			continue
		}
		collected = append(collected, a.payChargeAt(pc, idx, pc.Today, outstanding))
	}
	a.touch(pc)

	a.recomputeInterest(pc, pc.Today)
	if err := a.validateBalance("charge collection"); err != nil {
		return nil, err
	}
	for i := range collected {
		collected[i] = a.mustTransaction(collected[i].TransactionID)
	}
	return collected, nil
}

func (a *SavingsAccount) collectActivationCharges(pc ProcessingContext, date time.Time) {
	for i := range a.Charges {
		c := a.Charges[i]
		if c.Active && c.Definition.TimeType == ChargeSavingsActivation && c.Outstanding().IsPositive() {
			a.payChargeAt(pc, i, date, c.Outstanding())
		}
	}
}

func (a *SavingsAccount) applyWithdrawalFees(pc ProcessingContext, date time.Time, withdrawn decimal.Decimal) {
	for i := range a.Charges {
		c := a.Charges[i]
		if !c.Active || c.Definition.TimeType != ChargeWithdrawalFee {
			continue
		}
		fee := c.InstallmentAmount
		if c.Definition.CalculationType == ChargePercentOfAmount {
			fee = withdrawn.Mul(c.InstallmentAmount).Div(decimal.NewFromInt(100))
		}
		fee = fee.RoundBank(a.Currency.DecimalPlaces)
		if !fee.IsPositive() {
			continue
		}
		a.Charges[i].Amount = a.Charges[i].Amount.Add(fee)
		a.payChargeAt(pc, i, date, fee)
	}
}

// restoreChargePayment puts a reversed payment back on the charge it paid.
func (a *SavingsAccount) restoreChargePayment(pc ProcessingContext, t Transaction) {
	if t.ChargeID == nil {
		return
	}
	idx := a.FindCharge(*t.ChargeID)
	if idx < 0 {
		return
	}
	c := &a.Charges[idx]
	if c.Definition.TimeType.IsPeriodic() {
		c.stepBack()
	}
	c.AmountPaid = c.AmountPaid.Sub(t.Amount)
	c.LastUpdatedAt = pc.Now
	c.LastUpdatedBy = pc.UserID
}
