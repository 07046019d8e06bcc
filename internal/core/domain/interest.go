package domain

import (
	"slices"
	"time"

	"github.com/SscSPs/savings_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// PostingPeriodType is how often interest is committed to the ledger.
type PostingPeriodType string

const (
	PostingMonthly   PostingPeriodType = "MONTHLY"
	PostingQuarterly PostingPeriodType = "QUARTERLY"
	PostingBiAnnual  PostingPeriodType = "BIANNUAL"
	PostingAnnual    PostingPeriodType = "ANNUAL"
)

func (p PostingPeriodType) months() int {
	switch p {
	case PostingQuarterly:
		return 3
	case PostingBiAnnual:
		return 6
	case PostingAnnual:
		return 12
	default:
		return 1
	}
}

// periodEnd returns the calendar-aligned last day of the period containing d.
func (p PostingPeriodType) periodEnd(d time.Time) time.Time {
	months := p.months()
	endMonth := ((int(d.Month())-1)/months + 1) * months
	// day 0 of the following month is the last day of endMonth
	return time.Date(d.Year(), time.Month(endMonth+1), 0, 0, 0, 0, 0, time.UTC)
}

// PostingPeriod is one interval of the interest timeline. End is inclusive.
type PostingPeriod struct {
	Start    time.Time
	End      time.Time
	Complete bool
}

// PostingPeriods partitions the timeline from activation through the given
// date. A trailing partial period is included only when includePartial is set.
func (a *SavingsAccount) PostingPeriods(through time.Time, includePartial bool) []PostingPeriod {
	if a.ActivatedOn == nil {
		return nil
	}
	through = DateOf(through)
	var periods []PostingPeriod
	for start := *a.ActivatedOn; !start.After(through); {
		end := a.Interest.PostingPeriod.periodEnd(start)
		complete := true
		if end.After(through) {
			if !includePartial {
				break
			}
			end, complete = through, false
		}
		periods = append(periods, PostingPeriod{Start: start, End: end, Complete: complete})
		start = end.AddDate(0, 0, 1)
	}
	return periods
}

// dailyBalanceProduct sums end-of-day balance times days held over [start, end].
// An interest posting counts from the day after its date so a period's own
// posting never feeds its calculation. Negative balances earn nothing.
func (a *SavingsAccount) dailyBalanceProduct(start, end time.Time) decimal.Decimal {
	type change struct {
		on     time.Time
		amount decimal.Decimal
	}
	opening := decimal.Zero
	changes := make([]change, 0, len(a.Transactions))
	for _, t := range a.Transactions {
		amount := t.effect()
		if amount.IsZero() {
			continue
		}
		on := t.TransactionDate
		if t.Type == TxnInterestPosting {
			on = on.AddDate(0, 0, 1)
		}
		switch {
		case on.Before(start):
			opening = opening.Add(amount)
		case !on.After(end):
			changes = append(changes, change{on: on, amount: amount})
		}
	}
	slices.SortStableFunc(changes, func(x, y change) int { return x.on.Compare(y.on) })

	product := decimal.Zero
	balance := opening
	cursor := start
	for _, c := range changes {
		if c.on.After(cursor) {
			product = product.Add(nonNegative(balance).Mul(decimal.NewFromInt(daysBetween(cursor, c.on))))
			cursor = c.on
		}
		balance = balance.Add(c.amount)
	}
	return product.Add(nonNegative(balance).Mul(decimal.NewFromInt(daysBetween(cursor, end) + 1)))
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

const interestDivisionScale int32 = 30

// periodInterest applies the daily-product method: product * rate / daysInYear,
// rounded half-to-even to precision significant digits. The division keeps
// interestDivisionScale places so small amounts still carry enough digits.
func (a *SavingsAccount) periodInterest(p PostingPeriod, annualRatePercent decimal.Decimal, precision int32) decimal.Decimal {
	daysInYear := a.Interest.DaysInYear
	if daysInYear <= 0 {
		daysInYear = 365
	}
	raw := a.dailyBalanceProduct(p.Start, p.End).
		Mul(annualRatePercent).
		DivRound(decimal.NewFromInt(100*int64(daysInYear)), interestDivisionScale)
	return RoundSignificant(raw, precision)
}

func (a *SavingsAccount) rateFor(p PostingPeriod, premature *PrematureClosureTerms) decimal.Decimal {
	rate := a.Interest.NominalAnnualRate
	if premature == nil || p.Complete {
		return rate
	}
	if premature.WithholdInterest {
		return decimal.Zero
	}
	return nonNegative(rate.Sub(premature.PenalRate))
}

// IsBeforeLastPostingPeriod reports whether date falls inside a period whose
// interest has already been posted.
func (a *SavingsAccount) IsBeforeLastPostingPeriod(date time.Time) bool {
	return a.InterestPostedTill != nil && !DateOf(date).After(*a.InterestPostedTill)
}

// CalculateInterest refreshes the interest preview as of the business date.
func (a *SavingsAccount) CalculateInterest(pc ProcessingContext) (decimal.Decimal, error) {
	if err := a.requireStatus("calculateinterest", StatusActive); err != nil {
		return decimal.Zero, err
	}
	return a.CalculateInterestUsing(EphemeralPrecision, pc.Today), nil
}

// CalculateInterestUsing computes interest earned through asOf, including the
// current partial period, and stores it on the summary. Nothing is posted.
func (a *SavingsAccount) CalculateInterestUsing(precision int32, asOf time.Time) decimal.Decimal {
	asOf = DateOf(asOf)
	total := decimal.Zero
	for _, p := range a.PostingPeriods(asOf, true) {
		total = total.Add(a.periodInterest(p, a.Interest.NominalAnnualRate, precision))
	}
	total = total.RoundBank(a.Currency.DecimalPlaces)
	a.Summary.TotalInterestEarned = total
	a.Summary.InterestCalculatedAsOf = &asOf
	return total
}

// PostInterest commits interest for every complete posting period ending on
// or before asOf. Posting the same periods again is a no-op.
func (a *SavingsAccount) PostInterest(pc ProcessingContext, asOf time.Time) error {
	if err := a.requireStatus("postinterest", StatusActive); err != nil {
		return err
	}
	asOf = DateOf(asOf)
	if asOf.After(pc.Today) {
		return apperrors.NewValidationError("transactionDate", asOf.Format(time.DateOnly), "cannot be in the future")
	}
	a.postInterest(pc, CommitPrecision, asOf, false, nil)
	a.touch(pc)
	a.CalculateInterestUsing(EphemeralPrecision, pc.Today)
	return a.validateBalance("interest posting")
}

// postInterest walks the periods in order. For each one it keeps an equal
// existing posting, replaces a different one, drops one that became zero, or
// posts a new one. Later periods see the corrected postings of earlier ones.
func (a *SavingsAccount) postInterest(pc ProcessingContext, precision int32, through time.Time, includePartial bool, premature *PrematureClosureTerms) {
	var postedTill *time.Time
	for _, p := range a.PostingPeriods(through, includePartial) {
		amount := a.periodInterest(p, a.rateFor(p, premature), precision).RoundBank(a.Currency.DecimalPlaces)
		a.reconcileInterestPosting(pc, p.End, amount)
		end := p.End
		postedTill = &end
	}
	if postedTill != nil && (a.InterestPostedTill == nil || postedTill.After(*a.InterestPostedTill)) {
		a.InterestPostedTill = postedTill
	}
}

func (a *SavingsAccount) reconcileInterestPosting(pc ProcessingContext, on time.Time, amount decimal.Decimal) {
	idx := slices.IndexFunc(a.Transactions, func(t Transaction) bool {
		return t.Type == TxnInterestPosting && !t.IsReversed() && t.TransactionDate.Equal(on)
	})
	if idx >= 0 {
		if a.Transactions[idx].Amount.Equal(amount) {
			return
		}
		_ = a.Transactions[idx].reverse(pc)
		a.recalculateRunningBalancesFrom(idx)
	}
	if amount.IsPositive() {
		a.appendTransaction(pc, TxnInterestPosting, on, amount, appendOptions{})
	}
}

// recomputeInterest is the dispatch every history-changing operation runs:
// a full posting pass if any touched date is inside an already posted period,
// otherwise only the preview.
func (a *SavingsAccount) recomputeInterest(pc ProcessingContext, dates ...time.Time) {
	for _, d := range dates {
		if a.IsBeforeLastPostingPeriod(d) {
			a.postInterest(pc, CommitPrecision, pc.Today, false, nil)
			break
		}
	}
	a.CalculateInterestUsing(EphemeralPrecision, pc.Today)
}

// UpdateMaturityDetails matures a term deposit whose maturity date has passed:
// interest is posted through maturity and the account becomes MATURED.
// It reports whether the account matured.
func (a *SavingsAccount) UpdateMaturityDetails(pc ProcessingContext) (bool, error) {
	if !a.DepositType.IsTermDeposit() || a.MaturityDate == nil {
		return false, apperrors.NewValidationError("depositType", string(a.DepositType), "account has no maturity date")
	}
	if err := a.requireStatus("maturity", StatusActive); err != nil {
		return false, err
	}
	if a.MaturityDate.After(pc.Today) {
		return false, nil
	}
	a.postInterest(pc, CommitPrecision, *a.MaturityDate, true, nil)
	a.Status = StatusMatured
	a.touch(pc)
	a.CalculateInterestUsing(EphemeralPrecision, *a.MaturityDate)
	return true, a.validateBalance("maturity")
}
