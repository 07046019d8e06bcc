package accounting

import (
	"errors"
	"fmt"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrJournalUnbalanced = errors.New("journal lines do not balance")
	ErrJournalMinLines   = errors.New("journal must have at least two lines")
)

// CalculateSignedAmount applies the correct sign to a journal line amount based on GL account type and entry type.
// The result is the line's effect on the GL account's natural balance.
func CalculateSignedAmount(line domain.JournalLine) (decimal.Decimal, error) {
	signedAmount := line.Amount
	isDebit := line.EntryType == domain.Debit

	// DEBIT to ASSET/EXPENSE -> Positive (+)
	// CREDIT to ASSET/EXPENSE -> Negative (-)
	// DEBIT to LIABILITY/EQUITY/INCOME -> Negative (-)
	// CREDIT to LIABILITY/EQUITY/INCOME -> Positive (+)
	switch line.GLAccountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			signedAmount = signedAmount.Neg()
		}
	case domain.Liability, domain.Equity, domain.Income:
		if isDebit {
			signedAmount = signedAmount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown GL account type '%s' encountered for GL account %s", line.GLAccountType, line.GLAccountID)
	}
	return signedAmount, nil
}

// ValidateJournalBalance checks that a journal has positive lines whose debits equal its credits.
func ValidateJournalBalance(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return ErrJournalMinLines
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		if !line.Amount.IsPositive() {
			return fmt.Errorf("journal line amount must be positive for savings transaction %s", line.SavingsTransactionID)
		}
		if _, err := CalculateSignedAmount(line); err != nil {
			return err
		}
		if line.EntryType == domain.Debit {
			debits = debits.Add(line.Amount)
		} else {
			credits = credits.Add(line.Amount)
		}
	}

	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits sum is %s and credits sum is %s", ErrJournalUnbalanced, debits.String(), credits.String())
	}
	return nil
}
