package domain

import "errors"

// ErrBridgeAlreadyEmitted is returned when a projector is asked for its delta twice.
var ErrBridgeAlreadyEmitted = errors.New("accounting bridge delta already emitted for this unit of work")

// AccountingBridgeDelta is what one unit of work changed in the ledger, for the
// journal subsystem. It is derived, never stored.
type AccountingBridgeDelta struct {
	SavingsAccountID     string
	ProductID            string
	OfficeID             string
	Currency             CurrencyData
	NewTransactions      []Transaction
	ReversedTransactions []Transaction
	// PenaltyCharges holds the ids of penalty charges referenced by transactions in the delta.
	PenaltyCharges map[string]bool
}

// IsEmpty reports whether the unit left the ledger unchanged.
func (d AccountingBridgeDelta) IsEmpty() bool {
	return len(d.NewTransactions) == 0 && len(d.ReversedTransactions) == 0
}

// BridgeProjector snapshots transaction ids at the start of a unit of work and
// diffs against them once at the end.
type BridgeProjector struct {
	existing map[string]struct{}
	reversed map[string]struct{}
	emitted  bool
}

// NewBridgeProjector takes the snapshot.
func NewBridgeProjector(a *SavingsAccount) *BridgeProjector {
	p := &BridgeProjector{
		existing: make(map[string]struct{}, len(a.Transactions)),
		reversed: make(map[string]struct{}),
	}
	for _, t := range a.Transactions {
		p.existing[t.TransactionID] = struct{}{}
		if t.IsReversed() {
			p.reversed[t.TransactionID] = struct{}{}
		}
	}
	return p
}

// Derive returns the delta. A transaction created and reversed inside the same
// unit appears in both lists. A projector emits only once.
func (p *BridgeProjector) Derive(a *SavingsAccount) (AccountingBridgeDelta, error) {
	if p.emitted {
		return AccountingBridgeDelta{}, ErrBridgeAlreadyEmitted
	}
	p.emitted = true

	delta := AccountingBridgeDelta{
		SavingsAccountID: a.AccountID,
		ProductID:        a.ProductID,
		OfficeID:         a.OfficeID,
		Currency:         a.Currency,
	}
	for _, t := range a.Transactions {
		if _, seen := p.existing[t.TransactionID]; !seen {
			delta.NewTransactions = append(delta.NewTransactions, t)
		}
		if _, was := p.reversed[t.TransactionID]; t.IsReversed() && !was {
			delta.ReversedTransactions = append(delta.ReversedTransactions, t)
		}
	}
	delta.markPenaltyCharges(a, delta.NewTransactions)
	delta.markPenaltyCharges(a, delta.ReversedTransactions)
	return delta, nil
}

func (d *AccountingBridgeDelta) markPenaltyCharges(a *SavingsAccount, txns []Transaction) {
	for _, t := range txns {
		if t.ChargeID == nil {
			continue
		}
		if c, ok := a.ChargeByID(*t.ChargeID); ok && c.Definition.Penalty {
			if d.PenaltyCharges == nil {
				d.PenaltyCharges = make(map[string]bool)
			}
			d.PenaltyCharges[c.ChargeID] = true
		}
	}
}
