package services

import (
	"context"
	"time"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// HolidayCalendar answers holiday questions for charge and transaction dates.
type HolidayCalendar interface {
	IsHoliday(ctx context.Context, officeID string, date time.Time) (bool, error)
	IsTransactionAllowedOnHoliday(ctx context.Context) (bool, error)
}

// WorkingDayCalendar answers working day questions for charge and transaction dates.
type WorkingDayCalendar interface {
	IsWorkingDay(ctx context.Context, date time.Time) (bool, error)
	IsTransactionAllowedOnNonWorkingDay(ctx context.Context) (bool, error)
}

// PaymentInstrumentCapture stores a payment detail inside the unit of work and
// returns its reference plus the changes to report. A nil detail captures nothing.
type PaymentInstrumentCapture interface {
	CapturePaymentDetail(ctx context.Context, tx pgx.Tx, detail *domain.PaymentDetail) (*string, map[string]any, error)
}

// CurrencyCatalog resolves a currency code to its accounting metadata.
type CurrencyCatalog interface {
	CurrencyData(ctx context.Context, currencyCode string) (domain.CurrencyData, error)
}

// JournalSink consumes the accounting delta of one unit of work. An error
// aborts the unit.
type JournalSink interface {
	PostDelta(ctx context.Context, tx pgx.Tx, delta domain.AccountingBridgeDelta, pc domain.ProcessingContext) error
}

// ActivityGate reports whether the owners of an account are active.
type ActivityGate interface {
	IsClientActive(ctx context.Context, clientID string) (bool, error)
	IsGroupActive(ctx context.Context, groupID string) (bool, error)
}

// AccountLocker serializes commands against one account.
type AccountLocker interface {
	// Lock blocks until the account is held or ctx ends. The returned func releases it.
	Lock(ctx context.Context, accountID string) (func(context.Context) error, error)
}

// Clock supplies the wall clock and the tenant timezone the business date is taken in.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}
