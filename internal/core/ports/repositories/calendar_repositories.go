package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
)

// CalendarReader defines read operations for holidays and working days
type CalendarReader interface {
	// IsHoliday reports whether date is an active holiday for the office.
	IsHoliday(ctx context.Context, officeID string, date time.Time) (bool, error)

	// IsWorkingDay reports whether date falls on a configured working weekday.
	IsWorkingDay(ctx context.Context, date time.Time) (bool, error)

	// GetCalendarSettings retrieves the tenant's calendar switches.
	GetCalendarSettings(ctx context.Context) (domain.CalendarSettings, error)
}
