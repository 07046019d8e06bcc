package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_ledger/internal/core/ports/repositories"
)

// SQLCalendarRepository reads holidays, working days and calendar settings.
// It runs on database/sql over the pgx stdlib driver; the calendar tables are
// read-only reference data and never join a savings unit of work.
type SQLCalendarRepository struct {
	db *sql.DB
}

// NewSQLCalendarRepository creates a calendar reader over db.
func NewSQLCalendarRepository(db *sql.DB) *SQLCalendarRepository {
	return &SQLCalendarRepository{db: db}
}

var _ portsrepo.CalendarReader = (*SQLCalendarRepository)(nil)

// IsHoliday reports whether date falls inside an active holiday of the office.
func (r *SQLCalendarRepository) IsHoliday(ctx context.Context, officeID string, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM holidays
			WHERE office_id = $1 AND $2 BETWEEN from_date AND to_date AND active
		);
	`
	var holiday bool
	if err := r.db.QueryRowContext(ctx, query, officeID, domain.DateOf(date)).Scan(&holiday); err != nil {
		return false, fmt.Errorf("failed to check holidays for office %s: %w", officeID, err)
	}
	return holiday, nil
}

// IsWorkingDay reports whether the weekday of date is configured as working.
// Weekdays without a row count as working days.
func (r *SQLCalendarRepository) IsWorkingDay(ctx context.Context, date time.Time) (bool, error) {
	query := `SELECT is_working FROM working_days WHERE weekday = $1;`
	var working bool
	err := r.db.QueryRowContext(ctx, query, int(date.Weekday())).Scan(&working)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return true, nil
		}
		return false, fmt.Errorf("failed to read working day %s: %w", date.Weekday(), err)
	}
	return working, nil
}

// GetCalendarSettings reads the single settings row. Missing settings allow nothing.
func (r *SQLCalendarRepository) GetCalendarSettings(ctx context.Context) (domain.CalendarSettings, error) {
	query := `SELECT allow_transactions_on_holiday, allow_transactions_on_non_working_day FROM calendar_settings LIMIT 1;`
	var settings domain.CalendarSettings
	err := r.db.QueryRowContext(ctx, query).Scan(
		&settings.AllowTransactionsOnHoliday,
		&settings.AllowTransactionsOnNonWorkingDay,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CalendarSettings{}, nil
		}
		return domain.CalendarSettings{}, fmt.Errorf("failed to read calendar settings: %w", err)
	}
	return settings, nil
}
