package services

import (
	"context"
	"fmt"
	"time"

	portsrepo "github.com/SscSPs/savings_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/savings_ledger/internal/core/ports/services"
)

// CalendarService answers holiday and working day questions from the calendar store.
type CalendarService struct {
	BaseService
	calendarRepo portsrepo.CalendarReader
}

// NewCalendarService creates a service serving both calendar ports.
func NewCalendarService(calendarRepo portsrepo.CalendarReader) *CalendarService {
	return &CalendarService{calendarRepo: calendarRepo}
}

var (
	_ portssvc.HolidayCalendar    = (*CalendarService)(nil)
	_ portssvc.WorkingDayCalendar = (*CalendarService)(nil)
)

func (s *CalendarService) IsHoliday(ctx context.Context, officeID string, date time.Time) (bool, error) {
	holiday, err := s.calendarRepo.IsHoliday(ctx, officeID, date)
	if err != nil {
		return false, fmt.Errorf("failed to check holiday for office %s: %w", officeID, err)
	}
	return holiday, nil
}

func (s *CalendarService) IsTransactionAllowedOnHoliday(ctx context.Context) (bool, error) {
	settings, err := s.calendarRepo.GetCalendarSettings(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read calendar settings: %w", err)
	}
	return settings.AllowTransactionsOnHoliday, nil
}

func (s *CalendarService) IsWorkingDay(ctx context.Context, date time.Time) (bool, error) {
	working, err := s.calendarRepo.IsWorkingDay(ctx, date)
	if err != nil {
		return false, fmt.Errorf("failed to check working day: %w", err)
	}
	return working, nil
}

func (s *CalendarService) IsTransactionAllowedOnNonWorkingDay(ctx context.Context) (bool, error) {
	settings, err := s.calendarRepo.GetCalendarSettings(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read calendar settings: %w", err)
	}
	return settings.AllowTransactionsOnNonWorkingDay, nil
}
