package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// ProcessingContext is the explicit per-command environment. Every mutating
// ledger operation takes one instead of reading a global business date.
type ProcessingContext struct {
	// Today is the tenant business date (midnight UTC).
	Today time.Time
	// Now stamps audit fields.
	Now    time.Time
	UserID string
}

// NewProcessingContext builds a context for the given wall clock instant, with the
// business date taken in loc.
func NewProcessingContext(now time.Time, loc *time.Location, userID string) ProcessingContext {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	return ProcessingContext{
		Today:  time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC),
		Now:    now.UTC(),
		UserID: userID,
	}
}

func (pc ProcessingContext) audit() AuditFields {
	return AuditFields{
		CreatedAt:     pc.Now,
		CreatedBy:     pc.UserID,
		LastUpdatedAt: pc.Now,
		LastUpdatedBy: pc.UserID,
	}
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the number of calendar days from a up to (excluding) b.
func daysBetween(a, b time.Time) int64 {
	return int64(DateOf(b).Sub(DateOf(a)).Hours() / 24)
}
