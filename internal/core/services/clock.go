package services

import (
	"time"

	portssvc "github.com/SscSPs/savings_ledger/internal/core/ports/services"
)

// TenantClock reads the wall clock and reports the tenant timezone that
// business dates are taken in.
type TenantClock struct {
	loc *time.Location
}

// NewTenantClock creates a clock for loc. A nil loc means UTC.
func NewTenantClock(loc *time.Location) *TenantClock {
	if loc == nil {
		loc = time.UTC
	}
	return &TenantClock{loc: loc}
}

var _ portssvc.Clock = (*TenantClock)(nil)

func (c *TenantClock) Now() time.Time {
	return time.Now()
}

func (c *TenantClock) Location() *time.Location {
	return c.loc
}
