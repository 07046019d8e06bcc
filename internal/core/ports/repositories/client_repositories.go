package repositories

import "context"

// ClientActivityReader reports whether account owners are active
type ClientActivityReader interface {
	// IsClientActive reports whether the client exists and is active.
	IsClientActive(ctx context.Context, clientID string) (bool, error)

	// IsGroupActive reports whether the group exists and is active.
	IsGroupActive(ctx context.Context, groupID string) (bool, error)
}
