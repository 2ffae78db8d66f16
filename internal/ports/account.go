package ports

import "context"

// AccountPort changes player-facing account fields.
type AccountPort interface {
	// SetDisplayName replaces the display name shown at the table. The
	// unique username is never touched.
	SetDisplayName(ctx context.Context, userID, displayName string) error
}
