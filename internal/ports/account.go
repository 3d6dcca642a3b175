package ports

import "context"

// AccountPort reads and updates account profile fields.
type AccountPort interface {
	// DisplayName returns the name shown to opponents for userID.
	// Falls back to the username when no display name is set.
	DisplayName(ctx context.Context, userID string) (string, error)

	// UpdateProfile sets the username and display name of userID.
	UpdateProfile(ctx context.Context, userID, username, displayName string) error
}
