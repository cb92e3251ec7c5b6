package ports

import "context"

// AccountPort reads and updates player account profiles.
type AccountPort interface {
	// UpdateProfile updates account profile fields for the given user.
	// userID identifies the account to update; username/displayName are applied as provided.
	// Returns an error if the profile update fails.
	UpdateProfile(ctx context.Context, userID, username, displayName string) error

	// DisplayNames resolves the table names of the given users. Users without
	// a display name are mapped to their username; unknown ids are omitted.
	DisplayNames(ctx context.Context, userIDs []string) (map[string]string, error)
}
