package ports

import "context"

// UserDirectory resolves email recipients. Users are maintained by the account layer;
// the engine only reads them.
type UserDirectory interface {
	// ActiveAdminEmails returns the addresses of every active administrator.
	ActiveAdminEmails(ctx context.Context) ([]string, error)

	// EmailOf returns the address of an active user or an ObjectNotFoundError.
	EmailOf(ctx context.Context, userID string) (string, error)
}
