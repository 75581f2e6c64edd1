package user

import "context"

// DirectoryClient is the capability the core needs from the external user
// directory. CreateUser and UpdateUser perform the best-effort role
// assignment internally; assignment failures are logged by the adapter and
// never propagate. Lookups return ErrUserNotFound when the user is absent.
type DirectoryClient interface {
	CreateUser(ctx context.Context, in CreateUser) (DirectoryUser, error)
	FindByEmail(ctx context.Context, email string) (DirectoryUser, error)
	GetByID(ctx context.Context, id string) (DirectoryUser, error)
	ListUsers(ctx context.Context, page, perPage int) ([]DirectoryUser, int, error)
	UpdateUser(ctx context.Context, id string, in UpdateUser) (DirectoryUser, error)
	DeleteUser(ctx context.Context, id string) error
}
