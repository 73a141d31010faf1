package identity

import (
	"context"
	"time"

	"github.com/toystore/backend/internal/domain/shared"
)

// UserRepository defines the interface for user persistence.
// FindAll and Count support the filter key "is_admin"; Search matches
// username and email.
type UserRepository interface {
	shared.Repository[User]

	// FindByUsername finds a user by their lowercased username
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByEmail finds a user by their lowercased email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByUsername reports whether a user with the username exists
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail reports whether a user with the email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// CountAdmins counts users with administrator rights
	CountAdmins(ctx context.Context) (int64, error)

	// CountRegisteredSince counts users created at or after the given time
	CountRegisteredSince(ctx context.Context, since time.Time) (int64, error)
}
