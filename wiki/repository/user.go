package repository

import "github.com/larkwiki/larkwiki/wiki"

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// InsertUser inserts a new user and their password hash.
	InsertUser(user *wiki.User) error

	// SelectUserByScreenname retrieves a user, optionally joining the
	// password hash for authentication.
	SelectUserByScreenname(screenname string, withHash bool) (*wiki.User, error)

	// SelectUserByID retrieves a user by ID.
	SelectUserByID(id int) (*wiki.User, error)

	// UpdateUserRole changes a user's role.
	UpdateUserRole(id int, role string) error
}
