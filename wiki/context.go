package wiki

import "context"

// ContextKey is a type for context keys used in the wiki package.
type ContextKey string

// UserKey is the context key for storing the current user.
const UserKey ContextKey = "larkwiki.user"

// UserFromContext returns the current user, or the anonymous user when no
// session middleware ran.
func UserFromContext(ctx context.Context) *User {
	if user, ok := ctx.Value(UserKey).(*User); ok && user != nil {
		return user
	}
	return AnonymousUser()
}
