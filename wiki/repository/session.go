package repository

import (
	"net/http"

	"github.com/gorilla/sessions"
)

// SessionRepository defines the interface for session persistence.
// It extends gorilla's sessions.Store with deletion, which the upstream
// interface omits.
type SessionRepository interface {
	sessions.Store

	// Delete removes a session from the backing store and expires its cookie.
	Delete(r *http.Request, rw http.ResponseWriter, s *sessions.Session) error
}
