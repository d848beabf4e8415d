package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/larkwiki/larkwiki/wiki"
)

// SessionMiddleware resolves the login cookie to a user and stores it in the
// request context. Requests without a valid session proceed anonymously.
func (a *App) SessionMiddleware(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		session, err := a.Sessions.GetCookie(req, "larkwiki-login")
		if err != nil || session == nil || session.IsNew {
			handler.ServeHTTP(rw, req)
			return
		}

		screenname, ok := session.Values["username"].(string)
		if !ok {
			handler.ServeHTTP(rw, req)
			return
		}

		user, err := a.Users.GetUserByScreenName(screenname)
		if err != nil {
			slog.Warn("session references unknown user", "category", "auth", "username", screenname, "error", err)
			handler.ServeHTTP(rw, req)
			return
		}

		ctx := context.WithValue(req.Context(), wiki.UserKey, user)
		handler.ServeHTTP(rw, req.WithContext(ctx))
	})
}
