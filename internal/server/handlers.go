package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/larkwiki/larkwiki/wiki"
)

func (a *App) RegisterHandler(rw http.ResponseWriter, req *http.Request) {
	err := a.RenderTemplate(rw, "register.html", "index.html",
		map[string]interface{}{
			"Page":    wiki.NewStaticPage("Register"),
			"Context": req.Context()})
	check(err)
}

func (a *App) RegisterPostHandler(rw http.ResponseWriter, req *http.Request) {
	user := &wiki.User{}

	user.Email = req.PostFormValue("email")
	user.ScreenName = req.PostFormValue("screenname")
	user.RawPassword = req.PostFormValue("password")

	render := map[string]interface{}{
		"Page":           wiki.NewStaticPage("Register"),
		"calloutClasses": "lw-success",
		"calloutMessage": "Successfully registered!",
		"formClasses":    "hidden",
		"Context":        req.Context(),
	}

	// fill form with previously submitted values and display registration errors
	err := a.Users.PostUser(user)
	if err != nil {
		slog.Warn("registration failed", "category", "auth", "action", "register", "username", user.ScreenName, "reason", err.Error(), "ip", req.RemoteAddr)
		render["calloutMessage"] = err.Error()
		render["calloutClasses"] = "lw-error"
		render["formClasses"] = ""
		render["screennameValue"] = user.ScreenName
		render["emailValue"] = user.Email
	} else {
		slog.Info("user registered", "category", "auth", "action", "register", "username", user.ScreenName, "ip", req.RemoteAddr)
	}

	err = a.RenderTemplate(rw, "register.html", "index.html", render)
	check(err)
}

func (a *App) LoginHandler(rw http.ResponseWriter, req *http.Request) {
	render := map[string]interface{}{
		"Page":    wiki.NewStaticPage("Login"),
		"Context": req.Context(),
	}

	// Check if redirected here because login is required
	if req.URL.Query().Get("reason") == "login_required" {
		render["loginRequired"] = true
		render["referrerValue"] = req.URL.Query().Get("referrer")
	} else {
		render["referrerValue"] = req.Referer()
	}

	err := a.RenderTemplate(rw, "login.html", "index.html", render)
	check(err)
}

func (a *App) LoginPostHandler(rw http.ResponseWriter, req *http.Request) {
	user := &wiki.User{}
	user.ScreenName = req.PostFormValue("screenname")
	user.RawPassword = req.PostFormValue("password")
	referrer := req.PostFormValue("referrer")

	err := a.Users.CheckUserPassword(user)

	render := map[string]interface{}{
		"Page":           wiki.NewStaticPage("Login"),
		"calloutClasses": "lw-success",
		"calloutMessage": "Successfully logged in!",
		"formClasses":    "hidden",
		"Context":        req.Context(),
	}

	if err != nil {
		slog.Warn("login failed", "username", user.ScreenName, "reason", err.Error(), "ip", req.RemoteAddr)
		render["calloutMessage"] = err.Error()
		render["calloutClasses"] = "lw-error"
		render["formClasses"] = ""
		render["screennameValue"] = user.ScreenName
		rw.WriteHeader(http.StatusUnauthorized)
		err = a.RenderTemplate(rw, "login.html", "index.html", render)
		check(err)
		return
	}

	session, err := a.Sessions.GetCookie(req, "larkwiki-login")
	if err != nil {
		// GetCookie returns an error when the existing cookie can't be decoded
		// (e.g., signed with a different secret). In this case, it also returns
		// a new valid session we can use. Only fail if we didn't get a session.
		if session == nil {
			a.ErrorHandler(http.StatusInternalServerError, rw, req, err)
			return
		}
		slog.Debug("existing session cookie invalid, creating new session", "error", err)
	}
	session.Options.MaxAge = a.Config.CookieExpiry
	session.Values["username"] = user.ScreenName
	err = session.Save(req, rw)
	if err != nil {
		a.ErrorHandler(http.StatusInternalServerError, rw, req, err)
		return
	}

	slog.Info("user logged in", "category", "auth", "action", "login", "username", user.ScreenName, "ip", req.RemoteAddr)

	if referrer == "" {
		referrer = "/"
	}
	http.Redirect(rw, req, referrer, http.StatusSeeOther)
}

func (a *App) LogoutPostHandler(rw http.ResponseWriter, req *http.Request) {
	session, err := a.Sessions.GetCookie(req, "larkwiki-login")
	if err != nil {
		// If we can't decode the cookie, the user is effectively already
		// logged out. Only fail if we got a nil session.
		if session == nil {
			a.ErrorHandler(http.StatusInternalServerError, rw, req, err)
			return
		}
		slog.Debug("logout with invalid session cookie, redirecting to home", "error", err)
		http.Redirect(rw, req, "/", http.StatusSeeOther)
		return
	}

	// Capture username before session is deleted
	username, _ := session.Values["username"].(string)

	err = a.Sessions.DeleteCookie(req, rw, session)
	if err != nil {
		a.ErrorHandler(http.StatusInternalServerError, rw, req, err)
		return
	}

	slog.Info("user logged out", "category", "auth", "action", "logout", "username", username, "ip", req.RemoteAddr)
	http.Redirect(rw, req, "/", http.StatusSeeOther)
}

func (a *App) HomeHandler(rw http.ResponseWriter, req *http.Request) {
	err := a.RenderTemplate(rw, "home.html", "index.html", map[string]interface{}{
		"Page":    wiki.NewStaticPage("Home"),
		"Context": req.Context(),
	})
	check(err)
}

func (a *App) ErrorHandler(responseCode int, rw http.ResponseWriter, req *http.Request, errors ...error) {
	rw.WriteHeader(responseCode)
	errorTitle := fmt.Sprintf("%d: %s", responseCode, http.StatusText(responseCode))
	err := a.RenderTemplate(rw, "error.html", "index.html",
		map[string]interface{}{
			"Page":    wiki.NewStaticPage(errorTitle),
			"Context": req.Context(),
			"Error": map[string]interface{}{
				"Code":       responseCode,
				"CodeString": http.StatusText(responseCode),
				"Errors":     errors,
			}})
	if err != nil {
		slog.Error("failed to render error page", "error", err)
		panic(err)
	}
}

func (a *App) SpecialPageHandler(rw http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	pageName := vars["page"]

	handler, ok := a.SpecialPages.Get(pageName)
	if !ok {
		a.ErrorHandler(http.StatusNotFound, rw, req,
			fmt.Errorf("special page '%s' does not exist", pageName))
		return
	}

	handler.Handle(rw, req)
}
