package server

import (
	"bytes"
	"errors"
	"html"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/larkwiki/larkwiki/wiki"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// PageDispatcher routes page requests based on query parameters.
// URL scheme:
//   - /wiki/{page} - view page (current revision)
//   - /wiki/{page}?oldid=N - view specific revision
//   - /wiki/{page}?diff&oldid=N - diff from revision N to current
//   - /wiki/{page}?action=history - view revision history
//   - /wiki/{page}?action=edit - edit form
//   - /wiki/{page}?action=watch - add to watchlist (POST)
//   - /wiki/{page}?action=unwatch - remove from watchlist (POST)
//   - /wiki/{page}?action=delete - delete page (POST, admin)
//   - /wiki/{page}?action=move&target=X - rename page (POST, admin)
func (a *App) PageDispatcher(rw http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	title, err := wiki.ParseFullTitle(vars["page"])
	if err != nil {
		a.ErrorHandler(http.StatusBadRequest, rw, req, err)
		return
	}

	params := req.URL.Query()

	if req.Method == "POST" {
		switch params.Get("action") {
		case "watch":
			a.handleWatch(rw, req, title, true)
		case "unwatch":
			a.handleWatch(rw, req, title, false)
		case "delete":
			a.handleDelete(rw, req, title)
		case "move":
			a.handleMove(rw, req, title, params.Get("target"))
		default:
			a.handleEditPost(rw, req, title)
		}
		return
	}

	if params.Has("diff") {
		a.handleDiff(rw, req, title, params)
		return
	}

	switch params.Get("action") {
	case "history":
		a.handleHistory(rw, req, title)
	case "edit":
		a.handleEditForm(rw, req, title)
	default:
		a.handleView(rw, req, title, params)
	}
}

// handleView renders the current revision, or the one named by oldid.
func (a *App) handleView(rw http.ResponseWriter, req *http.Request, title wiki.Title, params url.Values) {
	var rev *wiki.Revision
	var err error

	if oldidStr := params.Get("oldid"); oldidStr != "" {
		oldid, convErr := strconv.Atoi(oldidStr)
		if convErr != nil {
			a.ErrorHandler(http.StatusBadRequest, rw, req, convErr)
			return
		}
		rev, err = a.Pages.GetRevision(oldid)
	} else {
		_, rev, err = a.Pages.GetPage(title)
	}

	if errors.Is(err, wiki.ErrPageNotFound) || errors.Is(err, wiki.ErrRevisionNotFound) {
		rw.WriteHeader(http.StatusNotFound)
		renderErr := a.RenderTemplate(rw, "page_notfound.html", "index.html", map[string]interface{}{
			"Page":    wiki.NewStaticPage(title.FullText()),
			"Title":   title,
			"Context": req.Context(),
		})
		check(renderErr)
		return
	}
	if err != nil {
		a.ErrorHandler(http.StatusInternalServerError, rw, req, err)
		return
	}

	slog.Debug("page viewed", "category", "page", "action", "view", "title", title.FullText())

	err = a.RenderTemplate(rw, "page.html", "index.html", map[string]interface{}{
		"Page":     wiki.NewStaticPage(title.FullText()),
		"Title":    title,
		"Revision": rev,
		"Context":  req.Context(),
	})
	check(err)
}

// handleHistory renders the page's revision list, newest first.
func (a *App) handleHistory(rw http.ResponseWriter, req *http.Request, title wiki.Title) {
	revisions, err := a.Pages.GetHistory(title)
	if errors.Is(err, wiki.ErrPageNotFound) {
		a.ErrorHandler(http.StatusNotFound, rw, req, err)
		return
	}
	if err != nil {
		a.ErrorHandler(http.StatusInternalServerError, rw, req, err)
		return
	}

	slog.Debug("page history viewed", "category", "page", "action", "history", "title", title.FullText())

	err = a.RenderTemplate(rw, "page_history.html", "index.html", map[string]interface{}{
		"Page":      wiki.NewStaticPage("History of " + title.FullText()),
		"Title":     title,
		"Revisions": revisions,
		"Context":   req.Context(),
	})
	check(err)
}

// handleDiff renders changed content between the revision named by oldid and
// the current revision.
func (a *App) handleDiff(rw http.ResponseWriter, req *http.Request, title wiki.Title, params url.Values) {
	_, current, err := a.Pages.GetPage(title)
	if errors.Is(err, wiki.ErrPageNotFound) {
		a.ErrorHandler(http.StatusNotFound, rw, req, err)
		return
	}
	if err != nil {
		a.ErrorHandler(http.StatusInternalServerError, rw, req, err)
		return
	}

	// Without oldid, diff against the current revision's predecessor. A
	// first revision diffs against nothing.
	old := &wiki.Revision{}
	oldidStr := params.Get("oldid")
	if oldidStr == "" && current.PreviousID > 0 {
		oldidStr = strconv.Itoa(current.PreviousID)
	}
	if oldidStr != "" {
		oldid, convErr := strconv.Atoi(oldidStr)
		if convErr != nil {
			a.ErrorHandler(http.StatusBadRequest, rw, req, convErr)
			return
		}
		old, err = a.Pages.GetRevision(oldid)
		if err != nil {
			a.ErrorHandler(http.StatusNotFound, rw, req, err)
			return
		}
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(old.Content, current.Content, true)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var buff bytes.Buffer
	for _, diff := range diffs {
		text := html.EscapeString(diff.Text)
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			buff.WriteString("<ins style=\"background:#e6ffe6;\">")
			buff.WriteString(text)
			buff.WriteString("</ins>")
		case diffmatchpatch.DiffDelete:
			buff.WriteString("<del style=\"background:#ffe6e6;\">")
			buff.WriteString(text)
			buff.WriteString("</del>")
		case diffmatchpatch.DiffEqual:
			buff.WriteString("<span>")
			buff.WriteString(text)
			buff.WriteString("</span>")
		}
	}

	err = a.RenderTemplate(rw, "page_diff.html", "index.html", map[string]interface{}{
		"Page":        wiki.NewStaticPage("Changes to " + title.FullText()),
		"Title":       title,
		"OldRevision": old,
		"NewRevision": current,
		"DiffString":  template.HTML(buff.String()),
		"Context":     req.Context(),
	})
	check(err)
}

// handleEditForm renders the edit form, prefilled with the current content
// for existing pages.
func (a *App) handleEditForm(rw http.ResponseWriter, req *http.Request, title wiki.Title) {
	user := a.RequireAuth(rw, req)
	if user == nil {
		return
	}

	rev := &wiki.Revision{}
	_, current, err := a.Pages.GetPage(title)
	if err == nil {
		rev = current
	} else if !errors.Is(err, wiki.ErrPageNotFound) && !errors.Is(err, wiki.ErrRevisionNotFound) {
		a.ErrorHandler(http.StatusInternalServerError, rw, req, err)
		return
	}

	err = a.RenderTemplate(rw, "page_edit.html", "index.html", map[string]interface{}{
		"Page":     wiki.NewStaticPage("Editing " + title.FullText()),
		"Title":    title,
		"Revision": rev,
		"Context":  req.Context(),
	})
	check(err)
}

// handleEditPost saves a new revision and notifies watchers.
func (a *App) handleEditPost(rw http.ResponseWriter, req *http.Request, title wiki.Title) {
	user := a.RequireAuth(rw, req)
	if user == nil {
		return
	}

	content := req.PostFormValue("content")
	comment := req.PostFormValue("comment")

	rev, err := a.Pages.Edit(title, user, content, comment)
	if err != nil {
		slog.Warn("page save failed", "category", "page", "action", "save",
			"title", title.FullText(), "username", user.ScreenName, "reason", err.Error())
		a.ErrorHandler(http.StatusBadRequest, rw, req, err)
		return
	}

	slog.Info("page saved", "category", "page", "action", "save",
		"title", title.FullText(), "username", user.ScreenName, "revision", rev.ID)
	http.Redirect(rw, req, title.LocalURL(nil), http.StatusSeeOther)
}

// handleWatch toggles watchlist membership for the viewer.
func (a *App) handleWatch(rw http.ResponseWriter, req *http.Request, title wiki.Title, watch bool) {
	user := a.RequireAuth(rw, req)
	if user == nil {
		return
	}

	var err error
	if watch {
		err = a.Watches.Watch(user, title)
	} else {
		err = a.Watches.Unwatch(user, title)
	}
	if err != nil {
		a.ErrorHandler(http.StatusInternalServerError, rw, req, err)
		return
	}

	slog.Info("watchlist updated", "category", "watch", "watching", watch,
		"title", title.FullText(), "username", user.ScreenName)
	http.Redirect(rw, req, title.LocalURL(nil), http.StatusSeeOther)
}

// handleDelete removes a page. The deletion shows up in watchers' pending
// reviews via the log entry it leaves behind.
func (a *App) handleDelete(rw http.ResponseWriter, req *http.Request, title wiki.Title) {
	user := a.RequireAdmin(rw, req)
	if user == nil {
		return
	}

	if err := a.Pages.Delete(title, user); err != nil {
		if errors.Is(err, wiki.ErrPageNotFound) {
			a.ErrorHandler(http.StatusNotFound, rw, req, err)
			return
		}
		a.ErrorHandler(http.StatusInternalServerError, rw, req, err)
		return
	}

	slog.Info("page deleted", "category", "page", "action", "delete",
		"title", title.FullText(), "username", user.ScreenName)
	http.Redirect(rw, req, "/", http.StatusSeeOther)
}

// handleMove renames a page. The move log entry and the watchlist rows
// follow the page to its new title.
func (a *App) handleMove(rw http.ResponseWriter, req *http.Request, title wiki.Title, target string) {
	user := a.RequireAdmin(rw, req)
	if user == nil {
		return
	}

	to, err := wiki.ParseFullTitle(target)
	if err != nil {
		a.ErrorHandler(http.StatusBadRequest, rw, req, err)
		return
	}

	if err := a.Pages.Move(title, to, user); err != nil {
		if errors.Is(err, wiki.ErrPageNotFound) {
			a.ErrorHandler(http.StatusNotFound, rw, req, err)
			return
		}
		if errors.Is(err, wiki.ErrPageExists) {
			a.ErrorHandler(http.StatusConflict, rw, req, err)
			return
		}
		a.ErrorHandler(http.StatusInternalServerError, rw, req, err)
		return
	}

	slog.Info("page moved", "category", "page", "action", "move",
		"from", title.FullText(), "to", to.FullText(), "username", user.ScreenName)
	http.Redirect(rw, req, to.LocalURL(nil), http.StatusSeeOther)
}
