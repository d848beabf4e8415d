package special

import (
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/larkwiki/larkwiki/wiki"
)

// PendingReviewsURL is the canonical URL of this special page. The
// mark-reviewed button links back here.
const PendingReviewsURL = "/wiki/Special:PendingReviews"

// DefaultReviewLimit is how many pending items are rendered when the request
// doesn't say otherwise.
const DefaultReviewLimit = 20

// ReviewLister provides pending review items and their supporting lookups.
type ReviewLister interface {
	GetPendingReviewsList(user *wiki.User) ([]*wiki.PendingReviewItem, error)
	ClearByUserAndTitle(user *wiki.User, title wiki.Title) error
	MoveTarget(params string) (string, error)
	PreviousRevision(rev *wiki.Revision) (*wiki.Revision, error)
	LatestRevision(title wiki.Title) (*wiki.Revision, error)
}

// TalkPageChecker resolves users and their talk pages.
type TalkPageChecker interface {
	GetUserByScreenName(screenname string) (*wiki.User, error)
	TalkPageExists(screenname string) (bool, error)
}

// PendingReviewsTemplater renders the pending reviews templates.
type PendingReviewsTemplater interface {
	RenderTemplate(w io.Writer, name string, base string, data map[string]interface{}) error
}

// PendingReviewsPage handles Special:PendingReviews requests: a per-user
// list of watched pages with unreviewed changes, plus the side action of
// marking a single page's changes as reviewed.
type PendingReviewsPage struct {
	reviews      ReviewLister
	users        TalkPageChecker
	templater    PendingReviewsTemplater
	defaultLimit int

	// formatTime renders a change timestamp for display. Swapped out in
	// tests for deterministic output.
	formatTime func(time.Time) string
}

// NewPendingReviewsPage creates a new PendingReviews special page handler.
func NewPendingReviewsPage(reviews ReviewLister, users TalkPageChecker, templater PendingReviewsTemplater, defaultLimit int) *PendingReviewsPage {
	if defaultLimit <= 0 {
		defaultLimit = DefaultReviewLimit
	}
	return &PendingReviewsPage{
		reviews:      reviews,
		users:        users,
		templater:    templater,
		defaultLimit: defaultLimit,
		formatTime:   humanize.Time,
	}
}

// Handle serves the pending reviews page.
//
// A request carrying clearNotificationTitle is a mark-as-reviewed action:
// the notification timestamp for that page is cleared and a one-line
// confirmation is rendered instead of the list. A title that doesn't
// resolve falls through to the list.
//
// Otherwise the handler renders the viewer's pending reviews. The `user`
// parameter selects another user's list; this is currently open to any
// logged-in viewer. The `limit` parameter caps how many items render.
func (p *PendingReviewsPage) Handle(rw http.ResponseWriter, req *http.Request) {
	viewer := wiki.UserFromContext(req.Context())
	query := req.URL.Query()

	if clearText := query.Get("clearNotificationTitle"); clearText != "" {
		// Missing or malformed namespace means the main namespace.
		ns, _ := strconv.Atoi(query.Get("clearNotificationNS"))
		title, err := wiki.NewTitle(clearText, ns)
		if err == nil {
			p.handleClearNotification(rw, req, viewer, title)
			return
		}
		slog.Warn("clear-notification title did not resolve, showing list",
			"category", "special", "title", clearText, "error", err)
	}

	target := viewer
	if name := query.Get("user"); name != "" {
		other, err := p.users.GetUserByScreenName(name)
		if errors.Is(err, wiki.ErrUsernameNotFound) {
			http.Error(rw, "No such user", http.StatusNotFound)
			return
		}
		if err != nil {
			slog.Error("failed to resolve review user", "category", "special", "user", name, "error", err)
			http.Error(rw, "Internal server error", http.StatusInternalServerError)
			return
		}
		target = other
	}

	if target.IsAnonymous() {
		loginURL := "/user/login?reason=login_required&referrer=" + url.QueryEscape(req.URL.String())
		http.Redirect(rw, req, loginURL, http.StatusSeeOther)
		return
	}

	limit := p.defaultLimit
	if rawLimit := query.Get("limit"); rawLimit != "" {
		if n, err := strconv.Atoi(rawLimit); err == nil && n > 0 {
			limit = n
		}
	}

	items, err := p.reviews.GetPendingReviewsList(target)
	if err != nil {
		slog.Error("failed to get pending reviews", "category", "special", "user", target.ScreenName, "error", err)
		http.Error(rw, "Internal server error", http.StatusInternalServerError)
		return
	}

	rows := make([]template.HTML, 0, limit)
	for rowCount, item := range items {
		if rowCount >= limit {
			break
		}
		if item.Deleted() {
			rows = append(rows, p.renderDeletedRow(item, rowCount))
		} else {
			rows = append(rows, p.renderStandardRow(item, rowCount))
		}
	}

	data := map[string]interface{}{
		"Page":         wiki.NewStaticPage("Pending reviews"),
		"Context":      req.Context(),
		"TargetName":   target.ScreenName,
		"ViewingOther": target.ID != viewer.ID,
		"NumReviews":   len(items),
		"Limit":        limit,
		"Truncated":    len(items) > limit,
		"Rows":         rows,
	}

	if err := p.templater.RenderTemplate(rw, "pending_reviews.html", "index.html", data); err != nil {
		slog.Error("failed to render pending reviews template", "category", "special", "error", err)
		http.Error(rw, "Internal server error", http.StatusInternalServerError)
	}
}

// handleClearNotification clears the notification timestamp for one page on
// the viewer's watchlist and confirms, without rendering the list.
func (p *PendingReviewsPage) handleClearNotification(rw http.ResponseWriter, req *http.Request, viewer *wiki.User, title wiki.Title) {
	if viewer.IsAnonymous() {
		loginURL := "/user/login?reason=login_required&referrer=" + url.QueryEscape(req.URL.String())
		http.Redirect(rw, req, loginURL, http.StatusSeeOther)
		return
	}

	if err := p.reviews.ClearByUserAndTitle(viewer, title); err != nil {
		slog.Error("failed to clear notification", "category", "special",
			"user", viewer.ScreenName, "title", title.FullText(), "error", err)
		http.Error(rw, "Internal server error", http.StatusInternalServerError)
		return
	}

	slog.Info("notification cleared", "category", "special",
		"user", viewer.ScreenName, "title", title.FullText())

	data := map[string]interface{}{
		"Page":        wiki.NewStaticPage("Pending reviews"),
		"Context":     req.Context(),
		"ClearedName": title.FullText(),
		"BackURL":     PendingReviewsURL,
	}

	if err := p.templater.RenderTemplate(rw, "pending_reviews_clear.html", "index.html", data); err != nil {
		slog.Error("failed to render clear confirmation", "category", "special", "error", err)
		http.Error(rw, "Internal server error", http.StatusInternalServerError)
	}
}
