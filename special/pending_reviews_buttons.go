package special

import (
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/larkwiki/larkwiki/wiki"
)

// reviewButton links the viewer to a diff covering everything since their
// last review: the predecessor of the oldest new revision against current.
// When no such predecessor exists (the page's very first revision is still
// unreviewed) or there are no new revisions at all, the button degrades to a
// plain link to the latest revision.
func (p *PendingReviewsPage) reviewButton(item *wiki.PendingReviewItem) string {
	var lastReviewed *wiki.Revision
	if n := len(item.NewRevisions); n > 0 {
		oldest := item.NewRevisions[n-1]
		prev, err := p.reviews.PreviousRevision(oldest)
		if err == nil {
			lastReviewed = prev
		}
	}

	if lastReviewed != nil {
		diffURL := item.Title.LocalURL(url.Values{
			"diff":  {""},
			"oldid": {strconv.Itoa(lastReviewed.ID)},
		})
		return element("a",
			map[string]string{"href": diffURL, "class": "pendingreviews-green-button"},
			diffLabel(len(item.NewRevisions)))
	}

	latest, err := p.reviews.LatestRevision(*item.Title)
	if err != nil {
		slog.Warn("no latest revision for watched page", "category", "special",
			"title", item.Title.FullText(), "error", err)
		return ""
	}
	latestURL := item.Title.LocalURL(url.Values{"oldid": {strconv.Itoa(latest.ID)}})
	return element("a",
		map[string]string{"href": latestURL, "class": "pendingreviews-green-button"},
		"No content changes - view latest")
}

func diffLabel(count int) string {
	if count == 1 {
		return "1 change since your last review"
	}
	return fmt.Sprintf("%d changes since your last review", count)
}

// historyButton links to the page's history view. Always present for
// existing pages.
func (p *PendingReviewsPage) historyButton(item *wiki.PendingReviewItem) string {
	return element("a",
		map[string]string{
			"href":  item.Title.LocalURL(url.Values{"action": {"history"}}),
			"class": "pendingreviews-dark-blue-button",
		},
		"View history")
}

// markReviewedButton links back to this special page with parameters that
// trigger the clear-notification action for a deleted page.
func (p *PendingReviewsPage) markReviewedButton(titleText string, namespace int) string {
	query := url.Values{
		"clearNotificationTitle": {titleText},
		"clearNotificationNS":    {strconv.Itoa(namespace)},
	}
	return element("a",
		map[string]string{
			"href":               PendingReviewsURL + "?" + query.Encode(),
			"class":              "pendingreviews-red-button pendingreviews-accept-deletion",
			"data-pending-ns":    strconv.Itoa(namespace),
			"data-pending-title": titleText,
		},
		"Accept deletion")
}

// deleterTalkButton links to the talk page of whoever most recently deleted
// the page, so the watcher can ask why. If the talk page doesn't exist yet
// the link opens it in edit mode.
func (p *PendingReviewsPage) deleterTalkButton(deletionLog []*wiki.LogEntry) string {
	if len(deletionLog) == 0 {
		return ""
	}

	// Deletion log is newest-first; the most recent entry holds the actor
	// responsible for the page's current absence.
	actor := deletionLog[0].ActorName
	talk := wiki.UserTalkTitle(actor)

	query := url.Values{}
	exists, err := p.users.TalkPageExists(actor)
	if err != nil {
		slog.Warn("talk page existence check failed", "category", "special", "user", actor, "error", err)
	}
	if err == nil && !exists {
		query.Set("action", "edit")
	}

	return element("a",
		map[string]string{
			"href":  talk.LocalURL(query),
			"class": "pendingreviews-dark-blue-button",
		},
		fmt.Sprintf("Contact %s", wiki.UserPageTitle(actor).FullText()))
}
