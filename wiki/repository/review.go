package repository

import (
	"time"

	"github.com/larkwiki/larkwiki/wiki"
)

// WatchRepository defines the interface for watchlist persistence.
type WatchRepository interface {
	// Watch adds a page to a user's watchlist. Idempotent.
	Watch(userID int, namespace int, title string) error

	// Unwatch removes a page from a user's watchlist.
	Unwatch(userID int, namespace int, title string) error

	// SetNotificationTimestamp marks the time of the first unreviewed change
	// for every watcher of the page except the acting user.
	SetNotificationTimestamp(namespace int, title string, actorID int, ts time.Time) error

	// ClearNotification resets the notification timestamp for one watcher of
	// one page. Idempotent: clearing an already-clear row is not an error.
	ClearNotification(userID int, namespace int, title string) error

	// MoveWatches repoints every watchlist row from one title to another,
	// so watchers keep tracking a page across renames.
	MoveWatches(fromNS int, fromTitle string, toNS int, toTitle string) error

	// SelectPendingWatches returns a user's watchlist rows that carry a
	// notification timestamp, oldest timestamp first.
	SelectPendingWatches(userID int) ([]*wiki.WatchedPage, error)
}

// HistoryRepository defines the interface for page and revision retrieval.
type HistoryRepository interface {
	// SelectPage retrieves a page by namespace and title DB key.
	// Returns wiki.ErrPageNotFound if no such page exists.
	SelectPage(namespace int, title string) (*wiki.Page, error)

	// SelectRevision retrieves a single revision by ID.
	// Returns wiki.ErrRevisionNotFound if no such revision exists.
	SelectRevision(id int) (*wiki.Revision, error)

	// SelectLatestRevision retrieves the page's newest revision.
	SelectLatestRevision(pageID int) (*wiki.Revision, error)

	// SelectRevisionsSince retrieves revisions created at or after ts,
	// newest first.
	SelectRevisionsSince(pageID int, ts time.Time) ([]*wiki.Revision, error)

	// InsertPage creates a page row.
	InsertPage(page *wiki.Page) error

	// InsertRevision appends a revision to a page.
	InsertRevision(rev *wiki.Revision) error

	// MovePage renames a page in place. Revisions follow the page row.
	MovePage(pageID int, namespace int, title string) error

	// DeletePage removes a page and its revisions.
	DeletePage(pageID int) error
}

// LogRepository defines the interface for the administrative log.
type LogRepository interface {
	// InsertLogEntry appends an entry to the log.
	InsertLogEntry(entry *wiki.LogEntry) error

	// SelectLogSince retrieves log entries for a page created at or after
	// ts, newest first.
	SelectLogSince(namespace int, title string, ts time.Time) ([]*wiki.LogEntry, error)

	// SelectDeletionLog retrieves delete-type log entries for a page,
	// newest first.
	SelectDeletionLog(namespace int, title string) ([]*wiki.LogEntry, error)
}
