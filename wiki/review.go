package wiki

import "time"

// WatchedPage is one row of a user's watchlist. NotificationTS is the
// timestamp of the first change the user has not yet reviewed; it is unset
// while the user is caught up.
type WatchedPage struct {
	UserID         int        `db:"user_id"`
	Namespace      int        `db:"namespace"`
	Title          string     `db:"title"`
	NotificationTS *time.Time `db:"notification_ts"`
}

// PendingReviewItem is one watched page with unreviewed activity. Exactly
// one of the two shapes holds: the page still exists (Title set, NewRevisions
// and Log meaningful) or it has been deleted (Title nil, DeletedTitle and
// DeletionLog meaningful). Use the constructors to keep the shapes straight.
type PendingReviewItem struct {
	Title        *Title
	NewRevisions []*Revision
	Log          []*LogEntry

	DeletedTitle     string
	DeletedNamespace int
	DeletionLog      []*LogEntry
}

// NewStandardItem builds an item for a page that still exists. Both change
// lists are newest-first and may be empty.
func NewStandardItem(title Title, newRevisions []*Revision, log []*LogEntry) *PendingReviewItem {
	return &PendingReviewItem{
		Title:        &title,
		NewRevisions: newRevisions,
		Log:          log,
	}
}

// NewDeletedItem builds an item for a page that no longer exists, identified
// by its last known name. The deletion log explains what happened to it.
func NewDeletedItem(deletedTitle string, namespace int, deletionLog []*LogEntry) *PendingReviewItem {
	return &PendingReviewItem{
		DeletedTitle:     deletedTitle,
		DeletedNamespace: namespace,
		DeletionLog:      deletionLog,
	}
}

// Deleted reports whether the watched page no longer exists.
func (i *PendingReviewItem) Deleted() bool {
	return i.Title == nil
}
