package service

import (
	"time"

	"github.com/larkwiki/larkwiki/wiki"
	"github.com/larkwiki/larkwiki/wiki/repository"
)

// WatchService maintains watchlist membership and notification timestamps.
type WatchService interface {
	// Watch adds a page to the user's watchlist. Idempotent.
	Watch(user *wiki.User, title wiki.Title) error

	// Unwatch removes a page from the user's watchlist.
	Unwatch(user *wiki.User, title wiki.Title) error

	// NotifyChange records a change to a page at ts: every watcher except
	// the actor who is not already carrying a notification gets ts as their
	// notification timestamp.
	NotifyChange(title wiki.Title, actorID int, ts time.Time) error
}

type watchService struct {
	watches repository.WatchRepository
}

// NewWatchService creates a new WatchService.
func NewWatchService(watches repository.WatchRepository) WatchService {
	return &watchService{watches: watches}
}

func (s *watchService) Watch(user *wiki.User, title wiki.Title) error {
	return s.watches.Watch(user.ID, title.Namespace, title.DBKey())
}

func (s *watchService) Unwatch(user *wiki.User, title wiki.Title) error {
	return s.watches.Unwatch(user.ID, title.Namespace, title.DBKey())
}

func (s *watchService) NotifyChange(title wiki.Title, actorID int, ts time.Time) error {
	return s.watches.SetNotificationTimestamp(title.Namespace, title.DBKey(), actorID, ts)
}
