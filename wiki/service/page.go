package service

import (
	"errors"
	"time"

	"github.com/larkwiki/larkwiki/wiki"
	"github.com/larkwiki/larkwiki/wiki/repository"
)

// PageService defines page content operations: viewing, editing, and the
// administrative actions that feed the log.
type PageService interface {
	// GetPage returns the page row and its latest revision.
	GetPage(title wiki.Title) (*wiki.Page, *wiki.Revision, error)

	// GetRevision returns a single revision by ID.
	GetRevision(id int) (*wiki.Revision, error)

	// GetHistory returns all revisions of the page, newest first.
	GetHistory(title wiki.Title) ([]*wiki.Revision, error)

	// Edit appends a revision, creating the page if needed, and notifies
	// watchers.
	Edit(title wiki.Title, editor *wiki.User, content, comment string) (*wiki.Revision, error)

	// Delete removes the page and its revisions, records a deletion log
	// entry, and notifies watchers. The log entry outlives the page.
	Delete(title wiki.Title, actor *wiki.User) error

	// Move renames a page. Watchlist rows follow the page, a move log entry
	// is recorded under the new title, and watchers are notified.
	Move(from, to wiki.Title, actor *wiki.User) error
}

type pageService struct {
	history repository.HistoryRepository
	logs    repository.LogRepository
	watches repository.WatchRepository
}

// NewPageService creates a new PageService.
func NewPageService(history repository.HistoryRepository, logs repository.LogRepository, watches repository.WatchRepository) PageService {
	return &pageService{history: history, logs: logs, watches: watches}
}

func (s *pageService) GetPage(title wiki.Title) (*wiki.Page, *wiki.Revision, error) {
	page, err := s.history.SelectPage(title.Namespace, title.DBKey())
	if err != nil {
		return nil, nil, err
	}
	rev, err := s.history.SelectLatestRevision(page.ID)
	if err != nil {
		return nil, nil, err
	}
	return page, rev, nil
}

func (s *pageService) GetRevision(id int) (*wiki.Revision, error) {
	return s.history.SelectRevision(id)
}

func (s *pageService) GetHistory(title wiki.Title) ([]*wiki.Revision, error) {
	page, err := s.history.SelectPage(title.Namespace, title.DBKey())
	if err != nil {
		return nil, err
	}
	return s.history.SelectRevisionsSince(page.ID, time.Time{})
}

func (s *pageService) Edit(title wiki.Title, editor *wiki.User, content, comment string) (*wiki.Revision, error) {
	page, err := s.history.SelectPage(title.Namespace, title.DBKey())
	if errors.Is(err, wiki.ErrPageNotFound) {
		page = &wiki.Page{Namespace: title.Namespace, Title: title.DBKey()}
		if err := s.history.InsertPage(page); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	var previousID int
	if latest, err := s.history.SelectLatestRevision(page.ID); err == nil {
		previousID = latest.ID
	} else if !errors.Is(err, wiki.ErrRevisionNotFound) {
		return nil, err
	}

	rev := &wiki.Revision{
		PageID:     page.ID,
		ActorName:  editor.ScreenName,
		Comment:    comment,
		Content:    content,
		Created:    time.Now().UTC(),
		PreviousID: previousID,
	}
	if err := s.history.InsertRevision(rev); err != nil {
		return nil, err
	}

	if err := s.watches.SetNotificationTimestamp(title.Namespace, title.DBKey(), editor.ID, rev.Created); err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *pageService) Delete(title wiki.Title, actor *wiki.User) error {
	page, err := s.history.SelectPage(title.Namespace, title.DBKey())
	if err != nil {
		return err
	}
	if err := s.history.DeletePage(page.ID); err != nil {
		return err
	}

	now := time.Now().UTC()
	entry := &wiki.LogEntry{
		Type:      wiki.LogTypeDelete,
		Action:    wiki.LogActionDelete,
		Namespace: title.Namespace,
		Title:     title.DBKey(),
		ActorName: actor.ScreenName,
		Created:   now,
	}
	if err := s.logs.InsertLogEntry(entry); err != nil {
		return err
	}
	return s.watches.SetNotificationTimestamp(title.Namespace, title.DBKey(), actor.ID, now)
}

func (s *pageService) Move(from, to wiki.Title, actor *wiki.User) error {
	page, err := s.history.SelectPage(from.Namespace, from.DBKey())
	if err != nil {
		return err
	}
	if _, err := s.history.SelectPage(to.Namespace, to.DBKey()); err == nil {
		return wiki.ErrPageExists
	} else if !errors.Is(err, wiki.ErrPageNotFound) {
		return err
	}

	if err := s.history.MovePage(page.ID, to.Namespace, to.DBKey()); err != nil {
		return err
	}

	// Watchlist rows follow the page so watchers keep tracking it under its
	// new name, and the log entry lands where they'll see it.
	if err := s.watches.MoveWatches(from.Namespace, from.DBKey(), to.Namespace, to.DBKey()); err != nil {
		return err
	}

	params, err := wiki.EncodeMoveParams(to)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	entry := &wiki.LogEntry{
		Type:      wiki.LogTypeMove,
		Action:    wiki.LogActionMove,
		Namespace: to.Namespace,
		Title:     to.DBKey(),
		ActorName: actor.ScreenName,
		Params:    params,
		Created:   now,
	}
	if err := s.logs.InsertLogEntry(entry); err != nil {
		return err
	}
	return s.watches.SetNotificationTimestamp(to.Namespace, to.DBKey(), actor.ID, now)
}
