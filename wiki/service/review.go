package service

import (
	"errors"
	"log/slog"

	"github.com/larkwiki/larkwiki/wiki"
	"github.com/larkwiki/larkwiki/wiki/repository"
	"github.com/microcosm-cc/bluemonday"
)

// ReviewService assembles and maintains per-user pending review state.
type ReviewService interface {
	// GetPendingReviewsList returns one item per watched page with
	// unreviewed activity, oldest notification first.
	GetPendingReviewsList(user *wiki.User) ([]*wiki.PendingReviewItem, error)

	// ClearByUserAndTitle resets the notification timestamp for one page on
	// one user's watchlist. Idempotent.
	ClearByUserAndTitle(user *wiki.User, title wiki.Title) error

	// MoveTarget extracts the destination page name from a move log entry's
	// parameter blob.
	MoveTarget(params string) (string, error)

	// PreviousRevision returns the revision immediately preceding rev, or
	// wiki.ErrRevisionNotFound when rev is the page's first.
	PreviousRevision(rev *wiki.Revision) (*wiki.Revision, error)

	// LatestRevision returns the newest revision of the page with the given
	// title.
	LatestRevision(title wiki.Title) (*wiki.Revision, error)
}

// reviewService is the default implementation of ReviewService.
type reviewService struct {
	watches repository.WatchRepository
	history repository.HistoryRepository
	logs    repository.LogRepository
	strip   *bluemonday.Policy
}

// NewReviewService creates a new ReviewService.
func NewReviewService(watches repository.WatchRepository, history repository.HistoryRepository, logs repository.LogRepository) ReviewService {
	return &reviewService{
		watches: watches,
		history: history,
		logs:    logs,
		strip:   bluemonday.StrictPolicy(),
	}
}

// GetPendingReviewsList walks the user's pending watchlist rows and builds
// one item per page. Pages that still exist get their revisions and log
// entries since the notification timestamp; deleted pages get their deletion
// log. Rows with nothing to show (deleted without any deletion log) are
// skipped rather than rendered empty.
func (s *reviewService) GetPendingReviewsList(user *wiki.User) ([]*wiki.PendingReviewItem, error) {
	watches, err := s.watches.SelectPendingWatches(user.ID)
	if err != nil {
		return nil, err
	}

	items := make([]*wiki.PendingReviewItem, 0, len(watches))
	for _, w := range watches {
		page, err := s.history.SelectPage(w.Namespace, w.Title)
		if errors.Is(err, wiki.ErrPageNotFound) {
			deletionLog, err := s.logs.SelectDeletionLog(w.Namespace, w.Title)
			if err != nil {
				return nil, err
			}
			if len(deletionLog) == 0 {
				slog.Debug("watched page missing with no deletion log, skipping",
					"category", "review", "namespace", w.Namespace, "title", w.Title)
				continue
			}
			items = append(items, wiki.NewDeletedItem(w.Title, w.Namespace, deletionLog))
			continue
		}
		if err != nil {
			return nil, err
		}

		revisions, err := s.history.SelectRevisionsSince(page.ID, *w.NotificationTS)
		if err != nil {
			return nil, err
		}
		for _, rev := range revisions {
			rev.Comment = s.strip.Sanitize(rev.Comment)
		}

		log, err := s.logs.SelectLogSince(w.Namespace, w.Title, *w.NotificationTS)
		if err != nil {
			return nil, err
		}

		items = append(items, wiki.NewStandardItem(page.PageTitle(), revisions, log))
	}

	return items, nil
}

func (s *reviewService) ClearByUserAndTitle(user *wiki.User, title wiki.Title) error {
	return s.watches.ClearNotification(user.ID, title.Namespace, title.DBKey())
}

func (s *reviewService) MoveTarget(params string) (string, error) {
	return wiki.MoveTargetFromParams(params)
}

func (s *reviewService) PreviousRevision(rev *wiki.Revision) (*wiki.Revision, error) {
	if rev.PreviousID == 0 {
		return nil, wiki.ErrRevisionNotFound
	}
	return s.history.SelectRevision(rev.PreviousID)
}

func (s *reviewService) LatestRevision(title wiki.Title) (*wiki.Revision, error) {
	page, err := s.history.SelectPage(title.Namespace, title.DBKey())
	if err != nil {
		return nil, err
	}
	return s.history.SelectLatestRevision(page.ID)
}
