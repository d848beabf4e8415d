package storage

import (
	"time"

	"github.com/larkwiki/larkwiki/wiki"
)

// Watchlist repository methods for sqliteDb

func (db *sqliteDb) Watch(userID int, namespace int, title string) error {
	_, err := db.conn.Exec(
		`INSERT INTO Watchlist(user_id, namespace, title) VALUES (?, ?, ?)
			ON CONFLICT(user_id, namespace, title) DO NOTHING`,
		userID, namespace, title)
	return err
}

func (db *sqliteDb) Unwatch(userID int, namespace int, title string) error {
	_, err := db.conn.Exec(
		`DELETE FROM Watchlist WHERE user_id = ? AND namespace = ? AND title = ?`,
		userID, namespace, title)
	return err
}

// SetNotificationTimestamp stamps ts on every watcher of the page other than
// the actor. Watchers already carrying a notification keep their older
// timestamp, so the stamp always marks the first unreviewed change.
func (db *sqliteDb) SetNotificationTimestamp(namespace int, title string, actorID int, ts time.Time) error {
	_, err := db.conn.Exec(
		`UPDATE Watchlist SET notification_ts = ?
			WHERE namespace = ? AND title = ? AND user_id != ? AND notification_ts IS NULL`,
		ts, namespace, title, actorID)
	return err
}

func (db *sqliteDb) ClearNotification(userID int, namespace int, title string) error {
	_, err := db.conn.Exec(
		`UPDATE Watchlist SET notification_ts = NULL
			WHERE user_id = ? AND namespace = ? AND title = ?`,
		userID, namespace, title)
	return err
}

// MoveWatches repoints watchlist rows at a renamed page. A watcher who
// already watches the destination title keeps that row; their source row is
// dropped instead of colliding.
func (db *sqliteDb) MoveWatches(fromNS int, fromTitle string, toNS int, toTitle string) error {
	_, err := db.conn.Exec(
		`DELETE FROM Watchlist WHERE namespace = ? AND title = ?
			AND user_id IN (SELECT user_id FROM Watchlist WHERE namespace = ? AND title = ?)`,
		fromNS, fromTitle, toNS, toTitle)
	if err != nil {
		return err
	}
	_, err = db.conn.Exec(
		`UPDATE Watchlist SET namespace = ?, title = ? WHERE namespace = ? AND title = ?`,
		toNS, toTitle, fromNS, fromTitle)
	return err
}

func (db *sqliteDb) SelectPendingWatches(userID int) ([]*wiki.WatchedPage, error) {
	rows, err := db.conn.Queryx(
		`SELECT user_id, namespace, title, notification_ts FROM Watchlist
			WHERE user_id = ? AND notification_ts IS NOT NULL
			ORDER BY notification_ts ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	watches := make([]*wiki.WatchedPage, 0)
	for rows.Next() {
		w := &wiki.WatchedPage{}
		if err := rows.StructScan(w); err != nil {
			return nil, err
		}
		watches = append(watches, w)
	}
	return watches, rows.Err()
}
