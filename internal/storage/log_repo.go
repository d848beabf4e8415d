package storage

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/larkwiki/larkwiki/wiki"
)

// Administrative log repository methods for sqliteDb

const logEntryQuery = `SELECT LogEntry.id, log_type, log_action, namespace, title, params, created, User.screenname AS actor_name
		FROM LogEntry JOIN User ON LogEntry.user_id = User.id`

func (db *sqliteDb) InsertLogEntry(entry *wiki.LogEntry) error {
	var userID int
	err := db.conn.Get(&userID, `SELECT id FROM User WHERE screenname = ?`, entry.ActorName)
	if errors.Is(err, sql.ErrNoRows) {
		return wiki.ErrUsernameNotFound
	}
	if err != nil {
		return err
	}

	res, err := db.conn.Exec(
		`INSERT INTO LogEntry(log_type, log_action, namespace, title, user_id, params, created)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.Type, entry.Action, entry.Namespace, entry.Title, userID, entry.Params, entry.Created)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	entry.ID = int(id)
	return nil
}

func (db *sqliteDb) SelectLogSince(namespace int, title string, ts time.Time) ([]*wiki.LogEntry, error) {
	rows, err := db.conn.Queryx(
		logEntryQuery+` WHERE namespace = ? AND title = ? AND created >= ?
			ORDER BY created DESC, LogEntry.id DESC`, namespace, title, ts)
	if err != nil {
		return nil, err
	}
	return scanLogEntries(rows)
}

func (db *sqliteDb) SelectDeletionLog(namespace int, title string) ([]*wiki.LogEntry, error) {
	rows, err := db.conn.Queryx(
		logEntryQuery+` WHERE namespace = ? AND title = ? AND log_type = ?
			ORDER BY created DESC, LogEntry.id DESC`, namespace, title, wiki.LogTypeDelete)
	if err != nil {
		return nil, err
	}
	return scanLogEntries(rows)
}

func scanLogEntries(rows *sqlx.Rows) ([]*wiki.LogEntry, error) {
	defer rows.Close()
	entries := make([]*wiki.LogEntry, 0)
	for rows.Next() {
		entry := &wiki.LogEntry{}
		if err := rows.StructScan(entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
