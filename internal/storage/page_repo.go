package storage

import (
	"database/sql"
	"errors"
	"time"

	"github.com/larkwiki/larkwiki/wiki"
)

// Page and Revision repository methods for sqliteDb

func (db *sqliteDb) SelectPage(namespace int, title string) (*wiki.Page, error) {
	page := &wiki.Page{}
	err := db.SelectPageStmt.Get(page, namespace, title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, wiki.ErrPageNotFound
	}
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (db *sqliteDb) SelectRevision(id int) (*wiki.Revision, error) {
	rev := &wiki.Revision{}
	err := db.SelectRevisionStmt.Get(rev, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, wiki.ErrRevisionNotFound
	}
	if err != nil {
		return nil, err
	}
	return rev, nil
}

func (db *sqliteDb) SelectLatestRevision(pageID int) (*wiki.Revision, error) {
	rev := &wiki.Revision{}
	err := db.SelectLatestRevisionStmt.Get(rev, pageID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, wiki.ErrRevisionNotFound
	}
	if err != nil {
		return nil, err
	}
	return rev, nil
}

func (db *sqliteDb) SelectRevisionsSince(pageID int, ts time.Time) ([]*wiki.Revision, error) {
	rows, err := db.conn.Queryx(
		`SELECT Revision.id, page_id, comment, content, created, previous_id, User.screenname AS actor_name
			FROM Revision JOIN User ON Revision.user_id = User.id
			WHERE page_id = ? AND created >= ?
			ORDER BY created DESC, Revision.id DESC`, pageID, ts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	revisions := make([]*wiki.Revision, 0)
	for rows.Next() {
		rev := &wiki.Revision{}
		if err := rows.StructScan(rev); err != nil {
			return nil, err
		}
		revisions = append(revisions, rev)
	}
	return revisions, rows.Err()
}

func (db *sqliteDb) InsertPage(page *wiki.Page) error {
	res, err := db.conn.Exec(
		`INSERT INTO Page(namespace, title) VALUES (?, ?)`, page.Namespace, page.Title)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	page.ID = int(id)
	return nil
}

func (db *sqliteDb) InsertRevision(rev *wiki.Revision) error {
	var userID int
	err := db.conn.Get(&userID, `SELECT id FROM User WHERE screenname = ?`, rev.ActorName)
	if errors.Is(err, sql.ErrNoRows) {
		return wiki.ErrUsernameNotFound
	}
	if err != nil {
		return err
	}

	res, err := db.conn.Exec(
		`INSERT INTO Revision(page_id, user_id, comment, content, created, previous_id)
			VALUES (?, ?, ?, ?, ?, ?)`,
		rev.PageID, userID, rev.Comment, rev.Content, rev.Created, rev.PreviousID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rev.ID = int(id)
	return nil
}

func (db *sqliteDb) MovePage(pageID int, namespace int, title string) error {
	_, err := db.conn.Exec(
		`UPDATE Page SET namespace = ?, title = ? WHERE id = ?`, namespace, title, pageID)
	return err
}

func (db *sqliteDb) DeletePage(pageID int) error {
	if _, err := db.conn.Exec(`DELETE FROM Revision WHERE page_id = ?`, pageID); err != nil {
		return err
	}
	_, err := db.conn.Exec(`DELETE FROM Page WHERE id = ?`, pageID)
	return err
}
