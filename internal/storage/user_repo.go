package storage

import (
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/larkwiki/larkwiki/wiki"
)

// User repository methods for sqliteDb

func (db *sqliteDb) InsertUser(user *wiki.User) (err error) {
	var tx *sqlx.Tx
	tx, err = db.conn.Beginx()
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			slog.Error("user insert failed", "error", err)
			if rbErr := tx.Rollback(); rbErr != nil {
				slog.Error("transaction rollback failed", "error", rbErr)
			}
		} else {
			if commitErr := tx.Commit(); commitErr != nil {
				slog.Error("transaction commit failed", "error", commitErr)
			}
		}
	}()

	var res sql.Result
	res, err = tx.Exec(`INSERT INTO User(screenname, email) VALUES (?, ?)`, user.ScreenName, user.Email)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: User.screenname") {
			return wiki.ErrUsernameTaken
		} else if strings.Contains(err.Error(), "UNIQUE constraint failed: User.email") {
			return wiki.ErrEmailTaken
		}
		return
	}

	if _, err = tx.Exec(`INSERT INTO Password(user_id, passwordhash) VALUES (last_insert_rowid(), ?)`, user.PasswordHash); err != nil {
		return
	}

	var id int64
	if id, err = res.LastInsertId(); err != nil {
		return
	}
	user.ID = int(id)

	return nil
}

func (db *sqliteDb) SelectUserByScreenname(screenname string, withHash bool) (*wiki.User, error) {
	user := &wiki.User{}

	var err error
	if withHash {
		err = db.SelectUserScreennameWithHashStmt.Get(user, screenname)
	} else {
		err = db.SelectUserScreennameStmt.Get(user, screenname)
	}

	return user, err
}

func (db *sqliteDb) SelectUserByID(id int) (*wiki.User, error) {
	user := &wiki.User{}
	err := db.SelectUserByIDStmt.Get(user, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, wiki.ErrUsernameNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (db *sqliteDb) UpdateUserRole(id int, role string) error {
	_, err := db.conn.Exec(`UPDATE User SET role = ? WHERE id = ?`, role, id)
	return err
}
