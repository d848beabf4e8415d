package storage

import (
	"github.com/jmoiron/sqlx"
	"github.com/larkwiki/larkwiki/wiki"
	_ "modernc.org/sqlite"
)

// PreparedStatements holds the prepared SQL statements used for database
// queries. This struct is exported to allow reuse in test utilities.
type PreparedStatements struct {
	SelectPageStmt                   *sqlx.Stmt
	SelectLatestRevisionStmt         *sqlx.Stmt
	SelectRevisionStmt               *sqlx.Stmt
	SelectUserScreennameStmt         *sqlx.Stmt
	SelectUserScreennameWithHashStmt *sqlx.Stmt
	SelectUserByIDStmt               *sqlx.Stmt
}

// InitializeStatements prepares all the SQL statements needed for database
// operations. Exported for reuse in test utilities.
func InitializeStatements(conn *sqlx.DB) (*PreparedStatements, error) {
	stmts := &PreparedStatements{}
	var err error

	stmts.SelectPageStmt, err = conn.Preparex(
		`SELECT id, namespace, title FROM Page WHERE namespace = ? AND title = ?`)
	if err != nil {
		return nil, err
	}

	revisionQuery := `SELECT Revision.id, page_id, comment, content, created, previous_id, User.screenname AS actor_name
			FROM Revision JOIN User ON Revision.user_id = User.id`

	stmts.SelectLatestRevisionStmt, err = conn.Preparex(
		revisionQuery + ` WHERE page_id = ? ORDER BY Revision.id DESC LIMIT 1`)
	if err != nil {
		return nil, err
	}

	stmts.SelectRevisionStmt, err = conn.Preparex(revisionQuery + ` WHERE Revision.id = ?`)
	if err != nil {
		return nil, err
	}

	stmts.SelectUserScreennameStmt, err = conn.Preparex(
		`SELECT id, screenname, email, role, created_at FROM User WHERE screenname = ?`)
	if err != nil {
		return nil, err
	}

	stmts.SelectUserScreennameWithHashStmt, err = conn.Preparex(`
		SELECT id, screenname, email, role, created_at, passwordhash
			FROM User JOIN Password ON Password.user_id = User.id WHERE screenname = ?`)
	if err != nil {
		return nil, err
	}

	stmts.SelectUserByIDStmt, err = conn.Preparex(
		`SELECT id, screenname, email, role, created_at FROM User WHERE id = ?`)
	if err != nil {
		return nil, err
	}

	return stmts, nil
}

// sqliteDb is the main database struct that embeds all repository
// functionality. Methods are defined in separate files:
//   - page_repo.go: Page and Revision operations
//   - log_repo.go: administrative log operations
//   - watch_repo.go: watchlist and notification operations
//   - user_repo.go: User operations
//
// Session operations are handled by the embedded SessionStore.
type sqliteDb struct {
	*SessionStore
	*PreparedStatements
	conn *sqlx.DB
}

// Init initializes the storage layer with an existing database connection.
// The connection should already have migrations applied via RunMigrations.
func Init(db *sqlx.DB, conf *wiki.Config) (*sqliteDb, error) {
	store := &sqliteDb{
		conn:         db,
		SessionStore: NewSessionStore(db, "/", conf.CookieExpiry, conf.CookieSecret),
	}

	var err error
	store.PreparedStatements, err = InitializeStatements(db)
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Open connects to the SQLite database file and applies migrations.
func Open(conf *wiki.Config) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", conf.DatabaseFile)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
