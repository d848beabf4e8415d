// Package testutil provides shared helpers for integration tests.
package testutil

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/larkwiki/larkwiki/internal/server"
	"github.com/larkwiki/larkwiki/internal/storage"
	"github.com/larkwiki/larkwiki/special"
	"github.com/larkwiki/larkwiki/templater"
	"github.com/larkwiki/larkwiki/wiki"
	"github.com/larkwiki/larkwiki/wiki/service"
	_ "modernc.org/sqlite"
)

// projectRoot returns the root directory of the project.
func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Dir(filepath.Dir(filename))
}

// TestConfig returns a config suitable for in-memory integration tests.
func TestConfig() *wiki.Config {
	return &wiki.Config{
		DatabaseFile:          ":memory:",
		Host:                  "localhost:8080",
		CookieSecret:          []byte("test-secret-key-for-sessions-32b"),
		CookieExpiry:          86400,
		ReviewLimit:           20,
		MinimumPasswordLength: 8,
	}
}

// SetupTestApp creates a full application instance backed by an in-memory
// database, with real templates loaded from the project root.
func SetupTestApp(t *testing.T) (*server.App, func()) {
	t.Helper()

	conf := TestConfig()

	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	// Each connection gets its own in-memory database; keep the pool at one.
	db.SetMaxOpenConns(1)
	if err := storage.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	database, err := storage.Init(db, conf)
	if err != nil {
		db.Close()
		t.Fatalf("failed to initialize storage: %v", err)
	}

	tmpl := templater.New()
	templatesPath := filepath.Join(projectRoot(), "templates")
	err = tmpl.Load(
		filepath.Join(templatesPath, "layouts", "*.html"),
		filepath.Join(templatesPath, "*.html"),
	)
	if err != nil {
		db.Close()
		t.Fatalf("failed to load templates: %v", err)
	}

	sessionService := service.NewSessionService(database)
	userService := service.NewUserService(database, database, conf.MinimumPasswordLength)
	pageService := service.NewPageService(database, database, database)
	watchService := service.NewWatchService(database)
	reviewService := service.NewReviewService(database, database, database)

	specialPages := special.NewRegistry()
	specialPages.Register("PendingReviews",
		special.NewPendingReviewsPage(reviewService, userService, tmpl, conf.ReviewLimit))

	app := &server.App{
		Templater:    tmpl,
		Pages:        pageService,
		Reviews:      reviewService,
		Watches:      watchService,
		Users:        userService,
		Sessions:     sessionService,
		SpecialPages: specialPages,
		Config:       conf,
		DB:           db,
	}

	cleanup := func() {
		db.Close()
	}

	return app, cleanup
}

// CreateTestUser creates a user through the user service and returns it.
func CreateTestUser(t *testing.T, app *server.App, screenname, email, password string) *wiki.User {
	t.Helper()

	user := &wiki.User{
		ScreenName:  screenname,
		Email:       email,
		RawPassword: password,
	}
	if err := app.Users.PostUser(user); err != nil {
		t.Fatalf("failed to create user %s: %v", screenname, err)
	}

	created, err := app.Users.GetUserByScreenName(screenname)
	if err != nil {
		t.Fatalf("failed to fetch created user %s: %v", screenname, err)
	}
	return created
}
