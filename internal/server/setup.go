package server

import (
	"log/slog"
	"os"

	"github.com/larkwiki/larkwiki/internal/config"
	"github.com/larkwiki/larkwiki/internal/storage"
	"github.com/larkwiki/larkwiki/special"
	"github.com/larkwiki/larkwiki/templater"
	"github.com/larkwiki/larkwiki/wiki/service"
)

// Setup initializes the application: configuration, storage, services, and
// the special page registry.
func Setup() *App {
	conf := config.SetupConfig()

	t := templater.New()
	if err := t.Load("templates/layouts/*.html", "templates/*.html"); err != nil {
		slog.Error("failed to load templates", "error", err)
		os.Exit(1)
	}

	db, err := storage.Open(conf)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	database, err := storage.Init(db, conf)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}

	sessionService := service.NewSessionService(database)
	userService := service.NewUserService(database, database, conf.MinimumPasswordLength)
	pageService := service.NewPageService(database, database, database)
	watchService := service.NewWatchService(database)
	reviewService := service.NewReviewService(database, database, database)

	specialPages := special.NewRegistry()
	specialPages.Register("PendingReviews",
		special.NewPendingReviewsPage(reviewService, userService, t, conf.ReviewLimit))

	return &App{
		Templater:    t,
		Pages:        pageService,
		Reviews:      reviewService,
		Watches:      watchService,
		Users:        userService,
		Sessions:     sessionService,
		SpecialPages: specialPages,
		Config:       conf,
		DB:           db,
	}
}
