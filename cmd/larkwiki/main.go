package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/larkwiki/larkwiki/internal/server"
)

func main() {
	app := server.Setup()

	handler := server.SlogLoggingMiddleware(app.Router())

	srv := &http.Server{
		Addr:    app.Config.Host,
		Handler: handler,
	}

	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("server starting", "url", "http://"+app.Config.Host)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if err := app.DB.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}
