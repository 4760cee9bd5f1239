// Package main initializes and starts the site server, setting up
// configuration, logging, the database, repositories, services, sessions
// and handlers.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/rodastrial/sitedesk/internal/config"
	"github.com/rodastrial/sitedesk/internal/db"
	"github.com/rodastrial/sitedesk/internal/logger"
	"github.com/rodastrial/sitedesk/internal/repository"
	"github.com/rodastrial/sitedesk/internal/server/handler/http"
	"github.com/rodastrial/sitedesk/internal/service"
	"github.com/rodastrial/sitedesk/internal/session"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line, config file and environment configuration.
	options, err := config.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}
	zapLogger := log.Log
	for _, w := range options.Warnings() {
		zapLogger.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the database, create tables and seed default content.
	siteDB, err := db.Open(ctx, options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer siteDB.Close()

	contentRepo := repository.NewContentRepository(siteDB)
	contactRepo := repository.NewContactRepository(siteDB)
	if n, err := contactRepo.CountMessages(ctx); err == nil {
		zapLogger.Info("database ready",
			zap.String("driver", db.DriverFor(options.DatabaseDSN)),
			zap.Int64("messages", n),
		)
	}

	// Admin credentials and session handling.
	creds, err := service.NewCredentials(options.AdminUser, options.AdminPass, options.AdminPassHash)
	if err != nil {
		zapLogger.Fatal("invalid admin credentials", zap.Error(err))
	}
	codec, err := session.NewCodec(options.SessionSecret)
	if err != nil {
		zapLogger.Fatal("invalid session secret", zap.Error(err))
	}
	sessionStore := session.NewStore(options.SessionIdleTimeout.Duration)
	sessions := session.NewManager(sessionStore, codec, session.CookieOptions{Secure: options.CookieSecure})
	session.StartReaper(ctx, sessionStore, time.Minute, zapLogger)

	// Initialize business-logic services.
	authService := service.NewAuthService(creds)
	contentService := service.NewContentService(contentRepo, authService)
	contactService := service.NewContactService(contactRepo, authService)

	// Create HTTP handlers and the router.
	router := http.NewRouter(
		&http.ContentHandler{ContentService: contentService, Logger: zapLogger},
		&http.ContactHandler{ContactService: contactService, Logger: zapLogger},
		&http.AdminHandler{AuthService: authService, ContactService: contactService, Logger: zapLogger},
		sessions,
		http.StaticDirs{Public: options.StaticDir, Admin: options.AdminDir},
		zapLogger,
	)

	server := &nethttp.Server{
		Addr:              options.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	zapLogger.Info("starting HTTP server", zap.String("addr", server.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
	<-shutdownDone
	zapLogger.Info("server stopped")
}
