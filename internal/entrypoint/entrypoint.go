package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shelfwise/circulation/internal/accounts"
	"github.com/shelfwise/circulation/internal/audit"
	"github.com/shelfwise/circulation/internal/catalog"
	"github.com/shelfwise/circulation/internal/config"
	"github.com/shelfwise/circulation/internal/database"
	auditdb "github.com/shelfwise/circulation/internal/database/audit"
	"github.com/shelfwise/circulation/internal/database/books"
	"github.com/shelfwise/circulation/internal/database/users"
	http_controllers "github.com/shelfwise/circulation/internal/http"
	"github.com/shelfwise/circulation/internal/lending"
	"github.com/shelfwise/circulation/internal/notify"
	"github.com/shelfwise/circulation/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Run builds the whole service from configuration and serves until a signal
// arrives.
func Run(cfg *config.Config, version string) {
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	accountsService := accounts.NewService(users.NewRepository(db.DB), cfg.Auth.BcryptCost)
	catalogService := catalog.NewService(books.NewRepository(db.DB))

	bridge, err := notify.NewBridge(accountsService, os.Stdout, cfg.Notifications.Channel)
	if err != nil {
		log.Fatalf("Failed to initialize notification bridge: %v", err)
	}

	auditService := audit.NewService(auditdb.NewRepository(db.DB))

	dispatcher := notify.NewDispatcher()
	dispatcher.Subscribe(bridge)
	dispatcher.Subscribe(auditService)

	lendingService := lending.NewService(db.DB, accountsService, dispatcher, cfg.Loans.PeriodDays)

	var reminders *scheduler.ReminderScheduler
	if cfg.Reminders.Enabled {
		reminders = scheduler.NewReminderScheduler(lendingService, accountsService, dispatcher, cfg.Reminders.Schedule)
		if err := reminders.Start(context.Background()); err != nil {
			log.Fatalf("Failed to start reminder scheduler: %v", err)
		}
	} else {
		log.Printf("Reminder scheduler: disabled")
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database: db,
		Catalog:  catalogService,
		Accounts: accountsService,
		Lending:  lendingService,
		Bridge:   bridge,
		Audit:    auditService,
		Version:  version,
	})

	onShutdown := func(ctx context.Context) {
		if reminders != nil {
			reminders.Stop()
		}
	}

	Serve(router, cfg, onShutdown)
}

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down within the
// configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
