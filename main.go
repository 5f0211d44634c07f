package main

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/election-dashboard/auth"
	"github.com/danielhkuo/election-dashboard/cliparse"
	"github.com/danielhkuo/election-dashboard/dashboard"
	"github.com/danielhkuo/election-dashboard/db"
	"github.com/danielhkuo/election-dashboard/middleware"
	"github.com/danielhkuo/election-dashboard/models"
	"github.com/danielhkuo/election-dashboard/router"
	"github.com/danielhkuo/election-dashboard/source"
	"github.com/danielhkuo/election-dashboard/store"
)

func main() {
	var err error

	// Load .env if present
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	httpClient := &http.Client{Timeout: cfg.RequestTimeout + time.Second}

	// Pick the results source
	var src dashboard.Source
	var st *store.Store
	if cfg.UsesDatabase() {
		var conn *sql.DB
		conn, err = db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer conn.Close()

		if err := db.CreateSchema(conn); err != nil {
			slog.Error("schema creation failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Database schema ready", "type", cfg.DatabaseType)

		st = store.New(conn)
		if cfg.SeedDemo {
			if err := st.Seed(context.Background(), store.DefaultSeedOptions()); err != nil {
				slog.Error("seeding failed", "error", err)
				os.Exit(1)
			}
		}
		src = st
	} else {
		src = source.NewClient(cfg.SourceURL, httpClient)
		slog.Info("Using results backend", "url", cfg.SourceURL)
	}

	// Start polling
	poller := dashboard.NewPoller(src, cfg.AuditLimit, cfg.RequestTimeout)
	if err := poller.Start(models.FilterAll, cfg.PollInterval); err != nil {
		slog.Error("poller start failed", "error", err)
		os.Exit(1)
	}

	identity := auth.NewClient(cfg.IdentityURL, cfg.IdentityAPIKey, httpClient)
	if cfg.IdentityAPIKey == "" {
		slog.Warn("IDENTITY_API_KEY not set, login endpoints will be unavailable")
	}

	// Create router
	mux := router.NewRouter(poller, identity, st, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		poller.Stop()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "interval", cfg.PollInterval)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
