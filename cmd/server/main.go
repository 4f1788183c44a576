package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"github.com/mlanys/roomsignal/internal/adapters/sqlite"
	"github.com/mlanys/roomsignal/internal/app/services"
	"github.com/mlanys/roomsignal/internal/config"
	"github.com/mlanys/roomsignal/internal/db"
	"github.com/mlanys/roomsignal/internal/observability"
	"github.com/mlanys/roomsignal/internal/server"
	"github.com/mlanys/roomsignal/internal/server/routes"
	"github.com/mlanys/roomsignal/pkg/pushgateway"
)

func main() {
	log := slog.New(observability.WrapSlogHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))
	slog.SetDefault(log)

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		return
	}

	database, err := db.New(cfg.Database.Path)
	if err != nil {
		slog.Error("Failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}()

	if cfg.Database.LogTiming {
		go logDBLatencyStats(log, database)
	}

	pusherStore := sqlite.NewPusherStore(database)
	relationStore := sqlite.NewRelationStore(database)
	stateStore := sqlite.NewStateStore(database)

	gateway := pushgateway.New(&http.Client{Timeout: cfg.GatewayTimeout()}, log)
	gateway.AccessToken = cfg.Push.GatewayToken

	dispatcher := services.NewDispatcher(stateStore, stateStore, gateway, log)
	tracker := services.NewRelationTracker(relationStore, stateStore)

	srv := server.New(log)
	srv.RegisterRouter(routes.NewPusherRoutes(pusherStore, stateStore))
	srv.RegisterRouter(routes.NewNotifyRoutes(dispatcher, tracker, pusherStore, log))
	srv.RegisterRouter(routes.NewRelationRoutes(tracker))
	srv.RegisterRouter(routes.NewSystemRoutes(database))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	slog.Info("Starting server", "port", cfg.Server.Port, "environment", cfg.Environment)
	slog.Error("Closing server", "error", srv.Start(addr))
}

func logDBLatencyStats(log *slog.Logger, database *db.Database) {
	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		stats := database.QueryLatencyStats()
		if len(stats) == 0 {
			continue
		}
		limit := 5
		if len(stats) < limit {
			limit = len(stats)
		}
		for index := 0; index < limit; index++ {
			entry := stats[index]
			log.Info("db_query_latency",
				"query", entry.Name,
				"count", entry.Count,
				"p50_ms", entry.P50.Milliseconds(),
				"p95_ms", entry.P95.Milliseconds(),
				"max_ms", entry.Max.Milliseconds(),
			)
		}
	}
}
