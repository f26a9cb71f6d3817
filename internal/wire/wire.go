// Package wire provides dependency injection for the nohack server.
// It assembles adapters, services, and the event fan-out from config.
package wire

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/Nolimiter/nOHACK/internal/adapters/memory"
	redisadapter "github.com/Nolimiter/nOHACK/internal/adapters/redis"
	"github.com/Nolimiter/nOHACK/internal/adapters/sqlite"
	"github.com/Nolimiter/nOHACK/internal/adapters/ws"
	"github.com/Nolimiter/nOHACK/internal/app"
	"github.com/Nolimiter/nOHACK/internal/auth"
	"github.com/Nolimiter/nOHACK/internal/config"
	"github.com/Nolimiter/nOHACK/internal/db"
	"github.com/Nolimiter/nOHACK/internal/ports/secondary"
	"github.com/Nolimiter/nOHACK/internal/server"
)

// App is the fully wired application.
type App struct {
	Config     *config.Config
	DB         *sql.DB
	Server     *server.Server
	Operations *app.OperationServiceImpl
	Hub        *ws.Hub
	EventHub   *memory.EventHub

	redisPub *redisadapter.Publisher
}

// Build assembles the application from configuration.
func Build(cfg *config.Config) (*App, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		var err error
		dbPath, err = db.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path: %w", err)
		}
	}

	database, err := db.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	userRepo := sqlite.NewUserRepository(database)
	operationRepo := sqlite.NewOperationRepository(database)
	attackRepo := sqlite.NewAttackRepository(database)
	defenseRepo := sqlite.NewDefenseRepository(database)

	hub := ws.NewHub()
	eventHub := memory.NewEventHub()
	sinks := []secondary.EventSink{hub, eventHub}

	var redisPub *redisadapter.Publisher
	if cfg.RedisAddr != "" {
		redisPub = redisadapter.NewPublisher(cfg.RedisAddr)
		sinks = append(sinks, redisPub)
	}
	sink := memory.NewFanoutSink(sinks...)

	operations := app.NewOperationService(userRepo, operationRepo, attackRepo, defenseRepo, sink, app.EngineConfig{
		Ticks:        cfg.Ticks,
		TickInterval: time.Duration(cfg.TickInterval),
	})

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.TokenTTL))
	authService := app.NewAuthService(userRepo, tokens)
	defenseService := app.NewDefenseService(defenseRepo, userRepo)
	attackService := app.NewAttackService(attackRepo)

	srv := server.New(operations, authService, defenseService, attackService, tokens, hub)

	return &App{
		Config:     cfg,
		DB:         database,
		Server:     srv,
		Operations: operations,
		Hub:        hub,
		EventHub:   eventHub,
		redisPub:   redisPub,
	}, nil
}

// Close drains in-flight operations and releases resources.
func (a *App) Close() {
	a.Operations.Wait()
	if a.redisPub != nil {
		if err := a.redisPub.Close(); err != nil {
			log.Printf("close redis: %v", err)
		}
	}
	if err := a.DB.Close(); err != nil {
		log.Printf("close database: %v", err)
	}
}
