package main

import (
	"log"

	"github.com/existflow/ironplan/internal/config"
	"github.com/existflow/ironplan/internal/logger"
	"github.com/existflow/ironplan/internal/store"
	"github.com/existflow/ironplan/internal/token"
	"github.com/existflow/ironplan/server"
)

func main() {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := logger.Init(logger.Config{
		Level:    logger.ParseLevel(cfg.LogLevel),
		FilePath: cfg.LogFile,
		Console:  cfg.LogConsole,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	driver, dsn := cfg.StoreDSN()
	st, err := store.Open(driver, dsn)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Printf("Error closing store: %v", err)
		}
	}()

	srv := server.New(st, token.NewService(cfg.JWTSecret))

	logger.Info("Ironplan server starting", logger.F("port", cfg.Port), logger.F("driver", driver))
	log.Printf("Ironplan server starting on :%s", cfg.Port)
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
