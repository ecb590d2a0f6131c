package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}

	db, err := openDB(cfg)
	if err != nil {
		slog.Error("database", "error", err)
		os.Exit(1)
	}

	app, err := NewApp(db, cfg)
	if err != nil {
		slog.Error("startup", "error", err)
		os.Exit(1)
	}

	r := gin.Default()
	app.setupRoutes(r)

	slog.Info("listening", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server", "error", err)
		os.Exit(1)
	}
}
