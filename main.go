// main.go
package main

import (
	"context"
	"log"
	"os"

	"github.com/khmelm/api-yamdb/cmd"
	"github.com/khmelm/api-yamdb/internal/data/repository"
	"github.com/khmelm/api-yamdb/internal/wire"
	"github.com/khmelm/api-yamdb/pkg/database"
	"github.com/khmelm/api-yamdb/pkg/mailer"
	"github.com/khmelm/api-yamdb/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Subcommand: import <dir> memuat dump CSV lalu keluar
	if len(os.Args) > 1 && os.Args[1] == "import" {
		if len(os.Args) < 3 {
			logger.Fatal("Usage: api-yamdb import <dir>")
		}
		if err := cmd.RunImport(context.Background(), os.Args[2], repos, logger); err != nil {
			logger.Fatal("Import failed", zap.Error(err))
		}
		logger.Info("Import finished", zap.String("dir", os.Args[2]))
		return
	}

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Outbound mail untuk kode konfirmasi signup
	mail := mailer.New(config.Email, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, mail, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
