package main

import (
	"context"
	"log"

	"github.com/user/grades_analyzer_go/internal/config"
	"github.com/user/grades_analyzer_go/internal/logging"
)

func main() {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	logger, err := logging.New(cfg.Observability.LogLevel)
	if err != nil {
		log.Fatal("Error creating logger: ", err)
	}
	defer logger.Sync()

	NewApp(cfg).Run(context.Background())
}
