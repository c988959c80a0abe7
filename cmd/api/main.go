package main

import (
	"os"

	"github.com/yigit/learnhub/internal/pkg/logger"
	"github.com/yigit/learnhub/internal/server"
)

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// details are logged by the setup step that failed
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
