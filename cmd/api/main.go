package main

import (
	"os"

	"github.com/yigit/hostel/internal/pkg/logger"
	"github.com/yigit/hostel/internal/server"
)

// @title HostelDesk API
// @version 1.0
// @description Data and consistency layer for the HostelDesk hostel management client

// @host localhost:8080
// @BasePath /api/v1
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
