package main

import (
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/logger"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/server"
)

// @title FunctionallyAppropriate API
// @version 1.0
// @description Team scheduling and meeting coordination backend for special-education case management.

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey UserID
// @in header
// @name X-User-ID

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
