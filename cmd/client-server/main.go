package main

import (
	"log"

	"travel-market-backend/internal/api"
	"travel-market-backend/internal/api/router"
	"travel-market-backend/internal/database"
	"travel-market-backend/internal/dto"
	"travel-market-backend/internal/env"
	"travel-market-backend/internal/queue"
)

// Back-office server: agent-facing auth, conversation history and duty
// status management.
func main() {
	env.MustValidate()

	queueManager := queue.NewRequestQueueManager(10, 10)
	db, err := database.NewDatabase()
	if err != nil {
		log.Fatalf("db init failed: %v", err)
	}

	server := api.NewAPIServer(
		":81",
		queueManager,
		db,
		nil,
		router.UtilsRoutes(dto.ClientAPIPrefix),
		router.AuthRoutes(dto.ClientAPIPrefix),
		router.SupportAgentRoutes(dto.ClientAPIPrefix),
	)

	server.Run()
}
