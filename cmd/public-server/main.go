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

// Storefront server: visitor auth, tour quotes, bookings and the public
// support endpoints the chat panel talks to.
func main() {
	env.MustValidate()

	queueManager := queue.NewRequestQueueManager(10, 10)
	db, err := database.NewDatabase()
	if err != nil {
		log.Fatalf("db init failed: %v", err)
	}

	server := api.NewAPIServer(
		":82",
		queueManager,
		db,
		nil,
		router.UtilsRoutes(dto.PublicAPIPrefix),
		router.AuthRoutes(dto.PublicAPIPrefix),
		router.BookingRoutes(dto.PublicAPIPrefix),
		router.SupportPublicRoutes(dto.PublicAPIPrefix),
	)

	server.Run()
}
