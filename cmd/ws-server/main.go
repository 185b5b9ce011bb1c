package main

import (
	"context"
	"encoding/json"
	"log"

	"travel-market-backend/internal/api"
	"travel-market-backend/internal/api/router"
	"travel-market-backend/internal/database"
	"travel-market-backend/internal/dto"
	"travel-market-backend/internal/env"
	"travel-market-backend/internal/queue"
	supportsvc "travel-market-backend/internal/service/support"
	"travel-market-backend/internal/websocket"
)

// messageRecorder persists chat frames flowing through a room. Presence
// announcements and malformed frames are skipped, not errored.
type messageRecorder struct {
	service *supportsvc.Service
}

func (r *messageRecorder) Record(roomID string, payload []byte) {
	var frame struct {
		Type string `json:"type"`
		dto.ChatMessagePayload
	}
	if err := json.Unmarshal(payload, &frame); err != nil {
		log.Printf("skip unparseable frame in room %s: %v", roomID, err)
		return
	}
	if frame.Type == "presence" || frame.Content == "" {
		return
	}

	_, err := r.service.RecordMessage(context.Background(), supportsvc.RecordMessageParams{
		OwnerID:       roomID,
		From:          frame.From,
		To:            frame.To,
		Content:       frame.Content,
		CreatedAt:     frame.CreatedAt,
		SenderName:    frame.SenderName,
		SenderEmail:   frame.SenderEmail,
		CorrelationID: frame.CorrelationID,
	})
	if err != nil {
		log.Printf("record message in room %s: %v", roomID, err)
	}
}

func main() {
	env.MustValidate()

	queueManager := queue.NewRequestQueueManager(10, 10)
	db, err := database.NewDatabase()
	if err != nil {
		log.Fatalf("db init failed: %v", err)
	}

	hub := websocket.NewHub()
	go hub.Run()
	handler := websocket.NewHandler(hub)
	handler.SetMessageSink(&messageRecorder{service: supportsvc.New(db)})

	server := api.NewAPIServer(
		":83",
		queueManager,
		db,
		handler,
		router.UtilsRoutes(dto.WSAPIPrefix),
		router.SupportWebsocketRoutes(dto.WSAPIPrefix),
	)

	handler.SubscribeToRedisChannels()

	server.Run()
}
