package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"travel-market-backend/internal/env"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
)

var (
	upgrader    websocket.Upgrader
	redisClient *redis.Client
)

func init() {
	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	redisClient = redis.NewClient(&redis.Options{
		Addr:     env.Get(env.ChatRedisURL),
		Password: env.Get(env.ChatRedisPass),
		DB:       0,
	})
}

type Handler struct {
	hub         *Hub
	redisClient *redis.Client
	sink        MessageSink
}

func NewHandler(h *Hub) *Handler {
	return &Handler{
		hub:         h,
		redisClient: redisClient,
	}
}

// SetMessageSink wires a persistence sink for inbound frames. The ws-server
// attaches the support service here.
func (h *Handler) SetMessageSink(sink MessageSink) {
	h.sink = sink
}

func (h *Handler) subscribeToRoomChannel(roomID string) {
	if _, exists := h.hub.Rooms[roomID]; !exists {
		log.Printf("Room %s not found for subscription", roomID)
		return
	}

	log.Printf("Subscribing to Redis channel: %s", roomID)
	subscriber := h.redisClient.Subscribe(context.Background(), roomID)
	defer subscriber.Close()

	ch := subscriber.Channel()
	for msg := range ch {
		h.hub.Broadcast <- &WSMessage{
			Content:   msg.Payload,
			RoomID:    roomID,
			Timestamp: time.Now().Unix(),
		}
	}
	log.Printf("Unsubscribed from Redis channel: %s", roomID)
}

func (h *Handler) CreateRoom(id string) {
	if _, exists := h.hub.Rooms[id]; exists {
		return
	}

	room := &Room{
		Id:      id,
		Clients: make(map[string]*WSClient),
	}

	h.hub.Rooms[id] = room
	setRooms(len(h.hub.Rooms))

	// Ensure Redis subscription for the room only once
	go h.subscribeToRoomChannel(id)
}

func (h *Handler) JoinRoom(w http.ResponseWriter, r *http.Request, roomId, userId string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if conn == nil {
		http.Error(w, "Error conn", http.StatusBadRequest)
		return
	}

	cl := &WSClient{
		Conn:     conn,
		Message:  make(chan *WSMessage, 10),
		ID:       userId,
		Name:     r.URL.Query().Get("name"),
		RoomID:   roomId,
		done:     make(chan struct{}),
		isClosed: false,
	}

	h.hub.Register <- cl

	// Presence announce: relay who joined, with optional contact info, so
	// the counterparty sees a name before the first message.
	h.announcePresence(r, roomId, userId)

	go cl.keepAlive()
	go cl.writeMessage()
	go cl.readMessage(h.hub, h.sink)
}

func (h *Handler) announcePresence(r *http.Request, roomId, userId string) {
	presence := map[string]string{
		"type": "presence",
		"id":   userId,
	}
	if name := r.URL.Query().Get("name"); name != "" {
		presence["name"] = name
	}
	if email := r.URL.Query().Get("email"); email != "" {
		presence["email"] = email
	}

	payload, err := json.Marshal(presence)
	if err != nil {
		log.Printf("Error marshaling presence for %s: %v", userId, err)
		return
	}

	h.hub.Broadcast <- &WSMessage{
		Content:   string(payload),
		RoomID:    roomId,
		Timestamp: time.Now().Unix(),
	}
}

func (h *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	rooms := make([]RoomRes, 0)

	for _, room := range h.hub.Rooms {
		rooms = append(rooms, RoomRes{
			ID: room.Id,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(rooms)
}

// GetRoomClients lists who is connected to one room, identified by the
// roomId query parameter. Unknown rooms answer with an empty list.
func (h *Handler) GetRoomClients(w http.ResponseWriter, r *http.Request) {
	clients := make([]ClientRes, 0)

	if room, ok := h.hub.Rooms[r.URL.Query().Get("roomId")]; ok {
		for _, client := range room.Clients {
			clients = append(clients, ClientRes{
				ID:   client.ID,
				Name: client.Name,
			})
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(clients)
}

func (h *Handler) SubscribeToRedisChannels() {
	for _, room := range h.hub.Rooms {
		go h.subscribeToRoomChannel(room.Id)
	}
}
