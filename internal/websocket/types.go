package websocket

type Room struct {
	Id      string               `json:"id"`
	Clients map[string]*WSClient `json:"clients"`
}

// WSMessage is the broadcast envelope. Content carries the serialized chat
// or presence payload verbatim; the hub never inspects it.
type WSMessage struct {
	Content   string `json:"content"`
	RoomID    string `json:"roomId"`
	Timestamp int64  `json:"timestamp"`
}

type RoomRes struct {
	ID string `json:"id"`
}

type ClientRes struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MessageSink receives every raw inbound frame for a room, used by the
// ws-server to persist chat payloads off the hot path.
type MessageSink interface {
	Record(roomID string, payload []byte)
}
