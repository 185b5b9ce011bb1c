package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"travel-market-backend/internal/dto"
)

// Directory looks up the support agent currently taking conversations.
type Directory interface {
	OnDutyAgent(ctx context.Context) (string, error)
}

// HistoryFetcher loads the persisted conversation for an authenticated user.
type HistoryFetcher interface {
	History(ctx context.Context, userID string) ([]Message, error)
}

// Transport is a session's exclusive bidirectional connection. Publish is
// fire-and-forget; there is no delivery acknowledgement.
type Transport interface {
	Publish(msg Message) error
	Close() error
}

// Dialer opens a transport for one identity. Presence is announced as part
// of the connection handshake; inbound messages are delivered to onMessage
// from the read loop.
type Dialer interface {
	Dial(ctx context.Context, identity Identity, onMessage func(Message)) (Transport, error)
}

// WSDialer connects to the chat socket server over a websocket. The room is
// keyed by the visitor's identity id, and contact info rides along in the
// query string so the join announcement carries a name.
type WSDialer struct {
	BaseURL string
}

func (d *WSDialer) Dial(ctx context.Context, identity Identity, onMessage func(Message)) (Transport, error) {
	endpoint, err := url.Parse(strings.TrimRight(d.BaseURL, "/") + dto.SupportWebsocketPrefix(dto.WSAPIPrefix) + url.PathEscape(identity.ID))
	if err != nil {
		return nil, fmt.Errorf("parse websocket url: %w", err)
	}

	query := endpoint.Query()
	query.Set("id", identity.ID)
	if identity.DisplayName != "" {
		query.Set("name", identity.DisplayName)
	}
	if identity.DisplayEmail != "" {
		query.Set("email", identity.DisplayEmail)
	}
	endpoint.RawQuery = query.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial websocket: %w", err)
	}

	transport := &wsTransport{conn: conn}
	go transport.readLoop(onMessage)
	return transport, nil
}

type wsTransport struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	closed  bool
}

func (t *wsTransport) Publish(msg Message) error {
	payload, err := json.Marshal(dto.ChatMessagePayload{
		From:          msg.From,
		To:            msg.To,
		Content:       msg.Content,
		CreatedAt:     msg.CreatedAt,
		SenderName:    msg.SenderName,
		SenderEmail:   msg.SenderEmail,
		CorrelationID: msg.CorrelationID,
	})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	if t.closed {
		return fmt.Errorf("transport closed")
	}
	return t.conn.WriteMessage(websocket.TextMessage, payload)
}

func (t *wsTransport) Close() error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	return t.conn.Close()
}

// wsEnvelope is the hub's broadcast wrapper; the chat or presence payload
// rides inside Content as a JSON string.
type wsEnvelope struct {
	Content   string `json:"content"`
	RoomID    string `json:"roomId"`
	Timestamp int64  `json:"timestamp"`
}

type inboundFrame struct {
	Type string `json:"type"`
	dto.ChatMessagePayload
}

func (t *wsTransport) readLoop(onMessage func(Message)) {
	for {
		_, raw, err := t.conn.ReadMessage()
		if err != nil {
			t.writeMu.Lock()
			silent := t.closed
			t.writeMu.Unlock()
			if !silent {
				log.Printf("chat transport read: %v", err)
			}
			return
		}

		var envelope wsEnvelope
		if err := json.Unmarshal(raw, &envelope); err != nil {
			log.Printf("chat transport decode: %v", err)
			continue
		}

		var frame inboundFrame
		if err := json.Unmarshal([]byte(envelope.Content), &frame); err != nil {
			log.Printf("chat transport decode payload: %v", err)
			continue
		}
		if frame.Type == "presence" || frame.Content == "" {
			continue
		}

		onMessage(Message{
			From:          frame.From,
			To:            frame.To,
			Content:       frame.Content,
			CreatedAt:     frame.CreatedAt,
			SenderName:    frame.SenderName,
			SenderEmail:   frame.SenderEmail,
			CorrelationID: frame.CorrelationID,
		})
	}
}
