package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetRoomClientsListsConnectedClients(t *testing.T) {
	hub := NewHub()
	hub.Rooms["anonymous_1715331600000_ab12cd34"] = &Room{
		Id: "anonymous_1715331600000_ab12cd34",
		Clients: map[string]*WSClient{
			"anonymous_1715331600000_ab12cd34": {ID: "anonymous_1715331600000_ab12cd34", Name: "Lan"},
			"agent-1":                          {ID: "agent-1", Name: "An"},
		},
	}
	handler := NewHandler(hub)

	req := httptest.NewRequest(http.MethodGet, "/api/ws/v1/support/clients?roomId=anonymous_1715331600000_ab12cd34", nil)
	res := httptest.NewRecorder()

	handler.GetRoomClients(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	var clients []ClientRes
	if err := json.Unmarshal(res.Body.Bytes(), &clients); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(clients) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(clients))
	}

	names := make(map[string]string)
	for _, client := range clients {
		names[client.ID] = client.Name
	}
	if names["agent-1"] != "An" {
		t.Fatalf("expected agent-1 named An, got %q", names["agent-1"])
	}
	if names["anonymous_1715331600000_ab12cd34"] != "Lan" {
		t.Fatalf("expected visitor named Lan, got %q", names["anonymous_1715331600000_ab12cd34"])
	}
}

func TestGetRoomClientsUnknownRoomIsEmpty(t *testing.T) {
	handler := NewHandler(NewHub())

	req := httptest.NewRequest(http.MethodGet, "/api/ws/v1/support/clients?roomId=missing", nil)
	res := httptest.NewRecorder()

	handler.GetRoomClients(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var clients []ClientRes
	if err := json.Unmarshal(res.Body.Bytes(), &clients); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(clients) != 0 {
		t.Fatalf("expected empty list, got %d clients", len(clients))
	}
}
