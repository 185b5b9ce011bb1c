package endpoints

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"travel-market-backend/internal/api"
	"travel-market-backend/internal/dto"
	"travel-market-backend/internal/model"
	"travel-market-backend/internal/queue"
	supportsvc "travel-market-backend/internal/service/support"
)

type supportMemoryRepository struct {
	agents   map[string]model.AgentItem
	messages []model.ChatMessageItem
}

func newSupportMemoryRepository() *supportMemoryRepository {
	return &supportMemoryRepository{
		agents: make(map[string]model.AgentItem),
	}
}

func (m *supportMemoryRepository) ListAgents(ctx context.Context) ([]model.AgentItem, error) {
	agents := make([]model.AgentItem, 0, len(m.agents))
	for _, agent := range m.agents {
		agents = append(agents, agent)
	}
	return agents, nil
}

func (m *supportMemoryRepository) GetAgent(ctx context.Context, agentID string) (model.AgentItem, error) {
	agent, ok := m.agents[agentID]
	if !ok {
		return model.AgentItem{}, supportsvc.ErrNotFound
	}
	return agent, nil
}

func (m *supportMemoryRepository) PutAgent(ctx context.Context, agent model.AgentItem) error {
	m.agents[agent.AgentID] = agent
	return nil
}

func (m *supportMemoryRepository) CreateMessage(ctx context.Context, message model.ChatMessageItem) error {
	m.messages = append(m.messages, message)
	return nil
}

func (m *supportMemoryRepository) ListMessages(ctx context.Context, ownerID string, limit int) ([]model.ChatMessageItem, error) {
	matched := make([]model.ChatMessageItem, 0)
	for _, message := range m.messages {
		if message.OwnerID == ownerID {
			matched = append(matched, message)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt < matched[j].CreatedAt
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[len(matched)-limit:]
	}
	return matched, nil
}

func supportFixedTime() time.Time {
	return time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
}

func setupSupportHandler(t *testing.T, repo supportsvc.Repository) (http.Handler, func()) {
	t.Helper()

	service := supportsvc.NewWithRepository(repo, supportFixedTime)
	supportEndpoints := NewSupportEndpoints(service, nil, SupportPaths{
		HistoryPrefix: "/api/support/history/",
	})

	queueManager := queue.NewRequestQueueManager(10, 1)
	server := api.NewAPIServer(":0", queueManager, nil, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/support/agent", server.MakeHTTPHandleFunc(supportEndpoints.OnDutyAgent))
	mux.HandleFunc("/api/support/history/", server.MakeHTTPHandleFunc(supportEndpoints.History))

	return mux, func() {
		queueManager.Shutdown()
	}
}

func TestOnDutyAgentEndpoint(t *testing.T) {
	repo := newSupportMemoryRepository()
	handler, cleanup := setupSupportHandler(t, repo)
	t.Cleanup(cleanup)

	repo.agents["agent-2"] = model.AgentItem{AgentID: "agent-2", Name: "Binh", Status: model.AgentStatusOnDuty}
	repo.agents["agent-1"] = model.AgentItem{AgentID: "agent-1", Name: "An", Status: model.AgentStatusOnDuty}
	repo.agents["agent-3"] = model.AgentItem{AgentID: "agent-3", Name: "Chi", Status: model.AgentStatusOffDuty}

	req := httptest.NewRequest(http.MethodGet, "/api/support/agent", nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}

	var resp dto.AgentResponse
	if err := json.Unmarshal(res.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.AgentID != "agent-1" {
		t.Fatalf("expected agent-1, got %s", resp.AgentID)
	}
}

func TestOnDutyAgentEndpointNoneAvailable(t *testing.T) {
	repo := newSupportMemoryRepository()
	handler, cleanup := setupSupportHandler(t, repo)
	t.Cleanup(cleanup)

	req := httptest.NewRequest(http.MethodGet, "/api/support/agent", nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", res.Code, res.Body.String())
	}
}

func TestHistoryEndpointOrdersOldestFirst(t *testing.T) {
	repo := newSupportMemoryRepository()
	handler, cleanup := setupSupportHandler(t, repo)
	t.Cleanup(cleanup)

	repo.messages = []model.ChatMessageItem{
		{OwnerID: "visitor-1", From: "agent-1", To: "visitor-1", Content: "second", CreatedAt: "2024-05-10T09:01:00Z"},
		{OwnerID: "visitor-1", From: "visitor-1", To: "agent-1", Content: "first", CreatedAt: "2024-05-10T09:00:00Z"},
		{OwnerID: "visitor-2", From: "visitor-2", To: "agent-1", Content: "other room", CreatedAt: "2024-05-10T09:00:30Z"},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/support/history/visitor-1", nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}

	var resp dto.HistoryResponse
	if err := json.Unmarshal(res.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(resp.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(resp.Messages))
	}
	if resp.Messages[0].Content != "first" || resp.Messages[1].Content != "second" {
		t.Fatalf("unexpected ordering: %+v", resp.Messages)
	}
}

func TestHistoryEndpointRejectsBadLimit(t *testing.T) {
	repo := newSupportMemoryRepository()
	handler, cleanup := setupSupportHandler(t, repo)
	t.Cleanup(cleanup)

	req := httptest.NewRequest(http.MethodGet, "/api/support/history/visitor-1?limit=abc", nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", res.Code, res.Body.String())
	}
}
