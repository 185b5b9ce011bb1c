package support

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"travel-market-backend/internal/model"
)

type memoryRepository struct {
	mu       sync.Mutex
	agents   map[string]model.AgentItem
	messages map[string][]model.ChatMessageItem
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		agents:   make(map[string]model.AgentItem),
		messages: make(map[string][]model.ChatMessageItem),
	}
}

func (m *memoryRepository) ListAgents(ctx context.Context) ([]model.AgentItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	agents := make([]model.AgentItem, 0, len(m.agents))
	for _, agent := range m.agents {
		agents = append(agents, agent)
	}
	return agents, nil
}

func (m *memoryRepository) GetAgent(ctx context.Context, agentID string) (model.AgentItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	agent, ok := m.agents[agentID]
	if !ok {
		return model.AgentItem{}, ErrNotFound
	}
	return agent, nil
}

func (m *memoryRepository) PutAgent(ctx context.Context, agent model.AgentItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.agents[agent.AgentID] = agent
	return nil
}

func (m *memoryRepository) CreateMessage(ctx context.Context, message model.ChatMessageItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[message.OwnerID] = append(m.messages[message.OwnerID], message)
	return nil
}

func (m *memoryRepository) ListMessages(ctx context.Context, ownerID string, limit int) ([]model.ChatMessageItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]model.ChatMessageItem, 0)
	items = append(items, m.messages[ownerID]...)
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt < items[j].CreatedAt
	})
	if limit > 0 && len(items) > limit {
		items = items[len(items)-limit:]
	}
	return items, nil
}

func TestOnDutyAgentPicksLowestID(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, nil)

	repo.agents["agent-b"] = model.AgentItem{AgentID: "agent-b", Status: model.AgentStatusOnDuty}
	repo.agents["agent-a"] = model.AgentItem{AgentID: "agent-a", Status: model.AgentStatusOnDuty}
	repo.agents["agent-0"] = model.AgentItem{AgentID: "agent-0", Status: model.AgentStatusOffDuty}

	agent, err := svc.OnDutyAgent(context.Background())
	if err != nil {
		t.Fatalf("OnDutyAgent error: %v", err)
	}
	if agent.AgentID != "agent-a" {
		t.Fatalf("expected agent-a, got %s", agent.AgentID)
	}
}

func TestOnDutyAgentNoneAvailable(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, nil)

	repo.agents["agent-a"] = model.AgentItem{AgentID: "agent-a", Status: model.AgentStatusOffDuty}

	_, err := svc.OnDutyAgent(context.Background())
	if err == nil {
		t.Fatal("expected error with no agents on duty")
	}
	svcErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if svcErr.Code != ErrorCodeNotFound {
		t.Fatalf("expected not_found, got %s", svcErr.Code)
	}
}

func TestRecordMessageKeepsClientTimestamp(t *testing.T) {
	repo := newMemoryRepository()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := NewWithRepository(repo, func() time.Time { return now })

	msg, err := svc.RecordMessage(context.Background(), RecordMessageParams{
		OwnerID:   "anonymous_1740000000000_ab12cd34",
		From:      "anonymous_1740000000000_ab12cd34",
		To:        "agent-a",
		Content:   "Is the Ha Long cruise still available?",
		CreatedAt: "2026-03-01T09:59:58Z",
	})
	if err != nil {
		t.Fatalf("RecordMessage error: %v", err)
	}
	if msg.CreatedAt != "2026-03-01T09:59:58Z" {
		t.Fatalf("client timestamp was rewritten: %s", msg.CreatedAt)
	}
	if msg.MessageID == "" || msg.PK == "" {
		t.Fatalf("missing identifiers: %+v", msg)
	}
}

func TestRecordMessageValidation(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, nil)

	cases := []RecordMessageParams{
		{From: "a", To: "b", Content: "hi"},
		{OwnerID: "o", To: "b", Content: "hi"},
		{OwnerID: "o", From: "a", Content: "hi"},
		{OwnerID: "o", From: "a", To: "b", Content: "   "},
	}
	for i, params := range cases {
		if _, err := svc.RecordMessage(context.Background(), params); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}

func TestHistoryOrderedOldestFirst(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, nil)

	owner := "user-1"
	for _, ts := range []string{"2026-03-01T10:02:00Z", "2026-03-01T10:00:00Z", "2026-03-01T10:01:00Z"} {
		if _, err := svc.RecordMessage(context.Background(), RecordMessageParams{
			OwnerID:   owner,
			From:      owner,
			To:        "agent-a",
			Content:   "message at " + ts,
			CreatedAt: ts,
		}); err != nil {
			t.Fatalf("RecordMessage error: %v", err)
		}
	}

	history, err := svc.History(context.Background(), owner, 50)
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(history))
	}
	for i := 1; i < len(history); i++ {
		if history[i-1].CreatedAt > history[i].CreatedAt {
			t.Fatalf("history not sorted: %s after %s", history[i-1].CreatedAt, history[i].CreatedAt)
		}
	}
}

func TestSetAgentStatus(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, nil)

	repo.agents["agent-a"] = model.AgentItem{AgentID: "agent-a", Status: model.AgentStatusOffDuty}

	agent, err := svc.SetAgentStatus(context.Background(), "agent-a", model.AgentStatusOnDuty)
	if err != nil {
		t.Fatalf("SetAgentStatus error: %v", err)
	}
	if agent.Status != model.AgentStatusOnDuty {
		t.Fatalf("status not updated: %s", agent.Status)
	}

	if _, err := svc.SetAgentStatus(context.Background(), "ghost", model.AgentStatusOnDuty); err == nil {
		t.Fatal("expected not found error")
	}
}
