package support

import (
	"context"
	"sort"
	"strings"
	"time"

	"travel-market-backend/internal/database"
	"travel-market-backend/internal/model"

	"github.com/google/uuid"
)

type ErrorCode string

const (
	ErrorCodeValidation ErrorCode = "validation_error"
	ErrorCodeNotFound   ErrorCode = "not_found"
	ErrorCodeInternal   ErrorCode = "internal_error"
)

type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// RecordMessageParams carries one chat message to persist. OwnerID is the
// visitor identity the conversation is filed under; CreatedAt is the
// sender's client timestamp and is stored verbatim when present.
type RecordMessageParams struct {
	OwnerID       string
	From          string
	To            string
	Content       string
	CreatedAt     string
	SenderName    string
	SenderEmail   string
	CorrelationID string
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func New(db *database.Database) *Service {
	return &Service{
		repo: NewDynamoRepository(db),
		now:  time.Now,
	}
}

func NewWithRepository(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo: repo,
		now:  now,
	}
}

// OnDutyAgent returns the support agent visitors should be routed to. With
// several agents on duty the lowest agent id wins, so every lookup within a
// shift resolves the same counterparty.
func (s *Service) OnDutyAgent(ctx context.Context) (model.AgentItem, error) {
	agents, err := s.repo.ListAgents(ctx)
	if err != nil {
		return model.AgentItem{}, newError(ErrorCodeInternal, "failed to list agents", err)
	}

	onDuty := make([]model.AgentItem, 0, len(agents))
	for _, agent := range agents {
		if agent.Status == model.AgentStatusOnDuty {
			onDuty = append(onDuty, agent)
		}
	}
	if len(onDuty) == 0 {
		return model.AgentItem{}, newError(ErrorCodeNotFound, "no support agent available", nil)
	}

	sort.Slice(onDuty, func(i, j int) bool {
		return onDuty[i].AgentID < onDuty[j].AgentID
	})

	return onDuty[0], nil
}

func (s *Service) History(ctx context.Context, ownerID string, limit int) ([]model.ChatMessageItem, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, newError(ErrorCodeValidation, "ownerId is required", nil)
	}
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	messages, err := s.repo.ListMessages(ctx, ownerID, limit)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to list messages", err)
	}
	return messages, nil
}

func (s *Service) RecordMessage(ctx context.Context, params RecordMessageParams) (model.ChatMessageItem, error) {
	ownerID := strings.TrimSpace(params.OwnerID)
	from := strings.TrimSpace(params.From)
	to := strings.TrimSpace(params.To)
	content := strings.TrimSpace(params.Content)

	if ownerID == "" {
		return model.ChatMessageItem{}, newError(ErrorCodeValidation, "ownerId is required", nil)
	}
	if from == "" || to == "" {
		return model.ChatMessageItem{}, newError(ErrorCodeValidation, "from and to are required", nil)
	}
	if content == "" {
		return model.ChatMessageItem{}, newError(ErrorCodeValidation, "message content is required", nil)
	}

	createdAt := strings.TrimSpace(params.CreatedAt)
	if createdAt == "" {
		createdAt = s.now().UTC().Format(time.RFC3339)
	}

	messageID := uuid.NewString()
	message := model.ChatMessageItem{
		PK:            model.MessagePK(ownerID, messageID),
		OwnerID:       ownerID,
		MessageID:     messageID,
		From:          from,
		To:            to,
		Content:       content,
		CreatedAt:     createdAt,
		SenderName:    strings.TrimSpace(params.SenderName),
		SenderEmail:   strings.TrimSpace(params.SenderEmail),
		CorrelationID: strings.TrimSpace(params.CorrelationID),
	}

	if err := s.repo.CreateMessage(ctx, message); err != nil {
		return model.ChatMessageItem{}, newError(ErrorCodeInternal, "failed to store message", err)
	}

	return message, nil
}

func (s *Service) SetAgentStatus(ctx context.Context, agentID string, status model.AgentStatus) (model.AgentItem, error) {
	agentID = strings.TrimSpace(agentID)
	if agentID == "" {
		return model.AgentItem{}, newError(ErrorCodeValidation, "agentId is required", nil)
	}
	if status != model.AgentStatusOnDuty && status != model.AgentStatusOffDuty {
		return model.AgentItem{}, newError(ErrorCodeValidation, "invalid agent status", nil)
	}

	agent, err := s.repo.GetAgent(ctx, agentID)
	if err != nil {
		if err == ErrNotFound {
			return model.AgentItem{}, newError(ErrorCodeNotFound, "agent not found", err)
		}
		return model.AgentItem{}, newError(ErrorCodeInternal, "failed to load agent", err)
	}

	agent.Status = status
	if err := s.repo.PutAgent(ctx, agent); err != nil {
		return model.AgentItem{}, newError(ErrorCodeInternal, "failed to update agent", err)
	}

	return agent, nil
}
