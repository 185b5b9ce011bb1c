package support

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"travel-market-backend/internal/database"
	"travel-market-backend/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var ErrNotFound = errors.New("support repository: not found")

type Repository interface {
	ListAgents(ctx context.Context) ([]model.AgentItem, error)
	GetAgent(ctx context.Context, agentID string) (model.AgentItem, error)
	PutAgent(ctx context.Context, agent model.AgentItem) error
	CreateMessage(ctx context.Context, message model.ChatMessageItem) error
	ListMessages(ctx context.Context, ownerID string, limit int) ([]model.ChatMessageItem, error)
}

type DynamoRepository struct {
	db *database.Database
}

func NewDynamoRepository(db *database.Database) Repository {
	return &DynamoRepository{db: db}
}

func (r *DynamoRepository) ListAgents(ctx context.Context) ([]model.AgentItem, error) {
	items, err := r.db.Client.ScanAll(ctx, model.AgentsTable)
	if err != nil {
		return nil, err
	}

	agents := make([]model.AgentItem, 0, len(items))
	for _, item := range items {
		var agent model.AgentItem
		if err := attributevalue.UnmarshalMap(item, &agent); err != nil {
			return nil, err
		}
		agents = append(agents, agent)
	}
	return agents, nil
}

func (r *DynamoRepository) GetAgent(ctx context.Context, agentID string) (model.AgentItem, error) {
	var agent model.AgentItem
	err := r.db.Client.GetItem(
		ctx,
		model.AgentsTable,
		map[string]types.AttributeValue{
			"agentId": &types.AttributeValueMemberS{Value: agentID},
		},
		&agent,
	)
	if err != nil {
		if isNotFound(err) {
			return model.AgentItem{}, ErrNotFound
		}
		return model.AgentItem{}, err
	}
	return agent, nil
}

func (r *DynamoRepository) PutAgent(ctx context.Context, agent model.AgentItem) error {
	return r.db.Client.PutItem(ctx, model.AgentsTable, agent)
}

func (r *DynamoRepository) CreateMessage(ctx context.Context, message model.ChatMessageItem) error {
	return r.db.Client.PutItem(ctx, model.MessagesTable, message)
}

func (r *DynamoRepository) ListMessages(ctx context.Context, ownerID string, limit int) ([]model.ChatMessageItem, error) {
	ascending := true
	items, err := r.db.Client.Query(ctx, database.QueryParams{
		Table:        model.MessagesTable,
		Index:        aws.String("byOwner"),
		KeyCondition: "ownerId = :ownerId",
		Values: map[string]types.AttributeValue{
			":ownerId": &types.AttributeValueMemberS{Value: ownerID},
		},
		Ascending: &ascending,
	})
	if err != nil && !isIndexNotFound(err) {
		return nil, err
	}

	if (err != nil && isIndexNotFound(err)) || items == nil {
		items, err = r.db.Client.Scan(ctx, database.ScanParams{
			Table:  model.MessagesTable,
			Filter: "ownerId = :ownerId",
			Values: map[string]types.AttributeValue{
				":ownerId": &types.AttributeValueMemberS{Value: ownerID},
			},
		})
		if err != nil {
			return nil, err
		}
	}

	messages := make([]model.ChatMessageItem, 0, len(items))
	for _, item := range items {
		var message model.ChatMessageItem
		if err := attributevalue.UnmarshalMap(item, &message); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}

	sort.Slice(messages, func(i, j int) bool {
		ti := parseTime(messages[i].CreatedAt)
		tj := parseTime(messages[j].CreatedAt)
		return ti.Before(tj)
	})

	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}

	return messages, nil
}

func parseTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "item not found")
}

func isIndexNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "index") && strings.Contains(msg, "not") && strings.Contains(msg, "found")
}
