package auth

import (
	"context"
	"errors"
	"strings"

	"travel-market-backend/internal/database"
	"travel-market-backend/internal/model"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var ErrNotFound = errors.New("auth repository: not found")

type Repository interface {
	CreateUser(ctx context.Context, user model.UserItem) error
	GetUser(ctx context.Context, userID string) (model.UserItem, error)
	FindUserByEmail(ctx context.Context, email string) (model.UserItem, error)
}

type DynamoRepository struct {
	db *database.Database
}

func NewDynamoRepository(db *database.Database) Repository {
	return &DynamoRepository{db: db}
}

func (r *DynamoRepository) CreateUser(ctx context.Context, user model.UserItem) error {
	return r.db.Client.PutItem(ctx, model.UsersTable, user)
}

func (r *DynamoRepository) GetUser(ctx context.Context, userID string) (model.UserItem, error) {
	var user model.UserItem
	err := r.db.Client.GetItem(
		ctx,
		model.UsersTable,
		map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: userID},
		},
		&user,
	)
	if err != nil {
		if isNotFound(err) {
			return model.UserItem{}, ErrNotFound
		}
		return model.UserItem{}, err
	}
	return user, nil
}

func (r *DynamoRepository) FindUserByEmail(ctx context.Context, email string) (model.UserItem, error) {
	items, err := r.db.Client.Scan(ctx, database.ScanParams{
		Table:  model.UsersTable,
		Filter: "email = :email",
		Values: map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		return model.UserItem{}, err
	}
	if len(items) == 0 {
		return model.UserItem{}, ErrNotFound
	}

	var user model.UserItem
	if err := attributevalue.UnmarshalMap(items[0], &user); err != nil {
		return model.UserItem{}, err
	}
	return user, nil
}

func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "item not found")
}
