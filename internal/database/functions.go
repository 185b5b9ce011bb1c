package database

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// QueryParams narrows a table or index query. Values holds the expression
// attribute values referenced by KeyCondition.
type QueryParams struct {
	Table        string
	Index        *string
	KeyCondition string
	Values       map[string]types.AttributeValue
	Names        map[string]string
	Ascending    *bool
}

// ScanParams filters a full-table scan. An empty Filter scans everything.
type ScanParams struct {
	Table  string
	Filter string
	Values map[string]types.AttributeValue
	Names  map[string]string
}

func (c *DynamoDBClient) PutItem(ctx context.Context, tableName string, item interface{}) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}

	_, err = c.svc.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("put item %s: %w", tableName, err)
	}
	return nil
}

func (c *DynamoDBClient) GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue, out interface{}) error {
	res, err := c.svc.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(tableName),
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("get item %s: %w", tableName, err)
	}
	if res.Item == nil {
		return fmt.Errorf("item not found in %s", tableName)
	}

	if err := attributevalue.UnmarshalMap(res.Item, out); err != nil {
		return fmt.Errorf("unmarshal item: %w", err)
	}
	return nil
}

func (c *DynamoDBClient) Query(ctx context.Context, p QueryParams) ([]map[string]types.AttributeValue, error) {
	input := &dynamodb.QueryInput{
		TableName:                 aws.String(p.Table),
		IndexName:                 p.Index,
		KeyConditionExpression:    aws.String(p.KeyCondition),
		ExpressionAttributeValues: p.Values,
	}
	if p.Names != nil {
		input.ExpressionAttributeNames = p.Names
	}
	if p.Ascending != nil {
		input.ScanIndexForward = aws.Bool(*p.Ascending)
	}

	out, err := c.svc.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("query %s[%s]: %w", p.Table, aws.ToString(p.Index), err)
	}
	return out.Items, nil
}

func (c *DynamoDBClient) Scan(ctx context.Context, p ScanParams) ([]map[string]types.AttributeValue, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(p.Table),
	}
	if p.Filter != "" {
		input.FilterExpression = aws.String(p.Filter)
		input.ExpressionAttributeValues = p.Values
	}
	if p.Names != nil {
		input.ExpressionAttributeNames = p.Names
	}

	out, err := c.svc.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", p.Table, err)
	}
	return out.Items, nil
}

// ScanAll walks the whole table, following LastEvaluatedKey pagination.
func (c *DynamoDBClient) ScanAll(ctx context.Context, tableName string) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	var startKey map[string]types.AttributeValue

	for {
		result, err := c.svc.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("scan all %s: %w", tableName, err)
		}

		items = append(items, result.Items...)

		if result.LastEvaluatedKey == nil {
			return items, nil
		}
		startKey = result.LastEvaluatedKey
	}
}
