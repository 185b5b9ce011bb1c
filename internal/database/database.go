package database

import (
	"context"
	"fmt"

	"travel-market-backend/internal/env"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type DynamoDBClient struct {
	svc *dynamodb.Client
}

// NewDynamoDBClient builds the client from the environment. Static
// credentials and a custom endpoint are optional, which is what lets local
// development run against dynamodb-local.
func NewDynamoDBClient() (*DynamoDBClient, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(env.Get(env.AWSRegion)),
	}

	accessKey := env.Get(env.AWSID)
	secretKey := env.Get(env.AWSSecret)
	if accessKey != "" && secretKey != "" {
		provider := credentials.NewStaticCredentialsProvider(accessKey, secretKey, env.Get(env.AWSToken))
		loadOpts = append(loadOpts, config.WithCredentialsProvider(aws.NewCredentialsCache(provider)))
	}

	cfg, err := config.LoadDefaultConfig(context.Background(), loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	var clientOpts []func(*dynamodb.Options)
	if endpoint := env.Get(env.DynamoDBEndpoint); endpoint != "" {
		clientOpts = append(clientOpts, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
	}

	return &DynamoDBClient{svc: dynamodb.NewFromConfig(cfg, clientOpts...)}, nil
}

type Database struct {
	Client *DynamoDBClient
}

func NewDatabase() (*Database, error) {
	client, err := NewDynamoDBClient()
	if err != nil {
		return nil, fmt.Errorf("init dynamodb client: %w", err)
	}
	return &Database{Client: client}, nil
}
