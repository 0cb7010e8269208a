package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/mrled/mailvet/internal/repository/dynamorepo"
	"github.com/mrled/mailvet/internal/repository/memrepo"
	"github.com/mrled/mailvet/internal/repository/redisrepo"
)

// Stores bundles the two repositories backed by the same engine.
type Stores struct {
	Domains DomainRepository
	Emails  EmailRepository
}

// Config holds configuration for creating the backing stores.
type Config struct {
	// FilePath for JSON file persistence.
	FilePath string

	// DynamoTable is the DynamoDB table name for persistence.
	DynamoTable string

	// DynamoEndpoint is an optional custom DynamoDB endpoint URL.
	DynamoEndpoint string

	// RedisAddr is the host:port of a Redis server for persistence.
	RedisAddr string

	// RedisPassword is the optional Redis auth password.
	RedisPassword string
}

// NewStores creates the domain and email repositories based on the provided
// configuration. Precedence when several backends are configured: DynamoDB,
// Redis, JSON file. With no backend configured the stores are purely
// in-memory, which is useful for one-shot CLI runs and tests.
func NewStores(ctx context.Context, cfg Config) (*Stores, error) {
	if cfg.DynamoTable != "" {
		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		var client *dynamodb.Client
		if cfg.DynamoEndpoint != "" {
			client = dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
				o.BaseEndpoint = &cfg.DynamoEndpoint
			})
		} else {
			client = dynamodb.NewFromConfig(awsCfg)
		}

		store := dynamorepo.New(client, cfg.DynamoTable)
		return &Stores{Domains: store, Emails: store.Emails()}, nil
	}

	if cfg.RedisAddr != "" {
		store, err := redisrepo.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		return &Stores{Domains: store, Emails: store.Emails()}, nil
	}

	if cfg.FilePath != "" {
		store, err := memrepo.NewWithPersistence(cfg.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to create file-backed store: %w", err)
		}
		return &Stores{Domains: store, Emails: store.Emails()}, nil
	}

	store := memrepo.New()
	return &Stores{Domains: store, Emails: store.Emails()}, nil
}
