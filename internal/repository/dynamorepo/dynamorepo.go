// Package dynamorepo implements the domain and email repositories on a
// single DynamoDB table (PK = record kind, SK = natural key).
package dynamorepo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/mrled/mailvet/internal/model"
)

// Store is a DynamoDB-backed implementation of both repositories.
type Store struct {
	client    *dynamodb.Client
	tableName string
}

// New creates a DynamoDB-backed store.
func New(client *dynamodb.Client, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
	}
}

func (s *Store) getItem(ctx context.Context, pk, sk string) (map[string]types.AttributeValue, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"pk": &types.AttributeValueMemberS{Value: pk},
			"sk": &types.AttributeValueMemberS{Value: sk},
		},
	})
	if err != nil {
		return nil, err
	}
	if result.Item == nil {
		return nil, model.ErrNotFound
	}
	return result.Item, nil
}

func (s *Store) putItem(ctx context.Context, dto any) error {
	item, err := attributevalue.MarshalMap(dto)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	// Unconditional PutItem: the repository contract is an upsert,
	// last write wins.
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	return err
}

func (s *Store) scanPartition(ctx context.Context, pk string) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue

	// Query by partition key; paginate so large caches list completely.
	paginator := dynamodb.NewQueryPaginator(s.client, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("pk = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: pk},
		},
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

// Get retrieves a domain record by domain name.
func (s *Store) Get(ctx context.Context, domain string) (*model.DomainRecord, error) {
	item, err := s.getItem(ctx, domainPartition, domain)
	if err != nil {
		if err == model.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get domain record: %w", err)
	}

	var dto domainDTO
	if err := attributevalue.UnmarshalMap(item, &dto); err != nil {
		return nil, fmt.Errorf("failed to unmarshal domain record: %w", err)
	}
	return dto.toModel(), nil
}

// Put creates or overwrites a domain record.
func (s *Store) Put(ctx context.Context, record *model.DomainRecord) error {
	if record == nil {
		return fmt.Errorf("domain record cannot be nil")
	}
	if err := s.putItem(ctx, domainDTOFromModel(record)); err != nil {
		return fmt.Errorf("failed to store domain record: %w", err)
	}
	return nil
}

// List retrieves all domain records.
func (s *Store) List(ctx context.Context) ([]*model.DomainRecord, error) {
	items, err := s.scanPartition(ctx, domainPartition)
	if err != nil {
		return nil, fmt.Errorf("failed to list domain records: %w", err)
	}

	records := make([]*model.DomainRecord, 0, len(items))
	for _, item := range items {
		var dto domainDTO
		if err := attributevalue.UnmarshalMap(item, &dto); err != nil {
			return nil, fmt.Errorf("failed to unmarshal domain record: %w", err)
		}
		records = append(records, dto.toModel())
	}
	return records, nil
}

// Emails returns a view of the store implementing repository.EmailRepository.
func (s *Store) Emails() *EmailView {
	return &EmailView{store: s}
}

// EmailView exposes the email side of a Store.
type EmailView struct {
	store *Store
}

// Get retrieves an email record by address.
func (v *EmailView) Get(ctx context.Context, address string) (*model.EmailRecord, error) {
	item, err := v.store.getItem(ctx, emailPartition, address)
	if err != nil {
		if err == model.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get email record: %w", err)
	}

	var dto emailDTO
	if err := attributevalue.UnmarshalMap(item, &dto); err != nil {
		return nil, fmt.Errorf("failed to unmarshal email record: %w", err)
	}
	return dto.toModel(), nil
}

// Put creates or overwrites an email record.
func (v *EmailView) Put(ctx context.Context, record *model.EmailRecord) error {
	if record == nil {
		return fmt.Errorf("email record cannot be nil")
	}
	if err := v.store.putItem(ctx, emailDTOFromModel(record)); err != nil {
		return fmt.Errorf("failed to store email record: %w", err)
	}
	return nil
}

// List retrieves all email records.
func (v *EmailView) List(ctx context.Context) ([]*model.EmailRecord, error) {
	items, err := v.store.scanPartition(ctx, emailPartition)
	if err != nil {
		return nil, fmt.Errorf("failed to list email records: %w", err)
	}

	records := make([]*model.EmailRecord, 0, len(items))
	for _, item := range items {
		var dto emailDTO
		if err := attributevalue.UnmarshalMap(item, &dto); err != nil {
			return nil, fmt.Errorf("failed to unmarshal email record: %w", err)
		}
		records = append(records, dto.toModel())
	}
	return records, nil
}
