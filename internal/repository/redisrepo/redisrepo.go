// Package redisrepo implements the domain and email repositories on Redis.
//
// Records are stored as JSON values under "mailvet:domain:<domain>" and
// "mailvet:email:<address>" with no TTL: hit counters must survive, and
// staleness is handled by the freshness window at read time, not by
// eviction.
package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mrled/mailvet/internal/model"
)

const (
	domainKeyPrefix = "mailvet:domain:"
	emailKeyPrefix  = "mailvet:email:"
)

// Store is a Redis-backed implementation of both repositories.
type Store struct {
	client *redis.Client
}

// New creates a Redis-backed store from an already connected client.
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

// Connect dials Redis and verifies the connection with a ping.
func Connect(ctx context.Context, addr, password string) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return New(client), nil
}

func (s *Store) get(ctx context.Context, key string, out any) error {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (s *Store) put(ctx context.Context, key string, record any) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, raw, 0).Err()
}

func (s *Store) listKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// Get retrieves a domain record by domain name.
func (s *Store) Get(ctx context.Context, domain string) (*model.DomainRecord, error) {
	var record model.DomainRecord
	if err := s.get(ctx, domainKeyPrefix+domain, &record); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get domain record: %w", err)
	}
	return &record, nil
}

// Put creates or overwrites a domain record.
func (s *Store) Put(ctx context.Context, record *model.DomainRecord) error {
	if record == nil {
		return errors.New("domain record cannot be nil")
	}
	if err := s.put(ctx, domainKeyPrefix+record.Domain, record); err != nil {
		return fmt.Errorf("failed to store domain record: %w", err)
	}
	return nil
}

// List retrieves all domain records.
func (s *Store) List(ctx context.Context) ([]*model.DomainRecord, error) {
	keys, err := s.listKeys(ctx, domainKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list domain records: %w", err)
	}

	records := make([]*model.DomainRecord, 0, len(keys))
	for _, key := range keys {
		var record model.DomainRecord
		if err := s.get(ctx, key, &record); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to list domain records: %w", err)
		}
		records = append(records, &record)
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
	var record model.EmailRecord
	if err := v.store.get(ctx, emailKeyPrefix+address, &record); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get email record: %w", err)
	}
	return &record, nil
}

// Put creates or overwrites an email record.
func (v *EmailView) Put(ctx context.Context, record *model.EmailRecord) error {
	if record == nil {
		return errors.New("email record cannot be nil")
	}
	if err := v.store.put(ctx, emailKeyPrefix+record.Address, record); err != nil {
		return fmt.Errorf("failed to store email record: %w", err)
	}
	return nil
}

// List retrieves all email records.
func (v *EmailView) List(ctx context.Context) ([]*model.EmailRecord, error) {
	keys, err := v.store.listKeys(ctx, emailKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list email records: %w", err)
	}

	records := make([]*model.EmailRecord, 0, len(keys))
	for _, key := range keys {
		var record model.EmailRecord
		if err := v.store.get(ctx, key, &record); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to list email records: %w", err)
		}
		records = append(records, &record)
	}
	return records, nil
}
