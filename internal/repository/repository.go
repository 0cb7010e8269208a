package repository

import (
	"context"

	"github.com/mrled/mailvet/internal/model"
)

// DomainRepository stores catch-all classifications keyed by mail domain.
//
// Put is an upsert: records are created on first need and overwritten on
// every subsequent confirmation, never deleted. Implementations must persist
// synchronously: Put returns only after the write is durable for the
// backend, so a concurrent reader never observes a partially-updated record.
type DomainRepository interface {
	// Get retrieves the record for a domain, or model.ErrNotFound.
	Get(ctx context.Context, domain string) (*model.DomainRecord, error)

	// Put creates or overwrites the record for record.Domain.
	Put(ctx context.Context, record *model.DomainRecord) error

	// List retrieves all domain records.
	List(ctx context.Context) ([]*model.DomainRecord, error)
}

// EmailRepository stores verification outcomes keyed by exact address.
// Same upsert and synchronous-persistence contract as DomainRepository.
type EmailRepository interface {
	// Get retrieves the record for an address, or model.ErrNotFound.
	Get(ctx context.Context, address string) (*model.EmailRecord, error)

	// Put creates or overwrites the record for record.Address.
	Put(ctx context.Context, record *model.EmailRecord) error

	// List retrieves all email records.
	List(ctx context.Context) ([]*model.EmailRecord, error)
}
