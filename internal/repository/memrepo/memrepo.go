// Package memrepo implements the domain and email repositories with
// in-memory maps, optionally backed by a JSON file for persistence across
// process restarts.
package memrepo

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mrled/mailvet/internal/model"
)

// Store holds both caches. It implements repository.DomainRepository and
// repository.EmailRepository; callers usually hand the same *Store to both
// sides of the orchestrator.
type Store struct {
	mu       sync.RWMutex
	domains  map[string]*model.DomainRecord
	emails   map[string]*model.EmailRecord
	filePath string
}

// fileImage is the on-disk JSON shape.
type fileImage struct {
	Domains []*model.DomainRecord `json:"domains"`
	Emails  []*model.EmailRecord  `json:"emails"`
}

// New creates a store without persistence. Data is lost when the process
// terminates.
func New() *Store {
	return &Store{
		domains: make(map[string]*model.DomainRecord),
		emails:  make(map[string]*model.EmailRecord),
	}
}

// NewWithPersistence creates a store backed by a JSON file. Existing data is
// loaded on initialization and every Put is written through to the file
// before it returns.
func NewWithPersistence(filePath string) (*Store, error) {
	s := &Store{
		domains:  make(map[string]*model.DomainRecord),
		emails:   make(map[string]*model.EmailRecord),
		filePath: filePath,
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, err
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// NewFromJSONString creates a non-persistent store initialized from a JSON
// document with "domains" and "emails" arrays. Useful for tests and fixtures.
func NewFromJSONString(jsonString string) (*Store, error) {
	s := New()
	if err := s.loadFromReader(strings.NewReader(jsonString)); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) loadFromReader(reader io.Reader) error {
	var img fileImage
	if err := json.NewDecoder(reader).Decode(&img); err != nil {
		return err
	}

	s.domains = make(map[string]*model.DomainRecord)
	for _, d := range img.Domains {
		s.domains[d.Domain] = d
	}
	s.emails = make(map[string]*model.EmailRecord)
	for _, e := range img.Emails {
		s.emails[e.Address] = e
	}
	return nil
}

func (s *Store) load() error {
	file, err := os.Open(s.filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return err
	}
	if stat.Size() == 0 {
		return nil
	}

	return s.loadFromReader(file)
}

// save writes the in-memory data to the JSON file.
// If filePath is empty, this is a no-op.
func (s *Store) save() error {
	if s.filePath == "" {
		return nil
	}

	img := fileImage{
		Domains: make([]*model.DomainRecord, 0, len(s.domains)),
		Emails:  make([]*model.EmailRecord, 0, len(s.emails)),
	}
	for _, d := range s.domains {
		img.Domains = append(img.Domains, d)
	}
	for _, e := range s.emails {
		img.Emails = append(img.Emails, e)
	}

	file, err := os.Create(s.filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(img)
}

// Get retrieves a domain record by domain name.
func (s *Store) Get(ctx context.Context, domain string) (*model.DomainRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.domains[domain]
	if !exists {
		return nil, model.ErrNotFound
	}
	cp := *record
	return &cp, nil
}

// Put creates or overwrites a domain record.
func (s *Store) Put(ctx context.Context, record *model.DomainRecord) error {
	if record == nil {
		return errors.New("domain record cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *record
	s.domains[record.Domain] = &cp
	return s.save()
}

// List retrieves all domain records.
func (s *Store) List(ctx context.Context) ([]*model.DomainRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.DomainRecord, 0, len(s.domains))
	for _, record := range s.domains {
		cp := *record
		result = append(result, &cp)
	}
	return result, nil
}

// Emails returns a view of the store implementing repository.EmailRepository.
// Both views share the same mutex and file, so writes from either side are
// serialized and land in the same JSON image.
func (s *Store) Emails() *EmailView {
	return &EmailView{store: s}
}

// EmailView exposes the email side of a Store.
type EmailView struct {
	store *Store
}

// Get retrieves an email record by address.
func (v *EmailView) Get(ctx context.Context, address string) (*model.EmailRecord, error) {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()

	record, exists := v.store.emails[address]
	if !exists {
		return nil, model.ErrNotFound
	}
	cp := *record
	return &cp, nil
}

// Put creates or overwrites an email record.
func (v *EmailView) Put(ctx context.Context, record *model.EmailRecord) error {
	if record == nil {
		return errors.New("email record cannot be nil")
	}

	v.store.mu.Lock()
	defer v.store.mu.Unlock()

	cp := *record
	v.store.emails[record.Address] = &cp
	return v.store.save()
}

// List retrieves all email records.
func (v *EmailView) List(ctx context.Context) ([]*model.EmailRecord, error) {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()

	result := make([]*model.EmailRecord, 0, len(v.store.emails))
	for _, record := range v.store.emails {
		cp := *record
		result = append(result, &cp)
	}
	return result, nil
}
