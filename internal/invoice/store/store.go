package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Mdmuzammil18/invoice-app/internal/invoice"
	"github.com/Mdmuzammil18/invoice-app/internal/storage"
)

// Store keeps the full invoice list as a single JSON array under the
// invoices storage key, newest-first, rewriting the whole list after every
// mutation. Malformed stored data falls back to an empty list instead of
// failing startup.
type Store struct {
	kv storage.Store

	mu sync.Mutex // serializes read-modify-write cycles within this context
}

func New(kv storage.Store) *Store {
	return &Store{kv: kv}
}

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.load()
	list = append([]*invoice.Invoice{inv}, list...)

	return s.persist(list)
}

func (s *Store) GetInvoice(ctx context.Context, id string) (*invoice.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, inv := range s.load() {
		if inv.ID == id {
			return inv, nil
		}
	}

	return nil, invoice.ErrNotFound
}

func (s *Store) UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.load()

	for i, existing := range list {
		if existing.ID == inv.ID {
			list[i] = inv
			return s.persist(list)
		}
	}

	return invoice.ErrNotFound
}

func (s *Store) DeleteInvoice(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.load()
	kept := list[:0]

	for _, inv := range list {
		if inv.ID != id {
			kept = append(kept, inv)
		}
	}

	if len(kept) == len(list) {
		return nil
	}

	return s.persist(kept)
}

func (s *Store) ListInvoices(ctx context.Context) ([]*invoice.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(), nil
}

func (s *Store) load() []*invoice.Invoice {
	raw, ok := s.kv.Get(storage.KeyInvoices)
	if !ok {
		return nil
	}

	var list []*invoice.Invoice
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil
	}

	return list
}

func (s *Store) persist(list []*invoice.Invoice) error {
	if list == nil {
		list = []*invoice.Invoice{}
	}

	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encoding invoices: %w", err)
	}

	if err := s.kv.Set(storage.KeyInvoices, string(data)); err != nil {
		return fmt.Errorf("persisting invoices: %w", err)
	}

	return nil
}
