package invoice

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	// CreateInvoice prepends the invoice to the stored list (newest-first)
	// and persists.
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id string) (*Invoice, error)
	// UpdateInvoice replaces the stored record with the same id.
	UpdateInvoice(ctx context.Context, inv *Invoice) error
	// DeleteInvoice removes the record if present; absent ids are a no-op.
	DeleteInvoice(ctx context.Context, id string) error
	ListInvoices(ctx context.Context) ([]*Invoice, error)
}

type Service struct {
	repo Repository

	mu      sync.Mutex
	current *Invoice
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	InvoiceNumber string
	Date          string
	DueDate       string
	Status        Status
	BillFrom      Address
	BillTo        Address
	Items         []Item
	Tax           float64
	Discount      float64
	Notes         string
	Terms         string
}

// Create assigns a fresh id and timestamps, derives the totals from the
// items, and stores the invoice at the head of the list.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Invoice, error) {
	now := time.Now().UTC()

	status := params.Status
	if status == "" {
		status = StatusDraft
	}

	inv := &Invoice{
		ID:            uuid.NewString(),
		InvoiceNumber: params.InvoiceNumber,
		Date:          params.Date,
		DueDate:       params.DueDate,
		Status:        status,
		BillFrom:      params.BillFrom,
		BillTo:        params.BillTo,
		Items:         withAmounts(params.Items),
		Tax:           params.Tax,
		Discount:      params.Discount,
		Notes:         params.Notes,
		Terms:         params.Terms,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	totals := CalculateTotals(inv.Items)
	inv.Subtotal = totals.Subtotal
	inv.Total = totals.Total

	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

type UpdateParams struct {
	InvoiceNumber *string
	Date          *string
	DueDate       *string
	Status        *Status
	BillFrom      *Address
	BillTo        *Address
	Items         *[]Item
	Tax           *float64
	Discount      *float64
	Notes         *string
	Terms         *string
	PDFURL        *string
}

// Update merges the set fields into the stored invoice. Whenever the items
// are touched, the totals are rederived as an unconditional post-step.
// Returns ErrNotFound for unknown ids; the stored list is left untouched.
func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.InvoiceNumber != nil {
		inv.InvoiceNumber = *params.InvoiceNumber
	}

	if params.Date != nil {
		inv.Date = *params.Date
	}

	if params.DueDate != nil {
		inv.DueDate = *params.DueDate
	}

	if params.Status != nil {
		inv.Status = *params.Status
	}

	if params.BillFrom != nil {
		inv.BillFrom = *params.BillFrom
	}

	if params.BillTo != nil {
		inv.BillTo = *params.BillTo
	}

	if params.Tax != nil {
		inv.Tax = *params.Tax
	}

	if params.Discount != nil {
		inv.Discount = *params.Discount
	}

	if params.Notes != nil {
		inv.Notes = *params.Notes
	}

	if params.Terms != nil {
		inv.Terms = *params.Terms
	}

	if params.PDFURL != nil {
		inv.PDFURL = *params.PDFURL
	}

	if params.Items != nil {
		inv.Items = withAmounts(*params.Items)

		totals := CalculateTotals(inv.Items)
		inv.Subtotal = totals.Subtotal
		inv.Total = totals.Total
	}

	inv.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.current != nil && s.current.ID == id {
		s.current = inv
	}
	s.mu.Unlock()

	return inv, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteInvoice(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	s.mu.Unlock()

	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx)
}

// SetCurrent records a detached "currently selected invoice" reference.
// It is a snapshot: later list mutations do not flow into it unless they
// go through Update/Delete on the same id.
func (s *Service) SetCurrent(inv *Invoice) {
	s.mu.Lock()
	s.current = inv
	s.mu.Unlock()
}

func (s *Service) Current() *Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current
}

func (s *Service) ClearCurrent() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}
