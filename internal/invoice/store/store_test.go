package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mdmuzammil18/invoice-app/internal/invoice"
	"github.com/Mdmuzammil18/invoice-app/internal/invoice/store"
	"github.com/Mdmuzammil18/invoice-app/internal/storage"
)

func TestStore_CreatePrependsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := store.New(storage.NewMemoryStore())

	first := &invoice.Invoice{ID: "inv-1", InvoiceNumber: "INV-001"}
	second := &invoice.Invoice{ID: "inv-2", InvoiceNumber: "INV-002"}

	require.NoError(t, s.CreateInvoice(ctx, first))
	require.NoError(t, s.CreateInvoice(ctx, second))

	list, err := s.ListInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "inv-2", list[0].ID)
	assert.Equal(t, "inv-1", list[1].ID)
}

func TestStore_GetInvoice(t *testing.T) {
	ctx := context.Background()
	s := store.New(storage.NewMemoryStore())

	require.NoError(t, s.CreateInvoice(ctx, &invoice.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "INV-001",
		Total:         450,
	}))

	got, err := s.GetInvoice(ctx, "inv-1")
	require.NoError(t, err)
	assert.Equal(t, "INV-001", got.InvoiceNumber)
	assert.Equal(t, 450.0, got.Total)

	_, err = s.GetInvoice(ctx, "missing")
	assert.ErrorIs(t, err, invoice.ErrNotFound)
}

func TestStore_UpdateReplacesRecord(t *testing.T) {
	ctx := context.Background()
	s := store.New(storage.NewMemoryStore())

	require.NoError(t, s.CreateInvoice(ctx, &invoice.Invoice{ID: "inv-1", Status: invoice.StatusDraft}))
	require.NoError(t, s.CreateInvoice(ctx, &invoice.Invoice{ID: "inv-2", Status: invoice.StatusDraft}))

	require.NoError(t, s.UpdateInvoice(ctx, &invoice.Invoice{ID: "inv-1", Status: invoice.StatusPaid}))

	got, err := s.GetInvoice(ctx, "inv-1")
	require.NoError(t, err)
	assert.Equal(t, invoice.StatusPaid, got.Status)

	// Ordering is preserved across updates.
	list, err := s.ListInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "inv-2", list[0].ID)
	assert.Equal(t, "inv-1", list[1].ID)
}

func TestStore_UpdateMissingLeavesStorageUntouched(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	s := store.New(kv)

	require.NoError(t, s.CreateInvoice(ctx, &invoice.Invoice{ID: "inv-1"}))
	before, ok := kv.Get(storage.KeyInvoices)
	require.True(t, ok)

	err := s.UpdateInvoice(ctx, &invoice.Invoice{ID: "missing"})
	assert.ErrorIs(t, err, invoice.ErrNotFound)

	after, ok := kv.Get(storage.KeyInvoices)
	require.True(t, ok)
	assert.Equal(t, before, after)
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	s := store.New(kv)

	require.NoError(t, s.CreateInvoice(ctx, &invoice.Invoice{ID: "inv-1"}))
	require.NoError(t, s.CreateInvoice(ctx, &invoice.Invoice{ID: "inv-2"}))

	require.NoError(t, s.DeleteInvoice(ctx, "inv-1"))

	list, err := s.ListInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "inv-2", list[0].ID)

	// Absent ids are a no-op, not an error.
	before, _ := kv.Get(storage.KeyInvoices)
	require.NoError(t, s.DeleteInvoice(ctx, "inv-1"))
	after, _ := kv.Get(storage.KeyInvoices)
	assert.Equal(t, before, after)
}

func TestStore_CorruptDataYieldsEmptyList(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(storage.KeyInvoices, "[{broken"))

	s := store.New(kv)

	list, err := s.ListInvoices(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// The first write replaces the corrupt bytes wholesale.
	require.NoError(t, s.CreateInvoice(ctx, &invoice.Invoice{ID: "inv-1"}))

	list, err = s.ListInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "inv-1", list[0].ID)
}

func TestStore_RoundTripPreservesFields(t *testing.T) {
	ctx := context.Background()
	s := store.New(storage.NewMemoryStore())

	inv := &invoice.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "INV-001",
		Date:          "2024-06-01",
		DueDate:       "2024-07-01",
		Status:        invoice.StatusPending,
		BillFrom:      invoice.Address{Name: "Acme Corp", City: "Springfield"},
		BillTo:        invoice.Address{Name: "Globex", Email: "ap@globex.test"},
		Items: []invoice.Item{
			{ID: "item-1", Description: "Consulting", Quantity: 2, Price: 150, Amount: 300},
		},
		Subtotal: 300,
		Total:    300,
		Notes:    "net 30",
	}

	require.NoError(t, s.CreateInvoice(ctx, inv))

	got, err := s.GetInvoice(ctx, "inv-1")
	require.NoError(t, err)
	assert.Equal(t, inv.BillFrom, got.BillFrom)
	assert.Equal(t, inv.BillTo, got.BillTo)
	assert.Equal(t, inv.Items, got.Items)
	assert.Equal(t, "2024-07-01", got.DueDate)
	assert.Equal(t, "net 30", got.Notes)
}
