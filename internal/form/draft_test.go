package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mdmuzammil18/invoice-app/internal/form"
	"github.com/Mdmuzammil18/invoice-app/internal/storage"
)

func TestDraftStore_RoundTrip(t *testing.T) {
	kv := storage.NewMemoryStore()
	drafts := form.NewDraftStore(kv)

	values := form.Defaults()
	values[form.FieldVendor] = "A - 1 Exterminators"
	values[form.FieldInvoiceNumber] = "INV-42"

	require.NoError(t, drafts.Save(values))

	restored := drafts.Load()
	assert.Equal(t, values, restored)
}

func TestDraftStore_MissingYieldsDefaults(t *testing.T) {
	drafts := form.NewDraftStore(storage.NewMemoryStore())

	assert.Equal(t, form.Defaults(), drafts.Load())
}

func TestDraftStore_CorruptYieldsDefaults(t *testing.T) {
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(storage.KeyFormData, "{not json"))

	drafts := form.NewDraftStore(kv)
	assert.Equal(t, form.Defaults(), drafts.Load())
}

func TestDraftStore_FillsMissingFields(t *testing.T) {
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(storage.KeyFormData, `{"vendor":"Vendor 2"}`))

	drafts := form.NewDraftStore(kv)
	restored := drafts.Load()

	assert.Equal(t, "Vendor 2", restored[form.FieldVendor])
	assert.Len(t, restored, len(form.Fields))
}

func TestDraftStore_Clear(t *testing.T) {
	kv := storage.NewMemoryStore()
	drafts := form.NewDraftStore(kv)

	require.NoError(t, drafts.Save(form.Defaults()))
	require.NoError(t, drafts.Clear())

	_, ok := kv.Get(storage.KeyFormData)
	assert.False(t, ok)
}
