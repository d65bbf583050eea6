package form

import (
	"encoding/json"
	"fmt"

	"github.com/Mdmuzammil18/invoice-app/internal/storage"
)

// DraftStore persists the in-progress form values wholesale on every
// change, so an interrupted session resumes where it left off.
type DraftStore struct {
	kv storage.Store
}

func NewDraftStore(kv storage.Store) *DraftStore {
	return &DraftStore{kv: kv}
}

// Load restores the saved draft. A missing or corrupt draft yields the
// defaults rather than an error; there is nothing the caller could do
// about stale bytes anyway.
func (d *DraftStore) Load() Values {
	raw, ok := d.kv.Get(storage.KeyFormData)
	if !ok {
		return Defaults()
	}

	var values Values
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return Defaults()
	}

	// Older drafts may predate fields added since; fill the gaps.
	for _, f := range Fields {
		if _, ok := values[f]; !ok {
			values[f] = ""
		}
	}

	return values
}

func (d *DraftStore) Save(values Values) error {
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encoding draft: %w", err)
	}

	if err := d.kv.Set(storage.KeyFormData, string(data)); err != nil {
		return fmt.Errorf("persisting draft: %w", err)
	}

	return nil
}

func (d *DraftStore) Clear() error {
	return d.kv.Remove(storage.KeyFormData)
}
