// Package storage provides the key-value persistence area the rest of the
// app writes through: a handful of well-known string keys, each holding a
// serialized value, with change notification so independently running
// contexts sharing the same area can react to each other's writes.
package storage

// Well-known keys.
const (
	KeyAuthenticated = "isAuthenticated"
	KeyUsername      = "username"
	KeyInvoices      = "invoices"
	KeyFormData      = "invoiceFormData"
)

// Event describes an observed change to a single key.
type Event struct {
	Key     string
	Value   string
	Removed bool
}

// Store is the persistence contract. Get returns the raw stored string and
// whether the key was present. Writes are last-writer-wins; there is no
// locking across contexts and readers must tolerate lost updates.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error

	// Subscribe returns a channel of change events. Events originating
	// from this store's own writes are suppressed where the backend can
	// tell them apart; subscribers must still treat every event as a
	// signal to re-read state, never as the state itself.
	Subscribe() <-chan Event

	Close() error
}
