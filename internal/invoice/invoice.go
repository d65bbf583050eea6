package invoice

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no invoice matches the requested id.
var ErrNotFound = errors.New("invoice not found")

// Status represents the lifecycle state of an invoice.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// Address is a postal address block on an invoice.
type Address struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// Item is a single billable line entry.
type Item struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	Amount      float64 `json:"amount"` // quantity x price, recomputed on every write
}

// Invoice is the stored record. Date and DueDate are kept as YYYY-MM-DD
// strings, matching the persisted layout; CreatedAt/UpdatedAt are full
// timestamps.
type Invoice struct {
	ID            string    `json:"id"`
	InvoiceNumber string    `json:"invoiceNumber"`
	Date          string    `json:"date"`
	DueDate       string    `json:"dueDate"`
	Status        Status    `json:"status"`
	BillFrom      Address   `json:"billFrom"`
	BillTo        Address   `json:"billTo"`
	Items         []Item    `json:"items"`
	Subtotal      float64   `json:"subtotal"`
	Tax           float64   `json:"tax"`
	Discount      float64   `json:"discount"`
	Total         float64   `json:"total"`
	Notes         string    `json:"notes,omitempty"`
	Terms         string    `json:"terms,omitempty"`
	PDFURL        string    `json:"pdfUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
