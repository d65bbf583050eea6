package invoice

import (
	"time"

	"github.com/Mdmuzammil18/invoice-app/internal/invoice"
)

type invoiceResponse struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Date          string          `json:"date"`
	DueDate       string          `json:"dueDate"`
	Status        invoice.Status  `json:"status"`
	BillFrom      invoice.Address `json:"billFrom"`
	BillTo        invoice.Address `json:"billTo"`
	Items         []invoice.Item  `json:"items"`
	Subtotal      float64         `json:"subtotal"`
	Tax           float64         `json:"tax"`
	Discount      float64         `json:"discount"`
	Total         float64         `json:"total"`
	Notes         string          `json:"notes,omitempty"`
	Terms         string          `json:"terms,omitempty"`
	PDFURL        string          `json:"pdfUrl,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		Date:          inv.Date,
		DueDate:       inv.DueDate,
		Status:        inv.Status,
		BillFrom:      inv.BillFrom,
		BillTo:        inv.BillTo,
		Items:         inv.Items,
		Subtotal:      inv.Subtotal,
		Tax:           inv.Tax,
		Discount:      inv.Discount,
		Total:         inv.Total,
		Notes:         inv.Notes,
		Terms:         inv.Terms,
		PDFURL:        inv.PDFURL,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

func toResponseList(invs []*invoice.Invoice) []invoiceResponse {
	resp := make([]invoiceResponse, len(invs))
	for i, inv := range invs {
		resp[i] = toResponse(inv)
	}

	return resp
}
