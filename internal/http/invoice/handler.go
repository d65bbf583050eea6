package invoice

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Mdmuzammil18/invoice-app/internal/invoice"
)

type Handler struct {
	svc *invoice.Service
}

func NewHandler(svc *invoice.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createInvoiceRequest struct {
	InvoiceNumber string          `json:"invoiceNumber"`
	Date          string          `json:"date"`
	DueDate       string          `json:"dueDate"`
	Status        invoice.Status  `json:"status"`
	BillFrom      invoice.Address `json:"billFrom"`
	BillTo        invoice.Address `json:"billTo"`
	Items         []invoice.Item  `json:"items"`
	Tax           float64         `json:"tax"`
	Discount      float64         `json:"discount"`
	Notes         string          `json:"notes"`
	Terms         string          `json:"terms"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Create(r.Context(), invoice.CreateParams{
		InvoiceNumber: req.InvoiceNumber,
		Date:          req.Date,
		DueDate:       req.DueDate,
		Status:        req.Status,
		BillFrom:      req.BillFrom,
		BillTo:        req.BillTo,
		Items:         req.Items,
		Tax:           req.Tax,
		Discount:      req.Discount,
		Notes:         req.Notes,
		Terms:         req.Terms,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	invs, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(invs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	inv, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateInvoiceRequest struct {
	InvoiceNumber *string          `json:"invoiceNumber,omitempty"`
	Date          *string          `json:"date,omitempty"`
	DueDate       *string          `json:"dueDate,omitempty"`
	Status        *invoice.Status  `json:"status,omitempty"`
	BillFrom      *invoice.Address `json:"billFrom,omitempty"`
	BillTo        *invoice.Address `json:"billTo,omitempty"`
	Items         *[]invoice.Item  `json:"items,omitempty"`
	Tax           *float64         `json:"tax,omitempty"`
	Discount      *float64         `json:"discount,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	Terms         *string          `json:"terms,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), invoice.UpdateParams{
		InvoiceNumber: req.InvoiceNumber,
		Date:          req.Date,
		DueDate:       req.DueDate,
		Status:        req.Status,
		BillFrom:      req.BillFrom,
		BillTo:        req.BillTo,
		Items:         req.Items,
		Tax:           req.Tax,
		Discount:      req.Discount,
		Notes:         req.Notes,
		Terms:         req.Terms,
	})
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
