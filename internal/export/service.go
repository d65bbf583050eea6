package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/Mdmuzammil18/invoice-app/internal/invoice"
)

// Item links an exported invoice to its rendered file.
type Item struct {
	Invoice  *invoice.Invoice
	FilePath string
}

// Service renders stored invoices to PDF files.
type Service struct {
	invoices *invoice.Service
}

func NewService(invSvc *invoice.Service) *Service {
	return &Service{invoices: invSvc}
}

// Export renders the selected invoices (all of them when ids is empty)
// into outputDir and stamps each record's pdfUrl with the written path.
func (s *Service) Export(ctx context.Context, ids []string, outputDir string) ([]Item, error) {
	list, err := s.invoices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}

	if len(ids) > 0 {
		wanted := make(map[string]bool, len(ids))
		for _, id := range ids {
			wanted[id] = true
		}

		filtered := make([]*invoice.Invoice, 0, len(ids))

		for _, inv := range list {
			if wanted[inv.ID] {
				filtered = append(filtered, inv)
			}
		}

		list = filtered
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	items := make([]Item, 0, len(list))

	for _, inv := range list {
		path := filepath.Join(outputDir, Filename(inv))

		if err := render(inv, path); err != nil {
			return nil, fmt.Errorf("rendering invoice %s: %w", inv.ID, err)
		}

		if _, err := s.invoices.Update(ctx, inv.ID, invoice.UpdateParams{PDFURL: &path}); err != nil {
			return nil, fmt.Errorf("recording pdf path for invoice %s: %w", inv.ID, err)
		}

		items = append(items, Item{Invoice: inv, FilePath: path})
	}

	return items, nil
}

// Filename derives a safe file name from the invoice number, falling back
// to the id for unnumbered drafts.
func Filename(inv *invoice.Invoice) string {
	base := inv.InvoiceNumber
	if base == "" {
		base = inv.ID
	}

	safe := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}

		return '_'
	}, base)

	return safe + ".pdf"
}

// GenerateSummary creates the text summary shown after an export run.
func (s *Service) GenerateSummary(items []Item) string {
	var sb strings.Builder

	for _, item := range items {
		sb.WriteString(fmt.Sprintf("* %s | %s | %.2f | %s\n",
			item.Invoice.InvoiceNumber,
			item.Invoice.Status,
			item.Invoice.Total,
			filepath.Base(item.FilePath),
		))
	}

	return sb.String()
}

func render(inv *invoice.Invoice, path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Invoice "+inv.InvoiceNumber)
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Date: %s    Due: %s    Status: %s", inv.Date, inv.DueDate, inv.Status))
	pdf.Ln(12)

	writeAddress(pdf, "Bill From", inv.BillFrom)
	writeAddress(pdf, "Bill To", inv.BillTo)

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(90, 8, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)

	for _, item := range inv.Items {
		pdf.CellFormat(90, 8, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%g", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", item.Amount), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(145, 8, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", inv.Subtotal), "", 1, "R", false, 0, "")
	pdf.CellFormat(145, 8, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", inv.Total), "", 1, "R", false, 0, "")

	if inv.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, "Notes: "+inv.Notes, "", "L", false)
	}

	return pdf.OutputFileAndClose(path)
}

func writeAddress(pdf *gofpdf.Fpdf, title string, addr invoice.Address) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 6, title)
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "", 9)

	for _, line := range []string{addr.Name, addr.Email, addr.Address, strings.TrimSpace(addr.City + " " + addr.State + " " + addr.ZipCode), addr.Country} {
		if line == "" {
			continue
		}

		pdf.Cell(0, 5, line)
		pdf.Ln(4)
	}

	pdf.Ln(3)
}
