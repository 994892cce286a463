package printing

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	appcontract "github.com/rentals/backend/internal/application/contract"
)

const fpdfFont = "Helvetica"

var _ appcontract.Renderer = (*FPDFRenderer)(nil)

// FPDFRenderer draws the lease with the core PDF fonts. The owner's HTML
// content is not rendered here; use ChromedpRenderer for that.
type FPDFRenderer struct{}

// NewFPDFRenderer creates a gofpdf-backed renderer
func NewFPDFRenderer() *FPDFRenderer {
	return &FPDFRenderer{}
}

// Render implements appcontract.Renderer
func (r *FPDFRenderer) Render(ctx context.Context, data appcontract.ContractPrintData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	view := newLeaseView(data)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetTitle(view.Title, true)
	pdf.SetCreator("rentals-backend", true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(fpdfFont, "B", 16)
	pdf.CellFormat(0, 10, tr(view.Title), "", 1, "C", false, 0, "")
	pdf.SetFont(fpdfFont, "", 9)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Contract %s - %s", view.Reference, view.Status)), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	rows := [][2]string{
		{"Property", view.Property},
		{"Address", view.Address},
		{"Lease period", view.Period},
		{"Monthly rent", view.MonthlyRent},
		{"Charges", view.Charges},
		{"Deposit", view.Deposit},
	}
	for _, row := range rows {
		pdf.SetFont(fpdfFont, "B", 11)
		pdf.CellFormat(50, 8, tr(row[0]), "B", 0, "L", false, 0, "")
		pdf.SetFont(fpdfFont, "", 11)
		pdf.CellFormat(0, 8, tr(row[1]), "B", 1, "L", false, 0, "")
	}

	if view.Terms != "" {
		section(pdf, tr, "Terms")
		pdf.MultiCell(0, 5, tr(view.Terms), "", "L", false)
	}
	if len(view.Clauses) > 0 {
		section(pdf, tr, "Additional clauses")
		for i, clause := range view.Clauses {
			pdf.MultiCell(0, 5, tr(fmt.Sprintf("%d. %s", i+1, clause)), "", "L", false)
		}
	}

	section(pdf, tr, "Signatures")
	for _, sig := range view.Signatures {
		line := sig.Party + ": ______________________"
		if sig.SignedAt != "" {
			line = sig.Party + ": signed " + sig.SignedAt
		}
		pdf.CellFormat(0, 8, tr(line), "", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont(fpdfFont, "I", 8)
	pdf.CellFormat(0, 5, tr("Generated "+view.GeneratedAt), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "gofpdf output failed", err)
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, tr func(string) string, title string) {
	pdf.Ln(4)
	pdf.SetFont(fpdfFont, "B", 12)
	pdf.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")
	pdf.SetFont(fpdfFont, "", 10)
}
