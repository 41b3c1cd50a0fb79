// Package export renders quotes and the filament catalog to PDF and
// spreadsheet files.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/PrintQuote/internal/engine"
	"github.com/piwi3910/PrintQuote/internal/model"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 18.0
	marginRight  = 18.0
	marginTop    = 18.0
	marginBottom = 15.0
	contentWidth = pageWidth - marginLeft - marginRight
	quoteQRSize  = 35.0
)

// QuoteSheet is everything printed on a quote document.
type QuoteSheet struct {
	Result   model.QuoteResult
	Settings model.Settings
	// Comparisons, when set, adds a table pricing the same job with
	// other filaments.
	Comparisons []engine.FilamentComparison
	CreatedAt   time.Time
}

// QuoteSummary is the data encoded in the quote's QR code.
type QuoteSummary struct {
	Filament   string `json:"filament"`
	FilamentID string `json:"filament_id"`
	Grams      string `json:"grams"`
	Hours      string `json:"hours"`
	TotalCost  string `json:"total_cost"`
	SalePrice  string `json:"sale_price"`
	Shipping   string `json:"shipping"`
	FinalPrice string `json:"final_price"`
	Date       string `json:"date"`
}

// NewQuoteSummary condenses a quote for the QR code. Amounts are rounded
// to cents.
func NewQuoteSummary(sheet QuoteSheet) QuoteSummary {
	r := sheet.Result
	return QuoteSummary{
		Filament:   r.Filament.DisplayName(),
		FilamentID: r.Filament.ID,
		Grams:      r.Grams.String(),
		Hours:      r.DurationHours.StringFixed(4),
		TotalCost:  r.TotalCost.StringFixed(2),
		SalePrice:  r.SalePrice.StringFixed(2),
		Shipping:   r.ShippingCost.StringFixed(2),
		FinalPrice: r.FinalPrice.StringFixed(2),
		Date:       sheet.CreatedAt.Format("2006-01-02"),
	}
}

// ExportQuotePDF writes a one-page quote document with the cost
// breakdown, the settings used, and a QR code carrying the summary.
func ExportQuotePDF(path string, sheet QuoteSheet) error {
	if sheet.Result.FinalPrice.IsZero() && sheet.Result.TotalCost.IsZero() {
		return fmt.Errorf("no quote to export")
	}
	if sheet.CreatedAt.IsZero() {
		sheet.CreatedAt = time.Now()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.AddPage()

	if err := renderQuoteHeader(pdf, sheet); err != nil {
		return err
	}
	y := renderBreakdown(pdf, sheet.Result, marginTop+48)
	y = renderSettingsUsed(pdf, sheet.Settings, y+8)
	if len(sheet.Comparisons) > 0 {
		renderComparisons(pdf, sheet.Comparisons, y+8)
	}

	renderFooter(pdf)
	return pdf.OutputFileAndClose(path)
}

// renderQuoteHeader draws the title, job details and the QR code.
func renderQuoteHeader(pdf *fpdf.Fpdf, sheet QuoteSheet) error {
	r := sheet.Result

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth-quoteQRSize, 10, "3D Print Quote", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(marginLeft, marginTop+10)
	pdf.CellFormat(contentWidth-quoteQRSize, 5, sheet.CreatedAt.Format("2006-01-02 15:04"), "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	details := []struct {
		label string
		value string
	}{
		{"Filament", r.Filament.DisplayName()},
		{"Price per kg", model.FormatMoney(r.Filament.PricePerKg)},
		{"Weight", r.Grams.String() + " g"},
		{"Print time", r.DurationHours.Round(2).String() + " h"},
	}
	y := marginTop + 20
	for _, d := range details {
		pdf.SetXY(marginLeft, y)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(35, 6, d.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(80, 6, d.value, "", 0, "L", false, 0, "")
		y += 6
	}

	qrData, err := json.Marshal(NewQuoteSummary(sheet))
	if err != nil {
		return fmt.Errorf("failed to marshal quote summary: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}
	pdf.RegisterImageOptionsReader("quote_qr", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions("quote_qr", pageWidth-marginRight-quoteQRSize, marginTop, quoteQRSize, quoteQRSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+44, pageWidth-marginRight, marginTop+44)
	return nil
}

// renderBreakdown draws the cost table and returns the y below it.
func renderBreakdown(pdf *fpdf.Fpdf, r model.QuoteResult, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Cost Breakdown", "", 0, "L", false, 0, "")
	y += 9

	for i, line := range r.Breakdown() {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		if line.Total {
			pdf.SetFont("Helvetica", "B", 10)
		} else {
			pdf.SetFont("Helvetica", "", 10)
		}
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(contentWidth-50, 7, line.Label, "1", 0, "L", true, 0, "")
		pdf.CellFormat(50, 7, model.FormatMoney(line.Amount), "1", 0, "R", true, 0, "")
		y += 7
	}
	return y
}

// renderSettingsUsed lists the settings the quote was computed with.
func renderSettingsUsed(pdf *fpdf.Fpdf, s model.Settings, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Settings", "", 0, "L", false, 0, "")
	y += 8

	pdf.SetFont("Helvetica", "", 9)
	for _, key := range model.SettingKeys() {
		if key == model.KeyWindowGeometry {
			continue
		}
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(70, 5, key.Label()+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 5, s.Get(key), "", 0, "L", false, 0, "")
		y += 5
	}
	return y
}

// renderComparisons draws the filament comparison table.
func renderComparisons(pdf *fpdf.Fpdf, comparisons []engine.FilamentComparison, y float64) {
	if y > pageHeight-marginBottom-40 {
		pdf.AddPage()
		y = marginTop
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Filament Comparison", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{15, 79, 40, 40}
	headers := []string{"#", "Filament", "Total cost", "Final price"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, c := range comparisons {
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}
		rowData := []string{
			fmt.Sprintf("%d", c.Rank),
			c.Filament.DisplayName(),
			model.FormatMoney(c.Result.TotalCost),
			model.FormatMoney(c.Result.FinalPrice),
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		xPos = marginLeft
		for j, cell := range rowData {
			align := "R"
			if j < 2 {
				align = "L"
			}
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, align, true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}
}

func renderFooter(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(contentWidth, 4, "Generated by PrintQuote - 3D Print Cost Calculator", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}
