// Package export writes spreadsheet exports.
package export

import (
	"fmt"
	"strings"
	"time"

	appbooking "github.com/rentals/backend/internal/application/booking"
	appproperty "github.com/rentals/backend/internal/application/property"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "Summary"
	bookingsSheet = "Bookings"
	// ContentType is the MIME type of the generated workbook
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var bookingHeaders = []string{
	"Booking ID",
	"Visit date",
	"Visit time",
	"Duration (min)",
	"Status",
	"Tenant ID",
	"Tenant notes",
	"Owner notes",
	"Confirmed at",
	"Cancelled at",
	"Cancellation reason",
	"Created at",
}

// BookingsWorkbook builds an xlsx file listing every booking of a property
// with a per-status summary sheet.
func BookingsWorkbook(p appproperty.PropertyResponse, bookings []appbooking.BookingResponse, generatedAt time.Time) ([]byte, error) {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := file.NewSheet(bookingsSheet); err != nil {
		return nil, err
	}

	if err := writeSummary(file, p, bookings, generatedAt); err != nil {
		return nil, fmt.Errorf("write summary sheet: %w", err)
	}
	if err := writeBookings(file, bookings); err != nil {
		return nil, fmt.Errorf("write bookings sheet: %w", err)
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileName returns the download name of a property's export
func FileName(p appproperty.PropertyResponse, at time.Time) string {
	return fmt.Sprintf("bookings-%s-%s.xlsx", p.ID, at.UTC().Format("20060102"))
}

func writeSummary(file *excelize.File, p appproperty.PropertyResponse, bookings []appbooking.BookingResponse, generatedAt time.Time) error {
	rows := [][]any{
		{"Property", p.Title},
		{"Address", p.Address},
		{"Property ID", p.ID.String()},
		{"Generated at", generatedAt.UTC().Format(time.RFC3339)},
		{"Total bookings", len(bookings)},
		{},
		{"Status", "Count"},
	}
	for _, status := range statusOrder(bookings) {
		rows = append(rows, []any{status, countStatus(bookings, status)})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}
	return file.SetColWidth(summarySheet, "A", "B", 28)
}

func writeBookings(file *excelize.File, bookings []appbooking.BookingResponse) error {
	header := make([]any, len(bookingHeaders))
	for i, h := range bookingHeaders {
		header[i] = h
	}
	if err := file.SetSheetRow(bookingsSheet, "A1", &header); err != nil {
		return err
	}

	style, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E7FF"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(bookingHeaders))
	if err != nil {
		return err
	}
	if err := file.SetCellStyle(bookingsSheet, "A1", lastCol+"1", style); err != nil {
		return err
	}

	for i, b := range bookings {
		row := []any{
			b.ID.String(),
			b.VisitDate,
			b.VisitTime,
			b.Duration,
			b.Status,
			b.TenantID.String(),
			deref(b.TenantNotes),
			deref(b.OwnerNotes),
			formatTime(b.ConfirmedAt),
			formatTime(b.CancelledAt),
			deref(b.CancellationReason),
			b.CreatedAt.UTC().Format(time.RFC3339),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(bookingsSheet, cell, &row); err != nil {
			return err
		}
	}

	if err := file.SetPanes(bookingsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}
	if err := file.AutoFilter(bookingsSheet, "A1:"+lastCol+"1", nil); err != nil {
		return err
	}
	return file.SetColWidth(bookingsSheet, "A", lastCol, 20)
}

// statusOrder lists the statuses present, in first-seen order
func statusOrder(bookings []appbooking.BookingResponse) []string {
	seen := map[string]bool{}
	var out []string
	for _, b := range bookings {
		if !seen[b.Status] {
			seen[b.Status] = true
			out = append(out, b.Status)
		}
	}
	return out
}

func countStatus(bookings []appbooking.BookingResponse, status string) int {
	n := 0
	for _, b := range bookings {
		if strings.EqualFold(b.Status, status) {
			n++
		}
	}
	return n
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
