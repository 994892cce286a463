package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	appbooking "github.com/rentals/backend/internal/application/booking"
	appproperty "github.com/rentals/backend/internal/application/property"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBookingsWorkbook(t *testing.T) {
	p := appproperty.PropertyResponse{ID: uuid.New(), Title: "Loft", Address: "1 Main St"}
	confirmedAt := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	notes := "Ring twice"
	bookings := []appbooking.BookingResponse{
		{ID: uuid.New(), TenantID: uuid.New(), VisitDate: "2026-05-02", VisitTime: "10:00", Duration: 30, Status: "CONFIRMED", ConfirmedAt: &confirmedAt, TenantNotes: &notes},
		{ID: uuid.New(), TenantID: uuid.New(), VisitDate: "2026-05-02", VisitTime: "10:30", Duration: 30, Status: "PENDING"},
		{ID: uuid.New(), TenantID: uuid.New(), VisitDate: "2026-05-03", VisitTime: "09:00", Duration: 30, Status: "CONFIRMED"},
	}

	data, err := BookingsWorkbook(p, bookings, time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{summarySheet, bookingsSheet}, f.GetSheetList())

	title, err := f.GetCellValue(summarySheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Loft", title)
	total, err := f.GetCellValue(summarySheet, "B5")
	require.NoError(t, err)
	assert.Equal(t, "3", total)
	status, _ := f.GetCellValue(summarySheet, "A8")
	count, _ := f.GetCellValue(summarySheet, "B8")
	assert.Equal(t, "CONFIRMED", status)
	assert.Equal(t, "2", count)

	rows, err := f.GetRows(bookingsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, bookingHeaders, rows[0])
	assert.Equal(t, bookings[0].ID.String(), rows[1][0])
	assert.Equal(t, "10:00", rows[1][2])
	assert.Equal(t, "Ring twice", rows[1][6])
	assert.Equal(t, "2026-05-01T08:00:00Z", rows[1][8])
}

func TestBookingsWorkbook_Empty(t *testing.T) {
	data, err := BookingsWorkbook(appproperty.PropertyResponse{ID: uuid.New()}, nil, time.Now())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(bookingsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestFileName(t *testing.T) {
	id := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	name := FileName(appproperty.PropertyResponse{ID: id}, time.Date(2026, 5, 1, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, "bookings-11111111-2222-3333-4444-555555555555-20260501.xlsx", name)
}
