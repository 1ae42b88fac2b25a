package export

import (
	"fmt"
	"io"

	"movesmart/internal/models"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Bookings"

var headers = []string{
	"ID", "Customer", "Email", "Phone", "Service",
	"Preferred Date", "Preferred Time", "Address", "Details", "Status", "Created",
}

// WriteBookingsXLSX renders the booking list as a spreadsheet for the
// dispatch office and writes it to w.
func WriteBookingsXLSX(w io.Writer, bookings []models.Booking) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	_ = f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle)

	for i, booking := range bookings {
		row := i + 2
		values := []interface{}{
			booking.ID,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.ServiceName,
			booking.PreferredDate,
			booking.PreferredTime,
			booking.Address,
			booking.Description,
			booking.Status,
			booking.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheetName, cell, value)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 6)
	_ = f.SetColWidth(sheetName, "B", "E", 22)
	_ = f.SetColWidth(sheetName, "F", "H", 18)
	_ = f.SetColWidth(sheetName, "I", "I", 35)
	_ = f.SetColWidth(sheetName, "J", "K", 14)

	_ = f.DeleteSheet("Sheet1")

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing spreadsheet: %v", err)
	}
	return nil
}
