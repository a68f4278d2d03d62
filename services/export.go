package services

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"monchai-insurance/utils"
)

const dueSheet = "Sheet1"

var dueHeadings = []string{
	"แถว", "ชื่อลูกค้า", "ทะเบียนรถ", "เบอร์ติดต่อหลัก",
	"วันที่ครบกำหนด พ.ร.บ.", "พ.ร.บ. (วัน)",
	"วันที่ครบกำหนดต่อภาษี", "ภาษี (วัน)",
	"วันที่ครบกำหนดกรมธรรม์ภาคสมัครใจ", "ภาคสมัครใจ (วัน)",
	"สถานะ", "หมายเหตุ",
}

// WriteDueWorkbook writes the due list as an xlsx workbook, rows in list order.
func WriteDueWorkbook(w io.Writer, report DueReport, loc *time.Location) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(dueSheet, "A1", &dueHeadings); err != nil {
		return fmt.Errorf("write headings: %w", err)
	}

	for i, item := range report.Items {
		c := item.Customer
		row := []any{
			c.RowNumber,
			c.CustomerName,
			c.LicensePlate,
			c.Phone,
			utils.FormatThaiDate(c.ActExpiryDate, loc), daysCell(item.Days.Act),
			utils.FormatThaiDate(c.TaxExpiryDate, loc), daysCell(item.Days.Tax),
			utils.FormatThaiDate(c.VoluntaryExpiryDate, loc), daysCell(item.Days.Voluntary),
			item.Status.ThaiLabel(),
			c.Notes,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(dueSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", c.RowNumber, err)
		}
	}

	if err := f.SetColWidth(dueSheet, "B", "L", 20); err != nil {
		return err
	}
	return f.Write(w)
}

// DueWorkbookName is the download name for a report, dated in loc.
func DueWorkbookName(report DueReport, loc *time.Location) string {
	return fmt.Sprintf("renewals-due-%s.xlsx", report.GeneratedAt.In(loc).Format(utils.InputDateLayout))
}

func daysCell(days *int) any {
	if days == nil {
		return ""
	}
	return *days
}
