package main

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"monchai-insurance/models"
	"monchai-insurance/services"
)

func intPtr(v int) *int { return &v }

func TestPrintDue(t *testing.T) {
	color.NoColor = true

	report := services.DueReport{
		RunID:      "run-1",
		WindowDays: 30,
		Items: []services.DueItem{
			{Customer: models.Customer{RowNumber: 6, LicensePlate: "5จจ-5555", CustomerName: "Ready"}, MinDays: intPtr(-1), Status: models.StatusInProgress},
			{Customer: models.Customer{RowNumber: 2, LicensePlate: "1กก-1234", CustomerName: "Somchai"}, MinDays: intPtr(10), Status: models.StatusNotNotified},
		},
		WriteBacks: 3,
		Failed:     1,
	}

	var buf bytes.Buffer
	printDue(&buf, report)
	out := buf.String()

	assert.Contains(t, out, "ROW")
	assert.Contains(t, out, "เลยกำหนด 1 วัน")
	assert.Contains(t, out, "Somchai")
	assert.Contains(t, out, "1 of 3 status write-backs failed (run run-1)")
}

func TestPrintDue_Empty(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	printDue(&buf, services.DueReport{WindowDays: 14})
	assert.Contains(t, buf.String(), "No customers due within 14 days")
	assert.Contains(t, buf.String(), "Statuses already consistent")
}
