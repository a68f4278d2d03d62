package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bangkok = time.FixedZone("ICT", 7*60*60)

func TestNormalizeRecord_Aliases(t *testing.T) {
	raw := map[string]any{
		"CustomerName":           "Somchai",
		"ชื่อลูกค้า":             "ignored, lower priority",
		"ทะเบียนรถ":              "1กก-1234",
		"วันที่ครบกำหนด พ.ร.บ.": "2024-04-30T17:00:00.000Z",
		"TaxExpiryDate":          "2024-07-15",
		"voluntaryExpiryDate":    "garbage",
		"หมายเหตุ":               "",
		"บันทึก":                 "call after 5pm",
		"status":                 float64(3),
		"__row":                  float64(12),
	}

	c := NormalizeRecord(raw, 0, bangkok)

	assert.Equal(t, 12, c.RowNumber)
	assert.Equal(t, "Somchai", c.CustomerName)
	assert.Equal(t, "1กก-1234", c.LicensePlate)
	assert.Equal(t, "2024-04-30T17:00:00.000Z", c.ActExpiryDate, "stored value is kept")
	assert.Equal(t, "2024-05-01", c.Inputs.ActExpiryDate)
	assert.Equal(t, "2024-07-15", c.Inputs.TaxExpiryDate)
	assert.Equal(t, "garbage", c.VoluntaryExpiryDate)
	assert.Equal(t, "", c.Inputs.VoluntaryExpiryDate)
	assert.Equal(t, "call after 5pm", c.Notes)
	assert.Equal(t, "3", c.Status)
	assert.Equal(t, StatusNotRenewing, c.CanonicalStatus())
	assert.Equal(t, "", c.Email)
	assert.Equal(t, "", c.Inputs.RegistrationDate)
}

func TestResolveRowNumber(t *testing.T) {
	tests := []struct {
		name  string
		raw   map[string]any
		index int
		want  int
	}{
		{name: "explicit row number", raw: map[string]any{"rowNumber": float64(5)}, index: 0, want: 5},
		{name: "string row", raw: map[string]any{"row": "9"}, index: 0, want: 9},
		{name: "priority order", raw: map[string]any{"row": float64(4), "rowNumber": float64(3)}, index: 0, want: 3},
		{name: "invalid value skipped", raw: map[string]any{"rowNumber": "x", "__rowNumber": float64(8)}, index: 0, want: 8},
		{name: "fallback header offset", raw: map[string]any{}, index: 4, want: 6},
		{name: "zero is absent", raw: map[string]any{"rowNumber": float64(0)}, index: 1, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveRowNumber(tt.raw, tt.index))
		})
	}
}

func TestNormalizeRecords_DropsEmptyRows(t *testing.T) {
	raws := []map[string]any{
		{"customerName": "A"},
		{"notes": "orphan note"},
		{"licensePlate": "กข-99"},
	}

	customers := NormalizeRecords(raws, bangkok)
	require.Len(t, customers, 2)
	assert.Equal(t, 2, customers[0].RowNumber)
	assert.Equal(t, 4, customers[1].RowNumber, "fallback row keeps the original position")
}

func TestResolveField_NumbersAndFalsy(t *testing.T) {
	raw := map[string]any{
		"phone":        float64(812345678),
		"policyNumber": false,
		"PolicyNumber": "P-100",
	}
	assert.Equal(t, "812345678", ResolveField(raw, "phone"))
	assert.Equal(t, "P-100", ResolveField(raw, "policyNumber"))
	assert.Equal(t, "", ResolveField(raw, "email"))
}
