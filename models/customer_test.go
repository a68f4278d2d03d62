package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotateName(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		status Status
		want   string
	}{
		{name: "append for not renewing", input: "Somchai", status: StatusNotRenewing, want: "Somchai (ลูกค้าไม่ต่อ)"},
		{name: "no double append", input: "Somchai (ลูกค้าไม่ต่อ)", status: StatusNotRenewing, want: "Somchai (ลูกค้าไม่ต่อ)"},
		{name: "trailing space trimmed before append", input: "Somchai  ", status: StatusNotRenewing, want: "Somchai (ลูกค้าไม่ต่อ)"},
		{name: "synthetic name when empty", input: "", status: StatusNotRenewing, want: "ลูกค้า (ลูกค้าไม่ต่อ)"},
		{name: "strip for in progress", input: "Somchai (ลูกค้าไม่ต่อ)", status: StatusInProgress, want: "Somchai"},
		{name: "strip marker without space", input: "Somchai(ลูกค้าไม่ต่อ)", status: StatusRenewed, want: "Somchai"},
		{name: "repeated markers stripped", input: "Somchai (ลูกค้าไม่ต่อ) (ลูกค้าไม่ต่อ)", status: StatusInProgress, want: "Somchai"},
		{name: "repeated markers collapsed", input: "Somchai (ลูกค้าไม่ต่อ)(ลูกค้าไม่ต่อ) ", status: StatusNotRenewing, want: "Somchai (ลูกค้าไม่ต่อ)"},
		{name: "only markers become the default name", input: "(ลูกค้าไม่ต่อ) (ลูกค้าไม่ต่อ)", status: StatusNotRenewing, want: "ลูกค้า (ลูกค้าไม่ต่อ)"},
		{name: "untouched without marker", input: "Somchai ", status: StatusNotNotified, want: "Somchai "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnnotateName(tt.input, tt.status)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.status == StatusNotRenewing, HasNotRenewingMarker(got))
			assert.Equal(t, got, AnnotateName(got, tt.status), "annotation must be idempotent")
		})
	}
}

func TestToSheetRecord(t *testing.T) {
	c := Customer{
		RowNumber:     7,
		Timestamp:     "2024-05-01T03:00:00Z",
		CustomerName:  "Somchai",
		LicensePlate:  "1กก-1234",
		Phone:         "081-2345678",
		ActExpiryDate: "2024-06-01",
		Status:        "2",
	}

	payload, err := json.Marshal(c.ToSheetRecord())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))

	assert.Equal(t, "IN_PROGRESS", decoded["status"])
	assert.Equal(t, "2024-06-01", decoded["actExpiryDate"])
	assert.Contains(t, decoded, "taxExpiryDate")
	assert.Nil(t, decoded["taxExpiryDate"])
	assert.Nil(t, decoded["notes"])
	assert.NotContains(t, decoded, "rowNumber")
}

func TestCustomerIsSaved(t *testing.T) {
	assert.False(t, Customer{}.IsSaved())
	assert.False(t, Customer{RowNumber: 1}.IsSaved())
	assert.True(t, Customer{RowNumber: 2}.IsSaved())
}
