package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Status
	}{
		{name: "legacy code 1", raw: "1", want: StatusNotNotified},
		{name: "legacy code 2", raw: "2", want: StatusInProgress},
		{name: "legacy code 3", raw: "3", want: StatusNotRenewing},
		{name: "legacy code 4", raw: " 4 ", want: StatusRenewed},
		{name: "label", raw: "RENEWED", want: StatusRenewed},
		{name: "lowercase label", raw: "in_progress", want: StatusInProgress},
		{name: "thai label not notified", raw: "ยังไม่แจ้ง", want: StatusNotNotified},
		{name: "thai label in progress", raw: "กำลังดำเนินการ", want: StatusInProgress},
		{name: "thai label not renewing", raw: "ลูกค้าไม่ต่อ", want: StatusNotRenewing},
		{name: "short thai label not renewing", raw: "ไม่ต่อ", want: StatusNotRenewing},
		{name: "thai label renewed", raw: "ต่ออายุแล้ว", want: StatusRenewed},
		{name: "empty falls back", raw: "", want: StatusNotNotified},
		{name: "unknown code falls back", raw: "5", want: StatusNotNotified},
		{name: "malformed falls back", raw: "renewed??", want: StatusNotNotified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseStatus(tt.raw))
		})
	}
}

func TestStatusCode(t *testing.T) {
	for i, s := range AllStatuses {
		code := s.Code()
		assert.Equal(t, string(rune('1'+i)), code)
		assert.Equal(t, s, ParseStatus(code), "code must round-trip through the alias table")
		assert.Equal(t, s, ParseStatus(s.ThaiLabel()), "thai label must round-trip through the alias table")
	}
}
