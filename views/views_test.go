package views

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestDaysLabelAndClass(t *testing.T) {
	tests := []struct {
		name      string
		days      *int
		wantLabel string
		wantClass string
	}{
		{"unknown", nil, "-", ""},
		{"overdue", intPtr(-3), "เลยกำหนด 3 วัน", "overdue"},
		{"today", intPtr(0), "วันนี้", "urgent"},
		{"this week", intPtr(7), "7", "urgent"},
		{"later", intPtr(8), "8", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantLabel, DaysLabel(tt.days))
			assert.Equal(t, tt.wantClass, DaysClass(tt.days))
		})
	}
}

func TestTemplates_DefinesEveryPage(t *testing.T) {
	tmpl := Templates(time.UTC)

	for _, name := range []string{"header", "footer", "home.html", "customer_form.html", "search.html", "expiring.html", "journal.html", "message.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestTemplates_RenderMessage(t *testing.T) {
	tmpl := Templates(time.UTC)

	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, "message.html", map[string]any{
		"Title":         "ไม่พบหน้า",
		"Active":        "",
		"Message":       "",
		"MessageStatus": "",
		"SyncWarning":   "",
		"Text":          "<b>missing</b>",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, AppTitle)
	assert.Contains(t, out, "&lt;b&gt;missing&lt;/b&gt;")
}
