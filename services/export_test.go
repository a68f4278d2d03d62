package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteDueWorkbook(t *testing.T) {
	report := newService(&fakeStore{rows: sheetRows()}, nil).Due(context.Background(), 30)

	var buf bytes.Buffer
	require.NoError(t, WriteDueWorkbook(&buf, report, ict))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(dueSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1+len(report.Items))
	assert.Equal(t, dueHeadings, rows[0])

	assert.Equal(t, "6", rows[1][0])
	assert.Equal(t, "5จจ-5555", rows[1][2])
	assert.Equal(t, "-1", rows[1][9])
	assert.Equal(t, "Malee", rows[2][1])
	assert.Equal(t, "กำลังดำเนินการ", rows[2][10])
}

func TestDueWorkbookName(t *testing.T) {
	assert.Equal(t, "renewals-due-2024-05-01.xlsx", DueWorkbookName(DueReport{GeneratedAt: fixedNow}, ict))
}
