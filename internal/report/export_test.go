package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/lvitali/cronosheet/internal/domain"
)

func TestWriteStatementXLSX(t *testing.T) {
	rate := 10.0
	end := int64(1756700000000)
	entries := []domain.TimeEntry{
		{
			ID:          "e1",
			ProjectID:   "p1",
			Description: "turno mattina",
			StartTime:   end - 2*3600*1000,
			EndTime:     &end,
			Duration:    7200,
			HourlyRate:  &rate,
			Expenses:    []domain.Expense{{ID: "x1", Description: "parcheggio", Amount: 5}},
		},
	}
	st := BuildStatement(entries,
		map[string]bool{"p1": true},
		map[string]bool{entries[0].MonthKey(): true},
	)
	require.Equal(t, 1, st.EntryCount)

	path := filepath.Join(t.TempDir(), "statement.xlsx")
	require.NoError(t, WriteStatementXLSX(st, map[string]string{"p1": "Reception Ingresso"}, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(statementSheet, "A1")
	require.NoError(t, err)
	assert.Contains(t, title, "Billing statement")

	name, err := f.GetCellValue(statementSheet, "B4")
	require.NoError(t, err)
	assert.Equal(t, "Reception Ingresso", name)

	hours, err := f.GetCellValue(statementSheet, "D4")
	require.NoError(t, err)
	assert.Equal(t, "2", hours)

	earnings, err := f.GetCellValue(statementSheet, "G4")
	require.NoError(t, err)
	assert.Equal(t, "25", earnings)
}

func TestWriteStatementXLSXEmpty(t *testing.T) {
	st := BuildStatement(nil, nil, nil)

	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteStatementXLSX(st, nil, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, statementSheet, f.GetSheetName(0))
}
