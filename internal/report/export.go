package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const statementSheet = "Statement"

// WriteStatementXLSX writes a billing statement to an Excel workbook at
// path. projectNames maps project ids to display names; unknown ids keep
// the raw id.
func WriteStatementXLSX(st Statement, projectNames map[string]string, path string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(statementSheet)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	title := "Billing statement"
	if st.PeriodLabel != "" {
		title += " - " + st.PeriodLabel
	}
	setCell(f, "A1", title)

	headers := []string{"Date", "Project", "Description", "Hours", "Rate", "Expenses", "Earnings"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		setCell(f, cell, h)
	}
	if err := f.SetCellStyle(statementSheet, "A3", "G3", headerStyle); err != nil {
		return fmt.Errorf("styling header row: %w", err)
	}

	row := 4
	for i := range st.Entries {
		e := &st.Entries[i]
		name := projectNames[e.ProjectID]
		if name == "" {
			name = e.ProjectID
		}
		rate := 0.0
		if e.HourlyRate != nil {
			rate = *e.HourlyRate
		}

		setCell(f, cellAt(1, row), e.StartAt().Format("2006-01-02"))
		setCell(f, cellAt(2, row), name)
		setCell(f, cellAt(3, row), e.Description)
		setCell(f, cellAt(4, row), round2(e.Duration/3600))
		setCell(f, cellAt(5, row), rate)
		setCell(f, cellAt(6, row), round2(e.ExpenseTotal()))
		setCell(f, cellAt(7, row), round2(e.Earnings()))
		row++
	}

	row++
	setCell(f, cellAt(3, row), "Total")
	setCell(f, cellAt(4, row), round2(st.TotalHours))
	setCell(f, cellAt(7, row), round2(st.TotalEarnings))

	widths := map[string]float64{"A": 12, "B": 24, "C": 40, "D": 8, "E": 8, "F": 10, "G": 12}
	for col, w := range widths {
		if err := f.SetColWidth(statementSheet, col, col, w); err != nil {
			return fmt.Errorf("sizing column %s: %w", col, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, cell string, value any) {
	_ = f.SetCellValue(statementSheet, cell, value)
}

func cellAt(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
