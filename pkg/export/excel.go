package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Progress"

// WriteExcel renders a workbook with one row per student attempt and a
// summary block per student underneath the detail rows.
func WriteExcel(reports []StudentReport) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	index, err := file.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	file.SetActiveSheet(index)
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	header := []interface{}{"Student", "Email", "Text", "Score", "Level", "Answers", "Completed At"}
	if err := file.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	if err := file.SetCellStyle(sheetName, "A1", "G1", headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	row := 2
	for _, report := range reports {
		for _, attempt := range report.Progress.Attempts {
			cells := []interface{}{
				report.Name,
				report.Email,
				attempt.TextFilename,
				attempt.Score,
				LevelForScore(attempt.Score),
				attempt.AnswersCount,
				attempt.CompletedAt.Format(time.RFC3339),
			}
			if err := file.SetSheetRow(sheetName, fmt.Sprintf("A%d", row), &cells); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row, err)
			}
			row++
		}

		summary := []interface{}{
			fmt.Sprintf("Summary for %s", report.Name),
			"",
			fmt.Sprintf("Attempts: %d", report.Progress.TotalAttempts),
			fmt.Sprintf("Average: %.1f", report.Progress.AverageScore),
			fmt.Sprintf("Texts completed: %d", report.Progress.TextsCompleted),
		}
		if err := file.SetSheetRow(sheetName, fmt.Sprintf("A%d", row), &summary); err != nil {
			return nil, fmt.Errorf("write summary %d: %w", row, err)
		}
		row += 2
	}

	for column, width := range map[string]float64{"A": 24, "B": 30, "C": 28, "G": 22} {
		if err := file.SetColWidth(sheetName, column, column, width); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}

	return buf.Bytes(), nil
}
