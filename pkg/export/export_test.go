package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/comprende-ia/comprende-api/internal/dto"
)

func sampleReports() []StudentReport {
	completed := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	return []StudentReport{
		{
			Name:  "Ana",
			Email: "ana@example.com",
			Progress: dto.ProgressReport{
				StudentID:      7,
				TotalAttempts:  2,
				AverageScore:   72.5,
				TextsCompleted: 2,
				Attempts: []dto.AttemptSummary{
					{AttemptID: 2, TextID: 3, TextFilename: "essay.txt", Score: 85, AnswersCount: 3, CompletedAt: completed},
					{AttemptID: 1, TextID: 4, TextFilename: "article.txt", Score: 60, AnswersCount: 3, CompletedAt: completed.Add(-time.Hour)},
				},
			},
		},
	}
}

func TestLevelForScore(t *testing.T) {
	require.Equal(t, LevelAdvanced, LevelForScore(80))
	require.Equal(t, LevelAdvanced, LevelForScore(100))
	require.Equal(t, LevelIntermediate, LevelForScore(60))
	require.Equal(t, LevelIntermediate, LevelForScore(79))
	require.Equal(t, LevelBasic, LevelForScore(59))
	require.Equal(t, LevelBasic, LevelForScore(0))
}

func TestWriteCSV(t *testing.T) {
	out, err := WriteCSV(sampleReports())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "Student")
	require.Contains(t, lines[1], "essay.txt")
	require.Contains(t, lines[1], LevelAdvanced)
	require.Contains(t, lines[2], LevelIntermediate)
}

func TestWriteExcel(t *testing.T) {
	out, err := WriteExcel(sampleReports())
	require.NoError(t, err)

	workbook, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows(sheetName)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 4)
	require.Equal(t, "Student", rows[0][0])
	require.Equal(t, "Ana", rows[1][0])
	require.Contains(t, rows[3][0], "Summary for Ana")
}

func TestWriteCSVEmpty(t *testing.T) {
	out, err := WriteCSV(nil)
	require.NoError(t, err)
	require.Contains(t, string(out), "Student")
}
