package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"
)

// WriteCSV renders one row per attempt across all reports.
func WriteCSV(reports []StudentReport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"Student", "Email", "Text", "Score", "Level", "Answers", "Completed At"}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for _, report := range reports {
		for _, attempt := range report.Progress.Attempts {
			row := []string{
				report.Name,
				report.Email,
				attempt.TextFilename,
				fmt.Sprintf("%d", attempt.Score),
				LevelForScore(attempt.Score),
				fmt.Sprintf("%d", attempt.AnswersCount),
				attempt.CompletedAt.Format(time.RFC3339),
			}
			if err := writer.Write(row); err != nil {
				return nil, fmt.Errorf("write row: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}

	return buf.Bytes(), nil
}
