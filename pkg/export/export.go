// Package export renders student progress reports as downloadable files.
package export

import "github.com/comprende-ia/comprende-api/internal/dto"

// Comprehension level bands derived from the total score.
const (
	LevelAdvanced     = "Advanced"
	LevelIntermediate = "Intermediate"
	LevelBasic        = "Basic"
)

// LevelForScore maps a 0 to 100 score to its comprehension band.
func LevelForScore(score int) string {
	switch {
	case score >= 80:
		return LevelAdvanced
	case score >= 60:
		return LevelIntermediate
	default:
		return LevelBasic
	}
}

// StudentReport pairs a student's identity with their progress for export.
type StudentReport struct {
	Name     string
	Email    string
	Progress dto.ProgressReport
}
