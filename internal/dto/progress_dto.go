package dto

import "time"

// DeletedTextPlaceholder is shown when an attempt references a text that no
// longer exists.
const DeletedTextPlaceholder = "deleted text"

// AttemptSummary is one row of a progress report.
type AttemptSummary struct {
	AttemptID    uint      `json:"attempt_id"`
	TextID       uint      `json:"text_id"`
	TextFilename string    `json:"text_filename"`
	Score        int       `json:"score"`
	AnswersCount int       `json:"answers_count"`
	CompletedAt  time.Time `json:"completed_at"`
}

// ProgressReport aggregates a student's attempt history.
type ProgressReport struct {
	StudentID      uint             `json:"student_id"`
	TotalAttempts  int              `json:"total_attempts"`
	AverageScore   float64          `json:"average_score"`
	TextsCompleted int              `json:"texts_completed"`
	Attempts       []AttemptSummary `json:"attempts"`
}
