package models

import "time"

// Comprehension levels a question can target.
const (
	QuestionLevelLiteral     = "Literal"
	QuestionLevelInferential = "Inferential"
	QuestionLevelCritical    = "Critical"
)

// Question is a comprehension question generated for a text. Generation is
// guarded at-most-once per text; re-requests return the existing set.
type Question struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TextID    uint      `gorm:"not null;index" json:"text_id"`
	Level     string    `gorm:"size:16;not null" json:"level"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	CreatedAt time.Time `json:"created_at"`
}
