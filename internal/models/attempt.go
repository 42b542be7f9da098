package models

import "time"

// PerAnswerMaxScore is the maximum score the evaluator can award a single
// answer. The attempt total is the percentage of points earned against
// len(answers) * PerAnswerMaxScore.
const PerAnswerMaxScore = 5.0

// Attempt is one scored submission of answers against a text's questions.
// Attempts are immutable once created.
type Attempt struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UserID     uint            `gorm:"not null;index" json:"user_id"`
	TextID     uint            `gorm:"not null;index" json:"text_id"`
	Answers    []AttemptAnswer `gorm:"constraint:OnDelete:CASCADE" json:"answers"`
	TotalScore int             `gorm:"not null" json:"total_score"`
	CreatedAt  time.Time       `json:"created_at"`
	Text       *Text           `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	User       *User           `json:"-"`
}

// AttemptAnswer is a single evaluated answer within an attempt. Position
// preserves submission order regardless of evaluation completion order.
type AttemptAnswer struct {
	ID           uint    `gorm:"primaryKey" json:"-"`
	AttemptID    uint    `gorm:"not null;index" json:"-"`
	QuestionID   uint    `gorm:"not null" json:"question_id"`
	QuestionText string  `gorm:"type:text;not null" json:"question_text"`
	UserAnswer   string  `gorm:"type:text;not null" json:"user_answer"`
	Score        float64 `gorm:"not null" json:"score"`
	Feedback     string  `gorm:"type:text" json:"feedback"`
	Position     int     `gorm:"not null" json:"-"`
}
