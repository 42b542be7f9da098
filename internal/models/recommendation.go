package models

import "time"

// Recommendation lifecycle states.
const (
	RecommendationStatusPending   = "pending"
	RecommendationStatusCompleted = "completed"
	RecommendationStatusDismissed = "dismissed"
)

// Recommendation kinds. Assignments carry a mandatory due date.
const (
	RecommendationTypeRecommendation = "recommendation"
	RecommendationTypeAssignment     = "assignment"
)

// TextRecommendation is a teacher-authored pointer from a student to a text,
// either a soft recommendation or a hard assignment with a due date.
type TextRecommendation struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	TeacherID   uint       `gorm:"not null;index" json:"teacher_id"`
	StudentID   uint       `gorm:"not null;index:idx_recommendation_student_status" json:"student_id"`
	TextID      uint       `gorm:"not null" json:"text_id"`
	Comment     string     `gorm:"size:500" json:"comment"`
	Status      string     `gorm:"size:16;not null;default:pending;index:idx_recommendation_student_status" json:"status"`
	Type        string     `gorm:"size:16;not null;default:recommendation" json:"type"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
	Teacher     *User      `gorm:"foreignKey:TeacherID" json:"-"`
	Student     *User      `gorm:"foreignKey:StudentID" json:"-"`
	Text        *Text      `gorm:"foreignKey:TextID" json:"-"`
}

// IsAssignment reports whether the record is a due-dated assignment.
func (r TextRecommendation) IsAssignment() bool {
	return r.Type == RecommendationTypeAssignment
}
