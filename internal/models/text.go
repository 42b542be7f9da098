package models

import (
	"time"

	"gorm.io/datatypes"
)

// Text is a source document submitted by a student, together with the
// AI-generated analysis attached at creation time.
type Text struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Filename    string         `gorm:"size:255;not null" json:"filename"`
	Content     string         `gorm:"type:text;not null" json:"content"`
	OwnerID     *uint          `gorm:"index" json:"owner_id"`
	Summary     string         `gorm:"type:text" json:"summary"`
	AnalysisRaw datatypes.JSON `json:"-"`
	Fallacies   []Fallacy      `gorm:"constraint:OnDelete:CASCADE" json:"fallacies"`
	Questions   []Question     `gorm:"constraint:OnDelete:CASCADE" json:"questions"`
	CreatedAt   time.Time      `json:"created_at"`
}

// HasAnalysis reports whether the AI analysis was attached at creation.
// Analysis is populated at most once; a failed upstream call leaves it empty
// and it is never recomputed.
func (t Text) HasAnalysis() bool {
	return t.Summary != ""
}

// Fallacy is one logical fallacy the analysis identified in a text.
type Fallacy struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	TextID      uint   `gorm:"not null;index" json:"text_id"`
	Type        string `gorm:"size:128;not null" json:"type"`
	Description string `gorm:"type:text;not null" json:"description"`
}
