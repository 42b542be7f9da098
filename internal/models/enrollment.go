package models

import "time"

// Enrollment ties a student to a teacher's class. A pair is unique; leaving
// a class flips IsActive instead of deleting the row, and re-enrolling
// reactivates the existing record.
type Enrollment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TeacherID  uint      `gorm:"not null;uniqueIndex:idx_enrollment_pair" json:"teacher_id"`
	StudentID  uint      `gorm:"not null;uniqueIndex:idx_enrollment_pair" json:"student_id"`
	EnrolledAt time.Time `gorm:"not null" json:"enrolled_at"`
	IsActive   bool      `gorm:"not null;default:true" json:"is_active"`
	Teacher    *User     `gorm:"foreignKey:TeacherID" json:"-"`
	Student    *User     `gorm:"foreignKey:StudentID" json:"-"`
}
