package dto

import (
	"time"

	"github.com/comprende-ia/comprende-api/internal/models"
)

// EnrollRequest is the payload for enrolling a student by email.
type EnrollRequest struct {
	StudentEmail string `json:"student_email" validate:"required,email"`
}

// EnrolledStudentResponse is one row in a teacher's student roster.
type EnrolledStudentResponse struct {
	EnrollmentID uint      `json:"enrollment_id"`
	StudentID    uint      `json:"student_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	EnrolledAt   time.Time `json:"enrolled_at"`
}

// EnrollmentResponse is the public shape of an enrollment record.
type EnrollmentResponse struct {
	ID         uint      `json:"id"`
	TeacherID  uint      `json:"teacher_id"`
	StudentID  uint      `json:"student_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
	IsActive   bool      `json:"is_active"`
}

// RecommendRequest is the payload for recommending or assigning a text.
type RecommendRequest struct {
	TextID  uint       `json:"text_id" validate:"required"`
	Comment string     `json:"comment" validate:"omitempty,max=500"`
	Type    string     `json:"type" validate:"omitempty,oneof=recommendation assignment"`
	DueDate *time.Time `json:"due_date"`
}

// RecommendationResponse is the public shape of a recommendation record.
type RecommendationResponse struct {
	ID          uint       `json:"id"`
	TeacherName string     `json:"teacher_name,omitempty"`
	StudentName string     `json:"student_name,omitempty"`
	TextID      uint       `json:"text_id"`
	TextName    string     `json:"text_filename,omitempty"`
	Comment     string     `json:"comment"`
	Status      string     `json:"status"`
	Type        string     `json:"type"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewEnrollmentResponse maps an enrollment model to its public shape.
func NewEnrollmentResponse(enrollment models.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:         enrollment.ID,
		TeacherID:  enrollment.TeacherID,
		StudentID:  enrollment.StudentID,
		EnrolledAt: enrollment.EnrolledAt,
		IsActive:   enrollment.IsActive,
	}
}

// NewEnrolledStudentSlice maps enrollments with preloaded students to roster rows.
func NewEnrolledStudentSlice(enrollments []models.Enrollment) []EnrolledStudentResponse {
	students := make([]EnrolledStudentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		row := EnrolledStudentResponse{
			EnrollmentID: enrollment.ID,
			StudentID:    enrollment.StudentID,
			EnrolledAt:   enrollment.EnrolledAt,
		}
		if enrollment.Student != nil {
			row.Name = enrollment.Student.Name
			row.Email = enrollment.Student.Email
		}
		students = append(students, row)
	}

	return students
}

// NewRecommendationResponse maps a recommendation with preloaded references.
func NewRecommendationResponse(recommendation models.TextRecommendation) RecommendationResponse {
	response := RecommendationResponse{
		ID:          recommendation.ID,
		TextID:      recommendation.TextID,
		Comment:     recommendation.Comment,
		Status:      recommendation.Status,
		Type:        recommendation.Type,
		DueDate:     recommendation.DueDate,
		CreatedAt:   recommendation.CreatedAt,
		CompletedAt: recommendation.CompletedAt,
	}
	if recommendation.Teacher != nil {
		response.TeacherName = recommendation.Teacher.Name
	}
	if recommendation.Student != nil {
		response.StudentName = recommendation.Student.Name
	}
	if recommendation.Text != nil {
		response.TextName = recommendation.Text.Filename
	}

	return response
}

// NewRecommendationResponseSlice maps recommendation models to their public shape.
func NewRecommendationResponseSlice(recommendations []models.TextRecommendation) []RecommendationResponse {
	responses := make([]RecommendationResponse, 0, len(recommendations))
	for _, recommendation := range recommendations {
		responses = append(responses, NewRecommendationResponse(recommendation))
	}

	return responses
}
