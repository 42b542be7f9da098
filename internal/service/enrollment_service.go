package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/comprende-ia/comprende-api/internal/dto"
	"github.com/comprende-ia/comprende-api/internal/models"
	"github.com/comprende-ia/comprende-api/internal/repository"
)

var (
	// ErrStudentNotFound is returned when no student account matches the
	// given email.
	ErrStudentNotFound = errors.New("student not found")
	// ErrAlreadyEnrolled is returned when the teacher already has an active
	// enrollment with the student.
	ErrAlreadyEnrolled = errors.New("student already enrolled")
	// ErrNotEnrolled is returned when a teacher acts on a student without an
	// active enrollment.
	ErrNotEnrolled = errors.New("student is not enrolled with this teacher")
)

// EnrollmentService manages the teacher to student roster.
type EnrollmentService struct {
	enrollments repository.EnrollmentRepository
	users       repository.UserRepository
	validate    *validator.Validate
	logger      zerolog.Logger
}

// NewEnrollmentService builds an EnrollmentService.
func NewEnrollmentService(enrollments repository.EnrollmentRepository, users repository.UserRepository, validate *validator.Validate, logger zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{
		enrollments: enrollments,
		users:       users,
		validate:    validate,
		logger:      logger.With().Str("component", "enrollment_service").Logger(),
	}
}

// Enroll links a student to the teacher by email. A previously deactivated
// enrollment is reactivated rather than recreated, an active one conflicts.
func (s *EnrollmentService) Enroll(ctx context.Context, teacherID uint, req dto.EnrollRequest) (dto.EnrollmentResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return dto.EnrollmentResponse{}, err
	}

	student, err := s.users.GetByEmailAndRole(ctx, req.StudentEmail, models.RoleStudent)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EnrollmentResponse{}, ErrStudentNotFound
		}
		return dto.EnrollmentResponse{}, fmt.Errorf("lookup student: %w", err)
	}

	existing, err := s.enrollments.GetByPair(ctx, teacherID, student.ID)
	switch {
	case err == nil && existing.IsActive:
		return dto.EnrollmentResponse{}, ErrAlreadyEnrolled
	case err == nil:
		existing.IsActive = true
		existing.EnrolledAt = time.Now()
		if err := s.enrollments.Update(ctx, &existing); err != nil {
			return dto.EnrollmentResponse{}, fmt.Errorf("reactivate enrollment: %w", err)
		}
		s.logger.Info().Uint("teacher_id", teacherID).Uint("student_id", student.ID).Msg("enrollment reactivated")
		return dto.NewEnrollmentResponse(existing), nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return dto.EnrollmentResponse{}, fmt.Errorf("check enrollment: %w", err)
	}

	enrollment := models.Enrollment{
		TeacherID:  teacherID,
		StudentID:  student.ID,
		EnrolledAt: time.Now(),
		IsActive:   true,
	}
	if err := s.enrollments.Create(ctx, &enrollment); err != nil {
		return dto.EnrollmentResponse{}, fmt.Errorf("create enrollment: %w", err)
	}

	s.logger.Info().Uint("teacher_id", teacherID).Uint("student_id", student.ID).Msg("student enrolled")

	return dto.NewEnrollmentResponse(enrollment), nil
}

// Unenroll deactivates the enrollment without deleting the record.
func (s *EnrollmentService) Unenroll(ctx context.Context, teacherID, studentID uint) error {
	enrollment, err := s.enrollments.GetActiveByPair(ctx, teacherID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotEnrolled
		}
		return fmt.Errorf("get enrollment: %w", err)
	}

	enrollment.IsActive = false
	if err := s.enrollments.Update(ctx, &enrollment); err != nil {
		return fmt.Errorf("deactivate enrollment: %w", err)
	}

	s.logger.Info().Uint("teacher_id", teacherID).Uint("student_id", studentID).Msg("student unenrolled")

	return nil
}

// ListStudents returns the teacher's active roster, most recent first.
func (s *EnrollmentService) ListStudents(ctx context.Context, teacherID uint) ([]dto.EnrolledStudentResponse, error) {
	enrollments, err := s.enrollments.ListActiveByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}

	return dto.NewEnrolledStudentSlice(enrollments), nil
}

// RequireActive fails with ErrNotEnrolled unless the pair has an active
// enrollment.
func (s *EnrollmentService) RequireActive(ctx context.Context, teacherID, studentID uint) error {
	if _, err := s.enrollments.GetActiveByPair(ctx, teacherID, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotEnrolled
		}
		return fmt.Errorf("check enrollment: %w", err)
	}

	return nil
}
