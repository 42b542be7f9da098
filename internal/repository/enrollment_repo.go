package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/comprende-ia/comprende-api/internal/models"
)

// EnrollmentRepository defines data operations for teacher-student enrollments.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Update(ctx context.Context, enrollment *models.Enrollment) error
	GetByPair(ctx context.Context, teacherID, studentID uint) (models.Enrollment, error)
	GetActiveByPair(ctx context.Context, teacherID, studentID uint) (models.Enrollment, error)
	ListActiveByTeacher(ctx context.Context, teacherID uint) ([]models.Enrollment, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository instantiates the repository.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

// Create inserts a new enrollment. The composite unique index on
// (teacher_id, student_id) rejects the loser of a concurrent double-enroll.
func (r *enrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

func (r *enrollmentRepository) Update(ctx context.Context, enrollment *models.Enrollment) error {
	return r.db.WithContext(ctx).Save(enrollment).Error
}

func (r *enrollmentRepository) GetByPair(ctx context.Context, teacherID, studentID uint) (models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Where("student_id = ?", studentID).
		First(&enrollment).Error; err != nil {
		return models.Enrollment{}, err
	}

	return enrollment, nil
}

func (r *enrollmentRepository) GetActiveByPair(ctx context.Context, teacherID, studentID uint) (models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Where("student_id = ?", studentID).
		Where("is_active = ?", true).
		First(&enrollment).Error; err != nil {
		return models.Enrollment{}, err
	}

	return enrollment, nil
}

func (r *enrollmentRepository) ListActiveByTeacher(ctx context.Context, teacherID uint) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("teacher_id = ?", teacherID).
		Where("is_active = ?", true).
		Order("enrolled_at DESC").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}

	return enrollments, nil
}
