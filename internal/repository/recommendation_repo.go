package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/comprende-ia/comprende-api/internal/models"
)

// RecommendationRepository defines data operations for text recommendations.
type RecommendationRepository interface {
	Create(ctx context.Context, recommendation *models.TextRecommendation) error
	ListPendingByStudent(ctx context.Context, studentID uint) ([]models.TextRecommendation, error)
	ListByTeacher(ctx context.Context, teacherID uint) ([]models.TextRecommendation, error)
	GetLatestPendingForText(ctx context.Context, studentID, textID uint) (models.TextRecommendation, error)
}

type recommendationRepository struct {
	db *gorm.DB
}

// NewRecommendationRepository instantiates the repository.
func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

func (r *recommendationRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.TextRecommendation{}).
		Preload("Teacher").
		Preload("Student").
		Preload("Text")
}

func (r *recommendationRepository) Create(ctx context.Context, recommendation *models.TextRecommendation) error {
	return r.db.WithContext(ctx).Create(recommendation).Error
}

func (r *recommendationRepository) ListPendingByStudent(ctx context.Context, studentID uint) ([]models.TextRecommendation, error) {
	var recommendations []models.TextRecommendation
	if err := r.baseQuery(ctx).
		Where("student_id = ?", studentID).
		Where("status = ?", models.RecommendationStatusPending).
		Order("created_at DESC").
		Find(&recommendations).Error; err != nil {
		return nil, err
	}

	return recommendations, nil
}

func (r *recommendationRepository) ListByTeacher(ctx context.Context, teacherID uint) ([]models.TextRecommendation, error) {
	var recommendations []models.TextRecommendation
	if err := r.baseQuery(ctx).
		Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Find(&recommendations).Error; err != nil {
		return nil, err
	}

	return recommendations, nil
}

// GetLatestPendingForText returns the newest pending recommendation for the
// pair. Duplicates are possible; most recent wins.
func (r *recommendationRepository) GetLatestPendingForText(ctx context.Context, studentID, textID uint) (models.TextRecommendation, error) {
	var recommendation models.TextRecommendation
	if err := r.baseQuery(ctx).
		Where("student_id = ?", studentID).
		Where("text_id = ?", textID).
		Where("status = ?", models.RecommendationStatusPending).
		Order("created_at DESC").
		First(&recommendation).Error; err != nil {
		return models.TextRecommendation{}, err
	}

	return recommendation, nil
}
