package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/comprende-ia/comprende-api/internal/models"
)

// AttemptRepository defines data operations for scored attempts.
type AttemptRepository interface {
	Create(ctx context.Context, attempt *models.Attempt) error
	GetByID(ctx context.Context, id uint) (models.Attempt, error)
	GetLatestByUserAndText(ctx context.Context, userID, textID uint) (models.Attempt, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Attempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

// NewAttemptRepository instantiates the repository.
func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Attempt{}).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Text").
		Preload("User")
}

// Create persists the attempt and its answers in a single insert.
func (r *attemptRepository) Create(ctx context.Context, attempt *models.Attempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

func (r *attemptRepository) GetByID(ctx context.Context, id uint) (models.Attempt, error) {
	var attempt models.Attempt
	if err := r.baseQuery(ctx).First(&attempt, id).Error; err != nil {
		return models.Attempt{}, err
	}

	return attempt, nil
}

// GetLatestByUserAndText returns the most recent attempt for the pair.
// Multiple attempts per (user, text) are allowed; latest wins.
func (r *attemptRepository) GetLatestByUserAndText(ctx context.Context, userID, textID uint) (models.Attempt, error) {
	var attempt models.Attempt
	if err := r.baseQuery(ctx).
		Where("user_id = ?", userID).
		Where("text_id = ?", textID).
		Order("created_at DESC").
		First(&attempt).Error; err != nil {
		return models.Attempt{}, err
	}

	return attempt, nil
}

func (r *attemptRepository) ListByUser(ctx context.Context, userID uint) ([]models.Attempt, error) {
	var attempts []models.Attempt
	if err := r.baseQuery(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}

	return attempts, nil
}
