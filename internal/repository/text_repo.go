package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/comprende-ia/comprende-api/internal/models"
)

// TextRepository defines data operations for source texts.
type TextRepository interface {
	Create(ctx context.Context, text *models.Text) error
	GetByID(ctx context.Context, id uint) (models.Text, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID uint) (models.Text, error)
	ExistsByContentAndOwner(ctx context.Context, content string, ownerID uint) (bool, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Text, error)
}

type textRepository struct {
	db *gorm.DB
}

// NewTextRepository instantiates the repository.
func NewTextRepository(db *gorm.DB) TextRepository {
	return &textRepository{db: db}
}

func (r *textRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Text{}).
		Preload("Fallacies").
		Preload("Questions")
}

func (r *textRepository) Create(ctx context.Context, text *models.Text) error {
	return r.db.WithContext(ctx).Create(text).Error
}

func (r *textRepository) GetByID(ctx context.Context, id uint) (models.Text, error) {
	var text models.Text
	if err := r.baseQuery(ctx).First(&text, id).Error; err != nil {
		return models.Text{}, err
	}

	return text, nil
}

func (r *textRepository) GetByIDAndOwner(ctx context.Context, id, ownerID uint) (models.Text, error) {
	var text models.Text
	if err := r.baseQuery(ctx).
		Where("id = ?", id).
		Where("owner_id = ?", ownerID).
		First(&text).Error; err != nil {
		return models.Text{}, err
	}

	return text, nil
}

func (r *textRepository) ExistsByContentAndOwner(ctx context.Context, content string, ownerID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Text{}).
		Where("content = ?", content).
		Where("owner_id = ?", ownerID).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *textRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Text, error) {
	var texts []models.Text
	if err := r.baseQuery(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&texts).Error; err != nil {
		return nil, err
	}

	return texts, nil
}
