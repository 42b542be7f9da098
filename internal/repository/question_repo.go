package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/comprende-ia/comprende-api/internal/models"
)

// QuestionRepository defines data operations for comprehension questions.
type QuestionRepository interface {
	CreateBatch(ctx context.Context, questions []models.Question) error
	ListByText(ctx context.Context, textID uint) ([]models.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository instantiates the repository.
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) CreateBatch(ctx context.Context, questions []models.Question) error {
	if len(questions) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Create(&questions).Error
}

func (r *questionRepository) ListByText(ctx context.Context, textID uint) ([]models.Question, error) {
	var questions []models.Question
	if err := r.db.WithContext(ctx).
		Where("text_id = ?", textID).
		Order("id ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}

	return questions, nil
}
