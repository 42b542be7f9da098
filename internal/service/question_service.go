package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/comprende-ia/comprende-api/internal/dto"
	"github.com/comprende-ia/comprende-api/internal/models"
	"github.com/comprende-ia/comprende-api/internal/repository"
	"github.com/comprende-ia/comprende-api/pkg/ai"
)

// ErrQuestionsUnavailable is returned when the question generator fails and
// no stored set exists for the text.
var ErrQuestionsUnavailable = errors.New("questions could not be generated")

// QuestionService generates and serves comprehension questions for a text.
// Generation runs at most once per text, later requests return the stored set.
type QuestionService struct {
	questions repository.QuestionRepository
	texts     repository.TextRepository
	gateway   ai.Gateway
	logger    zerolog.Logger
}

// NewQuestionService builds a QuestionService.
func NewQuestionService(questions repository.QuestionRepository, texts repository.TextRepository, gateway ai.Gateway, logger zerolog.Logger) *QuestionService {
	return &QuestionService{
		questions: questions,
		texts:     texts,
		gateway:   gateway,
		logger:    logger.With().Str("component", "question_service").Logger(),
	}
}

// GetOrGenerate returns the question set of an owned text, generating and
// persisting it on the first request.
func (s *QuestionService) GetOrGenerate(ctx context.Context, textID, ownerID uint) ([]dto.QuestionResponse, error) {
	text, err := s.texts.GetByIDAndOwner(ctx, textID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTextNotFound
		}
		return nil, fmt.Errorf("get text: %w", err)
	}

	stored, err := s.questions.ListByText(ctx, text.ID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if len(stored) > 0 {
		return dto.NewQuestionResponseSlice(stored), nil
	}

	generated, err := s.gateway.GenerateQuestions(ctx, text.Content)
	if err != nil {
		s.logger.Error().Err(err).Uint("text_id", text.ID).Msg("question generation failed")
		return nil, ErrQuestionsUnavailable
	}

	batch := make([]models.Question, 0, len(generated))
	for _, question := range generated {
		batch = append(batch, models.Question{
			TextID:   text.ID,
			Level:    question.Level,
			Question: question.Question,
		})
	}
	if err := s.questions.CreateBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("store questions: %w", err)
	}

	s.logger.Info().Uint("text_id", text.ID).Int("count", len(batch)).Msg("questions generated")

	return dto.NewQuestionResponseSlice(batch), nil
}
