package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/comprende-ia/comprende-api/internal/models"
	"github.com/comprende-ia/comprende-api/pkg/ai"
)

type stubQuestionRepo struct {
	stored    []models.Question
	batch     []models.Question
	createErr error
	listErr   error
}

func (s *stubQuestionRepo) CreateBatch(_ context.Context, questions []models.Question) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.batch = questions
	s.stored = append(s.stored, questions...)
	return nil
}

func (s *stubQuestionRepo) ListByText(_ context.Context, _ uint) ([]models.Question, error) {
	return s.stored, s.listErr
}

func TestQuestionServiceGeneratesOnce(t *testing.T) {
	questions := &stubQuestionRepo{}
	texts := &stubTextRepo{byOwner: models.Text{ID: 3, Content: "an essay"}}
	gateway := &stubGateway{questions: []ai.GeneratedQuestion{
		{Level: models.QuestionLevelLiteral, Question: "q1"},
		{Level: models.QuestionLevelInferential, Question: "q2"},
		{Level: models.QuestionLevelCritical, Question: "q3"},
	}}
	svc := NewQuestionService(questions, texts, gateway, zerolog.Nop())

	first, err := svc.GetOrGenerate(context.Background(), 3, 7)
	require.NoError(t, err)
	require.Len(t, first, 3)
	require.Equal(t, 1, gateway.questionCalls)

	second, err := svc.GetOrGenerate(context.Background(), 3, 7)
	require.NoError(t, err)
	require.Len(t, second, 3)
	require.Equal(t, 1, gateway.questionCalls)
}

func TestQuestionServiceUnknownText(t *testing.T) {
	texts := &stubTextRepo{ownerErr: gorm.ErrRecordNotFound}
	svc := NewQuestionService(&stubQuestionRepo{}, texts, &stubGateway{}, zerolog.Nop())

	_, err := svc.GetOrGenerate(context.Background(), 3, 7)
	require.ErrorIs(t, err, ErrTextNotFound)
}

func TestQuestionServiceGenerationFailure(t *testing.T) {
	texts := &stubTextRepo{byOwner: models.Text{ID: 3, Content: "an essay"}}
	gateway := &stubGateway{questionErr: errors.New("upstream unavailable")}
	svc := NewQuestionService(&stubQuestionRepo{}, texts, gateway, zerolog.Nop())

	_, err := svc.GetOrGenerate(context.Background(), 3, 7)
	require.ErrorIs(t, err, ErrQuestionsUnavailable)
}
