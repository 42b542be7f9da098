package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/comprende-ia/comprende-api/internal/dto"
	"github.com/comprende-ia/comprende-api/internal/models"
	"github.com/comprende-ia/comprende-api/internal/observability"
	"github.com/comprende-ia/comprende-api/internal/repository"
	"github.com/comprende-ia/comprende-api/pkg/ai"
)

// FailedEvaluationFeedback replaces the model feedback for an answer whose
// evaluation call failed. That answer scores zero and the rest of the attempt
// still goes through.
const FailedEvaluationFeedback = "evaluation failed for this answer"

// evaluationConcurrency caps parallel calls to the evaluator per attempt.
const evaluationConcurrency = 4

var (
	// ErrAttemptNotFound is returned when an attempt does not exist or is
	// not visible to the caller.
	ErrAttemptNotFound = errors.New("attempt not found")
	// ErrNoAttempts is returned when a student has no attempt for a text.
	ErrNoAttempts = errors.New("no attempts for this text")
)

// ProgressInvalidator drops cached progress after a new attempt lands.
type ProgressInvalidator interface {
	InvalidateProgress(ctx context.Context, studentID uint)
}

// AttemptService evaluates submitted answers and stores the scored attempt.
type AttemptService struct {
	attempts            repository.AttemptRepository
	enrollments         repository.EnrollmentRepository
	gateway             ai.Gateway
	notifier            AttemptNotifier
	invalidator         ProgressInvalidator
	validate            *validator.Validate
	evaluationTimeout   time.Duration
	notificationTimeout time.Duration
	logger              zerolog.Logger
}

// NewAttemptService builds an AttemptService. The notifier and invalidator
// may be nil, in which case those steps are skipped.
func NewAttemptService(attempts repository.AttemptRepository, enrollments repository.EnrollmentRepository, gateway ai.Gateway, notifier AttemptNotifier, invalidator ProgressInvalidator, validate *validator.Validate, evaluationTimeout, notificationTimeout time.Duration, logger zerolog.Logger) *AttemptService {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &AttemptService{
		attempts:            attempts,
		enrollments:         enrollments,
		gateway:             gateway,
		notifier:            notifier,
		invalidator:         invalidator,
		validate:            validate,
		evaluationTimeout:   evaluationTimeout,
		notificationTimeout: notificationTimeout,
		logger:              logger.With().Str("component", "attempt_service").Logger(),
	}
}

// Create evaluates every answer concurrently, computes the total score and
// stores the attempt in a single insert. A failed evaluation substitutes a
// zero score for that answer instead of failing the attempt.
func (s *AttemptService) Create(ctx context.Context, userID uint, req dto.AttemptCreateRequest) (dto.AttemptResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return dto.AttemptResponse{}, err
	}

	answers := s.evaluateAll(ctx, req.Answers)

	var sum float64
	for _, answer := range answers {
		sum += answer.Score
	}
	total := int(math.Round(100 * sum / (float64(len(answers)) * models.PerAnswerMaxScore)))

	attempt := models.Attempt{
		UserID:     userID,
		TextID:     req.TextID,
		Answers:    answers,
		TotalScore: total,
	}
	if err := s.attempts.Create(ctx, &attempt); err != nil {
		observability.AttemptsEvaluated().WithLabelValues("failure").Inc()
		return dto.AttemptResponse{}, fmt.Errorf("store attempt: %w", err)
	}
	observability.AttemptsEvaluated().WithLabelValues("success").Inc()

	s.logger.Info().
		Uint("attempt_id", attempt.ID).
		Uint("user_id", userID).
		Uint("text_id", req.TextID).
		Int("total_score", total).
		Msg("attempt evaluated")

	if s.invalidator != nil {
		s.invalidator.InvalidateProgress(ctx, userID)
	}

	notifyDetached(s.notifier, s.notificationTimeout, s.logger, AttemptCompletedEvent{
		AttemptID:  attempt.ID,
		UserID:     userID,
		TextID:     req.TextID,
		TotalScore: total,
		OccurredAt: time.Now(),
	})

	return dto.NewAttemptResponse(attempt), nil
}

// evaluateAll fans the answers out to the evaluator. Each evaluation runs
// under its own timeout and its error is absorbed in place, so one failure
// never cancels the rest.
func (s *AttemptService) evaluateAll(ctx context.Context, submissions []dto.AnswerSubmission) []models.AttemptAnswer {
	answers := make([]models.AttemptAnswer, len(submissions))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(evaluationConcurrency)

	for i, submission := range submissions {
		group.Go(func() error {
			callCtx, cancel := context.WithTimeout(groupCtx, s.evaluationTimeout)
			defer cancel()

			answer := models.AttemptAnswer{
				QuestionID:   submission.QuestionID,
				QuestionText: submission.QuestionText,
				UserAnswer:   submission.UserAnswer,
				Position:     i,
			}

			evaluation, err := s.gateway.EvaluateAnswer(callCtx, submission.QuestionText, submission.UserAnswer)
			if err != nil {
				observability.AnswerSubstitutions().Inc()
				s.logger.Warn().Err(err).Uint("question_id", submission.QuestionID).Msg("answer evaluation failed, scoring zero")
				answer.Score = 0
				answer.Feedback = FailedEvaluationFeedback
			} else {
				answer.Score = evaluation.Score
				answer.Feedback = evaluation.Feedback
			}

			answers[i] = answer
			return nil
		})
	}

	// Workers never return errors, Wait only joins them.
	_ = group.Wait()

	return answers
}

// GetLatestForText returns the student's most recent attempt for a text.
func (s *AttemptService) GetLatestForText(ctx context.Context, userID, textID uint) (dto.AttemptResponse, error) {
	attempt, err := s.attempts.GetLatestByUserAndText(ctx, userID, textID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttemptResponse{}, ErrNoAttempts
		}
		return dto.AttemptResponse{}, fmt.Errorf("get latest attempt: %w", err)
	}

	return dto.NewAttemptResponse(attempt), nil
}

// GetDetailForTeacher returns a full attempt to a teacher enrolled with the
// attempt's student.
func (s *AttemptService) GetDetailForTeacher(ctx context.Context, teacherID, attemptID uint) (dto.AttemptDetailResponse, error) {
	attempt, err := s.attempts.GetByID(ctx, attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttemptDetailResponse{}, ErrAttemptNotFound
		}
		return dto.AttemptDetailResponse{}, fmt.Errorf("get attempt: %w", err)
	}

	if _, err := s.enrollments.GetActiveByPair(ctx, teacherID, attempt.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttemptDetailResponse{}, ErrNotEnrolled
		}
		return dto.AttemptDetailResponse{}, fmt.Errorf("check enrollment: %w", err)
	}

	detail := dto.AttemptDetailResponse{
		ID:          attempt.ID,
		TextID:      attempt.TextID,
		TotalScore:  attempt.TotalScore,
		CompletedAt: attempt.CreatedAt,
	}
	if attempt.User != nil {
		detail.Student = dto.NewUserResponse(*attempt.User)
	}
	if attempt.Text != nil {
		detail.TextName = attempt.Text.Filename
	} else {
		detail.TextName = dto.DeletedTextPlaceholder
	}
	for _, answer := range attempt.Answers {
		detail.Answers = append(detail.Answers, dto.EvaluatedAnswerResponse{
			QuestionID:   answer.QuestionID,
			QuestionText: answer.QuestionText,
			UserAnswer:   answer.UserAnswer,
			Score:        answer.Score,
			Feedback:     answer.Feedback,
		})
	}

	return detail, nil
}
