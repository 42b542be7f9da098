package dto

import (
	"time"

	"github.com/comprende-ia/comprende-api/internal/models"
)

// AnswerSubmission is one answered question inside an attempt submission.
// Order is significant and preserved in the stored attempt.
type AnswerSubmission struct {
	QuestionID   uint   `json:"question_id" validate:"required"`
	QuestionText string `json:"question_text" validate:"required"`
	UserAnswer   string `json:"user_answer" validate:"required"`
}

// AttemptCreateRequest is the payload for submitting an attempt.
type AttemptCreateRequest struct {
	TextID  uint               `json:"text_id" validate:"required"`
	Answers []AnswerSubmission `json:"answers" validate:"required,min=1,dive"`
}

// EvaluatedAnswerResponse is one scored answer within an attempt.
type EvaluatedAnswerResponse struct {
	QuestionID   uint    `json:"question_id"`
	QuestionText string  `json:"question_text"`
	UserAnswer   string  `json:"user_answer"`
	Score        float64 `json:"score"`
	Feedback     string  `json:"feedback"`
}

// AttemptResponse is the public shape of a scored attempt.
type AttemptResponse struct {
	ID         uint                      `json:"id"`
	TextID     uint                      `json:"text_id"`
	TotalScore int                       `json:"total_score"`
	Answers    []EvaluatedAnswerResponse `json:"answers"`
	CreatedAt  time.Time                 `json:"created_at"`
}

// AttemptDetailResponse is the teacher-facing view of an attempt with the
// student and text denormalized.
type AttemptDetailResponse struct {
	ID          uint                      `json:"id"`
	Student     UserResponse              `json:"student"`
	TextID      uint                      `json:"text_id"`
	TextName    string                    `json:"text_filename"`
	TotalScore  int                       `json:"total_score"`
	Answers     []EvaluatedAnswerResponse `json:"answers"`
	CompletedAt time.Time                 `json:"completed_at"`
}

// NewAttemptResponse maps an attempt model to its public shape.
func NewAttemptResponse(attempt models.Attempt) AttemptResponse {
	return AttemptResponse{
		ID:         attempt.ID,
		TextID:     attempt.TextID,
		TotalScore: attempt.TotalScore,
		Answers:    newEvaluatedAnswerSlice(attempt.Answers),
		CreatedAt:  attempt.CreatedAt,
	}
}

func newEvaluatedAnswerSlice(answers []models.AttemptAnswer) []EvaluatedAnswerResponse {
	responses := make([]EvaluatedAnswerResponse, 0, len(answers))
	for _, answer := range answers {
		responses = append(responses, EvaluatedAnswerResponse{
			QuestionID:   answer.QuestionID,
			QuestionText: answer.QuestionText,
			UserAnswer:   answer.UserAnswer,
			Score:        answer.Score,
			Feedback:     answer.Feedback,
		})
	}

	return responses
}
