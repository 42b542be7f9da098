package dto

import "github.com/comprende-ia/comprende-api/internal/models"

// QuestionResponse is the public shape of a comprehension question.
type QuestionResponse struct {
	ID       uint   `json:"id"`
	Level    string `json:"level"`
	Question string `json:"question"`
}

// NewQuestionResponseSlice maps question models to their public shape.
func NewQuestionResponseSlice(questions []models.Question) []QuestionResponse {
	responses := make([]QuestionResponse, 0, len(questions))
	for _, question := range questions {
		responses = append(responses, QuestionResponse{
			ID:       question.ID,
			Level:    question.Level,
			Question: question.Question,
		})
	}

	return responses
}
