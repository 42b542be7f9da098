package dto

import (
	"time"

	"github.com/comprende-ia/comprende-api/internal/models"
)

// TextCreateRequest is the payload for saving a text directly.
type TextCreateRequest struct {
	Filename string `json:"filename" validate:"omitempty,max=255"`
	Content  string `json:"content" validate:"required"`
}

// FallacyResponse is one identified fallacy.
type FallacyResponse struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// AnalysisResponse is the AI analysis attached to a text, or nil when the
// upstream call failed at creation time.
type AnalysisResponse struct {
	Summary   string             `json:"summary"`
	Fallacies []FallacyResponse  `json:"fallacies"`
	Questions []QuestionResponse `json:"questions"`
}

// TextResponse is the public shape of a stored text.
type TextResponse struct {
	ID        uint              `json:"id"`
	Filename  string            `json:"filename"`
	Content   string            `json:"content"`
	Analysis  *AnalysisResponse `json:"analysis"`
	CreatedAt time.Time         `json:"created_at"`
}

// TextListItem is the reduced shape used in listings.
type TextListItem struct {
	ID        uint      `json:"id"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
}

// TextDownloadResponse carries the raw content for download.
type TextDownloadResponse struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// NewTextResponse maps a text model to its public shape.
func NewTextResponse(text models.Text) TextResponse {
	response := TextResponse{
		ID:        text.ID,
		Filename:  text.Filename,
		Content:   text.Content,
		CreatedAt: text.CreatedAt,
	}

	if text.HasAnalysis() {
		analysis := AnalysisResponse{
			Summary:   text.Summary,
			Fallacies: make([]FallacyResponse, 0, len(text.Fallacies)),
			Questions: NewQuestionResponseSlice(text.Questions),
		}
		for _, fallacy := range text.Fallacies {
			analysis.Fallacies = append(analysis.Fallacies, FallacyResponse{
				Type:        fallacy.Type,
				Description: fallacy.Description,
			})
		}
		response.Analysis = &analysis
	}

	return response
}

// NewTextListItemSlice maps texts to their listing shape.
func NewTextListItemSlice(texts []models.Text) []TextListItem {
	items := make([]TextListItem, 0, len(texts))
	for _, text := range texts {
		items = append(items, TextListItem{
			ID:        text.ID,
			Filename:  text.Filename,
			CreatedAt: text.CreatedAt,
		})
	}

	return items
}
