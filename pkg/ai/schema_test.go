package ai

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeValidatedEvaluation(t *testing.T) {
	var evaluation AnswerEvaluation
	err := decodeValidated(evaluationSchema, `{"score": 4.5, "feedback": "solid reasoning"}`, &evaluation)
	require.NoError(t, err)
	require.Equal(t, 4.5, evaluation.Score)
	require.Equal(t, "solid reasoning", evaluation.Feedback)
}

func TestDecodeValidatedRejectsMissingField(t *testing.T) {
	var evaluation AnswerEvaluation
	err := decodeValidated(evaluationSchema, `{"score": 4.5}`, &evaluation)
	require.ErrorContains(t, err, "does not match expected schema")
}

func TestDecodeValidatedRejectsInvalidJSON(t *testing.T) {
	var evaluation AnswerEvaluation
	err := decodeValidated(evaluationSchema, `not json at all`, &evaluation)
	require.ErrorContains(t, err, "invalid json")
}

func TestDecodeValidatedAnalysis(t *testing.T) {
	raw := `{
		"summary": "a summary",
		"fallacies": [{"type": "ad hominem", "description": "attacks the author"}],
		"questions": [{"level": "literal", "question": "what happened?"}]
	}`

	var analysis TextAnalysis
	require.NoError(t, decodeValidated(analysisSchema, raw, &analysis))
	require.Equal(t, "a summary", analysis.Summary)
	require.Len(t, analysis.Fallacies, 1)
	require.Len(t, analysis.Questions, 1)
}

func TestDecodeValidatedQuestionsNeedsAtLeastOne(t *testing.T) {
	var payload struct {
		Questions []GeneratedQuestion `json:"questions"`
	}
	err := decodeValidated(questionsSchema, `{"questions": []}`, &payload)
	require.Error(t, err)
}
