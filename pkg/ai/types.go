package ai

import "context"

// TextAnalysis is the structured result of analyzing a source text: a
// summary, the logical fallacies found, and a first set of comprehension
// questions.
type TextAnalysis struct {
	Summary   string              `json:"summary"`
	Fallacies []FallacyFinding    `json:"fallacies"`
	Questions []GeneratedQuestion `json:"questions"`
}

// FallacyFinding names one fallacy and explains where the text commits it.
type FallacyFinding struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// GeneratedQuestion is a single comprehension question with its level
// (Literal, Inferential or Critical).
type GeneratedQuestion struct {
	Level    string `json:"level"`
	Question string `json:"question"`
}

// AnswerEvaluation is the model's judgement of one user answer. Score is on
// the fixed 0-5 scale; Feedback is a short explanation for the student.
type AnswerEvaluation struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// Gateway is the adapter to the external generative model. Implementations
// must return structured, schema-validated results; a response that does not
// match the expected shape is an error, never a partial result.
type Gateway interface {
	AnalyzeText(ctx context.Context, content string) (TextAnalysis, error)
	GenerateQuestions(ctx context.Context, content string) ([]GeneratedQuestion, error)
	EvaluateAnswer(ctx context.Context, questionText, userAnswer string) (AnswerEvaluation, error)
}
