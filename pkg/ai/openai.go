package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	aiDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "comprende",
		Subsystem: "ai",
		Name:      "request_duration_seconds",
		Help:      "Duration of generative model requests",
	}, []string{"operation", "model"})

	aiFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "comprende",
		Subsystem: "ai",
		Name:      "request_failures_total",
		Help:      "Number of failed generative model requests",
	}, []string{"operation", "model"})
)

// OpenAIConfig defines configuration options for the OpenAI-backed gateway.
type OpenAIConfig struct {
	APIKey         string
	Model          string
	MaxTokens      int
	Temperature    float32
	RequestTimeout time.Duration
	Logger         zerolog.Logger
}

// OpenAIGateway implements Gateway against the OpenAI chat completion API.
type OpenAIGateway struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIGateway builds a gateway using the provided configuration.
func NewOpenAIGateway(cfg OpenAIConfig) (*OpenAIGateway, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 2048
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	client := openai.NewClientWithConfig(config)

	return &OpenAIGateway{
		client: client,
		cfg:    cfg,
		tracer: otel.Tracer("github.com/comprende-ia/comprende-api/pkg/ai/openai"),
		logger: logger.With().Str("component", "ai_gateway").Logger(),
	}, nil
}

// AnalyzeText produces the summary, fallacy list and initial question set for
// a source text.
func (g *OpenAIGateway) AnalyzeText(ctx context.Context, content string) (TextAnalysis, error) {
	raw, err := g.complete(ctx, "analyze_text", analysisSystemPrompt(), analysisUserPrompt(content))
	if err != nil {
		return TextAnalysis{}, err
	}

	var analysis TextAnalysis
	if err := decodeValidated(analysisSchema, raw, &analysis); err != nil {
		aiFailures.WithLabelValues("analyze_text", g.cfg.Model).Inc()
		return TextAnalysis{}, fmt.Errorf("analyze text: %w", err)
	}

	for i := range analysis.Questions {
		analysis.Questions[i].Level = normalizeLevel(analysis.Questions[i].Level)
	}

	return analysis, nil
}

// GenerateQuestions asks the model for a fresh set of five comprehension
// questions covering the three levels.
func (g *OpenAIGateway) GenerateQuestions(ctx context.Context, content string) ([]GeneratedQuestion, error) {
	raw, err := g.complete(ctx, "generate_questions", questionsSystemPrompt(), questionsUserPrompt(content))
	if err != nil {
		return nil, err
	}

	var payload struct {
		Questions []GeneratedQuestion `json:"questions"`
	}
	if err := decodeValidated(questionsSchema, raw, &payload); err != nil {
		aiFailures.WithLabelValues("generate_questions", g.cfg.Model).Inc()
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	for i := range payload.Questions {
		payload.Questions[i].Level = normalizeLevel(payload.Questions[i].Level)
	}

	return payload.Questions, nil
}

// EvaluateAnswer grades one user answer to one question. The score is
// clamped to the fixed 0-5 scale.
func (g *OpenAIGateway) EvaluateAnswer(ctx context.Context, questionText, userAnswer string) (AnswerEvaluation, error) {
	raw, err := g.complete(ctx, "evaluate_answer", evaluatorSystemPrompt(), evaluatorUserPrompt(questionText, userAnswer))
	if err != nil {
		return AnswerEvaluation{}, err
	}

	var evaluation AnswerEvaluation
	if err := decodeValidated(evaluationSchema, raw, &evaluation); err != nil {
		aiFailures.WithLabelValues("evaluate_answer", g.cfg.Model).Inc()
		return AnswerEvaluation{}, fmt.Errorf("evaluate answer: %w", err)
	}

	if evaluation.Score < 0 {
		evaluation.Score = 0
	}
	if evaluation.Score > 5 {
		evaluation.Score = 5
	}

	return evaluation, nil
}

func (g *OpenAIGateway) complete(parent context.Context, operation, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(parent, g.cfg.RequestTimeout)
	defer cancel()

	ctx, span := g.tracer.Start(ctx, "openai."+operation, trace.WithAttributes(
		attribute.String("model", g.cfg.Model),
	))
	defer span.End()

	request := openai.ChatCompletionRequest{
		Model:       g.cfg.Model,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	}

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, request)
	aiDuration.WithLabelValues(operation, g.cfg.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		aiFailures.WithLabelValues(operation, g.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("openai %s: %w", operation, err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from openai")
		aiFailures.WithLabelValues(operation, g.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func normalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "literal":
		return "Literal"
	case "inferential":
		return "Inferential"
	case "critical":
		return "Critical"
	default:
		return strings.TrimSpace(level)
	}
}
