package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/comprende-ia/comprende-api/internal/dto"
	"github.com/comprende-ia/comprende-api/internal/models"
	"github.com/comprende-ia/comprende-api/internal/repository"
	"github.com/comprende-ia/comprende-api/pkg/ai"
)

var (
	// ErrTextNotFound is returned when a text does not exist or is not
	// visible to the caller.
	ErrTextNotFound = errors.New("text not found")
	// ErrEmptyContent is returned when a submitted text has no content after
	// trimming.
	ErrEmptyContent = errors.New("text content is empty")
	// ErrDuplicateText is returned when the same owner already stored the
	// same content.
	ErrDuplicateText = errors.New("text already uploaded")
	// ErrUnsupportedFile is returned when an uploaded file is not plain text.
	ErrUnsupportedFile = errors.New("unsupported file type, only plain text is accepted")
	// ErrFileTooLarge is returned when an upload exceeds the size limit.
	ErrFileTooLarge = errors.New("file exceeds the upload size limit")
)

// TextService stores texts and runs the AI analysis at creation time.
type TextService struct {
	texts          repository.TextRepository
	enrollments    repository.EnrollmentRepository
	gateway        ai.Gateway
	validate       *validator.Validate
	maxUploadBytes int64
	logger         zerolog.Logger
}

// NewTextService builds a TextService.
func NewTextService(texts repository.TextRepository, enrollments repository.EnrollmentRepository, gateway ai.Gateway, validate *validator.Validate, maxUploadBytes int64, logger zerolog.Logger) *TextService {
	return &TextService{
		texts:          texts,
		enrollments:    enrollments,
		gateway:        gateway,
		validate:       validate,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With().Str("component", "text_service").Logger(),
	}
}

// Create stores a new text for the owner and attaches the AI analysis when
// the upstream call succeeds. An analysis failure is logged and the text is
// stored without one.
func (s *TextService) Create(ctx context.Context, ownerID uint, req dto.TextCreateRequest) (dto.TextResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return dto.TextResponse{}, err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return dto.TextResponse{}, ErrEmptyContent
	}

	duplicate, err := s.texts.ExistsByContentAndOwner(ctx, content, ownerID)
	if err != nil {
		return dto.TextResponse{}, fmt.Errorf("check duplicate: %w", err)
	}
	if duplicate {
		return dto.TextResponse{}, ErrDuplicateText
	}

	filename := strings.TrimSpace(req.Filename)
	if filename == "" {
		filename = "untitled.txt"
	}

	text := models.Text{
		Filename: filename,
		Content:  content,
		OwnerID:  &ownerID,
	}

	analysis, err := s.gateway.AnalyzeText(ctx, content)
	if err != nil {
		s.logger.Warn().Err(err).Uint("owner_id", ownerID).Msg("text analysis failed, storing without analysis")
	} else {
		s.applyAnalysis(&text, analysis)
	}

	if err := s.texts.Create(ctx, &text); err != nil {
		return dto.TextResponse{}, fmt.Errorf("create text: %w", err)
	}

	s.logger.Info().Uint("text_id", text.ID).Uint("owner_id", ownerID).Bool("analyzed", text.HasAnalysis()).Msg("text stored")

	return dto.NewTextResponse(text), nil
}

// CreateFromUpload sniffs the uploaded bytes and stores them as a text when
// they are plain text within the size limit.
func (s *TextService) CreateFromUpload(ctx context.Context, ownerID uint, filename string, data []byte) (dto.TextResponse, error) {
	if int64(len(data)) > s.maxUploadBytes {
		return dto.TextResponse{}, ErrFileTooLarge
	}

	kind := mimetype.Detect(data)
	if !kind.Is("text/plain") {
		return dto.TextResponse{}, fmt.Errorf("%w: got %s", ErrUnsupportedFile, kind.String())
	}

	return s.Create(ctx, ownerID, dto.TextCreateRequest{
		Filename: filename,
		Content:  string(data),
	})
}

// GetForOwner returns a text only when the caller owns it.
func (s *TextService) GetForOwner(ctx context.Context, textID, ownerID uint) (dto.TextResponse, error) {
	text, err := s.texts.GetByIDAndOwner(ctx, textID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TextResponse{}, ErrTextNotFound
		}
		return dto.TextResponse{}, fmt.Errorf("get text: %w", err)
	}

	return dto.NewTextResponse(text), nil
}

// ListForOwner returns the caller's texts, newest first.
func (s *TextService) ListForOwner(ctx context.Context, ownerID uint) ([]dto.TextListItem, error) {
	texts, err := s.texts.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list texts: %w", err)
	}

	return dto.NewTextListItemSlice(texts), nil
}

// ListForTeacher returns a student's texts to an enrolled teacher.
func (s *TextService) ListForTeacher(ctx context.Context, teacherID, studentID uint) ([]dto.TextListItem, error) {
	if _, err := s.enrollments.GetActiveByPair(ctx, teacherID, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, fmt.Errorf("check enrollment: %w", err)
	}

	texts, err := s.texts.ListByOwner(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list texts: %w", err)
	}

	return dto.NewTextListItemSlice(texts), nil
}

// GetForDownload returns the raw content of a text to a teacher enrolled
// with the text's owner.
func (s *TextService) GetForDownload(ctx context.Context, teacherID, textID uint) (dto.TextDownloadResponse, error) {
	text, err := s.texts.GetByID(ctx, textID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TextDownloadResponse{}, ErrTextNotFound
		}
		return dto.TextDownloadResponse{}, fmt.Errorf("get text: %w", err)
	}
	if text.OwnerID == nil {
		return dto.TextDownloadResponse{}, ErrTextNotFound
	}

	if _, err := s.enrollments.GetActiveByPair(ctx, teacherID, *text.OwnerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TextDownloadResponse{}, ErrNotEnrolled
		}
		return dto.TextDownloadResponse{}, fmt.Errorf("check enrollment: %w", err)
	}

	return dto.TextDownloadResponse{Filename: text.Filename, Content: text.Content}, nil
}

func (s *TextService) applyAnalysis(text *models.Text, analysis ai.TextAnalysis) {
	raw, err := json.Marshal(analysis)
	if err != nil {
		s.logger.Warn().Err(err).Msg("analysis could not be serialized")
		return
	}

	text.Summary = analysis.Summary
	text.AnalysisRaw = datatypes.JSON(raw)
	for _, finding := range analysis.Fallacies {
		text.Fallacies = append(text.Fallacies, models.Fallacy{
			Type:        finding.Type,
			Description: finding.Description,
		})
	}
	for _, question := range analysis.Questions {
		text.Questions = append(text.Questions, models.Question{
			Level:    question.Level,
			Question: question.Question,
		})
	}
}
