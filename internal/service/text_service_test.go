package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/comprende-ia/comprende-api/internal/dto"
	"github.com/comprende-ia/comprende-api/internal/models"
	"github.com/comprende-ia/comprende-api/pkg/ai"
)

type stubTextRepo struct {
	created   *models.Text
	byID      models.Text
	byIDErr   error
	byOwner   models.Text
	ownerErr  error
	duplicate bool
	listed    []models.Text
}

func (s *stubTextRepo) Create(_ context.Context, text *models.Text) error {
	text.ID = 1
	s.created = text
	return nil
}

func (s *stubTextRepo) GetByID(_ context.Context, _ uint) (models.Text, error) {
	return s.byID, s.byIDErr
}

func (s *stubTextRepo) GetByIDAndOwner(_ context.Context, _, _ uint) (models.Text, error) {
	return s.byOwner, s.ownerErr
}

func (s *stubTextRepo) ExistsByContentAndOwner(_ context.Context, _ string, _ uint) (bool, error) {
	return s.duplicate, nil
}

func (s *stubTextRepo) ListByOwner(_ context.Context, _ uint) ([]models.Text, error) {
	return s.listed, nil
}

func newTextService(texts *stubTextRepo, gateway ai.Gateway) *TextService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewTextService(texts, &stubEnrollmentRepo{}, gateway, validate, 1<<20, zerolog.Nop())
}

func TestTextServiceCreateAttachesAnalysis(t *testing.T) {
	texts := &stubTextRepo{}
	gateway := &stubGateway{
		analysis: ai.TextAnalysis{
			Summary: "a short summary",
			Fallacies: []ai.FallacyFinding{
				{Type: "ad hominem", Description: "attacks the author"},
			},
			Questions: []ai.GeneratedQuestion{
				{Level: models.QuestionLevelLiteral, Question: "what happened?"},
			},
		},
	}
	svc := newTextService(texts, gateway)

	result, err := svc.Create(context.Background(), 7, dto.TextCreateRequest{Filename: "essay.txt", Content: "some argumentative essay"})
	require.NoError(t, err)

	require.NotNil(t, result.Analysis)
	require.Equal(t, "a short summary", result.Analysis.Summary)
	require.Len(t, result.Analysis.Fallacies, 1)
	require.NotNil(t, texts.created.OwnerID)
	require.Equal(t, uint(7), *texts.created.OwnerID)
}

func TestTextServiceCreateSwallowsAnalysisFailure(t *testing.T) {
	texts := &stubTextRepo{}
	gateway := &stubGateway{analysisErr: errors.New("upstream unavailable")}
	svc := newTextService(texts, gateway)

	result, err := svc.Create(context.Background(), 7, dto.TextCreateRequest{Content: "some essay"})
	require.NoError(t, err)

	require.Nil(t, result.Analysis)
	require.NotNil(t, texts.created)
	require.Empty(t, texts.created.Summary)
}

func TestTextServiceCreateRejectsEmptyContent(t *testing.T) {
	svc := newTextService(&stubTextRepo{}, &stubGateway{})

	_, err := svc.Create(context.Background(), 7, dto.TextCreateRequest{Content: "   \n\t  "})
	require.ErrorIs(t, err, ErrEmptyContent)
}

func TestTextServiceCreateRejectsDuplicate(t *testing.T) {
	svc := newTextService(&stubTextRepo{duplicate: true}, &stubGateway{})

	_, err := svc.Create(context.Background(), 7, dto.TextCreateRequest{Content: "same essay again"})
	require.ErrorIs(t, err, ErrDuplicateText)
}

func TestTextServiceUploadRejectsBinary(t *testing.T) {
	svc := newTextService(&stubTextRepo{}, &stubGateway{})

	// PNG magic bytes
	_, err := svc.CreateFromUpload(context.Background(), 7, "image.png", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A})
	require.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestTextServiceUploadAcceptsPlainText(t *testing.T) {
	texts := &stubTextRepo{}
	svc := newTextService(texts, &stubGateway{analysisErr: errors.New("skip")})

	result, err := svc.CreateFromUpload(context.Background(), 7, "essay.txt", []byte("plain readable prose for the class"))
	require.NoError(t, err)
	require.Equal(t, "essay.txt", result.Filename)
}

func TestTextServiceGetForDownloadRequiresEnrollment(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	owner := uint(7)
	texts := &stubTextRepo{byID: models.Text{ID: 1, Filename: "essay.txt", Content: "content", OwnerID: &owner}}
	enrollments := &stubEnrollmentRepo{activeErr: gorm.ErrRecordNotFound}
	svc := NewTextService(texts, enrollments, &stubGateway{}, validate, 1<<20, zerolog.Nop())

	_, err := svc.GetForDownload(context.Background(), 2, 1)
	require.ErrorIs(t, err, ErrNotEnrolled)
}

func TestTextServiceGetForDownloadEnrolledTeacher(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	owner := uint(7)
	texts := &stubTextRepo{byID: models.Text{ID: 1, Filename: "essay.txt", Content: "content", OwnerID: &owner}}
	enrollments := &stubEnrollmentRepo{activePair: models.Enrollment{ID: 4, TeacherID: 2, StudentID: 7, IsActive: true}}
	svc := NewTextService(texts, enrollments, &stubGateway{}, validate, 1<<20, zerolog.Nop())

	download, err := svc.GetForDownload(context.Background(), 2, 1)
	require.NoError(t, err)
	require.Equal(t, "essay.txt", download.Filename)
	require.Equal(t, "content", download.Content)
}
