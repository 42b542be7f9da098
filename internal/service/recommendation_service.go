package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/comprende-ia/comprende-api/internal/dto"
	"github.com/comprende-ia/comprende-api/internal/models"
	"github.com/comprende-ia/comprende-api/internal/repository"
)

// ErrDueDateRequired is returned when an assignment is created without a due
// date.
var ErrDueDateRequired = errors.New("assignments require a due date")

// RecommendationService lets teachers recommend or assign texts to enrolled
// students.
type RecommendationService struct {
	recommendations repository.RecommendationRepository
	enrollments     repository.EnrollmentRepository
	texts           repository.TextRepository
	validate        *validator.Validate
	sanitizer       *bluemonday.Policy
	logger          zerolog.Logger
}

// NewRecommendationService builds a RecommendationService.
func NewRecommendationService(recommendations repository.RecommendationRepository, enrollments repository.EnrollmentRepository, texts repository.TextRepository, validate *validator.Validate, logger zerolog.Logger) *RecommendationService {
	return &RecommendationService{
		recommendations: recommendations,
		enrollments:     enrollments,
		texts:           texts,
		validate:        validate,
		sanitizer:       bluemonday.StrictPolicy(),
		logger:          logger.With().Str("component", "recommendation_service").Logger(),
	}
}

// Recommend records a recommendation or assignment for an enrolled student.
// Duplicate pending recommendations are allowed, consumers read the latest.
func (s *RecommendationService) Recommend(ctx context.Context, teacherID, studentID uint, req dto.RecommendRequest) (dto.RecommendationResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return dto.RecommendationResponse{}, err
	}

	if _, err := s.enrollments.GetActiveByPair(ctx, teacherID, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RecommendationResponse{}, ErrNotEnrolled
		}
		return dto.RecommendationResponse{}, fmt.Errorf("check enrollment: %w", err)
	}

	if _, err := s.texts.GetByID(ctx, req.TextID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RecommendationResponse{}, ErrTextNotFound
		}
		return dto.RecommendationResponse{}, fmt.Errorf("get text: %w", err)
	}

	kind := req.Type
	if kind == "" {
		kind = models.RecommendationTypeRecommendation
	}
	if kind == models.RecommendationTypeAssignment && req.DueDate == nil {
		return dto.RecommendationResponse{}, ErrDueDateRequired
	}

	recommendation := models.TextRecommendation{
		TeacherID: teacherID,
		StudentID: studentID,
		TextID:    req.TextID,
		Comment:   s.sanitizer.Sanitize(req.Comment),
		Status:    models.RecommendationStatusPending,
		Type:      kind,
		DueDate:   req.DueDate,
	}
	if err := s.recommendations.Create(ctx, &recommendation); err != nil {
		return dto.RecommendationResponse{}, fmt.Errorf("create recommendation: %w", err)
	}

	s.logger.Info().
		Uint("teacher_id", teacherID).
		Uint("student_id", studentID).
		Uint("text_id", req.TextID).
		Str("type", kind).
		Msg("text recommended")

	return dto.NewRecommendationResponse(recommendation), nil
}

// ListPendingForStudent returns the student's open recommendations, newest
// first.
func (s *RecommendationService) ListPendingForStudent(ctx context.Context, studentID uint) ([]dto.RecommendationResponse, error) {
	recommendations, err := s.recommendations.ListPendingByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}

	return dto.NewRecommendationResponseSlice(recommendations), nil
}

// LatestPendingForText returns the student's most recent pending
// recommendation for a text, or nil when there is none. Later
// recommendations for the same text supersede earlier ones.
func (s *RecommendationService) LatestPendingForText(ctx context.Context, studentID, textID uint) (*dto.RecommendationResponse, error) {
	recommendation, err := s.recommendations.GetLatestPendingForText(ctx, studentID, textID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest recommendation: %w", err)
	}

	response := dto.NewRecommendationResponse(recommendation)

	return &response, nil
}

// ListForTeacher returns everything the teacher has recommended.
func (s *RecommendationService) ListForTeacher(ctx context.Context, teacherID uint) ([]dto.RecommendationResponse, error) {
	recommendations, err := s.recommendations.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}

	return dto.NewRecommendationResponseSlice(recommendations), nil
}
