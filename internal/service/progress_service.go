package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/comprende-ia/comprende-api/internal/dto"
	"github.com/comprende-ia/comprende-api/internal/repository"
)

// ProgressService aggregates attempt history into progress reports. Reports
// are cached in redis and invalidated whenever the student submits a new
// attempt.
type ProgressService struct {
	attempts    repository.AttemptRepository
	enrollments repository.EnrollmentRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

// NewProgressService builds a ProgressService. The cache client may be nil,
// in which case every report is computed from the database.
func NewProgressService(attempts repository.AttemptRepository, enrollments repository.EnrollmentRepository, cache *redis.Client, cacheTTL time.Duration, logger zerolog.Logger) *ProgressService {
	return &ProgressService{
		attempts:    attempts,
		enrollments: enrollments,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger.With().Str("component", "progress_service").Logger(),
	}
}

// GetOwn returns the calling student's progress report.
func (s *ProgressService) GetOwn(ctx context.Context, studentID uint) (dto.ProgressReport, error) {
	return s.report(ctx, studentID)
}

// GetForTeacher returns a student's progress report to an enrolled teacher.
func (s *ProgressService) GetForTeacher(ctx context.Context, teacherID, studentID uint) (dto.ProgressReport, error) {
	if _, err := s.enrollments.GetActiveByPair(ctx, teacherID, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProgressReport{}, ErrNotEnrolled
		}
		return dto.ProgressReport{}, fmt.Errorf("check enrollment: %w", err)
	}

	return s.report(ctx, studentID)
}

// InvalidateProgress drops the cached report for a student.
func (s *ProgressService) InvalidateProgress(ctx context.Context, studentID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, progressCacheKey(studentID)).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("student_id", studentID).Msg("progress cache invalidation failed")
	}
}

func (s *ProgressService) report(ctx context.Context, studentID uint) (dto.ProgressReport, error) {
	if cached, ok := s.fromCache(ctx, studentID); ok {
		return cached, nil
	}

	attempts, err := s.attempts.ListByUser(ctx, studentID)
	if err != nil {
		return dto.ProgressReport{}, fmt.Errorf("list attempts: %w", err)
	}

	report := dto.ProgressReport{
		StudentID:     studentID,
		TotalAttempts: len(attempts),
		Attempts:      make([]dto.AttemptSummary, 0, len(attempts)),
	}

	var sum int
	seenTexts := make(map[uint]struct{})
	for _, attempt := range attempts {
		sum += attempt.TotalScore
		seenTexts[attempt.TextID] = struct{}{}

		summary := dto.AttemptSummary{
			AttemptID:    attempt.ID,
			TextID:       attempt.TextID,
			TextFilename: dto.DeletedTextPlaceholder,
			Score:        attempt.TotalScore,
			AnswersCount: len(attempt.Answers),
			CompletedAt:  attempt.CreatedAt,
		}
		if attempt.Text != nil {
			summary.TextFilename = attempt.Text.Filename
		}
		report.Attempts = append(report.Attempts, summary)
	}

	report.TextsCompleted = len(seenTexts)
	if len(attempts) > 0 {
		report.AverageScore = math.Round(float64(sum)/float64(len(attempts))*10) / 10
	}

	s.toCache(ctx, studentID, report)

	return report, nil
}

func (s *ProgressService) fromCache(ctx context.Context, studentID uint) (dto.ProgressReport, bool) {
	if s.cache == nil {
		return dto.ProgressReport{}, false
	}

	raw, err := s.cache.Get(ctx, progressCacheKey(studentID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Uint("student_id", studentID).Msg("progress cache read failed")
		}
		return dto.ProgressReport{}, false
	}

	var report dto.ProgressReport
	if err := json.Unmarshal(raw, &report); err != nil {
		s.logger.Warn().Err(err).Uint("student_id", studentID).Msg("progress cache entry corrupt")
		return dto.ProgressReport{}, false
	}

	return report, true
}

func (s *ProgressService) toCache(ctx context.Context, studentID uint, report dto.ProgressReport) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, progressCacheKey(studentID), raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("student_id", studentID).Msg("progress cache write failed")
	}
}

func progressCacheKey(studentID uint) string {
	return fmt.Sprintf("progress:%d", studentID)
}
