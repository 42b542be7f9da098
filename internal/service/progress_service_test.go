package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/comprende-ia/comprende-api/internal/dto"
	"github.com/comprende-ia/comprende-api/internal/models"
)

func TestProgressServiceAggregatesAttempts(t *testing.T) {
	text := &models.Text{ID: 3, Filename: "essay.txt"}
	attempts := &stubAttemptRepo{listed: []models.Attempt{
		{ID: 2, TextID: 3, TotalScore: 80, Text: text, Answers: make([]models.AttemptAnswer, 3)},
		{ID: 1, TextID: 3, TotalScore: 55, Text: text, Answers: make([]models.AttemptAnswer, 3)},
	}}
	svc := NewProgressService(attempts, &stubEnrollmentRepo{}, nil, time.Minute, zerolog.Nop())

	report, err := svc.GetOwn(context.Background(), 7)
	require.NoError(t, err)

	require.Equal(t, 2, report.TotalAttempts)
	require.Equal(t, 67.5, report.AverageScore)
	require.Equal(t, 1, report.TextsCompleted)
	require.Equal(t, "essay.txt", report.Attempts[0].TextFilename)
	require.Equal(t, 3, report.Attempts[0].AnswersCount)
}

func TestProgressServiceEmptyHistory(t *testing.T) {
	svc := NewProgressService(&stubAttemptRepo{}, &stubEnrollmentRepo{}, nil, time.Minute, zerolog.Nop())

	report, err := svc.GetOwn(context.Background(), 7)
	require.NoError(t, err)

	require.Zero(t, report.TotalAttempts)
	require.Zero(t, report.AverageScore)
	require.Empty(t, report.Attempts)
}

func TestProgressServiceMarksDeletedTexts(t *testing.T) {
	attempts := &stubAttemptRepo{listed: []models.Attempt{
		{ID: 1, TextID: 99, TotalScore: 40},
	}}
	svc := NewProgressService(attempts, &stubEnrollmentRepo{}, nil, time.Minute, zerolog.Nop())

	report, err := svc.GetOwn(context.Background(), 7)
	require.NoError(t, err)

	require.Equal(t, dto.DeletedTextPlaceholder, report.Attempts[0].TextFilename)
}

func TestProgressServiceTeacherViewRequiresEnrollment(t *testing.T) {
	enrollments := &stubEnrollmentRepo{activeErr: gorm.ErrRecordNotFound}
	svc := NewProgressService(&stubAttemptRepo{}, enrollments, nil, time.Minute, zerolog.Nop())

	_, err := svc.GetForTeacher(context.Background(), 2, 7)
	require.ErrorIs(t, err, ErrNotEnrolled)
}

func TestProgressServiceCachesAndInvalidates(t *testing.T) {
	server := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { cache.Close() })

	attempts := &stubAttemptRepo{listed: []models.Attempt{
		{ID: 1, TextID: 3, TotalScore: 60},
	}}
	svc := NewProgressService(attempts, &stubEnrollmentRepo{}, cache, time.Minute, zerolog.Nop())

	first, err := svc.GetOwn(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 1, first.TotalAttempts)

	// Second read is served from cache even after the repo changes.
	attempts.listed = append(attempts.listed, models.Attempt{ID: 2, TextID: 3, TotalScore: 80})
	cached, err := svc.GetOwn(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 1, cached.TotalAttempts)

	svc.InvalidateProgress(context.Background(), 7)
	fresh, err := svc.GetOwn(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 2, fresh.TotalAttempts)
}
