package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/comprende-ia/comprende-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Text{},
		&models.Fallacy{},
		&models.Question{},
		&models.Attempt{},
		&models.AttemptAnswer{},
		&models.Enrollment{},
		&models.TextRecommendation{},
	))
	return db
}

func TestEnrollmentRepositoryUniquePair(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEnrollmentRepository(db)
	ctx := context.Background()

	first := models.Enrollment{TeacherID: 1, StudentID: 2, EnrolledAt: time.Now(), IsActive: true}
	require.NoError(t, repo.Create(ctx, &first))

	duplicate := models.Enrollment{TeacherID: 1, StudentID: 2, EnrolledAt: time.Now(), IsActive: true}
	require.Error(t, repo.Create(ctx, &duplicate))
}

func TestEnrollmentRepositoryActiveLookupSkipsInactive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEnrollmentRepository(db)
	ctx := context.Background()

	enrollment := models.Enrollment{TeacherID: 1, StudentID: 2, EnrolledAt: time.Now(), IsActive: false}
	require.NoError(t, repo.Create(ctx, &enrollment))

	_, err := repo.GetActiveByPair(ctx, 1, 2)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	found, err := repo.GetByPair(ctx, 1, 2)
	require.NoError(t, err)
	require.False(t, found.IsActive)

	found.IsActive = true
	require.NoError(t, repo.Update(ctx, &found))

	active, err := repo.GetActiveByPair(ctx, 1, 2)
	require.NoError(t, err)
	require.Equal(t, enrollment.ID, active.ID)
}

func TestEnrollmentRepositoryListActiveByTeacher(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEnrollmentRepository(db)
	ctx := context.Background()

	student := models.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&student).Error)

	active := models.Enrollment{TeacherID: 1, StudentID: student.ID, EnrolledAt: time.Now(), IsActive: true}
	inactive := models.Enrollment{TeacherID: 1, StudentID: student.ID + 100, EnrolledAt: time.Now(), IsActive: false}
	require.NoError(t, repo.Create(ctx, &active))
	require.NoError(t, repo.Create(ctx, &inactive))

	enrollments, err := repo.ListActiveByTeacher(ctx, 1)
	require.NoError(t, err)
	require.Len(t, enrollments, 1)
	require.NotNil(t, enrollments[0].Student)
	require.Equal(t, "Ana", enrollments[0].Student.Name)
}
