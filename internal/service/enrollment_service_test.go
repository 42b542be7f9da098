package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/comprende-ia/comprende-api/internal/dto"
	"github.com/comprende-ia/comprende-api/internal/models"
)

type stubUserRepo struct {
	byEmail     models.User
	byEmailErr  error
	byID        models.User
	byIDErr     error
	created     *models.User
	createErr   error
	emailLookup string
}

func (s *stubUserRepo) Create(_ context.Context, user *models.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	user.ID = 1
	s.created = user
	return nil
}

func (s *stubUserRepo) GetByID(_ context.Context, _ uint) (models.User, error) {
	return s.byID, s.byIDErr
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (models.User, error) {
	s.emailLookup = email
	return s.byEmail, s.byEmailErr
}

func (s *stubUserRepo) GetByEmailAndRole(_ context.Context, email, _ string) (models.User, error) {
	s.emailLookup = email
	return s.byEmail, s.byEmailErr
}

func newEnrollmentService(enrollments *stubEnrollmentRepo, users *stubUserRepo) *EnrollmentService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewEnrollmentService(enrollments, users, validate, zerolog.Nop())
}

func TestEnrollmentServiceEnrollCreates(t *testing.T) {
	enrollments := &stubEnrollmentRepo{byPairErr: gorm.ErrRecordNotFound}
	users := &stubUserRepo{byEmail: models.User{ID: 5, Role: models.RoleStudent}}
	svc := newEnrollmentService(enrollments, users)

	result, err := svc.Enroll(context.Background(), 2, dto.EnrollRequest{StudentEmail: "ana@example.com"})
	require.NoError(t, err)

	require.NotNil(t, enrollments.created)
	require.Equal(t, uint(2), enrollments.created.TeacherID)
	require.Equal(t, uint(5), enrollments.created.StudentID)
	require.True(t, result.IsActive)
}

func TestEnrollmentServiceEnrollConflictsWhenActive(t *testing.T) {
	enrollments := &stubEnrollmentRepo{byPair: models.Enrollment{ID: 3, IsActive: true}}
	users := &stubUserRepo{byEmail: models.User{ID: 5, Role: models.RoleStudent}}
	svc := newEnrollmentService(enrollments, users)

	_, err := svc.Enroll(context.Background(), 2, dto.EnrollRequest{StudentEmail: "ana@example.com"})
	require.ErrorIs(t, err, ErrAlreadyEnrolled)
	require.Nil(t, enrollments.created)
}

func TestEnrollmentServiceEnrollReactivatesInactive(t *testing.T) {
	enrolledAt := time.Now().Add(-48 * time.Hour)
	enrollments := &stubEnrollmentRepo{byPair: models.Enrollment{ID: 3, TeacherID: 2, StudentID: 5, EnrolledAt: enrolledAt, IsActive: false}}
	users := &stubUserRepo{byEmail: models.User{ID: 5, Role: models.RoleStudent}}
	svc := newEnrollmentService(enrollments, users)

	result, err := svc.Enroll(context.Background(), 2, dto.EnrollRequest{StudentEmail: "ana@example.com"})
	require.NoError(t, err)

	require.True(t, enrollments.updateCalled)
	require.Nil(t, enrollments.created)
	require.True(t, result.IsActive)
	require.True(t, result.EnrolledAt.After(enrolledAt))
}

func TestEnrollmentServiceEnrollUnknownStudent(t *testing.T) {
	enrollments := &stubEnrollmentRepo{}
	users := &stubUserRepo{byEmailErr: gorm.ErrRecordNotFound}
	svc := newEnrollmentService(enrollments, users)

	_, err := svc.Enroll(context.Background(), 2, dto.EnrollRequest{StudentEmail: "ghost@example.com"})
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestEnrollmentServiceUnenrollDeactivates(t *testing.T) {
	enrollments := &stubEnrollmentRepo{activePair: models.Enrollment{ID: 3, TeacherID: 2, StudentID: 5, IsActive: true}}
	svc := newEnrollmentService(enrollments, &stubUserRepo{})

	require.NoError(t, svc.Unenroll(context.Background(), 2, 5))
	require.True(t, enrollments.updateCalled)
	require.False(t, enrollments.updated.IsActive)
}

func TestEnrollmentServiceUnenrollNotEnrolled(t *testing.T) {
	enrollments := &stubEnrollmentRepo{activeErr: gorm.ErrRecordNotFound}
	svc := newEnrollmentService(enrollments, &stubUserRepo{})

	require.ErrorIs(t, svc.Unenroll(context.Background(), 2, 5), ErrNotEnrolled)
}
