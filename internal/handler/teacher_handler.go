package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/comprende-ia/comprende-api/internal/dto"
	"github.com/comprende-ia/comprende-api/internal/service"
	"github.com/comprende-ia/comprende-api/internal/utils"
	"github.com/comprende-ia/comprende-api/pkg/export"
)

// TeacherHandler serves the teacher-facing roster, review and export routes.
type TeacherHandler struct {
	enrollments     *service.EnrollmentService
	progress        *service.ProgressService
	recommendations *service.RecommendationService
	attempts        *service.AttemptService
	texts           *service.TextService
	logger          zerolog.Logger
}

// NewTeacherHandler builds a TeacherHandler.
func NewTeacherHandler(enrollments *service.EnrollmentService, progress *service.ProgressService, recommendations *service.RecommendationService, attempts *service.AttemptService, texts *service.TextService, logger zerolog.Logger) *TeacherHandler {
	return &TeacherHandler{
		enrollments:     enrollments,
		progress:        progress,
		recommendations: recommendations,
		attempts:        attempts,
		texts:           texts,
		logger:          logger.With().Str("component", "teacher_handler").Logger(),
	}
}

// Register mounts the teacher routes.
func (h *TeacherHandler) Register(router fiber.Router) {
	group := router.Group("/teacher")
	group.Post("/students/enroll", h.enroll)
	group.Get("/students", h.listStudents)
	group.Delete("/students/:studentId", h.unenroll)
	group.Get("/students/:studentId/progress", h.studentProgress)
	group.Get("/students/:studentId/texts", h.studentTexts)
	group.Post("/students/:studentId/recommend", h.recommend)
	group.Get("/recommendations", h.listRecommendations)
	group.Get("/attempts/:attemptId", h.attemptDetail)
	group.Get("/texts/:textId/download", h.downloadText)
	group.Get("/students/:studentId/export/excel", h.exportExcel)
	group.Get("/students/:studentId/export/csv", h.exportCSV)
}

func (h *TeacherHandler) enroll(c *fiber.Ctx) error {
	teacherID, err := currentUserID(c)
	if err != nil {
		return handleError(c, err)
	}

	var req dto.EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	enrollment, err := h.enrollments.Enroll(c.UserContext(), teacherID, req)
	if err != nil {
		return handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "student enrolled", enrollment)
}

func (h *TeacherHandler) listStudents(c *fiber.Ctx) error {
	teacherID, err := currentUserID(c)
	if err != nil {
		return handleError(c, err)
	}

	students, err := h.enrollments.ListStudents(c.UserContext(), teacherID)
	if err != nil {
		return handleError(c, err)
	}

	return utils.SendSuccess(c, "", students)
}

func (h *TeacherHandler) unenroll(c *fiber.Ctx) error {
	teacherID, err := currentUserID(c)
	if err != nil {
		return handleError(c, err)
	}

	studentID, err := parseIDParam(c, "studentId")
	if err != nil {
		return handleError(c, err)
	}

	if err := h.enrollments.Unenroll(c.UserContext(), teacherID, studentID); err != nil {
		return handleError(c, err)
	}

	return utils.SendSuccess(c, "student unenrolled", nil)
}

func (h *TeacherHandler) studentProgress(c *fiber.Ctx) error {
	teacherID, err := currentUserID(c)
	if err != nil {
		return handleError(c, err)
	}

	studentID, err := parseIDParam(c, "studentId")
	if err != nil {
		return handleError(c, err)
	}

	report, err := h.progress.GetForTeacher(c.UserContext(), teacherID, studentID)
	if err != nil {
		return handleError(c, err)
	}

	return utils.SendSuccess(c, "", report)
}

func (h *TeacherHandler) recommend(c *fiber.Ctx) error {
	teacherID, err := currentUserID(c)
	if err != nil {
		return handleError(c, err)
	}

	studentID, err := parseIDParam(c, "studentId")
	if err != nil {
		return handleError(c, err)
	}

	var req dto.RecommendRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	recommendation, err := h.recommendations.Recommend(c.UserContext(), teacherID, studentID, req)
	if err != nil {
		return handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "text recommended", recommendation)
}

func (h *TeacherHandler) listRecommendations(c *fiber.Ctx) error {
	teacherID, err := currentUserID(c)
	if err != nil {
		return handleError(c, err)
	}

	recommendations, err := h.recommendations.ListForTeacher(c.UserContext(), teacherID)
	if err != nil {
		return handleError(c, err)
	}

	return utils.SendSuccess(c, "", recommendations)
}

func (h *TeacherHandler) attemptDetail(c *fiber.Ctx) error {
	teacherID, err := currentUserID(c)
	if err != nil {
		return handleError(c, err)
	}

	attemptID, err := parseIDParam(c, "attemptId")
	if err != nil {
		return handleError(c, err)
	}

	detail, err := h.attempts.GetDetailForTeacher(c.UserContext(), teacherID, attemptID)
	if err != nil {
		return handleError(c, err)
	}

	return utils.SendSuccess(c, "", detail)
}

func (h *TeacherHandler) studentTexts(c *fiber.Ctx) error {
	teacherID, err := currentUserID(c)
	if err != nil {
		return handleError(c, err)
	}

	studentID, err := parseIDParam(c, "studentId")
	if err != nil {
		return handleError(c, err)
	}

	texts, err := h.texts.ListForTeacher(c.UserContext(), teacherID, studentID)
	if err != nil {
		return handleError(c, err)
	}

	return utils.SendSuccess(c, "", texts)
}

func (h *TeacherHandler) downloadText(c *fiber.Ctx) error {
	teacherID, err := currentUserID(c)
	if err != nil {
		return handleError(c, err)
	}

	textID, err := parseIDParam(c, "textId")
	if err != nil {
		return handleError(c, err)
	}

	download, err := h.texts.GetForDownload(c.UserContext(), teacherID, textID)
	if err != nil {
		return handleError(c, err)
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", download.Filename))
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")

	return c.SendString(download.Content)
}

func (h *TeacherHandler) exportExcel(c *fiber.Ctx) error {
	report, err := h.collectReport(c)
	if err != nil {
		return handleError(c, err)
	}

	workbook, err := export.WriteExcel([]export.StudentReport{report})
	if err != nil {
		h.logger.Error().Err(err).Msg("excel export failed")
		return handleError(c, err)
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="progress.xlsx"`)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	return c.Send(workbook)
}

func (h *TeacherHandler) exportCSV(c *fiber.Ctx) error {
	report, err := h.collectReport(c)
	if err != nil {
		return handleError(c, err)
	}

	sheet, err := export.WriteCSV([]export.StudentReport{report})
	if err != nil {
		h.logger.Error().Err(err).Msg("csv export failed")
		return handleError(c, err)
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="progress.csv"`)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")

	return c.Send(sheet)
}

// collectReport gathers one enrolled student's identity and progress for
// export. The roster lookup doubles as the enrollment check.
func (h *TeacherHandler) collectReport(c *fiber.Ctx) (export.StudentReport, error) {
	teacherID, err := currentUserID(c)
	if err != nil {
		return export.StudentReport{}, err
	}

	studentID, err := parseIDParam(c, "studentId")
	if err != nil {
		return export.StudentReport{}, err
	}

	students, err := h.enrollments.ListStudents(c.UserContext(), teacherID)
	if err != nil {
		return export.StudentReport{}, err
	}

	report := export.StudentReport{}
	found := false
	for _, student := range students {
		if student.StudentID == studentID {
			report.Name = student.Name
			report.Email = student.Email
			found = true
			break
		}
	}
	if !found {
		return export.StudentReport{}, service.ErrNotEnrolled
	}

	progress, err := h.progress.GetForTeacher(c.UserContext(), teacherID, studentID)
	if err != nil {
		return export.StudentReport{}, err
	}
	report.Progress = progress

	return report, nil
}
