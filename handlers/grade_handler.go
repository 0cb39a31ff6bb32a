package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/patiponrmutl/SISBackend/database"
	"github.com/patiponrmutl/SISBackend/middlewares"
	"github.com/patiponrmutl/SISBackend/models"
)

type GradeHandler struct{}

func NewGradeHandler() *GradeHandler { return &GradeHandler{} }

type gradeCreatePayload struct {
	StudentID uint    `json:"student_id"`
	CourseID  uint    `json:"course_id"`
	Grade     *string `json:"grade"`
	Comments  *string `json:"comments"`
}

type gradeUpdatePayload struct {
	Grade    *string `json:"grade"`
	Comments *string `json:"comments"`
}

type gradeResponse struct {
	ID        uint    `json:"id"`
	StudentID uint    `json:"student_id"`
	CourseID  uint    `json:"course_id"`
	Grade     *string `json:"grade,omitempty"`
	Comments  *string `json:"comments,omitempty"`
	GradedAt  string  `json:"graded_at"`
}

func gradeOut(g *models.Grade) gradeResponse {
	return gradeResponse{
		ID:        g.ID,
		StudentID: g.StudentID,
		CourseID:  g.CourseID,
		Grade:     g.Grade,
		Comments:  g.Comments,
		GradedAt:  g.GradedAt.Format("2006-01-02"),
	}
}

// POST /teacher/grades
// ลำดับเช็ก: course มีจริง → student มีจริง → สิทธิ์ครู → เกรดซ้ำ
func (h *GradeHandler) Create(c echo.Context) error {
	var p gradeCreatePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if p.StudentID == 0 || p.CourseID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", p.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "COURSE_NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	var student models.Student
	if err := database.DB.First(&student, "id = ?", p.StudentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "STUDENT_NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	if _, err := verifyAssignment(database.DB, middlewares.UserID(c), p.StudentID, p.CourseID); err != nil {
		return assignmentError(c, err)
	}

	g := models.Grade{StudentID: p.StudentID, CourseID: p.CourseID, Grade: p.Grade, Comments: p.Comments}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var dup models.Grade
		if err := tx.Where("student_id = ? AND course_id = ?", g.StudentID, g.CourseID).First(&dup).Error; err == nil {
			return gorm.ErrDuplicatedKey
		}
		return tx.Create(&g).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(http.StatusConflict, map[string]any{"error": "GRADE_EXISTS"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_INSERT_FAILED"})
	}
	return c.JSON(http.StatusCreated, gradeOut(&g))
}

// GET /teacher/grades/:id
func (h *GradeHandler) Get(c echo.Context) error {
	var g models.Grade
	if err := database.DB.First(&g, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if _, err := verifyAssignment(database.DB, middlewares.UserID(c), g.StudentID, g.CourseID); err != nil {
		return assignmentError(c, err)
	}
	return c.JSON(http.StatusOK, gradeOut(&g))
}

// GET /teacher/grades — เกรดทั้งหมดของคู่ที่ครูคนนี้ถูก assign
func (h *GradeHandler) List(c echo.Context) error {
	var teacher models.Teacher
	if err := database.DB.First(&teacher, "user_id = ?", middlewares.UserID(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "TEACHER_NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	var rows []models.Grade
	err := database.DB.
		Joins("JOIN student_courses sc ON sc.student_id = grades.student_id AND sc.course_id = grades.course_id").
		Where("sc.teacher_id = ?", teacher.ID).
		Order("grades.id ASC").
		Find(&rows).Error
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	out := make([]gradeResponse, 0, len(rows))
	for i := range rows {
		out = append(out, gradeOut(&rows[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// PUT /teacher/grades/:id — ตรวจสิทธิ์กับคู่ (นักเรียน, วิชา) ของแถวเดิม ไม่ใช่จาก payload
func (h *GradeHandler) Update(c echo.Context) error {
	var g models.Grade
	if err := database.DB.First(&g, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	if _, err := verifyAssignment(database.DB, middlewares.UserID(c), g.StudentID, g.CourseID); err != nil {
		return assignmentError(c, err)
	}

	var p gradeUpdatePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if p.Grade != nil {
		g.Grade = p.Grade
	}
	if p.Comments != nil {
		g.Comments = p.Comments
	}

	if err := database.DB.Save(&g).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_UPDATE_FAILED"})
	}
	if err := database.DB.First(&g, "id = ?", g.ID).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, gradeOut(&g))
}

// DELETE /teacher/grades/:id
func (h *GradeHandler) Delete(c echo.Context) error {
	var g models.Grade
	if err := database.DB.First(&g, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if _, err := verifyAssignment(database.DB, middlewares.UserID(c), g.StudentID, g.CourseID); err != nil {
		return assignmentError(c, err)
	}
	if err := database.DB.Delete(&g).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_DELETE_FAILED"})
	}
	return c.NoContent(http.StatusNoContent)
}
