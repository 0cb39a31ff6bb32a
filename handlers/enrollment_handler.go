package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/patiponrmutl/SISBackend/database"
	"github.com/patiponrmutl/SISBackend/models"
	"github.com/patiponrmutl/SISBackend/validation"
)

type EnrollmentHandler struct {
	Policy validation.Policy
}

func NewEnrollmentHandler() *EnrollmentHandler {
	return &EnrollmentHandler{Policy: validation.DefaultPolicy}
}

type enrollmentCreatePayload struct {
	StudentID      uint   `json:"student_id"`
	CourseID       uint   `json:"course_id"`
	TeacherID      uint   `json:"teacher_id"`
	EnrollmentDate string `json:"enrollment_date"` // YYYY-MM-DD
}

type enrollmentUpdatePayload struct {
	EnrollmentDate *string `json:"enrollment_date"`
}

type enrollmentResponse struct {
	ID             uint         `json:"id"`
	StudentID      uint         `json:"student_id"`
	CourseID       uint         `json:"course_id"`
	TeacherID      uint         `json:"teacher_id"`
	EnrollmentDate string       `json:"enrollment_date"`
	StudentInfo    personalInfo `json:"student_info"`
	TeacherInfo    personalInfo `json:"teacher_info"`
}

func (h *EnrollmentHandler) checkDate(d time.Time) error {
	if err := validation.NoFuture(d, "enrollment date"); err != nil {
		return err
	}
	return validation.NotBefore(d, h.Policy.EnrollmentFloor, "enrollment date")
}

func enrollmentOut(db *gorm.DB, e *models.StudentCourse) (*enrollmentResponse, error) {
	var student models.Student
	if err := db.First(&student, "id = ?", e.StudentID).Error; err != nil {
		return nil, err
	}
	var studentUser, teacherUser models.User
	if err := db.First(&studentUser, "id = ?", student.UserID).Error; err != nil {
		return nil, err
	}
	var teacher models.Teacher
	if err := db.First(&teacher, "id = ?", e.TeacherID).Error; err != nil {
		return nil, err
	}
	if err := db.First(&teacherUser, "id = ?", teacher.UserID).Error; err != nil {
		return nil, err
	}
	return &enrollmentResponse{
		ID:             e.ID,
		StudentID:      e.StudentID,
		CourseID:       e.CourseID,
		TeacherID:      e.TeacherID,
		EnrollmentDate: e.EnrollmentDate.Format("2006-01-02"),
		StudentInfo: personalInfo{
			FirstName: studentUser.FirstName,
			LastName:  studentUser.LastName,
			Email:     studentUser.Email,
		},
		TeacherInfo: personalInfo{
			FirstName: teacherUser.FirstName,
			LastName:  teacherUser.LastName,
			Email:     teacherUser.Email,
		},
	}, nil
}

// POST /admin/enrollments
// ลำดับเช็ก: course → teacher → student → ซ้ำสามตัว (ตายตัว อย่าสลับ)
func (h *EnrollmentHandler) Create(c echo.Context) error {
	var p enrollmentCreatePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if p.StudentID == 0 || p.CourseID == 0 || p.TeacherID == 0 || p.EnrollmentDate == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	enr, err := parseDate(p.EnrollmentDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "detail": "enrollment_date must be YYYY-MM-DD"})
	}
	if err := h.checkDate(enr); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "detail": err.Error()})
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", p.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "COURSE_NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	var teacher models.Teacher
	if err := database.DB.First(&teacher, "id = ?", p.TeacherID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "TEACHER_NOT_FOUND"})
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

	e := models.StudentCourse{
		StudentID:      p.StudentID,
		CourseID:       p.CourseID,
		TeacherID:      p.TeacherID,
		EnrollmentDate: enr,
	}
	// กันลงซ้ำสาม (student, course, teacher): เช็ก+insert ใน transaction
	// ถ้ามี request เหมือนกันวิ่งพร้อมกัน unique index ทำให้เหลือสำเร็จแค่รายเดียว
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var dup models.StudentCourse
		if err := tx.Where("student_id = ? AND course_id = ? AND teacher_id = ?",
			e.StudentID, e.CourseID, e.TeacherID).First(&dup).Error; err == nil {
			return gorm.ErrDuplicatedKey
		}
		return tx.Create(&e).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(http.StatusConflict, map[string]any{"error": "ALREADY_ENROLLED"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_INSERT_FAILED"})
	}

	out, err := enrollmentOut(database.DB, &e)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusCreated, out)
}

// GET /admin/enrollments/:id
func (h *EnrollmentHandler) Get(c echo.Context) error {
	var e models.StudentCourse
	if err := database.DB.First(&e, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	out, err := enrollmentOut(database.DB, &e)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, out)
}

// GET /admin/enrollments?course_id=&teacher_id=&student_id=
func (h *EnrollmentHandler) List(c echo.Context) error {
	tx := database.DB.Model(&models.StudentCourse{})
	if v := c.QueryParam("course_id"); v != "" {
		tx = tx.Where("course_id = ?", atoiOr(v, 0))
	}
	if v := c.QueryParam("teacher_id"); v != "" {
		tx = tx.Where("teacher_id = ?", atoiOr(v, 0))
	}
	if v := c.QueryParam("student_id"); v != "" {
		tx = tx.Where("student_id = ?", atoiOr(v, 0))
	}
	var items []models.StudentCourse
	if err := tx.Order("id ASC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, items)
}

// PUT /admin/enrollments/:id — แก้ได้เฉพาะวันที่ลงเรียน
func (h *EnrollmentHandler) Update(c echo.Context) error {
	var e models.StudentCourse
	if err := database.DB.First(&e, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	var p enrollmentUpdatePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if p.EnrollmentDate != nil {
		enr, err := parseDate(*p.EnrollmentDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "detail": "enrollment_date must be YYYY-MM-DD"})
		}
		if err := h.checkDate(enr); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "detail": err.Error()})
		}
		e.EnrollmentDate = enr
	}

	if err := database.DB.Save(&e).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_UPDATE_FAILED"})
	}
	out, err := enrollmentOut(database.DB, &e)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, out)
}

// DELETE /admin/enrollments/:id — ลบแล้วครูก็หมดสิทธิ์กับคู่นักเรียน/วิชานั้นไปด้วย
func (h *EnrollmentHandler) Delete(c echo.Context) error {
	var e models.StudentCourse
	if err := database.DB.First(&e, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if err := database.DB.Delete(&e).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_DELETE_FAILED"})
	}
	return c.NoContent(http.StatusNoContent)
}
