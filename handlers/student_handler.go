package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/patiponrmutl/SISBackend/database"
	"github.com/patiponrmutl/SISBackend/models"
	"github.com/patiponrmutl/SISBackend/validation"
)

type StudentHandler struct {
	Policy validation.Policy
}

func NewStudentHandler() *StudentHandler {
	return &StudentHandler{Policy: validation.DefaultPolicy}
}

type studentCreatePayload struct {
	DateOfBirth       string `json:"date_of_birth"`   // YYYY-MM-DD
	EnrollmentDate    string `json:"enrollment_date"` // YYYY-MM-DD
	CurrentGradeLevel int    `json:"current_grade_level"`
	GuardianEmail     string `json:"guardian_email"`
}

type studentUpdatePayload struct {
	DateOfBirth       *string `json:"date_of_birth"`
	EnrollmentDate    *string `json:"enrollment_date"`
	CurrentGradeLevel *int    `json:"current_grade_level"`
	GuardianEmail     *string `json:"guardian_email"`
}

// POST /admin/students
// หมายเหตุ: ตอนสร้างไม่ตรวจ อายุ/ลำดับวันที่ — ตรวจเฉพาะตอนแก้ไข (พฤติกรรมเดิมของระบบ)
func (h *StudentHandler) Create(c echo.Context) error {
	var p studentCreatePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.GuardianEmail = strings.TrimSpace(strings.ToLower(p.GuardianEmail))
	if p.GuardianEmail == "" || p.DateOfBirth == "" || p.EnrollmentDate == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	dob, err := parseDate(p.DateOfBirth)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "detail": "date_of_birth must be YYYY-MM-DD"})
	}
	enr, err := parseDate(p.EnrollmentDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "detail": "enrollment_date must be YYYY-MM-DD"})
	}
	if p.CurrentGradeLevel < 1 || p.CurrentGradeLevel > 10 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "detail": "current_grade_level must be between 1 and 10"})
	}

	// guardian email ต้องชี้ user ที่มีอยู่จริง
	var guardian models.User
	if err := database.DB.Where("email = ?", p.GuardianEmail).First(&guardian).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "GUARDIAN_USER_NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	s := models.Student{
		UserID:            guardian.ID,
		DateOfBirth:       dob,
		EnrollmentDate:    enr,
		CurrentGradeLevel: p.CurrentGradeLevel,
		GuardianEmail:     p.GuardianEmail,
	}
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var dup models.Student
		if err := tx.Where("guardian_email = ?", s.GuardianEmail).First(&dup).Error; err == nil {
			return gorm.ErrDuplicatedKey
		}
		return tx.Create(&s).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(http.StatusConflict, map[string]any{"error": "GUARDIAN_EMAIL_EXISTS"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_INSERT_FAILED"})
	}
	return c.JSON(http.StatusCreated, s)
}

// GET /admin/students/:id
func (h *StudentHandler) Get(c echo.Context) error {
	var s models.Student
	if err := database.DB.First(&s, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, s)
}

// GET /admin/students
func (h *StudentHandler) List(c echo.Context) error {
	var items []models.Student
	if err := database.DB.Order("id ASC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, items)
}

// PUT /admin/students/:id
func (h *StudentHandler) Update(c echo.Context) error {
	var s models.Student
	if err := database.DB.First(&s, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	var p studentUpdatePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	var dob, enr *time.Time
	if p.DateOfBirth != nil {
		d, err := parseDate(*p.DateOfBirth)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "detail": "date_of_birth must be YYYY-MM-DD"})
		}
		dob = &d
	}
	if p.EnrollmentDate != nil {
		d, err := parseDate(*p.EnrollmentDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "detail": "enrollment_date must be YYYY-MM-DD"})
		}
		enr = &d
	}

	// ตรวจวันที่ทีละข้อ — ลำดับ+อายุ ตรวจเฉพาะตอนส่งมาครบทั้งคู่
	if dob != nil {
		if err := validation.NoFuture(*dob, "date of birth"); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "detail": err.Error()})
		}
	}
	if enr != nil {
		if err := validation.NoFuture(*enr, "enrollment date"); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "detail": err.Error()})
		}
	}
	if dob != nil && enr != nil {
		if err := validation.Ordered(*enr, *dob); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "detail": err.Error()})
		}
		if err := h.Policy.AgeInRange(*dob); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "detail": err.Error()})
		}
	}
	if p.CurrentGradeLevel != nil && (*p.CurrentGradeLevel < 1 || *p.CurrentGradeLevel > 10) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "detail": "current_grade_level must be between 1 and 10"})
	}

	// เปลี่ยน guardian email = เปลี่ยน user ที่ผูกด้วย
	if p.GuardianEmail != nil {
		email := strings.TrimSpace(strings.ToLower(*p.GuardianEmail))
		var guardian models.User
		if err := database.DB.Where("email = ?", email).First(&guardian).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusNotFound, map[string]any{"error": "GUARDIAN_USER_NOT_FOUND"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
		}
		s.GuardianEmail = email
		s.UserID = guardian.ID
	}

	if dob != nil {
		s.DateOfBirth = *dob
	}
	if enr != nil {
		s.EnrollmentDate = *enr
	}
	if p.CurrentGradeLevel != nil {
		s.CurrentGradeLevel = *p.CurrentGradeLevel
	}

	if err := database.DB.Save(&s).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_UPDATE_FAILED"})
	}
	if err := database.DB.First(&s, "id = ?", s.ID).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, s)
}

// DELETE /admin/students/:id
func (h *StudentHandler) Delete(c echo.Context) error {
	var s models.Student
	if err := database.DB.First(&s, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if err := database.DB.Delete(&s).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_DELETE_FAILED"})
	}
	return c.NoContent(http.StatusNoContent)
}
