package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/patiponrmutl/SISBackend/database"
	"github.com/patiponrmutl/SISBackend/models"
	"github.com/patiponrmutl/SISBackend/validation"
)

type TeacherHandler struct {
	Policy validation.Policy
}

func NewTeacherHandler() *TeacherHandler {
	return &TeacherHandler{Policy: validation.DefaultPolicy}
}

type teacherCreatePayload struct {
	UserID     uint   `json:"user_id"`
	HireDate   string `json:"hire_date"` // YYYY-MM-DD
	Department string `json:"department"`
}

type teacherUpdatePayload struct {
	HireDate   *string `json:"hire_date"`
	Department *string `json:"department"`
}

// POST /admin/teachers
func (h *TeacherHandler) Create(c echo.Context) error {
	var p teacherCreatePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if p.UserID == 0 || p.HireDate == "" || p.Department == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	hire, err := parseDate(p.HireDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "detail": "hire_date must be YYYY-MM-DD"})
	}
	if err := validation.NoFuture(hire, "hire date"); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "detail": err.Error()})
	}
	if err := validation.NotBefore(hire, h.Policy.HireFloor, "hire date"); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "detail": err.Error()})
	}
	if err := validation.ValidDepartment(p.Department); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "detail": err.Error()})
	}

	var u models.User
	if err := database.DB.First(&u, "id = ?", p.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "USER_NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	t := models.Teacher{UserID: p.UserID, HireDate: hire, Department: p.Department}
	// user หนึ่งคนเป็นครูได้โปรไฟล์เดียว
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var dup models.Teacher
		if err := tx.Where("user_id = ?", t.UserID).First(&dup).Error; err == nil {
			return gorm.ErrDuplicatedKey
		}
		return tx.Create(&t).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(http.StatusConflict, map[string]any{"error": "ALREADY_A_TEACHER"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_INSERT_FAILED"})
	}
	return c.JSON(http.StatusCreated, t)
}

// GET /admin/teachers/:id
func (h *TeacherHandler) Get(c echo.Context) error {
	var t models.Teacher
	if err := database.DB.First(&t, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, t)
}

// GET /admin/teachers
func (h *TeacherHandler) List(c echo.Context) error {
	var items []models.Teacher
	if err := database.DB.Order("id ASC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, items)
}

// PUT /admin/teachers/:id
func (h *TeacherHandler) Update(c echo.Context) error {
	var t models.Teacher
	if err := database.DB.First(&t, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	var p teacherUpdatePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	if p.Department != nil {
		if err := validation.ValidDepartment(*p.Department); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "detail": err.Error()})
		}
		t.Department = *p.Department
	}
	if p.HireDate != nil {
		hire, err := parseDate(*p.HireDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "detail": "hire_date must be YYYY-MM-DD"})
		}
		if err := validation.NoFuture(hire, "hire date"); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "detail": err.Error()})
		}
		if err := validation.NotBefore(hire, h.Policy.HireFloor, "hire date"); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "detail": err.Error()})
		}
		t.HireDate = hire
	}

	if err := database.DB.Save(&t).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_UPDATE_FAILED"})
	}
	if err := database.DB.First(&t, "id = ?", t.ID).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, t)
}

// DELETE /admin/teachers/:id
func (h *TeacherHandler) Delete(c echo.Context) error {
	var t models.Teacher
	if err := database.DB.First(&t, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if err := database.DB.Delete(&t).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_DELETE_FAILED"})
	}
	return c.NoContent(http.StatusNoContent)
}
