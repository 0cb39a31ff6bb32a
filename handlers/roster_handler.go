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

type RosterHandler struct{}

func NewRosterHandler() *RosterHandler { return &RosterHandler{} }

// GET /teacher/students — รายชื่อนักเรียน (ไม่ซ้ำ) ที่ลงเรียนกับครูคนนี้
func (h *RosterHandler) List(c echo.Context) error {
	var teacher models.Teacher
	if err := database.DB.First(&teacher, "user_id = ?", middlewares.UserID(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "TEACHER_NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	var students []models.Student
	err := database.DB.
		Distinct("students.*").
		Joins("JOIN student_courses sc ON sc.student_id = students.id").
		Where("sc.teacher_id = ?", teacher.ID).
		Order("students.id ASC").
		Find(&students).Error
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"total": len(students), "students": students})
}
