package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/patiponrmutl/SISBackend/database"
	"github.com/patiponrmutl/SISBackend/middlewares"
	"github.com/patiponrmutl/SISBackend/models"
	"github.com/patiponrmutl/SISBackend/validation"
)

type AttendanceHandler struct{}

func NewAttendanceHandler() *AttendanceHandler { return &AttendanceHandler{} }

type attendancePayload struct {
	StudentID uint   `json:"student_id"`
	CourseID  uint   `json:"course_id"`
	Status    string `json:"status"`
}

type attendanceResponse struct {
	ID             uint   `json:"id"`
	StudentID      uint   `json:"student_id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	CourseID       uint   `json:"course_id"`
	AttendanceDate string `json:"attendance_date"`
	Status         string `json:"status"`
}

func attendanceOut(db *gorm.DB, rec *models.Attendance) (*attendanceResponse, error) {
	var student models.Student
	if err := db.First(&student, "id = ?", rec.StudentID).Error; err != nil {
		return nil, err
	}
	var u models.User
	if err := db.First(&u, "id = ?", student.UserID).Error; err != nil {
		return nil, err
	}
	return &attendanceResponse{
		ID:             rec.ID,
		StudentID:      student.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		CourseID:       rec.CourseID,
		AttendanceDate: rec.AttendanceDate.Format("2006-01-02"),
		Status:         rec.Status,
	}, nil
}

// POST /teacher/attendance — ครูต้องถูก assign กับ (นักเรียน, วิชา) นั้นก่อนเสมอ
func (h *AttendanceHandler) Create(c echo.Context) error {
	var p attendancePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	if _, err := verifyAssignment(database.DB, middlewares.UserID(c), p.StudentID, p.CourseID); err != nil {
		return assignmentError(c, err)
	}

	status, err := validation.NormalizeStatus(p.Status)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_STATUS", "detail": err.Error()})
	}

	rec := models.Attendance{StudentID: p.StudentID, CourseID: p.CourseID, Status: status}
	// หนึ่งแถวต่อ (นักเรียน, วิชา)
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var dup models.Attendance
		if err := tx.Where("student_id = ? AND course_id = ?", rec.StudentID, rec.CourseID).First(&dup).Error; err == nil {
			return gorm.ErrDuplicatedKey
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(http.StatusConflict, map[string]any{"error": "ATTENDANCE_EXISTS"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_INSERT_FAILED"})
	}

	out, err := attendanceOut(database.DB, &rec)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusCreated, out)
}

// GET /teacher/attendance?student_id=&course_id=
func (h *AttendanceHandler) Get(c echo.Context) error {
	studentID := uint(atoiOr(c.QueryParam("student_id"), 0))
	courseID := uint(atoiOr(c.QueryParam("course_id"), 0))

	if _, err := verifyAssignment(database.DB, middlewares.UserID(c), studentID, courseID); err != nil {
		return assignmentError(c, err)
	}

	var rec models.Attendance
	if err := database.DB.First(&rec, "student_id = ? AND course_id = ?", studentID, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "ATTENDANCE_NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	out, err := attendanceOut(database.DB, &rec)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, out)
}

// GET /teacher/attendance/all — ทุกแถวของคู่ที่ครูคนนี้ถูก assign
func (h *AttendanceHandler) List(c echo.Context) error {
	var teacher models.Teacher
	if err := database.DB.First(&teacher, "user_id = ?", middlewares.UserID(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "TEACHER_NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	var rows []models.Attendance
	err := database.DB.
		Joins("JOIN student_courses sc ON sc.student_id = attendance.student_id AND sc.course_id = attendance.course_id").
		Where("sc.teacher_id = ?", teacher.ID).
		Order("attendance.id ASC").
		Find(&rows).Error
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, rows)
}

// PUT /teacher/attendance — เปลี่ยนสถานะของคู่ (นักเรียน, วิชา); สถานะเดิมเป็นอะไรก็แทนได้
func (h *AttendanceHandler) Update(c echo.Context) error {
	var p attendancePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	if _, err := verifyAssignment(database.DB, middlewares.UserID(c), p.StudentID, p.CourseID); err != nil {
		return assignmentError(c, err)
	}

	var rec models.Attendance
	if err := database.DB.First(&rec, "student_id = ? AND course_id = ?", p.StudentID, p.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "ATTENDANCE_NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	status, err := validation.NormalizeStatus(p.Status)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_STATUS", "detail": err.Error()})
	}
	rec.Status = status

	if err := database.DB.Save(&rec).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_UPDATE_FAILED"})
	}
	if err := database.DB.First(&rec, "id = ?", rec.ID).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	out, err := attendanceOut(database.DB, &rec)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, out)
}

// DELETE /teacher/attendance?student_id=&course_id=
func (h *AttendanceHandler) Delete(c echo.Context) error {
	studentID := uint(atoiOr(c.QueryParam("student_id"), 0))
	courseID := uint(atoiOr(c.QueryParam("course_id"), 0))

	if _, err := verifyAssignment(database.DB, middlewares.UserID(c), studentID, courseID); err != nil {
		return assignmentError(c, err)
	}

	var rec models.Attendance
	if err := database.DB.First(&rec, "student_id = ? AND course_id = ?", studentID, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "ATTENDANCE_NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if err := database.DB.Delete(&rec).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_DELETE_FAILED"})
	}
	return c.NoContent(http.StatusNoContent)
}
