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

// หน้าข้อมูลของนักเรียนเอง — อ่านได้อย่างเดียว และเห็นเฉพาะของตัวเอง
type StudentPortalHandler struct{}

func NewStudentPortalHandler() *StudentPortalHandler { return &StudentPortalHandler{} }

type ownGradeRow struct {
	ID         uint    `json:"id"`
	StudentID  uint    `json:"student_id"`
	CourseID   uint    `json:"course_id"`
	CourseName string  `json:"course_name"`
	Grade      *string `json:"grade,omitempty"`
	Comments   *string `json:"comments,omitempty"`
	GradedAt   string  `json:"graded_at"`
}

type ownAttendanceRow struct {
	ID             uint   `json:"id"`
	CourseName     string `json:"course_name"`
	AttendanceDate string `json:"attendance_date"`
	Status         string `json:"status"`
}

// หาตัวนักเรียนจาก user_id ใน token — id ใน token คือ user ไม่ใช่ student
func (h *StudentPortalHandler) ownStudent(c echo.Context) (*models.Student, error) {
	var s models.Student
	if err := database.DB.First(&s, "user_id = ?", middlewares.UserID(c)).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// GET /student/grades
func (h *StudentPortalHandler) Grades(c echo.Context) error {
	student, err := h.ownStudent(c)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "STUDENT_NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	var grades []models.Grade
	err = database.DB.Where("student_id = ?", student.ID).Order("id ASC").Find(&grades).Error
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if len(grades) == 0 {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NO_GRADES"})
	}

	out := make([]ownGradeRow, 0, len(grades))
	for _, g := range grades {
		var course models.Course
		if err := database.DB.First(&course, "id = ?", g.CourseID).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
		}
		out = append(out, ownGradeRow{
			ID:         g.ID,
			StudentID:  g.StudentID,
			CourseID:   g.CourseID,
			CourseName: course.CourseName,
			Grade:      g.Grade,
			Comments:   g.Comments,
			GradedAt:   g.GradedAt.Format("2006-01-02"),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// GET /student/attendance
func (h *StudentPortalHandler) Attendance(c echo.Context) error {
	student, err := h.ownStudent(c)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "STUDENT_NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	var rows []models.Attendance
	err = database.DB.Where("student_id = ?", student.ID).Order("id ASC").Find(&rows).Error
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if len(rows) == 0 {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NO_ATTENDANCE"})
	}

	out := make([]ownAttendanceRow, 0, len(rows))
	for _, a := range rows {
		var course models.Course
		if err := database.DB.First(&course, "id = ?", a.CourseID).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
		}
		out = append(out, ownAttendanceRow{
			ID:             a.ID,
			CourseName:     course.CourseName,
			AttendanceDate: a.AttendanceDate.Format("2006-01-02"),
			Status:         a.Status,
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"attendance_records": out})
}
