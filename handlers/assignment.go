package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/patiponrmutl/SISBackend/models"
)

// ผลตรวจสิทธิ์ครู — handler เอาไป map เป็น HTTP code เอง
var (
	ErrBadAssignmentIDs = errors.New("teacher, student and course ids are required")
	ErrTeacherNotFound  = errors.New("no teacher found for this user")
	ErrNotAssigned      = errors.New("teacher is not assigned to this student for this course")
)

// verifyAssignment คือด่านสิทธิ์เดียวของงานครูทั้งหมด (attendance/grade):
// 1) หา teacher จาก user_id ใน token  2) ต้องมีแถวลงเรียน (teacher, student, course) ตรงเป๊ะ
// ลำดับการเช็กคงที่ — ครูไม่มีตัวตนต้องรายงานก่อนเรื่องไม่ได้รับมอบหมาย
func verifyAssignment(db *gorm.DB, teacherUserID, studentID, courseID uint) (*models.Teacher, error) {
	if teacherUserID == 0 || studentID == 0 || courseID == 0 {
		return nil, ErrBadAssignmentIDs
	}

	var teacher models.Teacher
	if err := db.First(&teacher, "user_id = ?", teacherUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}

	var assignment models.StudentCourse
	err := db.First(&assignment,
		"teacher_id = ? AND student_id = ? AND course_id = ?",
		teacher.ID, studentID, courseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAssigned
		}
		return nil, err
	}
	return &teacher, nil
}

// map ผลจาก verifyAssignment เป็น HTTP response
func assignmentError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ErrBadAssignmentIDs):
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	case errors.Is(err, ErrTeacherNotFound):
		return c.JSON(http.StatusNotFound, map[string]any{"error": "TEACHER_NOT_FOUND"})
	case errors.Is(err, ErrNotAssigned):
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_ASSIGNED"})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
}
