package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/patiponrmutl/SISBackend/database"
	"github.com/patiponrmutl/SISBackend/models"
)

type CourseHandler struct{}

func NewCourseHandler() *CourseHandler { return &CourseHandler{} }

type courseCreatePayload struct {
	CourseName  string  `json:"course_name"`
	CourseCode  int     `json:"course_code"`
	Description *string `json:"description"`
	TeacherID   uint    `json:"teacher_id"`
}

type courseUpdatePayload struct {
	CourseName  *string `json:"course_name"`
	CourseCode  *int    `json:"course_code"`
	Description *string `json:"description"`
	TeacherID   *uint   `json:"teacher_id"`
}

type courseResponse struct {
	ID          uint         `json:"id"`
	CourseName  string       `json:"course_name"`
	CourseCode  int          `json:"course_code"`
	Description *string      `json:"description,omitempty"`
	Teacher     personalInfo `json:"teacher"`
}

// ประกอบ response พร้อมข้อมูลครูผู้สอน (ดึงจาก user ของครู)
func courseWithTeacher(db *gorm.DB, course *models.Course) (*courseResponse, error) {
	var u models.User
	err := db.Joins("JOIN teachers ON teachers.user_id = users.id").
		Where("teachers.id = ?", course.TeacherID).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &courseResponse{
		ID:          course.ID,
		CourseName:  course.CourseName,
		CourseCode:  course.CourseCode,
		Description: course.Description,
		Teacher: personalInfo{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
		},
	}, nil
}

// POST /admin/courses
func (h *CourseHandler) Create(c echo.Context) error {
	var p courseCreatePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if p.CourseName == "" || p.CourseCode == 0 || p.TeacherID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var teacher models.Teacher
	if err := database.DB.First(&teacher, "id = ?", p.TeacherID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "TEACHER_NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	course := models.Course{
		CourseName:  p.CourseName,
		CourseCode:  p.CourseCode,
		Description: p.Description,
		TeacherID:   p.TeacherID,
	}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var dup models.Course
		if err := tx.Where("course_code = ?", course.CourseCode).First(&dup).Error; err == nil {
			return gorm.ErrDuplicatedKey
		}
		return tx.Create(&course).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(http.StatusConflict, map[string]any{"error": "COURSE_CODE_EXISTS"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_INSERT_FAILED"})
	}

	out, err := courseWithTeacher(database.DB, &course)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusCreated, out)
}

// GET /admin/courses/:id
func (h *CourseHandler) Get(c echo.Context) error {
	var course models.Course
	if err := database.DB.First(&course, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	out, err := courseWithTeacher(database.DB, &course)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "COURSE_TEACHER_NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, out)
}

// GET /admin/courses
func (h *CourseHandler) List(c echo.Context) error {
	var courses []models.Course
	if err := database.DB.Order("id ASC").Find(&courses).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	out := make([]courseResponse, 0, len(courses))
	for i := range courses {
		r, err := courseWithTeacher(database.DB, &courses[i])
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
		}
		out = append(out, *r)
	}
	return c.JSON(http.StatusOK, map[string]any{"total": len(out), "courses": out})
}

// PUT /admin/courses/:id
func (h *CourseHandler) Update(c echo.Context) error {
	var course models.Course
	if err := database.DB.First(&course, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	var p courseUpdatePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	if p.TeacherID != nil {
		var teacher models.Teacher
		if err := database.DB.First(&teacher, "id = ?", *p.TeacherID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusNotFound, map[string]any{"error": "TEACHER_NOT_FOUND"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
		}
		course.TeacherID = *p.TeacherID
	}
	if p.CourseCode != nil {
		var dup models.Course
		if err := database.DB.Where("course_code = ? AND id <> ?", *p.CourseCode, course.ID).First(&dup).Error; err == nil {
			return c.JSON(http.StatusConflict, map[string]any{"error": "COURSE_CODE_EXISTS"})
		}
		course.CourseCode = *p.CourseCode
	}
	if p.CourseName != nil {
		course.CourseName = *p.CourseName
	}
	if p.Description != nil {
		course.Description = p.Description
	}

	if err := database.DB.Save(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(http.StatusConflict, map[string]any{"error": "COURSE_CODE_EXISTS"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_UPDATE_FAILED"})
	}
	if err := database.DB.First(&course, "id = ?", course.ID).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	out, err := courseWithTeacher(database.DB, &course)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, out)
}

// DELETE /admin/courses/:id
func (h *CourseHandler) Delete(c echo.Context) error {
	var course models.Course
	if err := database.DB.First(&course, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if err := database.DB.Delete(&course).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_DELETE_FAILED"})
	}
	return c.NoContent(http.StatusNoContent)
}
