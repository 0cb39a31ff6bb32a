package handlers

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/patiponrmutl/SISBackend/database"
	"github.com/patiponrmutl/SISBackend/models"
)

// sqlite in-memory ต่อเทสต์ (ตั้งชื่อ db ตามชื่อเทสต์กันชนกัน) แล้วสลับ database.DB ชั่วคราว
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	// เปิด foreign_keys ด้วย ไม่งั้น cascade ไม่ทำงานบน sqlite
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Role{}, &models.User{}, &models.Student{}, &models.Teacher{},
		&models.Course{}, &models.StudentCourse{}, &models.Attendance{}, &models.Grade{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.SeedRoles(db)

	old := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = old })
	return db
}

func mkUser(t *testing.T, db *gorm.DB, email string, roleID uint) models.User {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	u := models.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "First",
		LastName:     "Last",
		RoleID:       roleID,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func mkStudent(t *testing.T, db *gorm.DB, u models.User) models.Student {
	t.Helper()
	s := models.Student{
		UserID:            u.ID,
		DateOfBirth:       time.Date(2005, 3, 10, 0, 0, 0, 0, time.UTC),
		EnrollmentDate:    time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC),
		CurrentGradeLevel: 5,
		GuardianEmail:     u.Email,
	}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("create student: %v", err)
	}
	return s
}

func mkTeacher(t *testing.T, db *gorm.DB, u models.User) models.Teacher {
	t.Helper()
	tc := models.Teacher{
		UserID:     u.ID,
		HireDate:   time.Date(2015, 8, 1, 0, 0, 0, 0, time.UTC),
		Department: "Mathematics",
	}
	if err := db.Create(&tc).Error; err != nil {
		t.Fatalf("create teacher: %v", err)
	}
	return tc
}

func mkCourse(t *testing.T, db *gorm.DB, teacher models.Teacher, code int) models.Course {
	t.Helper()
	course := models.Course{CourseName: "Algebra", CourseCode: code, TeacherID: teacher.ID}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("create course: %v", err)
	}
	return course
}

func mkEnrollment(t *testing.T, db *gorm.DB, s models.Student, course models.Course, teacher models.Teacher) models.StudentCourse {
	t.Helper()
	e := models.StudentCourse{
		StudentID:      s.ID,
		CourseID:       course.ID,
		TeacherID:      teacher.ID,
		EnrollmentDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(&e).Error; err != nil {
		t.Fatalf("create enrollment: %v", err)
	}
	return e
}

// สร้าง echo context สำหรับยิง handler ตรง ๆ
func newCtx(t *testing.T, method, path string, body any) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var reader *strings.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = strings.NewReader(string(b))
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	return c, rec
}

// จำลองผล RequireAuth
func asUser(c echo.Context, u models.User) {
	c.Set("user_id", u.ID)
	c.Set("role_id", u.RoleID)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return m
}
