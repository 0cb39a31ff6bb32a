package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/patiponrmutl/SISBackend/models"
	"github.com/patiponrmutl/SISBackend/validation"
)

// ตรึงเวลาไว้ที่ 2025-06-15 ให้เคสอายุไม่ไหลตามปีจริง
func fixClock(t *testing.T) {
	t.Helper()
	orig := validation.Now
	validation.Now = func() time.Time {
		return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	t.Cleanup(func() { validation.Now = orig })
}

func updateStudent(t *testing.T, h *StudentHandler, id uint, payload map[string]any) (int, map[string]any) {
	t.Helper()
	c, rec := newCtx(t, http.MethodPut, "/admin/students/"+strconv.Itoa(int(id)), payload)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(id)))
	if err := h.Update(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	return rec.Code, decodeBody(t, rec)
}

func TestStudentCreateSkipsAgeCheck(t *testing.T) {
	db := setupDB(t)
	h := NewStudentHandler()

	guardian := mkUser(t, db, "guardian@school.local", models.RoleStudent)

	// ตอนสร้างไม่มีการเช็กอายุ — เด็กเกิด 2015 ก็สร้างผ่าน (พฤติกรรมเดิม)
	c, rec := newCtx(t, http.MethodPost, "/admin/students", map[string]any{
		"date_of_birth":       "2015-01-01",
		"enrollment_date":     "2023-09-01",
		"current_grade_level": 3,
		"guardian_email":      guardian.Email,
	})
	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestStudentCreateGuardianRules(t *testing.T) {
	db := setupDB(t)
	h := NewStudentHandler()

	guardian := mkUser(t, db, "guardian@school.local", models.RoleStudent)
	mkStudent(t, db, guardian)

	// guardian email ที่ไม่มี user → 404
	c, rec := newCtx(t, http.MethodPost, "/admin/students", map[string]any{
		"date_of_birth":       "2006-01-01",
		"enrollment_date":     "2023-09-01",
		"current_grade_level": 3,
		"guardian_email":      "nobody@school.local",
	})
	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	// guardian email ซ้ำกับนักเรียนเดิม → 409
	c, rec = newCtx(t, http.MethodPost, "/admin/students", map[string]any{
		"date_of_birth":       "2006-01-01",
		"enrollment_date":     "2023-09-01",
		"current_grade_level": 3,
		"guardian_email":      guardian.Email,
	})
	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestStudentGuardianEmailUniqueIndex(t *testing.T) {
	db := setupDB(t)

	u := mkUser(t, db, "guardian@school.local", models.RoleStudent)
	mkStudent(t, db, u)

	// insert ตรง ๆ ข้ามชั้น handler — unique index ต้องกันไว้อีกชั้น
	dup := models.Student{
		UserID:            u.ID,
		DateOfBirth:       time.Date(2006, 1, 1, 0, 0, 0, 0, time.UTC),
		EnrollmentDate:    time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC),
		CurrentGradeLevel: 4,
		GuardianEmail:     u.Email,
	}
	if err := db.Create(&dup).Error; !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey, got %v", err)
	}
}

func TestStudentUpdateTemporalChecks(t *testing.T) {
	db := setupDB(t)
	fixClock(t)
	h := NewStudentHandler()

	s := mkStudent(t, db, mkUser(t, db, "g@school.local", models.RoleStudent))

	// เคสเด็กเกินไป: dob 2010 + enrollment 2015 → 400 too young
	code, body := updateStudent(t, h, s.ID, map[string]any{
		"date_of_birth":   "2010-01-01",
		"enrollment_date": "2015-01-01",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %v", code, body)
	}

	// วันเกิดอนาคต → 400
	code, _ = updateStudent(t, h, s.ID, map[string]any{"date_of_birth": "2999-01-01"})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for future dob, got %d", code)
	}

	// enrollment ก่อนวันเกิด → 400
	code, _ = updateStudent(t, h, s.ID, map[string]any{
		"date_of_birth":   "2005-06-01",
		"enrollment_date": "2004-01-01",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for enrollment before birth, got %d", code)
	}

	// ส่งมาแค่ dob ฝั่งเดียว → ข้ามเช็กอายุ/ลำดับ (ตั้งใจให้ asymmetric)
	code, _ = updateStudent(t, h, s.ID, map[string]any{"date_of_birth": "2012-01-01"})
	if code != http.StatusOK {
		t.Fatalf("expected 200 for single-field update, got %d", code)
	}

	// grade level นอกช่วง 1-10 → 400
	code, _ = updateStudent(t, h, s.ID, map[string]any{"current_grade_level": 11})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for grade level 11, got %d", code)
	}
}

func TestStudentUpdatePartialMerge(t *testing.T) {
	db := setupDB(t)
	h := NewStudentHandler()

	s := mkStudent(t, db, mkUser(t, db, "g@school.local", models.RoleStudent))

	code, _ := updateStudent(t, h, s.ID, map[string]any{"current_grade_level": 7})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}

	var got models.Student
	if err := db.First(&got, "id = ?", s.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.CurrentGradeLevel != 7 {
		t.Fatalf("expected grade level 7, got %d", got.CurrentGradeLevel)
	}
	// field ที่ไม่ได้ส่ง ต้องไม่ถูกแตะ
	if !got.DateOfBirth.Equal(s.DateOfBirth) {
		t.Fatalf("date_of_birth changed unexpectedly: %v -> %v", s.DateOfBirth, got.DateOfBirth)
	}
	if got.GuardianEmail != s.GuardianEmail {
		t.Fatalf("guardian_email changed unexpectedly")
	}
}

func TestStudentUpdateNotFound(t *testing.T) {
	setupDB(t)
	h := NewStudentHandler()

	code, body := updateStudent(t, h, 999, map[string]any{"current_grade_level": 5})
	if code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %v", code, body)
	}
}
