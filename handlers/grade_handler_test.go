package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/patiponrmutl/SISBackend/models"
)

func TestGradeCreateAndDuplicate(t *testing.T) {
	f := setupAttendance(t)
	h := NewGradeHandler()

	c, rec := newCtx(t, http.MethodPost, "/teacher/grades", map[string]any{
		"student_id": f.student.ID,
		"course_id":  f.course.ID,
		"grade":      "A",
		"comments":   "ทำได้ดี",
	})
	asUser(c, f.teacherUser)
	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["grade"] != "A" {
		t.Fatalf("expected grade A, got %v", body["grade"])
	}
	if body["graded_at"] == "" {
		t.Fatalf("graded_at missing")
	}

	// เกรดซ้ำในคู่เดิม → 409
	c, rec = newCtx(t, http.MethodPost, "/teacher/grades", map[string]any{
		"student_id": f.student.ID,
		"course_id":  f.course.ID,
		"grade":      "B",
	})
	asUser(c, f.teacherUser)
	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "GRADE_EXISTS" {
		t.Fatalf("expected GRADE_EXISTS, got %v", body["error"])
	}

	var n int64
	f.db.Model(&models.Grade{}).Count(&n)
	if n != 1 {
		t.Fatalf("expected 1 row, got %d", n)
	}
}

func TestGradeCreateCheckOrdering(t *testing.T) {
	f := setupAttendance(t)
	h := NewGradeHandler()

	// course หาย → COURSE_NOT_FOUND ก่อนเช็กอื่นทั้งหมด
	c, rec := newCtx(t, http.MethodPost, "/teacher/grades", map[string]any{
		"student_id": f.student.ID,
		"course_id":  999,
		"grade":      "A",
	})
	asUser(c, f.teacherUser)
	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "COURSE_NOT_FOUND" {
		t.Fatalf("expected COURSE_NOT_FOUND, got %v", body["error"])
	}

	// student หาย → STUDENT_NOT_FOUND
	c, rec = newCtx(t, http.MethodPost, "/teacher/grades", map[string]any{
		"student_id": 999,
		"course_id":  f.course.ID,
		"grade":      "A",
	})
	asUser(c, f.teacherUser)
	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if body := decodeBody(t, rec); rec.Code != http.StatusNotFound || body["error"] != "STUDENT_NOT_FOUND" {
		t.Fatalf("expected 404 STUDENT_NOT_FOUND, got %d %v", rec.Code, body["error"])
	}

	// ครูที่ไม่ได้ assign → NOT_ASSIGNED
	other := mkUser(t, f.db, "other@school.local", models.RoleTeacher)
	mkTeacher(t, f.db, other)
	c, rec = newCtx(t, http.MethodPost, "/teacher/grades", map[string]any{
		"student_id": f.student.ID,
		"course_id":  f.course.ID,
		"grade":      "A",
	})
	asUser(c, other)
	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if body := decodeBody(t, rec); rec.Code != http.StatusNotFound || body["error"] != "NOT_ASSIGNED" {
		t.Fatalf("expected 404 NOT_ASSIGNED, got %d %v", rec.Code, body["error"])
	}
}

func TestGradePartialUpdate(t *testing.T) {
	f := setupAttendance(t)
	h := NewGradeHandler()

	grade := "B"
	comments := "พอใช้"
	g := models.Grade{StudentID: f.student.ID, CourseID: f.course.ID, Grade: &grade, Comments: &comments}
	if err := f.db.Create(&g).Error; err != nil {
		t.Fatalf("seed grade: %v", err)
	}

	// ส่งมาแค่ grade — comments ต้องคงเดิม
	c, rec := newCtx(t, http.MethodPut, fmt.Sprintf("/teacher/grades/%d", g.ID), map[string]any{"grade": "A"})
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(g.ID))
	asUser(c, f.teacherUser)
	if err := h.Update(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got models.Grade
	if err := f.db.First(&got, "id = ?", g.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Grade == nil || *got.Grade != "A" {
		t.Fatalf("expected grade A, got %v", got.Grade)
	}
	if got.Comments == nil || *got.Comments != comments {
		t.Fatalf("comments changed unexpectedly: %v", got.Comments)
	}
}

func TestGradeDeleteRequiresAssignment(t *testing.T) {
	f := setupAttendance(t)
	h := NewGradeHandler()

	grade := "C"
	g := models.Grade{StudentID: f.student.ID, CourseID: f.course.ID, Grade: &grade}
	if err := f.db.Create(&g).Error; err != nil {
		t.Fatalf("seed grade: %v", err)
	}

	other := mkUser(t, f.db, "other@school.local", models.RoleTeacher)
	mkTeacher(t, f.db, other)

	c, rec := newCtx(t, http.MethodDelete, fmt.Sprintf("/teacher/grades/%d", g.ID), nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(g.ID))
	asUser(c, other)
	if err := h.Delete(c); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unassigned teacher, got %d", rec.Code)
	}

	c, rec = newCtx(t, http.MethodDelete, fmt.Sprintf("/teacher/grades/%d", g.ID), nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(g.ID))
	asUser(c, f.teacherUser)
	if err := h.Delete(c); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
