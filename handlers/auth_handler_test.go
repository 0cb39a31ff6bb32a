package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/patiponrmutl/SISBackend/middlewares"
	"github.com/patiponrmutl/SISBackend/models"
)

func login(t *testing.T, h *AuthHandler, email, password string) (int, map[string]any) {
	t.Helper()
	c, rec := newCtx(t, http.MethodPost, "/login", map[string]any{
		"email":    email,
		"password": password,
	})
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	return rec.Code, decodeBody(t, rec)
}

func TestLoginIssuesUsableToken(t *testing.T) {
	db := setupDB(t)
	h := NewAuthHandler("test-secret", time.Hour)

	u := mkUser(t, db, "teacher@school.local", models.RoleTeacher)

	code, body := login(t, h, u.Email, "password123")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", code, body)
	}
	if body["token_type"] != "bearer" {
		t.Fatalf("expected bearer, got %v", body["token_type"])
	}

	raw, ok := body["access_token"].(string)
	if !ok || raw == "" {
		t.Fatalf("access_token missing")
	}

	// token ที่ออกมาต้อง parse กลับได้ด้วย secret เดิม และ claims ครบ
	var claims middlewares.Claims
	tk, err := jwt.ParseWithClaims(raw, &claims, func(_ *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !tk.Valid {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != u.ID {
		t.Fatalf("user_id claim %d, want %d", claims.UserID, u.ID)
	}
	if claims.RoleID != models.RoleTeacher {
		t.Fatalf("role_id claim %d, want %d", claims.RoleID, models.RoleTeacher)
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) <= 0 {
		t.Fatalf("expiry missing or already past")
	}
}

func TestLoginRejects(t *testing.T) {
	db := setupDB(t)
	h := NewAuthHandler("test-secret", time.Hour)

	u := mkUser(t, db, "teacher@school.local", models.RoleTeacher)

	// รหัสผิดกับ email ไม่มี ตอบเหมือนกันเป๊ะ
	code, body := login(t, h, u.Email, "wrong-password")
	if code != http.StatusForbidden || body["error"] != "INVALID_CREDENTIALS" {
		t.Fatalf("expected 403 INVALID_CREDENTIALS, got %d %v", code, body["error"])
	}
	code, body = login(t, h, "ghost@school.local", "password123")
	if code != http.StatusForbidden || body["error"] != "INVALID_CREDENTIALS" {
		t.Fatalf("expected 403 INVALID_CREDENTIALS, got %d %v", code, body["error"])
	}

	code, body = login(t, h, "", "")
	if code != http.StatusBadRequest || body["error"] != "MISSING_FIELDS" {
		t.Fatalf("expected 400 MISSING_FIELDS, got %d %v", code, body["error"])
	}
}

func TestLoginEmailCaseInsensitive(t *testing.T) {
	db := setupDB(t)
	h := NewAuthHandler("test-secret", time.Hour)

	mkUser(t, db, "admin@school.local", models.RoleAdmin)

	code, _ := login(t, h, "  Admin@School.Local ", "password123")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
}
