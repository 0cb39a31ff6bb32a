package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/patiponrmutl/SISBackend/database"
	"github.com/patiponrmutl/SISBackend/middlewares"
	"github.com/patiponrmutl/SISBackend/models"
)

type ProfileHandler struct{}

func NewProfileHandler() *ProfileHandler { return &ProfileHandler{} }

type changePasswordReq struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// PUT /profile/password — ใครล็อกอินอยู่ก็เปลี่ยนของตัวเองได้
func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	if len(req.NewPassword) < 8 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "PASSWORD_TOO_SHORT"})
	}

	var u models.User
	if err := database.DB.First(&u, "id = ?", middlewares.UserID(c)).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.OldPassword)) != nil {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "INVALID_CREDENTIALS"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "HASH_FAILED"})
	}
	u.PasswordHash = string(hash)
	if err := database.DB.Save(&u).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_UPDATE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"updated": true})
}
