package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/patiponrmutl/SISBackend/database"
	"github.com/patiponrmutl/SISBackend/middlewares"
	"github.com/patiponrmutl/SISBackend/models"
)

type AuthHandler struct {
	JWTSecret string
	TokenTTL  time.Duration
}

func NewAuthHandler(secret string, ttl time.Duration) *AuthHandler {
	return &AuthHandler{JWTSecret: secret, TokenTTL: ttl}
}

func (h *AuthHandler) signJWT(userID, roleID uint) (string, error) {
	claims := middlewares.Claims{
		UserID: userID,
		RoleID: roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(h.JWTSecret))
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /login
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var u models.User
	if err := database.DB.Where("email = ?", email).First(&u).Error; err != nil {
		// ไม่บอกว่า email หรือรหัสผิด
		return c.JSON(http.StatusForbidden, map[string]any{"error": "INVALID_CREDENTIALS"})
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "INVALID_CREDENTIALS"})
	}

	token, err := h.signJWT(u.ID, u.RoleID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "TOKEN_GEN_FAILED"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"access_token": token,
		"token_type":   "bearer",
	})
}
