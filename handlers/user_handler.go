package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/patiponrmutl/SISBackend/database"
	"github.com/patiponrmutl/SISBackend/models"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler { return &UserHandler{} }

type userCreatePayload struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	RoleID    uint   `json:"role_id"`
}

// field เป็น pointer ทั้งหมด — ไม่ส่งมา = ไม่แตะ
type userUpdatePayload struct {
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	RoleID    *uint   `json:"role_id"`
}

func validRole(id uint) bool {
	return id == models.RoleAdmin || id == models.RoleTeacher || id == models.RoleStudent
}

// POST /admin/users
func (h *UserHandler) Create(c echo.Context) error {
	var p userCreatePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.Email = strings.TrimSpace(strings.ToLower(p.Email))
	if p.Email == "" || p.Password == "" || p.FirstName == "" || p.LastName == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	if !validRole(p.RoleID) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ROLE"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "HASH_FAILED"})
	}

	u := models.User{
		Email:        p.Email,
		PasswordHash: string(hash),
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		RoleID:       p.RoleID,
	}
	// เช็กซ้ำ+insert ใน transaction เดียว unique index เป็นด่านสุดท้ายกัน request ชนกัน
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var dup models.User
		if err := tx.Where("email = ?", u.Email).First(&dup).Error; err == nil {
			return gorm.ErrDuplicatedKey
		}
		return tx.Create(&u).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(http.StatusConflict, map[string]any{"error": "EMAIL_EXISTS"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_INSERT_FAILED"})
	}
	return c.JSON(http.StatusCreated, u)
}

// GET /admin/users/:id
func (h *UserHandler) Get(c echo.Context) error {
	var u models.User
	if err := database.DB.First(&u, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, u)
}

// GET /admin/users
func (h *UserHandler) List(c echo.Context) error {
	var users []models.User
	if err := database.DB.Order("id ASC").Find(&users).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, users)
}

// PUT /admin/users/:id
func (h *UserHandler) Update(c echo.Context) error {
	var u models.User
	if err := database.DB.First(&u, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	var p userUpdatePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	if p.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*p.Email))
		var dup models.User
		if err := database.DB.Where("email = ? AND id <> ?", email, u.ID).First(&dup).Error; err == nil {
			return c.JSON(http.StatusConflict, map[string]any{"error": "EMAIL_EXISTS"})
		}
		u.Email = email
	}
	if p.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*p.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]any{"error": "HASH_FAILED"})
		}
		u.PasswordHash = string(hash)
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.RoleID != nil {
		if !validRole(*p.RoleID) {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ROLE"})
		}
		u.RoleID = *p.RoleID
	}

	if err := database.DB.Save(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(http.StatusConflict, map[string]any{"error": "EMAIL_EXISTS"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_UPDATE_FAILED"})
	}
	// อ่านกลับเพื่อให้ updated_at เป็นค่าจริงจากฐาน
	if err := database.DB.First(&u, "id = ?", u.ID).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, u)
}

// DELETE /admin/users/:id — โปรไฟล์นักเรียน/ครูที่ผูกอยู่หายตาม (cascade ที่ชั้นฐานข้อมูล)
func (h *UserHandler) Delete(c echo.Context) error {
	var u models.User
	if err := database.DB.First(&u, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if err := database.DB.Delete(&u).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_DELETE_FAILED"})
	}
	return c.NoContent(http.StatusNoContent)
}
