// scripts/create_admin.go
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/patiponrmutl/SISBackend/config"
	"github.com/patiponrmutl/SISBackend/database"
	"github.com/patiponrmutl/SISBackend/models"
)

func main() {
	// โหลด config และเชื่อม DB ตามที่ main.go ใช้จริง
	cfg := config.Load()
	database.Connect(cfg)

	email := "admin@school.local"
	password := "1234"

	// แฮชรหัสผ่าน
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	// ตรวจว่ามีผู้ใช้งาน email เดียวกันอยู่หรือไม่
	var existing models.User
	if err := database.DB.Where("email = ?", email).First(&existing).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("failed to query users: %v", err)
		}
	} else {
		fmt.Println("admin user already exists with email:", email)
		os.Exit(0)
	}

	// สร้าง user ใหม่ role_id=1 (admin)
	u := models.User{
		Email:        email,
		PasswordHash: string(hashed),
		FirstName:    "System",
		LastName:     "Admin",
		RoleID:       models.RoleAdmin,
	}
	if err := database.DB.Create(&u).Error; err != nil {
		log.Fatalf("failed to insert admin: %v", err)
	}

	fmt.Println("admin user created successfully!")
	fmt.Println("   Email:", email)
	fmt.Println("   Password:", password, "(plain, remember to change later!)")
}
