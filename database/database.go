package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/patiponrmutl/SISBackend/config"
	"github.com/patiponrmutl/SISBackend/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	// TranslateError: ให้ unique violation โผล่เป็น gorm.ErrDuplicatedKey ทุก dialect
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	// ----- AutoMigrate โครงสร้างทั้งหมดของเรา -----
	if err := DB.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Student{},
		&models.Teacher{},
		&models.Course{},
		&models.StudentCourse{},
		&models.Attendance{},
		&models.Grade{},
	); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}

	SeedRoles(DB)
}

// SeedRoles ใส่ role ตายตัว 3 แถว (id 1=admin 2=teacher 3=student) ถ้ายังไม่มี
func SeedRoles(db *gorm.DB) {
	roles := []models.Role{
		{ID: models.RoleAdmin, RoleName: "admin"},
		{ID: models.RoleTeacher, RoleName: "teacher"},
		{ID: models.RoleStudent, RoleName: "student"},
	}
	for _, r := range roles {
		var existing models.Role
		if err := db.First(&existing, "id = ?", r.ID).Error; err == gorm.ErrRecordNotFound {
			if err := db.Create(&r).Error; err != nil {
				log.Printf("[seed] warn: insert role %q failed: %v", r.RoleName, err)
			}
		}
	}
}
