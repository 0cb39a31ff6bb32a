package models

import "time"

type Student struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	UserID            uint      `json:"user_id" gorm:"not null"`
	DateOfBirth       time.Time `json:"date_of_birth" gorm:"type:date;not null"`
	EnrollmentDate    time.Time `json:"enrollment_date" gorm:"type:date;not null"`
	CurrentGradeLevel int       `json:"current_grade_level" gorm:"not null"` // 1-10
	GuardianEmail     string    `json:"guardian_email" gorm:"size:255;uniqueIndex;not null"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// ลบ user แล้วโปรไฟล์นักเรียนหายตาม
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
