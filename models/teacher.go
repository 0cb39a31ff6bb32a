package models

import "time"

type Teacher struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"uniqueIndex;not null"` // 1 user = 1 โปรไฟล์ครู
	HireDate   time.Time `json:"hire_date" gorm:"type:date;not null"`
	Department string    `json:"department" gorm:"size:100;not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
