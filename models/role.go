package models

// บทบาทตายตัว 3 ค่า — id ถูกอ้างตรง ๆ ทั้งระบบ ห้ามเปลี่ยน
const (
	RoleAdmin   uint = 1
	RoleTeacher uint = 2
	RoleStudent uint = 3
)

type Role struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	RoleName string `json:"role_name" gorm:"size:50;uniqueIndex;not null"`
}
