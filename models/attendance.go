package models

import "time"

// หนึ่งแถวต่อ (นักเรียน, วิชา) — สถานะล่าสุดเท่านั้น ไม่เก็บประวัติรายวัน
type Attendance struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	StudentID      uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_attendance_student_course"`
	CourseID       uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_attendance_student_course"`
	AttendanceDate time.Time `json:"attendance_date" gorm:"autoCreateTime"`
	Status         string    `json:"status" gorm:"size:20;not null;default:present"` // present|absent|excused|late

	Student Student `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Course  Course  `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

func (Attendance) TableName() string { return "attendance" }
