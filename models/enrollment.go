package models

import "time"

// StudentCourse คือทะเบียนการลงเรียน และเป็นหลักฐานสิทธิ์ของครูด้วย:
// ครู X แก้ข้อมูลนักเรียน Y ในวิชา Z ได้ ก็ต่อเมื่อมีแถว (X,Y,Z) อยู่จริง
type StudentCourse struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	StudentID      uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_enrollment_triple"`
	CourseID       uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_triple"`
	TeacherID      uint      `json:"teacher_id" gorm:"not null;uniqueIndex:idx_enrollment_triple"`
	EnrollmentDate time.Time `json:"enrollment_date" gorm:"type:date;not null"`

	Student Student `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Course  Course  `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	Teacher Teacher `json:"-" gorm:"foreignKey:TeacherID;constraint:OnDelete:CASCADE"`
}

func (StudentCourse) TableName() string { return "student_courses" }
