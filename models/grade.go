package models

import "time"

// หนึ่งเกรดต่อ (นักเรียน, วิชา)
type Grade struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StudentID uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_grade_student_course"`
	CourseID  uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_grade_student_course"`
	Grade     *string   `json:"grade,omitempty" gorm:"size:10"`
	Comments  *string   `json:"comments,omitempty" gorm:"size:255"`
	GradedAt  time.Time `json:"graded_at" gorm:"autoCreateTime"`

	Student Student `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Course  Course  `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
