package models

type Course struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	CourseName  string  `json:"course_name" gorm:"size:255;not null"`
	CourseCode  int     `json:"course_code" gorm:"uniqueIndex;not null"`
	Description *string `json:"description,omitempty" gorm:"size:255"`
	TeacherID   uint    `json:"teacher_id" gorm:"not null"`

	Teacher Teacher `json:"-" gorm:"foreignKey:TeacherID"`
}
