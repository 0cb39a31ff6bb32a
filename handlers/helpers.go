package handlers

import (
	"strconv"
	"time"
)

// แปลง string -> int; ถ้าแปลงไม่ได้ให้คืนค่าเริ่มต้น
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// พาร์สวันที่รูปแบบ YYYY-MM-DD
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// ข้อมูลบุคคลที่แนบไปกับ response ของ course/enrollment/attendance
type personalInfo struct {
	ID        uint   `json:"id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}
