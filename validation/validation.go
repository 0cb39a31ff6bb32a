package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Policy รวมเส้นตาย/ช่วงอายุที่ใช้ตรวจวันที่ แทนการฝังตัวเลขกระจายตาม handler
type Policy struct {
	EnrollmentFloor time.Time // วันลงทะเบียนเรียนต้องไม่เก่ากว่านี้
	HireFloor       time.Time // วันเริ่มงานครูต้องไม่เก่ากว่านี้
	MinAge          int
	MaxAge          int
}

var DefaultPolicy = Policy{
	EnrollmentFloor: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	HireFloor:       time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
	MinAge:          17,
	MaxAge:          25,
}

var ErrInvalidStatus = errors.New("status must be one of present, absent, excused, late")

// NoFuture ตรวจว่า d ไม่เลยวันนี้
func NoFuture(d time.Time, field string) error {
	if d.After(today()) {
		return fmt.Errorf("the %s should not be in the future", field)
	}
	return nil
}

// NotBefore ตรวจว่า d ไม่เก่ากว่า floor
func NotBefore(d, floor time.Time, field string) error {
	if d.Before(floor) {
		return fmt.Errorf("the %s cannot be before %s", field, floor.Format("2006-01-02"))
	}
	return nil
}

// Ordered: วันลงทะเบียนต้องไม่มาก่อนวันเกิด
func Ordered(enrollment, birth time.Time) error {
	if enrollment.Before(birth) {
		return errors.New("the date of birth should not be greater than enrollment")
	}
	return nil
}

// AgeInRange คิดอายุ ณ วันนี้ (ลบ 1 ถ้าปีนี้ยังไม่ถึงวันเกิด) แล้วเทียบช่วงใน Policy
func (p Policy) AgeInRange(birth time.Time) error {
	now := today()
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	if age < p.MinAge {
		return errors.New("the student is too young for this grade level")
	}
	if age > p.MaxAge {
		return fmt.Errorf("the student age should not be greater than %d", p.MaxAge)
	}
	return nil
}

// NormalizeStatus ปรับสถานะเป็นตัวพิมพ์เล็กและบังคับให้อยู่ในชุดที่รู้จัก
func NormalizeStatus(s string) (string, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "present", "absent", "excused", "late":
		return v, nil
	default:
		return "", ErrInvalidStatus
	}
}

// ValidDepartment กันชื่อแผนกที่เป็นตัวเลขล้วน
func ValidDepartment(dep string) error {
	if dep == "" {
		return errors.New("the department cannot be empty")
	}
	for _, r := range dep {
		if r < '0' || r > '9' {
			return nil
		}
	}
	return errors.New("the department cannot accept integers")
}

// Now คือ clock ของแพ็กเกจ — เทสต์ fix ค่าได้
var Now = time.Now

func today() time.Time {
	y, m, d := Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
