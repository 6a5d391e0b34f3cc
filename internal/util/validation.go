package util

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^(\w+)(\.|_)?(\w*)@(\w+)(\.(\w+))+$`)
	// 接受 123-456-7890、(123) 456-7890、123.456.7890 等格式
	phonePattern = regexp.MustCompile(`^\(?\d{3}\)?[-. ]?\d{3}[-. ]?\d{4}$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern  = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// IsValidDate 校验 YYYY-MM-DD，含闰年
func IsValidDate(date string) bool {
	if !datePattern.MatchString(date) {
		return false
	}

	year := atoi(date[0:4])
	month := atoi(date[5:7])
	day := atoi(date[8:10])

	if month < 1 || month > 12 {
		return false
	}

	daysInMonth := [...]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
		daysInMonth[2] = 29
	}

	return day >= 1 && day <= daysInMonth[month]
}

// IsValidTime 校验 HH:MM（24小时制）
func IsValidTime(t string) bool {
	return timePattern.MatchString(t)
}

func IsNonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
