// Package validation 请求载荷校验与清洗
package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"

	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/apperr"
)

const (
	MinPasswordLength = 8
	MaxTextLength     = 10000
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
)

// ValidateEmail 校验邮箱格式
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return apperr.Validation("email", "Invalid email format")
	}
	return nil
}

// PasswordProblems 返回密码不满足的全部规则，按长度、小写、大写、数字、特殊字符排列
func PasswordProblems(password string) []string {
	var problems []string
	if utf8.RuneCountInString(password) < MinPasswordLength {
		problems = append(problems, "Password must be at least 8 characters long")
	}

	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	if !lower {
		problems = append(problems, "Password must contain at least one lowercase letter")
	}
	if !upper {
		problems = append(problems, "Password must contain at least one uppercase letter")
	}
	if !digit {
		problems = append(problems, "Password must contain at least one number")
	}
	if !special {
		problems = append(problems, "Password must contain at least one special character")
	}
	return problems
}

// ValidatePassword 以第一条未满足的规则作为错误消息
func ValidatePassword(password string) error {
	problems := PasswordProblems(password)
	if len(problems) == 0 {
		return nil
	}
	return apperr.Validation("password", problems[0])
}

// ValidateOTPCode 6 位数字
func ValidateOTPCode(code string) error {
	if len(code) != 6 {
		return apperr.Validation("code", "Verification code must be 6 digits")
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return apperr.Validation("code", "Verification code must be 6 digits")
		}
	}
	return nil
}

// SanitizeText 去除 HTML 标签，截断到 maxLen 个字符后去除首尾空白
func SanitizeText(s string, maxLen int) string {
	s = tagPattern.ReplaceAllString(s, "")
	if maxLen > 0 && utf8.RuneCountInString(s) > maxLen {
		s = string([]rune(s)[:maxLen])
	}
	return strings.TrimSpace(s)
}

// DetectFileType 通过文件内容嗅探 MIME 类型，校验类型白名单和大小
func DetectFileType(data []byte, allowed []string, maxSize int64) (string, error) {
	if len(data) == 0 {
		return "", apperr.Validation("resume_file", "Resume file is required")
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return "", apperr.Validation("resume_file", "File size exceeds the maximum allowed size")
	}

	mtype := mimetype.Detect(data)
	for _, a := range allowed {
		if mtype.Is(a) {
			return a, nil
		}
	}
	return "", apperr.Validation("resume_file", "Invalid file type. Only PDF, DOC and DOCX files are allowed")
}
