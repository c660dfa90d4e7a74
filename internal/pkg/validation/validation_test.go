package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/apperr"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"a@x.com", true},
		{"first.last+tag@sub.example.org", true},
		{"", false},
		{"no-at-sign.com", false},
		{"a@b", false},
		{"a b@x.com", false},
		{"a@@x.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		wantMessage string
	}{
		{"strong", "Abc12345!", ""},
		{"too short", "Ab1!", "Password must be at least 8 characters long"},
		{"no lowercase", "ABC12345!", "Password must contain at least one lowercase letter"},
		{"no uppercase", "password1", "Password must contain at least one uppercase letter"},
		{"no number", "Abcdefgh!", "Password must contain at least one number"},
		{"no special", "Abc123456", "Password must contain at least one special character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantMessage == "" {
				assert.NoError(t, err)
				return
			}
			e, ok := apperr.As(err)
			require.True(t, ok)
			assert.Equal(t, "password", e.Field)
			assert.Equal(t, tt.wantMessage, e.Message)
		})
	}
}

func TestPasswordProblems_ListsEveryMissingClass(t *testing.T) {
	problems := PasswordProblems("password1")

	assert.Equal(t, []string{
		"Password must contain at least one uppercase letter",
		"Password must contain at least one special character",
	}, problems)
}

func TestValidateOTPCode(t *testing.T) {
	assert.NoError(t, ValidateOTPCode("123456"))
	assert.Error(t, ValidateOTPCode("12345"))
	assert.Error(t, ValidateOTPCode("12345a"))
	assert.Error(t, ValidateOTPCode(""))
}

func TestSanitizeText(t *testing.T) {
	t.Run("strips tags and trims", func(t *testing.T) {
		got := SanitizeText("  <p>Senior <b>Go</b> engineer</p>\n", MaxTextLength)
		assert.Equal(t, "Senior Go engineer", got)
	})

	t.Run("truncates before trimming", func(t *testing.T) {
		got := SanitizeText(strings.Repeat("a", 20), 10)
		assert.Equal(t, strings.Repeat("a", 10), got)
	})

	t.Run("counts runes", func(t *testing.T) {
		got := SanitizeText("日本語テキスト", 3)
		assert.Equal(t, "日本語", got)
	})

	t.Run("zero max keeps everything", func(t *testing.T) {
		got := SanitizeText("abc", 0)
		assert.Equal(t, "abc", got)
	})
}

var allowedTypes = []string{
	"application/pdf",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/msword",
}

func TestDetectFileType(t *testing.T) {
	pdf := []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n%%EOF")

	t.Run("pdf accepted", func(t *testing.T) {
		mime, err := DetectFileType(pdf, allowedTypes, 1024)
		require.NoError(t, err)
		assert.Equal(t, "application/pdf", mime)
	})

	t.Run("plain text rejected", func(t *testing.T) {
		_, err := DetectFileType([]byte("just some text"), allowedTypes, 1024)
		e, ok := apperr.As(err)
		require.True(t, ok)
		assert.Equal(t, "resume_file", e.Field)
		assert.Contains(t, e.Message, "Invalid file type")
	})

	t.Run("too large", func(t *testing.T) {
		_, err := DetectFileType(pdf, allowedTypes, 10)
		e, ok := apperr.As(err)
		require.True(t, ok)
		assert.Contains(t, e.Message, "maximum allowed size")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := DetectFileType(nil, allowedTypes, 1024)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}
