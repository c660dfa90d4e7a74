// Package apperr 定义请求边界上对外暴露的错误类别。
// 下游协作方（存储、文本提取、LLM、邮件）的错误在 service 层被包装为
// *Error，handler 通过 response.FromError 统一翻译为 HTTP 响应。
package apperr

import (
	"errors"
	"time"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindAuthentication
	KindAuthorization
	KindRateLimit
	KindQuotaExceeded
	KindValidation
	KindConflict
	KindUpstream
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindRateLimit:
		return "rate_limit"
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindUpstream:
		return "upstream"
	case KindPersistence:
		return "persistence"
	}
	return "unknown"
}

type Error struct {
	Kind    Kind
	Message string
	// Field 校验失败的字段名，仅 KindValidation 使用
	Field string
	// ResetAt 限流窗口重置时间，仅 KindRateLimit 使用
	ResetAt time.Time
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is 同类别的 *Error 视为相等，便于 errors.Is(err, apperr.ErrQuota) 之类的判断
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

func RateLimited(message string, resetAt time.Time) *Error {
	return &Error{Kind: KindRateLimit, Message: message, ResetAt: resetAt}
}

func Persistence(err error) *Error {
	return &Error{Kind: KindPersistence, Message: "storage unavailable", Err: err}
}

func Upstream(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

// KindOf 返回错误链中第一个 *Error 的类别
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// As 取出错误链中的 *Error
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
