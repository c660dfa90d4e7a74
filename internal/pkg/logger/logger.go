// Package logger 基于 zerolog 的结构化日志封装。
//
// Logger 内嵌 zerolog.Logger，可直接使用 Info/Warn/Error 等方法；
// 请求级别的 logger 由中间件写入 context，通过 FromContext 取出。
package logger

import (
	"context"
	"io"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Logger struct {
	zerolog.Logger
}

// New 创建输出 JSON 到 stdout 的 logger，role 用于区分 server / cli 等进程
func New(role string, debug bool) *Logger {
	return NewWithWriter(os.Stdout, role, debug)
}

func NewWithWriter(w io.Writer, role string, debug bool) *Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	l := zerolog.New(w).Level(level).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{l}
}

// Nop 丢弃所有输出，测试用
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// With 返回附带额外字段的子 logger
func (l *Logger) With(fields map[string]interface{}) *Logger {
	return &Logger{l.Logger.With().Fields(fields).Logger()}
}

// WithContext 将 logger 写入 context
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.Logger.WithContext(ctx)
}

// FromContext 取出 context 中的 logger；未设置时返回禁用的 logger，不会为 nil
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
