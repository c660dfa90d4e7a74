// Package email 验证码邮件发送。
//
// Mailer 是单次投递的抽象，Resend 与 SMTP 两种实现；RetryingMailer 对暂时性失败
// 做有限次指数退避重试，被标记为 Permanent 的失败立即返回。
package email

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ChaitanyaDhiman/ResumeForge/config"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/logger"
)

type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// PermanentError 不应重试的投递失败（如服务商返回 4xx）
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string {
	return "permanent delivery failure: " + e.Err.Error()
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

func Permanent(err error) error {
	return &PermanentError{Err: err}
}

func IsPermanent(err error) bool {
	var pe *PermanentError
	return errors.As(err, &pe)
}

// NewMailer 按配置选择服务商，并套上重试
func NewMailer(cfg *config.EmailConfig, log *logger.Logger) (Mailer, error) {
	var m Mailer
	switch cfg.Provider {
	case "resend", "":
		m = NewResendMailer(cfg.Resend.BaseURL, cfg.Resend.APIKey, cfg.From)
	case "smtp":
		m = NewSMTPMailer(&cfg.SMTP, cfg.From)
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
	return NewRetryingMailer(m, cfg.Retry.MaxAttempts, cfg.Retry.BaseDelay, log), nil
}

type Service struct {
	mailer Mailer
	ttl    time.Duration
}

// NewService ttl 为验证码有效期，写进邮件正文
func NewService(mailer Mailer, ttl time.Duration) *Service {
	return &Service{mailer: mailer, ttl: ttl}
}

// SendVerificationCode 发送邮箱验证码
func (s *Service) SendVerificationCode(ctx context.Context, to, code string) error {
	subject := "Verify your email - ResumeForge"
	expires := expiryText(s.ttl)
	html := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2563eb;">Verify your email</h2>
        <p>Hi,</p>
        <p>Use the code below to finish setting up your ResumeForge account:</p>
        <div style="background-color: #f3f4f6; padding: 15px; text-align: center; font-size: 24px; font-weight: bold; letter-spacing: 5px; margin: 20px 0;">
            %s
        </div>
        <p>The code expires in %s.</p>
        <p>If you did not request this, you can ignore this email.</p>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">This is an automated message, please do not reply.</p>
    </div>
</body>
</html>
`, code, expires)
	text := fmt.Sprintf("Your ResumeForge verification code is %s. It expires in %s.", code, expires)

	return s.mailer.Send(ctx, Message{
		To:      to,
		Subject: subject,
		HTML:    html,
		Text:    text,
	})
}

func expiryText(ttl time.Duration) string {
	minutes := int(ttl / time.Minute)
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}
