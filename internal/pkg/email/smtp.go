package email

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"net/textproto"
	"strings"

	"github.com/ChaitanyaDhiman/ResumeForge/config"
)

// SMTPMailer 直连 SMTP 服务器，服务器支持时 smtp.SendMail 自动升级 STARTTLS
type SMTPMailer struct {
	cfg  *config.SMTPConfig
	from string
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg *config.SMTPConfig, from string) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, from: from, send: smtp.SendMail}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	err := m.send(addr, auth, m.from, []string{msg.To}, buildMIME(m.from, msg))
	if err == nil {
		return nil
	}

	// 5xx 为永久性拒绝
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) && tpErr.Code >= 500 {
		return Permanent(err)
	}
	return err
}

// buildMIME 组装 HTML 邮件
func buildMIME(from string, msg Message) []byte {
	headers := [][2]string{
		{"From", from},
		{"To", msg.To},
		{"Subject", msg.Subject},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/html; charset=UTF-8"},
	}

	var b strings.Builder
	for _, h := range headers {
		b.WriteString(fmt.Sprintf("%s: %s\r\n", h[0], h[1]))
	}
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)

	return []byte(b.String())
}
