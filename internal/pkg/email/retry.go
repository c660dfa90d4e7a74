package email

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/logger"
)

// RetryingMailer 暂时性失败按指数退避重试，总尝试次数为 attempts
type RetryingMailer struct {
	next     Mailer
	attempts int
	base     time.Duration
	log      *logger.Logger
}

func NewRetryingMailer(next Mailer, attempts int, base time.Duration, log *logger.Logger) *RetryingMailer {
	if attempts < 1 {
		attempts = 1
	}
	if base <= 0 {
		base = 2 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RetryingMailer{next: next, attempts: attempts, base: base, log: log}
}

func (m *RetryingMailer) Send(ctx context.Context, msg Message) error {
	backoff := retry.WithMaxRetries(uint64(m.attempts-1), retry.NewExponential(m.base))

	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := m.next.Send(ctx, msg)
		if err == nil {
			return nil
		}
		if IsPermanent(err) {
			m.log.Error().Err(err).Str("to", msg.To).Msg("email rejected, not retrying")
			return err
		}
		m.log.Warn().Err(err).Str("to", msg.To).Int("attempt", attempt).Msg("email delivery failed")
		return retry.RetryableError(err)
	})
}
