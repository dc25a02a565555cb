package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"zkbugs/internal/pkg/config"
	"zkbugs/pkg/logger"

	"go.uber.org/zap"
)

// Mailer 发送找回密码邮件
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, link string) error
}

// New 根据配置创建 Mailer；未配置 SMTP 主机时只记录日志
func New(cfg config.MailConfig) Mailer {
	if cfg.Host == "" {
		return &logMailer{}
	}
	return &smtpMailer{cfg: cfg, send: smtp.SendMail}
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type smtpMailer struct {
	cfg  config.MailConfig
	send sendFunc
}

func (m *smtpMailer) SendPasswordReset(ctx context.Context, to, link string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := m.send(addr, auth, m.cfg.From, []string{to}, buildResetMessage(m.cfg.From, to, link)); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}

func buildResetMessage(from, to, link string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: Password Reset\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString("You are receiving this because you (or someone else) have requested the reset of the password for your account.\r\n\r\n")
	b.WriteString("Please click on the following link, or paste this into your browser to complete the process:\r\n\r\n")
	b.WriteString(link + "\r\n\r\n")
	b.WriteString("If you did not request this, please ignore this email and your password will remain unchanged.\r\n")
	return []byte(b.String())
}

// logMailer 开发环境使用，不真正发信
type logMailer struct{}

func (m *logMailer) SendPasswordReset(ctx context.Context, to, link string) error {
	logger.Log.Info("password reset mail (smtp disabled)",
		zap.String("to", to),
		zap.String("link", link),
	)
	return nil
}
