package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"zkbugs/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutHostLogsOnly(t *testing.T) {
	m := New(config.MailConfig{})
	_, ok := m.(*logMailer)
	assert.True(t, ok)
	assert.NoError(t, m.SendPasswordReset(context.Background(), "a@b.c", "http://x/reset-password/t"))
}

func TestSMTPMailer(t *testing.T) {
	cfg := config.MailConfig{Host: "smtp.example.com", Port: 587, Username: "u", Password: "p", From: "no-reply@zkbugs.io"}

	t.Run("sends message with link", func(t *testing.T) {
		var gotAddr, gotFrom string
		var gotTo []string
		var gotMsg []byte
		m := &smtpMailer{cfg: cfg, send: func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
			return nil
		}}

		require.NoError(t, m.SendPasswordReset(context.Background(), "alice@example.com", "http://app/reset-password/abc"))
		assert.Equal(t, "smtp.example.com:587", gotAddr)
		assert.Equal(t, "no-reply@zkbugs.io", gotFrom)
		assert.Equal(t, []string{"alice@example.com"}, gotTo)
		assert.Contains(t, string(gotMsg), "Subject: Password Reset")
		assert.Contains(t, string(gotMsg), "http://app/reset-password/abc")
	})

	t.Run("wraps transport error", func(t *testing.T) {
		m := &smtpMailer{cfg: cfg, send: func(string, smtp.Auth, string, []string, []byte) error {
			return errors.New("connection refused")
		}}
		err := m.SendPasswordReset(context.Background(), "alice@example.com", "link")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		m := &smtpMailer{cfg: cfg, send: func(string, smtp.Auth, string, []string, []byte) error {
			t.Fatal("should not send")
			return nil
		}}
		assert.ErrorIs(t, m.SendPasswordReset(ctx, "alice@example.com", "link"), context.Canceled)
	})
}
