package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/shiftlog-dev/earnings/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTrip 模拟消息经过队列后的形态，Data 会变成 map[string]any
func roundTrip(t *testing.T, msg domain.MailMessage) domain.MailMessage {
	t.Helper()

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	var out domain.MailMessage
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestBuildMessage(t *testing.T) {
	templatesDir = "../../templates"

	tests := []struct {
		name     string
		msg      domain.MailMessage
		contains string
	}{
		{
			name: "welcome",
			msg: domain.MailMessage{
				Type: domain.MailTypeWelcome,
				To:   "a@example.com",
				Data: domain.WelcomeMailData{DisplayName: "A", Email: "a@example.com"},
			},
			contains: "a@example.com",
		},
		{
			name: "reset password",
			msg: domain.MailMessage{
				Type: domain.MailTypeResetPassword,
				To:   "a@example.com",
				Data: domain.ResetPasswordMailData{DisplayName: "A", OTP: "482913", Expiration: 15},
			},
			contains: "482913",
		},
		{
			name: "weekly limit exceeded",
			msg: domain.MailMessage{
				Type: domain.MailTypeWeeklyLimitExceeded,
				To:   "a@example.com",
				Data: domain.WeeklyLimitExceededMailData{DisplayName: "A", WeekNumber: 7, TotalHours: 30.5, WeeklyCapHours: 28, OverHours: 2.5},
			},
			contains: "30.50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := buildMessage("noreply@example.com", roundTrip(t, tt.msg))
			require.NoError(t, err)

			var buf bytes.Buffer
			_, err = m.WriteTo(&buf)
			require.NoError(t, err)
			assert.Contains(t, buf.String(), tt.contains)
		})
	}
}

func TestBuildMessageRejectsBadMessages(t *testing.T) {
	templatesDir = "../../templates"

	_, err := buildMessage("noreply@example.com", domain.MailMessage{Type: "unknown", To: "a@example.com"})
	assert.Error(t, err)

	_, err = buildMessage("noreply@example.com", domain.MailMessage{Type: domain.MailTypeWelcome, To: "not an address"})
	assert.Error(t, err)
}
