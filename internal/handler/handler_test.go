package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shiftlog-dev/earnings/backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiration = 3600
	cfg.CORS.AllowedOrigins = []string{"http://localhost:5173"}

	h, err := NewHandler(cfg, nil, nil, nil)
	require.NoError(t, err)
	h.RegisterRoutes()

	return h
}

func tokenCookie(t *testing.T, h *Handler, userID int64) *http.Cookie {
	t.Helper()

	rec := httptest.NewRecorder()
	require.NoError(t, h.issueToken(rec, userID))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, TokenCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	return cookies[0]
}

func do(t *testing.T, h *Handler, method, path, body string, cookie *http.Cookie) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())

	return rec, resp
}

const izakaya = `{
	"jobName": "居酒屋",
	"basePay": 1500,
	"breakCriteria": [{"hours": 6, "breakMinutes": 45}],
	"hasWeekendBonus": true,
	"weekendBonusRate": 200
}`

func TestAuthMiddleware(t *testing.T) {
	h := newTestHandler(t)

	_, resp := do(t, h, http.MethodPost, "/shifts/preview", `{}`, nil)
	assert.False(t, resp.Success)
	assert.Equal(t, "用户未登录", resp.Message)

	_, resp = do(t, h, http.MethodPost, "/shifts/preview", `{}`, &http.Cookie{Name: TokenCookieName, Value: "garbage"})
	assert.False(t, resp.Success)
	assert.Equal(t, "无效的令牌", resp.Message)

	other, err := NewHandler(&config.Config{}, nil, nil, nil)
	require.NoError(t, err)
	other.config.JWT.Secret = "another-secret"
	other.config.JWT.Expiration = 3600
	_, resp = do(t, h, http.MethodPost, "/shifts/preview", `{}`, tokenCookie(t, other, 1))
	assert.False(t, resp.Success)
	assert.Equal(t, "无效的令牌", resp.Message)
}

func TestPreviewShift(t *testing.T) {
	h := newTestHandler(t)
	cookie := tokenCookie(t, h, 42)

	tests := []struct {
		name    string
		body    string
		success bool
		message string
	}{
		{
			name:    "saturday with break and bonus",
			body:    `{"job": ` + izakaya + `, "workDate": "2024-01-06", "startTime": "09:00", "endTime": "18:00"}`,
			success: true,
		},
		{
			name:    "missing job",
			body:    `{"workDate": "2024-01-06", "startTime": "09:00", "endTime": "18:00"}`,
			message: "请填写所有字段",
		},
		{
			name:    "missing end time",
			body:    `{"job": ` + izakaya + `, "workDate": "2024-01-06", "startTime": "09:00"}`,
			message: "请填写所有字段",
		},
		{
			name: "malformed time",
			body: `{"job": ` + izakaya + `, "workDate": "2024-01-06", "startTime": "9am", "endTime": "18:00"}`,
		},
		{
			name: "non-positive base pay",
			body: `{"job": {"jobName": "x", "basePay": 0}, "workDate": "2024-01-06", "startTime": "09:00", "endTime": "18:00"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := do(t, h, http.MethodPost, "/shifts/preview", tt.body, cookie)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.success, resp.Success, resp.Message)
			if tt.message != "" {
				assert.Equal(t, tt.message, resp.Message)
			}
		})
	}
}

func TestPreviewShiftResult(t *testing.T) {
	h := newTestHandler(t)

	body := `{"job": ` + izakaya + `, "workDate": "2024-01-06", "startTime": "09:00", "endTime": "18:00"}`
	_, resp := do(t, h, http.MethodPost, "/shifts/preview", body, tokenCookie(t, h, 42))
	require.True(t, resp.Success, resp.Message)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "居酒屋", data["jobType"])
	assert.Equal(t, 9.0, data["rawDuration"])
	assert.Equal(t, 45.0, data["breaks"])
	assert.Equal(t, 8.25, data["netHours"])
	assert.Equal(t, 1650.0, data["weekendBonus"])
	assert.Equal(t, 14025.0, data["totalEarnings"])
	assert.Equal(t, 1.0, data["weekNumber"])
}

func TestCreateJobValidation(t *testing.T) {
	h := newTestHandler(t)
	cookie := tokenCookie(t, h, 42)

	bodies := []string{
		`{"jobName": "", "basePay": 1000}`,
		`{"jobName": "a", "basePay": -1}`,
		`{"jobName": "a", "basePay": 1000, "weekendBonusRate": -5}`,
		`{"jobName": "a", "basePay": 1000, "breakCriteria": [{"hours": 30, "breakMinutes": 10}]}`,
		`not json`,
	}

	for _, body := range bodies {
		_, resp := do(t, h, http.MethodPost, "/jobs", body, cookie)
		assert.False(t, resp.Success, body)
		assert.NotEmpty(t, resp.Message, body)
	}
}

func TestDashboardRejectsInvalidPeriod(t *testing.T) {
	h := newTestHandler(t)
	cookie := tokenCookie(t, h, 42)

	for _, query := range []string{"?month=13", "?year=abc", "?month=0"} {
		_, resp := do(t, h, http.MethodGet, "/dashboard"+query, "", cookie)
		assert.False(t, resp.Success, query)
		assert.Equal(t, "年份或月份不合法", resp.Message)
	}
}

func TestParseReportPeriod(t *testing.T) {
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	period, err := parseReportPeriod(httptest.NewRequest(http.MethodGet, "/dashboard", nil), now)
	require.NoError(t, err)
	assert.Equal(t, 2024, period.Year)
	assert.Equal(t, 3, period.Month)

	period, err = parseReportPeriod(httptest.NewRequest(http.MethodGet, "/dashboard?year=2023&month=12", nil), now)
	require.NoError(t, err)
	assert.Equal(t, 2023, period.Year)
	assert.Equal(t, 12, period.Month)
}

func TestLogout(t *testing.T) {
	h := newTestHandler(t)

	rec, resp := do(t, h, http.MethodPost, "/auth/logout", "", nil)
	assert.True(t, resp.Success)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, TokenCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
}

func TestSignupValidation(t *testing.T) {
	h := newTestHandler(t)

	_, resp := do(t, h, http.MethodPost, "/auth/signup", `{"email": "not-an-email", "displayName": "a", "password": "12345678"}`, nil)
	assert.False(t, resp.Success)

	_, resp = do(t, h, http.MethodPost, "/auth/signup", `{"email": "a@example.com", "displayName": "a", "password": "short"}`, nil)
	assert.False(t, resp.Success)
}
