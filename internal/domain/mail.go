package domain

const (
	MailTypeWelcome             = "welcome"
	MailTypeResetPassword       = "reset_password"
	MailTypeWeeklyLimitExceeded = "weekly_limit_exceeded"
)

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type WelcomeMailData struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

type ResetPasswordMailData struct {
	DisplayName string `json:"displayName"`
	OTP         string `json:"otp"`
	Expiration  int    `json:"expiration"`
}

type WeeklyLimitExceededMailData struct {
	DisplayName    string  `json:"displayName"`
	WeekNumber     int     `json:"weekNumber"`
	TotalHours     float64 `json:"totalHours"`
	WeeklyCapHours float64 `json:"weeklyCapHours"`
	OverHours      float64 `json:"overHours"`
}
