package domain

// WeeklySummary 每次读取时根据 ShiftRecord 重新计算，不做持久化
type WeeklySummary struct {
	WeekNumber     int            `json:"weekNumber"` // 0 表示 "Unknown" 分组
	TotalHours     float64        `json:"totalHours"`
	WeeklyCapHours float64        `json:"weeklyCapHours"`
	RemainingHours float64        `json:"remainingHours"`
	OverLimit      bool           `json:"overLimit"`
	Submissions    []*ShiftRecord `json:"submissions"`
}

type WeeklyTotal struct {
	WeekNumber int   `json:"weekNumber"`
	Total      int64 `json:"total"`
}

type MonthlyTotal struct {
	Month int   `json:"month"` // 1-12
	Total int64 `json:"total"`
}

type ReportFilter struct {
	JobType string `json:"jobType"` // 为空表示不过滤
}

type ReportPeriod struct {
	Year  int `json:"year"`
	Month int `json:"month"` // 1-12
}

type DashboardReport struct {
	Period          ReportPeriod     `json:"period"`
	Filter          ReportFilter     `json:"filter"`
	WeeklyForMonth  []WeeklyTotal    `json:"weeklyForMonth"`
	MonthlyForYear  []MonthlyTotal   `json:"monthlyForYear"`
	WeeklySummaries []*WeeklySummary `json:"weeklySummaries"`
}
