package domain

import "time"

// ShiftInput 是用户提交的原始班次信息，日期格式为 2006-01-02，时间格式为 15:04
type ShiftInput struct {
	WorkDate  string `json:"workDate"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ShiftRecord 在提交时计算一次后就不再修改，字段名需要和前端保持一致
type ShiftRecord struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userID"`
	JobID         *int64    `json:"jobID"` // 工作被删除后为空
	JobType       string    `json:"jobType"`
	BaseRate      float64   `json:"baseRate"`
	WorkDate      string    `json:"workDate"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	StartDecimal  float64   `json:"startDecimal"`
	EndDecimal    float64   `json:"endDecimal"`
	RawDuration   float64   `json:"rawDuration"`
	Breaks        float64   `json:"breaks"` // 分钟
	NetHours      float64   `json:"netHours"`
	WeekendBonus  float64   `json:"weekendBonus"`
	TotalEarnings int64     `json:"totalEarnings"`
	WeekNumber    int       `json:"weekNumber"` // 0 表示未知
	CreatedAt     time.Time `json:"createdAt"`
}
