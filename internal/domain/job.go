package domain

import "time"

// BreakRule: 当班次原始时长达到 Hours 时需要扣除 BreakMinutes 分钟的休息时间
type BreakRule struct {
	Hours        float64 `json:"hours"`
	BreakMinutes float64 `json:"breakMinutes"`
}

type Job struct {
	ID               int64       `json:"id"`
	UserID           int64       `json:"userID"`
	JobName          string      `json:"jobName"`
	BasePay          float64     `json:"basePay"`
	BreakCriteria    []BreakRule `json:"breakCriteria"` // 按录入顺序保存，不要排序
	HasWeekendBonus  bool        `json:"hasWeekendBonus"`
	WeekendBonusRate float64     `json:"weekendBonusRate"`
	CreatedAt        time.Time   `json:"createdAt"`
	Version          int32       `json:"-"`
}
