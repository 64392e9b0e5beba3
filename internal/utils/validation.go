package utils

import (
	"fmt"
	"strings"

	"github.com/shiftlog-dev/earnings/backend/internal/domain"
	"github.com/shiftlog-dev/earnings/backend/internal/earnings"
)

const MaxBreakRules = 10

// ValidateJob 在创建或更新工作时调用，规则比计算时的校验更严格
func ValidateJob(job *domain.Job) error {
	job.JobName = strings.TrimSpace(job.JobName)

	if err := earnings.ValidateJob(job); err != nil {
		return err
	}

	if len(job.BreakCriteria) > MaxBreakRules {
		return fmt.Errorf("休息规则不能超过 %d 条", MaxBreakRules)
	}

	for i, rule := range job.BreakCriteria {
		// 原始时长总是小于 24 小时，阈值大于等于 24 的规则永远不会生效
		if rule.Hours >= 24 {
			return fmt.Errorf("第 %d 条休息规则的时长阈值必须小于 24 小时", i+1)
		}
	}

	if !job.HasWeekendBonus {
		job.WeekendBonusRate = 0
	}

	return nil
}

// ValidateReportPeriod 检查仪表盘查询的年份和月份
func ValidateReportPeriod(period domain.ReportPeriod) error {
	if period.Year < 1970 || period.Year > 9999 {
		return fmt.Errorf("年份 %d 不合法", period.Year)
	}
	if period.Month < 1 || period.Month > 12 {
		return fmt.Errorf("月份 %d 不合法", period.Month)
	}
	return nil
}
