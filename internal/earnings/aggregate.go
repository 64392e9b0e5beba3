package earnings

import (
	"sort"
	"time"

	"github.com/shiftlog-dev/earnings/backend/internal/domain"
)

const (
	// 寒暑假期间每周上限放宽
	BreakPeriodWeeklyCapHours = 40
	DefaultWeeklyCapHours     = 28

	// UnknownWeek 是缺少周数的记录所在的分组
	UnknownWeek = 0
)

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsBreakPeriod 判断日期是否落在 [上一年 12.20, 今年 1.10] 或 [2.1, 3.31] 内（闭区间）。
// 注意区间以日期所在年份为准，所以今年 12 月 20 日之后的日期不算假期。
func IsBreakPeriod(date time.Time) bool {
	d := civilDate(date)
	year := d.Year()

	winterStart := time.Date(year-1, time.December, 20, 0, 0, 0, 0, time.UTC)
	winterEnd := time.Date(year, time.January, 10, 0, 0, 0, 0, time.UTC)
	springStart := time.Date(year, time.February, 1, 0, 0, 0, 0, time.UTC)
	springEnd := time.Date(year, time.March, 31, 0, 0, 0, 0, time.UTC)

	inWinter := !d.Before(winterStart) && !d.After(winterEnd)
	inSpring := !d.Before(springStart) && !d.After(springEnd)
	return inWinter || inSpring
}

func WeeklyCap(date time.Time) float64 {
	if IsBreakPeriod(date) {
		return BreakPeriodWeeklyCapHours
	}
	return DefaultWeeklyCapHours
}

// ISOWeekRange 返回日期所在 ISO 周的周一和周日
func ISOWeekRange(date time.Time) (time.Time, time.Time) {
	d := civilDate(date)
	offset := (int(d.Weekday()) + 6) % 7 // 周一为 0
	monday := d.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}

func weekKey(record *domain.ShiftRecord) int {
	if record.WeekNumber < 1 || record.WeekNumber > 53 {
		return UnknownWeek
	}
	return record.WeekNumber
}

// FilterRecords 返回新的切片，不修改传入的记录
func FilterRecords(records []*domain.ShiftRecord, filter domain.ReportFilter) []*domain.ShiftRecord {
	filtered := make([]*domain.ShiftRecord, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		if filter.JobType != "" && record.JobType != filter.JobType {
			continue
		}
		filtered = append(filtered, record)
	}
	return filtered
}

// JobTypes 按首次出现的顺序返回不重复的工作名称
func JobTypes(records []*domain.ShiftRecord) []string {
	seen := make(map[string]bool)
	jobTypes := make([]string, 0)
	for _, record := range records {
		if record == nil || seen[record.JobType] {
			continue
		}
		seen[record.JobType] = true
		jobTypes = append(jobTypes, record.JobType)
	}
	return jobTypes
}

// 周数升序，Unknown 放在最后
func lessWeek(a, b int) bool {
	if a == UnknownWeek {
		return false
	}
	if b == UnknownWeek {
		return true
	}
	return a < b
}

// GroupByWeek 按周数分组并计算每周的总时长和上限。
// 每周的上限由该周最早的一条记录的日期决定；Unknown 分组不参与上限检查。
func GroupByWeek(records []*domain.ShiftRecord) []*domain.WeeklySummary {
	summaries := make(map[int]*domain.WeeklySummary)
	representative := make(map[int]time.Time) // week -> 该周最早的日期

	for _, record := range records {
		if record == nil {
			continue
		}
		week := weekKey(record)

		summary, exists := summaries[week]
		if !exists {
			summary = &domain.WeeklySummary{
				WeekNumber:  week,
				Submissions: make([]*domain.ShiftRecord, 0),
			}
			summaries[week] = summary
		}
		summary.Submissions = append(summary.Submissions, record)

		if finite(record.NetHours) {
			summary.TotalHours += record.NetHours
		}

		if date, err := ParseWorkDate(record.WorkDate); err == nil {
			if current, ok := representative[week]; !ok || date.Before(current) {
				representative[week] = date
			}
		}
	}

	result := make([]*domain.WeeklySummary, 0, len(summaries))
	for week, summary := range summaries {
		if week != UnknownWeek {
			summary.WeeklyCapHours = DefaultWeeklyCapHours
			if date, ok := representative[week]; ok {
				summary.WeeklyCapHours = WeeklyCap(date)
			}
			summary.RemainingHours = summary.WeeklyCapHours - summary.TotalHours
			summary.OverLimit = summary.RemainingHours < 0
		}
		result = append(result, summary)
	}

	sort.Slice(result, func(i, j int) bool {
		return lessWeek(result[i].WeekNumber, result[j].WeekNumber)
	})

	return result
}

// MonthlyTotals 统计某一年每个月的总收入，只返回有记录的月份
func MonthlyTotals(records []*domain.ShiftRecord, year int) []domain.MonthlyTotal {
	totals := make(map[int]int64)
	for _, record := range records {
		if record == nil {
			continue
		}
		date, err := ParseWorkDate(record.WorkDate)
		if err != nil || date.Year() != year {
			continue
		}
		totals[int(date.Month())] += record.TotalEarnings
	}

	result := make([]domain.MonthlyTotal, 0, len(totals))
	for month, total := range totals {
		result = append(result, domain.MonthlyTotal{Month: month, Total: total})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Month < result[j].Month
	})
	return result
}

// WeeklyTotalsForMonth 统计某年某月中每周的总收入
func WeeklyTotalsForMonth(records []*domain.ShiftRecord, year int, month int) []domain.WeeklyTotal {
	totals := make(map[int]int64)
	for _, record := range records {
		if record == nil {
			continue
		}
		date, err := ParseWorkDate(record.WorkDate)
		if err != nil || date.Year() != year || int(date.Month()) != month {
			continue
		}
		totals[weekKey(record)] += record.TotalEarnings
	}

	result := make([]domain.WeeklyTotal, 0, len(totals))
	for week, total := range totals {
		result = append(result, domain.WeeklyTotal{WeekNumber: week, Total: total})
	}
	sort.Slice(result, func(i, j int) bool {
		return lessWeek(result[i].WeekNumber, result[j].WeekNumber)
	})
	return result
}

// Aggregate 每次都从头计算，不保留任何状态
func Aggregate(records []*domain.ShiftRecord, filter domain.ReportFilter, period domain.ReportPeriod) *domain.DashboardReport {
	filtered := FilterRecords(records, filter)

	return &domain.DashboardReport{
		Period:          period,
		Filter:          filter,
		WeeklyForMonth:  WeeklyTotalsForMonth(filtered, period.Year, period.Month),
		MonthlyForYear:  MonthlyTotals(filtered, period.Year),
		WeeklySummaries: GroupByWeek(filtered),
	}
}
