package earnings

import (
	"math"
	"testing"

	"github.com/shiftlog-dev/earnings/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(jobType, workDate string, week int, netHours float64, total int64) *domain.ShiftRecord {
	return &domain.ShiftRecord{
		JobType:       jobType,
		WorkDate:      workDate,
		WeekNumber:    week,
		NetHours:      netHours,
		TotalEarnings: total,
	}
}

func TestIsBreakPeriod(t *testing.T) {
	tests := []struct {
		date string
		want bool
	}{
		{"2024-01-01", true},
		{"2024-01-05", true},
		{"2024-01-10", true},
		{"2024-01-11", false},
		{"2024-01-31", false},
		{"2024-02-01", true},
		{"2024-03-31", true},
		{"2024-04-01", false},
		{"2024-04-15", false},
		// 区间按日期所在年份计算，年底的日期不在假期内
		{"2024-12-25", false},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBreakPeriod(date(t, tt.date)))
		})
	}
}

func TestWeeklyCap(t *testing.T) {
	assert.Equal(t, 40.0, WeeklyCap(date(t, "2024-01-05")))
	assert.Equal(t, 28.0, WeeklyCap(date(t, "2024-04-15")))
}

func TestISOWeekRange(t *testing.T) {
	for _, d := range []string{"2024-01-01", "2024-01-06", "2024-01-07"} {
		monday, sunday := ISOWeekRange(date(t, d))
		assert.Equal(t, "2024-01-01", monday.Format(DateLayout), d)
		assert.Equal(t, "2024-01-07", sunday.Format(DateLayout), d)
	}
}

func TestGroupByWeek(t *testing.T) {
	records := []*domain.ShiftRecord{
		record("A", "2024-04-15", 16, 20, 20000),
		record("A", "2024-01-08", 2, 30, 30000),
		record("B", "2024-04-16", 16, 10, 10000),
		record("B", "", 0, 5, 5000),
		record("B", "2024-04-17", 16, math.NaN(), 0),
	}

	summaries := GroupByWeek(records)
	require.Len(t, summaries, 3)

	assert.Equal(t, 2, summaries[0].WeekNumber)
	assert.Equal(t, 30.0, summaries[0].TotalHours)
	assert.Equal(t, 40.0, summaries[0].WeeklyCapHours)
	assert.Equal(t, 10.0, summaries[0].RemainingHours)
	assert.False(t, summaries[0].OverLimit)

	assert.Equal(t, 16, summaries[1].WeekNumber)
	assert.Equal(t, 30.0, summaries[1].TotalHours)
	assert.Equal(t, 28.0, summaries[1].WeeklyCapHours)
	assert.Equal(t, -2.0, summaries[1].RemainingHours)
	assert.True(t, summaries[1].OverLimit)
	assert.Len(t, summaries[1].Submissions, 3)

	unknown := summaries[2]
	assert.Equal(t, UnknownWeek, unknown.WeekNumber)
	assert.Equal(t, 5.0, unknown.TotalHours)
	assert.Equal(t, 0.0, unknown.WeeklyCapHours)
	assert.False(t, unknown.OverLimit)
}

func TestGroupByWeekUsesEarliestDateForCap(t *testing.T) {
	// 2024 年第 2 周横跨 1 月 10 日，按该周最早的一天计算上限
	records := []*domain.ShiftRecord{
		record("A", "2024-01-12", 2, 20, 0),
		record("A", "2024-01-09", 2, 12, 0),
	}

	summaries := GroupByWeek(records)
	require.Len(t, summaries, 1)
	assert.Equal(t, 40.0, summaries[0].WeeklyCapHours)
	assert.False(t, summaries[0].OverLimit)

	reversed := GroupByWeek([]*domain.ShiftRecord{records[1], records[0]})
	assert.Equal(t, summaries[0].WeeklyCapHours, reversed[0].WeeklyCapHours)
}

func TestMonthlyTotals(t *testing.T) {
	records := []*domain.ShiftRecord{
		record("A", "2024-01-08", 2, 5, 1000),
		record("A", "2024-01-20", 3, 5, 2000),
		record("A", "2024-03-02", 9, 5, 500),
		record("A", "2023-03-02", 9, 5, 700),
		record("A", "bad-date", 9, 5, 900),
	}

	assert.Equal(t, []domain.MonthlyTotal{{Month: 1, Total: 3000}, {Month: 3, Total: 500}}, MonthlyTotals(records, 2024))
	assert.Equal(t, []domain.MonthlyTotal{{Month: 3, Total: 700}}, MonthlyTotals(records, 2023))
	assert.Empty(t, MonthlyTotals(records, 2022))
}

func TestWeeklyTotalsForMonth(t *testing.T) {
	records := []*domain.ShiftRecord{
		record("A", "2024-01-20", 3, 5, 2000),
		record("A", "2024-01-08", 2, 5, 1000),
		record("A", "2024-01-09", 2, 5, 1500),
		record("A", "2024-01-10", 0, 5, 100),
		record("A", "2024-02-01", 5, 5, 9999),
	}

	got := WeeklyTotalsForMonth(records, 2024, 1)
	assert.Equal(t, []domain.WeeklyTotal{
		{WeekNumber: 2, Total: 2500},
		{WeekNumber: 3, Total: 2000},
		{WeekNumber: UnknownWeek, Total: 100},
	}, got)
}

func TestAggregate(t *testing.T) {
	records := []*domain.ShiftRecord{
		record("A", "2024-01-08", 2, 8, 8000),
		record("B", "2024-01-09", 2, 4, 6000),
		record("A", "2024-02-05", 6, 6, 6000),
	}

	report := Aggregate(records, domain.ReportFilter{JobType: "A"}, domain.ReportPeriod{Year: 2024, Month: 1})
	assert.Equal(t, []domain.WeeklyTotal{{WeekNumber: 2, Total: 8000}}, report.WeeklyForMonth)
	assert.Equal(t, []domain.MonthlyTotal{{Month: 1, Total: 8000}, {Month: 2, Total: 6000}}, report.MonthlyForYear)
	require.Len(t, report.WeeklySummaries, 2)
	assert.Equal(t, 8.0, report.WeeklySummaries[0].TotalHours)

	all := Aggregate(records, domain.ReportFilter{}, domain.ReportPeriod{Year: 2024, Month: 1})
	assert.Equal(t, []domain.WeeklyTotal{{WeekNumber: 2, Total: 14000}}, all.WeeklyForMonth)
	assert.Equal(t, 12.0, all.WeeklySummaries[0].TotalHours)

	again := Aggregate(records, domain.ReportFilter{}, domain.ReportPeriod{Year: 2024, Month: 1})
	assert.Equal(t, all, again)
	assert.Len(t, records, 3)
}

func TestJobTypes(t *testing.T) {
	records := []*domain.ShiftRecord{
		record("B", "2024-01-08", 2, 1, 1),
		record("A", "2024-01-08", 2, 1, 1),
		record("B", "2024-01-08", 2, 1, 1),
		nil,
	}
	assert.Equal(t, []string{"B", "A"}, JobTypes(records))
}
