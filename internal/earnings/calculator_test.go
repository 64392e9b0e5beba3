package earnings

import (
	"math"
	"testing"
	"time"

	"github.com/shiftlog-dev/earnings/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseWorkDate(s)
	require.NoError(t, err)
	return d
}

func TestTimeToDecimal(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"09:30", 9.5, false},
		{"00:00", 0, false},
		{"9:15", 9.25, false},
		{"23:59", 23 + 59.0/60, false},
		{"", 0, true},
		{"9", 0, true},
		{"aa:bb", 0, true},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"10:00:00", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := TimeToDecimal(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedTime)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestRawDuration(t *testing.T) {
	assert.Equal(t, 4.0, RawDuration(22, 2))
	assert.Equal(t, 9.0, RawDuration(9, 18))
	assert.Equal(t, 0.0, RawDuration(5, 5))
	assert.Equal(t, 0.5, RawDuration(23.5, 0))

	for start := 0.0; start < 24; start += 0.25 {
		for end := 0.0; end < 24; end += 0.25 {
			got := RawDuration(start, end)
			assert.GreaterOrEqual(t, got, 0.0, "start=%v end=%v", start, end)
			assert.Less(t, got, 24.0, "start=%v end=%v", start, end)
		}
	}
}

func TestBreakMinutes(t *testing.T) {
	longFirst := []domain.BreakRule{{Hours: 6, BreakMinutes: 30}, {Hours: 3, BreakMinutes: 10}}
	shortFirst := []domain.BreakRule{{Hours: 3, BreakMinutes: 10}, {Hours: 6, BreakMinutes: 30}}

	tests := []struct {
		name        string
		rawDuration float64
		rules       []domain.BreakRule
		want        float64
	}{
		{"last matching rule wins even with smaller threshold", 7, longFirst, 10},
		{"sorted rules behave like largest threshold", 7, shortFirst, 30},
		{"only short rule matches", 4, longFirst, 10},
		{"no rule matches", 2, longFirst, 0},
		{"threshold is inclusive", 6, []domain.BreakRule{{Hours: 6, BreakMinutes: 45}}, 45},
		{"empty rules", 10, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BreakMinutes(tt.rawDuration, tt.rules))
		})
	}
}

func TestNetHours(t *testing.T) {
	rules := []domain.BreakRule{{Hours: 6, BreakMinutes: 30}, {Hours: 3, BreakMinutes: 10}}
	assert.InDelta(t, 7-10.0/60, NetHours(7, rules), 1e-12)
	assert.Equal(t, 5.0, NetHours(5, nil))
	// 休息时间大于工作时间时直接返回负数
	assert.Equal(t, -0.5, NetHours(0.5, []domain.BreakRule{{Hours: 0, BreakMinutes: 60}}))
}

func TestWeekendBonusAmount(t *testing.T) {
	friday := date(t, "2024-01-05")
	saturday := date(t, "2024-01-06")
	sunday := date(t, "2024-01-07")

	assert.Equal(t, 0.0, WeekendBonusAmount(friday, 8, true, 200))
	assert.Equal(t, 1600.0, WeekendBonusAmount(saturday, 8, true, 200))
	assert.Equal(t, 1000.0, WeekendBonusAmount(sunday, 5, true, 200))
	assert.Equal(t, 0.0, WeekendBonusAmount(saturday, 8, false, 200))
}

func TestTotalEarnings(t *testing.T) {
	tests := []struct {
		name     string
		netHours float64
		baseRate float64
		bonus    float64
		want     int64
	}{
		{"three decimals", 7.505, 1000, 0, 7505},
		{"half rounds up", 2.5, 1, 0, 3},
		{"negative half rounds towards positive infinity", -2.5, 1, 0, -2},
		{"just below half", 1.4999, 1, 0, 1},
		{"bonus added before rounding", 8.25, 1500, 1650, 14025},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalEarnings(tt.netHours, tt.baseRate, tt.bonus))
		})
	}
}

func TestWeekNumber(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2023-01-01", 52}, // 周日，属于 2022 年
		{"2021-01-04", 1},
		{"2024-12-30", 1}, // 属于 2025 年第 1 周
		{"2020-12-31", 53},
		{"2024-06-15", 24},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekNumber(date(t, tt.date)))
		})
	}
}

func TestComputeShift(t *testing.T) {
	job := &domain.Job{
		JobName:          "便利店",
		BasePay:          1500,
		BreakCriteria:    []domain.BreakRule{{Hours: 6, BreakMinutes: 45}},
		HasWeekendBonus:  true,
		WeekendBonusRate: 200,
	}

	t.Run("saturday shift with break and bonus", func(t *testing.T) {
		record, err := ComputeShift(job, domain.ShiftInput{WorkDate: "2024-01-06", StartTime: "09:00", EndTime: "18:00"})
		require.NoError(t, err)

		assert.Equal(t, "便利店", record.JobType)
		assert.Equal(t, 1500.0, record.BaseRate)
		assert.Equal(t, "2024-01-06", record.WorkDate)
		assert.Equal(t, 9.0, record.StartDecimal)
		assert.Equal(t, 18.0, record.EndDecimal)
		assert.Equal(t, 9.0, record.RawDuration)
		assert.Equal(t, 45.0, record.Breaks)
		assert.Equal(t, 8.25, record.NetHours)
		assert.Equal(t, 1650.0, record.WeekendBonus)
		assert.Equal(t, int64(14025), record.TotalEarnings)
		assert.Equal(t, 1, record.WeekNumber)
		assert.Equal(t, record.RawDuration-record.Breaks/60, record.NetHours)
	})

	t.Run("weekday shift gets no bonus", func(t *testing.T) {
		record, err := ComputeShift(job, domain.ShiftInput{WorkDate: "2024-01-05", StartTime: "09:00", EndTime: "18:00"})
		require.NoError(t, err)
		assert.Equal(t, 0.0, record.WeekendBonus)
		assert.Equal(t, int64(12375), record.TotalEarnings)
	})

	t.Run("overnight duration is rounded to hundredths", func(t *testing.T) {
		record, err := ComputeShift(job, domain.ShiftInput{WorkDate: "2024-01-03", StartTime: "22:10", EndTime: "01:20"})
		require.NoError(t, err)
		assert.Equal(t, 3.17, record.RawDuration)
		assert.Equal(t, 0.0, record.Breaks)
		assert.Equal(t, 3.17, record.NetHours)
		assert.Equal(t, int64(math.Floor(3.17*1500+0.5)), record.TotalEarnings)
	})

	t.Run("later job edits do not change computed record", func(t *testing.T) {
		edited := *job
		edited.BreakCriteria = append([]domain.BreakRule(nil), job.BreakCriteria...)
		record, err := ComputeShift(&edited, domain.ShiftInput{WorkDate: "2024-01-05", StartTime: "09:00", EndTime: "18:00"})
		require.NoError(t, err)

		edited.BasePay = 9999
		edited.BreakCriteria[0].BreakMinutes = 0
		assert.Equal(t, 1500.0, record.BaseRate)
		assert.Equal(t, 45.0, record.Breaks)
	})

	errorCases := []struct {
		name  string
		job   *domain.Job
		input domain.ShiftInput
		want  error
	}{
		{"no job selected", nil, domain.ShiftInput{WorkDate: "2024-01-05", StartTime: "09:00", EndTime: "18:00"}, ErrIncompleteForm},
		{"missing start time", job, domain.ShiftInput{WorkDate: "2024-01-05", EndTime: "18:00"}, ErrIncompleteForm},
		{"missing work date", job, domain.ShiftInput{StartTime: "09:00", EndTime: "18:00"}, ErrIncompleteForm},
		{"zero base pay", &domain.Job{JobName: "x", BasePay: 0}, domain.ShiftInput{WorkDate: "2024-01-05", StartTime: "09:00", EndTime: "18:00"}, ErrInvalidNumeric},
		{"negative weekend bonus", &domain.Job{JobName: "x", BasePay: 10, HasWeekendBonus: true, WeekendBonusRate: -1}, domain.ShiftInput{WorkDate: "2024-01-05", StartTime: "09:00", EndTime: "18:00"}, ErrInvalidNumeric},
		{"negative break rule", &domain.Job{JobName: "x", BasePay: 10, BreakCriteria: []domain.BreakRule{{Hours: -1, BreakMinutes: 10}}}, domain.ShiftInput{WorkDate: "2024-01-05", StartTime: "09:00", EndTime: "18:00"}, ErrInvalidNumeric},
		{"malformed start time", job, domain.ShiftInput{WorkDate: "2024-01-05", StartTime: "9am", EndTime: "18:00"}, ErrMalformedTime},
		{"malformed work date", job, domain.ShiftInput{WorkDate: "05/01/2024", StartTime: "09:00", EndTime: "18:00"}, ErrMalformedDate},
	}

	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			record, err := ComputeShift(tt.job, tt.input)
			assert.Nil(t, record)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
