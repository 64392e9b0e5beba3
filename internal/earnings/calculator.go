package earnings

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shiftlog-dev/earnings/backend/internal/domain"
)

const DateLayout = "2006-01-02"

// TimeToDecimal 将 HH:mm 转换为小时数，例如 09:30 -> 9.5
func TimeToDecimal(hhmm string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(hhmm), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, hhmm)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, hhmm)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, hhmm)
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q 超出范围", ErrMalformedTime, hhmm)
	}

	return float64(hours) + float64(minutes)/60, nil
}

// RawDuration 计算原始时长，结束时间早于开始时间时视为跨过午夜，结果总是在 [0, 24) 内
func RawDuration(startDecimal, endDecimal float64) float64 {
	if endDecimal < startDecimal {
		return 24 - startDecimal + endDecimal
	}
	return endDecimal - startDecimal
}

// BreakMinutes 按录入顺序遍历休息规则，最后一条满足阈值的规则生效（而不是阈值最大的那条）
func BreakMinutes(rawDuration float64, rules []domain.BreakRule) float64 {
	breakMinutes := 0.0
	for _, rule := range rules {
		if rawDuration >= rule.Hours {
			breakMinutes = rule.BreakMinutes
		}
	}
	return breakMinutes
}

// NetHours 可能为负数（休息时间大于工作时间），这里不做校验
func NetHours(rawDuration float64, rules []domain.BreakRule) float64 {
	return rawDuration - BreakMinutes(rawDuration, rules)/60
}

func IsWeekend(workDate time.Time) bool {
	day := workDate.Weekday()
	return day == time.Saturday || day == time.Sunday
}

func WeekendBonusAmount(workDate time.Time, netHours float64, hasBonus bool, bonusRate float64) float64 {
	if !hasBonus || !IsWeekend(workDate) {
		return 0
	}
	return netHours * bonusRate
}

func TotalEarnings(netHours, baseRate, bonus float64) int64 {
	return int64(RoundHalfUp(netHours*baseRate + bonus))
}

// WeekNumber 返回 ISO-8601 周数，12 月 31 日可能属于下一年的第 1 周
func WeekNumber(date time.Time) int {
	_, week := date.ISOWeek()
	return week
}

// RoundHalfUp 向正无穷方向舍入 .5，和前端 Math.round 的行为保持一致
func RoundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

func roundHundredths(x float64) float64 {
	return RoundHalfUp(x*100) / 100
}

// ParseWorkDate 按日历日期解析，不做任何时区换算
func ParseWorkDate(s string) (time.Time, error) {
	date, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	return date, nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func ValidateJob(job *domain.Job) error {
	if job == nil || strings.TrimSpace(job.JobName) == "" {
		return fmt.Errorf("%w: 未选择工作", ErrIncompleteForm)
	}
	if !finite(job.BasePay) || job.BasePay <= 0 {
		return fmt.Errorf("%w: 时薪必须大于 0", ErrInvalidNumeric)
	}
	if job.HasWeekendBonus && (!finite(job.WeekendBonusRate) || job.WeekendBonusRate < 0) {
		return fmt.Errorf("%w: 周末补贴不能小于 0", ErrInvalidNumeric)
	}
	for i, rule := range job.BreakCriteria {
		if !finite(rule.Hours) || rule.Hours < 0 || !finite(rule.BreakMinutes) || rule.BreakMinutes < 0 {
			return fmt.Errorf("%w: 第 %d 条休息规则", ErrInvalidNumeric, i+1)
		}
	}
	return nil
}

func ValidateShiftInput(input domain.ShiftInput) error {
	if strings.TrimSpace(input.WorkDate) == "" || strings.TrimSpace(input.StartTime) == "" || strings.TrimSpace(input.EndTime) == "" {
		return ErrIncompleteForm
	}
	return nil
}

// ComputeShift 根据工作规则计算一条班次记录。
// 时薪和休息规则在这里按值复制进记录，之后修改工作不会影响已有记录。
func ComputeShift(job *domain.Job, input domain.ShiftInput) (*domain.ShiftRecord, error) {
	if err := ValidateJob(job); err != nil {
		return nil, err
	}
	if err := ValidateShiftInput(input); err != nil {
		return nil, err
	}

	workDate, err := ParseWorkDate(input.WorkDate)
	if err != nil {
		return nil, err
	}
	startDecimal, err := TimeToDecimal(input.StartTime)
	if err != nil {
		return nil, err
	}
	endDecimal, err := TimeToDecimal(input.EndTime)
	if err != nil {
		return nil, err
	}

	// 先保留两位小数，后续的休息时间和净时长都基于这个值计算
	rawDuration := roundHundredths(RawDuration(startDecimal, endDecimal))
	breaks := BreakMinutes(rawDuration, job.BreakCriteria)
	netHours := rawDuration - breaks/60
	bonus := WeekendBonusAmount(workDate, netHours, job.HasWeekendBonus, job.WeekendBonusRate)

	return &domain.ShiftRecord{
		JobType:       job.JobName,
		BaseRate:      job.BasePay,
		WorkDate:      workDate.Format(DateLayout),
		StartTime:     strings.TrimSpace(input.StartTime),
		EndTime:       strings.TrimSpace(input.EndTime),
		StartDecimal:  startDecimal,
		EndDecimal:    endDecimal,
		RawDuration:   rawDuration,
		Breaks:        breaks,
		NetHours:      netHours,
		WeekendBonus:  bonus,
		TotalEarnings: TotalEarnings(netHours, job.BasePay, bonus),
		WeekNumber:    WeekNumber(workDate),
	}, nil
}
