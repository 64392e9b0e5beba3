package report

import (
	"io"
	"strconv"

	"github.com/shiftlog-dev/earnings/backend/internal/domain"
	"github.com/shiftlog-dev/earnings/backend/internal/earnings"
	"github.com/xuri/excelize/v2"
)

const (
	ShiftsSheet = "Shifts"
	WeeksSheet  = "Weeks"
)

var shiftHeaders = []string{
	"ID", "工作", "时薪", "日期", "开始", "结束", "开始(小时)", "结束(小时)",
	"原始时长", "休息(分钟)", "实际工时", "周末补贴", "收入", "周数",
}

var weekHeaders = []string{"周数", "总工时", "工时上限", "剩余工时", "是否超限", "班次数"}

func weekLabel(week int) string {
	if week == earnings.UnknownWeek {
		return "Unknown"
	}
	return strconv.Itoa(week)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

// WriteWorkbook 导出班次记录以及按周汇总的工时情况
func WriteWorkbook(w io.Writer, records []*domain.ShiftRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(ShiftsSheet)
	if err != nil {
		return err
	}
	if _, err := f.NewSheet(WeeksSheet); err != nil {
		return err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	f.SetActiveSheet(index)

	headers := make([]any, 0, len(shiftHeaders))
	for _, header := range shiftHeaders {
		headers = append(headers, header)
	}
	if err := setRow(f, ShiftsSheet, 1, headers); err != nil {
		return err
	}

	for i, record := range records {
		values := []any{
			record.ID,
			record.JobType,
			record.BaseRate,
			record.WorkDate,
			record.StartTime,
			record.EndTime,
			record.StartDecimal,
			record.EndDecimal,
			record.RawDuration,
			record.Breaks,
			record.NetHours,
			record.WeekendBonus,
			record.TotalEarnings,
			weekLabel(record.WeekNumber),
		}
		if err := setRow(f, ShiftsSheet, i+2, values); err != nil {
			return err
		}
	}

	headers = headers[:0]
	for _, header := range weekHeaders {
		headers = append(headers, header)
	}
	if err := setRow(f, WeeksSheet, 1, headers); err != nil {
		return err
	}

	for i, summary := range earnings.GroupByWeek(records) {
		values := []any{
			weekLabel(summary.WeekNumber),
			summary.TotalHours,
			summary.WeeklyCapHours,
			summary.RemainingHours,
			summary.OverLimit,
			len(summary.Submissions),
		}
		if err := setRow(f, WeeksSheet, i+2, values); err != nil {
			return err
		}
	}

	_, err = f.WriteTo(w)
	return err
}
