package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/shiftlog-dev/earnings/backend/internal/domain"
	"github.com/shiftlog-dev/earnings/backend/internal/earnings"
	"github.com/shiftlog-dev/earnings/backend/internal/repository"
)

var requiredHeaders = []string{"workDate", "startTime", "endTime"}

// ParseWorkLog 读取历史打工记录，表头必须包含 workDate、startTime、endTime（不区分大小写，顺序任意）
func ParseWorkLog(r io.Reader) ([]domain.ShiftInput, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	// 读取表头
	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("文件为空")
		}
		return nil, err
	}

	columns := make(map[string]int)
	for i, header := range headers {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header, "\ufeff")))] = i
	}
	for _, header := range requiredHeaders {
		if _, ok := columns[strings.ToLower(header)]; !ok {
			return nil, fmt.Errorf("没有找到 %s 列", header)
		}
	}

	column := func(row []string, header string) string {
		i := columns[strings.ToLower(header)]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	// 读取数据
	inputs := make([]domain.ShiftInput, 0)
	for {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}

		inputs = append(inputs, domain.ShiftInput{
			WorkDate:  column(row, "workDate"),
			StartTime: column(row, "startTime"),
			EndTime:   column(row, "endTime"),
		})
	}

	return inputs, nil
}

// ComputeWorkLog 逐行计算班次记录，无法计算的行会被跳过并记录日志
func ComputeWorkLog(job *domain.Job, userID int64, inputs []domain.ShiftInput) ([]*domain.ShiftRecord, int) {
	records := make([]*domain.ShiftRecord, 0, len(inputs))
	skipped := 0

	for i, input := range inputs {
		record, err := earnings.ComputeShift(job, input)
		if err != nil {
			slog.Error("无法计算班次", "line", i+2, "input", input, "error", err)
			skipped++
			continue
		}

		record.UserID = userID
		record.JobID = &job.ID
		records = append(records, record)
	}

	return records, skipped
}

func ImportWorkLog(r *repository.Repository, userID int64, job *domain.Job, path string) {
	file, err := os.Open(path)
	if err != nil {
		slog.Error("打开文件失败", "error", err)
		return
	}
	defer file.Close()

	inputs, err := ParseWorkLog(file)
	if err != nil {
		slog.Error("读取文件失败", "error", err)
		return
	}

	records, skipped := ComputeWorkLog(job, userID, inputs)

	inserted := 0
	for _, record := range records {
		if err := r.CreateShift(record); err != nil {
			slog.Error("插入班次失败", "workDate", record.WorkDate, "error", err)
			continue
		}
		inserted++
	}

	slog.Info("导入数据完成", "inserted", inserted, "skipped", skipped)
}
