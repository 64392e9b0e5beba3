package seed

import (
	"strings"
	"testing"

	"github.com/shiftlog-dev/earnings/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWorkLog(t *testing.T) {
	data := "\ufeffEndTime,workDate,startTime,note\n" +
		"18:00,2024-01-06,09:00,土曜\n" +
		"01:20, 2024-01-09,22:10,\n"

	inputs, err := ParseWorkLog(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []domain.ShiftInput{
		{WorkDate: "2024-01-06", StartTime: "09:00", EndTime: "18:00"},
		{WorkDate: "2024-01-09", StartTime: "22:10", EndTime: "01:20"},
	}, inputs)
}

func TestParseWorkLogMissingColumn(t *testing.T) {
	_, err := ParseWorkLog(strings.NewReader("workDate,startTime\n2024-01-06,09:00\n"))
	assert.Error(t, err)

	_, err = ParseWorkLog(strings.NewReader(""))
	assert.Error(t, err)
}

func TestComputeWorkLog(t *testing.T) {
	job := &domain.Job{
		ID:            3,
		JobName:       "居酒屋",
		BasePay:       1500,
		BreakCriteria: []domain.BreakRule{{Hours: 6, BreakMinutes: 45}},
	}
	inputs := []domain.ShiftInput{
		{WorkDate: "2024-01-05", StartTime: "09:00", EndTime: "18:00"},
		{WorkDate: "2024-01-05", StartTime: "25:00", EndTime: "18:00"},
		{WorkDate: "", StartTime: "09:00", EndTime: "18:00"},
	}

	records, skipped := ComputeWorkLog(job, 7, inputs)
	require.Len(t, records, 1)
	assert.Equal(t, 2, skipped)
	assert.Equal(t, int64(7), records[0].UserID)
	require.NotNil(t, records[0].JobID)
	assert.Equal(t, int64(3), *records[0].JobID)
	assert.Equal(t, int64(12375), records[0].TotalEarnings)
}
