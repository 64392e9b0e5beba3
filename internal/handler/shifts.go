package handler

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/shiftlog-dev/earnings/backend/internal/domain"
	"github.com/shiftlog-dev/earnings/backend/internal/earnings"
	"github.com/shiftlog-dev/earnings/backend/internal/report"
)

type shiftRequest struct {
	JobID     int64       `json:"jobID"`
	Job       *domain.Job `json:"job"` // 仅用于预览，允许使用尚未保存的工作规则
	WorkDate  string      `json:"workDate"`
	StartTime string      `json:"startTime"`
	EndTime   string      `json:"endTime"`
}

func (req *shiftRequest) input() domain.ShiftInput {
	return domain.ShiftInput{
		WorkDate:  req.WorkDate,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
}

type createShiftResponse struct {
	Shift *domain.ShiftRecord   `json:"shift"`
	Week  *domain.WeeklySummary `json:"week"`
}

// loadOwnJob 返回当前用户的工作，找不到时已经写入了响应
func (h *Handler) loadOwnJob(w http.ResponseWriter, r *http.Request, jobID int64) (*domain.Job, bool) {
	sub := r.Context().Value(SubCtxKey).(int64)

	job, err := h.repository.GetJobByID(jobID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "工作不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return nil, false
	}

	if job.UserID != sub {
		h.errorResponse(w, r, "工作不存在")
		return nil, false
	}

	return job, true
}

func (h *Handler) PreviewShift(w http.ResponseWriter, r *http.Request) {
	var req shiftRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	job := req.Job
	if job == nil {
		if req.JobID == 0 {
			h.errorResponse(w, r, earnings.ErrIncompleteForm.Error())
			return
		}
		var ok bool
		if job, ok = h.loadOwnJob(w, r, req.JobID); !ok {
			return
		}
	}

	record, err := earnings.ComputeShift(job, req.input())
	if err != nil {
		h.calculationError(w, r, err)
		return
	}

	h.successResponse(w, r, "计算成功", record)
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req shiftRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.JobID == 0 {
		h.errorResponse(w, r, earnings.ErrIncompleteForm.Error())
		return
	}

	job, ok := h.loadOwnJob(w, r, req.JobID)
	if !ok {
		return
	}

	record, err := earnings.ComputeShift(job, req.input())
	if err != nil {
		h.calculationError(w, r, err)
		return
	}
	record.UserID = myInfo.ID
	record.JobID = &job.ID

	if err := h.repository.CreateShift(record); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 重新统计该周的工时，超出上限时只做提醒，不阻止提交
	workDate, err := earnings.ParseWorkDate(record.WorkDate)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	monday, sunday := earnings.ISOWeekRange(workDate)

	records, err := h.repository.GetShiftsByUserIDInRange(myInfo.ID, monday, sunday)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	var week *domain.WeeklySummary
	for _, summary := range earnings.GroupByWeek(records) {
		if summary.WeekNumber == record.WeekNumber {
			week = summary
			break
		}
	}

	if week != nil && week.OverLimit {
		if err := h.publishMail(domain.MailMessage{
			Type: domain.MailTypeWeeklyLimitExceeded,
			To:   myInfo.Email,
			Data: domain.WeeklyLimitExceededMailData{
				DisplayName:    myInfo.DisplayName,
				WeekNumber:     week.WeekNumber,
				TotalHours:     week.TotalHours,
				WeeklyCapHours: week.WeeklyCapHours,
				OverHours:      -week.RemainingHours,
			},
		}); err != nil {
			slog.Error("投递超时提醒邮件失败", "userID", myInfo.ID, "week", week.WeekNumber, "error", err)
		}
	}

	h.successResponse(w, r, "提交班次成功", createShiftResponse{
		Shift: record,
		Week:  week,
	})
}

func (h *Handler) GetMyShifts(w http.ResponseWriter, r *http.Request) {
	sub := r.Context().Value(SubCtxKey).(int64)

	records, err := h.repository.GetShiftsByUserID(sub, r.URL.Query().Get("jobType"))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取班次列表成功", records)
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	record := r.Context().Value(ShiftCtx).(*domain.ShiftRecord)
	h.successResponse(w, r, "获取班次成功", record)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	record := r.Context().Value(ShiftCtx).(*domain.ShiftRecord)

	if err := h.repository.DeleteShift(record.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除班次成功", nil)
}

func (h *Handler) ExportShifts(w http.ResponseWriter, r *http.Request) {
	sub := r.Context().Value(SubCtxKey).(int64)

	records, err := h.repository.GetShiftsByUserID(sub, r.URL.Query().Get("jobType"))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 先写入缓冲区，生成失败时仍然可以返回 JSON 错误
	var buf bytes.Buffer
	if err := report.WriteWorkbook(&buf, records); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="shifts-%s.xlsx"`, uuid.NewString()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logInternalServerError(r, err)
	}
}
