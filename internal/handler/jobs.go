package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shiftlog-dev/earnings/backend/internal/domain"
	"github.com/shiftlog-dev/earnings/backend/internal/utils"
)

type breakRuleRequest struct {
	Hours        float64 `json:"hours" validate:"gte=0,lt=24"`
	BreakMinutes float64 `json:"breakMinutes" validate:"gte=0"`
}

type jobRequest struct {
	JobName          string             `json:"jobName" validate:"required,max=100"`
	BasePay          float64            `json:"basePay" validate:"required,gt=0"`
	BreakCriteria    []breakRuleRequest `json:"breakCriteria" validate:"max=10,dive"`
	HasWeekendBonus  bool               `json:"hasWeekendBonus"`
	WeekendBonusRate float64            `json:"weekendBonusRate" validate:"gte=0"`
}

func (req *jobRequest) apply(job *domain.Job) {
	job.JobName = req.JobName
	job.BasePay = req.BasePay
	job.HasWeekendBonus = req.HasWeekendBonus
	job.WeekendBonusRate = req.WeekendBonusRate
	job.BreakCriteria = make([]domain.BreakRule, 0, len(req.BreakCriteria))
	for _, rule := range req.BreakCriteria {
		job.BreakCriteria = append(job.BreakCriteria, domain.BreakRule{
			Hours:        rule.Hours,
			BreakMinutes: rule.BreakMinutes,
		})
	}
}

func (h *Handler) jobConstraintError(w http.ResponseWriter, r *http.Request, err error) {
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr) && pgErr.ConstraintName == "jobs_user_id_job_name_key":
		h.errorResponse(w, r, "工作名称已存在")
	case errors.Is(err, sql.ErrNoRows):
		h.errorResponse(w, r, "工作已被修改，请刷新后重试")
	default:
		h.internalServerError(w, r, err)
	}
}

func (h *Handler) GetMyJobs(w http.ResponseWriter, r *http.Request) {
	sub := r.Context().Value(SubCtxKey).(int64)

	jobs, err := h.repository.GetJobsByUserID(sub)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取工作列表成功", jobs)
}

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	sub := r.Context().Value(SubCtxKey).(int64)

	var req jobRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	job := &domain.Job{UserID: sub}
	req.apply(job)
	if err := utils.ValidateJob(job); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateJob(job); err != nil {
		h.jobConstraintError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建工作成功", job)
}

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	job := r.Context().Value(JobCtx).(*domain.Job)
	h.successResponse(w, r, "获取工作成功", job)
}

// UpdateJob 只影响之后提交的班次，已有的班次记录保留提交时的时薪和休息时间
func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	job := r.Context().Value(JobCtx).(*domain.Job)

	var req jobRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	req.apply(job)
	if err := utils.ValidateJob(job); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateJob(job); err != nil {
		h.jobConstraintError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新工作成功", job)
}

func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	job := r.Context().Value(JobCtx).(*domain.Job)

	if err := h.repository.DeleteJob(job.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除工作成功", nil)
}
