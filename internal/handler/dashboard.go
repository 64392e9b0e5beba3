package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shiftlog-dev/earnings/backend/internal/domain"
	"github.com/shiftlog-dev/earnings/backend/internal/earnings"
	"github.com/shiftlog-dev/earnings/backend/internal/utils"
)

type dashboardResponse struct {
	*domain.DashboardReport
	JobTypes []string `json:"jobTypes"`
}

func parseReportPeriod(r *http.Request, now time.Time) (domain.ReportPeriod, error) {
	period := domain.ReportPeriod{
		Year:  now.Year(),
		Month: int(now.Month()),
	}

	if year := r.URL.Query().Get("year"); year != "" {
		v, err := strconv.Atoi(year)
		if err != nil {
			return period, err
		}
		period.Year = v
	}

	if month := r.URL.Query().Get("month"); month != "" {
		v, err := strconv.Atoi(month)
		if err != nil {
			return period, err
		}
		period.Month = v
	}

	return period, utils.ValidateReportPeriod(period)
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	sub := r.Context().Value(SubCtxKey).(int64)

	period, err := parseReportPeriod(r, time.Now())
	if err != nil {
		h.errorResponse(w, r, "年份或月份不合法")
		return
	}
	filter := domain.ReportFilter{JobType: r.URL.Query().Get("jobType")}

	records, err := h.repository.GetShiftsByUserID(sub, "")
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取仪表盘成功", dashboardResponse{
		DashboardReport: earnings.Aggregate(records, filter, period),
		JobTypes:        earnings.JobTypes(records),
	})
}
