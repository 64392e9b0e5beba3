package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shiftlog-dev/earnings/backend/internal/domain"
	"github.com/shiftlog-dev/earnings/backend/internal/earnings"
)

const selectShifts = `
	SELECT
		id,
		user_id,
		job_id,
		job_type,
		base_rate,
		work_date,
		start_time,
		end_time,
		start_decimal,
		end_decimal,
		raw_duration,
		breaks,
		net_hours,
		weekend_bonus,
		total_earnings,
		week_number,
		created_at
	FROM shifts
`

type scanner interface {
	Scan(dest ...any) error
}

func scanShift(s scanner) (*domain.ShiftRecord, error) {
	var (
		record   domain.ShiftRecord
		jobID    sql.NullInt64
		workDate time.Time
	)

	dst := []any{
		&record.ID,
		&record.UserID,
		&jobID,
		&record.JobType,
		&record.BaseRate,
		&workDate,
		&record.StartTime,
		&record.EndTime,
		&record.StartDecimal,
		&record.EndDecimal,
		&record.RawDuration,
		&record.Breaks,
		&record.NetHours,
		&record.WeekendBonus,
		&record.TotalEarnings,
		&record.WeekNumber,
		&record.CreatedAt,
	}
	if err := s.Scan(dst...); err != nil {
		return nil, err
	}

	if jobID.Valid {
		record.JobID = &jobID.Int64
	}
	record.WorkDate = workDate.Format(earnings.DateLayout)

	return &record, nil
}

func (r *Repository) queryShifts(query string, args ...any) ([]*domain.ShiftRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.ShiftRecord, 0)
	for rows.Next() {
		record, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *Repository) CreateShift(record *domain.ShiftRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO shifts (
			user_id, job_id, job_type, base_rate, work_date, start_time, end_time,
			start_decimal, end_decimal, raw_duration, breaks, net_hours,
			weekend_bonus, total_earnings, week_number
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at
	`

	args := []any{
		record.UserID, record.JobID, record.JobType, record.BaseRate, record.WorkDate, record.StartTime, record.EndTime,
		record.StartDecimal, record.EndDecimal, record.RawDuration, record.Breaks, record.NetHours,
		record.WeekendBonus, record.TotalEarnings, record.WeekNumber,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&record.ID, &record.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetShiftByID(id int64) (*domain.ShiftRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := selectShifts + `WHERE id = $1`

	return scanShift(r.dbpool.QueryRowContext(ctx, query, id))
}

// GetShiftsByUserID 按提交顺序返回，jobType 为空时不过滤
func (r *Repository) GetShiftsByUserID(userID int64, jobType string) ([]*domain.ShiftRecord, error) {
	if jobType == "" {
		return r.queryShifts(selectShifts+`WHERE user_id = $1 ORDER BY id`, userID)
	}

	return r.queryShifts(selectShifts+`WHERE user_id = $1 AND job_type = $2 ORDER BY id`, userID, jobType)
}

// GetShiftsByUserIDInRange 返回 [from, to] 日期区间内的班次，两端都包含
func (r *Repository) GetShiftsByUserIDInRange(userID int64, from, to time.Time) ([]*domain.ShiftRecord, error) {
	query := selectShifts + `
		WHERE user_id = $1 AND work_date BETWEEN $2 AND $3
		ORDER BY id
	`

	return r.queryShifts(query, userID, from.Format(earnings.DateLayout), to.Format(earnings.DateLayout))
}

func (r *Repository) DeleteShift(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		DELETE FROM shifts WHERE id = $1
	`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
