package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shiftlog-dev/earnings/backend/internal/domain"
)

type jobRow struct {
	ID               int64
	UserID           int64
	JobName          string
	BasePay          float64
	HasWeekendBonus  bool
	WeekendBonusRate float64
	CreatedAt        time.Time
	Version          int32

	Hours        sql.NullFloat64
	BreakMinutes sql.NullFloat64
}

func (row *jobRow) dst() []any {
	return []any{
		&row.ID,
		&row.UserID,
		&row.JobName,
		&row.BasePay,
		&row.HasWeekendBonus,
		&row.WeekendBonusRate,
		&row.CreatedAt,
		&row.Version,
		&row.Hours,
		&row.BreakMinutes,
	}
}

const selectJobs = `
	SELECT
		j.id,
		j.user_id,
		j.job_name,
		j.base_pay,
		j.has_weekend_bonus,
		j.weekend_bonus_rate,
		j.created_at,
		j.version,
		jbr.hours,
		jbr.break_minutes
	FROM jobs j
	LEFT JOIN job_break_rules jbr ON j.id = jbr.job_id
`

// scanJobs 将 LEFT JOIN 的结果组装为工作列表，行的顺序需要保证同一工作的休息规则按 position 排列
func scanJobs(rows *sql.Rows) ([]*domain.Job, error) {
	jobs := make([]*domain.Job, 0)
	jobsMap := make(map[int64]*domain.Job)

	for rows.Next() {
		var row jobRow
		if err := rows.Scan(row.dst()...); err != nil {
			return nil, err
		}

		job, exists := jobsMap[row.ID]
		if !exists {
			// 说明此时是第一次查到这个工作，需要初始化
			job = &domain.Job{
				ID:               row.ID,
				UserID:           row.UserID,
				JobName:          row.JobName,
				BasePay:          row.BasePay,
				BreakCriteria:    make([]domain.BreakRule, 0),
				HasWeekendBonus:  row.HasWeekendBonus,
				WeekendBonusRate: row.WeekendBonusRate,
				CreatedAt:        row.CreatedAt,
				Version:          row.Version,
			}
			jobsMap[row.ID] = job
			jobs = append(jobs, job)
		}

		// 该工作没有任何休息规则
		if !row.Hours.Valid {
			continue
		}

		job.BreakCriteria = append(job.BreakCriteria, domain.BreakRule{
			Hours:        row.Hours.Float64,
			BreakMinutes: row.BreakMinutes.Float64,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}

func (r *Repository) GetJobsByUserID(userID int64) ([]*domain.Job, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := selectJobs + `
		WHERE j.user_id = $1
		ORDER BY j.id, jbr.position
	`

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanJobs(rows)
}

func (r *Repository) GetJobByID(id int64) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := selectJobs + `
		WHERE j.id = $1
		ORDER BY jbr.position
	`

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs, err := scanJobs(rows)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, sql.ErrNoRows
	}

	return jobs[0], nil
}

func insertBreakRules(ctx context.Context, tx *sql.Tx, job *domain.Job) error {
	query := `
		INSERT INTO job_break_rules (job_id, position, hours, break_minutes)
		VALUES ($1, $2, $3, $4)
	`

	for i, rule := range job.BreakCriteria {
		if _, err := tx.ExecContext(ctx, query, job.ID, i, rule.Hours, rule.BreakMinutes); err != nil {
			return err
		}
	}

	return nil
}

func (r *Repository) CreateJob(job *domain.Job) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO jobs (user_id, job_name, base_pay, has_weekend_bonus, weekend_bonus_rate)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`
	args := []any{job.UserID, job.JobName, job.BasePay, job.HasWeekendBonus, job.WeekendBonusRate}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&job.ID, &job.CreatedAt, &job.Version); err != nil {
		return err
	}

	if err := insertBreakRules(ctx, tx, job); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateJob 整体替换休息规则，已经提交的班次记录不受影响
func (r *Repository) UpdateJob(job *domain.Job) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE jobs
		SET
			job_name = $1,
			base_pay = $2,
			has_weekend_bonus = $3,
			weekend_bonus_rate = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`
	args := []any{job.JobName, job.BasePay, job.HasWeekendBonus, job.WeekendBonusRate, job.ID, job.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&job.Version); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM job_break_rules WHERE job_id = $1`, job.ID); err != nil {
		return err
	}

	if err := insertBreakRules(ctx, tx, job); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) DeleteJob(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		DELETE FROM jobs WHERE id = $1
	`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
