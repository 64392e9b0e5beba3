package ledger

import (
	"database/sql"
	"embed"
	"time"

	"github.com/GuiaBolso/darwin"
	"github.com/diegoclair/sqlmigrator"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shiftlog-dev/earnings/backend/internal/domain"
)

//go:embed sql/*.sql
var SqlFiles embed.FS

// Ledger 是离线命令行使用的本地班次记录，保存在单个 SQLite 文件中
type Ledger struct {
	db *sql.DB
}

func Migrate(db *sql.DB) error {
	migrator := sqlmigrator.New(db, darwin.SqliteDialect{})

	return migrator.Migrate(SqlFiles, "sql")
}

// Open 打开（必要时创建）账本文件，path 为 ":memory:" 时使用内存数据库
func Open(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// SQLite 只允许一个写连接，内存数据库在不同连接之间也不共享
	db.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Ledger{db: db}, nil
}

func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) Add(record *domain.ShiftRecord) error {
	query := `
		INSERT INTO shifts (
			job_type, base_rate, work_date, start_time, end_time,
			start_decimal, end_decimal, raw_duration, breaks, net_hours,
			weekend_bonus, total_earnings, week_number, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	record.CreatedAt = time.Now().UTC().Truncate(time.Second)
	args := []any{
		record.JobType, record.BaseRate, record.WorkDate, record.StartTime, record.EndTime,
		record.StartDecimal, record.EndDecimal, record.RawDuration, record.Breaks, record.NetHours,
		record.WeekendBonus, record.TotalEarnings, record.WeekNumber, record.CreatedAt,
	}

	result, err := l.db.Exec(query, args...)
	if err != nil {
		return err
	}

	record.ID, err = result.LastInsertId()
	return err
}

// List 按录入顺序返回记录，jobType 为空时返回全部
func (l *Ledger) List(jobType string) ([]*domain.ShiftRecord, error) {
	query := `
		SELECT
			id, job_type, base_rate, work_date, start_time, end_time,
			start_decimal, end_decimal, raw_duration, breaks, net_hours,
			weekend_bonus, total_earnings, week_number, created_at
		FROM shifts
		WHERE ? = '' OR job_type = ?
		ORDER BY id
	`

	rows, err := l.db.Query(query, jobType, jobType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.ShiftRecord, 0)
	for rows.Next() {
		record := &domain.ShiftRecord{}
		dst := []any{
			&record.ID, &record.JobType, &record.BaseRate, &record.WorkDate, &record.StartTime, &record.EndTime,
			&record.StartDecimal, &record.EndDecimal, &record.RawDuration, &record.Breaks, &record.NetHours,
			&record.WeekendBonus, &record.TotalEarnings, &record.WeekNumber, &record.CreatedAt,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// Delete 删除一条记录，记录不存在时返回 sql.ErrNoRows
func (l *Ledger) Delete(id int64) error {
	result, err := l.db.Exec(`DELETE FROM shifts WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
