package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shiftlog-dev/earnings/backend/internal/config"
	"github.com/shiftlog-dev/earnings/backend/internal/domain"
	"github.com/shiftlog-dev/earnings/backend/internal/earnings"
	"github.com/shiftlog-dev/earnings/backend/internal/repository"
	"github.com/shiftlog-dev/earnings/backend/internal/seed"
	"github.com/shiftlog-dev/earnings/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var userID int64
	var jobID int64
	var file string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机用户, 2: 插入随机工作, 3: 插入随机班次, 4: 导入历史打工记录)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.Int64Var(&userID, "user-id", 0, "工作和班次所属的用户 ID")
	flag.Int64Var(&jobID, "job-id", 0, "班次对应的工作 ID")
	flag.StringVar(&file, "file", "", "要导入的 CSV 文件（表头包含 workDate,startTime,endTime）")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的用户数量")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Seed.User.EmailDomain)
			if err != nil {
				slog.Error("无法生成随机用户", slog.String("error", err.Error()))
				continue
			}

			if err := repo.CreateUser(user); err != nil {
				slog.Error("无法插入用户", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("插入用户成功", slog.Int("count", cnt))
	case 2:
		if n <= 0 || userID <= 0 {
			slog.Error("请输入合法的工作数量和用户 ID")
			return
		}

		if _, err := repo.GetUserByID(userID); err != nil {
			logLookupError("用户", err)
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			job := utils.GenerateRandomJob(userID)
			if err := repo.CreateJob(job); err != nil {
				slog.Error("无法插入工作", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("插入工作成功", slog.Int("count", cnt))
	case 3:
		if n <= 0 {
			slog.Error("请输入合法的班次数量")
			return
		}

		job, ok := loadJob(repo, userID, jobID)
		if !ok {
			return
		}

		// 随机分布在最近 90 天内
		from := time.Now().AddDate(0, 0, -90)
		inputs := make([]domain.ShiftInput, 0, n)
		for i := 0; i < n; i++ {
			inputs = append(inputs, utils.GenerateRandomShiftInput(from, 90))
		}

		records, _ := seed.ComputeWorkLog(job, userID, inputs)

		cnt := 0
		for _, record := range records {
			if err := repo.CreateShift(record); err != nil {
				slog.Error("无法插入班次", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("插入班次成功", slog.Int("count", cnt))
	case 4:
		if file == "" {
			slog.Error("请指定要导入的文件")
			return
		}

		job, ok := loadJob(repo, userID, jobID)
		if !ok {
			return
		}

		seed.ImportWorkLog(repo, userID, job, file)
	default:
		slog.Error("指定的操作非法")
	}
}

func logLookupError(name string, err error) {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		slog.Error("指定的" + name + "不存在")
	default:
		slog.Error("无法获取"+name, slog.String("error", err.Error()))
	}
}

// loadJob 获取指定的工作并检查它是否属于该用户
func loadJob(repo *repository.Repository, userID, jobID int64) (*domain.Job, bool) {
	if userID <= 0 || jobID <= 0 {
		slog.Error("请输入合法的用户 ID 和工作 ID")
		return nil, false
	}

	job, err := repo.GetJobByID(jobID)
	if err != nil {
		logLookupError("工作", err)
		return nil, false
	}

	if job.UserID != userID {
		slog.Error("指定的工作不属于该用户", slog.Int64("user_id", userID), slog.Int64("job_id", jobID))
		return nil, false
	}

	if err := earnings.ValidateJob(job); err != nil {
		slog.Error("工作规则不合法", slog.String("error", err.Error()))
		return nil, false
	}

	return job, true
}
