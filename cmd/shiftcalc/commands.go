package main

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/shiftlog-dev/earnings/backend/internal/domain"
	"github.com/shiftlog-dev/earnings/backend/internal/earnings"
	"github.com/shiftlog-dev/earnings/backend/internal/ledger"
	"github.com/shiftlog-dev/earnings/backend/internal/report"
	"github.com/shiftlog-dev/earnings/backend/internal/utils"
	"github.com/spf13/cobra"
)

type shiftFlags struct {
	jobsFile string
	jobName  string
	input    domain.ShiftInput
}

func (f *shiftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.jobsFile, "jobs", "jobs.yaml", "工作定义文件（YAML）")
	cmd.Flags().StringVar(&f.jobName, "job", "", "工作名称")
	cmd.Flags().StringVar(&f.input.WorkDate, "date", "", "工作日期 (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.input.StartTime, "start", "", "开始时间 (HH:mm)")
	cmd.Flags().StringVar(&f.input.EndTime, "end", "", "结束时间 (HH:mm)")
}

func (f *shiftFlags) compute() (*domain.ShiftRecord, error) {
	if f.jobName == "" {
		return nil, earnings.ErrIncompleteForm
	}

	jobs, err := ledger.LoadJobs(f.jobsFile)
	if err != nil {
		return nil, err
	}
	job, err := ledger.FindJob(jobs, f.jobName)
	if err != nil {
		return nil, err
	}

	return earnings.ComputeShift(job, f.input)
}

func weekLabel(week int) string {
	if week == earnings.UnknownWeek {
		return "Unknown"
	}
	return strconv.Itoa(week)
}

func printRecord(w io.Writer, record *domain.ShiftRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "工作\t%s\n", record.JobType)
	fmt.Fprintf(tw, "日期\t%s (第 %s 周)\n", record.WorkDate, weekLabel(record.WeekNumber))
	fmt.Fprintf(tw, "时间\t%s - %s\n", record.StartTime, record.EndTime)
	fmt.Fprintf(tw, "原始时长\t%.2f 小时\n", record.RawDuration)
	fmt.Fprintf(tw, "休息\t%g 分钟\n", record.Breaks)
	fmt.Fprintf(tw, "实际工时\t%.2f 小时\n", record.NetHours)
	fmt.Fprintf(tw, "周末补贴\t%g\n", record.WeekendBonus)
	fmt.Fprintf(tw, "收入\t%d\n", record.TotalEarnings)
	_ = tw.Flush()
}

func printRecords(w io.Writer, records []*domain.ShiftRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\t工作\t日期\t开始\t结束\t实际工时\t收入\t周")
	for _, record := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%.2f\t%d\t%s\n",
			record.ID, record.JobType, record.WorkDate, record.StartTime, record.EndTime,
			record.NetHours, record.TotalEarnings, weekLabel(record.WeekNumber))
	}
	_ = tw.Flush()
}

func (a *app) computeCmd() *cobra.Command {
	flags := &shiftFlags{}

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "计算一次班次的收入（不保存）",
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := flags.compute()
			if err != nil {
				return err
			}
			printRecord(cmd.OutOrStdout(), record)
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

func (a *app) logCmd() *cobra.Command {
	flags := &shiftFlags{}

	cmd := &cobra.Command{
		Use:   "log",
		Short: "计算一次班次的收入并保存到账本",
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := flags.compute()
			if err != nil {
				return err
			}

			l, err := a.openLedger()
			if err != nil {
				return err
			}
			if err := l.Add(record); err != nil {
				return err
			}

			printRecord(cmd.OutOrStdout(), record)
			fmt.Fprintf(cmd.OutOrStdout(), "已保存，ID: %d\n", record.ID)
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

func (a *app) listCmd() *cobra.Command {
	var jobType string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "列出账本中的班次记录",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.openLedger()
			if err != nil {
				return err
			}

			records, err := l.List(jobType)
			if err != nil {
				return err
			}

			printRecords(cmd.OutOrStdout(), records)
			return nil
		},
	}
	cmd.Flags().StringVar(&jobType, "job-type", "", "只显示指定工作的记录")

	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "删除一条班次记录",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("无效的 ID: %s", args[0])
			}

			l, err := a.openLedger()
			if err != nil {
				return err
			}

			if err := l.Delete(id); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return fmt.Errorf("记录 %d 不存在", id)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "已删除记录 %d\n", id)
			return nil
		},
	}
}

func printReport(w io.Writer, rep *domain.DashboardReport) {
	fmt.Fprintf(w, "%d 年 %d 月", rep.Period.Year, rep.Period.Month)
	if rep.Filter.JobType != "" {
		fmt.Fprintf(w, "（%s）", rep.Filter.JobType)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "\n本月每周收入")
	fmt.Fprintln(tw, "周\t收入")
	for _, total := range rep.WeeklyForMonth {
		fmt.Fprintf(tw, "%d\t%d\n", total.WeekNumber, total.Total)
	}

	fmt.Fprintln(tw, "\n本年每月收入")
	fmt.Fprintln(tw, "月\t收入")
	for _, total := range rep.MonthlyForYear {
		fmt.Fprintf(tw, "%d\t%d\n", total.Month, total.Total)
	}

	fmt.Fprintln(tw, "\n每周工时")
	fmt.Fprintln(tw, "周\t工时\t上限\t剩余\t")
	for _, summary := range rep.WeeklySummaries {
		flag := ""
		if summary.OverLimit {
			flag = "超出上限"
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%g\t%.2f\t%s\n",
			weekLabel(summary.WeekNumber), summary.TotalHours, summary.WeeklyCapHours, summary.RemainingHours, flag)
	}
	_ = tw.Flush()
}

func (a *app) reportCmd() *cobra.Command {
	var (
		year    int
		month   int
		jobType string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "按周、按月汇总收入并检查每周工时上限",
		RunE: func(cmd *cobra.Command, args []string) error {
			period := domain.ReportPeriod{Year: year, Month: month}
			if err := utils.ValidateReportPeriod(period); err != nil {
				return err
			}

			l, err := a.openLedger()
			if err != nil {
				return err
			}

			records, err := l.List("")
			if err != nil {
				return err
			}

			printReport(cmd.OutOrStdout(), earnings.Aggregate(records, domain.ReportFilter{JobType: jobType}, period))
			return nil
		},
	}

	now := time.Now()
	cmd.Flags().IntVar(&year, "year", now.Year(), "年份")
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "月份 (1-12)")
	cmd.Flags().StringVar(&jobType, "job-type", "", "只统计指定工作")

	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	var (
		out     string
		jobType string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "将班次记录导出为 xlsx 文件",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.openLedger()
			if err != nil {
				return err
			}

			records, err := l.List(jobType)
			if err != nil {
				return err
			}

			file, err := os.Create(out)
			if err != nil {
				return err
			}
			defer file.Close()

			if err := report.WriteWorkbook(file, records); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "已导出 %d 条记录到 %s\n", len(records), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "shifts.xlsx", "输出文件路径")
	cmd.Flags().StringVar(&jobType, "job-type", "", "只导出指定工作的记录")

	return cmd
}
