package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/shiftlog-dev/earnings/backend/internal/ledger"
	"github.com/spf13/cobra"
)

type app struct {
	ledgerPath string
	ledger     *ledger.Ledger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "shiftcalc",
		Short:         "离线计算并记录打工收入",
		Long:          `shiftcalc 根据工作规则（时薪、休息规则、周末补贴）计算每次班次的收入，并把记录保存在本地 SQLite 账本中。`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.ledger != nil {
				err := a.ledger.Close()
				a.ledger = nil
				return err
			}
			return nil
		},
	}

	defaultLedger := os.Getenv("SHIFTCALC_LEDGER")
	if defaultLedger == "" {
		defaultLedger = "shiftlog.db"
	}
	rootCmd.PersistentFlags().StringVar(&a.ledgerPath, "ledger", defaultLedger, "SQLite 账本文件路径")

	rootCmd.AddCommand(a.computeCmd())
	rootCmd.AddCommand(a.logCmd())
	rootCmd.AddCommand(a.listCmd())
	rootCmd.AddCommand(a.deleteCmd())
	rootCmd.AddCommand(a.reportCmd())
	rootCmd.AddCommand(a.exportCmd())

	return rootCmd
}

// openLedger 只在需要读写账本的子命令中调用
func (a *app) openLedger() (*ledger.Ledger, error) {
	if a.ledger != nil {
		return a.ledger, nil
	}

	l, err := ledger.Open(a.ledgerPath)
	if err != nil {
		return nil, fmt.Errorf("无法打开账本 %s: %w", a.ledgerPath, err)
	}
	a.ledger = l
	return l, nil
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		slog.Error("执行失败", "error", err)
		os.Exit(1)
	}
}
