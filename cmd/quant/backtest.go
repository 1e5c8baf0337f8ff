package main

import (
	"fmt"
	"os"

	"github.com/Rigvedsarougi/Project-A/internal/config"
	"github.com/Rigvedsarougi/Project-A/internal/logger"
	"github.com/Rigvedsarougi/Project-A/internal/report"
	"github.com/Rigvedsarougi/Project-A/internal/storage/archive"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	backtestFrom   string
	backtestTo     string
	backtestShort  int
	backtestLong   int
	backtestExport bool
)

var backtestCmd = &cobra.Command{
	Use:   "backtest [symbol]",
	Short: "Backtest the SMA crossover strategy on a symbol",
	Long:  "Fetch history, run the SMA crossover backtest and show performance statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runBacktestCmd,
}

func init() {
	backtestCmd.Flags().StringVar(&backtestFrom, "from", "", "Start date YYYY-MM-DD (required)")
	backtestCmd.Flags().StringVar(&backtestTo, "to", "", "End date YYYY-MM-DD (required)")
	backtestCmd.Flags().IntVar(&backtestShort, "short", 0, "Short SMA window (default from config)")
	backtestCmd.Flags().IntVar(&backtestLong, "long", 0, "Long SMA window (default from config)")
	backtestCmd.Flags().BoolVar(&backtestExport, "export", false, "Archive the per-bar frame as CSV")
	backtestCmd.MarkFlagRequired("from")
	backtestCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(backtestCmd)
}

// backtestWindows applies the config windows for flags the user left
// unset; an explicit zero is kept so it fails window validation rather
// than silently reverting.
func backtestWindows(flags *pflag.FlagSet, cfg *config.Config) (short, long int) {
	short, long = backtestShort, backtestLong
	if !flags.Changed("short") {
		short = cfg.Strategy.ShortWindow
	}
	if !flags.Changed("long") {
		long = cfg.Strategy.LongWindow
	}
	return short, long
}

func runBacktestCmd(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	start, end, err := parseRange(backtestFrom, backtestTo)
	if err != nil {
		return err
	}

	short, long := backtestWindows(cmd.Flags(), cfg)

	a, _, err := newApp(cfg, log)
	if err != nil {
		return err
	}

	sess := a.NewSession()
	if _, err := a.Fetch(cmd.Context(), sess, args[0], start, end); err != nil {
		return err
	}

	frame, err := a.Indicators(sess, short, long)
	if err != nil {
		return err
	}

	result, err := a.Backtest(sess, short, long)
	if err != nil {
		return err
	}

	console := report.NewConsole(os.Stdout)
	console.Frame(frame)
	console.Backtest(result)

	if backtestExport {
		store, err := archive.New(cfg.Export)
		if err != nil {
			return err
		}
		key, err := report.NewExporter(store).SaveBacktest(cmd.Context(), result)
		if err != nil {
			return err
		}
		fmt.Printf("exported to %s\n", key)
	}

	return nil
}
