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
	simFrom       string
	simTo         string
	simShort      int
	simLong       int
	simCapital    float64
	simCommission float64
	simExport     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [symbol]",
	Short: "Replay the crossover strategy against a paper account",
	Long:  "Backtest the SMA crossover strategy and replay its trades with whole-share paper execution",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&simFrom, "from", "", "Start date YYYY-MM-DD (required)")
	simulateCmd.Flags().StringVar(&simTo, "to", "", "End date YYYY-MM-DD (required)")
	simulateCmd.Flags().IntVar(&simShort, "short", 0, "Short SMA window (default from config)")
	simulateCmd.Flags().IntVar(&simLong, "long", 0, "Long SMA window (default from config)")
	simulateCmd.Flags().Float64Var(&simCapital, "capital", 0, "Initial capital (default from config)")
	simulateCmd.Flags().Float64Var(&simCommission, "commission", 0, "Flat commission per trade (default from config)")
	simulateCmd.Flags().BoolVar(&simExport, "export", false, "Archive the account ledger as CSV")
	simulateCmd.MarkFlagRequired("from")
	simulateCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(simulateCmd)
}

// simulationInputs applies config defaults for the flags the user left
// unset. An explicitly passed zero is kept, so invalid values surface
// as configuration errors instead of silently reverting to config.
func simulationInputs(flags *pflag.FlagSet, cfg *config.Config) (short, long int, capital, commission float64) {
	short, long = simShort, simLong
	if !flags.Changed("short") {
		short = cfg.Strategy.ShortWindow
	}
	if !flags.Changed("long") {
		long = cfg.Strategy.LongWindow
	}

	capital, commission = simCapital, simCommission
	if !flags.Changed("capital") {
		capital = cfg.Paper.InitialCapital
	}
	if !flags.Changed("commission") {
		commission = cfg.Paper.Commission
	}
	return short, long, capital, commission
}

func runSimulate(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	start, end, err := parseRange(simFrom, simTo)
	if err != nil {
		return err
	}

	short, long, capital, commission := simulationInputs(cmd.Flags(), cfg)

	a, _, err := newApp(cfg, log)
	if err != nil {
		return err
	}

	sess := a.NewSession()
	if _, err := a.Fetch(cmd.Context(), sess, args[0], start, end); err != nil {
		return err
	}

	result, err := a.Backtest(sess, short, long)
	if err != nil {
		return err
	}

	ledger, err := a.Simulate(sess, capital, commission)
	if err != nil {
		return err
	}

	console := report.NewConsole(os.Stdout)
	console.Backtest(result)
	console.Account(ledger)

	if simExport {
		store, err := archive.New(cfg.Export)
		if err != nil {
			return err
		}
		key, err := report.NewExporter(store).SaveLedger(cmd.Context(), ledger)
		if err != nil {
			return err
		}
		fmt.Printf("exported to %s\n", key)
	}

	return nil
}
