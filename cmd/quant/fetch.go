package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Rigvedsarougi/Project-A/internal/logger"
	"github.com/Rigvedsarougi/Project-A/internal/report"
	"github.com/spf13/cobra"
)

var (
	fetchFrom string
	fetchTo   string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [symbol]",
	Short: "Fetch daily price history for a symbol",
	Args:  cobra.ExactArgs(1),
	RunE:  runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchFrom, "from", "", "Start date YYYY-MM-DD (required)")
	fetchCmd.Flags().StringVar(&fetchTo, "to", "", "End date YYYY-MM-DD (required)")
	fetchCmd.MarkFlagRequired("from")
	fetchCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(fetchCmd)
}

func parseRange(from, to string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid from date (expected YYYY-MM-DD): %w", err)
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid to date (expected YYYY-MM-DD): %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date must be after start date")
	}
	return start, end, nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	start, end, err := parseRange(fetchFrom, fetchTo)
	if err != nil {
		return err
	}

	a, _, err := newApp(cfg, log)
	if err != nil {
		return err
	}

	sess := a.NewSession()
	series, err := a.Fetch(cmd.Context(), sess, args[0], start, end)
	if err != nil {
		return err
	}

	summary, err := a.Describe(sess)
	if err != nil {
		return err
	}

	console := report.NewConsole(os.Stdout)
	console.Series(series)
	console.Summary(summary)
	return nil
}
