// Package cli wires the rely command-line interface: triangle, factors,
// tail and ibner subcommands over a claims CSV.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aristath/rely/internal/config"
	"github.com/aristath/rely/pkg/logger"
)

var (
	cfgFile  string
	logLevel string

	cfg *config.Config
	log zerolog.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "rely",
	Short: "Claims development triangle engine",
	Long: `rely builds claims development triangles from claim-level development
histories and derives the quantities reinsurance pricing needs from them:
age-to-age development factors, extrapolated tail factors and IBNER
adjustment patterns.

Input is a CSV with one row per observation:
  claim_id, policy_id, currency, loss_date, report_date,
  policy_inception_date, line_of_business, status, contract_limit,
  contract_deductible, in_excess_of_deductible, development_age,
  cumulative_paid, cumulative_incurred`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}

		log = logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.Pretty})
		logger.SetGlobalLogger(log)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./rely.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
