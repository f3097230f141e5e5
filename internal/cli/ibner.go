package cli

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/aristath/rely/internal/domain"
	"github.com/aristath/rely/internal/ingest"
	"github.com/aristath/rely/internal/modules/ibner"
	"github.com/aristath/rely/internal/modules/triangles"
)

// ibnerCmd represents the ibner command
var ibnerCmd = &cobra.Command{
	Use:   "ibner <claims.csv>",
	Short: "Extract the IBNER adjustment pattern",
	Long: `Builds paid and incurred triangles from the same claims file and
computes, per age transition, the ratio of the incurred development factor
to the paid development factor. Ratios near 1.0 mean paid and incurred
develop similarly; divergence flags reserve strengthening or release.

Example:
  rely ibner claims.csv
  rely ibner claims.csv --method simple --basis underwriting`,
	Args: cobra.ExactArgs(1),
	RunE: runIBNER,
}

func init() {
	rootCmd.AddCommand(ibnerCmd)

	ibnerCmd.Flags().StringVar(&yearBasis, "basis", "", "origin year basis (default from config)")
	ibnerCmd.Flags().StringVar(&averagingMethod, "method", "", "averaging method (default from config)")
}

func runIBNER(cmd *cobra.Command, args []string) error {
	method, err := domain.ParseAveragingMethod(resolve(averagingMethod, cfg.AveragingMethod))
	if err != nil {
		return err
	}
	basis, err := domain.ParseYearBasis(resolve(yearBasis, cfg.YearBasis))
	if err != nil {
		return err
	}

	collection, err := ingest.FromFile(args[0], basis)
	if err != nil {
		return err
	}

	paid, err := triangles.FromClaims(collection, domain.ValuePaid)
	if err != nil {
		return err
	}
	incurred, err := triangles.FromClaims(collection, domain.ValueIncurred)
	if err != nil {
		return err
	}

	pattern, err := ibner.Extract(paid, incurred, method)
	if err != nil {
		return err
	}
	completion, err := ibner.Completion(incurred, method)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row{"Transition", "Incurred/Paid Ratio"})
	for _, p := range pattern {
		w.AppendRow(table.Row{p.Transition.String(), fmt.Sprintf("%.4f", p.Ratio)})
	}
	fmt.Fprintln(out, w.Render())

	origins := make([]int, 0, len(completion))
	for origin := range completion {
		origins = append(origins, origin)
	}
	sort.Ints(origins)

	c := table.NewWriter()
	c.SetStyle(table.StyleLight)
	c.AppendHeader(table.Row{"Origin Year", "Completion Factor"})
	for _, origin := range origins {
		c.AppendRow(table.Row{origin, fmt.Sprintf("%.4f", completion[origin])})
	}
	fmt.Fprintln(out, c.Render())

	return nil
}
