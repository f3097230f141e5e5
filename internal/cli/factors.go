package cli

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/aristath/rely/internal/domain"
	"github.com/aristath/rely/internal/modules/development"
)

var averagingMethod string

// factorsCmd represents the factors command
var factorsCmd = &cobra.Command{
	Use:   "factors <claims.csv>",
	Short: "Compute selected development factors and chain-ladder ultimates",
	Long: `Builds a development triangle from the claims file, derives age-to-age
factors per origin year, aggregates them with the chosen averaging method
and projects each origin year to ultimate.

Example:
  rely factors claims.csv
  rely factors claims.csv --method medial --value paid`,
	Args: cobra.ExactArgs(1),
	RunE: runFactors,
}

func init() {
	rootCmd.AddCommand(factorsCmd)

	factorsCmd.Flags().StringVar(&valueType, "value", "", "value type: paid or incurred (default from config)")
	factorsCmd.Flags().StringVar(&yearBasis, "basis", "", "origin year basis (default from config)")
	factorsCmd.Flags().StringVar(&averagingMethod, "method", "", "averaging method: simple, volume or medial (default from config)")
}

func runFactors(cmd *cobra.Command, args []string) error {
	method, err := domain.ParseAveragingMethod(resolve(averagingMethod, cfg.AveragingMethod))
	if err != nil {
		return err
	}

	tri, _, err := buildTriangle(args[0])
	if err != nil {
		return err
	}

	factors := development.Calculate(tri)
	selected, err := factors.Selected(method)
	if err != nil {
		return err
	}
	toLatest, err := factors.ToLatest(method)
	if err != nil {
		return err
	}
	ultimates, err := factors.Ultimates(method)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row{"Transition", fmt.Sprintf("Selected (%s)", method), "To Latest", "Origins"})
	for i, sf := range selected {
		w.AppendRow(table.Row{
			sf.Transition.String(),
			fmt.Sprintf("%.4f", sf.Factor),
			fmt.Sprintf("%.4f", toLatest[i].Factor),
			sf.Contributors,
		})
	}
	fmt.Fprintln(out, w.Render())

	origins := make([]int, 0, len(ultimates))
	for origin := range ultimates {
		origins = append(origins, origin)
	}
	sort.Ints(origins)

	u := table.NewWriter()
	u.SetStyle(table.StyleLight)
	u.AppendHeader(table.Row{"Origin Year", "Latest", "Projected Ultimate"})
	diagonal := tri.LatestDiagonal()
	for _, origin := range origins {
		u.AppendRow(table.Row{
			origin,
			fmt.Sprintf("%.2f", diagonal[origin].Value),
			fmt.Sprintf("%.2f", ultimates[origin]),
		})
	}
	fmt.Fprintln(out, u.Render())

	return nil
}
