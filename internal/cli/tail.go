package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/aristath/rely/internal/domain"
	"github.com/aristath/rely/internal/modules/curvefit"
	"github.com/aristath/rely/internal/modules/development"
)

var (
	curveFamily string
	projectTo   int
)

// tailCmd represents the tail command
var tailCmd = &cobra.Command{
	Use:   "tail <claims.csv>",
	Short: "Fit a tail curve to the selected development factors",
	Long: `Fits a parametric decay curve to the selected age-to-age factors and
projects factors beyond the observed maturity.

Example:
  rely tail claims.csv
  rely tail claims.csv --family power --project-to 240`,
	Args: cobra.ExactArgs(1),
	RunE: runTail,
}

func init() {
	rootCmd.AddCommand(tailCmd)

	tailCmd.Flags().StringVar(&valueType, "value", "", "value type: paid or incurred (default from config)")
	tailCmd.Flags().StringVar(&yearBasis, "basis", "", "origin year basis (default from config)")
	tailCmd.Flags().StringVar(&averagingMethod, "method", "", "averaging method (default from config)")
	tailCmd.Flags().StringVar(&curveFamily, "family", "", "curve family: exponential, power or inverse_power (default from config)")
	tailCmd.Flags().IntVar(&projectTo, "project-to", 0, "project factors out to this development age (default: twice the latest observed age)")
}

func runTail(cmd *cobra.Command, args []string) error {
	method, err := domain.ParseAveragingMethod(resolve(averagingMethod, cfg.AveragingMethod))
	if err != nil {
		return err
	}
	family, err := domain.ParseCurveFamily(resolve(curveFamily, cfg.CurveFamily))
	if err != nil {
		return err
	}

	tri, _, err := buildTriangle(args[0])
	if err != nil {
		return err
	}

	selected, err := development.Calculate(tri).Selected(method)
	if err != nil {
		return err
	}

	points := make([]curvefit.Point, len(selected))
	for i, sf := range selected {
		points[i] = curvefit.Point{Age: float64(sf.Transition.ToAge), Factor: sf.Factor}
	}

	curve, err := curvefit.Fit(family, points)
	if err != nil {
		return err
	}

	a, b, c := curve.Params()
	log.Info().
		Str("family", string(family)).
		Float64("a", a).
		Float64("b", b).
		Float64("c", c).
		Float64("residual", curve.Residual()).
		Float64("r_squared", curve.RSquared()).
		Msg("Fitted tail curve")

	latest := selected[len(selected)-1].Transition.ToAge
	step := latest - selected[len(selected)-1].Transition.FromAge
	limit := projectTo
	if limit <= 0 {
		limit = 2 * latest
	}

	out := cmd.OutOrStdout()
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row{"Age", "Factor", "Source"})
	for _, sf := range selected {
		w.AppendRow(table.Row{sf.Transition.ToAge, fmt.Sprintf("%.4f", sf.Factor), "observed"})
	}
	for age := latest + step; age <= limit; age += step {
		w.AppendRow(table.Row{age, fmt.Sprintf("%.4f", curve.Factor(float64(age))), "fitted"})
	}
	fmt.Fprintln(out, w.Render())

	diag := curve.Diagnostics()
	fmt.Fprintf(out, "residual=%.6f r²=%.4f positive=%.2f outside(±2)=%.2f\n",
		curve.Residual(), curve.RSquared(), diag.ProportionPositive, diag.ProportionOutsideRange)

	return nil
}
