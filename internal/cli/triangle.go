package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aristath/rely/internal/domain"
	"github.com/aristath/rely/internal/ingest"
	"github.com/aristath/rely/internal/modules/claims"
	"github.com/aristath/rely/internal/modules/triangles"
)

var (
	valueType   string
	yearBasis   string
	incremental bool
)

// triangleCmd represents the triangle command
var triangleCmd = &cobra.Command{
	Use:   "triangle <claims.csv>",
	Short: "Build and render a development triangle",
	Long: `Aggregates the claims file into a development triangle of the selected
value type (paid or incurred) and renders it with origin-year rows and
development-age columns. Absent cells stay blank.

Example:
  rely triangle claims.csv
  rely triangle claims.csv --value paid --basis underwriting --incremental`,
	Args: cobra.ExactArgs(1),
	RunE: runTriangle,
}

func init() {
	rootCmd.AddCommand(triangleCmd)

	triangleCmd.Flags().StringVar(&valueType, "value", "", "value type: paid or incurred (default from config)")
	triangleCmd.Flags().StringVar(&yearBasis, "basis", "", "origin year basis: accident, underwriting or report (default from config)")
	triangleCmd.Flags().BoolVar(&incremental, "incremental", false, "render period-over-period movements instead of running totals")
}

func runTriangle(cmd *cobra.Command, args []string) error {
	tri, _, err := buildTriangle(args[0])
	if err != nil {
		return err
	}

	if incremental {
		tri = tri.ToIncremental()
	}

	fmt.Fprintln(cmd.OutOrStdout(), tri.Render())
	return nil
}

// buildTriangle loads the claims file and aggregates it under the value type
// and year basis resolved from flags and config.
func buildTriangle(path string) (*triangles.Triangle, *claims.Collection, error) {
	vt, err := domain.ParseValueType(resolve(valueType, cfg.ValueType))
	if err != nil {
		return nil, nil, err
	}
	basis, err := domain.ParseYearBasis(resolve(yearBasis, cfg.YearBasis))
	if err != nil {
		return nil, nil, err
	}

	collection, err := ingest.FromFile(path, basis)
	if err != nil {
		return nil, nil, err
	}

	log.Info().
		Int("claims", collection.Len()).
		Str("value_type", string(vt)).
		Str("year_basis", string(basis)).
		Msg("Loaded claims")

	tri, err := triangles.FromClaims(collection, vt)
	if err != nil {
		return nil, nil, err
	}
	return tri, collection, nil
}

func resolve(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return configValue
}
