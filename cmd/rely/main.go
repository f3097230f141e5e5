// Package main is the entry point for the rely claims development engine.
// The engine itself is a deterministic, in-memory library; this binary is a
// thin diagnostic host around it for building triangles, selecting
// development factors, fitting tail curves and extracting IBNER patterns
// from claim-level CSV data.
package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/aristath/rely/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
