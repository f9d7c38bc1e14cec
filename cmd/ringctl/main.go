package main

import (
	"fmt"
	"os"
	"range-ring-service/internal/domain"
	"range-ring-service/internal/export"
	"range-ring-service/internal/services"

	"github.com/spf13/cobra"
)

var (
	lat       float64
	lon       float64
	distances []float64
	step      float64
	format    string
	outPath   string
)

var rootCmd = &cobra.Command{
	Use:   "ringctl",
	Short: "Generate range rings from the command line",
	Long: `ringctl computes rings of points at fixed distances around a center
coordinate and writes them as CSV or JSON, without needing the HTTP server.`,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Compute rings around a center and write them to a file or stdout",
	Example: `  ringctl generate --lat 40.7128 --lon -74.006 --distances 10,25,50
  ringctl generate --lat 51.47 --lon -0.4543 --distances 20 --step 15 --format json --out rings.json`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	center := domain.Coordinate{Lat: lat, Lon: lon}
	if err := center.Validate(); err != nil {
		return err
	}
	if len(distances) == 0 {
		return fmt.Errorf("at least one --distances value is required")
	}

	set, err := services.GenerateRingSet(cmd.Context(), services.RingSetRequest{
		Center:      center,
		Distances:   distances,
		StepDegrees: step,
	}, nil)
	if err != nil {
		return err
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %q: %w", outPath, err)
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "csv":
		err = export.WriteCSV(out, set.Points)
	case "json":
		err = export.WriteJSON(out, set.Points)
	default:
		return fmt.Errorf("unsupported format %q (want csv or json)", format)
	}
	if err != nil {
		return err
	}

	if outPath != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d points to %s\n", len(set.Points), outPath)
	}
	return nil
}

func init() {
	generateCmd.Flags().Float64Var(&lat, "lat", 0, "center latitude in decimal degrees")
	generateCmd.Flags().Float64Var(&lon, "lon", 0, "center longitude in decimal degrees")
	generateCmd.Flags().Float64SliceVar(&distances, "distances", nil, "ring distances in statute miles (comma separated)")
	generateCmd.Flags().Float64Var(&step, "step", 0, "angular step in degrees (default 10)")
	generateCmd.Flags().StringVar(&format, "format", "csv", "output format: csv or json")
	generateCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")
	_ = generateCmd.MarkFlagRequired("lat")
	_ = generateCmd.MarkFlagRequired("lon")
	_ = generateCmd.MarkFlagRequired("distances")

	rootCmd.AddCommand(generateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
