// Command cli computes scenario metrics and waterfalls offline, from JSON
// files, without running the API server.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stu-tools/rent-atlas/pkg/models/api"
	"github.com/stu-tools/rent-atlas/pkg/models/domain"
	"github.com/stu-tools/rent-atlas/pkg/services/revenue"
)

var (
	floorplansPath string
	scenarioPath   string
	baselinePath   string
	occupancyRate  float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rent-atlas",
		Short: "Offline rent-revenue scenario calculator",
	}
	rootCmd.PersistentFlags().StringVar(&floorplansPath, "floorplans", "", "Path to a JSON array of floorplans")
	rootCmd.PersistentFlags().StringVar(&scenarioPath, "scenario", "", "Path to a JSON scenario")
	rootCmd.PersistentFlags().Float64Var(&occupancyRate, "occupancy", 0.95, "Occupancy rate in [0,1]")

	calcCmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute metrics for one scenario",
		RunE:  runCalc,
	}

	waterfallCmd := &cobra.Command{
		Use:   "waterfall",
		Short: "Decompose the revenue delta between two scenarios",
		RunE:  runWaterfall,
	}
	waterfallCmd.Flags().StringVar(&baselinePath, "baseline", "", "Path to the baseline JSON scenario")

	rootCmd.AddCommand(calcCmd, waterfallCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCalc(_ *cobra.Command, _ []string) error {
	floorplans, err := loadFloorplans(floorplansPath)
	if err != nil {
		return err
	}
	adj, err := loadAdjustments(scenarioPath)
	if err != nil {
		return err
	}

	results := revenue.ComputeScenarioMetrics(floorplans, adj, occupancyRate)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Total annual revenue\t%.2f\n", results.TotalAnnualRevenue)
	fmt.Fprintf(w, "Avg rent per unit\t%.2f\n", results.AvgRentPerUnit)
	fmt.Fprintf(w, "Revenue per sqft\t%.2f\n", results.RevenuePerSqft)
	fmt.Fprintf(w, "Weighted avg rent\t%.2f\n", results.WeightedAvgRent)
	return w.Flush()
}

func runWaterfall(_ *cobra.Command, _ []string) error {
	floorplans, err := loadFloorplans(floorplansPath)
	if err != nil {
		return err
	}
	baseline, err := loadAdjustments(baselinePath)
	if err != nil {
		return err
	}
	comparison, err := loadAdjustments(scenarioPath)
	if err != nil {
		return err
	}

	steps := revenue.ComputeWaterfall(floorplans, baseline, comparison, occupancyRate)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, step := range steps {
		fmt.Fprintf(w, "%s\t%.2f\t%s\n", step.Label, step.Value, step.Type)
	}
	return w.Flush()
}

func loadFloorplans(path string) ([]domain.Floorplan, error) {
	if path == "" {
		return nil, fmt.Errorf("--floorplans is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read floorplans: %w", err)
	}
	var reqs []api.CreateFloorplan
	if err := json.Unmarshal(data, &reqs); err != nil {
		return nil, fmt.Errorf("parse floorplans: %w", err)
	}
	out := make([]domain.Floorplan, 0, len(reqs))
	for _, fp := range reqs {
		out = append(out, domain.Floorplan{
			Name:          fp.Name,
			UnitType:      fp.UnitType,
			UnitCount:     fp.UnitCount,
			SquareFootage: fp.SquareFootage,
			BaseRent:      fp.BaseRent,
			AmenityRent:   fp.AmenityRent,
		})
	}
	return out, nil
}

func loadAdjustments(path string) (domain.Adjustments, error) {
	if path == "" {
		return domain.Adjustments{}, fmt.Errorf("scenario path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Adjustments{}, fmt.Errorf("read scenario: %w", err)
	}
	var req api.CreateScenario
	if err := json.Unmarshal(data, &req); err != nil {
		return domain.Adjustments{}, fmt.Errorf("parse scenario: %w", err)
	}
	kind := domain.ConcessionType(req.ConcessionType)
	if req.ConcessionType == "" {
		kind = domain.ConcessionNone
	}
	return domain.Adjustments{
		BaseRentPctAdj:       req.BaseRentPctAdj,
		BaseRentDollarAdj:    req.BaseRentDollarAdj,
		AmenityRentPctAdj:    req.AmenityRentPctAdj,
		AmenityRentDollarAdj: req.AmenityRentDollarAdj,
		ConcessionType:       kind,
		ConcessionValue:      req.ConcessionValue,
	}, nil
}
