package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tuyunlei/ascent"
)

// This binary only reads a scenario file and drives the ascent library.

var (
	scenarioPath string
	outputDir    string
	asCSV        bool
	timestamp    bool
)

func loadScenario() *ascent.Scenario {
	if scenarioPath == "" {
		log.Fatal("no scenario provided (use --scenario)")
	}
	s, err := ascent.LoadScenario(scenarioPath)
	if err != nil {
		log.Fatalf("%s: %s", scenarioPath, err)
	}
	return s
}

func exportConfig(name string) ascent.ExportConfig {
	return ascent.ExportConfig{Filename: name, OutputDir: outputDir, AsCSV: asCSV, Timestamp: timestamp}
}

func main() {
	root := &cobra.Command{
		Use:   "ascent",
		Short: "Vertical ascent performance calculator",
		Long:  "Simulates vertical rocket flights, sweeps design variables and accounts multi-stage Δv from a TOML scenario.",
	}
	root.PersistentFlags().StringVarP(&scenarioPath, "scenario", "s", "", "scenario TOML file")
	root.PersistentFlags().StringVarP(&outputDir, "output", "o", ".", "output directory for CSV exports")
	root.PersistentFlags().BoolVar(&asCSV, "csv", false, "write CSV exports")
	root.PersistentFlags().BoolVar(&timestamp, "timestamp", false, "timestamp exported filenames")

	root.AddCommand(launchCmd(), sweepCmd(), matrixCmd(), stagesCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func launchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "launch",
		Short: "Simulate a single launch at full precision",
		Run: func(cmd *cobra.Command, args []string) {
			s := loadScenario()
			res := ascent.SimulateLaunch(s.Params.TankMass, s.Params, s.Planet, s.Settings, s.LogInterval)
			fmt.Println(res)
			if asCSV && len(res.Telemetry) > 0 {
				ascent.ExportTelemetry(exportConfig(s.Name), res.Telemetry)
			}
		},
	}
}

func sweepCmd() *cobra.Command {
	var modeName string
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Sweep tank or payload mass and report the best configuration",
		Run: func(cmd *cobra.Command, args []string) {
			s := loadScenario()
			mode := ascent.SweepTankMass
			if modeName == "payload" {
				mode = ascent.SweepPayload
			} else if modeName != "fuel" {
				log.Fatalf("undefined sweep mode '%s'", modeName)
			}
			results := ascent.RunOptimization(mode, s.Params, s.Planet, s.Settings)
			if len(results) == 0 {
				log.Fatal("sweep returned no points: check the sweep ranges in the scenario")
			}
			best := ascent.BestResult(results, s.Settings.Target)
			fmt.Printf("%d points swept (%s), best by %s:\n%s\n", len(results), mode, s.Settings.Target, results[best])
			if asCSV {
				writeSweepCSV(s.Name+"-sweep", results)
			}
		},
	}
	cmd.Flags().StringVarP(&modeName, "mode", "m", "fuel", "swept variable: fuel|payload")
	return cmd
}

func matrixCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "matrix",
		Short: "Sweep the payload × fuel grid",
		Run: func(cmd *cobra.Command, args []string) {
			s := loadScenario()
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			points := ascent.RunMatrixSweep(ctx, s.Params, s.Planet, s.Settings)
			if points == nil {
				log.Fatal("matrix sweep aborted or empty: check the sweep ranges in the scenario")
			}
			fmt.Printf("%d grid cells simulated\n", len(points))
			if asCSV {
				writeMatrixCSV(s.Name+"-matrix", points)
			}
		},
	}
}

func stagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stages",
		Short: "Account per-stage and cumulative Δv, burn time and TWR",
		Run: func(cmd *cobra.Command, args []string) {
			s := loadScenario()
			if len(s.Stages) == 0 {
				log.Fatal("scenario has no [[stage]] tables")
			}
			computed := ascent.ComputeStages(s.Stages, s.Params.Payload, s.Planet.Gravity)
			fmt.Printf("%-12s %10s %10s %8s %8s %8s %12s\n", "stage", "Δv (m/s)", "burn (s)", "TWR0", "TWR1", "thrust", "cum Δv (m/s)")
			for _, cs := range computed {
				if cs.Skipped {
					fmt.Printf("%-12s %10s\n", cs.Name, "disabled")
					continue
				}
				fmt.Printf("%-12s %10.1f %10.1f %8.2f %8.2f %8.0f %12.1f\n", cs.Name, cs.DeltaV, cs.BurnTime, cs.TWRStart, cs.TWREnd, cs.Thrust, cs.CumulativeDeltaV)
			}
		},
	}
}

func writeSweepCSV(name string, results []ascent.SimulationResult) {
	f, err := os.Create(fmt.Sprintf("%s/%s.csv", outputDir, name))
	if err != nil {
		log.Fatalf("could not create sweep export: %s", err)
	}
	defer f.Close()
	f.WriteString("tank,payload,totalMass,dryMass,fuelMass,burnTime,maxHeight,maxVelocity,twr,deltaV")
	for _, r := range results {
		f.WriteString(fmt.Sprintf("\n%.3f,%.3f,%.3f,%.3f,%.3f,%.2f,%.1f,%.2f,%.4f,%.2f", r.TankMass, r.Payload, r.TotalMass, r.DryMass, r.FuelMass, r.BurnTime, r.MaxHeight, r.MaxVelocity, r.TWR, r.DeltaV))
	}
	fmt.Printf("Saving file to %s.\n", f.Name())
}

func writeMatrixCSV(name string, points []ascent.DataPoint) {
	f, err := os.Create(fmt.Sprintf("%s/%s.csv", outputDir, name))
	if err != nil {
		log.Fatalf("could not create matrix export: %s", err)
	}
	defer f.Close()
	f.WriteString("payload,fuel,height,deltaV")
	for _, p := range points {
		f.WriteString(fmt.Sprintf("\n%.3f,%.3f,%.1f,%.2f", p.Payload, p.Fuel, p.Height, p.DeltaV))
	}
	fmt.Printf("Saving file to %s.\n", f.Name())
}
