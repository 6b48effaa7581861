package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/bsm-heatmap/src/cmd/bsm/run"
	"github.com/jiaming2012/bsm-heatmap/src/eventmodels"
	"github.com/jiaming2012/bsm-heatmap/src/logger"
	"github.com/jiaming2012/bsm-heatmap/src/pricing"
)

var config *eventmodels.PricerConfigYAML

var rootCmd = &cobra.Command{
	Use:   "bsm",
	Short: "Black-Scholes option pricer with spot and volatility heatmaps",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		config, err = run.LoadConfig(configPath, goEnv)
		if err != nil {
			log.Fatalf("error loading config: %v", err)
		}

		if cmd.Flags().Changed("log-level") {
			if config.Log.Level, err = cmd.Flags().GetString("log-level"); err != nil {
				log.Fatalf("error getting log-level: %v", err)
			}
		}

		if err := logger.Setup(logger.Options{
			Level:     config.Log.Level,
			Format:    config.Log.Format,
			Output:    os.Stderr,
			Telemetry: config.Telemetry.Enabled,
		}); err != nil {
			log.Fatalf("error setting up logger: %v", err)
		}
	},
}

// getFloat returns the flag value when it was set, otherwise fallback.
func getFloat(cmd *cobra.Command, name string, fallback float64) float64 {
	if !cmd.Flags().Changed(name) {
		return fallback
	}

	v, err := cmd.Flags().GetFloat64(name)
	if err != nil {
		log.Fatalf("error getting %s: %v", name, err)
	}

	return v
}

func inputsFromFlags(cmd *cobra.Command) pricing.Inputs {
	return pricing.Inputs{
		Spot:       getFloat(cmd, "spot", config.Defaults.Spot),
		Strike:     getFloat(cmd, "strike", config.Defaults.Strike),
		Maturity:   getFloat(cmd, "maturity", config.Defaults.Maturity),
		Volatility: getFloat(cmd, "volatility", config.Defaults.Volatility),
		Rate:       getFloat(cmd, "rate", config.Defaults.Rate),
	}
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("spot", 0, "Current asset price")
	cmd.Flags().Float64("strike", 0, "Strike price")
	cmd.Flags().Float64("maturity", 0, "Time to maturity in years")
	cmd.Flags().Float64("volatility", 0, "Annualized volatility")
	cmd.Flags().Float64("rate", 0, "Risk-free interest rate")
}

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Price a European call and put with their Greeks",
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := run.Price(os.Stdout, inputsFromFlags(cmd)); err != nil {
			log.Fatalf("Error: %v", err)
		}
	},
}

var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Sweep option prices over spot and volatility",
	Run: func(cmd *cobra.Command, args []string) {
		resolution := config.Resolution
		if cmd.Flags().Changed("resolution") {
			v, err := cmd.Flags().GetInt("resolution")
			if err != nil {
				log.Fatalf("error getting resolution: %v", err)
			}
			resolution = v
		}

		gridType, err := cmd.Flags().GetString("type")
		if err != nil {
			log.Fatalf("error getting type: %v", err)
		}

		csvPath, err := cmd.Flags().GetString("csv")
		if err != nil {
			log.Fatalf("error getting csv: %v", err)
		}

		htmlPath, err := cmd.Flags().GetString("html")
		if err != nil {
			log.Fatalf("error getting html: %v", err)
		}

		// bounds that were not given are derived from the inputs
		inputs := inputsFromFlags(cmd)
		params := eventmodels.NewHeatmapParameters(inputs, resolution)
		params.SpotMin = getFloat(cmd, "spot-min", params.SpotMin)
		params.SpotMax = getFloat(cmd, "spot-max", params.SpotMax)
		params.VolMin = getFloat(cmd, "vol-min", params.VolMin)
		params.VolMax = getFloat(cmd, "vol-max", params.VolMax)
		params.CallPurchaseMin = getFloat(cmd, "call-purchase-min", params.CallPurchaseMin)
		params.CallPurchaseMax = getFloat(cmd, "call-purchase-max", params.CallPurchaseMax)
		params.PutPurchaseMin = getFloat(cmd, "put-purchase-min", params.PutPurchaseMin)
		params.PutPurchaseMax = getFloat(cmd, "put-purchase-max", params.PutPurchaseMax)

		if _, err := run.Heatmap(os.Stdout, run.HeatmapArgs{
			Inputs:     inputs,
			Params:     &params,
			Resolution: resolution,
			GridType:   gridType,
			CSVPath:    csvPath,
			HTMLPath:   htmlPath,
		}); err != nil {
			log.Fatalf("Error: %v", err)
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the pricing web service",
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("addr") {
			addr, err := cmd.Flags().GetString("addr")
			if err != nil {
				log.Fatalf("error getting addr: %v", err)
			}
			config.Server.Addr = addr
		}

		// Handle SIGINT (CTRL+C) gracefully.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := run.Serve(ctx, config); err != nil {
			log.Fatalf("Error: %v", err)
		}

		log.Info("server stopped")
	},
}

func main() {
	rootCmd.PersistentFlags().String("config", "", "Path to the yaml config file")
	rootCmd.PersistentFlags().String("go-env", "development", "Environment used to pick the .env file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level")

	addInputFlags(priceCmd)

	addInputFlags(heatmapCmd)
	heatmapCmd.Flags().Float64("spot-min", 0, "Min spot price")
	heatmapCmd.Flags().Float64("spot-max", 0, "Max spot price")
	heatmapCmd.Flags().Float64("vol-min", 0, "Min volatility for heatmap")
	heatmapCmd.Flags().Float64("vol-max", 0, "Max volatility for heatmap")
	heatmapCmd.Flags().Float64("call-purchase-min", 0, "Min call purchase price")
	heatmapCmd.Flags().Float64("call-purchase-max", 0, "Max call purchase price")
	heatmapCmd.Flags().Float64("put-purchase-min", 0, "Min put purchase price")
	heatmapCmd.Flags().Float64("put-purchase-max", 0, "Max put purchase price")
	heatmapCmd.Flags().Int("resolution", eventmodels.DefaultResolution, "Grid points per axis")
	heatmapCmd.Flags().String("type", run.AllGridTypes, "Grid to print: call, put, call_pnl, put_pnl or all")
	heatmapCmd.Flags().String("csv", "", "Write the selected grids to this CSV file")
	heatmapCmd.Flags().String("html", "", "Write the selected grids to this HTML file")

	serveCmd.Flags().String("addr", ":8080", "Listen address")

	rootCmd.AddCommand(priceCmd, heatmapCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("error: %v", err)
	}
}
