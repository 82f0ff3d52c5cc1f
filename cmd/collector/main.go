// Package main provides the newsstand collector: a directory of EPUB
// magazine archives in, a browsable static site out.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newsstand/internal/config"
	"newsstand/internal/logger"
	"newsstand/internal/pipeline"
)

func main() {
	// 1. Define Command-Line Flags
	// ---------------------------
	inputDir := flag.String("input", os.Getenv("NEWSSTAND_INPUT_DIR"), "Directory containing EPUB archives")
	outputDir := flag.String("output", os.Getenv("NEWSSTAND_OUTPUT_DIR"), "Directory to write the static site into")
	configFile := flag.String("config", "", "Path to YAML configuration file (optional)")
	workers := flag.Int("workers", 0, "Extraction worker count (overrides config)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")

	flag.Parse()

	// 2. Load Configuration
	// ---------------------
	cfg := config.Default()

	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
			os.Exit(1)
		}

		cfg = loaded
	}

	if *inputDir != "" {
		cfg.Pipeline.InputDir = *inputDir
	}

	if *outputDir != "" {
		cfg.Pipeline.OutputDir = *outputDir
	}

	if *workers > 0 {
		cfg.Pipeline.Workers = *workers
	}

	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	log := logger.NewLogger(cfg.Logging.Level)

	if cfg.Pipeline.InputDir == "" || cfg.Pipeline.OutputDir == "" {
		log.Error("Please provide -input and -output directories (or NEWSSTAND_INPUT_DIR / NEWSSTAND_OUTPUT_DIR)")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// 3. Run the Pipeline
	// -------------------
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("🚀 Starting newsstand collector")
	log.Info(fmt.Sprintf("📍 Source: %s", cfg.Pipeline.InputDir))
	log.Info(fmt.Sprintf("🎯 Target: %s", cfg.Pipeline.OutputDir))

	startTime := time.Now()

	report, err := pipeline.Run(ctx, cfg, log)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Pipeline failed: %v", err))

		if report != nil {
			printSummary(report, time.Since(startTime))
		}

		os.Exit(1)
	}

	// 4. Final Report
	// ---------------
	log.Info("✨ Pipeline Complete!")
	printSummary(report, time.Since(startTime))
}

func printSummary(report *pipeline.Report, elapsed time.Duration) {
	fmt.Println("\n------------------------------------------------")
	fmt.Printf("📊 Summary Report\n")
	fmt.Println("------------------------------------------------")
	fmt.Print(report.Summary())
	fmt.Printf("Total Duration: %v\n", elapsed)
	fmt.Println("------------------------------------------------")
}
