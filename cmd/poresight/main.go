package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/porelab/poresight/internal/config"
	"github.com/porelab/poresight/internal/report"
	"github.com/porelab/poresight/internal/stats"
	"github.com/spf13/pflag"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging directs diagnostics to stderr so stdout stays a clean JSON
// stream for downstream consumers.
func setupLogging(cfg *config.Config) {
	log.SetOutput(os.Stderr)
	if cfg.IsDebug() {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

// newRecorder builds the usage recorder named by the configuration.
func newRecorder(cfg *config.Config) stats.Recorder {
	if cfg.StatsBackend == config.StatsBackendRedis {
		return stats.NewRedisStore(cfg.RedisAddr)
	}
	return stats.NewFileStore(cfg.StatsFile)
}

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	if version != "dev" {
		cfg.Version = version
	}

	if pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(2)
	}
	path := pflag.Arg(0)

	if cfg.IsDebug() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}

	svc := report.NewService(cfg.MaxFileSize)
	ctx := context.Background()
	recorder := newRecorder(cfg)

	start := time.Now()
	result, err := svc.Analyze(data, report.Strategy(cfg.Strategy))
	elapsed := time.Since(start)

	if err != nil {
		var rerr *report.Error
		if errors.As(err, &rerr) {
			log.Fatalf("Analysis failed (%s): %v", rerr.Kind, err)
		}
		log.Fatalf("Analysis failed: %v", err)
	}

	// Usage is recorded at this boundary so batch wrappers reusing the
	// service do not double-count.
	if recErr := recorder.Record(ctx, elapsed); recErr != nil {
		log.Printf("Warning: could not record usage: %v", recErr)
	}

	if err := writeJSON(os.Stdout, result); err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}

	if cfg.CSVPath != "" {
		if err := writeSeriesCSV(cfg.CSVPath, result.NldftData); err != nil {
			log.Fatalf("Failed to write CSV %s: %v", cfg.CSVPath, err)
		}
		log.Printf("NLDFT series written to %s (%d rows)", cfg.CSVPath, len(result.NldftData))
	}

	if cfg.ShowStats {
		usage, err := recorder.Snapshot(ctx)
		if err != nil {
			log.Printf("Warning: could not read usage stats: %v", err)
		} else {
			fmt.Fprintf(os.Stderr, "Analyses: %d, CPU time: %.3fs, last updated: %s\n",
				usage.TotalAnalysisCount, usage.CPUTimeSeconds, usage.LastUpdated.Format(time.RFC3339))
		}
	}
}

// writeJSON emits the analysis record as indented JSON.
func writeJSON(w *os.File, result *report.AnalysisResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(result)
}

// writeSeriesCSV exports the NLDFT series with a header row and six-decimal
// values.
func writeSeriesCSV(path string, series []report.NldftPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"average_pore_diameter", "pore_integral_volume"}); err != nil {
		return err
	}
	for _, p := range series {
		rec := []string{
			strconv.FormatFloat(p.AveragePoreDiameter, 'f', 6, 64),
			strconv.FormatFloat(p.PoreIntegralVolume, 'f', 6, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("Poresight\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
