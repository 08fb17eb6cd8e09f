package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"logsight/internal/config"
	"logsight/internal/dataset"
	"logsight/internal/decode"
	"logsight/internal/metrics"
	"logsight/internal/report"
	"logsight/internal/server"
	"logsight/internal/store"
	"logsight/internal/types"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "analyze":
		analyzeCommand(os.Args[2:])
	case "serve":
		serveCommand(os.Args[2:])
	case "export":
		exportCommand(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: logsight <command> [flags]")
	fmt.Println("Commands:")
	fmt.Println("  analyze   Parse an access log and print the statistics report")
	fmt.Println("  serve     Parse an access log and serve the report over HTTP")
	fmt.Println("  export    Parse an access log and write the report to SQLite")
}

// loadConfig reads the YAML config, or returns defaults when no path is given
func loadConfig(path string) *types.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// buildDataset reads, decodes and parses the access log
func buildDataset(cfg *types.Config, logPath string) *dataset.Dataset {
	path := logPath
	if path == "" {
		path = cfg.Input.LogPath
	}
	if path == "" {
		log.Fatalf("No access log given: pass -log or set input.log_path")
	}

	log.Printf("[PARSE] Reading %s", path)
	lines, err := decode.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read log: %v", err)
	}
	metrics.LinesRead.Add(float64(len(lines)))

	ds, err := dataset.Build(lines)
	if err != nil {
		log.Fatalf("Failed to build dataset: %v", err)
	}
	metrics.RecordsParsed.Add(float64(ds.Len()))
	metrics.LinesSkipped.Add(float64(len(lines) - ds.Len()))

	log.Printf("[PARSE] %d of %d lines parsed (%d skipped)", ds.Len(), len(lines), len(lines)-ds.Len())
	return ds
}

func reportOptions(cfg *types.Config) report.Options {
	return report.Options{
		TopFilenames:   cfg.Analysis.TopFilenames,
		TopNotFound:    cfg.Analysis.TopNotFound,
		BandwidthYear:  cfg.Analysis.BandwidthYear,
		BandwidthMonth: time.Month(cfg.Analysis.BandwidthMonth),
	}
}

func analyzeCommand(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	logPath := fs.String("log", "", "Path to access log (overrides config)")
	outPath := fs.String("out", "", "Append the report as JSON to this file")
	asJSON := fs.Bool("json", false, "Print the report as JSON instead of text")
	fs.Parse(args)

	cfg := loadConfig(*configPath)
	ds := buildDataset(cfg, *logPath)
	rep := report.Build(ds, reportOptions(cfg))

	if *asJSON || cfg.Output.Format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			log.Fatalf("Failed to encode report: %v", err)
		}
	} else {
		rep.Render(os.Stdout)
	}

	dst := *outPath
	if dst == "" {
		dst = cfg.Output.ReportPath
	}
	if dst != "" {
		if err := report.NewWriter(dst).Write(rep); err != nil {
			log.Fatalf("Failed to write report file: %v", err)
		}
		log.Printf("[REPORT] Appended to %s", dst)
	}
}

func serveCommand(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	logPath := fs.String("log", "", "Path to access log (overrides config)")
	addr := fs.String("addr", "", "Stats API listen address (overrides config)")
	fs.Parse(args)

	cfg := loadConfig(*configPath)
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	ds := buildDataset(cfg, *logPath)
	rep := report.Build(ds, reportOptions(cfg))

	go func() {
		log.Printf("[METRICS] Starting on %s", cfg.Server.MetricsAddr)
		if err := metrics.StartServer(cfg.Server.MetricsAddr); err != nil {
			log.Printf("[METRICS] Failed to start: %v", err)
		}
	}()

	if err := server.New(rep, cfg.Server.Addr).Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func exportCommand(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	logPath := fs.String("log", "", "Path to access log (overrides config)")
	dbPath := fs.String("db", "", "SQLite database path (overrides config)")
	fs.Parse(args)

	cfg := loadConfig(*configPath)
	path := *dbPath
	if path == "" {
		path = cfg.Export.DBPath
	}
	if path == "" {
		log.Fatalf("No database given: pass -db or set export.db_path")
	}

	ds := buildDataset(cfg, *logPath)
	rep := report.Build(ds, reportOptions(cfg))

	st, err := store.NewStore(path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer st.Close()

	if err := st.SaveReport(rep); err != nil {
		log.Fatalf("Failed to save report: %v", err)
	}
	log.Printf("[EXPORT] Report written to %s", path)
}
