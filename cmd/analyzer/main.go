package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"fundcli/internal/config"
	"fundcli/internal/dataprocessing"
	"fundcli/internal/exporter"
	"fundcli/internal/files"
	"fundcli/internal/infrastructure"
	"fundcli/internal/portfolio"
	"fundcli/pkg/contracts"
	"fundcli/pkg/contracts/domain"
)

func main() {
	benchmarkPath := flag.String("benchmark", "", "benchmark NAV series (CSV or Excel)")
	fundList := flag.String("funds", "", "comma-separated fund NAV files")
	fundsDir := flag.String("funds-dir", "", "directory scanned for fund NAV files")
	dailyFactors := flag.String("factors-daily", "", "daily factor workbook (.xlsx)")
	monthlyFactors := flag.String("factors-monthly", "", "monthly factor workbook (.xlsx)")
	universe := flag.String("universe", "", "factor universe column (Global, US, Europe, Japan)")
	outDir := flag.String("out", "", "report output directory (defaults to the configured reports dir)")
	configFile := flag.String("config", "", "path to config.yaml")
	format := flag.String("format", "", "report format: csv or json")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	// Flags override configured defaults
	if *verbose {
		cfg.Logging.Level = "debug"
	}
	if *universe == "" {
		*universe = cfg.Analysis.Universe
	}
	if *format == "" {
		*format = cfg.Analysis.OutputFormat
	}
	if *outDir != "" {
		cfg.Paths.ReportsDir = *outDir
	}
	if *format != "csv" && *format != "json" {
		slog.Error("Invalid report format, want csv or json", "format", *format)
		os.Exit(1)
	}

	paths, err := config.GetPaths(cfg.Paths)
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.ContextWithTraceID(context.Background())

	req := &portfolio.AnalysisRequest{
		FundPaths:         splitPaths(*fundList),
		FundsDir:          *fundsDir,
		BenchmarkPath:     *benchmarkPath,
		DailyFactorPath:   *dailyFactors,
		MonthlyFactorPath: *monthlyFactors,
		Universe:          *universe,
		OutDir:            paths.ReportsDir,
	}
	if err := req.Validate(); err != nil {
		logger.ErrorContext(ctx, "Invalid analysis request", slog.String("error", err.Error()))
		flag.Usage()
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Starting fund analysis",
		slog.String("version", contracts.Version),
		slog.String("universe", req.Universe),
		slog.String("reports_dir", paths.ReportsDir),
		slog.String("format", *format))

	navLoader := dataprocessing.NewNavLoader(logger)
	factorLoader := dataprocessing.NewFactorLoader(logger)

	var benchmark *domain.Series
	if req.BenchmarkPath != "" {
		benchmark, err = navLoader.LoadFund(ctx, req.BenchmarkPath, "benchmark")
		if err != nil {
			logger.ErrorContext(ctx, "Failed to load benchmark", slog.String("error", err.Error()))
			os.Exit(1)
		}
	} else {
		logger.WarnContext(ctx, "No benchmark given, relative metrics will be empty")
	}

	fundPaths := req.FundPaths
	if req.FundsDir != "" {
		discovery := files.NewDiscovery(paths.BaseDir)
		found, err := discovery.FindFundFiles(req.FundsDir)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to scan funds directory", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if len(found) == 0 {
			logger.WarnContext(ctx, "No fund files found in directory", slog.String("dir", req.FundsDir))
		}
		for _, fi := range found {
			fundPaths = append(fundPaths, fi.Path)
		}
	}

	p := portfolio.New(
		portfolio.WithLogger(logger),
		portfolio.WithMaxConcurrency(cfg.Analysis.MaxConcurrency),
	)
	if err := p.Fill(ctx, navLoader, fundPaths); err != nil {
		logger.ErrorContext(ctx, "Failed to load funds", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if p.Len() == 0 {
		logger.ErrorContext(ctx, "No funds to analyze")
		os.Exit(1)
	}
	logger.InfoContext(ctx, "Portfolio loaded", slog.Int("funds", p.Len()))

	factors, riskFree, err := factorLoader.FillPanels(ctx,
		[2]string{req.DailyFactorPath, req.MonthlyFactorPath}, req.Universe)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load factor panels", slog.String("error", err.Error()))
		os.Exit(1)
	}

	stats, err := p.Reporting(ctx, riskFree, benchmark)
	if err != nil {
		logger.ErrorContext(ctx, "Statistics computation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	exp := exporter.NewReportExporter(paths, logger)
	writeJSON := *format == "json"

	if writeJSON {
		if err := exp.WriteStatsReportJSON(paths.StatsReportJSON, stats); err != nil {
			logger.ErrorContext(ctx, "Failed to write statistics report", slog.String("error", err.Error()))
			os.Exit(1)
		}
	} else {
		if err := exp.WriteStatsReport(paths.StatsReportCSV, stats); err != nil {
			logger.ErrorContext(ctx, "Failed to write statistics report", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	analysis, err := p.FactorialAnalysis(ctx, factors)
	if err != nil {
		logger.ErrorContext(ctx, "Factor regression failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if writeJSON {
		loadingsPath := filepath.Join(paths.ReportsDir, "factor_loadings.json")
		if err := exp.WriteReportJSON(loadingsPath, analysis.Report); err != nil {
			logger.ErrorContext(ctx, "Failed to write factor report", slog.String("error", err.Error()))
			os.Exit(1)
		}
	} else {
		if err := exp.WriteFactorReport(paths.FactorReportCSV, analysis.Report); err != nil {
			logger.ErrorContext(ctx, "Failed to write factor report", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if err := exp.WriteSummaries(paths.RegressionTXT, analysis.Regressions); err != nil {
		logger.ErrorContext(ctx, "Failed to write regression summaries", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Analysis complete",
		slog.Int("funds", p.Len()),
		slog.String("reports_dir", paths.ReportsDir))
}

// splitPaths splits a comma-separated flag value, dropping empty entries
func splitPaths(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
