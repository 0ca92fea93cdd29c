package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all resolved application paths. This is the single source
// of truth for file locations used by the analysis pipeline.
type Paths struct {
	BaseDir    string
	DataDir    string
	ReportsDir string
	LogsDir    string

	// Well-known report files inside ReportsDir
	StatsReportCSV   string
	StatsReportJSON  string
	FactorReportCSV  string
	RegressionTXT    string
}

// GetPaths resolves the application paths from the paths configuration.
// Relative directories are anchored at BaseDir, which defaults to the
// current working directory.
func GetPaths(cfg PathsConfig) (*Paths, error) {
	base := cfg.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %v", err)
		}
		base = wd
	}
	base, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %v", err)
	}

	resolve := func(dir string) string {
		if filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(base, dir)
	}

	reportsDir := resolve(cfg.ReportsDir)

	paths := &Paths{
		BaseDir:    base,
		DataDir:    resolve(cfg.DataDir),
		ReportsDir: reportsDir,
		LogsDir:    resolve(cfg.LogsDir),

		StatsReportCSV:  filepath.Join(reportsDir, "statistics.csv"),
		StatsReportJSON: filepath.Join(reportsDir, "statistics.json"),
		FactorReportCSV: filepath.Join(reportsDir, "factor_loadings.csv"),
		RegressionTXT:   filepath.Join(reportsDir, "regressions.txt"),
	}

	return paths, nil
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.ReportsDir,
		p.LogsDir,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
	}

	return nil
}

// LogPathResolution logs the resolved paths for debugging
func (p *Paths) LogPathResolution() {
	slog.Default().Debug("Resolved application paths",
		slog.String("base_dir", p.BaseDir),
		slog.String("data_dir", p.DataDir),
		slog.String("reports_dir", p.ReportsDir),
		slog.String("logs_dir", p.LogsDir))
}
