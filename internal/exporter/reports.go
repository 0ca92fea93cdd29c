package exporter

import (
	"encoding/json"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fundcli/internal/config"
	apperrors "fundcli/internal/errors"
	"fundcli/internal/regression"
	"fundcli/pkg/contracts/domain"
)

// ReportExporter writes the consolidated analysis reports
type ReportExporter struct {
	writer *CSVWriter
	logger *slog.Logger
}

// NewReportExporter creates a report exporter rooted at the configured
// report paths
func NewReportExporter(paths *config.Paths, logger *slog.Logger) *ReportExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportExporter{
		writer: NewCSVWriter(paths, logger),
		logger: logger,
	}
}

// WriteStatsReport writes the statistics table: one row per metric, one
// column per fund, in portfolio insertion order.
func (e *ReportExporter) WriteStatsReport(path string, report *domain.StatsReport) error {
	headers := make([]string, 0, len(report.Funds)+1)
	headers = append(headers, "Metric")
	for _, fund := range report.Funds {
		headers = append(headers, fund.Fund)
	}

	records := make([][]string, len(report.Metrics))
	for i, metric := range report.Metrics {
		row := make([]string, 0, len(report.Funds)+1)
		row = append(row, metric)
		for _, fund := range report.Funds {
			row = append(row, formatMetric(fund.Values[i]))
		}
		records[i] = row
	}

	return e.writer.WriteSimpleCSV(path, headers, records)
}

// WriteFactorReport writes the factor loadings table: one row per
// factor, one column per fund.
func (e *ReportExporter) WriteFactorReport(path string, report *domain.FactorReport) error {
	headers := make([]string, 0, len(report.Funds)+1)
	headers = append(headers, "Factor")
	for _, fund := range report.Funds {
		headers = append(headers, fund.Fund)
	}

	records := make([][]string, len(report.Factors))
	for i, factor := range report.Factors {
		row := make([]string, 0, len(report.Funds)+1)
		row = append(row, factor)
		for _, fund := range report.Funds {
			row = append(row, formatMetric(fund.Loadings[i]))
		}
		records[i] = row
	}

	return e.writer.WriteSimpleCSV(path, headers, records)
}

// WriteSummaries writes the full regression summaries as plain text,
// one block per fund separated by a blank line.
func (e *ReportExporter) WriteSummaries(path string, results []*regression.Result) error {
	fullPath := e.writer.resolvePath(path)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return apperrors.NewStorageError("failed to create report directory", err)
	}

	var b strings.Builder
	for i, result := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(result.Summary())
	}

	if err := os.WriteFile(fullPath, []byte(b.String()), 0644); err != nil {
		return apperrors.NewStorageError("failed to write regression summaries", err)
	}

	e.logger.Info("regression summaries written",
		slog.String("path", fullPath),
		slog.Int("funds", len(results)))
	return nil
}

// reportEnvelope stamps exported JSON payloads with a generation time
type reportEnvelope struct {
	GeneratedAt time.Time `json:"generated_at"`
	Report      any       `json:"report"`
}

// WriteReportJSON writes an arbitrary report payload as indented JSON
// wrapped in an envelope carrying the generation timestamp.
func (e *ReportExporter) WriteReportJSON(path string, payload any) error {
	fullPath := e.writer.resolvePath(path)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return apperrors.NewStorageError("failed to create report directory", err)
	}

	envelope := reportEnvelope{
		GeneratedAt: time.Now().UTC(),
		Report:      payload,
	}
	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return apperrors.NewStorageError("failed to encode report as json", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return apperrors.NewStorageError("failed to write json report", err)
	}

	e.logger.Info("json report written", slog.String("path", fullPath))
	return nil
}

// WriteStatsReportJSON writes the statistics report as JSON. Non-finite
// values have no JSON encoding and are emitted as null.
func (e *ReportExporter) WriteStatsReportJSON(path string, report *domain.StatsReport) error {
	type fundColumn struct {
		Fund   string     `json:"fund"`
		Values []*float64 `json:"values"`
	}
	payload := struct {
		Metrics []string     `json:"metrics"`
		Funds   []fundColumn `json:"funds"`
	}{
		Metrics: report.Metrics,
		Funds:   make([]fundColumn, 0, len(report.Funds)),
	}
	for _, fund := range report.Funds {
		values := make([]*float64, len(fund.Values))
		for i, v := range fund.Values {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				value := v
				values[i] = &value
			}
		}
		payload.Funds = append(payload.Funds, fundColumn{Fund: fund.Fund, Values: values})
	}
	return e.WriteReportJSON(path, payload)
}
