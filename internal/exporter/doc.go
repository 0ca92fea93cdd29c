// Package exporter renders the analysis reports to disk.
//
// CSVWriter is the core table writer: headers, records, UTF-8 BOM for
// Excel compatibility, and a rename-into-place write so a failed export
// never leaves a truncated report behind.
//
// ReportExporter builds on it to produce the consolidated outputs: the
// statistics table (one row per metric, one column per fund), the factor
// loadings table, the plain-text regression summaries and the JSON
// variants stamped with a generation time.
//
// Example usage:
//
//	exp := exporter.NewReportExporter(paths, logger)
//	if err := exp.WriteStatsReport("statistics.csv", report); err != nil {
//		return err
//	}
package exporter
