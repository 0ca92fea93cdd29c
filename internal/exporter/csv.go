package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fundcli/internal/config"
	apperrors "fundcli/internal/errors"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(paths *config.Paths, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{paths: paths, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // add a UTF-8 BOM so Excel detects the encoding
}

// WriteCSV writes data to a CSV file with the given options. The target
// lands complete or not at all: content goes to a temporary sibling
// first and is renamed over the destination.
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	w.logger.Info("writing csv file",
		slog.String("path", fullPath),
		slog.Int("records", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return apperrors.NewStorageError("failed to create report directory", err)
	}

	tmpPath := fullPath + ".tmp"
	if err := w.writeFile(tmpPath, options); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return apperrors.NewStorageError("failed to move report into place", err)
	}
	return nil
}

func (w *CSVWriter) writeFile(path string, options WriteOptions) error {
	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewStorageError("failed to create report file", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return apperrors.NewStorageError("failed to write BOM", err)
		}
	}

	writer := csv.NewWriter(file)
	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return apperrors.NewStorageError("failed to write headers", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return apperrors.NewStorageError(fmt.Sprintf("failed to write record %d", i), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewStorageError("failed to flush csv writer", err)
	}
	return nil
}

// WriteSimpleCSV writes a CSV file with headers, records and a BOM
func (w *CSVWriter) WriteSimpleCSV(filePath string, headers []string, records [][]string) error {
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: true,
	})
}

// resolvePath anchors relative report paths in the reports directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) {
		return filePath
	}
	return filepath.Join(w.paths.ReportsDir, filePath)
}
