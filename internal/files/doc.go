// Package files locates input data files on disk.
//
// Discovery scans a directory for fund series (CSV or Excel) and factor
// workbooks, returning them sorted by name so downstream fund numbering
// stays stable across runs.
package files
