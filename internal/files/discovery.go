package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileInfo describes a discovered data file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery locates fund files and factor workbooks on disk
type Discovery struct {
	basePath string
}

// NewDiscovery creates a discovery instance. Relative directories are
// resolved against basePath.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// fundExtensions covers every format the NAV loader accepts
var fundExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
}

// workbookExtensions covers the factor workbook formats
var workbookExtensions = map[string]bool{
	".xlsx": true,
	".xls":  true,
}

// FindFundFiles returns the fund files in dir sorted by name. The order
// is deterministic so discovered funds get stable default names.
func (d *Discovery) FindFundFiles(dir string) ([]FileInfo, error) {
	return d.findByExtension(dir, fundExtensions)
}

// FindWorkbooks returns the Excel workbooks in dir sorted by name
func (d *Discovery) FindWorkbooks(dir string) ([]FileInfo, error) {
	return d.findByExtension(dir, workbookExtensions)
}

func (d *Discovery) findByExtension(dir string, extensions map[string]bool) ([]FileInfo, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var found []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !extensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		found = append(found, FileInfo{
			Path:    filepath.Join(fullPath, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Name < found[j].Name })
	return found, nil
}
