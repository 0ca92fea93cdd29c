package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("data"), 0644))
	}
}

func names(files []FileInfo) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Name
	}
	return out
}

func TestFindFundFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "b.csv", "a.xlsx", "c.xls", "notes.txt", "README.md")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub.csv"), 0755))

	d := NewDiscovery(dir)
	found, err := d.FindFundFiles(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.xlsx", "b.csv", "c.xls"}, names(found))
	for _, f := range found {
		assert.Equal(t, filepath.Join(dir, f.Name), f.Path)
		assert.Equal(t, int64(4), f.Size)
		assert.WithinDuration(t, time.Now(), f.ModTime, time.Minute)
	}
}

func TestFindFundFiles_CaseInsensitiveExtension(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "FUND.CSV", "Other.Xlsx")

	d := NewDiscovery(dir)
	found, err := d.FindFundFiles(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"FUND.CSV", "Other.Xlsx"}, names(found))
}

func TestFindFundFiles_RelativeDirectory(t *testing.T) {
	base := t.TempDir()
	writeFiles(t, filepath.Join(base, "funds"), "nav.csv")

	d := NewDiscovery(base)
	found, err := d.FindFundFiles("funds")
	require.NoError(t, err)

	require.Len(t, found, 1)
	assert.Equal(t, filepath.Join(base, "funds", "nav.csv"), found[0].Path)
}

func TestFindFundFiles_MissingDirectory(t *testing.T) {
	d := NewDiscovery(t.TempDir())

	_, err := d.FindFundFiles("no-such-dir")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read directory")
}

func TestFindWorkbooks(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "daily.xlsx", "monthly.xls", "nav.csv")

	d := NewDiscovery(dir)
	found, err := d.FindWorkbooks(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"daily.xlsx", "monthly.xls"}, names(found))
}
