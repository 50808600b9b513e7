package scan

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("Ann, [1]\nhi"), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestScanDir(t *testing.T) {
	root := t.TempDir()
	now := time.Now().Truncate(time.Second)

	touch(t, filepath.Join(root, "old.txt"), now.Add(-time.Hour))
	touch(t, filepath.Join(root, "nested", "NEW.TXT"), now)
	touch(t, filepath.Join(root, "notes.md"), now)
	touch(t, filepath.Join(root, ".hidden", "skip.txt"), now)

	files, err := ScanDir(root)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(root, "nested", "NEW.TXT"), files[0].Path)
	assert.Equal(t, filepath.Join(root, "old.txt"), files[1].Path)
	assert.Equal(t, int64(len("Ann, [1]\nhi")), files[1].Size)
}

func TestScanDir_MissingRoot(t *testing.T) {
	files, err := ScanDir(filepath.Join(t.TempDir(), "nope"))
	assert.NoError(t, err)
	assert.Empty(t, files)
}
