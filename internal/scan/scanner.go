package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type FileInfo struct {
	Path  string
	Mtime int64
	Size  int64
}

// ScanDir walks root for plain-text chat exports (*.txt), newest first.
// Unreadable directories are skipped; a missing root yields no files.
func ScanDir(root string) ([]FileInfo, error) {
	var files []FileInfo
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil // skip unreadable dirs
		}
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".txt") {
			return nil
		}
		files = append(files, FileInfo{
			Path:  path,
			Mtime: info.ModTime().Unix(),
			Size:  info.Size(),
		})
		return nil
	})
	if err != nil && os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].Mtime != files[j].Mtime {
			return files[i].Mtime > files[j].Mtime
		}
		return files[i].Path < files[j].Path
	})
	return files, nil
}
