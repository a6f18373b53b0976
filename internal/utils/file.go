package utils

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var imageExts = []string{"jpg", "jpeg", "png", "gif", "bmp", "tiff", "webp"}

// EnsureDir creates a directory if it doesn't exist
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// GetFileExtension returns the lower-case file extension without the dot
func GetFileExtension(filename string) string {
	ext := filepath.Ext(filename)
	if len(ext) > 0 {
		return strings.ToLower(ext[1:])
	}
	return ""
}

// IsImageFile checks if a file has an image extension
func IsImageFile(filename string) bool {
	return slices.Contains(imageExts, GetFileExtension(filename))
}

// ListImageFiles recursively lists image files under dir in lexical order
func ListImageFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsImageFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// AssignImages maps panel ids to image files. A file whose base name equals
// a panel id goes to that panel; the remaining panels take the remaining
// files in order.
func AssignImages(panelIDs []string, files []string) map[string]string {
	out := make(map[string]string, len(panelIDs))
	used := make(map[string]bool, len(files))

	byName := make(map[string]string, len(files))
	for _, f := range files {
		name := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
		if _, ok := byName[name]; !ok {
			byName[name] = f
		}
	}
	for _, id := range panelIDs {
		if f, ok := byName[id]; ok && !used[f] {
			out[id] = f
			used[f] = true
		}
	}

	next := 0
	for _, id := range panelIDs {
		if _, ok := out[id]; ok {
			continue
		}
		for next < len(files) && used[files[next]] {
			next++
		}
		if next == len(files) {
			break
		}
		out[id] = files[next]
		used[files[next]] = true
	}
	return out
}

// GenerateOutputFilename names a file next to inputFile: the input's base
// name plus suffix, with format as the extension
func GenerateOutputFilename(inputFile, suffix, format string) string {
	dir, base := filepath.Split(inputFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, name+suffix+"."+strings.ToLower(format))
}

// FileExists checks if a file exists and is not a directory
func FileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// FormatFileSize formats file size in human-readable format
func FormatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
