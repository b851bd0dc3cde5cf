package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// sanitizeFileName strips path components and characters that are not
// safe in a stored file name.
func sanitizeFileName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "._")
}

// saveUpload writes data under dir with a timestamp-prefixed unique name
// and returns the stored file name.
func saveUpload(dir, originalName string, data []byte) (string, error) {
	clean := sanitizeFileName(originalName)
	if clean == "" {
		return "", fmt.Errorf("invalid file name %q", originalName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	stored := fmt.Sprintf("%s_%s", time.Now().UTC().Format("20060102_150405.000000000"), clean)
	if err := os.WriteFile(filepath.Join(dir, stored), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return stored, nil
}

// removeUpload deletes a stored file, ignoring files that are already gone.
func removeUpload(dir, storedName string) error {
	if storedName == "" {
		return nil
	}
	err := os.Remove(filepath.Join(dir, filepath.Base(storedName)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// servedPath builds the URL path a stored upload is served from.
func servedPath(dir, storedName string) string {
	p := filepath.ToSlash(filepath.Join(dir, storedName))
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
