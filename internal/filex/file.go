// Package filex holds local filesystem helpers.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureSubDir creates dirName under the working directory if needed and
// returns its absolute path.
func EnsureSubDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// SafeName reduces name to a plain file name usable inside a directory.
// Path separators and leading dots are removed; an empty result is
// replaced by fallback.
func SafeName(name, fallback string) string {
	name = filepath.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	name = strings.TrimLeft(name, ".")
	if name == "" || name == "/" {
		return fallback
	}
	return name
}
