// Package filex holds small filesystem helpers for the client.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureSubdDir creates dirName under the current working directory if it
// does not exist yet and returns its absolute path.
func EnsureSubdDir(dirName string) (string, error) {
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

// DataFilePath returns the path of fileName inside the data directory,
// creating the directory on first use. An absolute fileName is returned as is.
func DataFilePath(dirName, fileName string) (string, error) {
	if filepath.IsAbs(fileName) {
		return fileName, nil
	}

	dir, err := EnsureSubdDir(dirName)
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, fileName), nil
}
