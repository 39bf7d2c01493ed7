package logging

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// rotate removes the oldest log files in dir when the number of files exceeds maxFiles.
// It only removes files that match the naming pattern "cartas-tray_*.log".
func rotate(dir string, maxFiles int) error {
	if maxFiles <= 0 {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var logFiles []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, "cartas-tray_") && strings.HasSuffix(name, ".log") {
			logFiles = append(logFiles, name)
		}
	}
	if len(logFiles) < maxFiles {
		return nil
	}
	// Timestamped names sort chronologically.
	sort.Strings(logFiles)
	excess := len(logFiles) - maxFiles + 1
	for _, name := range logFiles[:excess] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}
