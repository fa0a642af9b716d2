package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteArtifacts writes report.md and report.html under <outDir>/<runID>/
// and returns the run directory.
func WriteArtifacts(outDir, runID, markdown, html string) (string, error) {
	dir := filepath.Join(outDir, runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "report.md"), []byte(markdown), 0o644); err != nil {
		return "", fmt.Errorf("writing report.md: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "report.html"), []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("writing report.html: %w", err)
	}
	return dir, nil
}
