package cache

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pathwarden/pathwarden/internal/types"
)

func resultsPath(root string) string {
	// Store in .git directory or project root
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "pathwarden_last_scan.json")
	}
	return filepath.Join(root, ".pathwarden_last_scan.json")
}

// SaveReport persists the scan report so later commands (report, tui) can
// reuse it without rescanning.
func SaveReport(root string, rep types.Report) error {
	p := resultsPath(root)
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0644)
}

// LoadReport loads the last saved scan report.
func LoadReport(root string) (types.Report, error) {
	var rep types.Report
	p := resultsPath(root)
	f, err := os.ReadFile(p)
	if err != nil {
		return rep, err
	}
	if err := json.Unmarshal(f, &rep); err != nil {
		return rep, err
	}
	return rep, nil
}
