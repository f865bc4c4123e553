package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Baseline remembers sensitive paths the user has already reviewed, so a
// repeated audit can surface only new ones.
type Baseline struct {
	// Path relative to project root -> classification reason at review time
	Entries map[string]string `json:"entries"`
}

func baselinePath(root string) string {
	// Prefer storing under .git to avoid accidental commits
	// Fall back to project root if .git does not exist
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "pathwardenbaseline.json")
	}
	return filepath.Join(root, ".pathwardenbaseline.json")
}

func LoadBaseline(root string) (Baseline, error) {
	var b Baseline
	p := baselinePath(root)
	f, err := os.ReadFile(p)
	if err != nil {
		return Baseline{Entries: map[string]string{}}, err
	}
	if err := json.Unmarshal(f, &b); err != nil {
		return Baseline{Entries: map[string]string{}}, err
	}
	if b.Entries == nil {
		b.Entries = map[string]string{}
	}
	return b, nil
}

func SaveBaseline(root string, b Baseline) error {
	if b.Entries == nil {
		return errors.New("empty baseline")
	}
	p := baselinePath(root)
	data, _ := json.MarshalIndent(b, "", "  ")
	return os.WriteFile(p, data, 0644)
}
