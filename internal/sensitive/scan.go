package sensitive

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pathwarden/pathwarden/internal/types"
)

// Match is one sensitive path found by ScanDirectory, relative to the
// audited root.
type Match struct {
	Path     string         `json:"path"`
	Reason   string         `json:"reason"`
	Category types.Category `json:"type"`
}

// ScanDirectory audits a tree purely for sensitivity reporting, independent
// of the main enumeration path. With recursive=false only the top level is
// inspected. Unreadable entries are skipped; the reported paths are relative
// to root so directory-membership rules consider only segments inside it.
func (c *Classifier) ScanDirectory(root string, recursive bool) ([]Match, error) {
	var matches []Match

	if !recursive {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}
		for _, ent := range entries {
			if ent.IsDir() {
				continue
			}
			if v := c.Classify(ent.Name()); v.Sensitive {
				matches = append(matches, Match{Path: ent.Name(), Reason: v.Reason, Category: v.Category})
			}
		}
		return matches, nil
	}

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable subtrees, keep walking siblings
		}
		if d.IsDir() {
			return nil
		}
		rel, rerr := filepath.Rel(root, p)
		if rerr != nil {
			return nil
		}
		if v := c.Classify(rel); v.Sensitive {
			matches = append(matches, Match{Path: rel, Reason: v.Reason, Category: v.Category})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}
