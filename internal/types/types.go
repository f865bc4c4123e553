package types

import "time"

// Category says which classification rule flagged a path. The classifier
// evaluates rules in a fixed order (directory, then filename pattern, then
// extension), so the category also tells you which rule won.
type Category string

const (
	CatDirectory Category = "directory"
	CatFilename  Category = "filename-pattern"
	CatExtension Category = "extension"
)

// Verdict is the result of classifying a single path. Reason is empty when
// the path is not sensitive.
type Verdict struct {
	Sensitive bool     `json:"sensitive"`
	Reason    string   `json:"reason,omitempty"`
	Category  Category `json:"category,omitempty"`
}

// SkippedFile records a path (relative to the scan root) that was excluded
// from statistics and never opened, along with why.
type SkippedFile struct {
	Path     string   `json:"path"`
	Reason   string   `json:"reason"`
	Category Category `json:"category"`
}

// RepoMeta is best-effort git metadata for the scanned root. All fields may
// be empty when the root is not a repository.
type RepoMeta struct {
	Repo   string `json:"repo,omitempty"`
	Commit string `json:"commit,omitempty"`
	Branch string `json:"branch,omitempty"`
}

// FileSize pairs a relative path with its size in bytes.
type FileSize struct {
	Path  string `json:"path"`
	Bytes int64  `json:"bytes"`
}

// TreeStats aggregates what the scanner learned about non-sensitive files.
type TreeStats struct {
	TotalFiles      int            `json:"total_files"`
	TotalDirs       int            `json:"total_dirs"`
	TotalBytes      int64          `json:"total_bytes"`
	Languages       map[string]int `json:"languages,omitempty"`    // language -> file count
	Technologies    []string       `json:"technologies,omitempty"` // detected from marker files
	LargestFiles    []FileSize     `json:"largest_files,omitempty"`
	DuplicateGroups [][]string     `json:"duplicate_groups,omitempty"` // paths with identical content
}

// Report is the full output of one project scan.
type Report struct {
	Root         string        `json:"root"`
	Repo         RepoMeta      `json:"repo,omitempty"`
	Stats        TreeStats     `json:"stats"`
	Skipped      []SkippedFile `json:"skipped"`
	Inaccessible int           `json:"inaccessible"` // paths omitted due to soft failures
	FilesScanned int           `json:"files_scanned"`
	Duration     time.Duration `json:"duration"`
	Truncated    bool          `json:"truncated"` // true when the file limit stopped the walk early
}
