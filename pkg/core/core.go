package core

import (
	"github.com/pathwarden/pathwarden/internal/boundary"
	"github.com/pathwarden/pathwarden/internal/scanner"
	"github.com/pathwarden/pathwarden/internal/sensitive"
	"github.com/pathwarden/pathwarden/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
// We can replace these with decoupled structs later without breaking callers.
type Config = scanner.Config
type Report = types.Report
type SkippedFile = types.SkippedFile
type Verdict = types.Verdict

// Scan is the stable entrypoint for other programs.
func Scan(cfg Config) (Report, error) {
	s, err := scanner.New(cfg)
	if err != nil {
		return Report{}, err
	}
	return s.Scan()
}

// Classify runs the built-in sensitivity rules against a single path string
// without touching the filesystem.
func Classify(path string) Verdict {
	c, _ := sensitive.New()
	return c.Classify(path)
}

// ValidatePath proves that candidate resolves inside root and returns its
// canonical form.
func ValidatePath(root, candidate string) (string, error) {
	v, err := boundary.New(root)
	if err != nil {
		return "", err
	}
	return v.Validate(candidate)
}

// IsBoundaryViolation reports whether err marks a path that escaped the
// project root, as opposed to one that was merely inaccessible.
func IsBoundaryViolation(err error) bool { return boundary.IsBoundaryViolation(err) }
