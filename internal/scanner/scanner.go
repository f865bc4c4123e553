package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	doublestar "github.com/bmatcuk/doublestar/v4"

	"github.com/pathwarden/pathwarden/internal/boundary"
	"github.com/pathwarden/pathwarden/internal/gitmeta"
	"github.com/pathwarden/pathwarden/internal/ignore"
	"github.com/pathwarden/pathwarden/internal/sensitive"
	"github.com/pathwarden/pathwarden/internal/types"
)

// Config controls scanning behavior including scope, limits, and filters.
type Config struct {
	Root              string
	MaxFiles          int   // stop pulling from the walk after this many files (0 = unlimited)
	MaxDepth          int   // directory levels below the root to enter (0 = unbounded)
	MaxBytes          int64 // per-file read cap for duplicate hashing (0 = 4 MiB)
	IncludeGlobs      string
	ExcludeGlobs      string
	SensitiveDirs     []string // appended to the classifier's built-in directory names
	SensitiveExts     []string // appended to the classifier's built-in extensions
	SensitivePatterns []sensitive.PatternRule
	ForbiddenRoots    []string // replaces the validator's default list when non-empty
	Progress          func()
	Warnf             func(format string, args ...any)
}

const defaultMaxHashBytes = 4 << 20

// Scanner owns one boundary validator and one classifier for a scan session.
// The validator gates every filesystem access; the classifier routes each
// file to statistics or to the skipped report before any content is touched.
type Scanner struct {
	cfg          Config
	validator    *boundary.Validator
	classifier   *sensitive.Classifier
	inaccessible int // soft failures surfaced by the validator's warn hook
}

// New validates the configuration and constructs the session. A bad root
// (missing, not a directory, or under a forbidden system root) fails here,
// before any traversal begins.
func New(cfg Config) (*Scanner, error) {
	warnf := cfg.Warnf
	if warnf == nil {
		warnf = func(format string, args ...any) {
			_, _ = fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
		}
	}
	s := &Scanner{cfg: cfg}

	vopts := []boundary.Option{
		boundary.WithWarnFunc(func(format string, args ...any) {
			s.inaccessible++
			warnf(format, args...)
		}),
	}
	if len(cfg.ForbiddenRoots) > 0 {
		vopts = append(vopts, boundary.WithForbiddenRoots(cfg.ForbiddenRoots...))
	}
	v, err := boundary.New(cfg.Root, vopts...)
	if err != nil {
		return nil, err
	}

	copts := []sensitive.Option{
		sensitive.WithDirNames(cfg.SensitiveDirs...),
		sensitive.WithExtensions(cfg.SensitiveExts...),
		sensitive.WithNamePatterns(cfg.SensitivePatterns...),
	}
	c, err := sensitive.New(copts...)
	if err != nil {
		return nil, err
	}

	s.validator = v
	s.classifier = c
	return s, nil
}

// Root returns the canonical root the session is confined to.
func (s *Scanner) Root() string { return s.validator.Root() }

// Scan traverses the project, classifies every yielded filename, and builds
// the report. Sensitive files are recorded as skipped and never opened;
// everything else feeds statistics. The walk stops as soon as MaxFiles is
// reached, and no further filesystem access happens after that.
func (s *Scanner) Scan() (types.Report, error) {
	started := time.Now()
	s.inaccessible = 0
	root := s.validator.Root()

	maxBytes := s.cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxHashBytes
	}
	depth := s.cfg.MaxDepth
	if depth <= 0 {
		depth = -1
	}

	rep := types.Report{
		Root:    root,
		Repo:    gitmeta.Lookup(root),
		Skipped: []types.SkippedFile{},
	}
	agg := newAggregator(maxBytes)
	ignores := ignore.LoadRoot(root)
	seen := 0

walk:
	for entry := range s.validator.SafeWalk(root, depth) {
		rep.Stats.TotalDirs++
		for _, name := range entry.Files {
			full := filepath.Join(entry.Dir, name)
			rel, err := filepath.Rel(root, full)
			if err != nil {
				continue
			}
			rel = filepath.ToSlash(rel)
			if ignores.Match(rel) {
				continue
			}
			if !allowedByGlobs(rel, s.cfg.IncludeGlobs, s.cfg.ExcludeGlobs) {
				continue
			}

			verdict := s.classifier.Classify(rel)
			if verdict.Sensitive {
				rep.Skipped = append(rep.Skipped, types.SkippedFile{
					Path:     rel,
					Reason:   verdict.Reason,
					Category: verdict.Category,
				})
			} else {
				agg.add(full, rel)
				rep.FilesScanned++
			}
			if s.cfg.Progress != nil {
				s.cfg.Progress()
			}
			seen++
			if s.cfg.MaxFiles > 0 && seen >= s.cfg.MaxFiles {
				rep.Truncated = true
				break walk
			}
		}
	}

	dirs := rep.Stats.TotalDirs
	rep.Stats = agg.finalize()
	rep.Stats.TotalDirs = dirs
	rep.Inaccessible = s.inaccessible
	rep.Duration = time.Since(started)
	return rep, nil
}

// Audit reports every sensitive path under the root without touching
// statistics; it backs the audit command.
func (s *Scanner) Audit(recursive bool) ([]sensitive.Match, error) {
	return s.classifier.ScanDirectory(s.validator.Root(), recursive)
}

// allowedByGlobs returns true if relPath passes the include/exclude globs.
// Comma-separated include globs act as a positive filter when present;
// exclude globs are subtracted last. Matching uses forward-slash semantics.
func allowedByGlobs(relPath, includeGlobs, excludeGlobs string) bool {
	rp := strings.ReplaceAll(relPath, "\\", "/")
	includes := parseGlobsList(includeGlobs)
	excludes := parseGlobsList(excludeGlobs)
	if len(includes) > 0 && !matchAnyGlob(rp, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p, trimGlobPrefix(p))
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
