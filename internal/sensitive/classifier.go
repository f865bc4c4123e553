package sensitive

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pathwarden/pathwarden/internal/types"
)

// Classifier holds the compiled rule tables. Construct one per scan session
// and share it freely: it is read-only after New and safe for concurrent use.
// There is deliberately no package-level instance.
type Classifier struct {
	dirNames   map[string]bool // lowercased
	patterns   []namePattern
	extensions map[string]bool // lowercased, with leading dot
}

// Option appends caller-supplied rules to the built-in tables.
type Option func(*Classifier) error

// WithDirNames adds extra sensitive directory names.
func WithDirNames(names ...string) Option {
	return func(c *Classifier) error {
		for _, n := range names {
			if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
				c.dirNames[n] = true
			}
		}
		return nil
	}
}

// WithExtensions adds extra sensitive file extensions (with or without the
// leading dot).
func WithExtensions(exts ...string) Option {
	return func(c *Classifier) error {
		for _, e := range exts {
			e = strings.ToLower(strings.TrimSpace(e))
			if e == "" {
				continue
			}
			if !strings.HasPrefix(e, ".") {
				e = "." + e
			}
			c.extensions[e] = true
		}
		return nil
	}
}

// PatternRule is a caller-supplied filename rule.
type PatternRule struct {
	Pattern     string
	Description string
}

// WithNamePatterns appends filename rules evaluated after the built-in
// table, preserving their order.
func WithNamePatterns(rules ...PatternRule) Option {
	return func(c *Classifier) error {
		for _, r := range rules {
			if err := WithNamePattern(r.Pattern, r.Description)(c); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithNamePattern appends a filename pattern evaluated after the built-in
// table. expr is compiled case-insensitively.
func WithNamePattern(expr, description string) Option {
	return func(c *Classifier) error {
		re, err := regexp.Compile("(?i)" + expr)
		if err != nil {
			return fmt.Errorf("invalid sensitive filename pattern %q: %w", expr, err)
		}
		c.patterns = append(c.patterns, namePattern{re: re, desc: description})
		return nil
	}
}

// New builds a Classifier from the built-in tables plus any options.
func New(opts ...Option) (*Classifier, error) {
	c := &Classifier{
		dirNames:   make(map[string]bool, len(defaultDirNames)),
		patterns:   append([]namePattern(nil), defaultNamePatterns...),
		extensions: make(map[string]bool, len(defaultExtensions)),
	}
	for _, n := range defaultDirNames {
		c.dirNames[n] = true
	}
	for _, e := range defaultExtensions {
		c.extensions[e] = true
	}
	for _, o := range opts {
		if err := o(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Classify inspects a path string and returns a verdict. Rules run in fixed
// priority order: directory membership, then filename patterns, then
// extension. No file content is ever read.
func (c *Classifier) Classify(path string) types.Verdict {
	segments := strings.Split(filepath.ToSlash(path), "/")

	// 1. any parent segment in the sensitive-directory set
	for _, seg := range segments[:len(segments)-1] {
		if c.dirNames[strings.ToLower(seg)] {
			return types.Verdict{
				Sensitive: true,
				Reason:    "in sensitive directory: " + seg,
				Category:  types.CatDirectory,
			}
		}
	}

	base := segments[len(segments)-1]
	if base == "" {
		return types.Verdict{}
	}

	// 2. ordered filename-pattern table
	for _, p := range c.patterns {
		if p.re.MatchString(base) {
			return types.Verdict{
				Sensitive: true,
				Reason:    p.desc,
				Category:  types.CatFilename,
			}
		}
	}

	// 3. extension set
	if ext := strings.ToLower(filepath.Ext(base)); ext != "" && c.extensions[ext] {
		return types.Verdict{
			Sensitive: true,
			Reason:    "sensitive file extension: " + ext,
			Category:  types.CatExtension,
		}
	}

	return types.Verdict{}
}

// FilterSafe returns the subset of paths that classify as not sensitive.
// Pure string inspection; no filesystem access.
func (c *Classifier) FilterSafe(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !c.Classify(p).Sensitive {
			out = append(out, p)
		}
	}
	return out
}
