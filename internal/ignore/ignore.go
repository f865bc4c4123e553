package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// FileName is the per-project ignore file read from the scan root.
const FileName = ".pathwardenignore"

// Matcher holds the parsed patterns of a .pathwardenignore file. Patterns
// follow gitignore-like semantics: blank lines and # comments are skipped, a
// trailing slash matches a whole directory subtree, and bare names match at
// any depth.
type Matcher struct {
	patterns []string
}

// Load parses the ignore file at path. A missing file is an error; callers
// usually treat it as "no matcher".
func Load(path string) (*Matcher, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := &Matcher{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasSuffix(line, "/") {
			line = line + "**"
		}
		m.patterns = append(m.patterns, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadRoot loads the ignore file from a project root, returning nil when the
// project has none.
func LoadRoot(root string) *Matcher {
	m, err := Load(filepath.Join(root, FileName))
	if err != nil {
		return nil
	}
	return m
}

// AppendGitignore ensures pattern is present in .gitignore at root. It
// creates the file if missing. Idempotent.
func AppendGitignore(root, pattern string) error {
	path := filepath.Join(root, ".gitignore")
	existing := map[string]bool{}
	if f, err := os.Open(path); err == nil {
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			existing[strings.TrimSpace(sc.Text())] = true
		}
		_ = f.Close()
	}
	if existing[pattern] {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(pattern + "\n")
	return err
}

// Match reports whether the relative, slash-separated path matches any
// ignore pattern.
func (m *Matcher) Match(relPath string) bool {
	if m == nil {
		return false
	}
	rp := strings.ReplaceAll(relPath, "\\", "/")
	for _, p := range m.patterns {
		if ok, _ := doublestar.Match(p, rp); ok {
			return true
		}
		if !strings.Contains(p, "/") {
			if ok, _ := doublestar.Match(p, filepath.Base(rp)); ok {
				return true
			}
		}
	}
	return false
}
