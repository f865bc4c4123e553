package boundary

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// WarnFunc receives soft-failure messages emitted during enumeration.
type WarnFunc func(format string, args ...any)

func stderrWarn(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}

// DefaultForbiddenRoots returns the system directories that may never be used
// as a scan root. Entries for the other platform are harmless: they can never
// be an ancestor of a real path on this one.
func DefaultForbiddenRoots() []string {
	return []string{
		"/etc", "/sys", "/proc", "/root", "/boot", "/dev",
		"/usr", "/bin", "/sbin", "/lib", "/var", "/run",
		`C:\Windows`, `C:\Program Files`, `C:\Program Files (x86)`,
	}
}

// Validator proves that candidate paths lie within a fixed project root.
// It is immutable after construction and safe for concurrent use: every call
// computes its result from its arguments plus read-only state.
type Validator struct {
	root      string // canonical project root
	forbidden []string
	warnf     WarnFunc
}

// Option configures a Validator at construction time.
type Option func(*Validator)

// WithForbiddenRoots replaces the default forbidden system-root list.
func WithForbiddenRoots(roots ...string) Option {
	return func(v *Validator) { v.forbidden = roots }
}

// WithWarnFunc routes soft-failure warnings somewhere other than stderr.
func WithWarnFunc(fn WarnFunc) Option {
	return func(v *Validator) {
		if fn != nil {
			v.warnf = fn
		}
	}
}

// New builds a Validator rooted at root. It fails with an invalid-root error
// when root does not exist, is not a directory, or its canonical path lies
// under a forbidden system root.
func New(root string, opts ...Option) (*Validator, error) {
	v := &Validator{forbidden: DefaultForbiddenRoots(), warnf: stderrWarn}
	for _, o := range opts {
		o(v)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, newError(KindInvalidRoot, root, err)
	}
	canon, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, newError(KindInvalidRoot, root, err)
	}
	st, err := os.Stat(canon)
	if err != nil {
		return nil, newError(KindInvalidRoot, root, err)
	}
	if !st.IsDir() {
		return nil, newError(KindInvalidRoot, canon, errors.New("not a directory"))
	}
	for _, f := range v.forbidden {
		fc := filepath.Clean(f)
		// forbidden entries may themselves be symlinks (e.g. /etc on darwin)
		if resolved, err := filepath.EvalSymlinks(fc); err == nil {
			fc = resolved
		}
		if isAncestor(fc, canon) {
			return nil, newError(KindInvalidRoot, canon, fmt.Errorf("under forbidden system root %s", f))
		}
	}
	v.root = canon
	return v, nil
}

// Root returns the canonical project root.
func (v *Validator) Root() string { return v.root }

type validateOpts struct {
	mustExist      bool
	followSymlinks bool
}

// ValidateOption adjusts a single Validate call.
type ValidateOption func(*validateOpts)

// AllowMissing accepts candidates whose canonical path does not exist yet.
func AllowMissing() ValidateOption {
	return func(o *validateOpts) { o.mustExist = false }
}

// FollowSymlinks marks the call as an explicit dereference: a symlink whose
// target escapes the root becomes a hard boundary violation instead of a
// soft, skip-worthy failure.
func FollowSymlinks() ValidateOption {
	return func(o *validateOpts) { o.followSymlinks = true }
}

// Validate resolves candidate to canonical absolute form and proves it is a
// descendant of the project root. Relative candidates are resolved against
// the root. A candidate that is itself a symbolic link is resolved through
// its whole chain and the final target is boundary-tested; see FollowSymlinks
// for the hard/soft escape policy.
func (v *Validator) Validate(candidate string, opts ...ValidateOption) (string, error) {
	o := validateOpts{mustExist: true}
	for _, fn := range opts {
		fn(&o)
	}
	abs := candidate
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(v.root, abs)
	}
	abs = filepath.Clean(abs)

	if fi, err := os.Lstat(abs); err == nil && fi.Mode()&os.ModeSymlink != 0 {
		return v.resolveSymlink(abs, o.followSymlinks)
	}

	canon, err := canonicalize(abs)
	if err != nil {
		return "", newError(KindInaccessible, candidate, err)
	}
	if !v.IsWithinRoot(canon) {
		return "", newError(KindBoundaryViolation, canon, fmt.Errorf("outside project root %s", v.root))
	}
	if o.mustExist {
		if _, err := os.Stat(canon); err != nil {
			return "", newError(KindInaccessible, canon, err)
		}
	}
	return canon, nil
}

// resolveSymlink handles a candidate that is itself a symbolic link.
// EvalSymlinks follows the entire chain in one step, so only the first hop is
// special-cased here; the final target is what gets boundary-tested.
func (v *Validator) resolveSymlink(abs string, follow bool) (string, error) {
	target, err := filepath.EvalSymlinks(abs)
	if err != nil {
		// broken link, unreadable intermediate, or link loop
		return "", newError(KindInaccessible, abs, err)
	}
	if v.IsWithinRoot(target) {
		return target, nil
	}
	if follow {
		return "", newError(KindBoundaryViolation, abs,
			fmt.Errorf("symlink target %s escapes project root %s", target, v.root))
	}
	return "", newError(KindInaccessible, abs,
		fmt.Errorf("symlink target %s is outside project root", target))
}

// IsWithinRoot is a pure containment test on canonical paths. It performs no
// resolution of its own; pass it output from Validate.
func (v *Validator) IsWithinRoot(path string) bool {
	return isAncestor(v.root, filepath.Clean(path))
}

type child struct {
	name  string // entry name within the parent directory
	path  string // canonical, validated path
	isDir bool
}

func (v *Validator) iterdir(dir string) ([]child, error) {
	canonDir, err := v.Validate(dir)
	if err != nil {
		v.warnf("skipping directory %s: %v", dir, err)
		return nil, err
	}
	entries, err := os.ReadDir(canonDir)
	if err != nil {
		v.warnf("skipping unreadable directory %s: %v", canonDir, err)
		return nil, newError(KindInaccessible, canonDir, err)
	}
	children := make([]child, 0, len(entries))
	for _, ent := range entries {
		p := filepath.Join(canonDir, ent.Name())
		cp, err := v.Validate(p)
		if err != nil {
			v.warnf("omitting entry %s: %v", p, err)
			continue
		}
		st, err := os.Stat(cp)
		if err != nil {
			// entry vanished between ReadDir and Stat
			v.warnf("omitting entry %s: %v", p, err)
			continue
		}
		children = append(children, child{name: ent.Name(), path: cp, isDir: st.IsDir()})
	}
	return children, nil
}

// SafeIterdir validates dir, then returns the canonical paths of its
// immediate children. Entries that fail validation are logged and omitted so
// one bad entry never aborts enumeration of its siblings. An unreadable
// directory yields an inaccessible error the caller should treat as a skip.
func (v *Validator) SafeIterdir(dir string) ([]string, error) {
	children, err := v.iterdir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(children))
	for i, c := range children {
		out[i] = c.path
	}
	return out, nil
}

// canonicalize resolves path to its canonical absolute form, tolerating a
// missing tail so existence can be checked separately.
func canonicalize(path string) (string, error) {
	path = filepath.Clean(path)
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}
	parent := filepath.Dir(path)
	if parent == path {
		return path, nil
	}
	cp, err := canonicalize(parent)
	if err != nil {
		return "", err
	}
	return filepath.Join(cp, filepath.Base(path)), nil
}

// isAncestor reports whether child equals parent or lies beneath it. The
// comparison is segment-aware: /etcetera is not under /etc.
func isAncestor(parent, child string) bool {
	if parent == child {
		return true
	}
	if !strings.HasSuffix(parent, string(filepath.Separator)) {
		parent += string(filepath.Separator)
	}
	return strings.HasPrefix(child, parent)
}
