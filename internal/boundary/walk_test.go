package boundary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// buildTree creates the canonical adversarial fixture:
//
//	proj/safe/file.txt
//	proj/.env
//	proj/.ssh/id_rsa
//	proj/evil -> <outside>/passwd
func buildTree(t *testing.T) (root, outside string) {
	t.Helper()
	parent := t.TempDir()
	root = filepath.Join(parent, "proj")
	outside = filepath.Join(parent, "elsewhere")
	for _, d := range []string{
		filepath.Join(root, "safe"),
		filepath.Join(root, ".ssh"),
		outside,
	} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	files := map[string]string{
		filepath.Join(root, "safe", "file.txt"): "hello",
		filepath.Join(root, ".env"):             "TOKEN=x",
		filepath.Join(root, ".ssh", "id_rsa"):   "key",
		filepath.Join(outside, "passwd"):        "root:x",
	}
	for p, body := range files {
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Symlink(filepath.Join(outside, "passwd"), filepath.Join(root, "evil")); err != nil {
		t.Fatal(err)
	}
	return root, outside
}

func collectWalk(v *Validator, start string, maxDepth int) (dirs []string, files []string) {
	for entry := range v.SafeWalk(start, maxDepth) {
		dirs = append(dirs, entry.Dir)
		for _, f := range entry.Files {
			files = append(files, filepath.Join(entry.Dir, f))
		}
	}
	return dirs, files
}

func TestSafeWalk_NeverEscapesRoot(t *testing.T) {
	root, _ := buildTree(t)
	v := newTestValidator(t, root)

	dirs, files := collectWalk(v, root, -1)
	for _, p := range append(append([]string{}, dirs...), files...) {
		if !v.IsWithinRoot(p) {
			t.Fatalf("walk yielded path outside root: %s", p)
		}
	}

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	joined := strings.Join(names, ",")
	for _, want := range []string{"file.txt", ".env", "id_rsa"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %s in walk output, got %s", want, joined)
		}
	}
	if strings.Contains(joined, "evil") {
		t.Fatalf("escaping symlink must be omitted, got %s", joined)
	}
}

func TestSafeWalk_MaxDepth(t *testing.T) {
	root, _ := buildTree(t)
	v := newTestValidator(t, root)

	dirs, files := collectWalk(v, root, 0)
	if len(dirs) != 1 {
		t.Fatalf("maxDepth=0 should yield only the start dir, got %v", dirs)
	}
	for _, f := range files {
		if filepath.Base(f) == "file.txt" {
			t.Fatalf("maxDepth=0 must not descend into safe/: %v", files)
		}
	}

	dirs, _ = collectWalk(v, root, 1)
	if len(dirs) != 3 { // proj, proj/.ssh, proj/safe
		t.Fatalf("maxDepth=1 should yield 3 dirs, got %v", dirs)
	}
}

func TestSafeWalk_EarlyStop(t *testing.T) {
	root, _ := buildTree(t)
	v := newTestValidator(t, root)

	seen := 0
	for range v.SafeWalk(root, -1) {
		seen++
		break
	}
	if seen != 1 {
		t.Fatalf("expected exactly one entry before stopping, got %d", seen)
	}
}

func TestSafeWalk_SymlinkLoopTerminates(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	// link inside sub pointing back at the root: safe target, but cyclic
	if err := os.Symlink(root, filepath.Join(sub, "up")); err != nil {
		t.Fatal(err)
	}
	v := newTestValidator(t, root)

	count := 0
	for range v.SafeWalk(root, -1) {
		count++
		if count > 100 {
			t.Fatal("walk did not terminate on symlink loop")
		}
	}
}

func TestSafeWalk_UnreadableSubtreeSkipped(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks are bypassed when running as root")
	}
	root := t.TempDir()
	locked := filepath.Join(root, "locked")
	open := filepath.Join(root, "open")
	for _, d := range []string{locked, open} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(locked, "hidden.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(open, "visible.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	warnings := 0
	v, err := New(root, WithWarnFunc(func(string, ...any) { warnings++ }))
	if err != nil {
		t.Fatal(err)
	}

	_, files := collectWalk(v, root, -1)
	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	joined := strings.Join(names, ",")
	if strings.Contains(joined, "hidden.txt") {
		t.Fatalf("unreadable subtree leaked entries: %s", joined)
	}
	if !strings.Contains(joined, "visible.txt") {
		t.Fatalf("sibling of unreadable subtree must still be enumerated: %s", joined)
	}
	if warnings == 0 {
		t.Fatal("expected a warning for the unreadable directory")
	}
}
