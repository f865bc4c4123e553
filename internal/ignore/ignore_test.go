package ignore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIgnoreMatch(t *testing.T) {
	dir := t.TempDir()
	ig := filepath.Join(dir, FileName)
	content := "node_modules/\n*.tmp\n# comment\n\nbuild.log\n"
	if err := os.WriteFile(ig, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(ig)
	if err != nil {
		t.Fatal(err)
	}
	cases := map[string]bool{
		"node_modules/pkg/index.js": true,
		"out/cache.tmp":             true,
		"build.log":                 true,
		"src/app.go":                false,
	}
	for p, want := range cases {
		if got := m.Match(p); got != want {
			t.Fatalf("Match(%q)=%v want %v", p, got, want)
		}
	}
}

func TestAppendGitignore_Idempotent(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 2; i++ {
		if err := AppendGitignore(dir, ".env"); err != nil {
			t.Fatalf("AppendGitignore: %v", err)
		}
	}
	b, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != ".env\n" {
		t.Fatalf("expected single entry, got %q", string(b))
	}
}

func TestLoadRoot_MissingFile(t *testing.T) {
	if m := LoadRoot(t.TempDir()); m != nil {
		t.Fatalf("expected nil matcher for missing file, got %+v", m)
	}
	// nil matcher never matches
	var m *Matcher
	if m.Match("anything") {
		t.Fatal("nil matcher must not match")
	}
}
