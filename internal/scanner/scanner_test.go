package scanner

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathwarden/pathwarden/internal/sensitive"
	"github.com/pathwarden/pathwarden/internal/types"
)

// scanFixture builds a small project with clean files, sensitive files, and a
// symlink pointing outside the project.
func scanFixture(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	root := filepath.Join(base, "proj")
	outside := filepath.Join(base, "outside")

	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".ssh"), 0o755))
	require.NoError(t, os.MkdirAll(outside, 0o755))

	write := func(rel, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(root, rel), []byte(content), 0o644))
	}
	write("go.mod", "module example.com/proj\n")
	write("README.md", "# proj\n")
	write("src/main.go", "package main\n")
	write("src/util.go", "package main\n")
	write("src/copy.go", "package main\n")
	write(".env", "TOKEN=hunter2\n")
	write(".ssh/id_rsa", "PRIVATE\n")
	write("server.pem", "CERT\n")

	require.NoError(t, os.WriteFile(filepath.Join(outside, "passwd"), []byte("x"), 0o644))
	if runtime.GOOS != "windows" {
		require.NoError(t, os.Symlink(filepath.Join(outside, "passwd"), filepath.Join(root, "evil")))
	}
	return root
}

func TestScan_RoutesSensitiveFilesToSkipped(t *testing.T) {
	root := scanFixture(t)
	s, err := New(Config{Root: root, Warnf: func(string, ...any) {}})
	require.NoError(t, err)

	rep, err := s.Scan()
	require.NoError(t, err)

	skipped := map[string]types.Category{}
	for _, sf := range rep.Skipped {
		skipped[sf.Path] = sf.Category
	}
	assert.Equal(t, types.CatFilename, skipped[".env"])
	assert.Equal(t, types.CatDirectory, skipped[".ssh/id_rsa"])
	assert.Equal(t, types.CatExtension, skipped["server.pem"])

	// clean files are counted, sensitive ones are not
	assert.Equal(t, rep.FilesScanned, rep.Stats.TotalFiles)
	assert.GreaterOrEqual(t, rep.FilesScanned, 5)
	for _, sf := range rep.Skipped {
		assert.NotContains(t, []string{"go.mod", "README.md"}, sf.Path)
	}
	assert.False(t, rep.Truncated)
}

func TestScan_DetectsLanguagesAndTech(t *testing.T) {
	root := scanFixture(t)
	s, err := New(Config{Root: root, Warnf: func(string, ...any) {}})
	require.NoError(t, err)

	rep, err := s.Scan()
	require.NoError(t, err)

	assert.Equal(t, 3, rep.Stats.Languages["Go"])
	assert.Contains(t, rep.Stats.Technologies, "Go modules")
	assert.Greater(t, rep.Stats.TotalBytes, int64(0))
	assert.NotEmpty(t, rep.Stats.LargestFiles)
}

func TestScan_DuplicateGroups(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("same content"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "c.txt"), []byte("different"), 0o644))

	s, err := New(Config{Root: root, Warnf: func(string, ...any) {}})
	require.NoError(t, err)
	rep, err := s.Scan()
	require.NoError(t, err)

	require.Len(t, rep.Stats.DuplicateGroups, 1)
	assert.Equal(t, []string{"a.txt", "b.txt"}, rep.Stats.DuplicateGroups[0])
}

func TestScan_MaxFilesTruncates(t *testing.T) {
	root := scanFixture(t)
	s, err := New(Config{Root: root, MaxFiles: 2, Warnf: func(string, ...any) {}})
	require.NoError(t, err)

	rep, err := s.Scan()
	require.NoError(t, err)
	assert.True(t, rep.Truncated)
	assert.LessOrEqual(t, rep.FilesScanned+len(rep.Skipped), 2)
}

func TestScan_Globs(t *testing.T) {
	root := scanFixture(t)

	s, err := New(Config{Root: root, IncludeGlobs: "**/*.go", Warnf: func(string, ...any) {}})
	require.NoError(t, err)
	rep, err := s.Scan()
	require.NoError(t, err)
	assert.Equal(t, 3, rep.FilesScanned)
	assert.Empty(t, rep.Skipped) // .env etc. never reach the classifier

	s, err = New(Config{Root: root, ExcludeGlobs: "src/**", Warnf: func(string, ...any) {}})
	require.NoError(t, err)
	rep, err = s.Scan()
	require.NoError(t, err)
	assert.Zero(t, rep.Stats.Languages["Go"])
}

func TestScan_EscapingSymlinkIsOmitted(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks unsupported")
	}
	root := scanFixture(t)
	warned := 0
	s, err := New(Config{Root: root, Warnf: func(string, ...any) { warned++ }})
	require.NoError(t, err)

	rep, err := s.Scan()
	require.NoError(t, err)
	for _, sf := range rep.Skipped {
		assert.NotEqual(t, "evil", sf.Path)
	}
	assert.Greater(t, warned, 0)
	assert.Greater(t, rep.Inaccessible, 0)
}

func TestScan_HonorsIgnoreFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "keep.go"), []byte("package x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "drop.log"), []byte("noise"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".pathwardenignore"), []byte("*.log\n"), 0o644))

	s, err := New(Config{Root: root, Warnf: func(string, ...any) {}})
	require.NoError(t, err)
	rep, err := s.Scan()
	require.NoError(t, err)

	// keep.go plus the ignore file itself are scanned; drop.log is not
	assert.Equal(t, 1, rep.Stats.Languages["Go"])
	for _, f := range rep.Stats.LargestFiles {
		assert.NotEqual(t, "drop.log", f.Path)
	}
}

func TestNew_RejectsBadRoot(t *testing.T) {
	_, err := New(Config{Root: filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)
}

func TestScan_CustomSensitiveRules(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "vault"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "vault", "data.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.tfstate"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "backup-2024.sql"), []byte("x"), 0o644))

	s, err := New(Config{
		Root:          root,
		SensitiveDirs: []string{"vault"},
		SensitiveExts: []string{"tfstate"},
		SensitivePatterns: []sensitive.PatternRule{
			{Pattern: `^backup-.*\.sql$`, Description: "database dump"},
		},
		Warnf: func(string, ...any) {},
	})
	require.NoError(t, err)
	rep, err := s.Scan()
	require.NoError(t, err)

	require.Len(t, rep.Skipped, 3)
	cats := map[string]types.Category{}
	reasons := map[string]string{}
	for _, sf := range rep.Skipped {
		cats[sf.Path] = sf.Category
		reasons[sf.Path] = sf.Reason
	}
	assert.Equal(t, types.CatDirectory, cats["vault/data.txt"])
	assert.Equal(t, types.CatExtension, cats["app.tfstate"])
	assert.Equal(t, types.CatFilename, cats["backup-2024.sql"])
	assert.Contains(t, reasons["backup-2024.sql"], "database dump")
}

func TestScan_BadCustomPatternFails(t *testing.T) {
	_, err := New(Config{
		Root:              t.TempDir(),
		SensitivePatterns: []sensitive.PatternRule{{Pattern: `([`, Description: "broken"}},
	})
	require.Error(t, err)
}

func TestAllowedByGlobs(t *testing.T) {
	tests := []struct {
		path     string
		include  string
		exclude  string
		expected bool
	}{
		{"src/main.go", "", "", true},
		{"src/main.go", "**/*.go", "", true},
		{"src/main.go", "*.md", "", false},
		{"src/main.go", "", "src/**", false},
		{"README.md", "*.md", "", true},
		{"a/b/c.txt", "**/*.go,**/*.txt", "", true},
		{"a/b/c.txt", "**/*.txt", "**/b/**", false},
	}
	for _, tt := range tests {
		got := allowedByGlobs(tt.path, tt.include, tt.exclude)
		assert.Equal(t, tt.expected, got, "path=%s include=%q exclude=%q", tt.path, tt.include, tt.exclude)
	}
}
