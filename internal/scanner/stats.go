package scanner

import (
	"os"
	"sort"
	"strings"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/pathwarden/pathwarden/internal/types"
)

const topLargest = 5

var languageByExt = map[string]string{
	".go":    "Go",
	".py":    "Python",
	".js":    "JavaScript",
	".jsx":   "JavaScript",
	".ts":    "TypeScript",
	".tsx":   "TypeScript",
	".rb":    "Ruby",
	".rs":    "Rust",
	".java":  "Java",
	".kt":    "Kotlin",
	".c":     "C",
	".h":     "C",
	".cc":    "C++",
	".cpp":   "C++",
	".hpp":   "C++",
	".cs":    "C#",
	".php":   "PHP",
	".swift": "Swift",
	".scala": "Scala",
	".sh":    "Shell",
	".pl":    "Perl",
	".lua":   "Lua",
	".ex":    "Elixir",
	".exs":   "Elixir",
	".erl":   "Erlang",
	".hs":    "Haskell",
	".sql":   "SQL",
	".html":  "HTML",
	".css":   "CSS",
	".scss":  "CSS",
	".md":    "Markdown",
	".yml":   "YAML",
	".yaml":  "YAML",
	".json":  "JSON",
	".toml":  "TOML",
	".proto": "Protocol Buffers",
	".tf":    "Terraform",
}

// techMarkers maps well-known filenames (lowercased) to the stack they imply.
var techMarkers = map[string]string{
	"go.mod":             "Go modules",
	"package.json":       "Node.js",
	"yarn.lock":          "Yarn",
	"pnpm-lock.yaml":     "pnpm",
	"tsconfig.json":      "TypeScript",
	"cargo.toml":         "Rust (Cargo)",
	"requirements.txt":   "Python (pip)",
	"pyproject.toml":     "Python",
	"pipfile":            "Python (Pipenv)",
	"gemfile":            "Ruby (Bundler)",
	"pom.xml":            "Java (Maven)",
	"build.gradle":       "Java (Gradle)",
	"build.gradle.kts":   "Kotlin (Gradle)",
	"composer.json":      "PHP (Composer)",
	"mix.exs":            "Elixir (Mix)",
	"dockerfile":         "Docker",
	"docker-compose.yml": "Docker Compose",
	"makefile":           "Make",
	"cmakelists.txt":     "CMake",
	".gitlab-ci.yml":     "GitLab CI",
	"jenkinsfile":        "Jenkins",
}

// aggregator accumulates statistics for non-sensitive files. It lives for a
// single Scan call and is never shared between goroutines.
type aggregator struct {
	maxHashBytes int64
	totalFiles   int
	totalBytes   int64
	languages    map[string]int
	techs        map[string]bool
	largest      []types.FileSize
	hashes       map[string][]string // content hash -> relative paths
}

func newAggregator(maxHashBytes int64) *aggregator {
	return &aggregator{
		maxHashBytes: maxHashBytes,
		languages:    map[string]int{},
		techs:        map[string]bool{},
		hashes:       map[string][]string{},
	}
}

// add records one validated, non-sensitive file. fullPath is canonical,
// relPath is root-relative with forward slashes.
func (a *aggregator) add(fullPath, relPath string) {
	a.totalFiles++

	base := strings.ToLower(lastSegment(relPath))
	if tech, ok := techMarkers[base]; ok {
		a.techs[tech] = true
	}
	if ext := extOf(base); ext != "" {
		if lang, ok := languageByExt[ext]; ok {
			a.languages[lang]++
		}
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return // vanished mid-scan; size-dependent stats just omit it
	}
	size := info.Size()
	a.totalBytes += size
	a.recordLargest(relPath, size)

	if size > 0 && size <= a.maxHashBytes {
		if data, err := os.ReadFile(fullPath); err == nil {
			h := contentHash(data)
			a.hashes[h] = append(a.hashes[h], relPath)
		}
	}
}

func (a *aggregator) recordLargest(relPath string, size int64) {
	a.largest = append(a.largest, types.FileSize{Path: relPath, Bytes: size})
	sort.Slice(a.largest, func(i, j int) bool {
		if a.largest[i].Bytes == a.largest[j].Bytes {
			return a.largest[i].Path < a.largest[j].Path
		}
		return a.largest[i].Bytes > a.largest[j].Bytes
	})
	if len(a.largest) > topLargest {
		a.largest = a.largest[:topLargest]
	}
}

func (a *aggregator) finalize() types.TreeStats {
	stats := types.TreeStats{
		TotalFiles:   a.totalFiles,
		TotalBytes:   a.totalBytes,
		Languages:    a.languages,
		LargestFiles: a.largest,
	}
	for tech := range a.techs {
		stats.Technologies = append(stats.Technologies, tech)
	}
	sort.Strings(stats.Technologies)

	var groups [][]string
	for _, paths := range a.hashes {
		if len(paths) > 1 {
			sort.Strings(paths)
			groups = append(groups, paths)
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i][0] < groups[j][0] })
	stats.DuplicateGroups = groups
	return stats
}

func contentHash(b []byte) string {
	sum := xxhash.Sum64(b)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}

func lastSegment(rel string) string {
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		return rel[i+1:]
	}
	return rel
}

func extOf(base string) string {
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		return base[i:]
	}
	return ""
}
