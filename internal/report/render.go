package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/pathwarden/pathwarden/internal/types"
)

type PrintOptions struct {
	NoColor bool
	Verbose bool // include largest files and duplicate groups
}

// PrintText writes the scan report in plain aligned text.
func PrintText(w io.Writer, rep types.Report, opts PrintOptions) {
	printHeader(w, rep)

	skipped := sortedSkipped(rep.Skipped)
	if len(skipped) == 0 {
		fmt.Fprintln(w, "No sensitive files skipped ✅")
	} else {
		maxCat := 8
		for _, sf := range skipped {
			if l := len(sf.Category); l > maxCat {
				maxCat = l
			}
		}
		for _, sf := range skipped {
			cat := string(sf.Category)
			if !opts.NoColor {
				cat = colorCategory(sf.Category)
			}
			fmt.Fprintf(w, "%-*s %s  %s\n", maxCat, cat, sf.Path, sf.Reason)
		}
	}
	printStats(w, rep, opts)
	printFooter(w, rep)
}

// PrintTable writes the skipped-file section as a bordered table; the rest of
// the report renders the same as PrintText.
func PrintTable(w io.Writer, rep types.Report, opts PrintOptions) {
	printHeader(w, rep)

	skipped := sortedSkipped(rep.Skipped)
	if len(skipped) == 0 {
		fmt.Fprintln(w, "No sensitive files skipped ✅")
	} else {
		table := tablewriter.NewWriter(w)
		table.Header("Path", "Type", "Reason")
		for _, sf := range skipped {
			_ = table.Append(sf.Path, string(sf.Category), sf.Reason)
		}
		_ = table.Render()
	}
	printStats(w, rep, opts)
	printFooter(w, rep)
}

// WriteJSON writes the full report as indented JSON.
func WriteJSON(w io.Writer, rep types.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func printHeader(w io.Writer, rep types.Report) {
	fmt.Fprintf(w, "Scanned %s\n", rep.Root)
	if rep.Repo.Repo != "" {
		branch := rep.Repo.Branch
		if branch == "" {
			branch = "detached"
		}
		fmt.Fprintf(w, "Repository: %s (%s)\n", rep.Repo.Repo, branch)
	}
	fmt.Fprintln(w)
}

func printStats(w io.Writer, rep types.Report, opts PrintOptions) {
	st := rep.Stats
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Files: %d in %d directories (%s)\n", st.TotalFiles, st.TotalDirs, humanBytes(st.TotalBytes))
	if len(st.Languages) > 0 {
		fmt.Fprintf(w, "Languages: %s\n", languageLine(st.Languages))
	}
	if len(st.Technologies) > 0 {
		fmt.Fprintf(w, "Stack: %s\n", strings.Join(st.Technologies, ", "))
	}
	if opts.Verbose {
		if len(st.LargestFiles) > 0 {
			fmt.Fprintln(w, "Largest files:")
			for _, f := range st.LargestFiles {
				fmt.Fprintf(w, "  %s  %s\n", humanBytes(f.Bytes), f.Path)
			}
		}
		for _, group := range st.DuplicateGroups {
			fmt.Fprintf(w, "Identical content: %s\n", strings.Join(group, ", "))
		}
	}
}

func printFooter(w io.Writer, rep types.Report) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d sensitive files skipped\n", len(rep.Skipped))
	if rep.Inaccessible > 0 {
		fmt.Fprintf(w, "%d paths inaccessible\n", rep.Inaccessible)
	}
	if rep.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", rep.Duration.Seconds())
	}
	if rep.Truncated {
		fmt.Fprintln(w, "Scan truncated by file limit; results are partial")
	}
}

func sortedSkipped(skipped []types.SkippedFile) []types.SkippedFile {
	out := append([]types.SkippedFile(nil), skipped...)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func languageLine(langs map[string]int) string {
	type lc struct {
		name  string
		count int
	}
	pairs := make([]lc, 0, len(langs))
	for name, count := range langs {
		pairs = append(pairs, lc{name, count})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count == pairs[j].count {
			return pairs[i].name < pairs[j].name
		}
		return pairs[i].count > pairs[j].count
	})
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = fmt.Sprintf("%s (%d)", p.name, p.count)
	}
	return strings.Join(parts, ", ")
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGT"[exp])
}

func colorCategory(c types.Category) string {
	switch c {
	case types.CatDirectory:
		return "\x1b[31m" + string(c) + "\x1b[0m" // red
	case types.CatFilename:
		return "\x1b[33m" + string(c) + "\x1b[0m" // yellow
	default:
		return "\x1b[36m" + string(c) + "\x1b[0m" // cyan
	}
}
