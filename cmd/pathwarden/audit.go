package pathwarden

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pathwarden/pathwarden/internal/cache"
	"github.com/pathwarden/pathwarden/internal/ignore"
	"github.com/pathwarden/pathwarden/internal/scanner"
	"github.com/pathwarden/pathwarden/internal/sensitive"
)

var (
	flagAuditPath    string
	flagAuditTop     bool
	flagAuditNewOnly bool
	flagAuditAck     bool
	flagAuditIgnore  bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "List sensitive paths under a directory without scanning content",
		RunE:  runAudit,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagAuditPath, "path", "p", ".", "directory to audit")
	cmd.Flags().BoolVar(&flagAuditTop, "top-level", false, "audit only the directory itself, not subdirectories")
	cmd.Flags().BoolVar(&flagAuditNewOnly, "new-only", false, "hide paths already acknowledged in the baseline")
	cmd.Flags().BoolVar(&flagAuditAck, "acknowledge", false, "record the listed paths in the baseline")
	cmd.Flags().BoolVar(&flagAuditIgnore, "gitignore", false, "append the listed paths to .gitignore")
}

func runAudit(_ *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagAuditPath)
	s, err := scanner.New(scanner.Config{Root: abs})
	if err != nil {
		return err
	}
	matches, err := s.Audit(!flagAuditTop)
	if err != nil {
		return err
	}

	baseline, _ := cache.LoadBaseline(s.Root())
	if flagAuditNewOnly {
		var fresh []sensitive.Match
		for _, m := range matches {
			if _, ok := baseline.Entries[m.Path]; !ok {
				fresh = append(fresh, m)
			}
		}
		matches = fresh
	}
	if matches == nil {
		matches = []sensitive.Match{}
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(matches); err != nil {
			return err
		}
	} else {
		if len(matches) == 0 {
			fmt.Println("No sensitive paths found ✅")
		}
		for _, m := range matches {
			marker := " "
			if _, ok := baseline.Entries[m.Path]; ok {
				marker = "a"
			}
			fmt.Printf("[%s] %-50s %s\n", marker, m.Path, m.Reason)
		}
	}

	if flagAuditAck && len(matches) > 0 {
		for _, m := range matches {
			baseline.Entries[m.Path] = m.Reason
		}
		if err := cache.SaveBaseline(s.Root(), baseline); err != nil {
			return fmt.Errorf("baseline error: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "acknowledged %d paths\n", len(matches))
	}

	if flagAuditIgnore {
		for _, m := range matches {
			if err := ignore.AppendGitignore(s.Root(), m.Path); err != nil {
				return fmt.Errorf("gitignore error: %w", err)
			}
		}
		_, _ = fmt.Fprintf(os.Stderr, "added %d paths to .gitignore\n", len(matches))
	}
	return nil
}
