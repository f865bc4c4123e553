package pathwarden

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pathwarden/pathwarden/internal/boundary"
)

var (
	flagCheckRoot         string
	flagCheckFollow       bool
	flagCheckAllowMissing bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "check PATH...",
		Short: "Prove that paths resolve inside the project root",
		Long: `Check resolves each PATH (relative paths resolve against --root), follows
symlink chains, and verifies the canonical result stays inside the root.
Exit code 1 means at least one path escaped or was inaccessible.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCheck,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&flagCheckRoot, "root", ".", "project root the paths must stay inside")
	cmd.Flags().BoolVar(&flagCheckFollow, "follow", false, "treat escaping symlinks as hard violations")
	cmd.Flags().BoolVar(&flagCheckAllowMissing, "allow-missing", false, "accept paths that do not exist yet")
}

type checkResult struct {
	Path      string `json:"path"`
	Canonical string `json:"canonical,omitempty"`
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
	Kind      string `json:"kind,omitempty"`
}

func runCheck(_ *cobra.Command, args []string) error {
	absRoot, _ := filepath.Abs(flagCheckRoot)
	v, err := boundary.New(absRoot)
	if err != nil {
		return err
	}

	var vopts []boundary.ValidateOption
	if flagCheckFollow {
		vopts = append(vopts, boundary.FollowSymlinks())
	}
	if flagCheckAllowMissing {
		vopts = append(vopts, boundary.AllowMissing())
	}

	results := make([]checkResult, 0, len(args))
	failed := false
	for _, p := range args {
		canon, err := v.Validate(p, vopts...)
		r := checkResult{Path: p, Canonical: canon, OK: err == nil}
		if err != nil {
			failed = true
			r.Error = err.Error()
			switch {
			case boundary.IsBoundaryViolation(err):
				r.Kind = "boundary-violation"
			case boundary.IsInaccessible(err):
				r.Kind = "inaccessible"
			default:
				r.Kind = "invalid-root"
			}
		}
		results = append(results, r)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.OK {
				fmt.Printf("ok   %s -> %s\n", r.Path, r.Canonical)
			} else {
				fmt.Printf("FAIL %s: %s (%s)\n", r.Path, r.Error, r.Kind)
			}
		}
	}

	if failed {
		os.Exit(1)
	}
	return nil
}
