package pathwarden

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pathwarden/pathwarden/internal/cache"
	"github.com/pathwarden/pathwarden/internal/scanner"
	"github.com/pathwarden/pathwarden/internal/tui"
	"github.com/pathwarden/pathwarden/internal/types"
)

var flagBrowsePath string

func init() {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the last scan report interactively",
		Long:  "Browse opens the cached report from the last scan in a TUI. Press r inside to rescan.",
		RunE:  runBrowse,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagBrowsePath, "path", "p", ".", "project root")
}

func runBrowse(_ *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagBrowsePath)

	rescan := func() (types.Report, error) {
		s, err := scanner.New(scanner.Config{Root: abs})
		if err != nil {
			return types.Report{}, err
		}
		rep, err := s.Scan()
		if err != nil {
			return types.Report{}, err
		}
		_ = cache.SaveReport(s.Root(), rep)
		return rep, nil
	}

	rep, err := cache.LoadReport(abs)
	if err != nil {
		// no cached report yet, scan first
		fmt.Println("No cached report; scanning...")
		rep, err = rescan()
		if err != nil {
			return err
		}
	}
	return tui.Run(rep, rescan)
}
