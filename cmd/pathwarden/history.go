package pathwarden

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pathwarden/pathwarden/internal/audit"
)

var (
	flagHistoryPath  string
	flagHistoryLimit int
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past scans of a project",
		RunE:  runHistory,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagHistoryPath, "path", "p", ".", "project root")
	cmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 10, "show at most this many scans")
}

func runHistory(_ *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagHistoryPath)
	records, err := audit.NewLog(abs).LoadHistory()
	if err != nil {
		return fmt.Errorf("no scan history for %s", abs)
	}
	if flagHistoryLimit > 0 && len(records) > flagHistoryLimit {
		records = records[:flagHistoryLimit]
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	for _, r := range records {
		fmt.Printf("%s  scanned %d files, skipped %d, inaccessible %d (%s)\n",
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.FilesScanned, r.SkippedCount, r.Inaccessible, r.Duration)
	}
	return nil
}
