package pathwarden

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pathwarden/pathwarden/internal/audit"
	"github.com/pathwarden/pathwarden/internal/cache"
	"github.com/pathwarden/pathwarden/internal/config"
	"github.com/pathwarden/pathwarden/internal/report"
	"github.com/pathwarden/pathwarden/internal/scanner"
	"github.com/pathwarden/pathwarden/internal/tui"
	"github.com/pathwarden/pathwarden/internal/types"
	"github.com/pathwarden/pathwarden/internal/update"
)

var (
	flagPath          string
	flagInclude       string
	flagExclude       string
	flagMaxFiles      int
	flagMaxDepth      int
	flagMaxBytes      int64
	flagSensitiveDirs []string
	flagSensitiveExts []string
	flagSensitivePats []string
	flagText          bool
	flagTable         bool
	flagVerbose       bool
	flagTUI           bool
	flagNoSave        bool
	flagFailSensitive bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a project tree and report sensitive paths",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "project root to scan")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().IntVar(&flagMaxFiles, "max-files", 0, "stop after this many files (0=unlimited)")
	cmd.Flags().IntVar(&flagMaxDepth, "max-depth", 0, "directory levels below the root to enter (0=unbounded)")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 0, "per-file cap for duplicate hashing (0=4MiB)")
	cmd.Flags().StringSliceVar(&flagSensitiveDirs, "sensitive-dir", nil, "extra sensitive directory names")
	cmd.Flags().StringSliceVar(&flagSensitiveExts, "sensitive-ext", nil, "extra sensitive file extensions")
	cmd.Flags().StringSliceVar(&flagSensitivePats, "sensitive-pattern", nil, "extra filename rules as regexp=description")
	cmd.Flags().BoolVar(&flagText, "text", false, "output in plain text columnar format")
	cmd.Flags().BoolVar(&flagTable, "table", false, "output in table format with borders (now default)")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "include largest files and duplicate groups")
	cmd.Flags().BoolVar(&flagTUI, "tui", false, "browse the report interactively")
	cmd.Flags().BoolVar(&flagNoSave, "no-save", false, "do not cache the report for later commands")
	cmd.Flags().BoolVar(&flagFailSensitive, "fail-on-sensitive", false, "exit 1 when sensitive paths were found")
}

func runScan(_ *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagPath)
	// Load configs: CLI > local > global
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}

	cfg := scanner.Config{
		Root:           abs,
		IncludeGlobs:   pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:   pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxFiles:       pickInt(flagMaxFiles, lcfg.MaxFiles, gcfg.MaxFiles),
		MaxDepth:       pickInt(flagMaxDepth, lcfg.MaxDepth, gcfg.MaxDepth),
		MaxBytes:       pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		SensitiveDirs:  pickStrings(flagSensitiveDirs, lcfg.SensitiveDirs, gcfg.SensitiveDirs),
		SensitiveExts:  pickStrings(flagSensitiveExts, lcfg.SensitiveExts, gcfg.SensitiveExts),
		ForbiddenRoots: pickStrings(nil, lcfg.ForbiddenRoots, gcfg.ForbiddenRoots),
	}
	switch {
	case len(flagSensitivePats) > 0:
		cfg.SensitivePatterns = parsePatternFlags(flagSensitivePats)
	case len(lcfg.SensitivePatterns) > 0:
		cfg.SensitivePatterns = patternRules(lcfg.SensitivePatterns)
	default:
		cfg.SensitivePatterns = patternRules(gcfg.SensitivePatterns)
	}

	// Friendly banner before scanning
	if !flagJSON && !flagSARIF {
		if !flagNoUpdateCheck {
			if latest, newer, _ := update.Check(version, false); newer && latest != "" {
				_, _ = fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'pathwarden update' to upgrade\n", latest)
			}
		}
		if flagSelfUpdate {
			if err := selfUpdate(); err == nil {
				_, _ = fmt.Fprintln(os.Stderr, "updated to latest; re-run command")
				return nil
			}
		}
		_, _ = fmt.Fprintf(os.Stderr, "Scanning %s...\n", abs)
	}

	s, err := scanner.New(cfg)
	if err != nil {
		return err
	}
	rep, err := s.Scan()
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}
	if rep.Skipped == nil {
		rep.Skipped = []types.SkippedFile{}
	} // no `null` in JSON

	if !flagNoSave {
		if err := cache.SaveReport(s.Root(), rep); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, "cache warning:", err)
		}
		if err := audit.NewLog(s.Root()).LogScan(audit.CreateScanRecord(rep)); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, "audit log warning:", err)
		}
	}

	noColor := pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor)
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		noColor = true
	}
	opts := report.PrintOptions{NoColor: noColor, Verbose: flagVerbose}
	switch {
	case flagSARIF:
		if err := report.WriteSARIF(os.Stdout, rep.Skipped); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
	case flagJSON:
		if err := report.WriteJSON(os.Stdout, rep); err != nil {
			return err
		}
	case flagTUI:
		return tui.Run(rep, func() (types.Report, error) {
			s2, err := scanner.New(cfg)
			if err != nil {
				return types.Report{}, err
			}
			return s2.Scan()
		})
	case flagText:
		report.PrintText(os.Stdout, rep, opts)
	default:
		// Default to table format now
		report.PrintTable(os.Stdout, rep, opts)
	}

	if flagFailSensitive && len(rep.Skipped) > 0 {
		os.Exit(1)
	}
	return nil
}
