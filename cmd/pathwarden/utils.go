package pathwarden

import (
	"runtime/debug"
	"strings"

	semver3 "github.com/blang/semver"
	semver "github.com/blang/semver/v4"
	"github.com/rhysd/go-github-selfupdate/selfupdate"

	"github.com/pathwarden/pathwarden/internal/config"
	"github.com/pathwarden/pathwarden/internal/sensitive"
)

func selfUpdate() error {
	v := version
	// Use build info if tag overridden at build-time
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(v) == 0 {
				v = s.Value
			}
		}
	}
	// parse semantic version (strip leading v)
	ver, err := semver.ParseTolerant(v)
	if err != nil {
		ver = semver.MustParse("0.0.0")
	}
	// Update from GitHub Releases: pathwarden/pathwarden
	latest, err := selfupdate.UpdateSelf(semver3.MustParse(ver.String()), "pathwarden/pathwarden")
	if err != nil {
		return err
	}
	_ = latest
	return nil
}

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickInt(cli int, local, global *int) int {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickInt64(cli int64, local, global *int64) int64 {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}

func pickStrings(cli, local, global []string) []string {
	if len(cli) > 0 {
		return cli
	}
	if len(local) > 0 {
		return local
	}
	return global
}

// parsePatternFlags splits "regexp=description" flag values. A value with
// no "=" becomes a rule with an empty description.
func parsePatternFlags(raw []string) []sensitive.PatternRule {
	rules := make([]sensitive.PatternRule, 0, len(raw))
	for _, r := range raw {
		expr, desc, _ := strings.Cut(r, "=")
		if expr == "" {
			continue
		}
		rules = append(rules, sensitive.PatternRule{Pattern: expr, Description: desc})
	}
	return rules
}

func patternRules(in []config.PatternRule) []sensitive.PatternRule {
	if len(in) == 0 {
		return nil
	}
	out := make([]sensitive.PatternRule, 0, len(in))
	for _, r := range in {
		out = append(out, sensitive.PatternRule{Pattern: r.Pattern, Description: r.Description})
	}
	return out
}
