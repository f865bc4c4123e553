// Package gitmeta stamps scan reports with best-effort repository metadata.
// Every lookup failure degrades to empty fields; scanning must work on trees
// that are not repositories at all.
package gitmeta

import (
	"strings"

	git "github.com/go-git/go-git/v5"

	"github.com/pathwarden/pathwarden/internal/types"
)

// Lookup returns (repo, commit, branch) for the given root, best-effort.
func Lookup(root string) types.RepoMeta {
	var meta types.RepoMeta
	repo, err := git.PlainOpen(root)
	if err != nil {
		return meta
	}
	if head, err := repo.Head(); err == nil {
		meta.Commit = head.Hash().String()
		if head.Name().IsBranch() {
			meta.Branch = head.Name().Short()
		}
	}
	if remote, err := repo.Remote("origin"); err == nil {
		urls := remote.Config().URLs
		if len(urls) > 0 {
			meta.Repo = shortenRemote(urls[0])
		}
	}
	return meta
}

// shortenRemote reduces a remote URL to owner/name when possible.
func shortenRemote(url string) string {
	s := strings.TrimSuffix(strings.TrimSpace(url), ".git")
	if i := strings.Index(s, "github.com/"); i >= 0 {
		return s[i+len("github.com/"):]
	}
	// scp-like syntax: git@host:owner/name (not a scheme separator)
	if i := strings.LastIndex(s, ":"); i >= 0 && strings.Contains(s[i+1:], "/") && !strings.HasPrefix(s[i+1:], "//") {
		return s[i+1:]
	}
	return s
}
