package boundary

import "iter"

// WalkEntry is one traversal step: a validated directory plus the names of
// its validated children, partitioned into subdirectories and files.
type WalkEntry struct {
	Dir     string
	Subdirs []string
	Files   []string
}

// SafeWalk performs a depth-first traversal from start, yielding one
// WalkEntry per directory. maxDepth bounds how many levels below start are
// entered (negative means unbounded; 0 yields only start itself). The
// sequence is produced lazily, so a consumer that stops early stops all
// further filesystem access, and it is not restartable: each call walks
// afresh. An inaccessible subtree is omitted while siblings continue; no
// yielded path ever lies outside the project root. Directories reached
// through safe symlinks are visited at most once, so the walk terminates
// even on link cycles.
//
// A single traversal must be consumed by one goroutine; independent
// traversals over the same Validator may run concurrently.
func (v *Validator) SafeWalk(start string, maxDepth int) iter.Seq[WalkEntry] {
	return func(yield func(WalkEntry) bool) {
		canonStart, err := v.Validate(start)
		if err != nil {
			v.warnf("walk: cannot start at %s: %v", start, err)
			return
		}
		type frame struct {
			dir   string
			depth int
		}
		// explicit work list instead of native recursion: pathological
		// deep trees must not exhaust the call stack
		stack := []frame{{canonStart, 0}}
		visited := map[string]bool{}
		for len(stack) > 0 {
			fr := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[fr.dir] {
				continue
			}
			visited[fr.dir] = true

			children, err := v.iterdir(fr.dir)
			if err != nil {
				continue // already logged; siblings keep going
			}
			entry := WalkEntry{Dir: fr.dir}
			var sub []frame
			for _, c := range children {
				if c.isDir {
					entry.Subdirs = append(entry.Subdirs, c.name)
					sub = append(sub, frame{c.path, fr.depth + 1})
				} else {
					entry.Files = append(entry.Files, c.name)
				}
			}
			if !yield(entry) {
				return
			}
			if maxDepth >= 0 && fr.depth >= maxDepth {
				continue
			}
			// push in reverse so ReadDir's lexical order is preserved
			for i := len(sub) - 1; i >= 0; i-- {
				stack = append(stack, sub[i])
			}
		}
	}
}
