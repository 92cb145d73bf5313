package textview

import (
	"sort"

	"github.com/iw2rmb/textkit/layout"
)

type reuseOp struct {
	handle   Handle
	fragment *layout.Fragment
}

// plan is the outcome of one reconciliation: what to create, what to keep
// and what to drop.
type plan struct {
	create []*layout.Fragment
	reuse  []reuseOp
	remove []Handle
}

func (p plan) isNoop() bool {
	return len(p.create) == 0 && len(p.remove) == 0
}

// reconcile diffs the materialized set against the fragments that are now
// visible. It has no side effects. Fragments keep their document order in
// create and reuse; removals are ordered by slot for determinism.
func reconcile(prev map[layout.FragmentID]Handle, frags []*layout.Fragment) plan {
	var p plan
	seen := make(map[layout.FragmentID]bool, len(frags))
	for _, f := range frags {
		id := f.ID()
		if seen[id] {
			continue
		}
		seen[id] = true
		if h, ok := prev[id]; ok {
			p.reuse = append(p.reuse, reuseOp{handle: h, fragment: f})
			continue
		}
		p.create = append(p.create, f)
	}
	for id, h := range prev {
		if !seen[id] {
			p.remove = append(p.remove, h)
		}
	}
	sort.Slice(p.remove, func(i, j int) bool {
		return p.remove[i].Index < p.remove[j].Index
	})
	return p
}
