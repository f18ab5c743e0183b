package tree

import (
	"container/heap"
	"sort"
	"time"

	"github.com/marcus/arbor/internal/fuzzy"
	"github.com/marcus/arbor/internal/nav"
)

const (
	// With a pattern the gather over-collects so the trim step can keep the
	// best lines, but never more than this multiple of the row budget.
	overCollectFactor = 20
	// Once the budget is reached, keep gathering at most this long before
	// trimming whatever was found.
	gatherPatience = 400 * time.Millisecond
)

// BuildParams configures one derivation of the displayed tree.
type BuildParams struct {
	Pattern fuzzy.Pattern
	Flags   nav.Flags
	// RespectIgnore is Flags.Gitignore resolved against the current root:
	// yes => true, no => false, auto => whether the root is in a repository.
	RespectIgnore bool
	MaxRows       int
}

// BuildResult is the displayable outcome of a build.
type BuildResult struct {
	Order     []NodeID // tree order, len <= MaxRows
	Selection NodeID   // InvalidID when Order is empty
	NbIgnored int      // entries excluded by gitignore rules during this build
}

// buildInfo is per-node bookkeeping for a single build. The arena itself is
// never mutated by a build, so rebuilds on every keystroke only touch these.
type buildInfo struct {
	hasMatch  bool
	score     int
	children  []NodeID // filtered children, in display order
	nextChild int
	childRank int // index within the parent's filtered children
	kept      int // matching children still kept, maintained during trim
}

type builder struct {
	t         *Tree
	p         BuildParams
	info      []buildInfo
	nbIgnored int
	anyMatch  bool // some non-root entry matched the pattern, pre-trim
}

// Build derives the displayed order and auto-selection from the arena under
// the given pattern and flags. It reads only cached listings plus the newly
// reached directory levels, so it is cheap enough to run per keystroke.
func Build(t *Tree, p BuildParams) BuildResult {
	if p.MaxRows < 1 {
		p.MaxRows = 1
	}
	b := &builder{t: t, p: p}
	out := b.gather()
	b.trim(out)
	order := b.emit(out)

	// A pattern that matches nothing is a normal state: nothing to show.
	if !p.Pattern.IsEmpty() && !b.anyMatch {
		return BuildResult{Selection: InvalidID, NbIgnored: b.nbIgnored}
	}
	return BuildResult{
		Order:     order,
		Selection: b.selection(order),
		NbIgnored: b.nbIgnored,
	}
}

func (b *builder) at(id NodeID) *buildInfo {
	for NodeID(len(b.info)) <= id {
		b.info = append(b.info, buildInfo{})
	}
	return &b.info[id]
}

// gather explores the arena breadth-first, one child at a time per open
// directory, collecting candidate lines until the budget (and, with a
// pattern, the over-collection allowance) is spent.
func (b *builder) gather() []NodeID {
	root := b.t.Root()
	start := time.Now()

	out := []NodeID{root}
	b.at(root).hasMatch = true
	b.loadChildren(root)

	nbOK := 1
	openDirs := []NodeID{root}
	var nextLevel []NodeID

	for {
		if !b.p.Pattern.IsEmpty() {
			if nbOK > overCollectFactor*b.p.MaxRows {
				break
			}
			if nbOK >= b.p.MaxRows && time.Since(start) > gatherPatience {
				break
			}
		} else if nbOK >= b.p.MaxRows {
			break
		}

		if len(openDirs) > 0 {
			dir := openDirs[0]
			openDirs = openDirs[1:]
			child, ok := b.nextChild(dir)
			if !ok {
				continue
			}
			openDirs = append(openDirs, dir)
			if b.at(child).hasMatch {
				nbOK++
			}
			if b.t.At(child).IsDir() {
				nextLevel = append(nextLevel, child)
			}
			out = append(out, child)
			continue
		}

		// This depth is exhausted; descend a level.
		if len(nextLevel) == 0 {
			break
		}
		for _, dir := range nextLevel {
			if b.loadChildren(dir) {
				// A match below makes the whole ancestor chain worth
				// keeping.
				for id := dir; ; id = b.t.At(id).Parent {
					if !b.at(id).hasMatch {
						b.at(id).hasMatch = true
						nbOK++
					}
					if id == root {
						break
					}
				}
			}
			openDirs = append(openDirs, dir)
		}
		nextLevel = nil
	}
	return out
}

// loadChildren lists a directory (cached after the first call), applies the
// hidden/gitignore/dirs-only/pattern filters, and records the surviving
// children. Reports whether any child matched the pattern directly.
func (b *builder) loadChildren(id NodeID) bool {
	hasChildMatch := false
	filtered := make([]NodeID, 0, 8)

	for _, childID := range b.t.ListChildren(id) {
		child := b.t.At(childID)
		if !b.p.Flags.ShowHidden && isHidden(child.Name) {
			continue
		}
		if b.p.RespectIgnore && child.Ignored {
			b.nbIgnored++
			continue
		}
		if b.p.Flags.OnlyDirs && !child.IsDir() {
			continue
		}

		info := b.at(childID)
		info.hasMatch = false
		info.score = 0
		info.nextChild = 0
		if m, ok := b.p.Pattern.Match(child.Name); ok {
			info.hasMatch = true
			info.score = m.Score
			if !b.p.Pattern.IsEmpty() {
				hasChildMatch = true
				b.anyMatch = true
			}
		} else if !child.IsDir() {
			// Non-matching files are dropped; non-matching directories
			// stay traversable in case a descendant matches.
			continue
		}
		info.childRank = len(filtered)
		filtered = append(filtered, childID)
	}

	if hasChildMatch {
		b.at(id).hasMatch = true
	}
	b.at(id).children = filtered
	return hasChildMatch
}

func (b *builder) nextChild(dir NodeID) (NodeID, bool) {
	info := b.at(dir)
	if info.nextChild >= len(info.children) {
		return InvalidID, false
	}
	child := info.children[info.nextChild]
	info.nextChild++
	return child, true
}

// trim enforces the row budget: worst-scoring childless lines go first, and
// a directory is only removable once all its kept children are gone.
func (b *builder) trim(out []NodeID) {
	root := b.t.Root()

	count := 0
	for _, id := range out {
		if b.at(id).hasMatch {
			count++
			if id != root {
				b.at(b.t.At(id).Parent).kept++
			}
		}
	}

	rq := &removeQueue{}
	for _, id := range out {
		if id == root {
			continue
		}
		info := b.at(id)
		if info.hasMatch && info.kept == 0 {
			heap.Push(rq, removable{id: id, score: info.score, depth: b.t.At(id).Depth})
		}
	}

	for count > b.p.MaxRows && rq.Len() > 0 {
		victim := heap.Pop(rq).(removable)
		b.at(victim.id).hasMatch = false
		count--

		parent := b.t.At(victim.id).Parent
		if parent == InvalidID || parent == root {
			continue
		}
		pinfo := b.at(parent)
		pinfo.kept--
		if pinfo.kept == 0 && pinfo.hasMatch {
			heap.Push(rq, removable{id: parent, score: pinfo.score, depth: b.t.At(parent).Depth})
		}
	}
}

// emit orders the surviving lines in tree order: each node follows its
// parent, siblings keep the directories-first listing order.
func (b *builder) emit(out []NodeID) []NodeID {
	kept := out[:0]
	for _, id := range out {
		if b.at(id).hasMatch {
			kept = append(kept, id)
		}
	}

	ranks := make(map[NodeID][]int, len(kept))
	for _, id := range kept {
		ranks[id] = b.rankChain(id)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return lessRanks(ranks[kept[i]], ranks[kept[j]])
	})
	return kept
}

func (b *builder) rankChain(id NodeID) []int {
	var chain []int
	for id != b.t.Root() {
		chain = append(chain, b.at(id).childRank)
		id = b.t.At(id).Parent
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

func lessRanks(a, b []int) bool {
	for i := range a {
		if i >= len(b) {
			return false // b is an ancestor of a
		}
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// selection picks the best-scoring line; ties go to the shallowest node and
// then to lexical path order. With an empty pattern every score is zero and
// the root wins.
func (b *builder) selection(order []NodeID) NodeID {
	best := InvalidID
	for _, id := range order {
		if best == InvalidID {
			best = id
			continue
		}
		bi, cur := b.at(best), b.at(id)
		bn, cn := b.t.At(best), b.t.At(id)
		switch {
		case cur.score > bi.score:
			best = id
		case cur.score == bi.score && cn.Depth < bn.Depth:
			best = id
		case cur.score == bi.score && cn.Depth == bn.Depth && cn.Path < bn.Path:
			best = id
		}
	}
	return best
}

func isHidden(name string) bool {
	return len(name) > 1 && name[0] == '.'
}

// removable orders trim candidates worst-first; deeper lines break ties so
// shallow context survives longer.
type removable struct {
	id    NodeID
	score int
	depth int
}

type removeQueue []removable

func (q removeQueue) Len() int { return len(q) }
func (q removeQueue) Less(i, j int) bool {
	if q[i].score != q[j].score {
		return q[i].score < q[j].score
	}
	if q[i].depth != q[j].depth {
		return q[i].depth > q[j].depth
	}
	return q[i].id > q[j].id
}
func (q removeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *removeQueue) Push(x any)   { *q = append(*q, x.(removable)) }
func (q *removeQueue) Pop() any {
	old := *q
	x := old[len(old)-1]
	*q = old[:len(old)-1]
	return x
}
