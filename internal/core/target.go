package core

import (
	"sort"

	"github.com/elektrokombinacija/nanobot-fab/internal/geom"
)

// PriorityTarget is a target voxel annotated with its BFS-distance-derived
// priority; a lower value is served earlier.
type PriorityTarget struct {
	Priority int64
	Cord     geom.Coord
}

func less(a, b PriorityTarget) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	if a.Cord.X != b.Cord.X {
		return a.Cord.X < b.Cord.X
	}
	if a.Cord.Y != b.Cord.Y {
		return a.Cord.Y < b.Cord.Y
	}
	return a.Cord.Z < b.Cord.Z
}

// PriorityTargets is the ordered set of targets still to be filled (or
// voided), kept as a sorted slice plus a coordinate index since the Go
// standard library and the example pack offer no removable ordered set.
type PriorityTargets struct {
	sorted []PriorityTarget
	index  map[geom.Coord]int
}

// NewPriorityTargets builds the priority-ordered target set by a
// six-connected BFS over targets, seeded at every ground-plane (y=0)
// target with priority 0. assemble selects the BFS-distance sign:
// positive (Assemble) grows outward from the ground, negative
// (Disassemble) peels from the top.
func NewPriorityTargets(r int, targets map[geom.Coord]bool, assemble bool) *PriorityTargets {
	type entry struct {
		c   geom.Coord
		len int64
	}

	visited := make(map[geom.Coord]bool, len(targets))
	var queue []entry
	pt := &PriorityTargets{index: make(map[geom.Coord]int, len(targets))}

	insert := func(c geom.Coord, priority int64) {
		t := PriorityTarget{Priority: priority, Cord: c}
		i := sort.Search(len(pt.sorted), func(i int) bool { return !less(pt.sorted[i], t) })
		pt.sorted = append(pt.sorted, PriorityTarget{})
		copy(pt.sorted[i+1:], pt.sorted[i:])
		pt.sorted[i] = t
		for j := i; j < len(pt.sorted); j++ {
			pt.index[pt.sorted[j].Cord] = j
		}
	}

	for x := 0; x < r; x++ {
		for z := 0; z < r; z++ {
			c := geom.Coord{X: x, Y: 0, Z: z}
			if targets[c] {
				queue = append(queue, entry{c: c, len: 0})
				visited[c] = true
				insert(c, 0)
			}
		}
	}

	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		for _, d := range geom.AllDiffs {
			c := e.c.Add(d)
			if !c.InRange(r) || !targets[c] || visited[c] {
				continue
			}
			visited[c] = true
			nextLen := e.len + 1
			queue = append(queue, entry{c: c, len: nextLen})
			priority := nextLen
			if !assemble {
				priority = -nextLen
			}
			insert(c, priority)
		}
	}

	return pt
}

// Len reports how many targets remain.
func (pt *PriorityTargets) Len() int {
	return len(pt.sorted)
}

// All returns every remaining priority target, for iteration by callers
// that need to filter against interference before taking the top slice.
func (pt *PriorityTargets) All() []PriorityTarget {
	return pt.sorted
}

// TopPriority returns the coordinates sharing the lowest priority value
// currently present.
func (pt *PriorityTargets) TopPriority() []geom.Coord {
	if len(pt.sorted) == 0 {
		return nil
	}
	head := pt.sorted[0].Priority
	var out []geom.Coord
	for _, t := range pt.sorted {
		if t.Priority != head {
			break
		}
		out = append(out, t.Cord)
	}
	return out
}

// FreeTopPriority returns the top-priority coordinates among those for
// which interfered reports false, mirroring the simulator's
// free_priority_targets: a target currently claimed by another bot's
// in-flight move is excluded from this step's candidate set even though
// it remains a member of the overall ordered set.
func (pt *PriorityTargets) FreeTopPriority(interfered func(geom.Coord) bool) []geom.Coord {
	var head int64
	haveHead := false
	var out []geom.Coord
	for _, t := range pt.sorted {
		if interfered(t.Cord) {
			continue
		}
		if !haveHead {
			head = t.Priority
			haveHead = true
		}
		if t.Priority != head {
			break
		}
		out = append(out, t.Cord)
	}
	return out
}

// Remove drops cord from the set. cord must currently be a member.
func (pt *PriorityTargets) Remove(cord geom.Coord) {
	i, ok := pt.index[cord]
	if !ok {
		return
	}
	pt.sorted = append(pt.sorted[:i], pt.sorted[i+1:]...)
	delete(pt.index, cord)
	for j := i; j < len(pt.sorted); j++ {
		pt.index[pt.sorted[j].Cord] = j
	}
}
