// Package pathsearch implements the free-voxel BFS the planner uses to
// move bots toward their targets, plus the move-compression pass that
// folds consecutive SMoves into longer SMoves or L-shaped LMoves.
package pathsearch

import (
	"errors"

	"github.com/elektrokombinacija/nanobot-fab/internal/core"
	"github.com/elektrokombinacija/nanobot-fab/internal/geom"
)

// ErrNoPath is returned by MoveToNear when no near-neighbour of targets is
// reachable from the starting coordinate.
var ErrNoPath = errors.New("pathsearch: no reachable target")

// PathContext is the minimal view of simulator state the BFS needs: the
// grid side and the current interference predicate. Kept separate from
// sim.System so this package has no import-cycle dependency on it.
type PathContext interface {
	R() int
	IsInterfered(c geom.Coord) bool
}

// MoveCmds is a compressed sequence of move commands.
type MoveCmds struct {
	Cmds []core.Cmd
}

// MoveToNearResult is the result of a successful MoveToNear search: the
// path up to the cell adjacent to target, plus the near-diff that reaches it.
type MoveToNearResult struct {
	MoveCmds   MoveCmds
	FinalPos   geom.Coord
	TargetDiff geom.Diff
	Target     geom.Coord
}

// step is one node of the arena-indexed BFS tree: parent is an index into
// the same arena, or -1 for the root. Using indices instead of
// reference-counted pointers avoids cycles and keeps the tree in one
// contiguous slice.
type step struct {
	c      geom.Coord
	parent int
}

// MoveTo runs a point-to-point BFS over free (non-interfered) voxels and
// returns the compressed move sequence from from to to. An empty result
// means to is unreachable.
func MoveTo(ctx PathContext, from, to geom.Coord) MoveCmds {
	r := ctx.R()
	arena := []step{{c: from, parent: -1}}
	visited := map[geom.Coord]int{from: 0}
	queue := []int{0}

	for len(queue) > 0 {
		curIdx := queue[0]
		queue = queue[1:]
		cur := arena[curIdx]
		for _, d := range geom.AllDiffs {
			c := cur.c.Add(d)
			if !c.InRange(r) {
				continue
			}
			if _, ok := visited[c]; ok {
				continue
			}
			if ctx.IsInterfered(c) {
				continue
			}
			idx := len(arena)
			arena = append(arena, step{c: c, parent: curIdx})
			visited[c] = idx
			if c == to {
				return buildMoveCmds(arena, idx)
			}
			queue = append(queue, idx)
		}
	}
	return MoveCmds{}
}

// MoveToNear runs the same BFS but stops as soon as any near-neighbour
// (the 18-cell shell) of the dequeued cell is in targets. The target cell
// itself may be interfered — Void's target is full by precondition, so
// the ordinary obstruction test would wrongly exclude it.
func MoveToNear(ctx PathContext, from geom.Coord, targets map[geom.Coord]bool) (MoveToNearResult, error) {
	r := ctx.R()
	arena := []step{{c: from, parent: -1}}
	visited := map[geom.Coord]int{from: 0}
	queue := []int{0}

	for len(queue) > 0 {
		curIdx := queue[0]
		queue = queue[1:]
		cur := arena[curIdx]

		for _, d := range geom.AllDiffs {
			c := cur.c.Add(d)
			if !c.InRange(r) {
				continue
			}
			if _, ok := visited[c]; ok {
				continue
			}
			if ctx.IsInterfered(c) {
				continue
			}
			idx := len(arena)
			arena = append(arena, step{c: c, parent: curIdx})
			visited[c] = idx
			queue = append(queue, idx)
		}

		for _, d := range geom.AllNearDiffs {
			c := cur.c.Add(d)
			if !c.InRange(r) {
				continue
			}
			if !targets[c] {
				continue
			}
			return MoveToNearResult{
				MoveCmds:   buildMoveCmds(arena, curIdx),
				FinalPos:   cur.c,
				TargetDiff: c.Sub(cur.c),
				Target:     c,
			}, nil
		}
	}
	return MoveToNearResult{}, ErrNoPath
}

func buildMoveCmds(arena []step, idx int) MoveCmds {
	var diffs []geom.Diff
	for arena[idx].parent != -1 {
		p := arena[idx].parent
		diffs = append(diffs, arena[idx].c.Sub(arena[p].c))
		idx = p
	}
	for i, j := 0, len(diffs)-1; i < j; i, j = i+1, j-1 {
		diffs[i], diffs[j] = diffs[j], diffs[i]
	}
	cmds := make([]core.Cmd, len(diffs))
	for i, d := range diffs {
		cmds[i] = core.Cmd{Kind: core.SMove, D: d}
	}
	return MoveCmds{Cmds: compress(cmds)}
}

func compress(cmds []core.Cmd) []core.Cmd {
	return compressLMove(compressSMove(cmds))
}

// compressSMove collapses consecutive SMoves whose vector sum is still
// linear and within SMove's 15-cell range into a single SMove.
func compressSMove(cmds []core.Cmd) []core.Cmd {
	if len(cmds) == 0 {
		return cmds
	}
	var res []core.Cmd
	prev := cmds[0]
	for _, cmd := range cmds[1:] {
		total := geom.Diff{
			DX: prev.D.DX + cmd.D.DX,
			DY: prev.D.DY + cmd.D.DY,
			DZ: prev.D.DZ + cmd.D.DZ,
		}
		if total.IsLinear() && total.MLen() <= 15 {
			prev = core.Cmd{Kind: core.SMove, D: total}
		} else {
			res = append(res, prev)
			prev = cmd
		}
	}
	res = append(res, prev)
	return res
}

// compressLMove collapses consecutive SMoves whose vector sum is not
// linear but whose individual mlens are each within LMove's 5-cell
// sub-segment range into a single LMove.
func compressLMove(cmds []core.Cmd) []core.Cmd {
	if len(cmds) == 0 {
		return cmds
	}
	var res []core.Cmd
	prev := cmds[0]
	for _, cmd := range cmds[1:] {
		if prev.Kind == core.SMove && cmd.Kind == core.SMove {
			total := geom.Diff{
				DX: prev.D.DX + cmd.D.DX,
				DY: prev.D.DY + cmd.D.DY,
				DZ: prev.D.DZ + cmd.D.DZ,
			}
			if !total.IsLinear() && prev.D.MLen() <= 5 && cmd.D.MLen() <= 5 {
				prev = core.Cmd{Kind: core.LMove, D: prev.D, D2: cmd.D}
			} else {
				res = append(res, prev)
				prev = cmd
			}
		} else {
			res = append(res, prev)
			prev = cmd
		}
	}
	res = append(res, prev)
	return res
}
