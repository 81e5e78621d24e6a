// Package sim implements the nanobot swarm state machine: per-bot
// command execution, interference checks, energy accounting, and the
// time-step boundary that applies queued harmonics flips and bot
// lifecycle changes.
package sim

import (
	"log/slog"
	"sort"

	"github.com/elektrokombinacija/nanobot-fab/internal/core"
	"github.com/elektrokombinacija/nanobot-fab/internal/geom"
	"github.com/elektrokombinacija/nanobot-fab/internal/pathsearch"
)

// CmdResult is the outcome of submitting one command to the current bot.
type CmdResult int

const (
	Continue CmdResult = iota
	Interfered
	Halted
)

// Harmonics is the global mode governing per-step energy cost.
type Harmonics int

const (
	HarmonicsLow Harmonics = iota
	HarmonicsHigh
)

// System is the full top-level simulator state for one solve.
type System struct {
	r         int
	Assemble  bool
	Energy    int64
	Harmonics Harmonics
	Matrix    *core.Matrix
	Targets   *core.PriorityTargets
	Bots      []*core.Bot
	BotIndex  int
	Records   []core.Cmd

	volatile       *core.Volatile
	reservedFusion map[geom.Coord]geom.Coord
	log            *slog.Logger
}

// NewSystem constructs a System for a grid of side r over the given
// target set. assemble selects Assemble (empty matrix, build toward
// targets) vs Disassemble (matrix pre-filled from targets, tear down to
// empty).
func NewSystem(r int, assemble bool, targets map[geom.Coord]bool) *System {
	bots := []*core.Bot{core.NewBotAtOrigin()}
	var matrix *core.Matrix
	if assemble {
		matrix = core.NewMatrix(r)
	} else {
		matrix = core.NewMatrixFromTargets(r, targets)
	}
	return &System{
		r:              r,
		Assemble:       assemble,
		Harmonics:      HarmonicsLow,
		Matrix:         matrix,
		Targets:        core.NewPriorityTargets(r, targets, assemble),
		Bots:           bots,
		volatile:       core.NewVolatile(r, bots),
		reservedFusion: make(map[geom.Coord]geom.Coord),
		log:            slog.Default(),
	}
}

// R returns the grid side, satisfying pathsearch.PathContext.
func (s *System) R() int { return s.r }

// IsInterfered reports whether c is claimed this step, either because
// it's already full or because some command this step already marked it.
func (s *System) IsInterfered(c geom.Coord) bool {
	return s.Matrix.IsFull(c) || s.volatile.IsInterfered(c)
}

// CurrentBot returns the bot whose turn it is this step.
func (s *System) CurrentBot() *core.Bot {
	return s.Bots[s.BotIndex]
}

// FreePriorityTargets returns the top-priority target coordinates that
// are not currently claimed by another bot's in-flight command.
func (s *System) FreePriorityTargets() map[geom.Coord]bool {
	coords := s.Targets.FreeTopPriority(s.volatile.IsInterfered)
	out := make(map[geom.Coord]bool, len(coords))
	for _, c := range coords {
		out[c] = true
	}
	return out
}

// FindCurrentBotFusionOpponent looks for a later bot (in bid order) that
// is near the current bot and not already reserved as someone else's
// fusion secondary.
func (s *System) FindCurrentBotFusionOpponent() *core.Bot {
	pos := s.CurrentBot().Pos
	for _, b := range s.Bots[s.BotIndex+1:] {
		if _, reserved := s.reservedFusion[b.Pos]; reserved {
			continue
		}
		if b.Pos.Sub(pos).IsNear() {
			return b
		}
	}
	return nil
}

// IsCurrentBotReservedAsFusionSecondary reports whether the current bot's
// position has already been reserved by a FusionP this step, returning
// the primary's position.
func (s *System) IsCurrentBotReservedAsFusionSecondary() (geom.Coord, bool) {
	primary, ok := s.reservedFusion[s.CurrentBot().Pos]
	return primary, ok
}

// CanCurrentBotFission reports whether the current bot has seeds left and
// a free face-neighbour to spawn into, returning the Fission command to
// submit.
func (s *System) CanCurrentBotFission() (core.Cmd, bool) {
	cur := s.CurrentBot()
	if len(cur.Seeds) == 0 {
		return core.Cmd{}, false
	}
	for _, d := range geom.AllDiffs {
		c := cur.Pos.Add(d)
		if !c.InRange(s.r) {
			continue
		}
		if !s.IsInterfered(c) {
			return core.Cmd{Kind: core.Fission, D: d, M: len(cur.Seeds) / 2}, true
		}
	}
	return core.Cmd{}, false
}

// MoveTo runs the free-cell BFS from from to to.
func (s *System) MoveTo(from, to geom.Coord) pathsearch.MoveCmds {
	return pathsearch.MoveTo(s, from, to)
}

// MoveToNear runs the target-vicinity BFS from from toward targets.
func (s *System) MoveToNear(from geom.Coord, targets map[geom.Coord]bool) (pathsearch.MoveToNearResult, error) {
	return pathsearch.MoveToNear(s, from, targets)
}

// MoveToFirstOrWaitCmd returns the first step of a BFS path from from to
// to, or Wait if no path exists.
func (s *System) MoveToFirstOrWaitCmd(from, to geom.Coord) core.Cmd {
	moves := s.MoveTo(from, to)
	if len(moves.Cmds) > 0 {
		return moves.Cmds[0]
	}
	return core.Cmd{Kind: core.Wait}
}

// MoveToTargetAndFillOrVoid is the planner's main per-turn decision: move
// a step closer to the nearest free target, or fill/void it if already
// adjacent.
func (s *System) MoveToTargetAndFillOrVoid(targets map[geom.Coord]bool) core.Cmd {
	origin := geom.Origin
	res, err := s.MoveToNear(s.CurrentBot().Pos, targets)
	if err != nil {
		return s.MoveToFirstOrWaitCmd(s.CurrentBot().Pos, origin)
	}
	if len(res.MoveCmds.Cmds) > 0 {
		return res.MoveCmds.Cmds[0]
	}
	if s.Assemble {
		return core.Cmd{Kind: core.Fill, D: res.TargetDiff}
	}
	return core.Cmd{Kind: core.Void, D: res.TargetDiff}
}

// isMoveInterfered walks every cell between startExcluding and
// startExcluding+diff (inclusive of the endpoint), reporting whether any
// is claimed. Applied redesign: the original Rust walk checked only
// start+direc and never advanced its probe coordinate; this advances c by
// direc on every iteration so the full path is actually tested.
func (s *System) isMoveInterfered(startExcluding geom.Coord, diff geom.Diff) bool {
	direc := diff.Direc()
	steps := diff.MLen()
	c := startExcluding
	for i := 0; i < steps; i++ {
		c = c.Add(direc)
		if s.IsInterfered(c) {
			return true
		}
	}
	return false
}

// ExecuteCmd applies cmd as the current bot's action for this step.
func (s *System) ExecuteCmd(cmd core.Cmd) CmdResult {
	s.log.Debug("execute", "bid", s.CurrentBot().Bid, "pos", s.CurrentBot().Pos, "cmd", cmd.String())
	if (len(s.Records)+1)%10000 == 0 {
		s.log.Info("progress", "records", len(s.Records))
	}

	halt := false
	switch cmd.Kind {
	case core.Halt:
		if !s.CurrentBot().Pos.IsOrigin() || len(s.Bots) != 1 || s.Harmonics != HarmonicsLow {
			panic(ErrHaltPrecondition)
		}
		halt = true
	case core.Wait:
		// No effect.
	case core.Flip:
		s.volatile.QueueFlip()
	case core.SMove:
		pos1 := s.CurrentBot().Pos
		if s.isMoveInterfered(pos1, cmd.D) {
			return Interfered
		}
		bot := s.CurrentBot()
		bot.Move(cmd.D)
		s.Energy += 2 * int64(cmd.D.MLen())
		s.volatile.MarkRegion(geom.NewRegion(pos1, bot.Pos))
	case core.LMove:
		pos1 := s.CurrentBot().Pos
		if s.isMoveInterfered(pos1, cmd.D) || s.isMoveInterfered(pos1.Add(cmd.D), cmd.D2) {
			return Interfered
		}
		bot := s.CurrentBot()
		bot.Move(cmd.D)
		pos2 := bot.Pos
		bot.Move(cmd.D2)
		s.Energy += 2 * int64(cmd.D.MLen()+2+cmd.D2.MLen())
		s.volatile.MarkRegion(geom.NewRegion(pos1, pos2))
		s.volatile.MarkRegion(geom.NewRegion(pos2, bot.Pos))
	case core.Fission:
		bot := s.CurrentBot()
		target := bot.Pos.Add(cmd.D)
		if s.IsInterfered(target) {
			return Interfered
		}
		child := bot.Fission(cmd.D, cmd.M)
		s.Energy += 24
		s.volatile.QueueNewBot(child)
	case core.Fill:
		bot := s.CurrentBot()
		c := bot.Pos.Add(cmd.D)
		if s.IsInterfered(c) {
			return Interfered
		}
		if !s.Matrix.IsFull(c) {
			_ = s.Matrix.Fill(c)
			s.Targets.Remove(c)
			s.Energy += 12
		} else {
			s.log.Warn("Fill command targeted an already-full voxel", "cord", c)
			s.Energy += 6
		}
		s.volatile.Mark(c)
	case core.Void:
		bot := s.CurrentBot()
		c := bot.Pos.Add(cmd.D)
		if s.volatile.IsInterfered(c) {
			return Interfered
		}
		if s.Matrix.IsFull(c) {
			_ = s.Matrix.Void(c)
			s.Targets.Remove(c)
			s.Energy -= 12
		} else {
			s.log.Warn("Void command targeted an already-void voxel", "cord", c)
			s.Energy += 3
		}
		s.volatile.Mark(c)
	case core.FusionP:
		pPos := s.CurrentBot().Pos
		sPos := pPos.Add(cmd.D)
		s.reservedFusion[sPos] = pPos
		var sBot *core.Bot
		for _, b := range s.Bots {
			if b.Pos == sPos {
				sBot = b
				break
			}
		}
		s.CurrentBot().Fusion(sBot)
		s.Energy -= 24
		s.volatile.QueueRemovedBot(sBot.Bid)
	case core.FusionS:
		sPos := s.CurrentBot().Pos
		pPos := sPos.Add(cmd.D)
		primary, ok := s.reservedFusion[sPos]
		if !ok || primary != pPos {
			panic("sim: FusionS submitted without a matching FusionP reservation")
		}
	}

	s.Records = append(s.Records, cmd)

	if halt {
		// Halt ends the solve before the step-close tick: no further
		// time step elapses, so no harmonics/bot-count energy accrues.
		s.Bots = nil
		return Halted
	}

	s.BotIndex++
	if s.BotIndex == len(s.Bots) {
		s.prepareNextTimeStep()
	}
	return Continue
}

func (s *System) prepareNextTimeStep() {
	s.BotIndex = 0
	s.reservedFusion = make(map[geom.Coord]geom.Coord)

	r64 := int64(s.r)
	switch s.Harmonics {
	case HarmonicsHigh:
		s.Energy += 30 * r64 * r64 * r64
	case HarmonicsLow:
		s.Energy += 3 * r64 * r64 * r64
	}
	s.Energy += 20 * int64(len(s.Bots))

	s.applyVolatile()
	s.volatile = core.NewVolatile(s.r, s.Bots)
}

func (s *System) applyVolatile() {
	if s.volatile.Flip {
		if s.Harmonics == HarmonicsHigh {
			s.Harmonics = HarmonicsLow
		} else {
			s.Harmonics = HarmonicsHigh
		}
	}

	bots := make([]*core.Bot, len(s.Bots), len(s.Bots)+len(s.volatile.NewBots))
	copy(bots, s.Bots)
	bots = append(bots, s.volatile.NewBots...)

	removed := make(map[int]bool, len(s.volatile.RemovedBots))
	for _, bid := range s.volatile.RemovedBots {
		removed[bid] = true
	}
	filtered := bots[:0]
	for _, b := range bots {
		if !removed[b.Bid] {
			filtered = append(filtered, b)
		}
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].Bid < filtered[j].Bid })
	s.Bots = filtered
}
