// Package planner implements the greedy multi-bot coordinator: fission
// up to the requested swarm size, race bots against the free-target
// queue filling or voiding as they go, then converge every bot back on
// the origin and fuse them into one before halting.
package planner

import (
	"fmt"

	"github.com/elektrokombinacija/nanobot-fab/internal/core"
	"github.com/elektrokombinacija/nanobot-fab/internal/geom"
	"github.com/elektrokombinacija/nanobot-fab/internal/sim"
)

// Many is the greedy N-bot planner. A swarm size of 1 never fissions.
type Many struct {
	bots int
}

// NewMany builds a planner targeting the given swarm size.
func NewMany(bots int) *Many {
	return &Many{bots: bots}
}

// Solve drives sys to completion: assemble or disassemble every target,
// then return to the origin and Halt. It returns sim.ErrPlanStall if the
// last 10 emitted commands were all Wait, or sim.ErrStranded if the sole
// remaining bot can't move toward the origin at all.
func (m *Many) Solve(sys *sim.System) error {
	origin := geom.Origin
	originSet := map[geom.Coord]bool{origin: true}
	waitCont := 0

	submit := func(cmd core.Cmd) error {
		if cmd.Kind == core.Wait {
			waitCont++
			if waitCont == 10 {
				return sim.ErrPlanStall
			}
		} else {
			waitCont = 0
		}
		if res := sys.ExecuteCmd(cmd); res != sim.Continue {
			panic(fmt.Sprintf("planner: %s returned %v, want Continue", cmd, res))
		}
		return nil
	}

	for sys.Targets.Len() > 0 {
		targets := sys.FreePriorityTargets()

		var cmd core.Cmd
		if m.bots > 1 {
			if fissionCmd, ok := sys.CanCurrentBotFission(); ok {
				m.bots--
				cmd = fissionCmd
			} else {
				cmd = sys.MoveToTargetAndFillOrVoid(targets)
			}
		} else {
			cmd = sys.MoveToTargetAndFillOrVoid(targets)
		}

		if err := submit(cmd); err != nil {
			return err
		}
	}

	for {
		if len(sys.Bots) == 1 {
			if sys.CurrentBot().Pos == origin {
				if res := sys.ExecuteCmd(core.Cmd{Kind: core.Halt}); res != sim.Halted {
					panic(fmt.Sprintf("planner: Halt did not halt: %v", res))
				}
				return nil
			}
			cmd := sys.MoveToFirstOrWaitCmd(sys.CurrentBot().Pos, origin)
			if cmd.Kind == core.Wait {
				// A lone bot that can't move toward origin is fatal
				// immediately: it bypasses the generic 10-Wait
				// watchdog entirely, mirroring ai.rs's dedicated
				// "can not move to origin" failure.
				return sim.ErrStranded
			}
			if err := submit(cmd); err != nil {
				return err
			}
			continue
		}

		cmd := m.convergeCmd(sys, origin, originSet)
		if err := submit(cmd); err != nil {
			return err
		}
	}
}

// convergeCmd picks the shutdown-phase command for the current bot when
// more than one bot is still alive: fuse if possible, otherwise step
// toward the origin.
func (m *Many) convergeCmd(sys *sim.System, origin geom.Coord, originSet map[geom.Coord]bool) core.Cmd {
	cur := sys.CurrentBot()

	if primary, ok := sys.IsCurrentBotReservedAsFusionSecondary(); ok {
		return core.Cmd{Kind: core.FusionS, D: primary.Sub(cur.Pos)}
	}
	if second := sys.FindCurrentBotFusionOpponent(); second != nil {
		return core.Cmd{Kind: core.FusionP, D: second.Pos.Sub(cur.Pos)}
	}
	if cur.Pos == origin {
		return core.Cmd{Kind: core.Wait}
	}
	if sys.IsInterfered(origin) {
		res, err := sys.MoveToNear(cur.Pos, originSet)
		if err != nil || len(res.MoveCmds.Cmds) == 0 {
			return core.Cmd{Kind: core.Wait}
		}
		return res.MoveCmds.Cmds[0]
	}
	return sys.MoveToFirstOrWaitCmd(cur.Pos, origin)
}
