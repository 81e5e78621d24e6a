package sim

import "errors"

// ErrPlanStall is returned when the planner's watchdog observes 10
// consecutive Wait commands: no bot could make progress for a full
// round, so the solve is abandoned for this problem/bot-count pair.
var ErrPlanStall = errors.New("sim: planner stalled: 10 consecutive Wait commands")

// ErrHaltPrecondition marks the panic raised when Halt is submitted
// without satisfying its three preconditions (single bot, at origin,
// harmonics Low). This is always a planner bug, never a recoverable
// runtime condition, so ExecuteCmd panics rather than returning it.
var ErrHaltPrecondition = errors.New("sim: Halt command precondition violated")

// ErrStranded is returned when the sole remaining bot cannot move
// toward the origin at all. Unlike the general stall watchdog (10
// consecutive Waits across any phase), a lone bot failing to move is
// fatal on its first occurrence: there is no second bot left to make
// progress while it waits.
var ErrStranded = errors.New("sim: lone bot can not move to origin")
