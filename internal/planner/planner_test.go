package planner

import (
	"testing"

	"github.com/elektrokombinacija/nanobot-fab/internal/core"
	"github.com/elektrokombinacija/nanobot-fab/internal/geom"
	"github.com/elektrokombinacija/nanobot-fab/internal/sim"
	"github.com/stretchr/testify/require"
)

func TestSolveAssembleSingleBotSingleTarget(t *testing.T) {
	targets := map[geom.Coord]bool{{X: 1, Y: 0, Z: 0}: true}
	sys := sim.NewSystem(4, true, targets)
	err := NewMany(1).Solve(sys)
	require.NoError(t, err)
	require.Nil(t, sys.Bots)
	require.True(t, sys.Matrix.IsFull(geom.Coord{X: 1, Y: 0, Z: 0}))
	require.Equal(t, core.Halt, sys.Records[len(sys.Records)-1].Kind)
}

func TestSolveDisassembleSingleBotSingleTarget(t *testing.T) {
	targets := map[geom.Coord]bool{{X: 1, Y: 0, Z: 0}: true}
	sys := sim.NewSystem(4, false, targets)
	err := NewMany(1).Solve(sys)
	require.NoError(t, err)
	require.Nil(t, sys.Bots)
	require.False(t, sys.Matrix.IsFull(geom.Coord{X: 1, Y: 0, Z: 0}))
}

func TestSolveAssembleMultiBotFissionsAndReconverges(t *testing.T) {
	// The plane is offset from the origin: a full origin voxel would leave
	// the last bot nowhere to Halt.
	targets := map[geom.Coord]bool{}
	for x := 1; x <= 3; x++ {
		for z := 1; z <= 3; z++ {
			targets[geom.Coord{X: x, Y: 0, Z: z}] = true
		}
	}
	sys := sim.NewSystem(6, true, targets)
	err := NewMany(4).Solve(sys)
	require.NoError(t, err)
	require.Nil(t, sys.Bots)
	for c := range targets {
		require.True(t, sys.Matrix.IsFull(c), "target %v should be full", c)
	}

	var fissions int
	for _, cmd := range sys.Records {
		if cmd.Kind == core.Fission {
			fissions++
		}
	}
	require.Greater(t, fissions, 0, "expected at least one fission with a 4-bot budget")
}

func TestSolveEmptyTargetsHaltsImmediately(t *testing.T) {
	sys := sim.NewSystem(3, true, map[geom.Coord]bool{})
	err := NewMany(1).Solve(sys)
	require.NoError(t, err)
	require.Len(t, sys.Records, 1)
	require.Equal(t, core.Halt, sys.Records[0].Kind)
	// Halt ends the solve before the step-close tick: no energy should
	// accrue for a Halt issued with no targets to process.
	require.Equal(t, int64(0), sys.Energy)
}

func TestSolveSingleBotStrandedAwayFromOriginFailsImmediately(t *testing.T) {
	sys := sim.NewSystem(3, true, map[geom.Coord]bool{})
	sys.Bots[0].Pos = geom.Coord{X: 1, Y: 1, Z: 1}
	// Wall off every neighbor of the bot's cell so no SMove/LMove can
	// leave it in any direction: the lone bot can never reach origin.
	for _, d := range []geom.Diff{
		{DX: 1}, {DX: -1}, {DY: 1}, {DY: -1}, {DZ: 1}, {DZ: -1},
	} {
		require.NoError(t, sys.Matrix.Fill(sys.Bots[0].Pos.Add(d)))
	}

	err := NewMany(1).Solve(sys)
	require.ErrorIs(t, err, sim.ErrStranded)
}
