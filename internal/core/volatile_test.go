package core

import (
	"testing"

	"github.com/elektrokombinacija/nanobot-fab/internal/geom"
	"github.com/stretchr/testify/require"
)

func TestVolatileSeedsLiveBotPositions(t *testing.T) {
	bot := NewBotAtOrigin()
	v := NewVolatile(5, []*Bot{bot})
	require.True(t, v.IsInterfered(geom.Origin))
	require.False(t, v.IsInterfered(geom.Coord{X: 1, Y: 0, Z: 0}))
}

func TestVolatileMarkRegion(t *testing.T) {
	v := NewVolatile(5, nil)
	region := geom.NewRegion(geom.Coord{X: 0, Y: 0, Z: 0}, geom.Coord{X: 2, Y: 0, Z: 0})
	v.MarkRegion(region)
	require.True(t, v.IsInterfered(geom.Coord{X: 0, Y: 0, Z: 0}))
	require.True(t, v.IsInterfered(geom.Coord{X: 1, Y: 0, Z: 0}))
	require.True(t, v.IsInterfered(geom.Coord{X: 2, Y: 0, Z: 0}))
	require.False(t, v.IsInterfered(geom.Coord{X: 3, Y: 0, Z: 0}))
}

func TestVolatileFlipTogglesEachCall(t *testing.T) {
	v := NewVolatile(5, nil)
	require.False(t, v.Flip)
	v.QueueFlip()
	require.True(t, v.Flip)
	v.QueueFlip()
	require.False(t, v.Flip)
}

func TestVolatileQueueNewAndRemovedBots(t *testing.T) {
	v := NewVolatile(5, nil)
	child := &Bot{Bid: 2, Pos: geom.Coord{X: 1, Y: 0, Z: 0}}
	v.QueueNewBot(child)
	require.True(t, v.IsInterfered(child.Pos))
	require.Len(t, v.NewBots, 1)

	v.QueueRemovedBot(2)
	require.Equal(t, []int{2}, v.RemovedBots)
}
