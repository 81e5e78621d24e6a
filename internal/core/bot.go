package core

import (
	"sort"

	"github.com/elektrokombinacija/nanobot-fab/internal/geom"
)

// Bot is a single mobile agent: an identity, a position, and the pool of
// bids ("seeds") it can spend on future Fission calls.
type Bot struct {
	Bid   int
	Pos   geom.Coord
	Seeds []int
}

// NewBotAtOrigin returns the sole starting bot: bid 1 at the origin,
// holding seeds 2 through 40.
func NewBotAtOrigin() *Bot {
	seeds := make([]int, 0, 39)
	for i := 2; i <= 40; i++ {
		seeds = append(seeds, i)
	}
	return &Bot{Bid: 1, Pos: geom.Origin, Seeds: seeds}
}

// Clone returns a deep copy of b.
func (b *Bot) Clone() *Bot {
	seeds := make([]int, len(b.Seeds))
	copy(seeds, b.Seeds)
	return &Bot{Bid: b.Bid, Pos: b.Pos, Seeds: seeds}
}

// Fission splits off a new bot at pos+nd, handing it seeds[0] as its bid
// and the next m seeds. b keeps the remainder. m must be < len(b.Seeds).
func (b *Bot) Fission(nd geom.Diff, m int) *Bot {
	child := &Bot{
		Bid:   b.Seeds[0],
		Pos:   b.Pos.Add(nd),
		Seeds: append([]int(nil), b.Seeds[1:m+1]...),
	}
	b.Seeds = append([]int(nil), b.Seeds[m+1:]...)
	return child
}

// Fusion merges other's bid and seeds into b, re-sorting the combined set.
func (b *Bot) Fusion(other *Bot) {
	b.Seeds = append(b.Seeds, other.Bid)
	b.Seeds = append(b.Seeds, other.Seeds...)
	sort.Ints(b.Seeds)
}

// Move applies a displacement to b's position.
func (b *Bot) Move(d geom.Diff) {
	b.Pos = b.Pos.Add(d)
}
