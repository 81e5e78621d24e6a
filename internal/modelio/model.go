// Package modelio reads the binary voxel model files that describe an
// Assemble target shape or a Disassemble source shape.
package modelio

import (
	"fmt"
	"os"

	"github.com/elektrokombinacija/nanobot-fab/internal/geom"
)

// ModelID names a contest problem: which direction (Assemble grows
// toward a target shape, Disassemble tears one down) and which numbered
// problem instance.
type ModelID struct {
	Assemble bool
	Number   int
}

// Name renders the short display name used in logs, e.g. "FA001".
func (id ModelID) Name() string {
	if id.Assemble {
		return fmt.Sprintf("FA%03d", id.Number)
	}
	return fmt.Sprintf("FD%03d", id.Number)
}

// Filename renders the on-disk model filename, e.g. "FA001_tgt.mdl".
func (id ModelID) Filename() string {
	if id.Assemble {
		return fmt.Sprintf("FA%03d_tgt.mdl", id.Number)
	}
	return fmt.Sprintf("FD%03d_src.mdl", id.Number)
}

// Model is a parsed voxel grid: its side length, the raw bit-packed grid
// bytes, and the decoded set of full voxels (the assemble target or the
// disassemble source).
type Model struct {
	ID      ModelID
	R       int
	Bytes   []byte
	Targets map[geom.Coord]bool
}

// PopCount counts the set bits across Bytes directly, independent of the
// R^3 decode loop. run's -v output reports this alongside
// len(Targets) as a sanity cross-check that the two agree.
func (m *Model) PopCount() int {
	n := 0
	for _, b := range m.Bytes {
		for b != 0 {
			n += int(b & 1)
			b >>= 1
		}
	}
	return n
}

// Read parses a model file at path. Layout: one byte R, then
// ceil(R^3/8) bytes of bit-packed grid, bit index x*R^2+y*R+z, LSB
// first within each byte.
func Read(id ModelID, path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) < 1 {
		return nil, fmt.Errorf("modelio: %s: empty file", path)
	}

	r := int(data[0])
	bits := data[1:]
	need := (r*r*r + 7) / 8
	if len(bits) < need {
		return nil, fmt.Errorf("modelio: %s: want %d grid bytes for R=%d, got %d", path, need, r, len(bits))
	}

	targets := make(map[geom.Coord]bool)
	for x := 0; x < r; x++ {
		for y := 0; y < r; y++ {
			for z := 0; z < r; z++ {
				index := x*r*r + y*r + z
				bi, br := index/8, uint(index%8)
				if (bits[bi]>>br)&1 != 0 {
					targets[geom.Coord{X: x, Y: y, Z: z}] = true
				}
			}
		}
	}

	return &Model{ID: id, R: r, Bytes: bits, Targets: targets}, nil
}
