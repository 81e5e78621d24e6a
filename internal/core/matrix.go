package core

import (
	"fmt"

	"github.com/elektrokombinacija/nanobot-fab/internal/geom"
)

// Matrix is the R^3 bitmap of filled voxels. It is mutated only by the
// simulator's Fill/Void command handlers.
type Matrix struct {
	R    int
	full []bool
}

// NewMatrix builds an all-void matrix of side r.
func NewMatrix(r int) *Matrix {
	return &Matrix{R: r, full: make([]bool, r*r*r)}
}

// NewMatrixFromTargets builds a matrix pre-filled at every coordinate in
// targets, used for Disassemble's initial source state.
func NewMatrixFromTargets(r int, targets map[geom.Coord]bool) *Matrix {
	m := NewMatrix(r)
	for c := range targets {
		m.full[c.LinearIndex(r)] = true
	}
	return m
}

// IsFull reports whether c is filled.
func (m *Matrix) IsFull(c geom.Coord) bool {
	return m.full[c.LinearIndex(m.R)]
}

// Fill marks c full. c must currently be void.
func (m *Matrix) Fill(c geom.Coord) error {
	i := c.LinearIndex(m.R)
	if m.full[i] {
		return fmt.Errorf("core: Fill precondition violated: %v already full", c)
	}
	m.full[i] = true
	return nil
}

// Void marks c void. c must currently be full.
func (m *Matrix) Void(c geom.Coord) error {
	i := c.LinearIndex(m.R)
	if !m.full[i] {
		return fmt.Errorf("core: Void precondition violated: %v already void", c)
	}
	m.full[i] = false
	return nil
}
