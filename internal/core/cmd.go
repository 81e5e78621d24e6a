package core

import (
	"fmt"

	"github.com/elektrokombinacija/nanobot-fab/internal/geom"
)

// Kind distinguishes the ten command shapes a bot can issue.
type Kind int

const (
	Halt Kind = iota
	Wait
	Flip
	SMove
	LMove
	Fission
	Fill
	Void
	FusionP
	FusionS
)

// Cmd is a single bot instruction. Which fields are meaningful depends on
// Kind: SMove uses D (a long-linear diff); LMove uses D and D2 (two
// short-linear diffs); Fission/Fill/Void/FusionP/FusionS use D (a near
// diff); Fission additionally uses M, the seed split point.
type Cmd struct {
	Kind Kind
	D    geom.Diff
	D2   geom.Diff
	M    int
}

// Encode renders cmd as its bit-packed wire form.
func (cmd Cmd) Encode() []byte {
	switch cmd.Kind {
	case Halt:
		return []byte{0b11111111}
	case Wait:
		return []byte{0b11111110}
	case Flip:
		return []byte{0b11111101}
	case SMove:
		a, i := encodeLongLinear(cmd.D)
		return []byte{(a << 4) | 0b0100, i}
	case LMove:
		a1, i1 := encodeShortLinear(cmd.D)
		a2, i2 := encodeShortLinear(cmd.D2)
		return []byte{(a2 << 6) | (a1 << 4) | 0b1100, (i2 << 4) | i1}
	case Fission:
		n := encodeNear(cmd.D)
		return []byte{(n << 3) | 0b0101, byte(cmd.M)}
	case Fill:
		n := encodeNear(cmd.D)
		return []byte{(n << 3) | 0b0011}
	case Void:
		n := encodeNear(cmd.D)
		return []byte{(n << 3) | 0b0010}
	case FusionP:
		n := encodeNear(cmd.D)
		return []byte{(n << 3) | 0b0111}
	case FusionS:
		n := encodeNear(cmd.D)
		return []byte{(n << 3) | 0b0110}
	default:
		panic(fmt.Sprintf("core: Encode of unknown Kind %d", cmd.Kind))
	}
}

// Decode reads one command from the front of b, returning the command and
// the number of bytes consumed.
func Decode(b []byte) (Cmd, int, error) {
	if len(b) == 0 {
		return Cmd{}, 0, fmt.Errorf("core: Decode: empty input")
	}
	b0 := b[0]
	switch b0 {
	case 0b11111111:
		return Cmd{Kind: Halt}, 1, nil
	case 0b11111110:
		return Cmd{Kind: Wait}, 1, nil
	case 0b11111101:
		return Cmd{Kind: Flip}, 1, nil
	}

	switch b0 & 0x0F {
	case 0b0100:
		if len(b) < 2 {
			return Cmd{}, 0, fmt.Errorf("core: Decode: truncated SMove")
		}
		a := (b0 >> 4) & 0x03
		d, err := decodeLongLinear(a, b[1])
		if err != nil {
			return Cmd{}, 0, err
		}
		return Cmd{Kind: SMove, D: d}, 2, nil
	case 0b1100:
		if len(b) < 2 {
			return Cmd{}, 0, fmt.Errorf("core: Decode: truncated LMove")
		}
		a1 := (b0 >> 4) & 0x03
		a2 := (b0 >> 6) & 0x03
		i1 := b[1] & 0x0F
		i2 := (b[1] >> 4) & 0x0F
		d1, err := decodeShortLinear(a1, i1)
		if err != nil {
			return Cmd{}, 0, err
		}
		d2, err := decodeShortLinear(a2, i2)
		if err != nil {
			return Cmd{}, 0, err
		}
		return Cmd{Kind: LMove, D: d1, D2: d2}, 2, nil
	}

	n := (b0 >> 3) & 0x1F
	switch b0 & 0x07 {
	case 0b101:
		if len(b) < 2 {
			return Cmd{}, 0, fmt.Errorf("core: Decode: truncated Fission")
		}
		return Cmd{Kind: Fission, D: decodeNear(n), M: int(b[1])}, 2, nil
	case 0b011:
		return Cmd{Kind: Fill, D: decodeNear(n)}, 1, nil
	case 0b010:
		return Cmd{Kind: Void, D: decodeNear(n)}, 1, nil
	case 0b111:
		return Cmd{Kind: FusionP, D: decodeNear(n)}, 1, nil
	case 0b110:
		return Cmd{Kind: FusionS, D: decodeNear(n)}, 1, nil
	}
	return Cmd{}, 0, fmt.Errorf("core: Decode: unrecognized opcode byte %08b", b0)
}

func encodeLongLinear(d geom.Diff) (a, i byte) {
	switch {
	case d.DX != 0:
		return 0b01, byte(d.DX + 15)
	case d.DY != 0:
		return 0b10, byte(d.DY + 15)
	default:
		return 0b11, byte(d.DZ + 15)
	}
}

func encodeShortLinear(d geom.Diff) (a, i byte) {
	switch {
	case d.DX != 0:
		return 0b01, byte(d.DX + 5)
	case d.DY != 0:
		return 0b10, byte(d.DY + 5)
	default:
		return 0b11, byte(d.DZ + 5)
	}
}

func encodeNear(d geom.Diff) byte {
	return byte((d.DX+1)*9 + (d.DY+1)*3 + (d.DZ + 1))
}

func decodeLongLinear(a, i byte) (geom.Diff, error) {
	v := int(i) - 15
	switch a {
	case 0b01:
		return geom.Diff{DX: v}, nil
	case 0b10:
		return geom.Diff{DY: v}, nil
	case 0b11:
		return geom.Diff{DZ: v}, nil
	default:
		return geom.Diff{}, fmt.Errorf("core: decodeLongLinear: bad axis %02b", a)
	}
}

func decodeShortLinear(a, i byte) (geom.Diff, error) {
	v := int(i) - 5
	switch a {
	case 0b01:
		return geom.Diff{DX: v}, nil
	case 0b10:
		return geom.Diff{DY: v}, nil
	case 0b11:
		return geom.Diff{DZ: v}, nil
	default:
		return geom.Diff{}, fmt.Errorf("core: decodeShortLinear: bad axis %02b", a)
	}
}

func decodeNear(n byte) geom.Diff {
	dx := int(n)/9 - 1
	rem := int(n) % 9
	dy := rem/3 - 1
	dz := rem%3 - 1
	return geom.Diff{DX: dx, DY: dy, DZ: dz}
}

// String renders cmd for debugging/trace dumps.
func (cmd Cmd) String() string {
	switch cmd.Kind {
	case Halt:
		return "Halt"
	case Wait:
		return "Wait"
	case Flip:
		return "Flip"
	case SMove:
		return fmt.Sprintf("SMove(%+v)", cmd.D)
	case LMove:
		return fmt.Sprintf("LMove(%+v, %+v)", cmd.D, cmd.D2)
	case Fission:
		return fmt.Sprintf("Fission(%+v, %d)", cmd.D, cmd.M)
	case Fill:
		return fmt.Sprintf("Fill(%+v)", cmd.D)
	case Void:
		return fmt.Sprintf("Void(%+v)", cmd.D)
	case FusionP:
		return fmt.Sprintf("FusionP(%+v)", cmd.D)
	case FusionS:
		return fmt.Sprintf("FusionS(%+v)", cmd.D)
	default:
		return "Unknown"
	}
}
