package core

import (
	"bytes"
	"testing"

	"github.com/elektrokombinacija/nanobot-fab/internal/geom"
)

func TestEncodeExactBytes(t *testing.T) {
	tests := []struct {
		name string
		cmd  Cmd
		want []byte
	}{
		{"halt", Cmd{Kind: Halt}, []byte{0b11111111}},
		{"wait", Cmd{Kind: Wait}, []byte{0b11111110}},
		{"flip", Cmd{Kind: Flip}, []byte{0b11111101}},
		{"smove-x-12", Cmd{Kind: SMove, D: geom.Diff{DX: 12}}, []byte{0b00010100, 0b00011011}},
		{"smove-z-neg4", Cmd{Kind: SMove, D: geom.Diff{DZ: -4}}, []byte{0b00110100, 0b00001011}},
		{"lmove-1", Cmd{Kind: LMove, D: geom.Diff{DX: 3}, D2: geom.Diff{DY: -5}}, []byte{0b10011100, 0b00001000}},
		{"lmove-2", Cmd{Kind: LMove, D: geom.Diff{DY: -2}, D2: geom.Diff{DZ: 2}}, []byte{0b11101100, 0b01110011}},
		{"fission", Cmd{Kind: Fission, D: geom.Diff{DZ: 1}, M: 5}, []byte{0b01110101, 0b00000101}},
		{"fusionp", Cmd{Kind: FusionP, D: geom.Diff{DX: -1, DY: 1}}, []byte{0b00111111}},
		{"fusions", Cmd{Kind: FusionS, D: geom.Diff{DX: 1, DY: -1}}, []byte{0b10011110}},
		{"fill", Cmd{Kind: Fill, D: geom.Diff{DY: -1}}, []byte{0b01010011}},
		{"void", Cmd{Kind: Void, D: geom.Diff{DX: 1, DZ: 1}}, []byte{0b10111010}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cmd.Encode()
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Encode() = %08b, want %08b", got, tt.want)
			}
		})
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	cmds := []Cmd{
		{Kind: Halt},
		{Kind: Wait},
		{Kind: Flip},
		{Kind: SMove, D: geom.Diff{DX: 12}},
		{Kind: SMove, D: geom.Diff{DZ: -4}},
		{Kind: LMove, D: geom.Diff{DX: 3}, D2: geom.Diff{DY: -5}},
		{Kind: LMove, D: geom.Diff{DY: -2}, D2: geom.Diff{DZ: 2}},
		{Kind: Fission, D: geom.Diff{DZ: 1}, M: 5},
		{Kind: FusionP, D: geom.Diff{DX: -1, DY: 1}},
		{Kind: FusionS, D: geom.Diff{DX: 1, DY: -1}},
		{Kind: Fill, D: geom.Diff{DY: -1}},
		{Kind: Void, D: geom.Diff{DX: 1, DZ: 1}},
	}
	for _, cmd := range cmds {
		encoded := cmd.Encode()
		got, n, err := Decode(encoded)
		if err != nil {
			t.Fatalf("Decode(%08b) error: %v", encoded, err)
		}
		if n != len(encoded) {
			t.Errorf("Decode consumed %d bytes, want %d", n, len(encoded))
		}
		if got != cmd {
			t.Errorf("Decode(%08b) = %+v, want %+v", encoded, got, cmd)
		}
	}
}

func TestDecodeTraceConcatenation(t *testing.T) {
	cmds := []Cmd{
		{Kind: SMove, D: geom.Diff{DX: 5}},
		{Kind: Fill, D: geom.Diff{DY: -1}},
		{Kind: Halt},
	}
	var buf []byte
	for _, c := range cmds {
		buf = append(buf, c.Encode()...)
	}
	var decoded []Cmd
	for len(buf) > 0 {
		c, n, err := Decode(buf)
		if err != nil {
			t.Fatalf("Decode error: %v", err)
		}
		decoded = append(decoded, c)
		buf = buf[n:]
	}
	if len(decoded) != len(cmds) {
		t.Fatalf("decoded %d commands, want %d", len(decoded), len(cmds))
	}
	for i := range cmds {
		if decoded[i] != cmds[i] {
			t.Errorf("decoded[%d] = %+v, want %+v", i, decoded[i], cmds[i])
		}
	}
}
