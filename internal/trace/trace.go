// Package trace encodes and writes the command trace a solve produces.
package trace

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/elektrokombinacija/nanobot-fab/internal/core"
)

// Trace is an ordered sequence of commands, the record a solve leaves
// behind.
type Trace struct {
	Cmds []core.Cmd
}

// Encode renders the trace to its wire form: the concatenation of each
// command's bit-packed encoding, in order, with no framing or header.
func (t Trace) Encode() []byte {
	var out []byte
	for _, cmd := range t.Cmds {
		out = append(out, cmd.Encode()...)
	}
	return out
}

// WriteFile writes the encoded trace to path.
func (t Trace) WriteFile(path string) error {
	return os.WriteFile(path, t.Encode(), 0o644)
}

// String renders a human-readable dump, one command per line, for
// debugging and golden-file review.
func (t Trace) String() string {
	var b strings.Builder
	_ = t.WriteText(&b)
	return b.String()
}

// WriteText writes the same human-readable dump as String to w. Kept
// alongside the binary Encode/WriteFile path for debugging, not part of
// the trace file's wire contract.
func (t Trace) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "--start--"); err != nil {
		return err
	}
	for _, cmd := range t.Cmds {
		if _, err := fmt.Fprintln(w, cmd.String()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "--end--")
	return err
}
