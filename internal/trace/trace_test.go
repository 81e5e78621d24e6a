package trace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/elektrokombinacija/nanobot-fab/internal/core"
	"github.com/elektrokombinacija/nanobot-fab/internal/geom"
	"github.com/stretchr/testify/require"
)

func TestEncodeConcatenatesCommandBytesInOrder(t *testing.T) {
	tr := Trace{Cmds: []core.Cmd{
		{Kind: core.SMove, D: geom.Diff{DX: 12}},
		{Kind: core.Halt},
	}}
	got := tr.Encode()
	want := append(append([]byte{}, core.Cmd{Kind: core.SMove, D: geom.Diff{DX: 12}}.Encode()...), core.Cmd{Kind: core.Halt}.Encode()...)
	require.Equal(t, want, got)
}

func TestWriteFileThenDecodeRoundTrips(t *testing.T) {
	tr := Trace{Cmds: []core.Cmd{
		{Kind: core.Fill, D: geom.Diff{DY: -1}},
		{Kind: core.Wait},
		{Kind: core.Halt},
	}}
	path := filepath.Join(t.TempDir(), "out.nbt")
	require.NoError(t, tr.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []core.Cmd
	for len(data) > 0 {
		cmd, n, err := core.Decode(data)
		require.NoError(t, err)
		decoded = append(decoded, cmd)
		data = data[n:]
	}
	require.Equal(t, tr.Cmds, decoded)
}

func TestStringIncludesStartAndEndMarkers(t *testing.T) {
	tr := Trace{Cmds: []core.Cmd{{Kind: core.Wait}}}
	s := tr.String()
	require.Contains(t, s, "--start--")
	require.Contains(t, s, "--end--")
	require.Contains(t, s, "Wait")
}
