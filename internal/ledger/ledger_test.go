package ledger

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/elektrokombinacija/nanobot-fab/internal/core"
	"github.com/elektrokombinacija/nanobot-fab/internal/geom"
	"github.com/elektrokombinacija/nanobot-fab/internal/trace"
)

func TestLedger(t *testing.T) {
	Convey("Given an empty ledger and a trace directory", t, func() {
		l := New()
		traceDir := t.TempDir()
		tr := &trace.Trace{Cmds: []core.Cmd{{Kind: core.SMove, D: geom.Diff{DX: 4}}, {Kind: core.Halt}}}

		Convey("any score is best", func() {
			So(l.IsBest("FA001", 1000), ShouldBeTrue)
		})

		Convey("RecordIfBest stores the first score and writes the trace", func() {
			improved, err := l.RecordIfBest("FA001", "Many(2)", 11522830, tr, traceDir)
			So(err, ShouldBeNil)
			So(improved, ShouldBeTrue)
			So(l.BestScores["FA001"], ShouldResemble, BestScore{AI: "Many(2)", Energy: 11522830})

			data, err := os.ReadFile(filepath.Join(traceDir, "FA001.nbt"))
			So(err, ShouldBeNil)
			So(data, ShouldResemble, tr.Encode())
		})

		Convey("RecordIfBest rejects a worse score and keeps the recorded best", func() {
			_, _ = l.RecordIfBest("FA001", "Many(2)", 1000, tr, traceDir)
			improved, err := l.RecordIfBest("FA001", "Many(4)", 2000, tr, traceDir)
			So(err, ShouldBeNil)
			So(improved, ShouldBeFalse)
			So(l.BestScores["FA001"].Energy, ShouldEqual, int64(1000))
		})

		Convey("RecordIfBest accepts a strictly better score", func() {
			_, _ = l.RecordIfBest("FA001", "Many(2)", 2000, tr, traceDir)
			improved, err := l.RecordIfBest("FA001", "Many(6)", 1500, tr, traceDir)
			So(err, ShouldBeNil)
			So(improved, ShouldBeTrue)
			So(l.BestScores["FA001"], ShouldResemble, BestScore{AI: "Many(6)", Energy: 1500})
		})

		Convey("Write then Read round-trips the table", func() {
			_, _ = l.RecordIfBest("FA001", "Many(2)", 11522830, tr, traceDir)
			_, _ = l.RecordIfBest("FD001", "Many(2)", 11029332, tr, traceDir)
			path := filepath.Join(t.TempDir(), "submit.json")
			So(l.Write(path), ShouldBeNil)

			reread, err := Read(path)
			So(err, ShouldBeNil)
			So(reread.BestScores, ShouldResemble, l.BestScores)
		})

		Convey("Read of a missing file yields an empty ledger", func() {
			path := filepath.Join(t.TempDir(), "missing.json")
			reread, err := Read(path)
			So(err, ShouldBeNil)
			So(reread.BestScores, ShouldBeEmpty)
		})
	})
}
