// Command nanobot solves ICFP-2019-style nanobot fabrication/disassembly
// problems: either a single model via `run`, or the full contest sweep
// via `ci`.
package main

import (
	"fmt"
	"log/slog"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: nanobot <run|ci> [flags]")
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "run":
		err = runCmd(os.Args[2:])
	case "ci":
		err = ciCmd(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", os.Args[1])
		os.Exit(2)
	}
	if err != nil {
		slog.Error("failed", "err", err)
		os.Exit(1)
	}
}

// verbosityLevel maps a -v occurrence count to a slog level, matching
// the original's structopt `parse(from_occurrences)` verbosity flag.
func verbosityLevel(count int) slog.Level {
	switch {
	case count >= 2:
		return slog.LevelDebug
	case count == 1:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

func setupLogging(verbose int) {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: verbosityLevel(verbose)})
	slog.SetDefault(slog.New(h))
}
