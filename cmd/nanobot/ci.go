package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"runtime"

	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"

	"github.com/elektrokombinacija/nanobot-fab/internal/config"
	"github.com/elektrokombinacija/nanobot-fab/internal/ledger"
	"github.com/elektrokombinacija/nanobot-fab/internal/modelio"
	"github.com/elektrokombinacija/nanobot-fab/internal/trace"
)

func defaultConcurrency() int {
	return runtime.NumCPU()
}

// firstProblem and lastProblem bound the contest's numbered problem set.
const (
	firstProblem = 1
	lastProblem  = 180
)

// solveResult is one (model, bot count) sweep point, fanned from a
// worker goroutine into the ledger writer.
type solveResult struct {
	modelID modelio.ModelID
	bots    int
	energy  int64
	tr      *trace.Trace
	err     error
}

func ciCmd(args []string) error {
	fs := flag.NewFlagSet("ci", flag.ExitOnError)
	cf := config.RegisterCIFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	setupLogging(*cf.Verbose)

	cfg, err := config.LoadCIConfig(*cf.ConfigPath, defaultConcurrency())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg = cf.Apply(cfg)

	models := make([]modelio.ModelID, 0, 2*(lastProblem-firstProblem+1))
	for n := firstProblem; n <= lastProblem; n++ {
		models = append(models, modelio.ModelID{Assemble: true, Number: n})
		models = append(models, modelio.ModelID{Assemble: false, Number: n})
	}

	done := make(chan struct{})
	defer close(done)

	group := new(errgroup.Group)
	group.SetLimit(cfg.Concurrency)

	workers := make([]<-chan *solveResult, 0, len(models)*len(cfg.BotSweep))
	for _, id := range models {
		for _, bots := range cfg.BotSweep {
			id, bots := id, bots
			ch := make(chan *solveResult, 1)
			workers = append(workers, ch)
			group.Go(func() error {
				defer close(ch)
				ch <- solveSweepPoint(cfg, id, bots)
				return nil
			})
		}
	}

	results := channerics.Merge(done, workers...)

	l, err := ledger.Read(filepath.Join(cfg.SubmitDir, "submit.json"))
	if err != nil {
		return fmt.Errorf("reading ledger: %w", err)
	}

	// The ledger writer drains the merged stream sequentially, so
	// RecordIfBest never races with itself across problems or bot
	// counts even though the solves that feed it run concurrently.
	var failures int
	for r := range results {
		if r.err != nil {
			failures++
			continue
		}
		improved, err := l.RecordIfBest(r.modelID.Name(), aiLabel(r.bots), r.energy, r.tr, cfg.TraceDir)
		if err != nil {
			return fmt.Errorf("recording %s: %w", r.modelID.Name(), err)
		}
		if improved {
			fmt.Printf("%s: new best with %d bots, energy %d\n", r.modelID.Name(), r.bots, r.energy)
		}
	}

	if err := group.Wait(); err != nil {
		return err
	}
	if failures > 0 {
		fmt.Printf("%d sweep points failed to solve\n", failures)
	}
	return l.Write(filepath.Join(cfg.SubmitDir, "submit.json"))
}

// solveSweepPoint reads id's model file and runs one bot-count solve,
// never returning an error from the goroutine itself: failures are
// carried in the result so a single bad model can't abort the sweep.
func solveSweepPoint(cfg config.CIConfig, id modelio.ModelID, bots int) *solveResult {
	path := filepath.Join(cfg.ModelDir, id.Filename())
	model, err := modelio.Read(id, path)
	if err != nil {
		return &solveResult{modelID: id, bots: bots, err: err}
	}

	tr, energy, err := solve(bots, model.R, id.Assemble, model.Targets)
	if err != nil {
		return &solveResult{modelID: id, bots: bots, err: err}
	}
	return &solveResult{modelID: id, bots: bots, energy: energy, tr: tr}
}
