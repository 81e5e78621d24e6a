package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/elektrokombinacija/nanobot-fab/internal/config"
	"github.com/elektrokombinacija/nanobot-fab/internal/geom"
	"github.com/elektrokombinacija/nanobot-fab/internal/modelio"
	"github.com/elektrokombinacija/nanobot-fab/internal/planner"
	"github.com/elektrokombinacija/nanobot-fab/internal/sim"
	"github.com/elektrokombinacija/nanobot-fab/internal/trace"
)

func runCmd(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	rf := config.RegisterRunFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	setupLogging(*rf.Verbose)

	cfg, err := config.LoadRunConfig(*rf.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg = rf.Apply(cfg)

	if cfg.Target == "" && cfg.Source == "" {
		return fmt.Errorf("one of -tgt or -src is required")
	}
	if cfg.Target != "" && cfg.Source != "" {
		return fmt.Errorf("only one of -tgt or -src may be given")
	}

	model, assemble, err := loadModel(cfg)
	if err != nil {
		return fmt.Errorf("reading model: %w", err)
	}
	if *rf.Verbose > 0 {
		fmt.Fprintf(os.Stderr, "%s: R=%d, popcount=%d, decoded targets=%d\n",
			model.ID.Name(), model.R, model.PopCount(), len(model.Targets))
	}

	tr, energy, err := solve(cfg.Bots, model.R, assemble, model.Targets)
	if err != nil {
		fmt.Println("failed")
		return err
	}

	fmt.Printf("%s: %d bots, energy %d\n", model.ID.Name(), cfg.Bots, energy)
	if *rf.Verbose > 0 {
		if err := tr.WriteText(os.Stderr); err != nil {
			return fmt.Errorf("writing trace dump: %w", err)
		}
	}

	if cfg.Output != "" {
		if err := tr.WriteFile(cfg.Output); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
	}
	return nil
}

// loadModel resolves the model path given by run.rs's two mutually
// exclusive flags: -tgt for an Assemble target, -src for a Disassemble
// source. The ModelID carried by a direct path is a placeholder; only
// R and Targets matter to solve().
func loadModel(cfg config.RunConfig) (*modelio.Model, bool, error) {
	if cfg.Target != "" {
		m, err := modelio.Read(modelio.ModelID{Assemble: true}, cfg.Target)
		return m, true, err
	}
	m, err := modelio.Read(modelio.ModelID{Assemble: false}, cfg.Source)
	return m, false, err
}

// solve runs one model end to end: build the System, drive it to
// completion with planner.Many, and package the command log as a Trace.
func solve(bots, r int, assemble bool, targets map[geom.Coord]bool) (*trace.Trace, int64, error) {
	sys := sim.NewSystem(r, assemble, targets)
	if err := planner.NewMany(bots).Solve(sys); err != nil {
		return nil, 0, err
	}
	return &trace.Trace{Cmds: sys.Records}, sys.Energy, nil
}

// aiLabel names the AI/bot-count combination recorded in the ledger.
func aiLabel(bots int) string {
	return fmt.Sprintf("Many(%d)", bots)
}
