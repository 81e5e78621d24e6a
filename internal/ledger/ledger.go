// Package ledger tracks the best known energy score per problem across
// solver runs, persisted as JSON so a `ci` sweep can resume and only
// keep the cheapest trace it has found for each model.
package ledger

import (
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"github.com/elektrokombinacija/nanobot-fab/internal/trace"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// BestScore records the cheapest solve found so far for one problem: the
// planner configuration that achieved it and its energy cost.
type BestScore struct {
	AI     string `json:"ai"`
	Energy int64  `json:"energy"`
}

// Ledger is the full best-score table, keyed by model name (e.g. "FA001").
type Ledger struct {
	BestScores map[string]BestScore `json:"best_scores"`
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{BestScores: make(map[string]BestScore)}
}

// Read loads a ledger from path. A missing file is not an error: it
// yields an empty ledger, matching a first run with nothing recorded yet.
func Read(path string) (*Ledger, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, err
	}
	l := New()
	if err := json.Unmarshal(data, l); err != nil {
		return nil, err
	}
	if l.BestScores == nil {
		l.BestScores = make(map[string]BestScore)
	}
	return l, nil
}

// Write persists the ledger to path as JSON.
func (l *Ledger) Write(path string) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// IsBest reports whether energy would improve on the recorded score for
// modelName (or there is no recorded score yet).
func (l *Ledger) IsBest(modelName string, energy int64) bool {
	best, ok := l.BestScores[modelName]
	return !ok || energy < best.Energy
}

// RecordIfBest stores (ai, energy) for modelName if it improves on the
// current best, writing tr to traceDir/modelName.nbt and reporting
// whether the record was updated.
func (l *Ledger) RecordIfBest(modelName, ai string, energy int64, tr *trace.Trace, traceDir string) (bool, error) {
	if !l.IsBest(modelName, energy) {
		return false, nil
	}
	path := filepath.Join(traceDir, fmt.Sprintf("%s.nbt", modelName))
	if err := tr.WriteFile(path); err != nil {
		return false, err
	}
	l.BestScores[modelName] = BestScore{AI: ai, Energy: energy}
	return true, nil
}
