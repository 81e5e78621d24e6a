// Package config loads the run/ci configuration: default paths and
// sweep parameters, optionally overridden by a YAML file.
package config

import (
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// RunConfig configures a single `nanobot run` invocation.
//
// Tags are lowercase because viper normalizes every config key to
// lowercase before AllSettings hands it to yaml.v3 for the typed
// decode; a camelCase tag here would silently fail to match.
type RunConfig struct {
	Bots   int    `yaml:"bots"`
	Target string `yaml:"target"`
	Source string `yaml:"source"`
	Output string `yaml:"output"`
}

// DefaultRunConfig matches the original's `run.rs::run` default bot
// count when none is given on the command line.
func DefaultRunConfig() RunConfig {
	return RunConfig{Bots: 2}
}

// CIConfig configures a `nanobot ci` batch sweep.
type CIConfig struct {
	ModelDir    string `yaml:"modeldir"`
	TraceDir    string `yaml:"tracedir"`
	SubmitDir   string `yaml:"submitdir"`
	BotSweep    []int  `yaml:"botsweep"`
	Concurrency int    `yaml:"concurrency"`
}

// DefaultCIConfig matches the original's hardcoded contest/ paths and
// `run.rs::ci`'s bot-count sweep list.
func DefaultCIConfig(numCPU int) CIConfig {
	return CIConfig{
		ModelDir:    filepath.Join("contest", "model"),
		TraceDir:    filepath.Join("contest", "trace"),
		SubmitDir:   filepath.Join("contest", "submit"),
		BotSweep:    []int{2, 3, 4, 6, 8, 12, 20},
		Concurrency: numCPU,
	}
}

// loadYAML reads path with viper into an intermediate map, then decodes
// that map into out via yaml.v3. The extra hop (rather than
// vp.Unmarshal directly into out) follows
// niceyeti-tabular/tabular/reinforcement/learning.go's FromYaml, which
// lets viper own file discovery while yaml.v3 owns the typed decode.
func loadYAML(path string, out interface{}) error {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))
	if err := vp.ReadInConfig(); err != nil {
		return err
	}

	spec, err := yaml.Marshal(vp.AllSettings())
	if err != nil {
		return err
	}
	return yaml.Unmarshal(spec, out)
}

// LoadRunConfig starts from DefaultRunConfig and overlays path's YAML
// contents, if path is non-empty.
func LoadRunConfig(path string) (RunConfig, error) {
	cfg := DefaultRunConfig()
	if path == "" {
		return cfg, nil
	}
	if err := loadYAML(path, &cfg); err != nil {
		return RunConfig{}, err
	}
	return cfg, nil
}

// LoadCIConfig starts from DefaultCIConfig and overlays path's YAML
// contents, if path is non-empty.
func LoadCIConfig(path string, numCPU int) (CIConfig, error) {
	cfg := DefaultCIConfig(numCPU)
	if path == "" {
		return cfg, nil
	}
	if err := loadYAML(path, &cfg); err != nil {
		return CIConfig{}, err
	}
	return cfg, nil
}
