package config

import "flag"

// RunFlags declares the `run` subcommand's flags against fs and returns
// accessors the caller reads after fs.Parse.
type RunFlags struct {
	Bots       *int
	Target     *string
	Source     *string
	Output     *string
	ConfigPath *string
	Verbose    *int
}

// RegisterRunFlags wires RunConfig's overridable fields onto fs.
func RegisterRunFlags(fs *flag.FlagSet) RunFlags {
	return RunFlags{
		Bots:       fs.Int("bots", 0, "number of nanobots (0 = use config/default)"),
		Target:     fs.String("tgt", "", "path to an Assemble target model"),
		Source:     fs.String("src", "", "path to a Disassemble source model"),
		Output:     fs.String("output", "", "path to write the resulting trace"),
		ConfigPath: fs.String("config", "", "path to a YAML config file"),
		Verbose:    fs.Int("v", 0, "verbosity: 0=warn, 1=info, 2=debug"),
	}
}

// Apply overlays any flags the user actually set onto cfg.
func (f RunFlags) Apply(cfg RunConfig) RunConfig {
	if *f.Bots != 0 {
		cfg.Bots = *f.Bots
	}
	if *f.Target != "" {
		cfg.Target = *f.Target
	}
	if *f.Source != "" {
		cfg.Source = *f.Source
	}
	if *f.Output != "" {
		cfg.Output = *f.Output
	}
	return cfg
}

// CIFlags declares the `ci` subcommand's flags.
type CIFlags struct {
	ConfigPath  *string
	Concurrency *int
	Verbose     *int
}

// RegisterCIFlags wires CIConfig's overridable fields onto fs.
func RegisterCIFlags(fs *flag.FlagSet) CIFlags {
	return CIFlags{
		ConfigPath:  fs.String("config", "", "path to a YAML config file"),
		Concurrency: fs.Int("concurrency", 0, "max in-flight solves (0 = use config/NumCPU)"),
		Verbose:     fs.Int("v", 0, "verbosity: 0=warn, 1=info, 2=debug"),
	}
}

// Apply overlays any flags the user actually set onto cfg.
func (f CIFlags) Apply(cfg CIConfig) CIConfig {
	if *f.Concurrency != 0 {
		cfg.Concurrency = *f.Concurrency
	}
	return cfg
}
