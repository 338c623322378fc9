package main

import (
	"fmt"
	"os"

	"github.com/alan-christopher/awgnber/awgn"
	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config describes a batch of experiments: one per modulation scheme, each
// sweeping the same SNR points.
type Config struct {
	Mod        []string  `yaml:"mod"`
	SNRdB      []float64 `yaml:"snr_db"`
	Bits       int       `yaml:"n_bits"`
	Seed       int64     `yaml:"seed"`
	Reseed     bool      `yaml:"reseed"`
	Workers    int       `yaml:"workers"`
	PadOdd     bool      `yaml:"pad_odd"`
	ResultsDir string    `yaml:"results_dir"`
	JSON       bool      `yaml:"json"`
	Plot       bool      `yaml:"plot"`
}

func defaultConfig() Config {
	return Config{
		Mod:        []string{"bpsk"},
		SNRdB:      awgn.DefaultSNRdB(),
		Bits:       awgn.DefaultBits,
		PadOdd:     true,
		ResultsDir: "results",
		Plot:       true,
	}
}

// LoadConfig reads a YAML experiment description. Fields absent from the file
// keep their default values.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	config := defaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &config, nil
}

// bindFlags registers a flag for every Config field on fs, storing parsed
// values into c.
func bindFlags(fs *flag.FlagSet, c *Config) {
	fs.StringSliceVar(&c.Mod, "mod", c.Mod, "Modulation schemes to simulate (bpsk, qpsk).")
	fs.Float64SliceVar(&c.SNRdB, "snr_db", c.SNRdB, "SNR (Es/N0) points in dB, e.g. --snr_db 0,2,4,6,8,10.")
	fs.IntVar(&c.Bits, "n_bits", c.Bits, "Number of bits for Monte Carlo BER estimation.")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "Random seed for reproducibility.")
	fs.BoolVar(&c.Reseed, "reseed", c.Reseed, "Seed every SNR point separately (seed+i) and simulate points in parallel.")
	fs.IntVar(&c.Workers, "workers", c.Workers, "Parallel SNR points with --reseed. Defaults to GOMAXPROCS.")
	fs.BoolVar(&c.PadOdd, "pad_odd", c.PadOdd, "Round odd bit counts up for QPSK instead of failing.")
	fs.StringVar(&c.ResultsDir, "results_dir", c.ResultsDir, "Directory to save results to.")
	fs.BoolVar(&c.JSON, "json", c.JSON, "Also write results as JSON.")
	fs.BoolVar(&c.Plot, "plot", c.Plot, "Save a PNG chart of simulated and theoretical BER.")
}

// override copies into c every field whose flag was set explicitly on fs.
func (c *Config) override(fs *flag.FlagSet, flags Config) {
	set := map[string]func(){
		"mod":         func() { c.Mod = flags.Mod },
		"snr_db":      func() { c.SNRdB = flags.SNRdB },
		"n_bits":      func() { c.Bits = flags.Bits },
		"seed":        func() { c.Seed = flags.Seed },
		"reseed":      func() { c.Reseed = flags.Reseed },
		"workers":     func() { c.Workers = flags.Workers },
		"pad_odd":     func() { c.PadOdd = flags.PadOdd },
		"results_dir": func() { c.ResultsDir = flags.ResultsDir },
		"json":        func() { c.JSON = flags.JSON },
		"plot":        func() { c.Plot = flags.Plot },
	}
	for name, f := range set {
		if fs.Changed(name) {
			f()
		}
	}
}

// Schemes parses the configured scheme names, failing on the first unknown one.
func (c *Config) Schemes() ([]awgn.Scheme, error) {
	if len(c.Mod) == 0 {
		return nil, fmt.Errorf("%w: no modulation scheme given", awgn.ErrInvalidScheme)
	}
	var r []awgn.Scheme
	for _, m := range c.Mod {
		s, err := awgn.ParseScheme(m)
		if err != nil {
			return nil, err
		}
		r = append(r, s)
	}
	return r, nil
}

// ExperimentOpts returns the options for simulating scheme s.
func (c *Config) ExperimentOpts(s awgn.Scheme) awgn.ExperimentOpts {
	return awgn.ExperimentOpts{
		Scheme:     s,
		SNRdB:      c.SNRdB,
		Bits:       c.Bits,
		PadOddBits: c.PadOdd,
		Seed:       c.Seed,
		Reseed:     c.Reseed,
		Workers:    c.Workers,
	}
}
