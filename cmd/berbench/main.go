// berbench estimates the bit error rate of BPSK and/or QPSK over an AWGN
// channel at each of a list of SNR points, printing one line per point and
// saving a CSV file, a BER chart and optionally a JSON file per scheme
// alongside theoretical values.
//
// Example:
//
//	berbench --mod bpsk,qpsk --n_bits 200000 --snr_db 0,2,4,6,8,10
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alan-christopher/awgnber/awgn"
	"github.com/alan-christopher/awgnber/awgn/report"
	flag "github.com/spf13/pflag"
)

var configPath = flag.String("config", "", "YAML file describing the experiment. Flags set explicitly override it.")

func main() {
	log.SetFlags(0)
	log.SetPrefix("berbench: ")

	flags := defaultConfig()
	bindFlags(flag.CommandLine, &flags)
	flag.Parse()

	cfg := &flags
	if *configPath != "" {
		var err error
		if cfg, err = LoadConfig(*configPath); err != nil {
			log.Fatalf("Loading %s: %v", *configPath, err)
		}
		cfg.override(flag.CommandLine, flags)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, cfg, os.Stdout); err != nil {
		stop()
		log.Fatal(err)
	}
}

// run simulates every configured scheme. A scheme that fails is logged and
// skipped; run reports an error if any did.
func run(ctx context.Context, cfg *Config, out io.Writer) error {
	schemes, err := cfg.Schemes()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.ResultsDir, 0755); err != nil {
		return err
	}
	var failed []awgn.Scheme
	for _, s := range schemes {
		if err := runScheme(ctx, cfg, s, out); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			log.Printf("Simulating %v: %v", s, err)
			failed = append(failed, s)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d schemes failed: %v", len(failed), len(schemes), failed)
	}
	return nil
}

func runScheme(ctx context.Context, cfg *Config, s awgn.Scheme, out io.Writer) error {
	exp, err := awgn.NewExperiment(cfg.ExperimentOpts(s))
	if err != nil {
		return err
	}
	if exp.Bits() != cfg.Bits {
		log.Printf("[info] %v requires a multiple of %d bits. Using n_bits=%d instead.",
			s, s.BitsPerSymbol(), exp.Bits())
	}
	results, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%v (%d bits, seed %d)\n", s, exp.Bits(), cfg.Seed)
	for _, r := range results {
		fmt.Fprintln(out, report.Summary(r))
	}

	csvPath := filepath.Join(cfg.ResultsDir, fmt.Sprintf("ber_%v.csv", s))
	if err := writeFile(csvPath, func(w io.Writer) error {
		return report.WriteCSV(w, results)
	}); err != nil {
		return err
	}
	log.Printf("saved %s", csvPath)
	if cfg.Plot {
		if err := savePlot(cfg.ResultsDir, s, results); err != nil {
			return err
		}
	}
	if !cfg.JSON {
		return nil
	}
	jsonPath := filepath.Join(cfg.ResultsDir, fmt.Sprintf("ber_%v.json", s))
	meta := report.Run{Scheme: s, Bits: exp.Bits(), Seed: cfg.Seed, Reseed: cfg.Reseed}
	if err := writeFile(jsonPath, func(w io.Writer) error {
		return report.WriteJSON(w, meta, results)
	}); err != nil {
		return err
	}
	log.Printf("saved %s", jsonPath)
	return nil
}

func savePlot(dir string, s awgn.Scheme, results []awgn.Result) error {
	var buf bytes.Buffer
	err := report.WritePlot(&buf, s, results)
	if errors.Is(err, report.ErrNothingToPlot) {
		log.Printf("Not plotting %v: %v", s, err)
		return nil
	}
	if err != nil {
		return err
	}
	pngPath := filepath.Join(dir, fmt.Sprintf("ber_%v.png", s))
	if err := os.WriteFile(pngPath, buf.Bytes(), 0644); err != nil {
		return err
	}
	log.Printf("saved %s", pngPath)
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
