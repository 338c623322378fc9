package awgn

import (
	"context"
	"fmt"
	"runtime"

	"github.com/alan-christopher/awgnber/awgn/bitmap"
	"github.com/alan-christopher/awgnber/awgn/channel"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// DefaultBits is the number of bits a sweep sends per SNR point when the caller
// has no better idea.
const DefaultBits = 200000

// DefaultSNRdB returns the Es/N0 points, in dB, swept when the caller has no
// better idea. Every call returns a fresh slice.
func DefaultSNRdB() []float64 {
	return []float64{0, 2, 4, 6, 8, 10}
}

// A Result packages together the outcome of simulating a single SNR point.
type Result struct {
	SNRdB float64

	Bits      int
	BitErrors int
	BER       float64

	Symbols      int
	SymbolErrors int
	SER          float64

	TheoreticalBER float64
	TheoreticalSER float64
}

// An ExperimentOpts packages together the arguments necessary to construct a
// new Experiment. Scheme, SNRdB and Bits have no defaults; leaving them to
// zero-initialize results in NewExperiment returning an error.
type ExperimentOpts struct {
	Scheme Scheme

	// SNRdB lists the Es/N0 points to simulate, in dB. +Inf, and any finite
	// value so large that its linear ratio overflows, simulates a noiseless
	// channel. Values so small that the linear ratio underflows to zero (below
	// roughly -3233 dB) are rejected.
	SNRdB []float64

	// Bits specifies the number of bits to send per SNR point. For QPSK this
	// must be even unless PadOddBits is set.
	Bits int

	// PadOddBits rounds an odd QPSK bit count up by one instead of failing.
	PadOddBits bool

	// Seed seeds the random number generator.
	Seed int64

	// Reseed gives every SNR point its own generator, seeded with Seed+i for
	// the i-th point, and lets points run in parallel. Otherwise a single
	// generator is consumed sequentially: the bits are drawn once and shared by
	// every point, followed by each point's noise in order.
	Reseed bool

	// Workers bounds the number of points simulated concurrently when Reseed is
	// set. Defaults to GOMAXPROCS.
	Workers int
}

// An Experiment simulates one scheme over a list of SNR points.
type Experiment struct {
	scheme  Scheme
	snrDB   []float64
	bits    int
	seed    int64
	reseed  bool
	workers int
}

// NewExperiment returns a new Experiment configured in accordance with opts, or
// an error if the options are nonsensical. All validation happens here, before
// any simulation work.
func NewExperiment(opts ExperimentOpts) (*Experiment, error) {
	if err := opts.Scheme.Validate(); err != nil {
		return nil, err
	}
	if len(opts.SNRdB) == 0 {
		return nil, fmt.Errorf("%w: no SNR points", ErrInvalidInput)
	}
	for _, db := range opts.SNRdB {
		if noiseless(db) {
			continue
		}
		if _, err := channel.NoiseVariance(db, false); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	bits := opts.Bits
	if opts.PadOddBits && bits > 0 {
		if k := opts.Scheme.BitsPerSymbol(); bits%k != 0 {
			bits += k - bits%k
		}
	}
	if err := checkBitCount(bits, opts.Scheme); err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Experiment{
		scheme:  opts.Scheme,
		snrDB:   append([]float64(nil), opts.SNRdB...),
		bits:    bits,
		seed:    opts.Seed,
		reseed:  opts.Reseed,
		workers: workers,
	}, nil
}

// Scheme returns the scheme e simulates.
func (e *Experiment) Scheme() Scheme { return e.scheme }

// Bits returns the number of bits sent per SNR point, after any padding.
func (e *Experiment) Bits() int { return e.bits }

// Run simulates every SNR point and returns one Result per point, in the order
// the points were given.
func (e *Experiment) Run(ctx context.Context) ([]Result, error) {
	if e.reseed {
		return e.runReseeded(ctx)
	}
	return e.runSequential(ctx)
}

func (e *Experiment) runSequential(ctx context.Context) ([]Result, error) {
	r := rand.New(rand.NewSource(uint64(e.seed)))
	tx, symbols, err := e.transmit(r)
	if err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(e.snrDB))
	for _, db := range e.snrDB {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := e.receive(tx, symbols, db, r)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (e *Experiment) runReseeded(ctx context.Context) ([]Result, error) {
	results := make([]Result, len(e.snrDB))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, db := range e.snrDB {
		i, db := i, db
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r := rand.New(rand.NewSource(uint64(e.seed) + uint64(i)))
			tx, symbols, err := e.transmit(r)
			if err != nil {
				return err
			}
			results[i], err = e.receive(tx, symbols, db, r)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Experiment) transmit(r *rand.Rand) (bitmap.Dense, []complex128, error) {
	tx, err := RandomBitsFor(e.bits, e.scheme, r)
	if err != nil {
		return bitmap.Empty(), nil, err
	}
	symbols, err := Modulate(tx, e.scheme)
	if err != nil {
		return bitmap.Empty(), nil, err
	}
	return tx, symbols, nil
}

func (e *Experiment) receive(tx bitmap.Dense, symbols []complex128, snrDB float64, r *rand.Rand) (Result, error) {
	rx, err := ApplyAWGN(symbols, snrDB, e.scheme, r)
	if err != nil {
		return Result{}, err
	}
	rxBits, err := Demodulate(rx, e.scheme)
	if err != nil {
		return Result{}, err
	}
	res := Result{
		SNRdB:     snrDB,
		Bits:      tx.Size(),
		BitErrors: CountErrors(tx, rxBits),
		Symbols:   len(symbols),
	}
	res.BER = float64(res.BitErrors) / float64(res.Bits)
	if res.SymbolErrors, err = CountSymbolErrors(tx, rxBits, e.scheme); err != nil {
		return Result{}, err
	}
	res.SER = float64(res.SymbolErrors) / float64(res.Symbols)
	if res.TheoreticalBER, err = TheoreticalBER(snrDB, e.scheme); err != nil {
		return Result{}, err
	}
	if res.TheoreticalSER, err = TheoreticalSER(snrDB, e.scheme); err != nil {
		return Result{}, err
	}
	return res, nil
}
