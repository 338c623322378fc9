package awgn

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"math/cmplx"
	"testing"

	"github.com/alan-christopher/awgnber/awgn/bitmap"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

func mustBits(t *testing.T, s string) bitmap.Dense {
	d, err := bitmap.FromString(s)
	if err != nil {
		t.Fatalf("bugged test setup: %v", err)
	}
	return d
}

func TestModulate(t *testing.T) {
	h := 1 / math.Sqrt2
	tcs := []struct {
		name   string
		bits   string
		scheme Scheme
		eout   []complex128
	}{
		{"bpsk zero", "0", BPSK, []complex128{-1}},
		{"bpsk one", "1", BPSK, []complex128{1}},
		{"bpsk mixed", "1001", BPSK, []complex128{1, -1, -1, 1}},
		{"qpsk 00", "00", QPSK, []complex128{complex(-h, -h)}},
		{"qpsk 10", "10", QPSK, []complex128{complex(h, -h)}},
		{"qpsk 01", "01", QPSK, []complex128{complex(-h, h)}},
		{"qpsk 11", "11", QPSK, []complex128{complex(h, h)}},
		{"qpsk multi", "1101 1000 01", QPSK, []complex128{
			complex(h, h), complex(-h, h), complex(h, -h), complex(-h, -h), complex(-h, h)}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Modulate(mustBits(t, tc.bits), tc.scheme)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(out) != len(tc.eout) {
				t.Fatalf("got %d symbols, want %d", len(out), len(tc.eout))
			}
			for i := range out {
				if cmplx.Abs(out[i]-tc.eout[i]) > 1e-15 {
					t.Errorf("symbol %d == %v, want %v", i, out[i], tc.eout[i])
				}
			}
		})
	}
}

func TestModulateErrors(t *testing.T) {
	tcs := []struct {
		name   string
		bits   bitmap.Dense
		scheme Scheme
		eErr   error
	}{
		{"unknown scheme", mustBits(t, "10"), Scheme(9), ErrInvalidScheme},
		{"zero scheme", mustBits(t, "10"), 0, ErrInvalidScheme},
		{"qpsk odd", mustBits(t, "101"), QPSK, ErrInvalidInput},
		{"bpsk empty", bitmap.Empty(), BPSK, ErrInvalidInput},
		{"qpsk empty", bitmap.Empty(), QPSK, ErrInvalidInput},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Modulate(tc.bits, tc.scheme); !errors.Is(err, tc.eErr) {
				t.Errorf("Modulate() error == %v, want %v", err, tc.eErr)
			}
		})
	}
}

func TestDemodulate(t *testing.T) {
	tcs := []struct {
		name   string
		rx     []complex128
		scheme Scheme
		eout   string
	}{
		{"bpsk signs", []complex128{0.3, -0.2, 5, -7}, BPSK, "1010"},
		{"bpsk zero is 0", []complex128{0, complex(0, 3)}, BPSK, "00"},
		{"bpsk ignores quadrature", []complex128{complex(0.1, -9)}, BPSK, "1"},
		{"qpsk quadrants", []complex128{complex(1, 1), complex(-1, 1), complex(-1, -1), complex(1, -1)}, QPSK, "1101 0010"},
		{"qpsk zero axes", []complex128{0, complex(0, 0.1), complex(0.1, 0)}, QPSK, "0001 10"},
		{"empty", nil, QPSK, ""},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Demodulate(tc.rx, tc.scheme)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if want := mustBits(t, tc.eout); !bitmap.Equal(out, want) {
				t.Errorf("Demodulate(%v) == %v, want %v", tc.rx, out, want)
			}
		})
	}
}

func TestDemodulateInvalidScheme(t *testing.T) {
	if _, err := Demodulate([]complex128{1}, Scheme(3)); !errors.Is(err, ErrInvalidScheme) {
		t.Errorf("Demodulate() error == %v, want ErrInvalidScheme", err)
	}
}

func TestNoiselessRoundTrip(t *testing.T) {
	for _, s := range Schemes {
		for seed := uint64(0); seed < 8; seed++ {
			for _, n := range []int{2, 8, 10, 1000, 4098} {
				t.Run(fmt.Sprintf("%v/seed=%d/n=%d", s, seed, n), func(t *testing.T) {
					tx, err := RandomBitsFor(n, s, rand.New(rand.NewSource(seed)))
					if err != nil {
						t.Fatalf("unexpected error: %v", err)
					}
					symbols, err := Modulate(tx, s)
					if err != nil {
						t.Fatalf("unexpected error: %v", err)
					}
					if len(symbols) != n/s.BitsPerSymbol() {
						t.Errorf("got %d symbols, want %d", len(symbols), n/s.BitsPerSymbol())
					}
					rx, err := Demodulate(symbols, s)
					if err != nil {
						t.Fatalf("unexpected error: %v", err)
					}
					if !bitmap.Equal(tx, rx) {
						t.Errorf("noiseless round trip changed bits: %d errors", CountErrors(tx, rx))
					}
				})
			}
		}
	}
}

func TestConstellationGray(t *testing.T) {
	for _, s := range Schemes {
		t.Run(s.String(), func(t *testing.T) {
			points, err := Constellation(s)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(points) != 1<<s.BitsPerSymbol() {
				t.Fatalf("got %d points, want %d", len(points), 1<<s.BitsPerSymbol())
			}
			// Nearest neighbours must differ in exactly one bit.
			for i, p := range points {
				dMin := math.Inf(1)
				for j, q := range points {
					if i != j {
						dMin = math.Min(dMin, cmplx.Abs(p-q))
					}
				}
				for j, q := range points {
					if i == j || cmplx.Abs(p-q) > dMin+1e-12 {
						continue
					}
					if d := bits.OnesCount(uint(i ^ j)); d != 1 {
						t.Errorf("neighbours %02b (%v) and %02b (%v) differ in %d bits", i, p, j, q, d)
					}
				}
			}
		})
	}
}

func TestConstellationDemapsToIndex(t *testing.T) {
	for _, s := range Schemes {
		points, err := Constellation(s)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for idx, p := range points {
			rx, err := Demodulate([]complex128{p}, s)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := bitmap.NewDense([]byte{byte(idx)}, s.BitsPerSymbol())
			if !bitmap.Equal(rx, want) {
				t.Errorf("%v: point %v demaps to %v, want %v", s, p, rx, want)
			}
		}
	}
}

func TestUnitSymbolEnergy(t *testing.T) {
	const n = 100000
	for _, s := range Schemes {
		t.Run(s.String(), func(t *testing.T) {
			tx, err := RandomBitsFor(n, s, rand.New(rand.NewSource(11)))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			symbols, err := Modulate(tx, s)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			energy := make([]float64, len(symbols))
			for i, y := range symbols {
				energy[i] = real(y)*real(y) + imag(y)*imag(y)
			}
			if es := stat.Mean(energy, nil); math.Abs(es-1) > 1e-12 {
				t.Errorf("average symbol energy == %v, want 1", es)
			}
		})
	}
}

func BenchmarkModulateDemodulateQPSK(b *testing.B) {
	tx, err := RandomBitsFor(1<<16, QPSK, rand.New(rand.NewSource(1)))
	if err != nil {
		b.Fatalf("unexpected error: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		symbols, _ := Modulate(tx, QPSK)
		Demodulate(symbols, QPSK)
	}
}
