package awgn

import (
	"fmt"
	"math"

	"github.com/alan-christopher/awgnber/awgn/bitmap"
)

// A modem implements the scheme-specific parts of the simulation chain.
type modem interface {
	bitsPerSymbol() int
	// complexNoise reports whether the scheme occupies both the in-phase and
	// quadrature axes, and so needs circular complex noise.
	complexNoise() bool
	modulate(bits bitmap.Dense) []complex128
	demodulate(rx []complex128) bitmap.Dense
	// theoryBER and theorySER take a linear Es/N0.
	theoryBER(snr float64) float64
	theorySER(snr float64) float64
}

// Modulate maps bits onto unit-energy symbols of scheme s.
//
// BPSK sends 2b-1 on the in-phase axis. QPSK consumes bits in pairs (b0, b1)
// and sends ((2b0-1) + j(2b1-1))/sqrt(2). Since each axis carries exactly one
// bit, neighbouring QPSK points differ in exactly one bit (Gray coding).
func Modulate(bits bitmap.Dense, s Scheme) ([]complex128, error) {
	m, err := s.modem()
	if err != nil {
		return nil, err
	}
	if err := checkBitCount(bits.Size(), s); err != nil {
		return nil, err
	}
	return m.modulate(bits), nil
}

// Demodulate makes hard, minimum-distance decisions on received symbols rx,
// returning BitsPerSymbol() bits per symbol.
func Demodulate(rx []complex128, s Scheme) (bitmap.Dense, error) {
	m, err := s.modem()
	if err != nil {
		return bitmap.Empty(), err
	}
	return m.demodulate(rx), nil
}

// Constellation returns the ideal symbols of s, indexed by the bits they carry:
// bit k of the index is the k-th bit of the symbol.
func Constellation(s Scheme) ([]complex128, error) {
	m, err := s.modem()
	if err != nil {
		return nil, err
	}
	k := m.bitsPerSymbol()
	points := make([]complex128, 1<<k)
	for idx := range points {
		bits := bitmap.NewDense([]byte{byte(idx)}, k)
		points[idx] = m.modulate(bits)[0]
	}
	return points, nil
}

func checkBitCount(n int, s Scheme) error {
	if n <= 0 {
		return fmt.Errorf("%w: need a positive bit count, got %d", ErrInvalidInput, n)
	}
	k := s.BitsPerSymbol()
	if k == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidScheme, s)
	}
	if n%k != 0 {
		return fmt.Errorf("%w: %v needs a multiple of %d bits, got %d", ErrInvalidInput, s, k, n)
	}
	return nil
}

// antipodal maps a bit to -1 or +1.
func antipodal(b bool) float64 {
	if b {
		return 1
	}
	return -1
}

type bpsk struct{}

func (bpsk) bitsPerSymbol() int { return 1 }
func (bpsk) complexNoise() bool { return false }

func (bpsk) modulate(bits bitmap.Dense) []complex128 {
	symbols := make([]complex128, bits.Size())
	for i := range symbols {
		symbols[i] = complex(antipodal(bits.Get(i)), 0)
	}
	return symbols
}

func (bpsk) demodulate(rx []complex128) bitmap.Dense {
	bits := bitmap.NewDense(nil, len(rx))
	for i, y := range rx {
		if real(y) > 0 {
			bits.Set(i, true)
		}
	}
	return bits
}

func (bpsk) theoryBER(snr float64) float64 {
	return 0.5 * math.Erfc(math.Sqrt(snr))
}

func (b bpsk) theorySER(snr float64) float64 {
	return b.theoryBER(snr)
}

type qpsk struct{}

func (qpsk) bitsPerSymbol() int { return 2 }
func (qpsk) complexNoise() bool { return true }

func (qpsk) modulate(bits bitmap.Dense) []complex128 {
	symbols := make([]complex128, bits.Size()/2)
	for i := range symbols {
		symbols[i] = complex(antipodal(bits.Get(2*i)), antipodal(bits.Get(2*i+1))) / math.Sqrt2
	}
	return symbols
}

func (qpsk) demodulate(rx []complex128) bitmap.Dense {
	bits := bitmap.NewDense(nil, 2*len(rx))
	for i, y := range rx {
		if real(y) > 0 {
			bits.Set(2*i, true)
		}
		if imag(y) > 0 {
			bits.Set(2*i+1, true)
		}
	}
	return bits
}

// Each axis sees amplitude 1/sqrt(2) against per-axis noise N0/2, so Eb/N0 is
// half of Es/N0.
func (qpsk) theoryBER(snr float64) float64 {
	return 0.5 * math.Erfc(math.Sqrt(snr/2))
}

// A symbol survives iff both of its independent axis decisions do.
func (q qpsk) theorySER(snr float64) float64 {
	p := q.theoryBER(snr)
	return 2*p - p*p
}
