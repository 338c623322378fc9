package awgn

import (
	"fmt"
	"math"

	"github.com/alan-christopher/awgnber/awgn/bitmap"
	"github.com/alan-christopher/awgnber/awgn/channel"
)

// CountErrors returns the number of positions at which tx and rx differ. It
// panics with an error wrapping ErrLengthMismatch if their sizes differ.
func CountErrors(tx, rx bitmap.Dense) int {
	mustMatch(tx.Size(), rx.Size())
	return bitmap.CountOnes(bitmap.XOr(tx, rx))
}

// BER returns the fraction of bits in rx which differ from tx. Empty input is
// an error; mismatched lengths panic, as for CountErrors.
func BER(tx, rx bitmap.Dense) (float64, error) {
	mustMatch(tx.Size(), rx.Size())
	if tx.Size() == 0 {
		return 0, fmt.Errorf("%w: cannot compute BER of empty sequences", ErrInvalidInput)
	}
	return float64(CountErrors(tx, rx)) / float64(tx.Size()), nil
}

// CountSymbolErrors returns the number of symbols of scheme s with at least one
// bit in error. Lengths must match and fill whole symbols.
func CountSymbolErrors(tx, rx bitmap.Dense, s Scheme) (int, error) {
	mustMatch(tx.Size(), rx.Size())
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if err := checkBitCount(tx.Size(), s); err != nil {
		return 0, err
	}
	k := s.BitsPerSymbol()
	diff := bitmap.XOr(tx, rx)
	errs := 0
	for i := 0; i < diff.Size(); i += k {
		for j := i; j < i+k; j++ {
			if diff.Get(j) {
				errs++
				break
			}
		}
	}
	return errs, nil
}

// SER returns the fraction of symbols of scheme s decided incorrectly.
func SER(tx, rx bitmap.Dense, s Scheme) (float64, error) {
	errs, err := CountSymbolErrors(tx, rx, s)
	if err != nil {
		return 0, err
	}
	return float64(errs) / float64(tx.Size()/s.BitsPerSymbol()), nil
}

// TheoreticalBER returns the exact hard-decision BER of scheme s at snrDB:
//
//	BPSK: 0.5*erfc(sqrt(Es/N0))
//	QPSK: 0.5*erfc(sqrt(Es/N0 / 2))
//
// The result lies in [0, 0.5]; +Inf dB yields 0 and -Inf dB yields 0.5.
func TheoreticalBER(snrDB float64, s Scheme) (float64, error) {
	m, snr, err := theoryArgs(snrDB, s)
	if err != nil {
		return 0, err
	}
	return clamp(m.theoryBER(snr), 0, 0.5), nil
}

// TheoreticalSER returns the exact hard-decision symbol error rate of scheme s
// at snrDB.
func TheoreticalSER(snrDB float64, s Scheme) (float64, error) {
	m, snr, err := theoryArgs(snrDB, s)
	if err != nil {
		return 0, err
	}
	return clamp(m.theorySER(snr), 0, 1), nil
}

func theoryArgs(snrDB float64, s Scheme) (modem, float64, error) {
	m, err := s.modem()
	if err != nil {
		return nil, 0, err
	}
	if math.IsNaN(snrDB) {
		return nil, 0, fmt.Errorf("%w: SNR is NaN", ErrInvalidInput)
	}
	return m, channel.SNRToLinear(snrDB), nil
}

func mustMatch(txLen, rxLen int) {
	if txLen != rxLen {
		panic(fmt.Errorf("%w: transmitted %d bits, received %d", ErrLengthMismatch, txLen, rxLen))
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
