// Package channel provides models of the medium between a modulator and a
// demodulator.
package channel

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSNR is returned for SNR values that do not map to a positive,
// finite linear ratio.
var ErrInvalidSNR = errors.New("invalid SNR")

// A Channel carries baseband symbols from a transmitter to a receiver.
type Channel interface {
	// Transmit returns what the receiver observes when symbols are sent. The
	// input slice is never modified.
	Transmit(symbols []complex128) []complex128
}

// SNRToLinear converts an SNR in dB to a linear power ratio.
func SNRToLinear(db float64) float64 {
	return math.Pow(10, db/10)
}

// NoiseVariance returns the AWGN variance needed to reach snrDB, interpreted as
// Es/N0 with unit symbol energy.
//
// For real noise the variance is N0/2 = 1/(2*SNR). For circular complex noise
// it is the total E[|n|^2] = N0 = 1/SNR, half of which lands on each axis.
func NoiseVariance(snrDB float64, complexNoise bool) (float64, error) {
	snr := SNRToLinear(snrDB)
	if math.IsNaN(snr) || math.IsInf(snr, 0) || snr <= 0 {
		return 0, fmt.Errorf("%w: %v dB", ErrInvalidSNR, snrDB)
	}
	if complexNoise {
		return 1 / snr, nil
	}
	return 1 / (2 * snr), nil
}

// Noiseless is a Channel that delivers symbols untouched.
type Noiseless struct{}

// Transmit implements the Channel interface.
func (Noiseless) Transmit(symbols []complex128) []complex128 {
	r := make([]complex128, len(symbols))
	copy(r, symbols)
	return r
}
