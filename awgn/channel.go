package awgn

import (
	"math"

	"github.com/alan-christopher/awgnber/awgn/channel"
	"golang.org/x/exp/rand"
)

// NewChannel returns the AWGN channel appropriate for scheme s at snrDB: real
// noise for BPSK, circular complex noise for QPSK. An SNR of +Inf, or one whose
// linear ratio overflows, yields a noiseless channel.
func NewChannel(snrDB float64, s Scheme, r *rand.Rand) (channel.Channel, error) {
	m, err := s.modem()
	if err != nil {
		return nil, err
	}
	if noiseless(snrDB) {
		return channel.Noiseless{}, nil
	}
	a, err := channel.NewAWGN(snrDB, m.complexNoise(), r)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ApplyAWGN passes symbols through an AWGN channel at snrDB, drawing noise from
// r. symbols is left untouched.
func ApplyAWGN(symbols []complex128, snrDB float64, s Scheme, r *rand.Rand) ([]complex128, error) {
	ch, err := NewChannel(snrDB, s, r)
	if err != nil {
		return nil, err
	}
	return ch.Transmit(symbols), nil
}

// noiseless reports whether snrDB is too large for any noise to remain.
func noiseless(snrDB float64) bool {
	return math.IsInf(channel.SNRToLinear(snrDB), 1)
}
