// Package awgn provides utilities for estimating the bit error rate of BPSK and
// QPSK over an additive white Gaussian noise channel, and for comparing those
// estimates with closed-form theory.
//
// All SNR values are Es/N0 in dB, with constellations normalized to unit
// average symbol energy. Randomness is always drawn from an explicitly provided
// *rand.Rand, so a fixed seed reproduces results exactly.
package awgn

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput reports a bad bit count or an empty sequence.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidScheme reports an unrecognized modulation scheme.
	ErrInvalidScheme = errors.New("invalid modulation scheme")
	// ErrLengthMismatch reports transmitted and received sequences of different
	// lengths. It indicates a defect and is raised via panic, never returned.
	ErrLengthMismatch = errors.New("length mismatch")
)

// A Scheme identifies a modulation scheme. The zero Scheme is invalid.
type Scheme int

const (
	BPSK Scheme = iota + 1 // 1 bit per symbol
	QPSK                   // 2 bits per symbol, Gray coded
)

// Schemes lists every supported Scheme.
var Schemes = []Scheme{BPSK, QPSK}

// ParseScheme converts a scheme name, e.g. "bpsk" or "QPSK", to a Scheme.
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bpsk":
		return BPSK, nil
	case "qpsk":
		return QPSK, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidScheme, name)
}

// String returns the lower-case scheme name.
func (s Scheme) String() string {
	switch s {
	case BPSK:
		return "bpsk"
	case QPSK:
		return "qpsk"
	default:
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
}

// BitsPerSymbol returns the number of bits carried by each symbol, or 0 for an
// invalid Scheme.
func (s Scheme) BitsPerSymbol() int {
	m, err := s.modem()
	if err != nil {
		return 0
	}
	return m.bitsPerSymbol()
}

// Validate returns an error wrapping ErrInvalidScheme if s is not supported.
func (s Scheme) Validate() error {
	_, err := s.modem()
	return err
}

func (s Scheme) modem() (modem, error) {
	switch s {
	case BPSK:
		return bpsk{}, nil
	case QPSK:
		return qpsk{}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrInvalidScheme, s)
}
