package channel

import (
	"math"

	"golang.org/x/exp/rand"
)

// An AWGN is a Channel adding white Gaussian noise to every symbol. Noise is
// either real, touching only the in-phase component, or circularly-symmetric
// complex with the variance split evenly between the two axes.
type AWGN struct {
	// Variance is the total noise power per symbol.
	Variance float64
	Complex  bool

	rand *rand.Rand
}

// NewAWGN returns an AWGN channel operating at snrDB (Es/N0). All noise is
// drawn from r, which must be non-nil.
func NewAWGN(snrDB float64, complexNoise bool, r *rand.Rand) (*AWGN, error) {
	v, err := NoiseVariance(snrDB, complexNoise)
	if err != nil {
		return nil, err
	}
	return &AWGN{Variance: v, Complex: complexNoise, rand: r}, nil
}

// Sigma returns the noise standard deviation applied to each axis that
// receives noise.
func (a *AWGN) Sigma() float64 {
	if a.Complex {
		return math.Sqrt(a.Variance / 2)
	}
	return math.Sqrt(a.Variance)
}

// Transmit implements the Channel interface. Real noise consumes one draw per
// symbol. Complex noise consumes one draw per symbol for the in-phase axis,
// then one per symbol for the quadrature axis. Each draw is a standard normal
// variate from the channel's generator scaled by Sigma, the same sequence a
// distuv.Normal sourcing from that generator would produce.
func (a *AWGN) Transmit(symbols []complex128) []complex128 {
	sigma := a.Sigma()
	rx := make([]complex128, len(symbols))
	for i, s := range symbols {
		rx[i] = s + complex(sigma*a.rand.NormFloat64(), 0)
	}
	if !a.Complex {
		return rx
	}
	for i := range rx {
		rx[i] += complex(0, sigma*a.rand.NormFloat64())
	}
	return rx
}
