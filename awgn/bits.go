package awgn

import (
	"fmt"

	"github.com/alan-christopher/awgnber/awgn/bitmap"
	"golang.org/x/exp/rand"
)

// RandomBits returns n independent, uniformly distributed bits drawn from r.
func RandomBits(n int, r *rand.Rand) (bitmap.Dense, error) {
	if n <= 0 {
		return bitmap.Empty(), fmt.Errorf("%w: need a positive bit count, got %d", ErrInvalidInput, n)
	}
	buf := make([]byte, bitmap.BytesFor(n))
	r.Read(buf)
	return bitmap.NewDense(buf, n), nil
}

// RandomBitsFor is like RandomBits, but additionally requires n to fill a whole
// number of symbols of scheme s.
func RandomBitsFor(n int, s Scheme, r *rand.Rand) (bitmap.Dense, error) {
	if err := s.Validate(); err != nil {
		return bitmap.Empty(), err
	}
	if err := checkBitCount(n, s); err != nil {
		return bitmap.Empty(), err
	}
	return RandomBits(n, r)
}
