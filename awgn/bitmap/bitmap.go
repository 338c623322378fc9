// Package bitmap provides utilities for operating on densely-packed sequences
// of bits.
package bitmap

import (
	"fmt"
	"math/bits"
)

// TODO: XOr and CountOnes would be faster over 64-bit words than bytes.
const byteSize = 8

// Empty returns an empty, dense bitmap.
func Empty() Dense {
	return Dense{}
}

// FromString converts a string of '1's and '0's to a Dense. Spaces are ignored.
func FromString(s string) (Dense, error) {
	d := Dense{}
	for _, c := range s {
		switch c {
		case '1':
			d.AppendBit(true)
		case '0':
			d.AppendBit(false)
		case ' ':
			continue
		default:
			return Dense{}, fmt.Errorf("invalid bitmap string rep: %s", s)
		}
	}
	return d, nil
}

// FromBits converts an unpacked slice holding one bit per byte into a Dense.
// Every element must be 0 or 1.
func FromBits(b []byte) (Dense, error) {
	d := NewDense(nil, len(b))
	for i, v := range b {
		switch v {
		case 0:
		case 1:
			d.Set(i, true)
		default:
			return Dense{}, fmt.Errorf("invalid bit %d at position %d", v, i)
		}
	}
	return d, nil
}

// CountOnes returns the total number of bits set in d.
func CountOnes(d Dense) int {
	var sum int
	for _, b := range d.bits {
		sum += bits.OnesCount8(b)
	}
	return sum
}

// Equal returns true iff a and b have the same size and contain the same bits.
func Equal(a, b Dense) bool {
	return a.len == b.len && CountOnes(XOr(a, b)) == 0
}

// BytesFor returns the number of bytes necessary to hold the provided number of
// bits.
func BytesFor(bits int) int {
	return (bits + byteSize - 1) / byteSize
}
