package bitmap

import "strings"

// A Dense is a bitmap where every bit is explicitly represented. Bit i lives in
// byte i/8 at position i%8. Bits past Size() are always zero.
type Dense struct {
	bits []byte
	len  int
}

// NewDense returns a new dense bitmap whose contents are a view of data, and
// whose length is bitLen. If bitLen is longer than data, then trailing zeros
// are added. If bitLen is negative, then it is inferred from data. Any bits of
// data past bitLen are cleared.
func NewDense(data []byte, bitLen int) Dense {
	if bitLen < 0 {
		bitLen = len(data) * byteSize
	}
	r := Dense{
		bits: data,
		len:  bitLen,
	}
	r.allocSpace()
	r.clearTail()
	return r
}

// Get returns the i-th bit in this bitmap.
func (d Dense) Get(i int) bool {
	if i < 0 || i >= d.len {
		return false
	}
	block := d.bits[i/byteSize]
	return 0 < block&(1<<(i%byteSize))
}

// Size returns the number of bits in this bitmap.
func (d Dense) Size() int {
	return d.len
}

// SizeBytes returns the number of bytes in this bitmap.
func (d Dense) SizeBytes() int {
	return BytesFor(d.len)
}

// Data returns a view of the bytes underlying this bitmap. Modifying the
// returned slice modifies this bitmap.
func (d Dense) Data() []byte {
	return d.bits
}

// Bits unpacks d into a freshly allocated slice holding one bit per byte.
func (d Dense) Bits() []byte {
	r := make([]byte, d.len)
	for i := range r {
		if d.Get(i) {
			r[i] = 1
		}
	}
	return r
}

// String renders d as '0's and '1's, grouped into bytes.
func (d Dense) String() string {
	var sb strings.Builder
	for i := 0; i < d.len; i++ {
		if i > 0 && i%byteSize == 0 {
			sb.WriteByte(' ')
		}
		if d.Get(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Set sets the i-th bit to bit.
func (d *Dense) Set(i int, bit bool) {
	j, pos := i/byteSize, i%byteSize
	if bit {
		d.bits[j] |= 1 << pos
	} else {
		d.bits[j] &= ^(1 << pos)
	}
}

// Flip inverts the i-th bit.
func (d *Dense) Flip(i int) {
	j, pos := i/byteSize, i%byteSize
	d.bits[j] ^= 1 << pos
}

// AppendBit adds a single bit to the end of d.
func (d *Dense) AppendBit(bit bool) {
	i, pos := d.len/byteSize, d.len%byteSize
	d.len += 1
	if pos == 0 {
		d.bits = append(d.bits, 0)
	}
	if bit {
		d.bits[i] |= 1 << pos
	} else {
		d.bits[i] &= ^(1 << pos)
	}
}

func (d *Dense) allocSpace() {
	for len(d.bits) < d.SizeBytes() {
		d.bits = append(d.bits, 0)
	}
	d.bits = d.bits[:d.SizeBytes()]
}

func (d *Dense) clearTail() {
	off := d.len % byteSize
	if off == 0 {
		return
	}
	d.bits[len(d.bits)-1] &= 0xFF >> (byteSize - off)
}
