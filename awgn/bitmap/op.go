package bitmap

// XOr returns the bitwise XOR of two bitmaps. The shorter of the two is
// implicitly padded with zeros.
func XOr(a, b Dense) Dense {
	short, long := a, b
	if b.len < a.len {
		short, long = b, a
	}
	r := Dense{
		bits: make([]byte, 0, BytesFor(long.len)),
		len:  long.len,
	}
	for i := range short.bits {
		r.bits = append(r.bits, a.bits[i]^b.bits[i])
	}
	r.bits = append(r.bits, long.bits[len(short.bits):]...)
	return r
}
