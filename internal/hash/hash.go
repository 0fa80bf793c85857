package hash

// Mix64 scrambles a 64-bit word so that near-identical inputs (sequential
// handles, aligned addresses) land in unrelated buckets. Shifts are
// arithmetic on the signed representation.
func Mix64(x uint64) uint64 {
	r := ^(int64(x) << 32) + int64(x)
	r ^= r >> 22
	r += ^(r << 13)
	r = (r ^ r>>8) * 9
	r ^= r >> 15
	r += ^(r << 27)
	return uint64(r ^ r>>31)
}

// String returns the multiply-by-33 hash of s.
func String(s string) uint64 {
	var h uint64
	for i := 0; i < len(s); i++ {
		h = h*33 + uint64(s[i])
	}
	return h
}
