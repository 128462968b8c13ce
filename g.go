package argon2core

// g implements the BLAKE2b mixing function as adapted by Argon2: the two
// additions are replaced by fBlaMka(a, b) = a + b + 2*lo32(a)*lo32(b), which
// adds extra diffusion through the multiplication. An all-zero input still
// maps to an all-zero output.
func g(a, b, c, d uint64) (uint64, uint64, uint64, uint64) {
	a = a + b + 2*uint64(uint32(a))*uint64(uint32(b))
	d = rotr64(d^a, 32)
	c = c + d + 2*uint64(uint32(c))*uint64(uint32(d))
	b = rotr64(b^c, 24)

	a = a + b + 2*uint64(uint32(a))*uint64(uint32(b))
	d = rotr64(d^a, 16)
	c = c + d + 2*uint64(uint32(c))*uint64(uint32(d))
	b = rotr64(b^c, 63)

	return a, b, c, d
}

func rotr64(x uint64, n uint) uint64 {
	return (x >> n) | (x << (64 - n))
}

// gRound applies g across columns then diagonals of a 16-word group, i.e.
// one full BLAKE2b round over those 16 words.
func gRound(v []uint64) {
	v[0], v[4], v[8], v[12] = g(v[0], v[4], v[8], v[12])
	v[1], v[5], v[9], v[13] = g(v[1], v[5], v[9], v[13])
	v[2], v[6], v[10], v[14] = g(v[2], v[6], v[10], v[14])
	v[3], v[7], v[11], v[15] = g(v[3], v[7], v[11], v[15])

	v[0], v[5], v[10], v[15] = g(v[0], v[5], v[10], v[15])
	v[1], v[6], v[11], v[12] = g(v[1], v[6], v[11], v[12])
	v[2], v[7], v[8], v[13] = g(v[2], v[7], v[8], v[13])
	v[3], v[4], v[9], v[14] = g(v[3], v[4], v[9], v[14])
}
