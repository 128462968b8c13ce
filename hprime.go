package argon2core

import (
	"encoding/binary"

	"github.com/opd-ai/argon2core/internal/blake2b"
)

// hPrime is Argon2's length-doubling hash H': it expands seed into exactly
// outLen bytes.
//
//   - outLen <= 64: a single BLAKE2b call with digest length outLen over
//     (little-endian uint32 outLen) || seed.
//   - outLen > 64: V1 = BLAKE2b_64(outLen || seed); Vi = BLAKE2b_64(V{i-1})
//     for i = 2..r+1 where r = ceil(outLen/32) - 2; emit the first 32 bytes
//     of each of V1..Vr, then the full BLAKE2b_{outLen-32r}(Vr).
func hPrime(out []byte, seed []byte) error {
	outLen := len(out)

	var lenPrefix [4]byte
	binary.LittleEndian.PutUint32(lenPrefix[:], uint32(outLen))

	prefixed := make([]byte, 0, 4+len(seed))
	prefixed = append(prefixed, lenPrefix[:]...)
	prefixed = append(prefixed, seed...)

	if outLen <= 64 {
		return blake2b.Sum(out, nil, prefixed)
	}

	var v [64]byte
	if err := blake2b.Sum(v[:], nil, prefixed); err != nil {
		return err
	}
	copied := copy(out, v[:32])

	for copied < outLen {
		remaining := outLen - copied
		var next [64]byte
		if remaining > 64 {
			if err := blake2b.Sum(next[:], nil, v[:]); err != nil {
				return err
			}
			v = next
			copied += copy(out[copied:], v[:32])
		} else {
			last := make([]byte, remaining)
			if err := blake2b.Sum(last, nil, v[:]); err != nil {
				return err
			}
			copied += copy(out[copied:], last)
		}
	}
	return nil
}
