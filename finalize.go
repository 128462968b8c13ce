package argon2core

// finalize XORs the last block of every lane together and expands the
// result via H' into the caller's output buffer (spec.md §4.7).
func finalize(out []byte, memory []Block, inst *instance) error {
	var c Block
	for lane := uint32(0); lane < inst.lanes; lane++ {
		last := lane*inst.laneLength + inst.laneLength - 1
		c.XOR(&memory[last])
	}
	return hPrime(out, c.ToBytes())
}
