// Package argon2core implements the memory-hard core of Argon2 (RFC 9106):
// the d, i and id variants of the password-hashing/KDF function, built from
// a from-scratch BLAKE2b primitive up through H', the data-dependent and
// data-independent addressing schemes, the compression function G and its
// permutation P, and the fork-join memory-fill engine.
//
// It deliberately stops at the core primitive. Encoded-hash strings (the
// "$argon2id$v=19$..." PHC format), one-shot convenience wrappers and a
// command-line tool are outside this package's scope; callers who want
// those can build them on top of Run.
package argon2core

// Type selects which of the three Argon2 addressing variants a Context
// runs.
type Type uint32

const (
	// TypeD uses data-dependent addressing in every pass, maximizing
	// resistance to time-memory tradeoff attacks at the cost of exposing a
	// cache-timing side channel.
	TypeD Type = iota
	// TypeI uses data-independent addressing throughout, avoiding the
	// side channel at some cost in tradeoff resistance.
	TypeI
	// TypeID mixes the two: data-independent for the first half of the
	// first pass, data-dependent everywhere else.
	TypeID
)

func (t Type) valid() bool {
	return t == TypeD || t == TypeI || t == TypeID
}

// Version selects the Argon2 version. Version13 is the current version and
// there is no default: a zero Version fails validation. Version10 reproduces the legacy 0x10 behavior, in which the
// compression function always overwrites its output block instead of
// XORing into it from pass 2 onward.
type Version uint32

const (
	Version10 Version = 0x10
	Version13 Version = 0x13
)

func (v Version) valid() bool {
	return v == Version10 || v == Version13
}

// Run computes an Argon2 tag for ctx and writes it to ctx.Out. It validates
// ctx, derives the initial hash H0, seeds the first two blocks of every
// lane, runs the memory-fill engine, and folds the last block of each lane
// into the final H' call.
//
// Run does not retain any reference to ctx or its buffers after it returns.
// If ctx.Flags requests it, the password and/or secret buffers are zeroed
// in place as soon as H0 has absorbed them, before the memory-hard fill
// phase runs, rather than deferred until Run returns.
func Run(ctx *Context) error {
	if err := ctx.validate(); err != nil {
		return err
	}

	memoryBlocks := roundMemoryBlocks(ctx.MCost, ctx.Lanes)
	inst := newInstance(ctx.Type, ctx.Version, ctx.TCost, ctx.Lanes, ctx.Threads, memoryBlocks)

	alloc := ctx.allocator()
	memory := alloc.Allocate(int(memoryBlocks))
	defer func() {
		if ctx.Flags&FlagNoWipe == 0 {
			for i := range memory {
				memory[i].Zero()
			}
		}
		alloc.Free(memory)
	}()

	h0, err := ctx.initialHash()
	if err != nil {
		return err
	}
	if ctx.Flags&FlagClearPassword != 0 {
		zeroBytes(ctx.Pwd)
	}
	if ctx.Flags&FlagClearSecret != 0 {
		zeroBytes(ctx.Secret)
	}

	if err := initializeMemory(memory, inst, h0); err != nil {
		return err
	}

	fillMemory(memory, inst)

	return finalize(ctx.Out, memory, inst)
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
