package argon2core

import (
	"encoding/binary"

	"github.com/opd-ai/argon2core/internal/blake2b"
)

// Flag bits for Context.Flags.
const (
	// FlagClearPassword zeroes Context.Pwd in place once it has been
	// folded into H0.
	FlagClearPassword uint32 = 1 << iota
	// FlagClearSecret zeroes Context.Secret in place once it has been
	// folded into H0.
	FlagClearSecret
	// FlagNoWipe skips zeroing the working-memory arena before it is
	// returned to the allocator. Wiping is on by default.
	FlagNoWipe
)

const (
	maxFieldLen = uint64(1<<32 - 1)
	maxLanes    = uint32(1<<24 - 1)
)

// Context holds one hashing request: input parameters, the output buffer
// the tag is written into, and an optional custom memory Allocator. It is
// owned by the caller and is read-only to Run except for Out, Threads (capped
// to Lanes during validation) and, when the corresponding flag bit is set,
// Pwd/Secret.
type Context struct {
	Out []byte

	Pwd    []byte
	Salt   []byte
	Secret []byte
	Ad     []byte

	TCost uint32
	MCost uint32 // in KiB; one block is 1 KiB, so this is also memory in blocks before rounding
	Lanes uint32
	// Threads caps how many lane workers run concurrently. Values above
	// Lanes are silently capped to Lanes during validation.
	Threads uint32

	Type    Type
	Version Version
	Flags   uint32

	// Allocator, if non-nil, supplies the working-memory arena instead of
	// the package's default sync.Pool-backed allocator.
	Allocator Allocator
}

func (ctx *Context) allocator() Allocator {
	if ctx.Allocator != nil {
		return ctx.Allocator
	}
	return defaultAllocator
}

// validate checks ctx against the bounds in spec.md §4.8 and normalizes
// Threads down to Lanes when it exceeds it. It must be called, and must
// succeed, before any allocation happens.
func (ctx *Context) validate() error {
	if ctx.Out == nil {
		return newError(ErrOutputPtrNil)
	}
	outLen := len(ctx.Out)
	if outLen < 4 {
		return newError(ErrOutputTooShort)
	}
	if uint64(outLen) > maxFieldLen {
		return newError(ErrOutputTooLong)
	}
	if uint64(len(ctx.Pwd)) > maxFieldLen {
		return newError(ErrPwdTooLong)
	}
	if len(ctx.Salt) < 8 {
		return newError(ErrSaltTooShort)
	}
	if uint64(len(ctx.Salt)) > maxFieldLen {
		return newError(ErrSaltTooLong)
	}
	if uint64(len(ctx.Secret)) > maxFieldLen {
		return newError(ErrSecretTooLong)
	}
	if uint64(len(ctx.Ad)) > maxFieldLen {
		return newError(ErrADTooLong)
	}
	if ctx.TCost < 1 {
		return newError(ErrTimeTooSmall)
	}
	if ctx.Lanes < 1 {
		return newError(ErrLanesTooFew)
	}
	if ctx.Lanes > maxLanes {
		return newError(ErrLanesTooMany)
	}
	if ctx.MCost < 8*ctx.Lanes {
		return newError(ErrMemoryTooLittle)
	}
	if ctx.Threads < 1 {
		return newError(ErrThreadsTooFew)
	}
	if ctx.Threads > maxLanes {
		return newError(ErrThreadsTooMany)
	}
	if !ctx.Type.valid() {
		return newError(ErrIncorrectType)
	}
	if !ctx.Version.valid() {
		return newError(ErrIncorrectVersion)
	}

	if ctx.Threads > ctx.Lanes {
		ctx.Threads = ctx.Lanes
	}
	return nil
}

// roundMemoryBlocks rounds mCost down to the nearest multiple of 4*lanes,
// with a floor of 8*lanes (spec.md §3).
func roundMemoryBlocks(mCost, lanes uint32) uint32 {
	syncBlocks := 4 * lanes
	blocks := (mCost / syncBlocks) * syncBlocks
	if min := 8 * lanes; blocks < min {
		blocks = min
	}
	return blocks
}

// initialHash computes H0, the 64-byte BLAKE2b prehash that absorbs every
// scalar parameter and every variable-length field (spec.md §4.6). Each
// length is encoded as a 4-byte little-endian prefix immediately before its
// field, including for the fields that are themselves empty.
func (ctx *Context) initialHash() ([64]byte, error) {
	buf := make([]byte, 0, 6*4+4*4+len(ctx.Pwd)+len(ctx.Salt)+len(ctx.Secret)+len(ctx.Ad))

	buf = appendUint32(buf, ctx.Lanes)
	buf = appendUint32(buf, uint32(len(ctx.Out)))
	buf = appendUint32(buf, ctx.MCost)
	buf = appendUint32(buf, ctx.TCost)
	buf = appendUint32(buf, uint32(ctx.Version))
	buf = appendUint32(buf, uint32(ctx.Type))

	buf = appendUint32(buf, uint32(len(ctx.Pwd)))
	buf = append(buf, ctx.Pwd...)

	buf = appendUint32(buf, uint32(len(ctx.Salt)))
	buf = append(buf, ctx.Salt...)

	buf = appendUint32(buf, uint32(len(ctx.Secret)))
	buf = append(buf, ctx.Secret...)

	buf = appendUint32(buf, uint32(len(ctx.Ad)))
	buf = append(buf, ctx.Ad...)

	var h0 [64]byte
	err := blake2b.Sum(h0[:], nil, buf)
	return h0, err
}

func appendUint32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

// initializeMemory seeds the first two blocks of every lane from H0
// (spec.md §4.6): B[l,0] = H'_1024(H0 || le32(0) || le32(l)),
// B[l,1] = H'_1024(H0 || le32(1) || le32(l)).
func initializeMemory(memory []Block, inst *instance, h0 [64]byte) error {
	var raw [BlockSize]byte
	seed := make([]byte, 0, len(h0)+8)

	for lane := uint32(0); lane < inst.lanes; lane++ {
		laneOffset := lane * inst.laneLength
		for i := uint32(0); i < 2; i++ {
			seed = seed[:0]
			seed = append(seed, h0[:]...)
			seed = appendUint32(seed, i)
			seed = appendUint32(seed, lane)

			if err := hPrime(raw[:], seed); err != nil {
				return err
			}
			if err := memory[laneOffset+i].FromBytes(raw[:]); err != nil {
				return err
			}
		}
	}
	return nil
}
