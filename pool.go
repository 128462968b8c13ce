package argon2core

import "sync"

// Allocator supplies and reclaims the working-memory arena a hash uses.
// Implementations are free to reuse buffers across calls: Run does not touch
// blocks after passing them to Free, so Free may keep them for a later
// Allocate. An Allocator shared by concurrent Run calls must be safe for
// concurrent use.
type Allocator interface {
	Allocate(n int) []Block
	Free(blocks []Block)
}

// poolAllocator recycles []Block arenas through a sync.Pool, avoiding a
// fresh multi-gigabyte allocation on every call for callers that hash
// repeatedly with the same or similar m_cost.
type poolAllocator struct {
	pool sync.Pool
}

func (p *poolAllocator) Allocate(n int) []Block {
	if v := p.pool.Get(); v != nil {
		buf := v.([]Block)
		if cap(buf) >= n {
			buf = buf[:n]
			for i := range buf {
				buf[i].Zero()
			}
			return buf
		}
	}
	return make([]Block, n)
}

// Free returns the arena to the pool for reuse. Zeroing the working memory
// before release is Run's responsibility (controlled by FlagNoWipe), not
// the allocator's: Allocate already re-zeroes a reused buffer before
// handing it back out, so an allocator-level wipe here would just do the
// same work twice on the common path.
func (p *poolAllocator) Free(blocks []Block) {
	p.pool.Put(blocks[:cap(blocks)])
}

var defaultAllocator = &poolAllocator{}
