package argon2core

import "sync"

// syncPoints is the number of slices per lane per pass, and thus the number
// of fork-join barriers per pass.
const syncPoints = 4

// instance is the immutable tuple of derived parameters the fill engine
// needs for one run. It is built and owned by the engine for the duration
// of hashing and never points back to the Context that produced it.
type instance struct {
	typ           Type
	version       Version
	passes        uint32
	lanes         uint32
	threads       uint32
	memoryBlocks  uint32
	segmentLength uint32
	laneLength    uint32
}

func newInstance(typ Type, version Version, passes, lanes, threads, memoryBlocks uint32) *instance {
	laneLength := memoryBlocks / lanes
	return &instance{
		typ:           typ,
		version:       version,
		passes:        passes,
		lanes:         lanes,
		threads:       threads,
		memoryBlocks:  memoryBlocks,
		laneLength:    laneLength,
		segmentLength: laneLength / syncPoints,
	}
}

// fillMemory drives the memory-hard filling pass. Iteration proceeds
// (pass, slice, lane, index-within-slice): within a slice, up to
// inst.threads lane workers run concurrently, and every worker for a slice
// must finish before any worker starts the next slice. No locks are needed:
// each worker writes only to its own lane within the current slice, and
// every position it may read was finalized by an earlier barrier.
func fillMemory(memory []Block, inst *instance) {
	sem := make(chan struct{}, inst.threads)

	for pass := uint32(0); pass < inst.passes; pass++ {
		for slice := uint32(0); slice < syncPoints; slice++ {
			var wg sync.WaitGroup
			for lane := uint32(0); lane < inst.lanes; lane++ {
				wg.Add(1)
				sem <- struct{}{}
				go func(pass, slice, lane uint32) {
					defer wg.Done()
					defer func() { <-sem }()
					fillSegment(memory, inst, pass, slice, lane)
				}(pass, slice, lane)
			}
			wg.Wait()
		}
	}
}

// fillSegment fills one quarter-lane segment sequentially, in increasing
// index order, per spec.md §4.5.
func fillSegment(memory []Block, inst *instance, pass, slice, lane uint32) {
	independent := inst.dataIndependent(pass, slice)

	var gen *addressGenerator
	if independent {
		gen = newAddressGenerator(inst, pass, lane, slice)
	}

	index := uint32(0)
	if pass == 0 && slice == 0 {
		// The first two blocks of the lane are seeded directly from H0
		// (§4.6) rather than computed here.
		index = 2
		if independent {
			gen.advance()
		}
	}

	laneOffset := lane * inst.laneLength
	segmentStart := slice * inst.segmentLength
	xorExisting := pass > 0 && inst.version == Version13

	for ; index < inst.segmentLength; index++ {
		cur := segmentStart + index

		var prevOffset uint32
		if cur == 0 {
			prevOffset = laneOffset + inst.laneLength - 1
		} else {
			prevOffset = laneOffset + cur - 1
		}
		curOffset := laneOffset + cur

		var pseudoRand uint64
		if independent {
			if index%addressesPerBlock == 0 {
				gen.advance()
			}
			pseudoRand = gen.word(index)
		} else {
			pseudoRand = memory[prevOffset][0]
		}

		refLane, refIndex := indexAlpha(inst, pseudoRand, pass, slice, lane, index)
		refOffset := refLane*inst.laneLength + refIndex

		compress(&memory[prevOffset], &memory[refOffset], &memory[curOffset], xorExisting)
	}
}
