package salsa

import "github.com/klauspost/cpuid/v2"

// A backend executes the Salsa round function against one physical layout of
// the 16-word state. The physical layout is a fixed permutation of the
// logical word order, so the counter accessors are layout-specific as well.
// Both backends produce byte-identical keystream for the same logical state.
type backend interface {
	// seed writes the logical state into dst in the backend's physical order.
	seed(dst, logical *[stateSize]uint32)

	// blocks produces nrBlocks consecutive 64-byte keystream blocks and
	// advances the block counter by nrBlocks. When src is non-nil it is
	// XORed into the keystream; either way the result is written to dst.
	blocks(state *[stateSize]uint32, rounds int, dst, src []byte, nrBlocks int)

	// blockPos reconstructs the logical 64-bit block counter.
	blockPos(state *[stateSize]uint32) uint64

	// setBlockPos overwrites the counter words with pos.
	setBlockPos(state *[stateSize]uint32, pos uint64)
}

// pickBackend probes the execution target once, at construction time. The
// lane-oriented backend needs 128-bit integer lanes (SSE2 on x86); anything
// else falls back to the portable scalar backend rather than failing.
func pickBackend() backend {
	if cpuid.CPU.Has(cpuid.SSE2) {
		return wideBackend{}
	}
	return softBackend{}
}
