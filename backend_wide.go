package salsa

import (
	"encoding/binary"
	"math/bits"
)

// wideBackend keeps the state in the diagonal layout used by 128-bit SIMD
// implementations, so that each quarter-round step touches the same lane of
// all four vectors and the column/row transition is a lane rotation. The
// block counter lives in physical words 8 (low) and 5 (high).
type wideBackend struct{}

// wideOrder lists, for each physical position, the logical word stored there.
var wideOrder = [stateSize]int{
	0, 5, 10, 15,
	4, 9, 14, 3,
	8, 13, 2, 7,
	12, 1, 6, 11,
}

// widePos is the inverse of wideOrder: the physical position of each logical word.
var widePos = [stateSize]int{
	0, 13, 10, 7,
	4, 1, 14, 11,
	8, 5, 2, 15,
	12, 9, 6, 3,
}

// laneQuarterRound runs one quarter-round step on all four lanes. With the
// diagonal layout, lane i of (a, b, c, d) holds the i-th column (or, after a
// lane rotation, the i-th row) of the logical matrix.
func laneQuarterRound(a, b, c, d *[4]uint32) {
	for i := range b {
		b[i] ^= bits.RotateLeft32(a[i]+d[i], 7)
	}
	for i := range c {
		c[i] ^= bits.RotateLeft32(b[i]+a[i], 9)
	}
	for i := range d {
		d[i] ^= bits.RotateLeft32(c[i]+b[i], 13)
	}
	for i := range a {
		a[i] ^= bits.RotateLeft32(d[i]+c[i], 18)
	}
}

// laneRotate rotates the four lanes of v left by n positions, the pshufd
// equivalent that realigns the vectors between column and row half-rounds.
func laneRotate(v [4]uint32, n int) [4]uint32 {
	return [4]uint32{v[n&3], v[(n+1)&3], v[(n+2)&3], v[(n+3)&3]}
}

func (wideBackend) seed(dst, logical *[stateSize]uint32) {
	for i, l := range &wideOrder {
		dst[i] = logical[l]
	}
}

func (wideBackend) blocks(s *[stateSize]uint32, rounds int, dst, src []byte, nrBlocks int) {
	for n := 0; n < nrBlocks; n++ {
		var a, b, c, d [4]uint32
		copy(a[:], s[0:4])
		copy(b[:], s[4:8])
		copy(c[:], s[8:12])
		copy(d[:], s[12:16])

		for i := 0; i < rounds; i += 2 {
			laneQuarterRound(&a, &b, &c, &d)
			b, c, d = laneRotate(d, 1), laneRotate(c, 2), laneRotate(b, 3)
			laneQuarterRound(&a, &b, &c, &d)
			b, c, d = laneRotate(d, 1), laneRotate(c, 2), laneRotate(b, 3)
		}

		var x [stateSize]uint32
		for i := 0; i < 4; i++ {
			x[i] = a[i] + s[i]
			x[4+i] = b[i] + s[4+i]
			x[8+i] = c[i] + s[8+i]
			x[12+i] = d[i] + s[12+i]
		}

		// Keystream bytes leave in logical word order regardless of layout.
		if src != nil {
			for i, p := range &widePos {
				binary.LittleEndian.PutUint32(dst[i*4:], binary.LittleEndian.Uint32(src[i*4:])^x[p])
			}
			src = src[BlockSize:]
		} else {
			for i, p := range &widePos {
				binary.LittleEndian.PutUint32(dst[i*4:], x[p])
			}
		}
		dst = dst[BlockSize:]

		s[8]++
		if s[8] == 0 {
			s[5]++
		}
	}
}

func (wideBackend) blockPos(s *[stateSize]uint32) uint64 {
	return uint64(s[8]) | uint64(s[5])<<32
}

func (wideBackend) setBlockPos(s *[stateSize]uint32, pos uint64) {
	s[8] = uint32(pos)
	s[5] = uint32(pos >> 32)
}
