package salsa

import (
	"encoding/binary"
	"math/bits"
)

// softBackend is the portable scalar implementation. Physical word order is
// the logical order, with the block counter in words 8 (low) and 9 (high).
type softBackend struct{}

// quarterRound mixes four state words in place. All additions are 32-bit
// modular; wraparound is part of the cipher definition.
func quarterRound(a, b, c, d *uint32) {
	*b ^= bits.RotateLeft32(*a+*d, 7)
	*c ^= bits.RotateLeft32(*b+*a, 9)
	*d ^= bits.RotateLeft32(*c+*b, 13)
	*a ^= bits.RotateLeft32(*d+*c, 18)
}

// salsaRounds applies the given number of rounds to x in place, as
// column/row double rounds over the logical 4x4 word matrix.
func salsaRounds(x *[stateSize]uint32, rounds int) {
	for i := 0; i < rounds; i += 2 {
		quarterRound(&x[0], &x[4], &x[8], &x[12])
		quarterRound(&x[5], &x[9], &x[13], &x[1])
		quarterRound(&x[10], &x[14], &x[2], &x[6])
		quarterRound(&x[15], &x[3], &x[7], &x[11])

		quarterRound(&x[0], &x[1], &x[2], &x[3])
		quarterRound(&x[5], &x[6], &x[7], &x[4])
		quarterRound(&x[10], &x[11], &x[8], &x[9])
		quarterRound(&x[15], &x[12], &x[13], &x[14])
	}
}

func (softBackend) seed(dst, logical *[stateSize]uint32) {
	*dst = *logical
}

func (softBackend) blocks(s *[stateSize]uint32, rounds int, dst, src []byte, nrBlocks int) {
	for n := 0; n < nrBlocks; n++ {
		x := *s
		salsaRounds(&x, rounds)

		if src != nil {
			for i, v := range &x {
				binary.LittleEndian.PutUint32(dst[i*4:], binary.LittleEndian.Uint32(src[i*4:])^(v+s[i]))
			}
			src = src[BlockSize:]
		} else {
			for i, v := range &x {
				binary.LittleEndian.PutUint32(dst[i*4:], v+s[i])
			}
		}
		dst = dst[BlockSize:]

		s[8]++
		if s[8] == 0 {
			s[9]++
		}
	}
}

func (softBackend) blockPos(s *[stateSize]uint32) uint64 {
	return uint64(s[8]) | uint64(s[9])<<32
}

func (softBackend) setBlockPos(s *[stateSize]uint32, pos uint64) {
	s[8] = uint32(pos)
	s[9] = uint32(pos >> 32)
}
