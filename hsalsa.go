package salsa

import "encoding/binary"

// hSalsa is the two-stage subkey derivation used by the extended-nonce
// construction. The state is packed as in setupState, except that the 16
// derivation-nonce bytes fill words 6..9 and no counter words are reserved.
// The round transform runs without the final feed-forward addition, and the
// subkey is read from output words 0, 5, 10, 15, 6, 7, 8, 9.
//
// The key must be 16 or 32 bytes; callers validate before invoking.
func hSalsa(rounds int, key, nonce []byte, out *[KeySize]byte) {
	c := expandConstants(len(key))
	front := key[:16]
	back := key[len(key)-16:]

	var x [stateSize]uint32
	x[0] = c[0]
	x[1] = binary.LittleEndian.Uint32(front[0:4])
	x[2] = binary.LittleEndian.Uint32(front[4:8])
	x[3] = binary.LittleEndian.Uint32(front[8:12])
	x[4] = binary.LittleEndian.Uint32(front[12:16])
	x[5] = c[1]
	x[6] = binary.LittleEndian.Uint32(nonce[0:4])
	x[7] = binary.LittleEndian.Uint32(nonce[4:8])
	x[8] = binary.LittleEndian.Uint32(nonce[8:12])
	x[9] = binary.LittleEndian.Uint32(nonce[12:16])
	x[10] = c[2]
	x[11] = binary.LittleEndian.Uint32(back[0:4])
	x[12] = binary.LittleEndian.Uint32(back[4:8])
	x[13] = binary.LittleEndian.Uint32(back[8:12])
	x[14] = binary.LittleEndian.Uint32(back[12:16])
	x[15] = c[3]

	salsaRounds(&x, rounds)

	binary.LittleEndian.PutUint32(out[0:4], x[0])
	binary.LittleEndian.PutUint32(out[4:8], x[5])
	binary.LittleEndian.PutUint32(out[8:12], x[10])
	binary.LittleEndian.PutUint32(out[12:16], x[15])
	binary.LittleEndian.PutUint32(out[16:20], x[6])
	binary.LittleEndian.PutUint32(out[20:24], x[7])
	binary.LittleEndian.PutUint32(out[24:28], x[8])
	binary.LittleEndian.PutUint32(out[28:32], x[9])

	for i := range x {
		x[i] = 0
	}
}

// HSalsa20 applies the 20-round HSalsa function to a 16-byte input and a
// 32-byte key, writing the 32-byte derived key to out. It is the hash
// behind the extended-nonce construction and is exposed for protocols that
// use it as a standalone key-derivation step.
func HSalsa20(out *[KeySize]byte, in *[HNonceSize]byte, key *[KeySize]byte) {
	hSalsa(Rounds20, key[:], in[:], out)
}
