// Package salsa implements the Salsa family of stream ciphers, including the
// reduced-round Salsa20/8 and Salsa20/12 variants and the extended-nonce
// XSalsa construction.
//
// Salsa is a keystream generator: given a secret key and a nonce it produces
// a deterministic pseudorandom byte stream that is XORed with data to encrypt,
// and XORed again to decrypt. The package provides only this primitive. It
// performs no authentication and no key management; ciphertexts are
// malleable unless callers add a MAC or use an AEAD construction instead.
//
// # Variants
//
//   - Salsa20/20 (20 rounds): the full-round cipher, recommended.
//   - Salsa20/12 and Salsa20/8: reduced-round variants, faster but with a
//     smaller security margin. Not recommended for new designs.
//   - XSalsa: any of the above with a 24-byte nonce, large enough to be
//     chosen at random. Selected automatically when a 24-byte nonce is
//     passed to a constructor.
//
// Keys are 32 bytes (recommended) or 16 bytes. The two key lengths use
// distinct domain-separation constants, so a 16-byte key and a 32-byte key
// sharing the same leading bytes produce unrelated keystreams.
//
// # Basic Usage
//
//	key := make([]byte, salsa.KeySize)
//	nonce := make([]byte, salsa.NonceSize)
//	// Fill key and nonce with cryptographically secure random bytes.
//
//	cipher, err := salsa.NewCipher(key, nonce)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	buf := []byte("attack at dawn")
//	cipher.XORKeyStream(buf, buf) // encrypt in place
//
//	cipher.Seek(0)
//	cipher.XORKeyStream(buf, buf) // decrypt
//
// A Cipher implements crypto/cipher.Stream. Repeated XORKeyStream calls
// consume the keystream sequentially, so a message may be processed in
// chunks of any size with the same result as a single call.
//
// # Seeking
//
// The keystream is addressable by 64-byte block. Seek repositions the block
// counter in constant time, which allows random access into the stream and
// parallel encryption of disjoint ranges from independently constructed
// Cipher instances.
//
// # Security
//
// A (key, nonce) pair must never be reused for different data: the keystream
// would repeat and the XOR of the two ciphertexts would leak the XOR of the
// plaintexts. The 8-byte base nonce is too small to pick at random across
// many messages; use the 24-byte extended nonce for that. The keystream ends
// after 2^64-1 blocks; RemainingBlocks reports how much is left and
// production past the limit panics rather than silently reusing keystream.
//
// Round computations use only 32-bit additions, XORs and rotations, with no
// secret-dependent branches or table lookups. Reset zeros key material held
// by a Cipher once it is no longer needed.
//
// # Thread Safety
//
// A Cipher is not safe for concurrent use. Each instance maintains a
// keystream cursor and a block counter; callers that share one across
// goroutines must synchronize, or construct one instance per goroutine
// seeked to disjoint block ranges.
package salsa
