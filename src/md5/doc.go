// Package md5 implements the MD5 message-digest algorithm as defined in RFC 1321.
//
// The package exposes a streaming accumulator: input may arrive in any number
// of chunks of any size and the resulting digest is identical to hashing the
// concatenation in one call.
//
// MD5 is cryptographically broken and must not be used where collision or
// preimage resistance matters. It remains useful as a content checksum.
//
// # Components
//
//   - Digest: the accumulator holding the running state, a 64-byte pending
//     block and the total byte count. It implements hash.Hash.
//   - transform: the 64-round block function (FF, GG, HH, II passes).
//   - Hex: renders a 16-byte digest as 32 lowercase hexadecimal characters.
//
// # Example Usage
//
// One-shot hashing:
//
//	fmt.Println(md5.Process([]byte("ABCD"))) // cb08ca4a7bb5f9683c19133a84872ca7
//
// Incremental hashing:
//
//	d := md5.New()
//	_ = d.Update([]byte("AB"))
//	_ = d.Update([]byte("CD"))
//	fmt.Println(d.HexString())
//
// After Finalize (or HexString) the accumulator rejects further input with
// ErrFinalized. Use Sum for the hash.Hash behavior of peeking at the digest
// while continuing to write.
//
// A Digest is not safe for concurrent use. Independent Digest values share no
// state and may be used from separate goroutines freely.
package md5
