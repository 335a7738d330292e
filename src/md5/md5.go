package md5

import (
	"encoding/binary"
	"hash"

	"github.com/princess-rosella/spu-md5/src/internal/errors"
)

// Size is the size of an MD5 checksum in bytes.
const Size = 16

// BlockSize is the block size of MD5 in bytes.
const BlockSize = 64

const (
	init0 = 0x67452301
	init1 = 0xEFCDAB89
	init2 = 0x98BADCFE
	init3 = 0x10325476
)

var (
	// ErrFinalized is returned when input is written after Finalize.
	ErrFinalized = errors.NewUsageError("md5: digest already finalized, call Reset first")

	// ErrUnsupportedInput is matched by errors returned from UpdateAny and ProcessAny.
	ErrUnsupportedInput = errors.New(errors.ErrCodeUnsupportedInput, "md5: unsupported input type")
)

// Digest satisfies hash.Hash with one exception: once Finalize has been
// called, Write returns ErrFinalized until Reset. A Digest that is only used
// through the hash.Hash methods never finalizes, so Write never fails.
var _ hash.Hash = (*Digest)(nil)

// Digest is the running state of one MD5 computation.
//
// The pending block fill offset is len mod BlockSize; bytes past it are stale
// and ignored.
type Digest struct {
	s         [4]uint32
	x         [BlockSize]byte
	len       uint64
	finalized bool
}

// New returns an accumulator in the initial MD5 state.
func New() *Digest {
	d := new(Digest)
	d.Reset()
	return d
}

// Reset restores the initial state, discarding all input.
func (d *Digest) Reset() {
	d.s = [4]uint32{init0, init1, init2, init3}
	d.len = 0
	d.finalized = false
}

// Size returns the number of bytes Sum will append.
func (d *Digest) Size() int { return Size }

// BlockSize returns the MD5 block size.
func (d *Digest) BlockSize() int { return BlockSize }

// Len returns the number of bytes ingested so far, modulo 2^64.
func (d *Digest) Len() uint64 { return d.len }

// Update appends p to the message. It fails only after Finalize.
func (d *Digest) Update(p []byte) error {
	if d.finalized {
		return ErrFinalized
	}

	nx := int(d.len & (BlockSize - 1))
	d.len += uint64(len(p))

	if nx > 0 {
		n := copy(d.x[nx:], p)
		p = p[n:]
		if nx+n < BlockSize {
			return nil
		}
		blockWords(&d.s, d.x[:])
	}

	// Whole blocks are transformed straight from the caller's buffer.
	for len(p) >= BlockSize {
		blockWords(&d.s, p[:BlockSize])
		p = p[BlockSize:]
	}

	copy(d.x[:], p)
	return nil
}

// Write implements io.Writer. It fails with ErrFinalized after Finalize.
func (d *Digest) Write(p []byte) (int, error) {
	if err := d.Update(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Finalize pads the message and returns the digest. The accumulator rejects
// further input until Reset; calling Finalize again returns the same value.
func (d *Digest) Finalize() [Size]byte {
	sum := d.checkSum()
	d.finalized = true
	return sum
}

// HexString finalizes and returns the digest as lowercase hex.
func (d *Digest) HexString() string {
	return Hex(d.Finalize())
}

// Sum appends the digest of the data written so far to b. Unlike Finalize it
// leaves the accumulator open for more input.
func (d *Digest) Sum(b []byte) []byte {
	sum := d.checkSum()
	return append(b, sum[:]...)
}

// checkSum computes the padded digest on copies of the state and block.
func (d *Digest) checkSum() [Size]byte {
	s := d.s
	x := d.x

	nx := int(d.len & (BlockSize - 1))
	x[nx] = 0x80
	nx++
	clear(x[nx:])

	// Not enough room for the 8-byte length: spill into a second block.
	if nx > BlockSize-8 {
		blockWords(&s, x[:])
		clear(x[:])
	}

	binary.LittleEndian.PutUint64(x[BlockSize-8:], d.len<<3)
	blockWords(&s, x[:])

	var out [Size]byte
	storeWords(out[:], &s)
	return out
}

// Sum returns the MD5 digest of data.
func Sum(data []byte) [Size]byte {
	d := New()
	_ = d.Update(data)
	return d.Finalize()
}

// Process returns the lowercase hex MD5 digest of data.
func Process(data []byte) string {
	return Hex(Sum(data))
}
