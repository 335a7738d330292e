package md5

import (
	"encoding/binary"

	"github.com/princess-rosella/spu-md5/src/internal/errors"
)

const (
	magic         = "md5\x01"
	marshaledSize = len(magic) + 4*4 + BlockSize + 8 + 1
)

// MarshalBinary snapshots the accumulator so a computation can be resumed
// later with UnmarshalBinary.
func (d *Digest) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, marshaledSize)
	b = append(b, magic...)
	for _, w := range d.s {
		b = binary.BigEndian.AppendUint32(b, w)
	}
	b = append(b, d.x[:]...)
	b = binary.BigEndian.AppendUint64(b, d.len)
	if d.finalized {
		b = append(b, 1)
	} else {
		b = append(b, 0)
	}
	return b, nil
}

// UnmarshalBinary restores a state produced by MarshalBinary.
func (d *Digest) UnmarshalBinary(b []byte) error {
	if len(b) < len(magic) || string(b[:len(magic)]) != magic {
		return errors.NewValidationError("md5: invalid hash state identifier", nil)
	}
	if len(b) != marshaledSize {
		return errors.NewValidationError("md5: invalid hash state size", nil)
	}
	flag := b[marshaledSize-1]
	if flag > 1 {
		return errors.NewValidationError("md5: invalid finalized flag", nil)
	}

	b = b[len(magic):]
	for i := range d.s {
		d.s[i] = binary.BigEndian.Uint32(b)
		b = b[4:]
	}
	copy(d.x[:], b[:BlockSize])
	b = b[BlockSize:]
	d.len = binary.BigEndian.Uint64(b)
	d.finalized = flag == 1
	return nil
}
