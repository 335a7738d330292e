package md5

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/princess-rosella/spu-md5/src/internal/errors"
)

// UpdateAny ingests v if it has a byte view. Accepted types are []byte,
// string, *bytes.Buffer (its unread portion, left unconsumed) and [Size]byte.
// Anything else, including nil, fails with an error matching
// ErrUnsupportedInput and leaves the digest untouched.
func (d *Digest) UpdateAny(v any) error {
	switch data := v.(type) {
	case []byte:
		return d.Update(data)
	case string:
		return d.Update([]byte(data))
	case *bytes.Buffer:
		if data == nil {
			return errors.NewUnsupportedInputError(v)
		}
		return d.Update(data.Bytes())
	case [Size]byte:
		return d.Update(data[:])
	default:
		return errors.NewUnsupportedInputError(v)
	}
}

// ProcessAny is the UpdateAny counterpart of Process.
func ProcessAny(v any) (string, error) {
	d := New()
	if err := d.UpdateAny(v); err != nil {
		return "", err
	}
	return d.HexString(), nil
}

// Latin1 converts s to one byte per code point. Code points above 0xFF have
// no single-byte form and are rejected.
func Latin1(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return nil, errors.NewUsageError(fmt.Sprintf("invalid UTF-8 at offset %d", i))
			}
		}
		if r > 0xFF {
			return nil, errors.NewUsageError(fmt.Sprintf("code point %U at offset %d does not fit in one byte", r, i))
		}
		out = append(out, byte(r))
	}
	return out, nil
}
