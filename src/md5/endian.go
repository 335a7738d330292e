package md5

import (
	"encoding/binary"
	"math/bits"

	"golang.org/x/sys/cpu"
)

// bigEndian is fixed for the lifetime of the process.
var bigEndian = cpu.IsBigEndian

// swab32 reverses the byte order of a 32-bit word.
func swab32(x uint32) uint32 {
	return bits.RotateLeft32(x, 8)&0x00FF00FF | bits.RotateLeft32(x, 24)&0xFF00FF00
}

// loadWords views p as sixteen host-order words and converts them to the
// little-endian layout expected by transform.
func loadWords(x *[16]uint32, p []byte) {
	_ = p[BlockSize-1]
	for i := range x {
		w := binary.NativeEndian.Uint32(p[i*4:])
		if bigEndian {
			w = swab32(w)
		}
		x[i] = w
	}
}

// storeWords serializes state words so the output bytes are little-endian
// regardless of host order.
func storeWords(out []byte, state *[4]uint32) {
	_ = out[Size-1]
	for i, w := range state {
		if bigEndian {
			w = swab32(w)
		}
		binary.NativeEndian.PutUint32(out[i*4:], w)
	}
}
