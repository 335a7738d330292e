package md5

import "encoding/hex"

// Hex renders sum as 32 lowercase hexadecimal characters, high nibble first.
func Hex(sum [Size]byte) string {
	return hex.EncodeToString(sum[:])
}
