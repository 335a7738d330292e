package md5

import "math/bits"

// table holds the additive round constants floor(2^32 * |sin(i+1)|).
var table = [64]uint32{
	// pass 1
	0xd76aa478, 0xe8c7b756, 0x242070db, 0xc1bdceee,
	0xf57c0faf, 0x4787c62a, 0xa8304613, 0xfd469501,
	0x698098d8, 0x8b44f7af, 0xffff5bb1, 0x895cd7be,
	0x6b901122, 0xfd987193, 0xa679438e, 0x49b40821,
	// pass 2
	0xf61e2562, 0xc040b340, 0x265e5a51, 0xe9b6c7aa,
	0xd62f105d, 0x02441453, 0xd8a1e681, 0xe7d3fbc8,
	0x21e1cde6, 0xc33707d6, 0xf4d50d87, 0x455a14ed,
	0xa9e3e905, 0xfcefa3f8, 0x676f02d9, 0x8d2a4c8a,
	// pass 3
	0xfffa3942, 0x8771f681, 0x6d9d6122, 0xfde5380c,
	0xa4beea44, 0x4bdecfa9, 0xf6bb4b60, 0xbebfbc70,
	0x289b7ec6, 0xeaa127fa, 0xd4ef3085, 0x04881d05,
	0xd9d4d039, 0xe6db99e5, 0x1fa27cf8, 0xc4ac5665,
	// pass 4
	0xf4292244, 0x432aff97, 0xab9423a7, 0xfc93a039,
	0x655b59c3, 0x8f0ccc92, 0xffeff47d, 0x85845dd1,
	0x6fa87e4f, 0xfe2ce6e0, 0xa3014314, 0x4e0811a1,
	0xf7537e82, 0xbd3af235, 0x2ad7d2bb, 0xeb86d391,
}

// order is the message word consumed by each round.
var order = [64]uint8{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
	1, 6, 11, 0, 5, 10, 15, 4, 9, 14, 3, 8, 13, 2, 7, 12,
	5, 8, 11, 14, 1, 4, 7, 10, 13, 0, 3, 6, 9, 12, 15, 2,
	0, 7, 14, 5, 12, 3, 10, 1, 8, 15, 6, 13, 4, 11, 2, 9,
}

// shifts repeat every four rounds within a pass.
var shifts = [4][4]int{
	{7, 12, 17, 22},
	{5, 9, 14, 20},
	{4, 11, 16, 23},
	{6, 10, 15, 21},
}

func ff(a, b, c, d, x uint32, s int, t uint32) uint32 {
	return bits.RotateLeft32(a+((b&c)|(^b&d))+x+t, s) + b
}

func gg(a, b, c, d, x uint32, s int, t uint32) uint32 {
	return bits.RotateLeft32(a+((b&d)|(c&^d))+x+t, s) + b
}

func hh(a, b, c, d, x uint32, s int, t uint32) uint32 {
	return bits.RotateLeft32(a+(b^c^d)+x+t, s) + b
}

func ii(a, b, c, d, x uint32, s int, t uint32) uint32 {
	return bits.RotateLeft32(a+(c^(b|^d))+x+t, s) + b
}

// transform advances state by one 512-bit block given as sixteen
// little-endian words.
//
// Each round computes a new value for the register in the "a" position and
// rotates the register roles, so after every group of four rounds a, b, c
// and d are back in their original slots.
func transform(state *[4]uint32, x *[16]uint32) {
	a, b, c, d := state[0], state[1], state[2], state[3]

	for i := 0; i < 16; i++ {
		a, b, c, d = d, ff(a, b, c, d, x[order[i]], shifts[0][i&3], table[i]), b, c
	}
	for i := 16; i < 32; i++ {
		a, b, c, d = d, gg(a, b, c, d, x[order[i]], shifts[1][i&3], table[i]), b, c
	}
	for i := 32; i < 48; i++ {
		a, b, c, d = d, hh(a, b, c, d, x[order[i]], shifts[2][i&3], table[i]), b, c
	}
	for i := 48; i < 64; i++ {
		a, b, c, d = d, ii(a, b, c, d, x[order[i]], shifts[3][i&3], table[i]), b, c
	}

	state[0] += a
	state[1] += b
	state[2] += c
	state[3] += d
}

// blockWords transforms one 64-byte block into state.
func blockWords(state *[4]uint32, p []byte) {
	var x [16]uint32
	loadWords(&x, p)
	transform(state, &x)
}
