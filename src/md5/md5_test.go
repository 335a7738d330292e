package md5

import (
	"bytes"
	stdmd5 "crypto/md5"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"hash"
	"math/rand"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

var hexDigest = regexp.MustCompile(`^[0-9a-f]{32}$`)

type vector struct {
	name string
	in   []byte
	want string
}

var vectors = []vector{
	{"empty", []byte{}, "d41d8cd98f00b204e9800998ecf8427e"},
	{"A", []byte{65}, "7fc56270e7a70fa81a5935b72eacbe29"},
	{"ABCD", []byte{65, 66, 67, 68}, "cb08ca4a7bb5f9683c19133a84872ca7"},
	{"alphabet", []byte(alphabet), "f29939a25efabaef3b87e2cbfe641315"},
	{"alphabet x4", []byte(strings.Repeat(alphabet, 4)), "0269bb6c2060579ecfd687c025ae2b47"},
	// RFC 1321 appendix A.5
	{"rfc a", []byte("a"), "0cc175b9c0f1b6a831c399e269772661"},
	{"rfc abc", []byte("abc"), "900150983cd24fb0d6963f7d28e17f72"},
	{"rfc message digest", []byte("message digest"), "f96b697d7cb7938d525a2f31aaf161d0"},
	{"rfc a-z", []byte("abcdefghijklmnopqrstuvwxyz"), "c3fcd3d76192e4007dfb496cca67e13b"},
	{"rfc digits", []byte(strings.Repeat("1234567890", 8)), "57edf4a22be3c955ac49da2e2107b67a"},
}

func TestProcess_Vectors(t *testing.T) {
	for _, tt := range vectors {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Process(tt.in))

			got, err := ProcessAny(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDigest_SplitAfterFirstByte(t *testing.T) {
	for _, tt := range vectors {
		if len(tt.in) <= 4 {
			continue
		}
		t.Run(tt.name, func(t *testing.T) {
			d := New()
			require.NoError(t, d.Update(tt.in[:1]))
			require.NoError(t, d.Update(tt.in[1:]))
			assert.Equal(t, tt.want, d.HexString())
		})
	}
}

func TestDigest_BoundaryLengths(t *testing.T) {
	for _, n := range []int{0, 1, 55, 56, 57, 63, 64, 65, 119, 120, 121, 127, 128, 129, 1000} {
		data := bytes.Repeat([]byte{'x'}, n)
		want := stdmd5.Sum(data)

		d := New()
		require.NoError(t, d.Update(data))
		assert.Equal(t, want, d.Finalize(), "length %d", n)
	}
}

func TestDigest_ChunkBoundaryIndependence(t *testing.T) {
	rng := rand.New(rand.NewSource(1321))
	data := make([]byte, 300)
	rng.Read(data)

	for n := 0; n <= len(data); n++ {
		msg := data[:n]
		want := Sum(msg)

		// every single split point
		for cut := 0; cut <= n; cut++ {
			d := New()
			require.NoError(t, d.Update(msg[:cut]))
			require.NoError(t, d.Update(msg[cut:]))
			require.Equal(t, want, d.Finalize(), "n=%d cut=%d", n, cut)
		}

		// random partitions, including empty chunks
		d := New()
		for rest := msg; ; {
			k := rng.Intn(len(rest) + 1)
			if rng.Intn(5) == 0 {
				k = 0
			}
			require.NoError(t, d.Update(rest[:k]))
			rest = rest[k:]
			if len(rest) == 0 {
				break
			}
		}
		require.Equal(t, want, d.Finalize(), "random partition n=%d", n)
	}
}

func TestDigest_MatchesStdlib(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		data := make([]byte, rng.Intn(4096))
		rng.Read(data)
		assert.Equal(t, stdmd5.Sum(data), Sum(data))
	}
}

func TestProcess_Deterministic(t *testing.T) {
	data := []byte(strings.Repeat(alphabet, 7))
	first := Process(data)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Process(data))
	}
	assert.Regexp(t, hexDigest, first)
}

func TestDigest_FinalizeRejectsFurtherInput(t *testing.T) {
	d := New()
	require.NoError(t, d.Update([]byte("ABCD")))

	first := d.Finalize()
	assert.Equal(t, first, d.Finalize(), "finalize must be repeatable")

	err := d.Update([]byte("E"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFinalized))

	n, err := d.Write([]byte("E"))
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, ErrFinalized)
	assert.Equal(t, "cb08ca4a7bb5f9683c19133a84872ca7", d.HexString())

	d.Reset()
	require.NoError(t, d.Update([]byte("A")))
	assert.Equal(t, "7fc56270e7a70fa81a5935b72eacbe29", d.HexString())
}

func TestDigest_SumKeepsAccumulatorOpen(t *testing.T) {
	d := New()
	_, err := d.Write([]byte("AB"))
	require.NoError(t, err)

	prefix := d.Sum([]byte("prefix"))
	assert.Equal(t, "prefix", string(prefix[:6]))
	assert.Len(t, prefix, 6+Size)

	_, err = d.Write([]byte("CD"))
	require.NoError(t, err)
	assert.Equal(t, "cb08ca4a7bb5f9683c19133a84872ca7", hex.EncodeToString(d.Sum(nil)))
	assert.Equal(t, uint64(4), d.Len())
}

func TestDigest_HashInterface(t *testing.T) {
	d := New()
	assert.Equal(t, Size, d.Size())
	assert.Equal(t, BlockSize, d.BlockSize())

	var h hash.Hash = d
	for i := 0; i < 3; i++ {
		n, err := h.Write([]byte("AB"))
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		h.Sum(nil)
	}
	want := stdmd5.Sum([]byte("ABABAB"))
	assert.Equal(t, want[:], h.Sum(nil))

	h.Reset()
	_, err := h.Write([]byte("ABCD"))
	require.NoError(t, err)
	assert.Equal(t, "cb08ca4a7bb5f9683c19133a84872ca7", hex.EncodeToString(h.Sum(nil)))
}

func TestUpdateAny(t *testing.T) {
	var sum [Size]byte
	copy(sum[:], "0123456789abcdef")

	tests := []struct {
		name string
		in   any
		want []byte
	}{
		{"bytes", []byte("ABCD"), []byte("ABCD")},
		{"string", "ABCD", []byte("ABCD")},
		{"buffer", bytes.NewBufferString("ABCD"), []byte("ABCD")},
		{"array", sum, sum[:]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ProcessAny(tt.in)
			require.NoError(t, err)
			assert.Equal(t, Process(tt.want), got)
		})
	}

	buf := bytes.NewBufferString("ABCD")
	_, err := ProcessAny(buf)
	require.NoError(t, err)
	assert.Equal(t, 4, buf.Len(), "buffer must not be consumed")
}

func TestUpdateAny_Unsupported(t *testing.T) {
	var nilBuf *bytes.Buffer
	for _, in := range []any{nil, 42, []int{1, 2}, strings.NewReader("x"), nilBuf} {
		d := New()
		err := d.UpdateAny(in)
		require.Error(t, err, "%T", in)
		assert.ErrorIs(t, err, ErrUnsupportedInput)
		assert.False(t, errors.Is(err, ErrFinalized))
		assert.Equal(t, uint64(0), d.Len())
	}
}

func TestLatin1(t *testing.T) {
	b, err := Latin1("ABCD")
	require.NoError(t, err)
	assert.Equal(t, []byte("ABCD"), b)

	b, err = Latin1("café")
	require.NoError(t, err)
	assert.Equal(t, []byte{'c', 'a', 'f', 0xE9}, b)

	_, err = Latin1("€")
	assert.Error(t, err)

	_, err = Latin1("bad\xff")
	assert.Error(t, err)
}

func TestDigest_MarshalResume(t *testing.T) {
	data := []byte(strings.Repeat(alphabet, 3))

	for cut := 0; cut <= len(data); cut += 13 {
		d := New()
		require.NoError(t, d.Update(data[:cut]))
		state, err := d.MarshalBinary()
		require.NoError(t, err)
		assert.Len(t, state, marshaledSize)

		resumed := new(Digest)
		require.NoError(t, resumed.UnmarshalBinary(state))
		require.NoError(t, resumed.Update(data[cut:]))
		assert.Equal(t, Process(data), resumed.HexString(), "cut=%d", cut)
	}

	d := New()
	d.Finalize()
	state, err := d.MarshalBinary()
	require.NoError(t, err)
	resumed := new(Digest)
	require.NoError(t, resumed.UnmarshalBinary(state))
	assert.ErrorIs(t, resumed.Update([]byte("x")), ErrFinalized)
}

func TestDigest_UnmarshalRejectsGarbage(t *testing.T) {
	d := New()
	assert.Error(t, d.UnmarshalBinary(nil))
	assert.Error(t, d.UnmarshalBinary([]byte("sha\x01")))
	assert.Error(t, d.UnmarshalBinary([]byte(magic+"short")))

	state, err := New().MarshalBinary()
	require.NoError(t, err)
	state[len(state)-1] = 7
	assert.Error(t, d.UnmarshalBinary(state))
}

func TestSwab32(t *testing.T) {
	assert.Equal(t, uint32(0x78563412), swab32(0x12345678))
	assert.Equal(t, uint32(0x12345678), swab32(swab32(0x12345678)))
	assert.Equal(t, uint32(0xFF000000), swab32(0x000000FF))
}

func TestLoadStoreWords(t *testing.T) {
	block := make([]byte, BlockSize)
	for i := range block {
		block[i] = byte(i)
	}

	var x [16]uint32
	loadWords(&x, block)
	for i := range x {
		assert.Equal(t, binary.LittleEndian.Uint32(block[i*4:]), x[i], "word %d", i)
	}

	state := [4]uint32{init0, init1, init2, init3}
	var out [Size]byte
	storeWords(out[:], &state)
	assert.Equal(t, "0123456789abcdeffedcba9876543210", hex.EncodeToString(out[:]))
}

func TestTransform_SingleBlock(t *testing.T) {
	// "abc" padded by hand into one block.
	var block [BlockSize]byte
	copy(block[:], "abc")
	block[3] = 0x80
	binary.LittleEndian.PutUint64(block[56:], 3*8)

	state := [4]uint32{init0, init1, init2, init3}
	blockWords(&state, block[:])

	var out [Size]byte
	storeWords(out[:], &state)
	assert.Equal(t, "900150983cd24fb0d6963f7d28e17f72", Hex(out))
}

func BenchmarkDigest_Update8K(b *testing.B) {
	buf := make([]byte, 8192)
	d := New()
	b.SetBytes(int64(len(buf)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Reset()
		_ = d.Update(buf)
		d.Finalize()
	}
}
