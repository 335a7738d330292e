package hashing

import (
	"bufio"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/princess-rosella/spu-md5/src/internal/errors"
)

// Supported values for the codec argument of NewDecodingReader.
const (
	CodecNone = ""
	CodecGzip = "gzip"
	CodecZstd = "zstd"
)

// ZstdMaxWindow bounds the back-reference window a zstd frame may declare,
// and with it the decoder's memory use.
const ZstdMaxWindow = 64 << 20

// Result is the outcome of hashing a stream.
type Result struct {
	Checksum string `json:"md5"`
	Size     int64  `json:"size"`
}

// HashReader reads r to EOF in chunkSize pieces and returns the MD5 of
// everything read.
func HashReader(r io.Reader, chunkSize int) (Result, error) {
	if chunkSize <= 0 {
		return Result{}, errors.NewUsageError(fmt.Sprintf("invalid chunk size: %d", chunkSize))
	}

	proxy := NewMD5ReaderProxy(r)
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(io.Discard, onlyReader{proxy}, buf); err != nil {
		return Result{}, errors.NewIOError("failed to read input", err)
	}

	checksum, err := proxy.GetChecksum()
	if err != nil {
		return Result{}, err
	}
	return Result{Checksum: checksum, Size: proxy.BytesRead()}, nil
}

// onlyReader hides any WriterTo implementation so CopyBuffer uses our buffer.
type onlyReader struct {
	io.Reader
}

type nopCloser struct {
	io.Reader
}

func (nopCloser) Close() error { return nil }

// NewDecodingReader wraps r with a decompressor for codec. The empty codec
// passes r through unchanged. Closing the result releases the decoder but
// never closes r.
func NewDecodingReader(r io.Reader, codec string) (io.ReadCloser, error) {
	switch codec {
	case CodecNone:
		return nopCloser{r}, nil
	case CodecGzip:
		zr, err := gzip.NewReader(bufio.NewReader(r))
		if err != nil {
			return nil, errors.NewIOError("failed to open gzip stream", err)
		}
		return zr, nil
	case CodecZstd:
		zr, err := zstd.NewReader(r,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderMaxWindow(ZstdMaxWindow),
		)
		if err != nil {
			return nil, errors.NewIOError("failed to open zstd stream", err)
		}
		return zr.IOReadCloser(), nil
	default:
		return nil, errors.NewUsageError(fmt.Sprintf("unsupported codec: %q", codec))
	}
}
