package hashing

import (
	"encoding/hex"
	"io"

	"github.com/princess-rosella/spu-md5/src/internal/errors"
	"github.com/princess-rosella/spu-md5/src/md5"
)

type ChecksumProvider interface {
	GetChecksum() (string, error)
}

// ChecksumReaderProxy is a proxy that calculates the MD5 checksum of data as it's read.
type ChecksumReaderProxy struct {
	reader      io.Reader
	checksum    *md5.Digest
	bytesRead   int64
	checksumErr error
}

// NewMD5ReaderProxy creates a new instance of ChecksumReaderProxy.
func NewMD5ReaderProxy(reader io.Reader) *ChecksumReaderProxy {
	return &ChecksumReaderProxy{
		reader:   reader,
		checksum: md5.New(),
	}
}

// Read reads data from the underlying reader and feeds it to the checksum.
func (p *ChecksumReaderProxy) Read(buf []byte) (int, error) {
	n, err := p.reader.Read(buf)
	if n > 0 {
		if checksumErr := p.checksum.Update(buf[:n]); checksumErr != nil {
			p.checksumErr = checksumErr
			return n, checksumErr
		}
		p.bytesRead += int64(n)
	}
	if err != nil && err != io.EOF {
		p.checksumErr = errors.NewIOError("read failed", err)
	}
	return n, err
}

// BytesRead returns the number of bytes hashed so far.
func (p *ChecksumReaderProxy) BytesRead() int64 {
	return p.bytesRead
}

// GetChecksum returns the calculated MD5 checksum as a hex string. It fails
// if the underlying reader reported an error, since the digest would cover a
// truncated stream. Reading may continue afterwards.
func (p *ChecksumReaderProxy) GetChecksum() (string, error) {
	if p.checksumErr == nil {
		return hex.EncodeToString(p.checksum.Sum(nil)), nil
	}
	return "", p.checksumErr
}

type ChecksumStringSetProxy struct {
	set         map[string]struct{}
	checksum    *md5.Digest
	checksumErr error
}

func NewChecksumStringSet() *ChecksumStringSetProxy {
	return &ChecksumStringSetProxy{
		set:      make(map[string]struct{}, 0),
		checksum: md5.New(),
	}
}

// Put adds str to the set. Duplicates are ignored and do not affect the checksum.
func (p *ChecksumStringSetProxy) Put(str string) error {
	if _, exists := p.set[str]; exists {
		return nil
	}
	if err := p.checksum.Update([]byte(str + "\n")); err != nil {
		p.checksumErr = err
		return err
	}
	p.set[str] = struct{}{}
	return nil
}

func (p *ChecksumStringSetProxy) Size() int {
	return len(p.set)
}

func (p *ChecksumStringSetProxy) GetChecksum() (string, error) {
	if p.checksumErr == nil {
		return hex.EncodeToString(p.checksum.Sum(nil)), nil
	}
	return "", p.checksumErr
}
