package hashing

import (
	stderrors "errors"
	"io"
	"os"
	"strings"

	"github.com/princess-rosella/spu-md5/src/internal/errors"
	"github.com/princess-rosella/spu-md5/src/internal/log"
	"github.com/princess-rosella/spu-md5/src/internal/utils"
)

// SidecarSuffix is appended to a file path to name its checksum file.
const SidecarSuffix = ".md5"

// GetChecksum lets a finished Result stand in for a live proxy.
func (r Result) GetChecksum() (string, error) {
	return r.Checksum, nil
}

// IsFileChanged reports whether the checksum differs from the one recorded
// next to filePath. A missing or unreadable sidecar counts as changed.
func IsFileChanged(checksumProxy ChecksumProvider, filePath string) (bool, error) {
	md5, err := checksumProxy.GetChecksum()
	if err != nil {
		return false, err
	}

	checksumFilePath := filePath + SidecarSuffix
	recorded, err := ReadChecksum(checksumFilePath)
	if err != nil {
		log.Debugf("Failed to read checksum file '%s', assuming it's changed: %v", checksumFilePath, err)
		return true, nil
	}
	return recorded != md5, nil
}

// ReadChecksum returns the first field of a checksum file, so both a bare
// digest and a "digest  name" line are accepted.
func ReadChecksum(checksumFilePath string) (string, error) {
	checksumFile, err := os.Open(checksumFilePath)
	if err != nil {
		return "", err
	}
	defer utils.CloseOrWarn(checksumFile, checksumFilePath)

	content, err := io.ReadAll(io.LimitReader(checksumFile, 4096))
	if err != nil {
		return "", err
	}

	fields := strings.Fields(string(content))
	if len(fields) == 0 {
		return "", stderrors.New("empty checksum file")
	}
	return strings.ToLower(fields[0]), nil
}

// WriteChecksum records the checksum next to filePath.
func WriteChecksum(checksumProxy ChecksumProvider, filePath string) error {
	checksum, err := checksumProxy.GetChecksum()
	if err != nil {
		return err
	}

	checksumFilePath := filePath + SidecarSuffix
	if err := os.WriteFile(checksumFilePath, []byte(checksum+"\n"), 0644); err != nil {
		return errors.NewIOError("failed to write checksum file", err)
	}
	return nil
}
