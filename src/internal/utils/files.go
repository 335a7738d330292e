package utils

import (
	"io"

	"github.com/princess-rosella/spu-md5/src/internal/log"
)

// CloseOrWarn closes c and logs a warning naming what failed to close.
func CloseOrWarn(c io.Closer, name string) {
	if err := c.Close(); err != nil {
		log.Warnf("Failed to close %s: %v", name, err)
	}
}
