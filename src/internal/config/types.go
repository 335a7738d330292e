package config

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/princess-rosella/spu-md5/src/md5"
)

type Config struct {
	// General holds settings used when hashing files and streams.
	General GeneralConfig `toml:"general" json:"general"`
	// Server holds HTTP service settings.
	Server ServerConfig `toml:"server" json:"server"`
	// Vectors are known-answer tests run by self-check. Defaults to the built-in set when omitted.
	Vectors []*Vector `toml:"vector,omitempty" json:"vectors,omitempty" validate:"dive"`

	_absConfigFilePath string
}

type GeneralConfig struct {
	// ChunkSize is the number of bytes read per ingestion call (default: 65536).
	ChunkSize int `toml:"chunk_size" json:"chunk_size" validate:"min=1,max=16777216"`
	// OutputFormat is the result line template. Available variables: {{hash}}, {{name}}, {{size}}.
	OutputFormat string `toml:"output_format" json:"output_format" validate:"required,output_template"`
	// Decompress decodes inputs before hashing: "", "gzip" or "zstd".
	Decompress string `toml:"decompress" json:"decompress" validate:"omitempty,oneof=gzip zstd"`
}

type ServerConfig struct {
	// ListenAddr is the HTTP listen address (default: 127.0.0.1:8090).
	ListenAddr string `toml:"listen_addr" json:"listen_addr" validate:"hostport_or_empty"`
	// MaxBodyBytes caps request bodies accepted by the digest endpoints (default: 64 MiB).
	MaxBodyBytes int64 `toml:"max_body_bytes" json:"max_body_bytes" validate:"min=1,max=1073741824"`
	// PrivateOnly rejects requests from addresses outside private and loopback ranges.
	PrivateOnly bool `toml:"private_only" json:"private_only"`
}

type Vector struct {
	// Name identifies the vector in reports.
	Name string `toml:"name" json:"name" validate:"required"`
	// Input is converted one code point per byte; code points above U+00FF are invalid.
	Input string `toml:"input,omitempty" json:"input,omitempty"`
	// InputHex is raw input in hexadecimal, used instead of Input.
	InputHex string `toml:"input_hex,omitempty" json:"input_hex,omitempty" validate:"omitempty,hexadecimal"`
	// Repeat concatenates the input this many times (0 or 1 = once).
	Repeat int `toml:"repeat,omitempty" json:"repeat,omitempty" validate:"min=0,max=1048576"`
	// Expected is the lowercase hex digest.
	Expected string `toml:"expected" json:"expected" validate:"required,md5_hex"`
}

// Bytes returns the message the vector describes.
func (v *Vector) Bytes() ([]byte, error) {
	var (
		b   []byte
		err error
	)
	if v.InputHex != "" {
		b, err = hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(v.InputHex, "0x"), "0X"))
		if err != nil {
			return nil, fmt.Errorf("invalid input_hex: %w", err)
		}
	} else {
		if b, err = md5.Latin1(v.Input); err != nil {
			return nil, err
		}
	}

	if v.Repeat > 1 {
		out := make([]byte, 0, len(b)*v.Repeat)
		for i := 0; i < v.Repeat; i++ {
			out = append(out, b...)
		}
		b = out
	}
	return b, nil
}

func (c *Config) GetConfigPath() string {
	return c._absConfigFilePath
}
