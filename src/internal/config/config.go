package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	domainerrors "github.com/princess-rosella/spu-md5/src/internal/errors"
	"github.com/princess-rosella/spu-md5/src/internal/format"
	"github.com/princess-rosella/spu-md5/src/internal/log"
	"github.com/princess-rosella/spu-md5/src/md5"
)

const (
	DefaultChunkSize    = 64 * 1024
	DefaultListenAddr   = "127.0.0.1:8090"
	DefaultMaxBodyBytes = 64 * 1024 * 1024
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// BuiltinVectors returns the known-answer set used when no [[vector]] is configured.
func BuiltinVectors() []*Vector {
	return []*Vector{
		{Name: "empty", Input: "", Expected: "d41d8cd98f00b204e9800998ecf8427e"},
		{Name: "A", InputHex: "41", Expected: "7fc56270e7a70fa81a5935b72eacbe29"},
		{Name: "ABCD", InputHex: "41424344", Expected: "cb08ca4a7bb5f9683c19133a84872ca7"},
		{Name: "alphabet", Input: alphabet, Expected: "f29939a25efabaef3b87e2cbfe641315"},
		{Name: "alphabet x4", Input: alphabet, Repeat: 4, Expected: "0269bb6c2060579ecfd687c025ae2b47"},
	}
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.General.ChunkSize == 0 {
		c.General.ChunkSize = DefaultChunkSize
	}
	if c.General.OutputFormat == "" {
		c.General.OutputFormat = format.DefaultTemplate
	}
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = DefaultListenAddr
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if len(c.Vectors) == 0 {
		c.Vectors = BuiltinVectors()
	}
}

func LoadConfig(configPath string) (*Config, error) {
	configFile := filepath.Clean(configPath)

	if !filepath.IsAbs(configFile) {
		if path, err := filepath.Abs(configFile); err != nil {
			return nil, domainerrors.NewConfigError("failed to get absolute path", err)
		} else {
			configFile = path
		}
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		log.Errorf("Configuration file not found: %s", configFile)
		return nil, domainerrors.NewConfigError(fmt.Sprintf("configuration file not found: %s", configFile), nil)
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		return nil, domainerrors.NewConfigError("failed to read config file", err)
	}

	var config Config
	if err := toml.Unmarshal(content, &config); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			log.Errorf("%s", derr.String())
			row, col := derr.Position()
			log.Errorf("Error at line %d, column %d", row, col)
			return nil, domainerrors.NewConfigError(fmt.Sprintf("failed to parse config file at line %d, column %d", row, col), err)
		}
		return nil, domainerrors.NewConfigError("failed to parse config file", err)
	}

	config.applyDefaults()
	config._absConfigFilePath = configFile

	log.Debugf("Configuration file path: %s", configFile)
	log.Debugf("Known-answer vectors: %d", len(config.Vectors))

	return &config, nil
}

// LoadConfigOrDefault loads configPath, or returns Default when the path is empty.
func LoadConfigOrDefault(configPath string) (*Config, error) {
	if configPath == "" {
		log.Debugf("No configuration file given, using defaults")
		return Default(), nil
	}
	return LoadConfig(configPath)
}

func (c *Config) SerializeConfig() (*bytes.Buffer, error) {
	buf := bytes.Buffer{}
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return &buf, nil
}

// Fingerprint is the MD5 of the serialized configuration. Two configurations
// with the same effective settings share a fingerprint regardless of comments
// or key order in the source file.
func (c *Config) Fingerprint() (string, error) {
	buf, err := c.SerializeConfig()
	if err != nil {
		return "", domainerrors.NewInternalError("failed to serialize config", err)
	}
	return md5.Process(buf.Bytes()), nil
}
