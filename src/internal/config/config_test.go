package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	domainerrors "github.com/princess-rosella/spu-md5/src/internal/errors"
	"github.com/princess-rosella/spu-md5/src/internal/log"
	"github.com/princess-rosella/spu-md5/src/md5"
)

func init() {
	log.DisableLogs()
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spu-md5.conf")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.General.ChunkSize != DefaultChunkSize {
		t.Errorf("Expected chunk size %d, got %d", DefaultChunkSize, cfg.General.ChunkSize)
	}
	if cfg.Server.ListenAddr != DefaultListenAddr {
		t.Errorf("Expected listen addr %s, got %s", DefaultListenAddr, cfg.Server.ListenAddr)
	}
	if len(cfg.Vectors) != 5 {
		t.Errorf("Expected 5 built-in vectors, got %d", len(cfg.Vectors))
	}
	if err := cfg.ValidateConfig(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestBuiltinVectorsMatchDigest(t *testing.T) {
	for _, v := range BuiltinVectors() {
		data, err := v.Bytes()
		if err != nil {
			t.Fatalf("%s: %v", v.Name, err)
		}
		if got := md5.Process(data); got != v.Expected {
			t.Errorf("%s: expected %s, got %s", v.Name, v.Expected, got)
		}
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[general]
chunk_size = 4096

[[vector]]
name = "abc"
input = "abc"
expected = "900150983cd24fb0d6963f7d28e17f72"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.General.ChunkSize != 4096 {
		t.Errorf("Expected chunk size 4096, got %d", cfg.General.ChunkSize)
	}
	if cfg.General.OutputFormat == "" {
		t.Error("Expected default output format to be applied")
	}
	if cfg.Server.MaxBodyBytes != DefaultMaxBodyBytes {
		t.Errorf("Expected default max body, got %d", cfg.Server.MaxBodyBytes)
	}
	if len(cfg.Vectors) != 1 || cfg.Vectors[0].Name != "abc" {
		t.Errorf("Expected configured vectors to replace built-ins, got %+v", cfg.Vectors)
	}
	if cfg.GetConfigPath() != path {
		t.Errorf("Expected config path %s, got %s", path, cfg.GetConfigPath())
	}
	if err := cfg.ValidateConfig(); err != nil {
		t.Errorf("Expected valid config: %v", err)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.conf"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !errors.Is(err, domainerrors.New(domainerrors.ErrCodeConfig, "")) {
		t.Errorf("Expected config error, got %v", err)
	}
}

func TestLoadConfig_SyntaxError(t *testing.T) {
	path := writeConfig(t, "[general\nchunk_size = 1\n")

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("Expected parse error")
	}
	if !strings.Contains(err.Error(), "at line") {
		t.Errorf("Expected position in error, got %v", err)
	}
}

func TestLoadConfigOrDefault_EmptyPath(t *testing.T) {
	cfg, err := LoadConfigOrDefault("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.GetConfigPath() != "" {
		t.Errorf("Expected no config path, got %s", cfg.GetConfigPath())
	}
}

func TestValidateConfig_Errors(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		fieldPath string
	}{
		{"chunk size too large", func(c *Config) { c.General.ChunkSize = 1 << 30 }, "general.chunk_size"},
		{"negative chunk size", func(c *Config) { c.General.ChunkSize = -1 }, "general.chunk_size"},
		{"unknown template tag", func(c *Config) { c.General.OutputFormat = "{{sha256}}" }, "general.output_format"},
		{"bad decompress", func(c *Config) { c.General.Decompress = "brotli" }, "general.decompress"},
		{"bad listen addr", func(c *Config) { c.Server.ListenAddr = "localhost" }, "server.listen_addr"},
		{"uppercase expected", func(c *Config) { c.Vectors[0].Expected = "D41D8CD98F00B204E9800998ECF8427E" }, "vector.0.expected"},
		{"missing name", func(c *Config) { c.Vectors[1].Name = "" }, "vector.1.name"},
		{"duplicate name", func(c *Config) { c.Vectors[2].Name = c.Vectors[1].Name }, "vector.2.name"},
		{"both inputs", func(c *Config) { c.Vectors[3].InputHex = "41" }, "vector.3.input_hex"},
		{"odd hex", func(c *Config) { c.Vectors[1].InputHex = "414" }, "vector.1.input"},
		{"wide input", func(c *Config) { c.Vectors[3].Input = "€" }, "vector.3.input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.ValidateConfig()
			if err == nil {
				t.Fatal("Expected validation error")
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Expected ValidationErrors, got %T", err)
			}

			found := false
			for _, e := range verrs {
				if e.FieldPath == tt.fieldPath {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected error on %s, got %v", tt.fieldPath, verrs)
			}
		})
	}
}

func TestVector_BytesRepeat(t *testing.T) {
	v := &Vector{Name: "x", InputHex: "0x4142", Repeat: 3}
	b, err := v.Bytes()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(b) != "ABABAB" {
		t.Errorf("Expected ABABAB, got %q", b)
	}
}

func TestFingerprint(t *testing.T) {
	a, err := Default().Fingerprint()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	b, _ := Default().Fingerprint()
	if a != b {
		t.Errorf("Expected identical fingerprints, got %s and %s", a, b)
	}
	if !IsMD5Hex(a) {
		t.Errorf("Expected hex digest, got %s", a)
	}

	changed := Default()
	changed.General.ChunkSize = 1
	c, _ := changed.Fingerprint()
	if c == a {
		t.Error("Expected fingerprint to change with settings")
	}
}

func TestSerializeConfig_RoundTrip(t *testing.T) {
	buf, err := Default().SerializeConfig()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	path := writeConfig(t, buf.String())
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to reload serialized config: %v", err)
	}
	if err := cfg.ValidateConfig(); err != nil {
		t.Errorf("Serialized config should validate: %v", err)
	}
	if len(cfg.Vectors) != len(BuiltinVectors()) {
		t.Errorf("Expected %d vectors, got %d", len(BuiltinVectors()), len(cfg.Vectors))
	}
}
