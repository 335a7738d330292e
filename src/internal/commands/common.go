package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/princess-rosella/spu-md5/src/internal/api"
	"github.com/princess-rosella/spu-md5/src/internal/config"
)

type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
}

type AppContext struct {
	ConfigPath string
	Verbose    bool
	Version    api.VersionInfo

	// Stdin and Stdout default to the process streams when nil.
	Stdin  io.Reader
	Stdout io.Writer
}

func (c *AppContext) stdin() io.Reader {
	if c.Stdin == nil {
		return os.Stdin
	}
	return c.Stdin
}

func (c *AppContext) stdout() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

// loadAndValidateConfigOrFail loads the configuration, falling back to the
// defaults when no path is given, and validates it.
func loadAndValidateConfigOrFail(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfigOrDefault(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}
