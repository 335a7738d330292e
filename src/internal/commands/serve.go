package commands

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/princess-rosella/spu-md5/src/internal/api"
	"github.com/princess-rosella/spu-md5/src/internal/config"
	"github.com/princess-rosella/spu-md5/src/internal/log"
)

const shutdownTimeout = 30 * time.Second

// ServeCommand runs the HTTP API until interrupted.
type ServeCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	bindAddr    string
	maxRestarts int

	// signals is replaced in tests.
	signals chan os.Signal
}

// CreateServeCommand creates a new serve command.
func CreateServeCommand() *ServeCommand {
	c := &ServeCommand{
		fs: flag.NewFlagSet("serve", flag.ContinueOnError),
	}
	c.fs.StringVar(&c.bindAddr, "bind", "", "Address to bind the HTTP server; overrides server.listen_addr")
	c.fs.IntVar(&c.maxRestarts, "max-restarts", 5, "Give up after this many consecutive server failures (0 = never)")
	return c
}

// Name returns the command name.
func (c *ServeCommand) Name() string {
	return c.fs.Name()
}

// Init initializes the serve command with arguments.
func (c *ServeCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	if c.bindAddr == "" {
		c.bindAddr = cfg.Server.ListenAddr
	}

	return nil
}

// Run serves until SIGINT/SIGTERM or until the server gives up restarting.
func (c *ServeCommand) Run() error {
	if c.cfg.GetConfigPath() != "" {
		log.Infof("Configuration loaded from: %s", c.cfg.GetConfigPath())
	}
	if c.cfg.Server.PrivateOnly {
		log.Infof("Access restricted to private subnets only")
	}

	runner := NewRestartableRunner(RunnerConfig{
		Name:        "API server",
		MaxRestarts: c.maxRestarts,
	}, c.serve)

	if c.signals == nil {
		c.signals = make(chan os.Signal, 1)
		signal.Notify(c.signals, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(c.signals)
	}

	if err := runner.Start(context.Background()); err != nil {
		return err
	}

	select {
	case <-runner.Done():
		return runner.LastError()
	case sig := <-c.signals:
		log.Infof("Received signal %v, shutting down server...", sig)
	}

	if err := runner.Stop(); err != nil {
		return err
	}

	log.Infof("Server stopped gracefully")
	return nil
}

// serve runs one server instance until ctx is cancelled.
func (c *ServeCommand) serve(ctx context.Context) error {
	server := api.NewServer(c.cfg, c.bindAddr, c.ctx.Version)
	if err := server.Listen(); err != nil {
		return err
	}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Serve()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		return err
	}
	return <-serverErrors
}
