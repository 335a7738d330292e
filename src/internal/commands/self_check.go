package commands

import (
	"flag"
	"fmt"

	"github.com/princess-rosella/spu-md5/src/internal/config"
	"github.com/princess-rosella/spu-md5/src/internal/errors"
	"github.com/princess-rosella/spu-md5/src/internal/log"
	"github.com/princess-rosella/spu-md5/src/internal/selfcheck"
)

func CreateSelfCheckCommand() *SelfCheckCommand {
	gc := &SelfCheckCommand{
		fs: flag.NewFlagSet("self-check", flag.ContinueOnError),
	}
	gc.fs.BoolVar(&gc.quiet, "quiet", false, "Print failing cases only")
	return gc
}

type SelfCheckCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	quiet bool
}

func (g *SelfCheckCommand) Name() string {
	return g.fs.Name()
}

func (g *SelfCheckCommand) Init(args []string, ctx *AppContext) error {
	g.ctx = ctx

	if err := g.fs.Parse(args); err != nil {
		return err
	}

	if cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath); err != nil {
		return err
	} else {
		g.cfg = cfg
	}

	return nil
}

func (g *SelfCheckCommand) Run() error {
	out := g.ctx.stdout()

	log.Infof("Running self-check...")
	log.Infof("---------------- Configuration START -----------------")

	if cfg, err := g.cfg.SerializeConfig(); err != nil {
		log.Errorf("Failed to serialize config: %v", err)
		return errors.NewInternalError("failed to serialize config", err)
	} else if _, err := out.Write(cfg.Bytes()); err != nil {
		log.Errorf("Failed to output config: %v", err)
		return errors.NewIOError("failed to output config", err)
	}

	log.Infof("----------------- Configuration END ------------------")

	if fingerprint, err := g.cfg.Fingerprint(); err == nil {
		log.Infof("Configuration fingerprint: %s", fingerprint)
	}

	report := selfcheck.RunVectors(g.cfg.Vectors).Merge(selfcheck.RunBoundaries())

	for _, c := range report.Cases {
		if g.quiet && c.Passed {
			continue
		}
		status := "ok"
		if !c.Passed {
			status = "FAIL"
		}
		if _, err := fmt.Fprintf(out, "%-4s %-16s %-9s %s\n", status, c.Name, c.Mode, c.Got); err != nil {
			return errors.NewIOError("failed to write output", err)
		}
	}

	if err := report.Err(); err != nil {
		log.Errorf("Self-check failed")
		return err
	}

	log.Infof("Self-check passed: %d cases", len(report.Cases))
	return nil
}
