package commands

import (
	"flag"
	"fmt"

	"github.com/princess-rosella/spu-md5/src/internal/config"
	"github.com/princess-rosella/spu-md5/src/internal/errors"
	"github.com/princess-rosella/spu-md5/src/internal/format"
	"github.com/princess-rosella/spu-md5/src/internal/hashing"
	"github.com/princess-rosella/spu-md5/src/md5"
)

// setName is the name shown for the combined checksum line.
const setName = "(set)"

func CreateStringCommand() *StringCommand {
	gc := &StringCommand{
		fs: flag.NewFlagSet("string", flag.ContinueOnError),
	}

	gc.fs.BoolVar(&gc.latin1, "latin1", false, "Hash each code point as one byte (code points above U+00FF are rejected)")
	gc.fs.BoolVar(&gc.set, "set", false, "Also print the checksum of the unique arguments as newline-terminated lines")
	gc.fs.StringVar(&gc.outputFormat, "format", "", "Output line template; overrides general.output_format")

	return gc
}

type StringCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	latin1       bool
	set          bool
	outputFormat string

	tmpl  *format.Template
	texts []string
}

func (g *StringCommand) Name() string {
	return g.fs.Name()
}

func (g *StringCommand) Init(args []string, ctx *AppContext) error {
	g.ctx = ctx

	if err := g.fs.Parse(args); err != nil {
		return err
	}

	if cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath); err != nil {
		return err
	} else {
		g.cfg = cfg
	}

	if g.outputFormat == "" {
		g.outputFormat = g.cfg.General.OutputFormat
	}
	tmpl, err := format.New(g.outputFormat)
	if err != nil {
		return err
	}
	g.tmpl = tmpl

	g.texts = g.fs.Args()
	if len(g.texts) == 0 {
		return errors.NewUsageError("string: at least one argument is required")
	}

	return nil
}

func (g *StringCommand) Run() error {
	out := g.ctx.stdout()
	set := hashing.NewChecksumStringSet()

	for _, text := range g.texts {
		data := []byte(text)
		if g.latin1 {
			var err error
			if data, err = md5.Latin1(text); err != nil {
				return err
			}
		}

		line := format.Line{Hash: md5.Process(data), Name: text, Size: int64(len(data))}
		if _, err := fmt.Fprintln(out, g.tmpl.Render(line)); err != nil {
			return errors.NewIOError("failed to write output", err)
		}

		if err := set.Put(text); err != nil {
			return err
		}
	}

	if g.set {
		checksum, err := set.GetChecksum()
		if err != nil {
			return err
		}
		line := format.Line{Hash: checksum, Name: setName, Size: int64(set.Size())}
		if _, err := fmt.Fprintln(out, g.tmpl.Render(line)); err != nil {
			return errors.NewIOError("failed to write output", err)
		}
	}

	return nil
}
