package commands

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/princess-rosella/spu-md5/src/internal/config"
	"github.com/princess-rosella/spu-md5/src/internal/errors"
	"github.com/princess-rosella/spu-md5/src/internal/format"
	"github.com/princess-rosella/spu-md5/src/internal/hashing"
	"github.com/princess-rosella/spu-md5/src/internal/log"
	"github.com/princess-rosella/spu-md5/src/internal/utils"
)

const stdinName = "-"

// Sidecar modes for the -sidecar flag.
const (
	sidecarWrite = "write"
	sidecarCheck = "check"
)

func CreateSumCommand() *SumCommand {
	gc := &SumCommand{
		fs: flag.NewFlagSet("sum", flag.ContinueOnError),
	}

	gc.fs.StringVar(&gc.outputFormat, "format", "", "Output line template ({{hash}}, {{name}}, {{size}}); overrides general.output_format")
	gc.fs.IntVar(&gc.chunkSize, "chunk", 0, "Read chunk size in bytes; overrides general.chunk_size")
	gc.fs.StringVar(&gc.decompress, "z", "", "Decompress inputs before hashing: gzip or zstd; overrides general.decompress")
	gc.fs.StringVar(&gc.sidecar, "sidecar", "", "Record (write) or verify (check) FILE"+hashing.SidecarSuffix+" next to each input")

	return gc
}

type SumCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	outputFormat string
	chunkSize    int
	decompress   string
	sidecar      string

	tmpl   *format.Template
	inputs []string
}

func (g *SumCommand) Name() string {
	return g.fs.Name()
}

func (g *SumCommand) Init(args []string, ctx *AppContext) error {
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
	if g.chunkSize == 0 {
		g.chunkSize = g.cfg.General.ChunkSize
	}
	if g.chunkSize < 0 {
		return errors.NewUsageError(fmt.Sprintf("invalid chunk size: %d", g.chunkSize))
	}
	if g.decompress == "" {
		g.decompress = g.cfg.General.Decompress
	}

	tmpl, err := format.New(g.outputFormat)
	if err != nil {
		return err
	}
	g.tmpl = tmpl

	g.inputs = g.fs.Args()
	if len(g.inputs) == 0 {
		g.inputs = []string{stdinName}
	}

	switch g.sidecar {
	case "", sidecarWrite, sidecarCheck:
	default:
		return errors.NewUsageError(fmt.Sprintf("invalid sidecar mode: %q", g.sidecar))
	}
	if g.sidecar != "" {
		for _, name := range g.inputs {
			if name == stdinName {
				return errors.NewUsageError("-sidecar needs file arguments")
			}
		}
	}

	return nil
}

func (g *SumCommand) Run() error {
	out := g.ctx.stdout()
	failed, mismatched := 0, 0

	for _, name := range g.inputs {
		res, err := g.hashInput(name)
		if err != nil {
			log.Errorf("%s: %v", name, err)
			failed++
			continue
		}

		if _, err := fmt.Fprintln(out, g.tmpl.Render(format.Line{Hash: res.Checksum, Name: name, Size: res.Size})); err != nil {
			return errors.NewIOError("failed to write output", err)
		}

		if err := g.handleSidecar(res, name); err != nil {
			log.Errorf("%s: %v", name, err)
			failed++
			if errors.GetCode(err) == errors.ErrCodeMismatch {
				mismatched++
			}
		}
	}

	if mismatched > 0 {
		return errors.New(errors.ErrCodeMismatch, fmt.Sprintf("%d of %d inputs failed, %d mismatched", failed, len(g.inputs), mismatched))
	}
	if failed > 0 {
		return errors.New(errors.ErrCodeIO, fmt.Sprintf("%d of %d inputs failed", failed, len(g.inputs)))
	}
	return nil
}

func (g *SumCommand) hashInput(name string) (hashing.Result, error) {
	var src io.Reader
	if name == stdinName {
		src = g.ctx.stdin()
	} else {
		file, err := os.Open(name)
		if err != nil {
			return hashing.Result{}, errors.NewIOError("failed to open input", err)
		}
		defer utils.CloseOrWarn(file, name)
		src = file
	}

	reader, err := hashing.NewDecodingReader(src, g.decompress)
	if err != nil {
		return hashing.Result{}, err
	}
	defer utils.CloseOrWarn(reader, name)

	log.Debugf("Hashing %s (chunk %d, codec %q)", name, g.chunkSize, g.decompress)
	return hashing.HashReader(reader, g.chunkSize)
}

func (g *SumCommand) handleSidecar(res hashing.Result, name string) error {
	switch g.sidecar {
	case sidecarWrite:
		return hashing.WriteChecksum(res, name)
	case sidecarCheck:
		changed, err := hashing.IsFileChanged(res, name)
		if err != nil {
			return err
		}
		if changed {
			recorded, _ := hashing.ReadChecksum(name + hashing.SidecarSuffix)
			return errors.NewMismatchError(name, recorded, res.Checksum)
		}
		log.Debugf("%s: matches %s", name, name+hashing.SidecarSuffix)
	}
	return nil
}
