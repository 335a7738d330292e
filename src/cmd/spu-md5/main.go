package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/princess-rosella/spu-md5/src/internal/api"
	"github.com/princess-rosella/spu-md5/src/internal/commands"
	"github.com/princess-rosella/spu-md5/src/internal/log"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

func main() {
	ctx := &commands.AppContext{
		Version: api.VersionInfo{Version: version, Commit: commit, Date: date},
	}

	// Define flags
	flag.StringVar(&ctx.ConfigPath, "config", "", "Path to configuration file (defaults are used when empty)")
	flag.BoolVar(&ctx.Verbose, "verbose", false, "Enable debug logging")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Streaming MD5 digest tool\n")
		fmt.Fprintf(os.Stderr, "Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  sum [files...]          Hash files (or stdin) and print one line per input\n")
		fmt.Fprintf(os.Stderr, "  string <text>...        Hash literal arguments\n")
		fmt.Fprintf(os.Stderr, "  self-check              Run known-answer vectors and block-boundary checks\n")
		fmt.Fprintf(os.Stderr, "  serve                   Run the HTTP API\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if ctx.Verbose {
		log.SetVerbose(true)
	}

	// Results go to stdout; keep it clean for piping.
	log.SetForceStdErr(true)

	cmds := []commands.Runner{
		commands.CreateSumCommand(),
		commands.CreateStringCommand(),
		commands.CreateSelfCheckCommand(),
		commands.CreateServeCommand(),
	}

	args := flag.Args()

	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	subcommand := args[0]
	for _, cmd := range cmds {
		if cmd.Name() == subcommand {
			if err := cmd.Init(args[1:], ctx); err != nil {
				if errors.Is(err, flag.ErrHelp) {
					os.Exit(0)
				}
				log.Fatalf("Failed to initialize command: %v", err)
			}

			if err := cmd.Run(); err != nil {
				log.Fatalf("Failed to run command: %v", err)
			}

			os.Exit(0)
		}
	}

	log.Fatalf("Unknown subcommand: %s", subcommand)
}
