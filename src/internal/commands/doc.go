// Package commands implements CLI command handlers for spu-md5.
//
// Each command implements the Runner interface:
//   - Init(): Parse arguments and load the configuration (the defaults when no file is given)
//   - Run(): Execute the command
//   - Name(): Return command name for routing
//
// # Available Commands
//
//   - sum: Hash files or stdin, optionally decompressing gzip or zstd input
//   - string: Hash literal arguments
//   - self-check: Run known-answer vectors and block-boundary checks
//   - serve: Run the HTTP API until interrupted
//
// # Example Usage
//
//	cmd := commands.CreateSumCommand()
//	ctx := &commands.AppContext{ConfigPath: "/etc/spu-md5.conf"}
//	if err := cmd.Init([]string{"-z", "gzip", "dump.gz"}, ctx); err != nil {
//	    log.Fatalf("init: %v", err)
//	}
//	if err := cmd.Run(); err != nil {
//	    log.Fatalf("run: %v", err)
//	}
package commands
