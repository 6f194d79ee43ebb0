package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"bifrost.dev/node/validator"
	"bifrost.dev/node/vault"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	defaults := validator.DefaultConfig()
	cfg := defaults

	fs := flag.NewFlagSet("bifrost-node", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&cfg.DataDir, "datadir", defaults.DataDir, "node data directory")
	fs.Uint64Var(&cfg.MaxSegmentSize, "max-segment-size", defaults.MaxSegmentSize, "vault segment rotation threshold, in bytes")
	fs.StringVar(&cfg.LogLevel, "log-level", defaults.LogLevel, "log level: debug|info|warn|error")
	dryRun := fs.Bool("dry-run", false, "print effective config and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if err := validator.ValidateConfig(cfg); err != nil {
		_, _ = fmt.Fprintf(stderr, "invalid config: %v\n", err)
		return 2
	}
	if err := os.MkdirAll(cfg.DataDir, 0o750); err != nil {
		_, _ = fmt.Fprintf(stderr, "datadir create failed: %v\n", err)
		return 2
	}

	if err := printConfig(stdout, cfg); err != nil {
		_, _ = fmt.Fprintf(stderr, "config encode failed: %v\n", err)
		return 1
	}
	if *dryRun {
		return 0
	}

	vlt, err := vault.LoadOrCreate(cfg.DataDir, cfg.MaxSegmentSize)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "vault open failed: %v\n", err)
		return 2
	}
	queue := validator.NewQueue()
	val, err := validator.NewValidator(vlt, queue)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "validator init failed: %v\n", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, _ = fmt.Fprintf(stdout, "bifrost-node: running (slot=%d)\n", val.CurrentSlot())
	val.Run(ctx)

	if err := vlt.Persist(); err != nil {
		_, _ = fmt.Fprintf(stderr, "vault persist on shutdown failed: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(stdout, "bifrost-node: stopped")
	return 0
}

func printConfig(w io.Writer, cfg validator.Config) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg)
}
