// Runeblade is a deterministic, data-driven deck-building card battler.
// Usage: runeblade [--version] [--plain] [--trace] [--seed <n>] [--config <file>]
// [--content <dir>] [--log-level <level>] [--log-file <file>] [--script <file>]
// [--replay <file>]
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nathoo/runeblade/cli"
	"github.com/nathoo/runeblade/config"
	"github.com/nathoo/runeblade/content"
	"github.com/nathoo/runeblade/engine"
	"github.com/nathoo/runeblade/engine/replay"
	"github.com/nathoo/runeblade/engine/state"
	"github.com/nathoo/runeblade/loader"
	"github.com/nathoo/runeblade/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: runeblade [--version] [--plain] [--trace] [--seed <n>] [--config <file>] [--content <dir>] [--log-level <level>] [--log-file <file>] [--script <file>] [--replay <file>]\n"

type options struct {
	plain      bool
	trace      bool
	seed       int64
	seedSet    bool
	configFile string
	contentDir string
	logLevel   string
	logFile    string
	scriptFile string
	replayFile string
}

func main() {
	opts := parseArgs(os.Args[1:])

	cfg := config.Default()
	if opts.configFile != "" {
		var err error
		if cfg, err = config.Load(opts.configFile); err != nil {
			fatalf("Error loading config: %v\n", err)
		}
	}
	cfg = config.FromEnv(cfg)
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		fatalf("Invalid config: %v\n", err)
	}

	interactive := opts.scriptFile == "" && !opts.plain && isTerminal()
	logger, closeLog := newLogger(cfg, opts.logFile, interactive)
	defer closeLog()
	log.SetDefault(logger)

	// Load and compile Lua game content.
	defs, err := loadContent(opts.contentDir)
	if err != nil {
		fatalf("Error loading content: %v\n", err)
	}

	engOpts := []engine.Option{engine.WithLogger(logger)}
	var eng *engine.Engine
	if opts.replayFile != "" {
		eng, err = loadReplay(opts.replayFile, defs, cfg, engOpts)
		if err != nil {
			fatalf("Error replaying run: %v\n", err)
		}
	} else {
		seed := opts.seed
		if !opts.seedSet {
			seed = time.Now().UnixNano()
		}
		eng = engine.New(defs, cfg, seed, engOpts...)
	}
	logger.Info("run started", "seed", eng.Seed, "difficulty", cfg.Battle.Difficulty, "content", defs.Title)

	// Script mode: open file, force plain, echo commands.
	if opts.scriptFile != "" {
		f, err := os.Open(opts.scriptFile)
		if err != nil {
			fatalf("Error opening script: %v\n", err)
		}
		defer f.Close()
		c := cli.New(eng)
		c.In = f
		c.EchoInput = true
		c.Trace = opts.trace
		c.Run()
		return
	}

	if !interactive {
		c := cli.New(eng)
		c.Trace = opts.trace
		c.Run()
		return
	}

	if err := tui.Run(eng); err != nil {
		fatalf("Error: %v\n", err)
	}
}

func parseArgs(args []string) options {
	var opts options
	next := func(i *int, flag string) string {
		if *i+1 >= len(args) {
			fatalf("%s requires a value\n", flag)
		}
		*i++
		return args[*i]
	}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("runeblade %s (commit %s, built %s)\n", version, commit, date)
			os.Exit(0)
		case "--help", "-h":
			fmt.Print(usage)
			os.Exit(0)
		case "--plain":
			opts.plain = true
		case "--trace":
			opts.trace = true
		case "--seed":
			v := next(&i, "--seed")
			seed, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				fatalf("--seed must be an integer, got %q\n", v)
			}
			opts.seed, opts.seedSet = seed, true
		case "--config":
			opts.configFile = next(&i, "--config")
		case "--content":
			opts.contentDir = next(&i, "--content")
		case "--log-level":
			opts.logLevel = next(&i, "--log-level")
		case "--log-file":
			opts.logFile = next(&i, "--log-file")
		case "--script":
			opts.scriptFile = next(&i, "--script")
		case "--replay":
			opts.replayFile = next(&i, "--replay")
		default:
			fatalf("unknown argument %q\n%s", args[i], usage)
		}
	}
	return opts
}

// newLogger writes to the log file when one is given, otherwise to stderr.
// The full-screen UI owns the terminal, so it logs nowhere without a file.
func newLogger(cfg config.Config, path string, interactive bool) (*log.Logger, func()) {
	level, _ := cfg.Log.ParseLevel() // checked by Validate
	var w io.Writer = os.Stderr
	closer := func() {}
	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fatalf("Error opening log file: %v\n", err)
		}
		w, closer = f, func() { f.Close() }
	case interactive:
		w = io.Discard
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "runeblade",
		ReportTimestamp: true,
	})
	return logger, closer
}

func loadContent(dir string) (*state.Defs, error) {
	if dir == "" {
		return loader.LoadFS(content.FS)
	}
	return loader.Load(dir)
}

func loadReplay(path string, defs *state.Defs, cfg config.Config, opts []engine.Option) (*engine.Engine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading replay: %w", err)
	}
	rec, err := replay.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return replay.Replay(rec, defs, cfg, opts...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
