// Package cli implements the primecount command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/hupe1980/primecount"
	"github.com/hupe1980/primecount/internal/config"
	"github.com/hupe1980/primecount/internal/sieve"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// maxVerifyHi bounds --verify; the reference sieve keeps one bit per integer
// below hi (1 GiB at this limit).
const maxVerifyHi = 1 << 33

const progressInterval = time.Second

const usage = `Usage: primecount [flags]

Counts, sums and ranks the primes in [lo, hi) using concurrent workers.

Prints "<elapsed>ms <count> <sum>" followed by the top-k primes, one per line,
zero-padded to k entries.

Flags:
`

type flags struct {
	fs *flag.FlagSet

	workDir    string
	configPath string
	lo         uint64
	hi         uint64
	workers    int
	topK       int
	verify     bool
	progress   bool
	logLevel   string
	logFormat  string
}

func newFlags() *flags {
	f := &flags{fs: flag.NewFlagSet("primecount", flag.ContinueOnError)}
	f.fs.SortFlags = false

	f.fs.StringVarP(&f.workDir, "cwd", "C", "", "Directory searched for "+config.FileName)
	f.fs.StringVarP(&f.configPath, "config", "c", "", "Path to a JSONC config file")
	f.fs.Uint64Var(&f.lo, "lo", config.DefaultLo, "Inclusive lower bound")
	f.fs.Uint64Var(&f.hi, "hi", config.DefaultHi, "Exclusive upper bound")
	f.fs.IntVarP(&f.workers, "workers", "w", config.DefaultWorkers, "Number of workers (0 = GOMAXPROCS)")
	f.fs.IntVarP(&f.topK, "top", "k", config.DefaultTopK, "Number of largest primes to report")
	f.fs.BoolVar(&f.verify, "verify", false, "Cross-check the result against a sieve of Eratosthenes")
	f.fs.BoolVar(&f.progress, "progress", false, "Report progress on stderr every second")
	f.fs.StringVar(&f.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	f.fs.StringVar(&f.logFormat, "log-format", config.FormatText, "Log format: text, json")

	return f
}

// apply overlays the flags the user actually set onto cfg.
func (f *flags) apply(cfg config.Config) config.Config {
	if f.fs.Changed("lo") {
		cfg.Lo = f.lo
	}
	if f.fs.Changed("hi") {
		cfg.Hi = f.hi
	}
	if f.fs.Changed("workers") {
		cfg.Workers = f.workers
	}
	if f.fs.Changed("top") {
		cfg.TopK = f.topK
	}
	if f.fs.Changed("verify") {
		cfg.Verify = f.verify
	}
	if f.fs.Changed("progress") {
		cfg.Progress = f.progress
	}
	if f.fs.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if f.fs.Changed("log-format") {
		cfg.LogFormat = f.logFormat
	}
	return cfg
}

func printUsage(w io.Writer, f *flags) {
	var buf strings.Builder
	f.fs.SetOutput(&buf)
	f.fs.PrintDefaults()
	fprintf(w, "%s%s", usage, buf.String())
}

// Run is the main entry point. Returns exit code.
// args includes the program name.
func Run(ctx context.Context, out, errOut io.Writer, args []string, env map[string]string) int {
	f := newFlags()
	f.fs.SetOutput(io.Discard) // usage is printed by printUsage

	if err := f.fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(out, f)
			return exitOK
		}
		fprintf(errOut, "error: %v\n\n", err)
		printUsage(errOut, f)
		return exitUsage
	}
	if f.fs.NArg() > 0 {
		fprintf(errOut, "error: unexpected arguments: %s\n", strings.Join(f.fs.Args(), " "))
		return exitUsage
	}

	cfg, err := config.LoadConfig(config.LoadInput{
		WorkDir:    f.workDir,
		ConfigPath: f.configPath,
		Env:        env,
	})
	if err != nil {
		fprintf(errOut, "error: %v\n", err)
		return exitUsage
	}

	cfg = f.apply(cfg)
	if err := config.Validate(cfg); err != nil {
		fprintf(errOut, "error: %v\n", err)
		return exitUsage
	}
	if cfg.Verify && cfg.Hi > maxVerifyHi {
		fprintf(errOut, "error: --verify supports hi up to %d\n", uint64(maxVerifyHi))
		return exitUsage
	}

	if err := run(ctx, out, errOut, cfg); err != nil {
		fprintf(errOut, "error: %v\n", err)
		return exitError
	}

	return exitOK
}

func run(ctx context.Context, out, errOut io.Writer, cfg config.Config) error {
	logger, err := newLogger(errOut, cfg)
	if err != nil {
		return err
	}

	opts := []primecount.Option{
		primecount.WithWorkers(cfg.Workers),
		primecount.WithTopK(cfg.TopK),
		primecount.WithLogger(logger),
	}
	if cfg.Progress {
		opts = append(opts, primecount.WithProgress(progressInterval, func(p primecount.Progress) {
			fprintf(errOut, "progress: %5.1f%% scanned=%d primes=%d elapsed=%s\n",
				p.Percent(), p.Scanned, p.Primes, p.Elapsed.Round(time.Millisecond))
		}))
	}

	start := time.Now()
	res, err := primecount.Count(ctx, cfg.Lo, cfg.Hi, opts...)
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	fprintf(out, "%dms %d %d\n", elapsed.Milliseconds(), res.Count, res.Sum)
	for _, p := range res.PaddedTopK() {
		fprintf(out, "%d\n", p)
	}

	if cfg.Verify {
		if err := verify(cfg, res); err != nil {
			return err
		}
		fprintf(out, "verified\n")
	}

	return nil
}

func verify(cfg config.Config, res primecount.Result) error {
	ref := sieve.Count(cfg.Lo, cfg.Hi, cfg.TopK)

	if ref.Count != res.Count || ref.Sum != res.Sum || !slices.Equal(ref.TopK, res.TopK) {
		return fmt.Errorf("verification failed: sieve found count=%d sum=%d top=%v, scan found count=%d sum=%d top=%v",
			ref.Count, ref.Sum, ref.TopK, res.Count, res.Sum, res.TopK)
	}
	return nil
}

func newLogger(w io.Writer, cfg config.Config) (*primecount.Logger, error) {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == config.FormatJSON {
		return primecount.NewLogger(slog.NewJSONHandler(w, opts)), nil
	}
	return primecount.NewLogger(slog.NewTextHandler(w, opts)), nil
}

func fprintf(w io.Writer, format string, a ...any) {
	_, _ = fmt.Fprintf(w, format, a...)
}
