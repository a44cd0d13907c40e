package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/abhinav/huffpack/internal/log"
	"github.com/abhinav/huffpack/internal/paniclog"
	"github.com/benbjohnson/clock"
	"go.uber.org/multierr"
	"golang.org/x/term"
)

var _version = "dev"

var _main = mainCmd{
	Stdin:  os.Stdin,
	Stdout: os.Stdout,
	Stderr: os.Stderr,
	Clock:  clock.New(),
}

func main() {
	if err := run(&_main, os.Args[1:]); err != nil && err != flag.ErrHelp {
		fmt.Fprintln(_main.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *mainCmd, args []string) error {
	var cfg config
	flag := flag.NewFlagSet(_name, flag.ContinueOnError)
	flag.SetOutput(cmd.Stderr)
	flag.Usage = func() {
		name := flag.Name()
		fmt.Fprintf(flag.Output(), _usage, name)
	}
	cfg.RegisterFlags(flag)
	version := flag.Bool("version", false, "")
	if err := flag.Parse(args); err != nil {
		return err
	}

	if *version {
		fmt.Fprintf(cmd.Stdout, "huffpack version %v\n", _version)
		return nil
	}

	switch args := flag.Args(); len(args) {
	case 0:
	case 1:
		cfg.Input = args[0]
	default:
		return fmt.Errorf("unexpected arguments %q", args[1:])
	}

	return cmd.Run(&cfg)
}

type mainCmd struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Clock clock.Clock // == clock.New()
}

const _name = "huffpack"

const _usage = `usage: %v [options] [FILE]

Compresses FILE with Huffman coding.
Reads from stdin if FILE is absent or '-'.

The compressed output holds the byte frequencies of the input on the first
line, the number of encoded bits on the second line, and the encoded bits
after that.

The following flags are available:

	-d
		decompress FILE instead of compressing it.
	-o FILE
		file to write output to.
		Uses stdout by default.
	-log FILE
		file to write logs to.
		Uses stderr by default.
	-verbose
		log more output.
	-quiet
		don't log anything.
	-version
		display version information.
`

func (cmd *mainCmd) init() {
	if cmd.Clock == nil {
		cmd.Clock = clock.New()
	}
}

func (cmd *mainCmd) Run(cfg *config) (err error) {
	cmd.init()

	stderr := cmd.Stderr
	if file := cfg.LogFile; len(file) > 0 {
		f, openErr := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if openErr != nil {
			return fmt.Errorf("open log %q: %w", file, openErr)
		}
		defer multierr.AppendInvoke(&err, multierr.Close(f))
		stderr = f
	}

	defer paniclog.Recover(&err, stderr)

	logger := log.Discard
	if !cfg.Quiet {
		lvl := log.Info
		if cfg.Verbose {
			lvl = log.Debug
		}
		logger = log.New(stderr, lvl, log.WithColor(isTerminal(stderr)))
	}
	logger.Debug("starting", slog.Any("args", cfg.Flags()))

	in := cmd.Stdin
	if path := cfg.Input; len(path) > 0 && path != "-" {
		f, openErr := os.Open(path)
		if openErr != nil {
			return openErr
		}
		defer multierr.AppendInvoke(&err, multierr.Close(f))
		in = f
	}

	out := cmd.Stdout
	if path := cfg.Output; len(path) > 0 && path != "-" {
		f := &lazyFile{Path: path}
		defer multierr.AppendInvoke(&err, multierr.Close(f))
		out = f
	}

	return (&app{
		Log:   logger,
		Clock: cmd.Clock,
	}).Run(cfg, in, out)
}

// isTerminal reports whether w is a terminal
// that will probably render ANSI colors.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// lazyFile is an io.WriteCloser that creates the file at Path
// on the first call to Write.
// A run that fails before writing anything leaves no file behind
// and doesn't truncate an existing one.
type lazyFile struct {
	Path string

	f *os.File
}

func (l *lazyFile) Write(b []byte) (int, error) {
	if l.f == nil {
		f, err := os.Create(l.Path)
		if err != nil {
			return 0, err
		}
		l.f = f
	}
	return l.f.Write(b)
}

func (l *lazyFile) Close() error {
	if l.f == nil {
		return nil
	}
	return l.f.Close()
}
