package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	apppkg "github.com/kk-code-lab/rless/internal/app"
	"github.com/kk-code-lab/rless/internal/config"
	"github.com/kk-code-lab/rless/internal/source"
	"github.com/kk-code-lab/rless/internal/ui/input"
)

var errUsage = errors.New("missing input: provide FILE or pipe data on standard input")

func printHelp() {
	fmt.Print(`rless - terminal pager for files and pipes

USAGE:
    rless [OPTIONS] [FILE]
    command | rless

When FILE is omitted, standard input is paged. Keys follow less: Space/Enter
page down, b pages up, g/G jump to the ends, r reloads, ? lists all
bindings, q quits. Bindings can be changed in the config file.

OPTIONS:
    -h, --help    Show this help message and exit
`)
}

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = printHelp
	help := flag.Bool("h", false, "show help")
	flag.BoolVar(help, "help", false, "show help")
	flag.Parse()
	if *help {
		printHelp()
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "rless: %v\n", err)
		return 1
	}

	closeLog := setupLogging(cfg)
	defer closeLog()

	keymap := input.Default()
	if err := keymap.ApplyOverrides(cfg.Keys); err != nil {
		fmt.Fprintf(os.Stderr, "rless: %v\n", err)
		return 1
	}

	src, err := openSource(flag.Args())
	if errors.Is(err, errUsage) {
		fmt.Fprintf(os.Stderr, "rless: %v\n\n", err)
		printHelp()
		return 2
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "rless: %v\n", err)
		return 1
	}
	defer src.Close()

	// UTF-8 fallback keeps unmappable terminal encodings from mangling text.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	app, err := apppkg.NewApplication(src, keymap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rless: %v\n", err)
		return 1
	}
	defer app.Close()

	log.Printf("paging %s", src.Path())
	app.Run()
	return 0
}

// openSource picks the input: a named file, or standard input when it is not
// the terminal. Keyboard input still works in pipe mode because tcell reads
// the terminal device directly.
func openSource(args []string) (*source.Source, error) {
	switch len(args) {
	case 0:
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, errUsage
		}
		return source.Drain(os.Stdin)
	case 1:
		return source.Open(args[0])
	default:
		return nil, errUsage
	}
}

// setupLogging points the standard logger at the configured file. The
// terminal owns stdout and stderr, so without a destination log output is
// discarded.
func setupLogging(cfg *config.Config) func() {
	path := cfg.LogPath()
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rless: log file: %v\n", err)
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(f)
	return func() { _ = f.Close() }
}
