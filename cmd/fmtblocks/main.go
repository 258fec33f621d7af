// Command fmtblocks formats a nested JSON array of numbers and strings using the nested-list
// worked example from github.com/Spacerat/format-blocks/internal/nested.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Spacerat/format-blocks/internal/nested"
	"github.com/Spacerat/format-blocks/internal/version"
	"github.com/Spacerat/format-blocks/watch"
)

// errFlagParse is a sentinel error indicating flag parsing failed. The flag package already
// printed the error, so main should not print again.
var errFlagParse = errors.New("flag parse error")

func main() {
	code, err := run(os.Args, os.Stdin, os.Stdout, os.Stderr)
	if err != nil && !errors.Is(err, errFlagParse) {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
	os.Exit(code)
}

func run(args []string, r io.Reader, w io.Writer, wErr io.Writer) (int, error) {
	if len(args) < 2 {
		usage(wErr)
		return 2, nil
	}

	switch args[1] {
	case "-h", "--help", "help":
		usage(wErr)
		return 0, nil
	case "fmt":
		return runFmt(args[2:], r, w, wErr)
	case "watch":
		return runWatch(args[2:], w, wErr)
	case "version":
		_, _ = fmt.Fprintln(w, version.Version())
		return 0, nil
	default:
		return 2, fmt.Errorf("unknown command: %s", args[1])
	}
}

func usage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "fmtblocks formats a nested JSON array of numbers and strings")
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "usage: fmtblocks <command> [args]")
	_, _ = fmt.Fprintln(w, "commands: fmt, watch, version")
}

func runFmt(args []string, r io.Reader, w io.Writer, wErr io.Writer) (int, error) {
	flags := flag.NewFlagSet("fmt", flag.ContinueOnError)
	flags.SetOutput(wErr)
	flags.Usage = func() {
		_, _ = fmt.Fprintln(wErr, "usage: fmtblocks fmt [flags] [file]")
		_, _ = fmt.Fprintln(wErr, "flags:")
		flags.PrintDefaults()
	}
	margin0 := flags.Int("margin0", 10, "soft margin")
	margin1 := flags.Int("margin1", 60, "hard margin")

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0, nil
		}
		return 2, errFlagParse
	}

	var contents []byte
	var err error
	if flags.NArg() == 1 {
		contents, err = os.ReadFile(flags.Arg(0))
	} else {
		contents, err = io.ReadAll(r)
	}
	if err != nil {
		return 1, fmt.Errorf("reading input: %v", err)
	}

	out, err := formatJSON(contents, *margin0, *margin1)
	if err != nil {
		return 1, err
	}
	_, _ = fmt.Fprintln(w, out)
	return 0, nil
}

func formatJSON(contents []byte, margin0, margin1 int) (string, error) {
	var data any
	if err := json.Unmarshal(contents, &data); err != nil {
		return "", fmt.Errorf("invalid JSON input: %v", err)
	}
	out, err := nested.Format(data, margin0, margin1)
	if err != nil {
		return "", fmt.Errorf("formatting input: %v", err)
	}
	return out, nil
}

func runWatch(args []string, w io.Writer, wErr io.Writer) (int, error) {
	flags := flag.NewFlagSet("watch", flag.ContinueOnError)
	flags.SetOutput(wErr)
	flags.Usage = func() {
		_, _ = fmt.Fprintln(wErr, "usage: fmtblocks watch [flags] <file>")
		_, _ = fmt.Fprintln(wErr, "flags:")
		flags.PrintDefaults()
	}
	margin0 := flags.Int("margin0", 10, "soft margin")
	margin1 := flags.Int("margin1", 60, "hard margin")
	debug := flags.Bool("debug", false, "enable debug logging")

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0, nil
		}
		return 2, errFlagParse
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return 2, nil
	}
	file := flags.Arg(0)

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(wErr, &slog.HandlerOptions{Level: level}))

	wa, err := watch.New(watch.Config{File: file, Stdout: w, Logger: logger})
	if err != nil {
		return 1, err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err = wa.Watch(ctx, func(contents []byte, w io.Writer) error {
		out, err := formatJSON(contents, *margin0, *margin1)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, out)
		return err
	})
	if err != nil {
		return 1, err
	}
	return 0, nil
}
