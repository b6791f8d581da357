// huffenc compresses a file with a static Huffman code.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/chronos-tachyon/huffenc"
	"github.com/chronos-tachyon/huffenc/internal/log"
	"go.uber.org/multierr"
)

func main() {
	cmd := mainCmd{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Clock:  clock.New(),
	}
	if err := cmd.Run(os.Args[1:]); err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(cmd.Stderr, err)
		os.Exit(1)
	}
}

type mainCmd struct {
	Stdout io.Writer
	Stderr io.Writer
	Clock  clock.Clock
}

const _usage = `usage: %v [options]

Compresses a file with a static Huffman code derived from the file's own
symbol frequencies.  The output holds the packed code bits only: no header
and no code table.  Use -table to save the table needed to decode it.

The following flags are available:

	-in FILE
		file to compress.
		Defaults to input.txt.
	-out FILE
		file to write the compressed bits to.
		Defaults to input2.txt.
	-bytes
		treat every byte as a symbol.
		By default the input is decoded as UTF-8 and every code point
		is a symbol.
	-table FILE
		also write the code table to FILE as JSON, mapping each
		symbol's numeric value to its code.
	-dump
		print the code table to stdout.
	-log FILE
		file to write logs to.
		Uses stderr by default.
	-verbose
		log more output.
`

func (cmd *mainCmd) Run(args []string) (err error) {
	flag := flag.NewFlagSet("huffenc", flag.ContinueOnError)
	flag.SetOutput(cmd.Stderr)
	flag.Usage = func() {
		fmt.Fprintf(flag.Output(), _usage, flag.Name())
	}

	cfg := newConfig(flag)
	if err := flag.Parse(args); err != nil {
		return err
	}

	if args := flag.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected arguments %q", args)
	}

	logW, closeLog, err := cfg.BuildLogWriter(cmd.Stderr)
	if err != nil {
		return err
	}
	defer multierr.AppendInvoke(&err, multierr.Invoke(closeLog))

	logger := log.New(logW)
	if cfg.Verbose {
		logger = logger.WithLevel(log.Debug)
	}

	return (&app{
		Log:   logger,
		Clock: cmd.Clock,
		Out:   cmd.Stdout,
	}).Run(cfg)
}

type app struct {
	Log   *log.Logger
	Clock clock.Clock
	Out   io.Writer
}

func (a *app) Run(cfg *config) error {
	start := a.Clock.Now()

	enc := huffenc.Encoder{
		Alphabet: cfg.Alphabet(),
		Log:      a.Log.WithName("encoder"),
	}
	res, err := enc.EncodeFile(cfg.Input, cfg.Output)
	if err != nil {
		return fmt.Errorf("compress %v: %w", cfg.Input, err)
	}

	if len(cfg.TableFile) > 0 {
		if err := writeTable(cfg.TableFile, res.Table); err != nil {
			return err
		}
	}

	if cfg.Dump {
		if _, err := res.Table.Dump(a.Out); err != nil {
			return err
		}
	}

	a.Log.Info("compressed",
		"input", cfg.Input,
		"output", cfg.Output,
		"symbols", res.Symbols,
		"distinct", res.Table.Len(),
		"bytes", res.Bytes,
		"elapsed", a.Clock.Since(start))
	return nil
}

func writeTable(path string, table *huffenc.CodeTable) (err error) {
	raw, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("encode code table: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write code table: %w", err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	raw = append(raw, '\n')
	if _, err := f.Write(raw); err != nil {
		return fmt.Errorf("write code table: %w", err)
	}
	return nil
}
