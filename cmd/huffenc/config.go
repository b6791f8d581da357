package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chronos-tachyon/huffenc"
)

// Paths used when no flags are given.
const (
	_defaultInput  = "input.txt"
	_defaultOutput = "input2.txt"
)

type config struct {
	Input     string
	Output    string
	Bytes     bool
	TableFile string
	Dump      bool
	LogFile   string
	Verbose   bool
}

func newConfig(flag *flag.FlagSet) *config {
	var c config
	c.RegisterFlags(flag)
	return &c
}

func (c *config) RegisterFlags(flag *flag.FlagSet) {
	// No help here because we put it all in _usage.
	flag.StringVar(&c.Input, "in", _defaultInput, "")
	flag.StringVar(&c.Output, "out", _defaultOutput, "")
	flag.BoolVar(&c.Bytes, "bytes", false, "")
	flag.StringVar(&c.TableFile, "table", "", "")
	flag.BoolVar(&c.Dump, "dump", false, "")
	flag.StringVar(&c.LogFile, "log", "", "")
	flag.BoolVar(&c.Verbose, "verbose", false, "")
}

// Alphabet reports how the input should be split into symbols.
func (c *config) Alphabet() huffenc.Alphabet {
	if c.Bytes {
		return huffenc.Bytes
	}
	return huffenc.Runes
}

// BuildLogWriter returns the destination for log messages: the log file if
// one was requested, stderr otherwise.  The returned function must be
// called when logging is done.
func (c *config) BuildLogWriter(stderr io.Writer) (w io.Writer, closeFn func() error, err error) {
	if len(c.LogFile) == 0 {
		return stderr, func() error { return nil }, nil
	}

	f, err := os.OpenFile(c.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log %q: %w", c.LogFile, err)
	}
	return f, f.Close, nil
}
