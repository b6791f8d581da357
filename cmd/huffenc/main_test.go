package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/chronos-tachyon/huffenc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMainHelp(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := (&mainCmd{
		Stdout: &stdout,
		Stderr: &stderr,
		Clock:  clock.NewMock(),
	}).Run([]string{"-help"})
	assert.ErrorIs(t, err, flag.ErrHelp)
	assert.Contains(t, stderr.String(), "The following flags are available:")
	assert.Empty(t, stdout.String())
}

func TestMainUnexpectedArgs(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	err := (&mainCmd{
		Stdout: new(bytes.Buffer),
		Stderr: &stderr,
		Clock:  clock.NewMock(),
	}).Run([]string{"foo"})
	assert.EqualError(t, err, `unexpected arguments ["foo"]`)
}

func TestMainCompress(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inPath := filepath.Join(dir, "input.txt")
	outPath := filepath.Join(dir, "input2.txt")
	tablePath := filepath.Join(dir, "table.json")
	require.NoError(t, os.WriteFile(inPath, []byte("aaabb"), 0o644))

	var stdout, stderr bytes.Buffer
	err := (&mainCmd{
		Stdout: &stdout,
		Stderr: &stderr,
		Clock:  clock.NewMock(),
	}).Run([]string{
		"-in", inPath,
		"-out", outPath,
		"-table", tablePath,
		"-dump",
	})
	require.NoError(t, err)

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xe0}, got)

	raw, err := os.ReadFile(tablePath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"97":"1","98":"0"}`, string(raw))

	var table huffenc.CodeTable
	require.NoError(t, json.Unmarshal(raw, &table))
	assert.Equal(t, 2, table.Len())

	assert.Equal(t,
		"CodeTable{\n"+
			"\tMinSize() = 1\n"+
			"\tMaxSize() = 1\n"+
			"\tLookup('a') = \"1\"\n"+
			"\tLookup('b') = \"0\"\n"+
			"}\n",
		stdout.String())

	assert.Contains(t, stderr.String(), "INFO compressed")
	assert.Contains(t, stderr.String(), "symbols=5")
	assert.Contains(t, stderr.String(), "elapsed=0s")
}

func TestMainVerboseLogFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inPath := filepath.Join(dir, "input.txt")
	logPath := filepath.Join(dir, "log.txt")
	require.NoError(t, os.WriteFile(inPath, []byte("héé"), 0o644))

	var stdout, stderr bytes.Buffer
	err := (&mainCmd{
		Stdout: &stdout,
		Stderr: &stderr,
		Clock:  clock.NewMock(),
	}).Run([]string{
		"-in", inPath,
		"-out", filepath.Join(dir, "out.bin"),
		"-bytes",
		"-log", logPath,
		"-verbose",
	})
	require.NoError(t, err)
	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())

	body, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(body), "DEBUG counted symbols encoder.input=")
	assert.Contains(t, string(body), "encoder.alphabet=bytes")
	assert.Contains(t, string(body), "INFO compressed")
}

func TestMainEmptyInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inPath := filepath.Join(dir, "input.txt")
	outPath := filepath.Join(dir, "input2.txt")
	require.NoError(t, os.WriteFile(inPath, nil, 0o644))

	var stderr bytes.Buffer
	err := (&mainCmd{
		Stdout: new(bytes.Buffer),
		Stderr: &stderr,
		Clock:  clock.NewMock(),
	}).Run([]string{"-in", inPath, "-out", outPath})
	assert.ErrorIs(t, err, huffenc.ErrInvalidInput)

	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr), "output must not be created")
}
