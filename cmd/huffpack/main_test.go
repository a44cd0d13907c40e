package main

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhinav/huffpack"
	"github.com/abhinav/huffpack/internal/stub"
	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	stub.Replace(t, &_version, "1.2.3")

	var stdout, stderr bytes.Buffer
	err := run(&mainCmd{
		Stdout: &stdout,
		Stderr: &stderr,
	}, []string{"-version"})
	require.NoError(t, err)
	assert.Equal(t, "huffpack version 1.2.3\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestHelp(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := run(&mainCmd{
		Stdout: &stdout,
		Stderr: &stderr,
	}, []string{"-help"})
	assert.Equal(t, flag.ErrHelp, err)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "usage: huffpack [options] [FILE]")
	assert.Contains(t, stderr.String(), "The following flags are available:")
}

func TestUnexpectedArguments(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := run(&mainCmd{
		Stdout: &stdout,
		Stderr: &stderr,
	}, []string{"a", "b", "c"})
	require.Error(t, err)
	assert.ErrorContains(t, err, `unexpected arguments ["b" "c"]`)
}

func TestStdinStdout(t *testing.T) {
	t.Parallel()

	var compressed, stderr bytes.Buffer
	err := run(&mainCmd{
		Stdin:  strings.NewReader("aaabbbbcc"),
		Stdout: &compressed,
		Stderr: &stderr,
		Clock:  clock.NewMock(),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "97 3 98 4 99 2\n14\n\xfc\x28", compressed.String())
	assert.Equal(t,
		"INFO compressed inputBytes=9 bits=14 payloadBytes=2 elapsed=0s\n",
		stderr.String())

	var restored bytes.Buffer
	stderr.Reset()
	err = run(&mainCmd{
		Stdin:  &compressed,
		Stdout: &restored,
		Stderr: &stderr,
		Clock:  clock.NewMock(),
	}, []string{"-d", "-"})
	require.NoError(t, err)
	assert.Equal(t, "aaabbbbcc", restored.String())
	assert.Equal(t,
		"INFO decompressed input=- bits=14 outputBytes=9 elapsed=0s\n",
		stderr.String())
}

func TestFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "input.txt")
	packed := filepath.Join(dir, "input.hp")
	restored := filepath.Join(dir, "restored.txt")
	logFile := filepath.Join(dir, "log.txt")

	body := strings.Repeat("Four score and seven years ago\n", 20)
	require.NoError(t, os.WriteFile(input, []byte(body), 0o644))

	var stdout, stderr bytes.Buffer
	cmd := mainCmd{
		Stdin:  strings.NewReader("not read"),
		Stdout: &stdout,
		Stderr: &stderr,
	}

	require.NoError(t, run(&cmd, []string{"-o", packed, "-log", logFile, input}))
	require.NoError(t, run(&cmd, []string{"-d", "-o", restored, "-log", logFile, packed}))

	assert.Empty(t, stdout.String(), "stdout must be empty")
	assert.Empty(t, stderr.String(), "stderr must be empty")

	got, err := os.ReadFile(restored)
	require.NoError(t, err)
	assert.Equal(t, body, string(got))

	packedInfo, err := os.Stat(packed)
	require.NoError(t, err)
	assert.Less(t, packedInfo.Size(), int64(len(body)), "output must be smaller than input")

	logs, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(logs), "INFO compressed input="+input)
	assert.Contains(t, string(logs), "INFO decompressed input="+packed)
}

func TestQuiet(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := run(&mainCmd{
		Stdin:  strings.NewReader("hello"),
		Stdout: &stdout,
		Stderr: &stderr,
	}, []string{"-quiet"})
	require.NoError(t, err)
	assert.NotEmpty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestVerbose(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := run(&mainCmd{
		Stdin:  strings.NewReader("AAAA"),
		Stdout: &stdout,
		Stderr: &stderr,
		Clock:  clock.NewMock(),
	}, []string{"-verbose"})
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		`DEBUG starting args=[-verbose]`,
		`DEBUG artifact artifact="{bitCount: 4, header: 65 4, payloadLen: 1}"`,
		`INFO compressed inputBytes=4 bits=4 payloadBytes=1 elapsed=0s`,
	}, "\n")+"\n", stderr.String())
}

func TestMissingInput(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := run(&mainCmd{
		Stdout: &stdout,
		Stderr: &stderr,
	}, []string{filepath.Join(t.TempDir(), "does-not-exist")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
}

func TestBadLogFile(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := run(&mainCmd{
		Stdin:  strings.NewReader(""),
		Stdout: &stdout,
		Stderr: &stderr,
	}, []string{"-log", filepath.Join(t.TempDir(), "no", "such", "dir", "log.txt")})
	require.Error(t, err)
	assert.ErrorContains(t, err, "open log")
}

func TestDecompressInvalid(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := run(&mainCmd{
		Stdin:  strings.NewReader("97 x\n3\n\x00"),
		Stdout: &stdout,
		Stderr: &stderr,
	}, []string{"-d"})
	require.Error(t, err)
	assert.ErrorIs(t, err, huffpack.ErrMalformedHeader)
	assert.Empty(t, stdout.String())
}

type panicReader struct{}

func (panicReader) Read([]byte) (int, error) {
	panic("great sadness")
}

func TestPanicRecovered(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := run(&mainCmd{
		Stdin:  panicReader{},
		Stdout: &stdout,
		Stderr: &stderr,
	}, nil)
	require.Error(t, err)
	assert.Equal(t, "great sadness", err.Error())
	assert.Contains(t, stderr.String(), "panic: great sadness\n")
}

func TestDecompressInvalid_outputFile(t *testing.T) {
	t.Parallel()

	t.Run("not created", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "out.txt")
		var stdout, stderr bytes.Buffer
		err := run(&mainCmd{
			Stdin:  strings.NewReader("65 4\n4\n\xff"),
			Stdout: &stdout,
			Stderr: &stderr,
		}, []string{"-d", "-o", out})
		require.Error(t, err)
		assert.ErrorIs(t, err, huffpack.ErrTruncatedBitstream)

		_, err = os.Stat(out)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("not truncated", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "out.txt")
		require.NoError(t, os.WriteFile(out, []byte("keep me"), 0o644))

		var stdout, stderr bytes.Buffer
		err := run(&mainCmd{
			Stdin:  strings.NewReader("97 x\n3\n\x00"),
			Stdout: &stdout,
			Stderr: &stderr,
		}, []string{"-d", "-o", out})
		require.Error(t, err)

		got, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "keep me", string(got))
	})
}

func TestLazyFile(t *testing.T) {
	t.Parallel()

	t.Run("unused", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "file")
		f := &lazyFile{Path: path}
		require.NoError(t, f.Close())

		_, err := os.Stat(path)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("empty write", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "file")
		f := &lazyFile{Path: path}
		_, err := f.Write(nil)
		require.NoError(t, err)
		require.NoError(t, f.Close())

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("writes", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "file")
		f := &lazyFile{Path: path}
		_, err := f.Write([]byte("foo"))
		require.NoError(t, err)
		_, err = f.Write([]byte("bar"))
		require.NoError(t, err)
		require.NoError(t, f.Close())

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "foobar", string(got))
	})

	t.Run("bad path", func(t *testing.T) {
		t.Parallel()

		f := &lazyFile{Path: filepath.Join(t.TempDir(), "no", "such", "dir")}
		_, err := f.Write([]byte("foo"))
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.NoError(t, f.Close())
	})
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()

	t.Run("buffer", func(t *testing.T) {
		t.Parallel()

		assert.False(t, isTerminal(new(bytes.Buffer)))
	})

	t.Run("regular file", func(t *testing.T) {
		t.Parallel()

		f, err := os.Create(filepath.Join(t.TempDir(), "file"))
		require.NoError(t, err)
		defer f.Close()

		assert.False(t, isTerminal(f))
	})

	t.Run("null device", func(t *testing.T) {
		t.Parallel()

		f, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		require.NoError(t, err)
		defer f.Close()

		assert.False(t, isTerminal(f))
	})
}
