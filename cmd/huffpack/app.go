package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/abhinav/huffpack"
	"github.com/abhinav/huffpack/internal/bitstream"
	"github.com/abhinav/huffpack/internal/log"
	"github.com/benbjohnson/clock"
)

// app compresses or decompresses a single stream.
type app struct {
	Log   *log.Logger
	Clock clock.Clock
}

// Run reads everything from in and writes the compressed
// (or decompressed with cfg.Decompress) form to out.
func (a *app) Run(cfg *config, in io.Reader, out io.Writer) error {
	if cfg.Decompress {
		return a.decompress(cfg, in, out)
	}
	return a.compress(cfg, in, out)
}

func (a *app) compress(cfg *config, in io.Reader, out io.Writer) error {
	start := a.Clock.Now()

	art, err := huffpack.CompressTo(
		huffpack.ReaderSource{R: in},
		huffpack.NewStreamSink(out),
	)
	if err != nil {
		return err
	}

	ft, err := bitstream.ParseHeader(art.Header)
	if err != nil {
		return fmt.Errorf("parse header: %w", err)
	}

	a.Log.Debug("artifact", slog.Any("artifact", art))
	a.Log.Info("compressed",
		log.OmitEmpty(slog.String, "input", cfg.Input),
		log.OmitEmpty(slog.String, "output", cfg.Output),
		slog.Int("inputBytes", ft.Total()),
		slog.Int("bits", art.BitCount),
		slog.Int("payloadBytes", len(art.Payload)),
		slog.Duration("elapsed", a.Clock.Since(start)),
	)
	return nil
}

func (a *app) decompress(cfg *config, in io.Reader, out io.Writer) error {
	start := a.Clock.Now()

	art, err := huffpack.ReadArtifact(in)
	if err != nil {
		return err
	}
	a.Log.Debug("artifact", slog.Any("artifact", art))

	data, err := huffpack.Decompress(art)
	if err != nil {
		return err
	}

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	a.Log.Info("decompressed",
		log.OmitEmpty(slog.String, "input", cfg.Input),
		log.OmitEmpty(slog.String, "output", cfg.Output),
		slog.Int("bits", art.BitCount),
		slog.Int("outputBytes", len(data)),
		slog.Duration("elapsed", a.Clock.Since(start)),
	)
	return nil
}
