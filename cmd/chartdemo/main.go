// Command chartdemo renders a line, a pie and a gauge described by a YAML
// scene into an image.
//
// Settings come from CHARTDEMO_* environment variables; see
// internal/config. Without -scene a built-in scene is drawn.
package main

import (
	"bytes"
	_ "embed"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/ggchart"
	"github.com/gogpu/ggchart/internal/config"
	"github.com/gogpu/ggchart/measure"
	"github.com/gogpu/ggchart/recording"
	_ "github.com/gogpu/ggchart/recording/backends/raster"
	"github.com/gogpu/ggchart/sprite"
)

//go:embed default.yaml
var defaultScene []byte

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "chartdemo:", err)
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("chartdemo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	scenePath := fs.String("scene", "", "YAML scene file")
	output := fs.String("o", "", "output file (overrides CHARTDEMO_OUTPUT)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := newLogger(stderr, cfg.LogFormat, level)
	ggchart.SetLogger(logger)
	if *output != "" {
		cfg.Output = *output
	}

	src := io.Reader(bytes.NewReader(defaultScene))
	if *scenePath != "" {
		f, err := os.Open(*scenePath)
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	}
	sc, err := loadScene(src)
	if err != nil {
		return err
	}

	m, err := newMeasurer(cfg)
	if err != nil {
		return err
	}
	rec, err := draw(sc, cfg.Width, cfg.Height, m)
	if err != nil {
		logger.Warn("scene drawn with errors", "err", err)
	}

	backend, err := recording.NewBackend(cfg.Backend)
	if err != nil {
		return err
	}
	if err := rec.Playback(backend); err != nil {
		return err
	}
	fb, ok := backend.(recording.FileBackend)
	if !ok {
		return fmt.Errorf("backend %q cannot write files", cfg.Backend)
	}
	if err := fb.SaveToFile(cfg.Output); err != nil {
		return err
	}
	logger.Info("chart written", "path", cfg.Output,
		"width", cfg.Width, "height", cfg.Height, "commands", len(rec.Commands()))
	return nil
}

// newLogger writes text to terminals and JSON everywhere else unless the
// format is forced.
func newLogger(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "auto" {
		format = "json"
		if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			format = "text"
		}
	}
	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func newMeasurer(cfg *config.Config) (sprite.Measurer, error) {
	opts := []measure.Option{measure.WithCapacity(cfg.CacheSize)}
	if cfg.FontSize <= 0 {
		return measure.NewCached(measure.NewFace(nil), opts...), nil
	}
	shaped, err := measure.NewShaped(goregular.TTF, cfg.FontSize)
	if err != nil {
		return nil, err
	}
	return measure.NewCached(shaped, opts...), nil
}
