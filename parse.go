package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	hueMax        = 360.0
	percentMax    = 100.0
	maxSteps      = 30
	defaultPNGOut = "palette.png"
)

// Settings is the parsed form of the config file, environment and flags.
type Settings struct {
	Palette PaletteConfig
	Output  OutputSettings

	Watch bool
	Poll  time.Duration
}

type OutputSettings struct {
	Format string
	File   string
	Width  int
	Height int
	Labels bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dirname", ".")
	v.SetDefault("loglevel", "info")

	v.SetDefault("hue.start", 0.0)
	v.SetDefault("hue.end", hueMax)
	v.SetDefault("steps", 15)
	v.SetDefault("saturation", 60.0)
	v.SetDefault("lightness", 50.0)

	v.SetDefault("output.format", formatText)
	v.SetDefault("output.file", "")
	v.SetDefault("output.width", 900)
	v.SetDefault("output.height", 300)
	v.SetDefault("output.labels", true)

	v.SetDefault("watch", false)
	v.SetDefault("poll", time.Duration(0))
}

func parseConfig(v *viper.Viper, logger *log.Entry) (settings Settings, err error) {
	settings.Palette = PaletteConfig{
		HueStart:   clampFloat(v.GetFloat64("hue.start"), 0, hueMax, "hue.start", logger),
		HueEnd:     clampFloat(v.GetFloat64("hue.end"), 0, hueMax, "hue.end", logger),
		Steps:      v.GetInt("steps"),
		Saturation: clampFloat(v.GetFloat64("saturation"), 0, percentMax, "saturation", logger),
		Lightness:  clampFloat(v.GetFloat64("lightness"), 0, percentMax, "lightness", logger),
	}
	if settings.Palette.Steps > maxSteps {
		logger.Warnf("steps (%d) is above %d, using %d", settings.Palette.Steps, maxSteps, maxSteps)
		settings.Palette.Steps = maxSteps
	}

	settings.Output, err = parseOutput(v)
	if err != nil {
		return
	}

	settings.Watch = v.GetBool("watch")
	settings.Poll = v.GetDuration("poll")
	if settings.Poll < 0 {
		err = fmt.Errorf("poll interval must not be negative, got %s", settings.Poll)
	}
	return
}

func parseOutput(v *viper.Viper) (out OutputSettings, err error) {
	out = OutputSettings{
		Format: v.GetString("output.format"),
		File:   v.GetString("output.file"),
		Width:  v.GetInt("output.width"),
		Height: v.GetInt("output.height"),
		Labels: v.GetBool("output.labels"),
	}

	switch out.Format {
	case formatText, formatJSON, formatYAML:
	case formatPNG:
		if out.File == "" {
			out.File = defaultPNGOut
		}
		if out.Width <= 0 || out.Height <= 0 {
			err = fmt.Errorf("image size must be positive, got %dx%d", out.Width, out.Height)
		}
	default:
		err = fmt.Errorf("unknown output format %q", out.Format)
	}
	return
}

func clampFloat(value, lo, hi float64, key string, logger *log.Entry) float64 {
	if value < lo {
		logger.Warnf("%s (%v) is below %v, using %v", key, value, lo, lo)
		return lo
	}
	if value > hi {
		logger.Warnf("%s (%v) is above %v, using %v", key, value, hi, hi)
		return hi
	}
	return value
}

// writeOutput replaces the file at path with data, or writes data to stdout
// when path is empty. The file is swapped in with a rename so readers never
// see a partial render.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("could not create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("could not create output file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("could not write output file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not write output file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("could not replace output file: %w", err)
	}
	return nil
}
