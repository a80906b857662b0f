package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	var configFile string

	cmd := &cobra.Command{
		Use:   "huestripes",
		Short: "Render a palette of evenly spaced hues",
		Long: `huestripes samples a hue range at a fixed saturation and lightness and
renders the resulting stripes with their HSL and RGB values.

With --watch the palette is re-rendered whenever the config file changes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			readConfig(v, configFile)
			return run(cmd.Context(), v)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "config file (default searches for huestripes-config)")
	flags.Float64("hue-start", 0, "first hue, in degrees")
	flags.Float64("hue-end", 360, "end of the hue range, in degrees (never sampled)")
	flags.Int("steps", 15, "number of stripes")
	flags.Float64("saturation", 60, "saturation, in percent")
	flags.Float64("lightness", 50, "lightness, in percent")
	flags.String("format", formatText, "output format: text, json, yaml or png")
	flags.StringP("output", "o", "", "output file (default stdout, palette.png for png)")
	flags.Int("width", 900, "image width for png output")
	flags.Int("height", 300, "image height for png output")
	flags.Bool("labels", true, "label stripes with their HSL and RGB values")
	flags.String("loglevel", "info", "log level")
	flags.Bool("watch", false, "re-render when the config file changes")
	flags.Duration("poll", 0, "poll the config file at this interval instead of using file system events")

	for key, flag := range map[string]string{
		"hue.start":     "hue-start",
		"hue.end":       "hue-end",
		"steps":         "steps",
		"saturation":    "saturation",
		"lightness":     "lightness",
		"output.format": "format",
		"output.file":   "output",
		"output.width":  "width",
		"output.height": "height",
		"output.labels": "labels",
		"loglevel":      "loglevel",
		"watch":         "watch",
		"poll":          "poll",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	return cmd
}

func readConfig(v *viper.Viper, configFile string) {
	v.SetEnvPrefix("HS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("huestripes-config")
		v.AddConfigPath("/etc/huestripes")
		v.AddConfigPath("$HOME/.config/huestripes")
		v.AddConfigPath("$HOME/.huestripes")
		v.AddConfigPath(v.GetString("dirname"))
	}

	logger := log.WithField("component", "config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			logger.Infoln("No config file found, using flags and defaults")
		} else {
			logger.Warnf("Could not read config file, using flags and defaults\nError: %s", err.Error())
		}
		return
	}
	logger.WithField("file", v.ConfigFileUsed()).Debugln("Loaded config")
}

func run(ctx context.Context, v *viper.Viper) error {
	if ctx == nil {
		ctx = context.Background()
	}
	p := newPainter(v)

	settings, err := p.paint()
	if err != nil {
		log.Errorln(err)
		return err
	}
	if !settings.Watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watchConfig(ctx, p, settings.Poll)
}

// setLogLevel applies the loglevel key to the standard logger. Unknown
// levels leave the current level in place.
func setLogLevel(v *viper.Viper, logger *log.Entry) {
	name := v.GetString("loglevel")
	if name == "" {
		return
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		logger.Warnf("Ignoring loglevel: %s", err.Error())
		return
	}
	log.SetLevel(level)
}
