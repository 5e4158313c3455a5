package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/npillmayer/paintprops/geom"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// settings are the configuration values shared by all commands.
type settings struct {
	Format      string
	Viewport    geom.IntSize
	Parallel    int
	StyleSheets []string // paths of CSS files applied to every document
}

var formats = []string{"text", "dot", "summary"}

// tracers are the keys of the package tracers of the module.
var tracers = []string{
	"paintprops.property",
	"paintprops.prepaint",
	"paintprops.propdbg",
	"paintprops.layout",
	"paintprops.htmlbuild",
	"paintprops.dom",
	"paintprops.tree",
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string
	root := &cobra.Command{
		Use:          "proptree",
		Short:        "Build and inspect paint property trees of HTML documents",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeConfig(v, cfgFile)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default is ./proptree.yaml)")
	flags.StringP("format", "f", "text", "output format: "+strings.Join(formats, ", "))
	flags.String("viewport", "800x600", "viewport size as <width>x<height>")
	flags.String("trace", "error", "trace level: error, info or debug")
	flags.IntP("parallel", "p", 4, "number of documents processed concurrently")
	flags.StringSliceP("stylesheet", "s", nil, "CSS file applied to every document (repeatable)")
	for _, key := range []string{"format", "viewport", "trace", "parallel", "stylesheet"} {
		if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
			panic(err)
		}
	}
	root.AddCommand(newDumpCmd(v), newVerifyCmd(v))
	return root
}

// initializeConfig reads the config file and environment variables and sets
// the trace level of every package tracer.
func initializeConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "proptree"))
		}
		v.SetConfigName("proptree")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix("PROPTREE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	return setTraceLevels(v.GetString("trace"))
}

func setTraceLevels(level string) error {
	for _, key := range tracers {
		t := tracing.Select(key)
		switch strings.ToLower(level) {
		case "error":
			t.SetTraceLevel(tracing.LevelError)
		case "info":
			t.SetTraceLevel(tracing.LevelInfo)
		case "debug":
			t.SetTraceLevel(tracing.LevelDebug)
		default:
			return fmt.Errorf("unknown trace level %q", level)
		}
	}
	return nil
}

// loadSettings validates the configuration values.
func loadSettings(v *viper.Viper) (settings, error) {
	s := settings{
		Format:      strings.ToLower(v.GetString("format")),
		Parallel:    v.GetInt("parallel"),
		StyleSheets: v.GetStringSlice("stylesheet"),
	}
	known := false
	for _, f := range formats {
		known = known || f == s.Format
	}
	if !known {
		return s, fmt.Errorf("unknown format %q, expecting one of %s", s.Format, strings.Join(formats, ", "))
	}
	if s.Parallel < 1 {
		s.Parallel = 1
	}
	vp, err := parseViewport(v.GetString("viewport"))
	if err != nil {
		return s, err
	}
	s.Viewport = vp
	return s, nil
}

func parseViewport(s string) (geom.IntSize, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if ok {
		width, errw := strconv.Atoi(w)
		height, errh := strconv.Atoi(h)
		if errw == nil && errh == nil && width > 0 && height > 0 {
			return geom.IntSize{Width: width, Height: height}, nil
		}
	}
	return geom.IntSize{}, fmt.Errorf("illegal viewport %q, expecting <width>x<height>", s)
}
