// Package options holds the gldraw command line. Every flag takes its default
// from a GLDRAW_* environment variable, which may come from a dotenv file
// named with -env.
package options

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// EnvPrefix prefixes every environment variable read for flag defaults.
const EnvPrefix = "GLDRAW_"

// DrawOptions holds the host settings. Every field points at a flag value
// whose default comes from the matching GLDRAW_ environment variable.
type DrawOptions struct {
	Effect     *string
	Width      *int
	Height     *int
	Background *string // "r,g,b" with components in [0, 1]
	Frames     *int    // 0 runs until the window is closed
	Visible    *bool
	Translate  *bool // run shaders through the ESSL -> GLSL 4.10 translator
	Filter     *string
	Wrap       *string
	LogLevel   *string
	List       *bool
	EnvFile    *string
	Help       *bool
}

// Parse loads the -env file if one is named in args, registers the flags on
// fs with environment defaults and parses args.
func Parse(fs *flag.FlagSet, args []string) (*DrawOptions, error) {
	if file := envFileArg(args); file != "" {
		// Variables already set in the environment win over the file.
		if err := godotenv.Load(file); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", file, err)
		}
	}
	envy.Reload()

	width, err := envInt("WIDTH", 640)
	if err != nil {
		return nil, err
	}
	height, err := envInt("HEIGHT", 480)
	if err != nil {
		return nil, err
	}
	frames, err := envInt("FRAMES", 0)
	if err != nil {
		return nil, err
	}
	visible, err := envBool("VISIBLE", true)
	if err != nil {
		return nil, err
	}
	translate, err := envBool("TRANSLATE", true)
	if err != nil {
		return nil, err
	}

	o := &DrawOptions{
		Effect:     fs.String("effect", envString("EFFECT", "texture"), "Effect to draw (see -list)"),
		Width:      fs.Int("width", width, "Width of the window"),
		Height:     fs.Int("height", height, "Height of the window"),
		Background: fs.String("bg", envString("BG", "0,0,0"), "Background color as r,g,b in [0,1]"),
		Frames:     fs.Int("frames", frames, "Number of frames to draw, 0 to run until the window closes"),
		Visible:    fs.Bool("visible", visible, "Show the window"),
		Translate:  fs.Bool("translate", translate, "Translate WebGL2 shaders to desktop GLSL"),
		Filter:     fs.String("filter", envString("FILTER", ""), "Texture filter: mipmap, linear or nearest"),
		Wrap:       fs.String("wrap", envString("WRAP", "repeat"), "Texture wrap: repeat or clamp"),
		LogLevel:   fs.String("loglevel", envString("LOG_LEVEL", "info"), "Log level"),
		List:       fs.Bool("list", false, "List the available effects and exit"),
		EnvFile:    fs.String("env", "", "dotenv file to read defaults from"),
		Help:       fs.Bool("help", false, "Show help message"),
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// Validate checks the parsed values.
func (o *DrawOptions) Validate() error {
	if *o.Width <= 0 || *o.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", *o.Width, *o.Height)
	}
	if *o.Frames < 0 {
		return fmt.Errorf("invalid frame count %d", *o.Frames)
	}
	if _, err := o.Level(); err != nil {
		return err
	}
	if _, _, _, err := o.BackgroundColor(); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level.
func (o *DrawOptions) Level() (logrus.Level, error) {
	return logrus.ParseLevel(*o.LogLevel)
}

// BackgroundColor parses the -bg value.
func (o *DrawOptions) BackgroundColor() (r, g, b float32, err error) {
	parts := strings.Split(*o.Background, ",")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid background %q: want r,g,b", *o.Background)
	}
	var c [3]float32
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil || v < 0 || v > 1 {
			return 0, 0, 0, fmt.Errorf("invalid background component %q", p)
		}
		c[i] = float32(v)
	}
	return c[0], c[1], c[2], nil
}

func envString(key, def string) string {
	return envy.Get(EnvPrefix+key, def)
}

func envInt(key string, def int) (int, error) {
	s := envy.Get(EnvPrefix+key, "")
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
	}
	return v, nil
}

func envBool(key string, def bool) (bool, error) {
	s := envy.Get(EnvPrefix+key, "")
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
	}
	return v, nil
}

// envFileArg finds the value of -env in args before the flags are parsed.
func envFileArg(args []string) string {
	for i, a := range args {
		if a == "--" {
			break
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if !strings.HasPrefix(a, "-") || name != "env" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
