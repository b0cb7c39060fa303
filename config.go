package pixely

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v2"
)

const (
	DefaultOutputDir         = "output"
	DefaultScale             = 1.0
	DefaultAnimationDuration = 1.0
)

// Config describes one render. Build it with NewConfig; it is not meant to be
// changed afterwards.
type Config struct {
	Source            string  // Path, URL or "-" for stdin
	OutputDir         string  // Where the exporter writes pixely.html and pixely.css
	Scale             float64 // Output pixels per source pixel
	AnimationDuration float64 // Seconds per loop, ignored for still images
	ClassName         string  // Scopes every generated rule
}

type configBuilder struct {
	cfg   Config
	namer Namer
}

type ConfigOpt func(b *configBuilder)

// WithOutputDir sets the output directory. Empty keeps the default.
func WithOutputDir(dir string) ConfigOpt {
	return func(b *configBuilder) {
		if dir != "" {
			b.cfg.OutputDir = dir
		}
	}
}

// WithScale sets how many output pixels one source pixel covers.
func WithScale(scale float64) ConfigOpt {
	return func(b *configBuilder) {
		b.cfg.Scale = scale
	}
}

// WithAnimationDuration sets the length of one animation loop in seconds.
func WithAnimationDuration(seconds float64) ConfigOpt {
	return func(b *configBuilder) {
		b.cfg.AnimationDuration = seconds
	}
}

// WithNamer sets where the class name comes from.
func WithNamer(n Namer) ConfigOpt {
	return func(b *configBuilder) {
		b.namer = n
	}
}

// WithClassName fixes the class name.
func WithClassName(name string) ConfigOpt {
	return WithNamer(StaticNamer(name))
}

var classNamePattern = regexp.MustCompile(`^-?[_a-zA-Z][_a-zA-Z0-9-]*$`)

// NewConfig applies opts over the defaults, validates the result and draws a
// class name.
func NewConfig(source string, opts ...ConfigOpt) (Config, error) {
	b := configBuilder{
		cfg: Config{
			Source:            source,
			OutputDir:         DefaultOutputDir,
			Scale:             DefaultScale,
			AnimationDuration: DefaultAnimationDuration,
		},
		namer: defaultNamer,
	}
	for _, opt := range opts {
		opt(&b)
	}

	if b.cfg.Source == "" {
		return Config{}, ErrMissingSource
	}
	if !(b.cfg.Scale > 0) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidScale, b.cfg.Scale)
	}
	if !(b.cfg.AnimationDuration > 0) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidDuration, b.cfg.AnimationDuration)
	}
	b.cfg.ClassName = b.namer.Name()
	if !classNamePattern.MatchString(b.cfg.ClassName) {
		return Config{}, fmt.Errorf("%w: %q", ErrInvalidClassName, b.cfg.ClassName)
	}
	return b.cfg, nil
}

// ConfigFile is the YAML form of the configuration. Zero values mean unset.
//
//	source: images/geralt.gif
//	output: out
//	scale: 4
//	duration: 1.5
type ConfigFile struct {
	Source    string  `yaml:"source"`
	Output    string  `yaml:"output"`
	Scale     float64 `yaml:"scale"`
	Duration  float64 `yaml:"duration"`
	ClassName string  `yaml:"class"`
}

// ReadConfigFile parses the YAML file at path.
func ReadConfigFile(path string) (*ConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfigFile(data)
}

func ParseConfigFile(data []byte) (*ConfigFile, error) {
	var f ConfigFile
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("pixely: parsing config: %w", err)
	}
	return &f, nil
}

// Options converts the set fields into options for NewConfig.
func (f *ConfigFile) Options() []ConfigOpt {
	var opts []ConfigOpt
	if f.Output != "" {
		opts = append(opts, WithOutputDir(f.Output))
	}
	if f.Scale != 0 {
		opts = append(opts, WithScale(f.Scale))
	}
	if f.Duration != 0 {
		opts = append(opts, WithAnimationDuration(f.Duration))
	}
	if f.ClassName != "" {
		opts = append(opts, WithClassName(f.ClassName))
	}
	return opts
}
