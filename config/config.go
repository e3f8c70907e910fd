package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/peco/flash/internal/util"
)

// DefaultLabelChars is the default label alphabet. Characters closer
// to the home row come first since they are handed out first.
const DefaultLabelChars = "asdfqwerzxcvkltgbuiopjnmyhASDFQWERZXCVKLTGBUIOPJNMYH0123456789!@#$%^&*()-_=+[]{}|;:'\",.<>/`~\\"

// ErrEmptyLabelChars is returned by Validate when there is nothing to
// label matches with.
var ErrEmptyLabelChars = errors.New("label characters must not be empty")

// Config holds all the data that can be configured in the
// external configuration file
type Config struct {
	// LabelChars is the ordered label alphabet.
	LabelChars string `json:"LabelChars" yaml:"LabelChars" toml:"LabelChars"`

	// CaseSensitive is the default case rule. A query containing an
	// upper case character is always matched case sensitively.
	CaseSensitive bool `json:"CaseSensitive" yaml:"CaseSensitive" toml:"CaseSensitive"`

	// LineHugsTheContent places line hop targets on the first
	// non-blank column instead of column 0.
	LineHugsTheContent bool `json:"LineHugsTheContent" yaml:"LineHugsTheContent" toml:"LineHugsTheContent"`

	Style StyleSet `json:"Style" yaml:"Style" toml:"Style"`

	// Keymap maps key names understood by the terminal host ("C-f",
	// "Esc", ...) to action names.
	Keymap map[string]string `json:"Keymap" yaml:"Keymap" toml:"Keymap"`
}

var homedirFunc = util.Homedir

// DefaultKeymap returns the key bindings used when none are configured.
func DefaultKeymap() map[string]string {
	return map[string]string{
		"C-f": "flash.Go",
		"C-v": "flash.Select",
		"C-k": "flash.GoUp",
		"C-j": "flash.GoDown",
		"C-o": "flash.Outline",
		"Esc": "flash.Stop",
		"BS":  "flash.Backspace",
	}
}

// New creates a Config populated with the defaults.
func New() *Config {
	c := &Config{}
	c.Init()
	return c
}

// Init initializes the Config with default values
func (c *Config) Init() {
	c.LabelChars = DefaultLabelChars
	c.CaseSensitive = false
	c.LineHugsTheContent = false
	c.Keymap = DefaultKeymap()
	c.Style.Init()
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	dst := *c
	dst.Keymap = make(map[string]string, len(c.Keymap))
	for k, v := range c.Keymap {
		dst.Keymap[k] = v
	}
	return &dst
}

// Validate checks that the label alphabet can be used.
func (c *Config) Validate() error {
	if c.LabelChars == "" {
		return ErrEmptyLabelChars
	}

	seen := make(map[rune]struct{})
	for _, r := range c.LabelChars {
		if _, ok := seen[r]; ok {
			return fmt.Errorf("invalid label characters: %q appears more than once", r)
		}
		seen[r] = struct{}{}
	}
	return nil
}

// ReadFilename reads the config from the given file, and
// does the appropriate processing, if any
func (c *Config) ReadFilename(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer f.Close()

	switch ext := filepath.Ext(filename); ext {
	case ".yaml", ".yml":
		err = yaml.NewDecoder(f).Decode(c)
		if err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
	case ".toml":
		_, err = toml.NewDecoder(f).Decode(c)
		if err != nil {
			return fmt.Errorf("failed to decode TOML: %w", err)
		}
	default:
		err = json.NewDecoder(f).Decode(c)
		if err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
	}

	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration in %s: %w", filename, err)
	}
	return nil
}

// Locator locates a config file in a given directory.
type Locator interface {
	Locate(string) (string, error)
}

// LocatorFunc is a function that implements Locator.
type LocatorFunc func(string) (string, error)

// Locate calls the underlying function.
func (f LocatorFunc) Locate(dir string) (string, error) {
	return f(dir)
}

var configFilenames = []string{"config.json", "config.yaml", "config.yml", "config.toml"}

// DefaultConfigLocator searches for a config file with one of the known
// filenames in the given directory.
var DefaultConfigLocator = LocatorFunc(func(dir string) (string, error) {
	for _, basename := range configFilenames {
		file := filepath.Join(dir, basename)
		if _, err := os.Stat(file); err == nil {
			return file, nil
		}
	}
	return "", fmt.Errorf("config file not found in %s", dir)
})

// LocateRcfile attempts to find the config file in various locations
func LocateRcfile(locater Locator) (string, error) {
	// http://standards.freedesktop.org/basedir-spec/basedir-spec-latest.html
	//
	// Try in this order:
	//	  $XDG_CONFIG_HOME/flash/config.{json,yaml,yml,toml}
	//    $XDG_CONFIG_DIR/flash/config.{json,yaml,yml,toml} (where XDG_CONFIG_DIR is listed in $XDG_CONFIG_DIRS)
	//	  ~/.flash/config.{json,yaml,yml,toml}

	home, uErr := homedirFunc()

	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		if file, err := locater.Locate(filepath.Join(dir, "flash")); err == nil {
			return file, nil
		}
	} else if uErr == nil { // silently ignore failure for homedir()
		if file, err := locater.Locate(filepath.Join(home, ".config", "flash")); err == nil {
			return file, nil
		}
	}

	if dirs := os.Getenv("XDG_CONFIG_DIRS"); dirs != "" {
		for dir := range strings.SplitSeq(dirs, string(filepath.ListSeparator)) {
			if file, err := locater.Locate(filepath.Join(dir, "flash")); err == nil {
				return file, nil
			}
		}
	}

	if uErr == nil {
		if file, err := locater.Locate(filepath.Join(home, ".flash")); err == nil {
			return file, nil
		}
	}

	return "", errors.New("config file not found")
}
