package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/cube2222/octotable/outputs/formats"
	"github.com/cube2222/octotable/table"
)

var OctotableDir = func() string {
	dir, err := homedir.Dir()
	if err != nil {
		log.Fatalf("couldn't get user home directory: %s", err)
	}
	return filepath.Join(dir, ".octotable")
}()

var DefaultPath = filepath.Join(OctotableDir, "octotable.yml")

var ErrInvalid = errors.New("invalid configuration")

// ViewConfig overrides the initial state of a single view.
type ViewConfig struct {
	PageSize int      `yaml:"pageSize"`
	Sort     string   `yaml:"sort"`
	Desc     bool     `yaml:"desc"`
	Hidden   []string `yaml:"hidden"`
}

type Config struct {
	// PageSizes are the page sizes a user may pick.
	PageSizes []int `yaml:"pageSizes"`
	// DefaultPageSize overrides the page size of every view, if set.
	DefaultPageSize int                   `yaml:"defaultPageSize"`
	Locale          string                `yaml:"locale"`
	Output          string                `yaml:"output"`
	Views           map[string]ViewConfig `yaml:"views"`
}

func Default() *Config {
	pageSizes := make([]int, len(table.DefaultPageSizes))
	copy(pageSizes, table.DefaultPageSizes)
	return &Config{
		PageSizes: pageSizes,
		Locale:    "en",
		Output:    "table",
		Views:     map[string]ViewConfig{},
	}
}

// Read reads the configuration from the default path. A missing file results in the default configuration.
func Read() (*Config, error) {
	return ReadConfig(DefaultPath)
}

func ReadConfig(path string) (*Config, error) {
	config := Default()

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return config, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "couldn't open file")
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(config); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "couldn't decode yaml configuration")
	}
	if config.Views == nil {
		config.Views = map[string]ViewConfig{}
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrapf(err, "couldn't validate configuration in %s", path)
	}
	return config, nil
}

func (config *Config) Validate() error {
	if len(config.PageSizes) == 0 {
		return fmt.Errorf("%w: no page sizes", ErrInvalid)
	}
	for _, size := range config.PageSizes {
		if size <= 0 {
			return fmt.Errorf("%w: page size must be positive, got %d", ErrInvalid, size)
		}
	}
	if config.DefaultPageSize != 0 && !config.AllowedPageSize(config.DefaultPageSize) {
		return fmt.Errorf("%w: default page size %d is not one of %v", ErrInvalid, config.DefaultPageSize, config.PageSizes)
	}
	if _, err := language.Parse(config.Locale); err != nil {
		return fmt.Errorf("%w: locale '%s': %s", ErrInvalid, config.Locale, err)
	}
	if _, err := formats.New(config.Output, io.Discard); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, err)
	}
	for name, view := range config.Views {
		if view.PageSize != 0 && !config.AllowedPageSize(view.PageSize) {
			return fmt.Errorf("%w: page size %d of view %s is not one of %v", ErrInvalid, view.PageSize, name, config.PageSizes)
		}
	}
	return nil
}

func (config *Config) AllowedPageSize(size int) bool {
	for _, allowed := range config.PageSizes {
		if allowed == size {
			return true
		}
	}
	return false
}

func (config *Config) LocaleTag() language.Tag {
	return language.Make(config.Locale)
}

// View returns the overrides for the given view, with the default page size applied.
func (config *Config) View(name string) ViewConfig {
	view := config.Views[name]
	if view.PageSize == 0 {
		view.PageSize = config.DefaultPageSize
	}
	return view
}
