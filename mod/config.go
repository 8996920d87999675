package mod

import (
	"fmt"
	"io/ioutil"

	"github.com/pelletier/go-toml"
)

// ConfigFile is the name of the project file in a project directory.
const ConfigFile = "thorium.toml"

// A Config is the contents of a project file.
type Config struct {
	// Name is the name of the project.
	// It defaults to the base name of the project directory.
	Name string `toml:"name"`
	// Sources is the source root, relative to the project directory.
	// It defaults to "src".
	Sources string `toml:"sources,omitempty"`
	// ClassPath is the path of the host class path manifest.
	// A relative path is relative to the project directory.
	// If empty, no host types are available.
	ClassPath string `toml:"classpath,omitempty"`
	// Trace turns on tracing of the semantic passes.
	Trace bool `toml:"trace"`
}

// LoadConfig reads the project file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Sources == "" {
		cfg.Sources = "src"
	}
	return &cfg, nil
}
