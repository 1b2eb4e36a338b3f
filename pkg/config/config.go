package config

import (
	"os"

	"github.com/ghodss/yaml"
	"github.com/kelseyhightower/envconfig"
	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/kelda/licensegen/pkg/errors"
)

const (
	DefaultPrivateKeyPath = "./private_key.pem"
	DefaultOutputPath     = "./LICENSE.key"
	DefaultConfigPath     = "~/.gen-license.yaml"

	envPrefix = "GEN_LICENSE"
)

var fs = afero.NewOsFs()

// Config says where the signing key lives and where licenses are written.
type Config struct {
	PrivateKeyPath string `json:"privateKeyPath,omitempty" split_words:"true"`
	OutputPath     string `json:"outputPath,omitempty" split_words:"true"`
}

type locator struct {
	Config string
}

// Load builds the configuration from, in increasing priority, the defaults,
// a YAML config file and GEN_LICENSE_* environment variables.
//
// configPath selects the config file. When it's empty GEN_LICENSE_CONFIG is
// used, and then DefaultConfigPath. Only the default file may be missing.
func Load(configPath string) (Config, error) {
	var loc locator
	if err := envconfig.Process(envPrefix, &loc); err != nil {
		return Config{}, errors.WithContext("read environment", err)
	}

	required := true
	if configPath == "" {
		configPath = loc.Config
	}
	if configPath == "" {
		configPath = DefaultConfigPath
		required = false
	}

	var cfg Config
	if err := cfg.parseFile(configPath, required); err != nil {
		return Config{}, errors.WithContext("parse config file", err)
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, errors.WithContext("read environment", err)
	}

	if cfg.PrivateKeyPath == "" {
		cfg.PrivateKeyPath = DefaultPrivateKeyPath
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = DefaultOutputPath
	}

	return cfg.expand()
}

func (cfg *Config) parseFile(path string, required bool) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return errors.WithContext("expand path", err)
	}

	configBytes, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			log.WithField("path", path).Debug("No config file")
			return nil
		}
		return errors.WithContext("read", err)
	}

	if err := yaml.Unmarshal(configBytes, cfg); err != nil {
		return errors.WithContext("parse yaml", err)
	}
	log.WithField("path", path).Debug("Loaded config file")
	return nil
}

// WithOverrides returns a copy of the config where every non-empty argument
// replaces the corresponding setting.
func (cfg Config) WithOverrides(privateKeyPath, outputPath string) (Config, error) {
	if privateKeyPath != "" {
		cfg.PrivateKeyPath = privateKeyPath
	}
	if outputPath != "" {
		cfg.OutputPath = outputPath
	}
	return cfg.expand()
}

func (cfg Config) expand() (Config, error) {
	var err error
	cfg.PrivateKeyPath, err = homedir.Expand(cfg.PrivateKeyPath)
	if err != nil {
		return Config{}, errors.WithContext("expand private key path", err)
	}

	cfg.OutputPath, err = homedir.Expand(cfg.OutputPath)
	if err != nil {
		return Config{}, errors.WithContext("expand output path", err)
	}
	return cfg, nil
}
