package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const defaultConfig = "logik.yaml"

type config struct {
	Library  string `yaml:"library"`  // path of the gate library
	Warnings bool   `yaml:"warnings"` // log incomplete wiring warnings
	Format   string `yaml:"format"`   // output format: text or json
}

func defaults() config {
	return config{Library: "gates.json", Format: "text"}
}

// loadConfig reads the config file name on top of the defaults. If name is
// empty, defaultConfig is read if it exists.
//
func loadConfig(name string) (config, error) {
	cfg := defaults()
	optional := name == ""
	if optional {
		name = defaultConfig
	}
	data, err := os.ReadFile(name)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(err, "read config")
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "config %s", name)
	}
	return cfg, cfg.check()
}

func (c *config) check() error {
	switch c.Format {
	case "text", "json":
	default:
		return errors.Errorf("invalid output format %q", c.Format)
	}
	if c.Library == "" {
		return errors.New("no library file configured")
	}
	return nil
}
