package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/spvval/validate"
)

// config is the YAML configuration file layout. Command-line flags set
// explicitly override its values.
type config struct {
	Env                 string `yaml:"env"`
	RelaxStructStore    bool   `yaml:"relax-struct-store"`
	RelaxLogicalPointer bool   `yaml:"relax-logical-pointer"`
	AllowLocalSizeID    bool   `yaml:"allow-localsizeid"`
}

func defaultConfig() config {
	return config{Env: validate.DefaultOptions().Env.String()}
}

// loadConfig reads a configuration file on top of the defaults. Unknown
// keys are rejected.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// options converts the configuration to validator options.
func (c config) options() (validate.Options, error) {
	opts := validate.DefaultOptions()
	env, err := validate.ParseTargetEnv(c.Env)
	if err != nil {
		return opts, err
	}
	opts.Env = env
	opts.RelaxStructStore = c.RelaxStructStore
	opts.RelaxLogicalPointer = c.RelaxLogicalPointer
	opts.AllowLocalSizeID = c.AllowLocalSizeID
	return opts, nil
}
