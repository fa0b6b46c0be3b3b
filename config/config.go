// Copyright 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

// Package config reads the tforth driver configuration.
//
// A configuration file is YAML:
//
//	input:
//	  encoding: latin1
//	trace: false
//	prompt: "ok> "
//	history: /tmp/tforth.history
//	startup:
//	  - lib/extra.4th
//	base: 16
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"tforth/bootstrap"
	"tforth/forth"
)

// Config is the driver configuration.
type Config struct {
	Input struct {
		Encoding string `yaml:"encoding"`
	} `yaml:"input"`
	Trace   bool     `yaml:"trace"`
	Prompt  string   `yaml:"prompt"`
	History string   `yaml:"history"`
	Startup []string `yaml:"startup"`
	Base    int      `yaml:"base"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Prompt: "ok> ",
		Base:   bootstrap.DefaultBase,
	}
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse parses b over the defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	c := Default()
	if err := yaml.UnmarshalStrict(b, c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the encoding name and the image base.
func (c *Config) Validate() error {
	if _, err := forth.Encoding(c.Input.Encoding); err != nil {
		return err
	}
	if c.Base <= forth.AddrState {
		return fmt.Errorf("config: base %d overlaps system variables", c.Base)
	}
	return nil
}
