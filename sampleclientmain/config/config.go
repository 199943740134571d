// config.go - config for the sample client
// Copyright (C) 2025  naokirin
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package config defines configuration used by the sample client.
package config

import (
	"errors"
	"io/ioutil"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

const (
	defaultLogLevel = "NOTICE"

	defaultIdentity = "user@example.com"
)

// nolint: gochecknoglobals
var (
	defaultPolicy   = []string{"dept:finance", "role:manager"}
	defaultKPPolicy = []string{"topic:alerts", "severity:high"}

	defaultLogging = Logging{
		Disable: false,
		File:    "",
		Level:   defaultLogLevel,
	}
)

// Client is the sample client configuration.
type Client struct {
	// Identifier is the human readable identifier for the instance.
	Identifier string

	// KeyDirectory specifies the directory the generated key material is
	// written to in PEM form. If omitted no files are written.
	KeyDirectory string

	// Identity is the recipient identity used for the identity-based flow.
	Identity string

	// Policy is the attribute set used for the ciphertext-policy flow.
	Policy []string

	// KPPolicy is the attribute set used for the key-policy flow.
	KPPolicy []string
}

// Debug is the sample client debug configuration.
type Debug struct {
	// NumJobWorkers specifies the number of worker instances to use for jobpacket processing.
	NumJobWorkers int
}

func (dCfg *Debug) applyDefaults() {
	if dCfg.NumJobWorkers <= 0 {
		dCfg.NumJobWorkers = runtime.NumCPU()
	}
}

// Logging is the sample client logging configuration.
type Logging struct {
	// Disable disables logging entirely.
	Disable bool

	// File specifies the log file, if omitted stdout will be used.
	File string

	// Level specifies the log level.
	Level string
}

// Config is the top level sample client configuration.
type Config struct {
	Client  *Client
	Logging *Logging
	Debug   *Debug
}

func (cfg *Config) validateAndApplyDefaults() error {
	if cfg.Client == nil {
		cfg.Client = &Client{}
	}
	if cfg.Client.Identity == "" {
		cfg.Client.Identity = defaultIdentity
	}
	if len(cfg.Client.Policy) == 0 {
		cfg.Client.Policy = defaultPolicy
	}
	if len(cfg.Client.KPPolicy) == 0 {
		cfg.Client.KPPolicy = defaultKPPolicy
	}

	if cfg.Debug == nil {
		cfg.Debug = &Debug{}
	}
	cfg.Debug.applyDefaults()

	if cfg.Logging == nil {
		cfg.Logging = &defaultLogging
	}
	if cfg.Logging.Level == "" {
		return errors.New("config: Unspecified log level")
	}

	return nil
}

// LoadBinary loads, parses and validates the provided buffer b (as a config)
// and returns the Config.
func LoadBinary(b []byte) (*Config, error) {
	cfg := new(Config)
	_, err := toml.Decode(string(b), cfg)
	if err != nil {
		return nil, err
	}
	if err := cfg.validateAndApplyDefaults(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile loads, parses and validates the provided file and returns the Config.
func LoadFile(f string) (*Config, error) {
	b, err := ioutil.ReadFile(filepath.Clean(f))
	if err != nil {
		return nil, err
	}
	return LoadBinary(b)
}
