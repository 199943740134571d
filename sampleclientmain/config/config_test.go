// config_test.go - tests of the sample client configuration
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

package config

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := LoadBinary([]byte(""))
	require.Nil(t, err)

	assert.Equal(t, "user@example.com", cfg.Client.Identity)
	assert.Equal(t, []string{"dept:finance", "role:manager"}, cfg.Client.Policy)
	assert.Equal(t, []string{"topic:alerts", "severity:high"}, cfg.Client.KPPolicy)
	assert.Equal(t, runtime.NumCPU(), cfg.Debug.NumJobWorkers)
	assert.Equal(t, "NOTICE", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Disable)
}

func TestLoadBinary(t *testing.T) {
	cfgStr := `
[Client]
Identifier = "sample"
Identity = "alice@example.com"
Policy = ["a", "b"]

[Logging]
Level = "DEBUG"
Disable = true

[Debug]
NumJobWorkers = 2
`
	cfg, err := LoadBinary([]byte(cfgStr))
	require.Nil(t, err)

	assert.Equal(t, "alice@example.com", cfg.Client.Identity)
	assert.Equal(t, []string{"a", "b"}, cfg.Client.Policy)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Disable)
	assert.Equal(t, 2, cfg.Debug.NumJobWorkers)

	// unset blocks still get defaults
	assert.Equal(t, []string{"topic:alerts", "severity:high"}, cfg.Client.KPPolicy)
}

func TestInvalidToml(t *testing.T) {
	_, err := LoadBinary([]byte("not [valid toml"))
	assert.NotNil(t, err)
}
