// logger_test.go - tests of the logging backend setup
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

package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/naokirin/crypto-sample-go/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, level := range []string{"ERROR", "WARNING", "NOTICE", "INFO", "DEBUG", "debug"} {
		l, err := logger.New("", level, true)
		assert.Nil(t, err)
		assert.NotNil(t, l)
	}

	_, err := logger.New("", "TRACE", true)
	assert.NotNil(t, err)
}

func TestLogToFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "out.log")
	l, err := logger.New(f, "DEBUG", false)
	require.Nil(t, err)

	log := l.GetLogger("test")
	log.Notice("some notice message")

	b, err := os.ReadFile(f)
	require.Nil(t, err)
	assert.Contains(t, string(b), "some notice message")
}

func TestGetLogger(t *testing.T) {
	l, err := logger.New("", "NOTICE", true)
	require.Nil(t, err)
	assert.NotNil(t, l.GetLogger("module1"))
	assert.NotNil(t, l.GetLogger("module2"))
}
