// scheme_test.go - shared flows run on the plain scheme path
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

package schemetest_test

import (
	"testing"

	"github.com/naokirin/crypto-sample-go/crypto/ibe"
	schemetest "github.com/naokirin/crypto-sample-go/crypto/testutils"
	"github.com/stretchr/testify/require"
)

func TestPlainIdentityFlow(t *testing.T) {
	mk, params, err := ibe.Setup()
	require.Nil(t, err)
	schemetest.TestIdentityFlow(t, nil, mk, params)
}

func TestPlainAttributeFlow(t *testing.T) {
	mk, params, err := ibe.Setup()
	require.Nil(t, err)
	schemetest.TestAttributeFlow(t, nil, mk, params)
}

func TestPlainKeyPolicyFlow(t *testing.T) {
	mk, params, err := ibe.Setup()
	require.Nil(t, err)
	schemetest.TestKeyPolicyFlow(t, nil, mk, params)
}

func TestPlainMarshalRoundTrip(t *testing.T) {
	mk, params, err := ibe.Setup()
	require.Nil(t, err)
	schemetest.TestMarshalRoundTrip(t, nil, mk, params)
}
