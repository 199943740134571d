// utils_test.go - tests of the auxiliary hash and derivation functions
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

package utils_test

import (
	"testing"

	"github.com/naokirin/crypto-sample-go/constants"
	"github.com/naokirin/crypto-sample-go/crypto/utils"
	"github.com/jstuczyn/amcl/version3/go/amcl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashBytes(t *testing.T) {
	validShas := map[int]int{
		amcl.SHA256: 32,
		amcl.SHA384: 48,
		amcl.SHA512: 64,
	}
	invalidShas := []int{-1, 0, 1, 224, 300}

	b := []byte("Some arbitrary message to hash")

	for sha, expectedLen := range validShas {
		result, err := utils.HashBytes(sha, b)
		assert.Nil(t, err)
		assert.Len(t, result, expectedLen)
	}

	for _, sha := range invalidShas {
		result, err := utils.HashBytes(sha, b)
		assert.Equal(t, utils.ErrHashInvalidSha, err)
		assert.Nil(t, result)
	}
}

func TestHashToG2(t *testing.T) {
	q1, err := utils.HashStringToG2(amcl.SHA256, "alice@example.com")
	require.Nil(t, err)
	assert.False(t, q1.Is_infinity())

	// deterministic
	q2, err := utils.HashStringToG2(amcl.SHA256, "alice@example.com")
	require.Nil(t, err)
	assert.True(t, q1.Equals(q2))

	// distinct inputs map to distinct points
	q3, err := utils.HashStringToG2(amcl.SHA256, "bob@example.com")
	require.Nil(t, err)
	assert.False(t, q1.Equals(q3))

	// empty input is still a valid identity
	q4, err := utils.HashBytesToG2(amcl.SHA256, []byte{})
	require.Nil(t, err)
	assert.False(t, q4.Is_infinity())

	_, err = utils.HashBytesToG2(42, []byte("foo"))
	assert.Equal(t, utils.ErrHashInvalidSha, err)
}

func TestHashToG1(t *testing.T) {
	p1, err := utils.HashStringToG1(amcl.SHA512, "some attribute")
	require.Nil(t, err)
	assert.False(t, p1.Is_infinity())

	p2, err := utils.HashStringToG1(amcl.SHA512, "some attribute")
	require.Nil(t, err)
	assert.True(t, p1.Equals(p2))
}

func TestKdfStream(t *testing.T) {
	seed := []byte("pairing output stand-in")

	for _, n := range []int{0, 1, 31, 32, 33, 100, 1024} {
		mask, err := utils.KdfStream(amcl.SHA256, seed, n)
		require.Nil(t, err)
		assert.Len(t, mask, n)
	}

	// deterministic and prefix-consistent
	m1, err := utils.KdfStream(amcl.SHA256, seed, 64)
	require.Nil(t, err)
	m2, err := utils.KdfStream(amcl.SHA256, seed, 64)
	require.Nil(t, err)
	assert.Equal(t, m1, m2)

	m3, err := utils.KdfStream(amcl.SHA256, seed, 16)
	require.Nil(t, err)
	assert.Equal(t, m1[:16], m3)

	// different seeds diverge
	m4, err := utils.KdfStream(amcl.SHA256, []byte("another seed"), 64)
	require.Nil(t, err)
	assert.NotEqual(t, m1, m4)

	_, err = utils.KdfStream(amcl.SHA256, seed, -1)
	assert.NotNil(t, err)
}

func TestXorBytes(t *testing.T) {
	msg := []byte{0x00, 0xFF, 0xAA, 0x55}
	mask := []byte{0xFF, 0xFF, 0x00, 0x55}

	out := utils.XorBytes(msg, mask)
	assert.Equal(t, []byte{0xFF, 0x00, 0xAA, 0x00}, out)
	assert.Equal(t, msg, utils.XorBytes(out, mask))
	assert.Len(t, utils.XorBytes([]byte{}, []byte{}), 0)
}

func TestMakeTag(t *testing.T) {
	secret := []byte("shared pairing secret")
	plaintext := []byte("Hello, IBE!")

	t1, err := utils.MakeTag(amcl.SHA256, secret, plaintext)
	require.Nil(t, err)
	assert.Len(t, t1, constants.TagLen)

	t2, err := utils.MakeTag(amcl.SHA256, secret, plaintext)
	require.Nil(t, err)
	assert.Equal(t, t1, t2)

	t3, err := utils.MakeTag(amcl.SHA256, secret, []byte("Hello, IBE?"))
	require.Nil(t, err)
	assert.NotEqual(t, t1, t3)

	t4, err := utils.MakeTag(amcl.SHA256, []byte("other secret"), plaintext)
	require.Nil(t, err)
	assert.NotEqual(t, t1, t4)
}
