// marshal_test.go - tests of the IBE serialization
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

package ibe_test

import (
	"path/filepath"
	"testing"

	"github.com/naokirin/crypto-sample-go/constants"
	"github.com/naokirin/crypto-sample-go/crypto/ibe"
	Curve "github.com/jstuczyn/amcl/version3/go/amcl/BLS381"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMasterKeyMarshal(t *testing.T) {
	mk, _, err := ibe.Setup()
	require.Nil(t, err)

	data, err := mk.MarshalBinary()
	require.Nil(t, err)
	assert.Len(t, data, constants.BIGLen)

	recovered := &ibe.MasterKey{}
	require.Nil(t, recovered.UnmarshalBinary(data))
	assert.Zero(t, Curve.Comp(mk.S(), recovered.S()))

	// canonical: re-encoding yields identical bytes
	data2, err := recovered.MarshalBinary()
	require.Nil(t, err)
	assert.Equal(t, data, data2)

	assert.Equal(t, constants.ErrUnmarshalLength, recovered.UnmarshalBinary(data[1:]))
	assert.Equal(t, ibe.ErrInvalidScalar, recovered.UnmarshalBinary(make([]byte, constants.BIGLen)))
}

func TestParamsMarshal(t *testing.T) {
	_, params, err := ibe.Setup()
	require.Nil(t, err)

	data, err := params.MarshalBinary()
	require.Nil(t, err)
	assert.Len(t, data, constants.BIGLen+2*constants.ECPLen+constants.ECP2Len)

	recovered := &ibe.Params{}
	require.Nil(t, recovered.UnmarshalBinary(data))
	assert.True(t, params.G1().Equals(recovered.G1()))
	assert.True(t, params.G2().Equals(recovered.G2()))
	assert.True(t, params.PPub().Equals(recovered.PPub()))

	data2, err := recovered.MarshalBinary()
	require.Nil(t, err)
	assert.Equal(t, data, data2)

	assert.Equal(t, constants.ErrUnmarshalLength, recovered.UnmarshalBinary(data[:len(data)-1]))
}

func TestPrivateKeyMarshal(t *testing.T) {
	mk, _, err := ibe.Setup()
	require.Nil(t, err)
	pk, err := ibe.Extract(mk, "user@example.com")
	require.Nil(t, err)

	data, err := pk.MarshalBinary()
	require.Nil(t, err)
	assert.Len(t, data, constants.ECP2Len)

	recovered := &ibe.PrivateKey{}
	require.Nil(t, recovered.UnmarshalBinary(data))
	assert.True(t, pk.D().Equals(recovered.D()))

	data2, err := recovered.MarshalBinary()
	require.Nil(t, err)
	assert.Equal(t, data, data2)

	assert.Equal(t, constants.ErrUnmarshalLength, recovered.UnmarshalBinary(data[:10]))
	assert.Equal(t, ibe.ErrInvalidPoint, recovered.UnmarshalBinary(make([]byte, constants.ECP2Len)))
}

func TestCiphertextMarshal(t *testing.T) {
	mk, params, err := ibe.Setup()
	require.Nil(t, err)

	message := []byte("Hello, IBE!")
	c, err := ibe.Encrypt(params, "user@example.com", message)
	require.Nil(t, err)

	data, err := c.MarshalBinary()
	require.Nil(t, err)
	assert.Len(t, data, constants.ECPLen+constants.TagLen+len(message))

	recovered := &ibe.Ciphertext{}
	require.Nil(t, recovered.UnmarshalBinary(data))
	assert.True(t, c.U().Equals(recovered.U()))
	assert.Equal(t, c.V(), recovered.V())
	assert.Equal(t, c.Tag(), recovered.Tag())

	data2, err := recovered.MarshalBinary()
	require.Nil(t, err)
	assert.Equal(t, data, data2)

	// a deserialized ciphertext still decrypts
	pk, err := ibe.Extract(mk, "user@example.com")
	require.Nil(t, err)
	plaintext, err := ibe.Decrypt(pk, recovered)
	require.Nil(t, err)
	assert.Equal(t, message, plaintext)

	assert.Equal(t, constants.ErrUnmarshalLength,
		recovered.UnmarshalBinary(data[:constants.ECPLen+constants.TagLen-1]))
}

func TestCiphertextMarshalEmptyPayload(t *testing.T) {
	_, params, err := ibe.Setup()
	require.Nil(t, err)

	c, err := ibe.Encrypt(params, "user@example.com", []byte{})
	require.Nil(t, err)

	data, err := c.MarshalBinary()
	require.Nil(t, err)
	assert.Len(t, data, constants.ECPLen+constants.TagLen)

	recovered := &ibe.Ciphertext{}
	require.Nil(t, recovered.UnmarshalBinary(data))
	assert.Len(t, recovered.V(), 0)
}

func TestPEMFiles(t *testing.T) {
	dir := t.TempDir()
	mk, params, err := ibe.Setup()
	require.Nil(t, err)
	pk, err := ibe.Extract(mk, "user@example.com")
	require.Nil(t, err)

	mkFile := filepath.Join(dir, "master.pem")
	paramsFile := filepath.Join(dir, "params.pem")
	pkFile := filepath.Join(dir, "key.pem")

	require.Nil(t, mk.ToPEMFile(mkFile))
	require.Nil(t, params.ToPEMFile(paramsFile))
	require.Nil(t, pk.ToPEMFile(pkFile))

	mk2 := &ibe.MasterKey{}
	require.Nil(t, mk2.FromPEMFile(mkFile))
	assert.Zero(t, Curve.Comp(mk.S(), mk2.S()))

	params2 := &ibe.Params{}
	require.Nil(t, params2.FromPEMFile(paramsFile))
	assert.True(t, params.PPub().Equals(params2.PPub()))

	pk2 := &ibe.PrivateKey{}
	require.Nil(t, pk2.FromPEMFile(pkFile))
	assert.True(t, pk.D().Equals(pk2.D()))

	// wrong type
	assert.NotNil(t, mk2.FromPEMFile(pkFile))
}
