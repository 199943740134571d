// scheme.go - Shared test functions for the plain and concurrent scheme paths
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

// Package schemetest provides functions for testing that the plain scheme
// implementations and the concurrent worker variants agree. A nil worker
// argument runs the plain path.
package schemetest

import (
	"testing"

	"github.com/naokirin/crypto-sample-go/crypto/abe"
	"github.com/naokirin/crypto-sample-go/crypto/concurrency/cryptoworker"
	"github.com/naokirin/crypto-sample-go/crypto/ibe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractWrapper(cw *cryptoworker.Worker, mk *ibe.MasterKey, identity string) (*ibe.PrivateKey, error) {
	if cw == nil {
		return ibe.Extract(mk, identity)
	}
	return cw.ExtractWrapper(mk, identity)
}

func encryptWrapper(cw *cryptoworker.Worker, params *ibe.Params, identity string, msg []byte) (*ibe.Ciphertext, error) {
	if cw == nil {
		return ibe.Encrypt(params, identity, msg)
	}
	return cw.EncryptWrapper(identity, msg)
}

func decryptWrapper(cw *cryptoworker.Worker, pk *ibe.PrivateKey, c *ibe.Ciphertext) ([]byte, error) {
	if cw == nil {
		return ibe.Decrypt(pk, c)
	}
	return cw.DecryptWrapper(pk, c)
}

func keyGenWrapper(cw *cryptoworker.Worker, mk *ibe.MasterKey, attributes []string) (*abe.PrivateKey, error) {
	if cw == nil {
		return abe.KeyGen(mk, attributes)
	}
	return cw.KeyGenWrapper(mk, attributes)
}

func encryptABEWrapper(cw *cryptoworker.Worker, params *ibe.Params, policy []string, msg []byte) (*abe.Ciphertext, error) {
	if cw == nil {
		return abe.Encrypt(params, policy, msg)
	}
	return cw.EncryptABEWrapper(policy, msg)
}

func decryptABEWrapper(cw *cryptoworker.Worker, pk *abe.PrivateKey, c *abe.Ciphertext) ([]byte, error) {
	if cw == nil {
		return abe.Decrypt(pk, c)
	}
	return cw.DecryptABEWrapper(pk, c)
}

func decryptKPABEWrapper(cw *cryptoworker.Worker, pk *abe.PrivateKey, c *abe.Ciphertext) ([]byte, error) {
	if cw == nil {
		return abe.KPDecrypt(pk, c)
	}
	return cw.DecryptKPABEWrapper(pk, c)
}

// TestIdentityFlow checks the full extract/encrypt/decrypt cycle, including
// rejection of a key for a different identity.
func TestIdentityFlow(t *testing.T, cw *cryptoworker.Worker, mk *ibe.MasterKey, params *ibe.Params) {
	message := []byte("Hello, IBE!")

	c, err := encryptWrapper(cw, params, "user@example.com", message)
	require.Nil(t, err)

	pk, err := extractWrapper(cw, mk, "user@example.com")
	require.Nil(t, err)

	recovered, err := decryptWrapper(cw, pk, c)
	require.Nil(t, err)
	assert.Equal(t, message, recovered)

	wrongPk, err := extractWrapper(cw, mk, "other@example.com")
	require.Nil(t, err)
	_, err = decryptWrapper(cw, wrongPk, c)
	assert.Equal(t, ibe.ErrIdentityMismatch, err)
}

// TestAttributeFlow checks the ciphertext-policy cycle: a policy key opens
// the ciphertext, a superset key opens it too, a key missing a policy
// attribute is rejected.
func TestAttributeFlow(t *testing.T, cw *cryptoworker.Worker, mk *ibe.MasterKey, params *ibe.Params) {
	policy := []string{"dept:finance", "role:manager"}
	message := []byte("Hello, ABE!")

	c, err := encryptABEWrapper(cw, params, policy, message)
	require.Nil(t, err)

	pk, err := keyGenWrapper(cw, mk, policy)
	require.Nil(t, err)
	recovered, err := decryptABEWrapper(cw, pk, c)
	require.Nil(t, err)
	assert.Equal(t, message, recovered)

	superPk, err := keyGenWrapper(cw, mk, []string{"extra", "role:manager", "dept:finance"})
	require.Nil(t, err)
	recovered, err = decryptABEWrapper(cw, superPk, c)
	require.Nil(t, err)
	assert.Equal(t, message, recovered)

	partialPk, err := keyGenWrapper(cw, mk, []string{"dept:finance"})
	require.Nil(t, err)
	_, err = decryptABEWrapper(cw, partialPk, c)
	assert.Equal(t, abe.ErrAttributeMismatch, err)
}

// TestKeyPolicyFlow checks the key-policy cycle: the ciphertext attribute
// set has to match the key policy exactly, in any order.
func TestKeyPolicyFlow(t *testing.T, cw *cryptoworker.Worker, mk *ibe.MasterKey, params *ibe.Params) {
	message := []byte("Hello, ABE!")

	pk, err := keyGenWrapper(cw, mk, []string{"topic:alerts", "severity:high"})
	require.Nil(t, err)

	c, err := encryptABEWrapper(cw, params, []string{"severity:high", "topic:alerts"}, message)
	require.Nil(t, err)
	recovered, err := decryptKPABEWrapper(cw, pk, c)
	require.Nil(t, err)
	assert.Equal(t, message, recovered)

	c, err = encryptABEWrapper(cw, params, []string{"severity:high"}, message)
	require.Nil(t, err)
	_, err = decryptKPABEWrapper(cw, pk, c)
	assert.Equal(t, abe.ErrAttributeMismatch, err)
}

// TestMarshalRoundTrip checks that keys and ciphertexts survive a
// serialization cycle on whichever path produced them.
func TestMarshalRoundTrip(t *testing.T, cw *cryptoworker.Worker, mk *ibe.MasterKey, params *ibe.Params) {
	message := []byte("serialized payload")

	c, err := encryptWrapper(cw, params, "user@example.com", message)
	require.Nil(t, err)
	data, err := c.MarshalBinary()
	require.Nil(t, err)
	c2 := &ibe.Ciphertext{}
	require.Nil(t, c2.UnmarshalBinary(data))

	pk, err := extractWrapper(cw, mk, "user@example.com")
	require.Nil(t, err)
	recovered, err := decryptWrapper(cw, pk, c2)
	require.Nil(t, err)
	assert.Equal(t, message, recovered)
}
