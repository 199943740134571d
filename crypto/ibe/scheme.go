// scheme.go - Boneh-Franklin identity-based encryption
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

// Package ibe provides the functionalities required by the Boneh-Franklin
// identity-based encryption scheme.
package ibe

import (
	"crypto/subtle"
	"errors"

	"github.com/naokirin/crypto-sample-go/constants"
	"github.com/naokirin/crypto-sample-go/crypto/bpgroup"
	"github.com/naokirin/crypto-sample-go/crypto/utils"
	"github.com/jstuczyn/amcl/version3/go/amcl"
	Curve "github.com/jstuczyn/amcl/version3/go/amcl/BLS381"
)

// sha used for hashing identities onto the curve and for the KDF/tag.
const sha = amcl.SHA256

var (
	// ErrSetupParams indicates invalid master key material provided for an operation.
	ErrSetupParams = errors.New("invalid master key or public parameters provided")

	// ErrInvalidScalar indicates a scalar encoding that does not represent
	// a valid element modulo the group order.
	ErrInvalidScalar = errors.New("byte encoding is not a valid scalar")

	// ErrInvalidPoint indicates a group element encoding that does not
	// decode to a point on the curve in the correct subgroup.
	ErrInvalidPoint = errors.New("byte encoding is not a valid group element")

	// ErrIdentityMismatch indicates that the integrity tag did not verify
	// after unmasking, i.e. the private key was extracted for a different
	// identity than the one the ciphertext was encrypted to.
	ErrIdentityMismatch = errors.New("private key does not match the ciphertext identity")
)

// Setup generates a fresh master key together with the public parameters.
func Setup() (*MasterKey, *Params, error) {
	G, err := bpgroup.New()
	if err != nil {
		return nil, nil, err
	}
	s := Curve.Randomnum(G.Order(), G.Rng())
	pPub := Curve.G1mul(G.Gen1(), s)

	mk := &MasterKey{s: s}
	params := &Params{
		G:    G,
		p:    G.Order(),
		g1:   G.Gen1(),
		g2:   G.Gen2(),
		pPub: pPub,
	}
	return mk, params, nil
}

// Extract derives the private key for the given identity,
// d = s * H(identity). It is fully deterministic: repeated calls with the
// same master key and identity produce bit-identical keys.
func Extract(mk *MasterKey, identity string) (*PrivateKey, error) {
	if !mk.Validate() {
		return nil, ErrSetupParams
	}
	qid, err := utils.HashStringToG2(sha, identity)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{d: Curve.G2mul(qid, mk.s)}, nil
}

// Encrypt encrypts the message for the given identity.
// The mask is stretched to the message length, so messages of any size,
// including empty ones, are valid.
func Encrypt(params *Params, identity string, message []byte) (*Ciphertext, error) {
	if !params.Validate() {
		return nil, ErrSetupParams
	}
	p, g1, pPub, rng := params.p, params.g1, params.pPub, params.G.Rng()

	r := Curve.Randomnum(p, rng)
	u := Curve.G1mul(g1, r)

	qid, err := utils.HashStringToG2(sha, identity)
	if err != nil {
		return nil, err
	}
	gt := Curve.GTpow(params.G.Pair(pPub, qid), r)

	gtb := make([]byte, constants.GTLen)
	gt.ToBytes(gtb)

	mask, err := utils.KdfStream(sha, gtb, len(message))
	if err != nil {
		return nil, err
	}
	v := utils.XorBytes(message, mask)

	tag, err := utils.MakeTag(sha, gtb, message)
	if err != nil {
		return nil, err
	}
	return &Ciphertext{u: u, v: v, tag: tag}, nil
}

// Decrypt recovers the message from the ciphertext. By bilinearity
// e(r * g1, s * H(id)) = e(pPub, H(id))^r, so the pairing of the masking
// point with a matching key reproduces the encryption mask. A key extracted
// for any other identity fails the integrity check and the call returns
// ErrIdentityMismatch rather than pseudorandom bytes.
func Decrypt(pk *PrivateKey, c *Ciphertext) ([]byte, error) {
	if !pk.Validate() || !c.Validate() {
		return nil, ErrSetupParams
	}
	gt := Curve.Fexp(Curve.Ate(pk.d, c.u))

	gtb := make([]byte, constants.GTLen)
	gt.ToBytes(gtb)

	mask, err := utils.KdfStream(sha, gtb, len(c.v))
	if err != nil {
		return nil, err
	}
	message := utils.XorBytes(c.v, mask)

	tag, err := utils.MakeTag(sha, gtb, message)
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare(tag, c.tag) != 1 {
		return nil, ErrIdentityMismatch
	}
	return message, nil
}
