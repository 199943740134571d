// scheme.go - conjunctive ciphertext-policy and key-policy ABE
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

package abe

import (
	"crypto/subtle"
	"errors"

	"github.com/naokirin/crypto-sample-go/constants"
	"github.com/naokirin/crypto-sample-go/crypto/ibe"
	"github.com/naokirin/crypto-sample-go/crypto/utils"
	"github.com/jstuczyn/amcl/version3/go/amcl"
	Curve "github.com/jstuczyn/amcl/version3/go/amcl/BLS381"
)

// sha used for hashing attributes onto the curve and for the KDF/tag.
const sha = amcl.SHA256

var (
	// ErrEmptyPolicy indicates an empty attribute or policy list.
	ErrEmptyPolicy = errors.New("policy and attribute sets must be non-empty")

	// ErrAttributeMismatch indicates that the key attributes do not satisfy
	// the ciphertext policy (or, for the key-policy scheme, that the
	// ciphertext attributes do not match the key policy).
	ErrAttributeMismatch = errors.New("key attributes do not satisfy the ciphertext policy")
)

// normalizeAttributes removes duplicates while preserving first-occurrence
// order. The masking secret is a product over the attribute set, so a
// repeated attribute must contribute a single factor regardless of how many
// times the caller listed it.
func normalizeAttributes(attributes []string) []string {
	seen := make(map[string]struct{}, len(attributes))
	out := make([]string, 0, len(attributes))
	for _, a := range attributes {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}

// sameAttributeSet compares two attribute lists as sets.
// Both lists are assumed deduplicated.
func sameAttributeSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[s] = struct{}{}
	}
	for _, s := range b {
		if _, ok := set[s]; !ok {
			return false
		}
	}
	return true
}

// KeyGen derives a ciphertext-policy decryption key holding one component
// per attribute, d_a = s * H(a). Like ibe.Extract it is deterministic.
func KeyGen(mk *ibe.MasterKey, attributes []string) (*PrivateKey, error) {
	if !mk.Validate() {
		return nil, ibe.ErrSetupParams
	}
	attributes = normalizeAttributes(attributes)
	if len(attributes) == 0 {
		return nil, ErrEmptyPolicy
	}
	ds := make([]*Curve.ECP2, len(attributes))
	for i, a := range attributes {
		qa, err := utils.HashStringToG2(sha, a)
		if err != nil {
			return nil, err
		}
		ds[i] = Curve.G2mul(qa, mk.S())
	}
	return &PrivateKey{attributes: attributes, ds: ds}, nil
}

// Encrypt encrypts the message under a conjunctive policy: every listed
// attribute is required. The masking secret is
// (prod_a e(pPub, H(a)))^r, so it can only be reproduced by a key carrying
// components for all policy attributes.
func Encrypt(params *ibe.Params, policy []string, message []byte) (*Ciphertext, error) {
	if !params.Validate() {
		return nil, ibe.ErrSetupParams
	}
	policy = normalizeAttributes(policy)
	if len(policy) == 0 {
		return nil, ErrEmptyPolicy
	}

	r := Curve.Randomnum(params.P(), params.G.Rng())
	u := Curve.G1mul(params.G1(), r)

	var prod *Curve.FP12
	for _, a := range policy {
		qa, err := utils.HashStringToG2(sha, a)
		if err != nil {
			return nil, err
		}
		gta := params.G.Pair(params.PPub(), qa)
		if prod == nil {
			prod = Curve.NewFP12copy(gta)
		} else {
			prod.Mul(gta)
		}
	}
	gt := Curve.GTpow(prod, r)

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
	return &Ciphertext{attributes: policy, u: u, v: v, tag: tag}, nil
}

// Decrypt recovers the message if the key attributes are a superset of the
// ciphertext policy. The extra attributes of the key do not enter the
// computation; only the components named by the policy are paired with the
// masking point. Any missing attribute yields ErrAttributeMismatch, as does
// a key derived under a different master key.
func Decrypt(pk *PrivateKey, c *Ciphertext) ([]byte, error) {
	if !pk.Validate() || !c.Validate() {
		return nil, ibe.ErrSetupParams
	}
	byAttr := make(map[string]*Curve.ECP2, len(pk.attributes))
	for i, a := range pk.attributes {
		byAttr[a] = pk.ds[i]
	}

	var gt *Curve.FP12
	for _, a := range c.attributes {
		d, ok := byAttr[a]
		if !ok {
			return nil, ErrAttributeMismatch
		}
		gta := Curve.Fexp(Curve.Ate(d, c.u))
		if gt == nil {
			gt = gta
		} else {
			gt.Mul(gta)
		}
	}
	return unmask(gt, c)
}

// KPKeyGen derives a key-policy decryption key. The policy is baked into the
// key: a ciphertext decrypts only if its attribute set matches the key
// policy exactly. The conjunctive setting has no secret sharing to tolerate
// extra ciphertext attributes, so a partial match cannot be accepted.
func KPKeyGen(mk *ibe.MasterKey, policy []string) (*PrivateKey, error) {
	return KeyGen(mk, policy)
}

// KPEncrypt encrypts the message under the descriptive attributes of the
// message itself. Which keys may open it is decided at key generation time.
func KPEncrypt(params *ibe.Params, attributes []string, message []byte) (*Ciphertext, error) {
	return Encrypt(params, attributes, message)
}

// KPDecrypt recovers the message if the ciphertext attribute set equals the
// key policy. Order and duplicates are irrelevant; the comparison is over
// sets.
func KPDecrypt(pk *PrivateKey, c *Ciphertext) ([]byte, error) {
	if !pk.Validate() || !c.Validate() {
		return nil, ibe.ErrSetupParams
	}
	if !sameAttributeSet(pk.attributes, c.attributes) {
		return nil, ErrAttributeMismatch
	}
	return Decrypt(pk, c)
}

func unmask(gt *Curve.FP12, c *Ciphertext) ([]byte, error) {
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
		return nil, ErrAttributeMismatch
	}
	return message, nil
}
