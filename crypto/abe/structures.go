// structures.go - Data structures for the attribute-based encryption schemes
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

// Package abe provides conjunctive ciphertext-policy and key-policy
// attribute-based encryption built on the same pairing group and master key
// material as the ibe package.
package abe

import (
	Curve "github.com/jstuczyn/amcl/version3/go/amcl/BLS381"
)

// PrivateKey holds one key component per attribute the holder possesses,
// d_a = s * H(a). The attribute list is kept alongside the points so that
// Decrypt can select the components a ciphertext policy asks for.
type PrivateKey struct {
	attributes []string
	ds         []*Curve.ECP2
}

// Attributes returns the attribute strings the key was generated for.
func (pk *PrivateKey) Attributes() []string {
	return pk.attributes
}

// Ds returns the per-attribute key components, index-aligned with Attributes.
func (pk *PrivateKey) Ds() []*Curve.ECP2 {
	return pk.ds
}

// Validate checks for nil or inconsistent elements in the key.
func (pk *PrivateKey) Validate() bool {
	if pk == nil || len(pk.attributes) == 0 || len(pk.attributes) != len(pk.ds) {
		return false
	}
	for _, d := range pk.ds {
		if d == nil || d.Is_infinity() {
			return false
		}
	}
	return true
}

// Destroy overwrites all key components in place before the key is dropped.
func (pk *PrivateKey) Destroy() {
	if pk == nil {
		return
	}
	for _, d := range pk.ds {
		if d != nil {
			d.Copy(Curve.NewECP2())
		}
	}
	pk.ds = nil
	pk.attributes = nil
}

// NewPrivateKey returns instance of the private key from the provided attributes.
// Created so that the type could be instantiated by workers while preserving attributes being private.
func NewPrivateKey(attributes []string, ds []*Curve.ECP2) *PrivateKey {
	return &PrivateKey{attributes: attributes, ds: ds}
}

// Ciphertext represents encryption of a message under a set of attributes.
// For the ciphertext-policy scheme the attached attributes are the policy a
// decryptor has to satisfy; for the key-policy scheme they describe the
// message and are matched against the policy baked into the key.
type Ciphertext struct {
	attributes []string
	u          *Curve.ECP
	v          []byte
	tag        []byte
}

// Attributes returns the attribute strings attached to the ciphertext.
func (c *Ciphertext) Attributes() []string {
	return c.attributes
}

// U returns the masking point of the ciphertext.
func (c *Ciphertext) U() *Curve.ECP {
	return c.u
}

// V returns the masked payload of the ciphertext.
func (c *Ciphertext) V() []byte {
	return c.v
}

// Tag returns the integrity tag of the ciphertext.
func (c *Ciphertext) Tag() []byte {
	return c.tag
}

// Validate checks for nil elements in the ciphertext.
func (c *Ciphertext) Validate() bool {
	if c == nil || len(c.attributes) == 0 || c.u == nil || c.v == nil || c.tag == nil {
		return false
	}
	return !c.u.Is_infinity()
}

// NewCiphertext returns instance of ciphertext from the provided attributes.
func NewCiphertext(attributes []string, u *Curve.ECP, v []byte, tag []byte) *Ciphertext {
	return &Ciphertext{attributes: attributes, u: u, v: v, tag: tag}
}
