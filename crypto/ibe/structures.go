// structures.go - Data structures for the Boneh-Franklin IBE scheme
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
	"github.com/naokirin/crypto-sample-go/crypto/bpgroup"
	Curve "github.com/jstuczyn/amcl/version3/go/amcl/BLS381"
)

// MasterKey represents the single secret scalar from which all identity keys
// are derived. It is created by Setup and must never leave its holder.
type MasterKey struct {
	s *Curve.BIG
}

// S returns the master secret scalar.
func (mk *MasterKey) S() *Curve.BIG {
	return mk.s
}

// Validate checks for nil elements in the key.
func (mk *MasterKey) Validate() bool {
	return mk != nil && mk.s != nil
}

// Destroy overwrites the secret scalar in place before the key is dropped.
func (mk *MasterKey) Destroy() {
	if mk == nil || mk.s == nil {
		return
	}
	// reduction modulo one clears the backing limbs
	mk.s.Mod(Curve.NewBIGint(1))
	mk.s = nil
}

// NewMasterKey returns instance of the master key from the provided attributes.
// Created so that the type could be instantiated by workers while preserving attributes being private.
func NewMasterKey(s *Curve.BIG) *MasterKey {
	return &MasterKey{s: s}
}

// Params represent the distributable public system-wide parameters.
type Params struct {
	G    *bpgroup.BpGroup // represents G1, G2, GT
	p    *Curve.BIG
	g1   *Curve.ECP
	g2   *Curve.ECP2
	pPub *Curve.ECP
}

// P returns order of the group in params
func (params *Params) P() *Curve.BIG {
	return params.p
}

// G1 returns generator of G1 in params
func (params *Params) G1() *Curve.ECP {
	return params.g1
}

// G2 returns generator of G2 in params
func (params *Params) G2() *Curve.ECP2 {
	return params.g2
}

// PPub returns the master public point pPub = s * g1.
func (params *Params) PPub() *Curve.ECP {
	return params.pPub
}

// Validate checks for nil elements in the params.
func (params *Params) Validate() bool {
	if params == nil || params.p == nil || params.g1 == nil || params.g2 == nil || params.pPub == nil {
		return false
	}
	return !params.pPub.Is_infinity()
}

// NewParams returns instance of params from the provided attributes.
func NewParams(G *bpgroup.BpGroup, p *Curve.BIG, g1 *Curve.ECP, g2 *Curve.ECP2, pPub *Curve.ECP) *Params {
	return &Params{
		G:    G,
		p:    p,
		g1:   g1,
		g2:   g2,
		pPub: pPub,
	}
}

// PrivateKey represents the decryption key for a single identity,
// d = s * H(identity).
type PrivateKey struct {
	d *Curve.ECP2
}

// D returns the key point.
func (pk *PrivateKey) D() *Curve.ECP2 {
	return pk.d
}

// Validate checks for nil elements in the key.
func (pk *PrivateKey) Validate() bool {
	return pk != nil && pk.d != nil && !pk.d.Is_infinity()
}

// Destroy overwrites the key point in place before the key is dropped.
func (pk *PrivateKey) Destroy() {
	if pk == nil || pk.d == nil {
		return
	}
	pk.d.Copy(Curve.NewECP2())
	pk.d = nil
}

// NewPrivateKey returns instance of the private key from the provided attributes.
func NewPrivateKey(d *Curve.ECP2) *PrivateKey {
	return &PrivateKey{d: d}
}

// Ciphertext represents encryption of a message under some identity.
// u = r * g1,
// v = message XOR KDF(e(pPub, H(identity))^r),
// tag = integrity tag over the plaintext, keyed by the pairing output.
type Ciphertext struct {
	u   *Curve.ECP
	v   []byte
	tag []byte
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
	if c == nil || c.u == nil || c.v == nil || c.tag == nil {
		return false
	}
	return !c.u.Is_infinity()
}

// NewCiphertext returns instance of ciphertext from the provided attributes.
func NewCiphertext(u *Curve.ECP, v []byte, tag []byte) *Ciphertext {
	return &Ciphertext{u: u, v: v, tag: tag}
}
