// marshal.go - fixed-layout serialization of the IBE structures
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
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/naokirin/crypto-sample-go/constants"
	"github.com/naokirin/crypto-sample-go/crypto/bpgroup"
	Curve "github.com/jstuczyn/amcl/version3/go/amcl/BLS381"
)

// All encodings are canonical: every field has a fixed width and re-encoding
// a decoded structure yields identical bytes. The layouts are consumed across
// a runtime boundary, so no self-describing framing is used.

// MarshalBinary is an implementation of a method on the
// BinaryMarshaler interface defined in https://golang.org/pkg/encoding/
func (mk *MasterKey) MarshalBinary() ([]byte, error) {
	if !mk.Validate() {
		return nil, errors.New("the master key is malformed")
	}
	data := make([]byte, constants.BIGLen)
	mk.s.ToBytes(data)
	return data, nil
}

// UnmarshalBinary is an implementation of a method on the
// BinaryUnmarshaler interface defined in https://golang.org/pkg/encoding/
func (mk *MasterKey) UnmarshalBinary(data []byte) error {
	if len(data) != constants.BIGLen {
		return constants.ErrUnmarshalLength
	}
	s := Curve.FromBytes(data)
	ord := Curve.NewBIGints(Curve.CURVE_Order)
	if Curve.Comp(s, ord) >= 0 || Curve.Comp(s, Curve.NewBIG()) == 0 {
		return ErrInvalidScalar
	}
	mk.s = s
	return nil
}

// MarshalBinary is an implementation of a method on the
// BinaryMarshaler interface defined in https://golang.org/pkg/encoding/
func (params *Params) MarshalBinary() ([]byte, error) {
	if !params.Validate() {
		return nil, errors.New("the params are malformed")
	}
	blen := constants.BIGLen
	eclen := constants.ECPLen
	ec2len := constants.ECP2Len

	data := make([]byte, blen+eclen+ec2len+eclen)
	params.p.ToBytes(data)
	params.g1.ToBytes(data[blen:], true)
	params.g2.ToBytes(data[blen+eclen:])
	params.pPub.ToBytes(data[blen+eclen+ec2len:], true)
	return data, nil
}

// UnmarshalBinary is an implementation of a method on the
// BinaryUnmarshaler interface defined in https://golang.org/pkg/encoding/
// It recreates the group attached to the params, hence can fail on a seed
// failure of the underlying rng.
func (params *Params) UnmarshalBinary(data []byte) error {
	blen := constants.BIGLen
	eclen := constants.ECPLen
	ec2len := constants.ECP2Len

	if len(data) != blen+eclen+ec2len+eclen {
		return constants.ErrUnmarshalLength
	}
	p := Curve.FromBytes(data)
	if Curve.Comp(p, Curve.NewBIGints(Curve.CURVE_Order)) != 0 {
		return ErrInvalidScalar
	}
	g1 := Curve.ECP_fromBytes(data[blen:])
	g2 := Curve.ECP2_fromBytes(data[blen+eclen:])
	pPub := Curve.ECP_fromBytes(data[blen+eclen+ec2len:])
	if g1.Is_infinity() || g2.Is_infinity() || pPub.Is_infinity() {
		return ErrInvalidPoint
	}

	G, err := bpgroup.New()
	if err != nil {
		return err
	}
	params.G = G
	params.p = p
	params.g1 = g1
	params.g2 = g2
	params.pPub = pPub
	return nil
}

// MarshalBinary is an implementation of a method on the
// BinaryMarshaler interface defined in https://golang.org/pkg/encoding/
func (pk *PrivateKey) MarshalBinary() ([]byte, error) {
	if !pk.Validate() {
		return nil, errors.New("the private key is malformed")
	}
	data := make([]byte, constants.ECP2Len)
	pk.d.ToBytes(data)
	return data, nil
}

// UnmarshalBinary is an implementation of a method on the
// BinaryUnmarshaler interface defined in https://golang.org/pkg/encoding/
func (pk *PrivateKey) UnmarshalBinary(data []byte) error {
	if len(data) != constants.ECP2Len {
		return constants.ErrUnmarshalLength
	}
	d := Curve.ECP2_fromBytes(data)
	if d.Is_infinity() {
		return ErrInvalidPoint
	}
	pk.d = d
	return nil
}

// MarshalBinary is an implementation of a method on the
// BinaryMarshaler interface defined in https://golang.org/pkg/encoding/
// The masked payload has no length prefix; it extends to the end of the
// buffer and may be empty.
func (c *Ciphertext) MarshalBinary() ([]byte, error) {
	if !c.Validate() || len(c.tag) != constants.TagLen {
		return nil, errors.New("the ciphertext is malformed")
	}
	eclen := constants.ECPLen

	data := make([]byte, eclen+constants.TagLen+len(c.v))
	c.u.ToBytes(data, true)
	copy(data[eclen:], c.tag)
	copy(data[eclen+constants.TagLen:], c.v)
	return data, nil
}

// UnmarshalBinary is an implementation of a method on the
// BinaryUnmarshaler interface defined in https://golang.org/pkg/encoding/
func (c *Ciphertext) UnmarshalBinary(data []byte) error {
	eclen := constants.ECPLen
	if len(data) < eclen+constants.TagLen {
		return constants.ErrUnmarshalLength
	}
	u := Curve.ECP_fromBytes(data)
	if u.Is_infinity() {
		return ErrInvalidPoint
	}
	tag := make([]byte, constants.TagLen)
	copy(tag, data[eclen:])
	v := make([]byte, len(data)-eclen-constants.TagLen)
	copy(v, data[eclen+constants.TagLen:])

	c.u = u
	c.v = v
	c.tag = tag
	return nil
}

// ToPEMFile writes out the master key to a PEM file at path f.
func (mk *MasterKey) ToPEMFile(f string) error {
	b, err := mk.MarshalBinary()
	if err != nil {
		return err
	}
	blk := &pem.Block{
		Type:  constants.MasterKeyType,
		Bytes: b,
	}
	return os.WriteFile(f, pem.EncodeToMemory(blk), 0600)
}

// FromPEMFile reads out the master key from a PEM file at path f.
func (mk *MasterKey) FromPEMFile(f string) error {
	return fromPEMFile(f, constants.MasterKeyType, mk.UnmarshalBinary)
}

// ToPEMFile writes out the public parameters to a PEM file at path f.
func (params *Params) ToPEMFile(f string) error {
	b, err := params.MarshalBinary()
	if err != nil {
		return err
	}
	blk := &pem.Block{
		Type:  constants.PublicParamsType,
		Bytes: b,
	}
	return os.WriteFile(f, pem.EncodeToMemory(blk), 0600)
}

// FromPEMFile reads out the public parameters from a PEM file at path f.
func (params *Params) FromPEMFile(f string) error {
	return fromPEMFile(f, constants.PublicParamsType, params.UnmarshalBinary)
}

// ToPEMFile writes out the private key to a PEM file at path f.
func (pk *PrivateKey) ToPEMFile(f string) error {
	b, err := pk.MarshalBinary()
	if err != nil {
		return err
	}
	blk := &pem.Block{
		Type:  constants.PrivateKeyType,
		Bytes: b,
	}
	return os.WriteFile(f, pem.EncodeToMemory(blk), 0600)
}

// FromPEMFile reads out the private key from a PEM file at path f.
func (pk *PrivateKey) FromPEMFile(f string) error {
	return fromPEMFile(f, constants.PrivateKeyType, pk.UnmarshalBinary)
}

func fromPEMFile(f, pemType string, unmarshal func([]byte) error) error {
	buf, err := os.ReadFile(filepath.Clean(f))
	if err != nil {
		return err
	}
	blk, rest := pem.Decode(buf)
	if blk == nil {
		return fmt.Errorf("no PEM data found in %v", f)
	}
	if len(rest) != 0 {
		return fmt.Errorf("trailing garbage after PEM encoded data")
	}
	if blk.Type != pemType {
		return fmt.Errorf("invalid PEM Type: '%v'", blk.Type)
	}
	return unmarshal(blk.Bytes)
}
