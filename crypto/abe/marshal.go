// marshal.go - fixed-layout serialization of the ABE structures
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
	"encoding/binary"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/naokirin/crypto-sample-go/constants"
	"github.com/naokirin/crypto-sample-go/crypto/ibe"
	Curve "github.com/jstuczyn/amcl/version3/go/amcl/BLS381"
)

// Attribute lists are encoded as a single count byte followed by one
// 2 byte big-endian length prefix per attribute string. The count byte caps
// a set at 255 attributes, which is beyond anything a conjunctive policy
// needs.

func marshalAttributes(attributes []string) ([]byte, error) {
	if len(attributes) > 255 {
		return nil, constants.ErrMarshalTooLongArray
	}
	data := []byte{byte(len(attributes))}
	for _, a := range attributes {
		if len(a) > 65535 {
			return nil, constants.ErrMarshalTooLongArray
		}
		var alen [2]byte
		binary.BigEndian.PutUint16(alen[:], uint16(len(a)))
		data = append(data, alen[:]...)
		data = append(data, a...)
	}
	return data, nil
}

// unmarshalAttributes decodes an attribute list from the front of data and
// returns the number of bytes consumed.
func unmarshalAttributes(data []byte) ([]string, int, error) {
	if len(data) < 1 {
		return nil, 0, constants.ErrUnmarshalLength
	}
	n := int(data[0])
	if n == 0 {
		return nil, 0, ErrEmptyPolicy
	}
	attributes := make([]string, n)
	off := 1
	for i := 0; i < n; i++ {
		if len(data) < off+2 {
			return nil, 0, constants.ErrUnmarshalLength
		}
		alen := int(binary.BigEndian.Uint16(data[off:]))
		off += 2
		if len(data) < off+alen {
			return nil, 0, constants.ErrUnmarshalLength
		}
		attributes[i] = string(data[off : off+alen])
		off += alen
	}
	return attributes, off, nil
}

// MarshalBinary is an implementation of a method on the
// BinaryMarshaler interface defined in https://golang.org/pkg/encoding/
func (pk *PrivateKey) MarshalBinary() ([]byte, error) {
	if !pk.Validate() {
		return nil, errors.New("the private key is malformed")
	}
	data, err := marshalAttributes(pk.attributes)
	if err != nil {
		return nil, err
	}
	ec2len := constants.ECP2Len
	points := make([]byte, len(pk.ds)*ec2len)
	for i, d := range pk.ds {
		d.ToBytes(points[i*ec2len:])
	}
	return append(data, points...), nil
}

// UnmarshalBinary is an implementation of a method on the
// BinaryUnmarshaler interface defined in https://golang.org/pkg/encoding/
func (pk *PrivateKey) UnmarshalBinary(data []byte) error {
	attributes, off, err := unmarshalAttributes(data)
	if err != nil {
		return err
	}
	ec2len := constants.ECP2Len
	if len(data) != off+len(attributes)*ec2len {
		return constants.ErrUnmarshalLength
	}
	ds := make([]*Curve.ECP2, len(attributes))
	for i := range ds {
		d := Curve.ECP2_fromBytes(data[off+i*ec2len:])
		if d.Is_infinity() {
			return ibe.ErrInvalidPoint
		}
		ds[i] = d
	}
	pk.attributes = attributes
	pk.ds = ds
	return nil
}

// MarshalBinary is an implementation of a method on the
// BinaryMarshaler interface defined in https://golang.org/pkg/encoding/
// As in the ibe package the masked payload carries no length prefix and
// extends to the end of the buffer.
func (c *Ciphertext) MarshalBinary() ([]byte, error) {
	if !c.Validate() || len(c.tag) != constants.TagLen {
		return nil, errors.New("the ciphertext is malformed")
	}
	data, err := marshalAttributes(c.attributes)
	if err != nil {
		return nil, err
	}
	eclen := constants.ECPLen
	rest := make([]byte, eclen+constants.TagLen+len(c.v))
	c.u.ToBytes(rest, true)
	copy(rest[eclen:], c.tag)
	copy(rest[eclen+constants.TagLen:], c.v)
	return append(data, rest...), nil
}

// UnmarshalBinary is an implementation of a method on the
// BinaryUnmarshaler interface defined in https://golang.org/pkg/encoding/
func (c *Ciphertext) UnmarshalBinary(data []byte) error {
	attributes, off, err := unmarshalAttributes(data)
	if err != nil {
		return err
	}
	eclen := constants.ECPLen
	if len(data) < off+eclen+constants.TagLen {
		return constants.ErrUnmarshalLength
	}
	u := Curve.ECP_fromBytes(data[off:])
	if u.Is_infinity() {
		return ibe.ErrInvalidPoint
	}
	tag := make([]byte, constants.TagLen)
	copy(tag, data[off+eclen:])
	v := make([]byte, len(data)-off-eclen-constants.TagLen)
	copy(v, data[off+eclen+constants.TagLen:])

	c.attributes = attributes
	c.u = u
	c.v = v
	c.tag = tag
	return nil
}

// ToPEMFile writes out the private key to a PEM file at path f.
func (pk *PrivateKey) ToPEMFile(f string) error {
	b, err := pk.MarshalBinary()
	if err != nil {
		return err
	}
	blk := &pem.Block{
		Type:  constants.ABEPrivateKeyType,
		Bytes: b,
	}
	return os.WriteFile(f, pem.EncodeToMemory(blk), 0600)
}

// FromPEMFile reads out the private key from a PEM file at path f.
func (pk *PrivateKey) FromPEMFile(f string) error {
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
	if blk.Type != constants.ABEPrivateKeyType {
		return fmt.Errorf("invalid PEM Type: '%v'", blk.Type)
	}
	return pk.UnmarshalBinary(blk.Bytes)
}
