// constants.go - Set of system-wide constants.
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

// Package constants declares system-wide constants.
package constants

import (
	"errors"

	Curve "github.com/jstuczyn/amcl/version3/go/amcl/BLS381"
)

var (
	// MB represents number of bytes each BIG takes
	MB = int(Curve.MODBYTES)

	// BIGLen is alias for MB
	BIGLen = MB

	// ECPLen represents number of bytes each compressed ECP takes
	ECPLen = MB + 1

	// ECP2Len represents number of bytes each ECP2 takes
	ECP2Len = MB * 4

	// GTLen represents number of bytes each FP12 takes
	GTLen = MB * 12
)

// TagLen is the length of the integrity tag appended to every ciphertext.
const TagLen = 32

// PEM block types for the key material persisted to disk.
const (
	MasterKeyType     = "IBE MASTER KEY"
	PublicParamsType  = "IBE PUBLIC PARAMETERS"
	PrivateKeyType    = "IBE PRIVATE KEY"
	ABEPrivateKeyType = "ABE PRIVATE KEY"
)

var (
	// ErrUnmarshalLength is returned when the byte array to unmarshal
	// has size inconsistent with the fixed layout of the structure.
	ErrUnmarshalLength = errors.New("the byte array provided is incomplete")

	// ErrMarshalTooLongArray is returned if slice to be encoded has more than 255 elements (size of uint8).
	// There isn't really a point in trying to support longer structures.
	ErrMarshalTooLongArray = errors.New("the array in the struct has more than 255 elements")
)
