// utils.go - auxiliary hash-to-group and key derivation functions
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

// Package utils provides auxiliary functions used by the IBE and ABE schemes:
// deterministic hashing onto the curve groups and derivation of symmetric
// material from pairing outputs.
package utils

import (
	"encoding/binary"
	"errors"

	"github.com/naokirin/crypto-sample-go/constants"
	"github.com/jstuczyn/amcl/version3/go/amcl"
	Curve "github.com/jstuczyn/amcl/version3/go/amcl/BLS381"
)

// maxMapAttempts bounds the counter used to retry mapping a digest onto the
// group. A single retry fires with probability ~2^-256, so running out is
// not a condition any caller is expected to see.
const maxMapAttempts = 256

var (
	// ErrHashInvalidSha is returned on hash request with unsupported sha value.
	ErrHashInvalidSha = errors.New("invalid sha value provided")

	// ErrMapToPoint is returned when the bounded retry counter is exhausted
	// without producing a non-trivial group element.
	ErrMapToPoint = errors.New("failed to map digest to a non-trivial group element")
)

// HashBytes takes a bytes message and returns its SHA2 digest.
func HashBytes(sha int, b []byte) ([]byte, error) {
	var R []byte
	switch sha {
	case amcl.SHA256:
		H := amcl.NewHASH256()
		H.Process_array(b)
		R = H.Hash()
	case amcl.SHA384:
		H := amcl.NewHASH384()
		H.Process_array(b)
		R = H.Hash()
	case amcl.SHA512:
		H := amcl.NewHASH512()
		H.Process_array(b)
		R = H.Hash()
	}
	if R == nil {
		return nil, ErrHashInvalidSha
	}
	return R, nil
}

// digestToBIG packs a digest into a MODBYTES-long buffer, right-aligning
// shorter digests, and interprets it as a BIG.
func digestToBIG(sha int, digest []byte) *Curve.BIG {
	var W [Curve.MODBYTES]byte
	const RM = int(Curve.MODBYTES)
	if sha >= RM {
		copy(W[:], digest[:RM])
	} else {
		copy(W[RM-sha:], digest[:sha])
	}
	return Curve.FromBytes(W[:])
}

// HashBytesToG1 hashes the byte message onto a G1 point.
func HashBytesToG1(sha int, b []byte) (*Curve.ECP, error) {
	R, err := HashBytes(sha, b)
	if err != nil {
		return nil, err
	}
	const RM = int(Curve.MODBYTES)
	var W [RM]byte
	if sha >= RM {
		copy(W[:], R[:RM])
	} else {
		copy(W[RM-sha:], R[:sha])
	}
	return Curve.ECP_mapit(W[:]), nil
}

// HashStringToG1 hashes the string onto a G1 point.
func HashStringToG1(sha int, m string) (*Curve.ECP, error) {
	return HashBytesToG1(sha, []byte(m))
}

// HashBytesToG2 deterministically hashes the byte message onto a G2 point.
// The digest is reduced into a scalar modulo the group order and applied to
// the G2 generator; a digest reducing to zero (and hence the point at
// infinity) is retried with an incremented counter byte appended to the
// input, so the function is total for any practical purpose.
func HashBytesToG2(sha int, b []byte) (*Curve.ECP2, error) {
	ord := Curve.NewBIGints(Curve.CURVE_Order)
	zero := Curve.NewBIG()
	input := make([]byte, len(b)+1)
	copy(input, b)
	for ctr := 0; ctr < maxMapAttempts; ctr++ {
		input[len(b)] = byte(ctr)
		R, err := HashBytes(sha, input)
		if err != nil {
			return nil, err
		}
		h := digestToBIG(sha, R)
		h.Mod(ord)
		if Curve.Comp(h, zero) == 0 {
			continue
		}
		q := Curve.G2mul(Curve.ECP2_generator(), h)
		if q.Is_infinity() {
			continue
		}
		return q, nil
	}
	return nil, ErrMapToPoint
}

// HashStringToG2 deterministically hashes the string onto a G2 point.
func HashStringToG2(sha int, m string) (*Curve.ECP2, error) {
	return HashBytesToG2(sha, []byte(m))
}

// KdfStream stretches the seed into an n-byte mask by hashing the seed
// together with a big-endian block counter. It is used to turn a pairing
// output into a masking stream matching the message length.
func KdfStream(sha int, seed []byte, n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.New("negative stream length requested")
	}
	out := make([]byte, 0, n)
	block := make([]byte, len(seed)+4)
	copy(block, seed)
	for ctr := uint32(0); len(out) < n; ctr++ {
		binary.BigEndian.PutUint32(block[len(seed):], ctr)
		R, err := HashBytes(sha, block)
		if err != nil {
			return nil, err
		}
		out = append(out, R...)
	}
	return out[:n], nil
}

// XorBytes XORs the message with the mask. Both slices must have equal length.
func XorBytes(msg, mask []byte) []byte {
	out := make([]byte, len(msg))
	for i := range msg {
		out[i] = msg[i] ^ mask[i]
	}
	return out
}

// tagDomain separates the integrity tag inputs from the masking stream.
var tagDomain = []byte("ciphertext-integrity-tag-v1")

// MakeTag computes the integrity tag over the plaintext, keyed by the shared
// pairing secret. Decrypt recomputes it after unmasking to distinguish a
// mismatched key from a successful decryption.
func MakeTag(sha int, secret []byte, plaintext []byte) ([]byte, error) {
	buf := make([]byte, 0, len(tagDomain)+len(secret)+len(plaintext))
	buf = append(buf, tagDomain...)
	buf = append(buf, secret...)
	buf = append(buf, plaintext...)
	R, err := HashBytes(sha, buf)
	if err != nil {
		return nil, err
	}
	return R[:constants.TagLen], nil
}
