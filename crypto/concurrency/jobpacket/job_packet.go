// job_packet.go - unit of work processed by the job workers
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

// Package jobpacket defines the packets written to the job queue together
// with constructors for the expensive group operations the schemes
// parallelize.
package jobpacket

import (
	"github.com/naokirin/crypto-sample-go/crypto/bpgroup"
	Curve "github.com/jstuczyn/amcl/version3/go/amcl/BLS381"
)

// JobPacket encapsulates a single unit of work. The result of Op, or the
// error it produced, is written to OutCh; the reader distinguishes the two
// cases with a type assertion.
type JobPacket struct {
	OutCh chan<- interface{}
	Op    func() (interface{}, error)
}

// New creates a new JobPacket with the provided operation.
func New(outCh chan<- interface{}, op func() (interface{}, error)) *JobPacket {
	return &JobPacket{
		OutCh: outCh,
		Op:    op,
	}
}

// MakeG1MulPacket creates a new JobPacket for a G1 scalar multiplication.
func MakeG1MulPacket(outCh chan<- interface{}, g1 *Curve.ECP, s *Curve.BIG) *JobPacket {
	op := func() (interface{}, error) {
		return Curve.G1mul(g1, s), nil
	}
	return New(outCh, op)
}

// MakeG2MulPacket creates a new JobPacket for a G2 scalar multiplication.
func MakeG2MulPacket(outCh chan<- interface{}, g2 *Curve.ECP2, s *Curve.BIG) *JobPacket {
	op := func() (interface{}, error) {
		return Curve.G2mul(g2, s), nil
	}
	return New(outCh, op)
}

// MakePairingPacket creates a new JobPacket for computing a single pairing.
func MakePairingPacket(outCh chan<- interface{}, G *bpgroup.BpGroup, g1 *Curve.ECP, g2 *Curve.ECP2) *JobPacket {
	op := func() (interface{}, error) {
		return G.Pair(g1, g2), nil
	}
	return New(outCh, op)
}
