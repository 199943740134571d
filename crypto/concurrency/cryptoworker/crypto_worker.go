// crypto_worker.go - wrapper for running scheme operations through the job queue
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

// Package cryptoworker is a wrapper for computing scheme operations
// concurrently, such that the callee does not need to be concerned with
// system-wide params.
package cryptoworker

import (
	"sync"

	"github.com/naokirin/crypto-sample-go/crypto/abe"
	"github.com/naokirin/crypto-sample-go/crypto/concurrency/jobpacket"
	"github.com/naokirin/crypto-sample-go/crypto/ibe"
)

// Worker allows writing expensive group operations to a shared job queue,
// so that they could be run concurrently.
type Worker struct {
	jobQueue  chan<- *jobpacket.JobPacket
	muxParams *MuxParams
}

// ExtractWrapper wraps the provided arguments with pre-generated params.
func (cw *Worker) ExtractWrapper(mk *ibe.MasterKey, identity string) (*ibe.PrivateKey, error) {
	return cw.Extract(mk, identity)
}

// EncryptWrapper wraps the provided arguments with pre-generated params.
func (cw *Worker) EncryptWrapper(identity string, message []byte) (*ibe.Ciphertext, error) {
	return cw.Encrypt(cw.muxParams, identity, message)
}

// DecryptWrapper wraps the provided arguments with pre-generated params.
func (cw *Worker) DecryptWrapper(pk *ibe.PrivateKey, c *ibe.Ciphertext) ([]byte, error) {
	return cw.Decrypt(cw.muxParams, pk, c)
}

// KeyGenWrapper wraps the provided arguments with pre-generated params.
func (cw *Worker) KeyGenWrapper(mk *ibe.MasterKey, attributes []string) (*abe.PrivateKey, error) {
	return cw.KeyGen(mk, attributes)
}

// EncryptABEWrapper wraps the provided arguments with pre-generated params.
func (cw *Worker) EncryptABEWrapper(policy []string, message []byte) (*abe.Ciphertext, error) {
	return cw.EncryptABE(cw.muxParams, policy, message)
}

// DecryptABEWrapper wraps the provided arguments with pre-generated params.
func (cw *Worker) DecryptABEWrapper(pk *abe.PrivateKey, c *abe.Ciphertext) ([]byte, error) {
	return cw.DecryptABE(cw.muxParams, pk, c)
}

// DecryptKPABEWrapper wraps the provided arguments with pre-generated params.
func (cw *Worker) DecryptKPABEWrapper(pk *abe.PrivateKey, c *abe.Ciphertext) ([]byte, error) {
	return cw.DecryptKPABE(cw.muxParams, pk, c)
}

// New creates new instance of a cryptoWorker.
func New(jobQueue chan<- *jobpacket.JobPacket, params *ibe.Params) *Worker {
	muxParams := &MuxParams{params, sync.Mutex{}}
	cw := &Worker{
		jobQueue:  jobQueue,
		muxParams: muxParams,
	}

	return cw
}
