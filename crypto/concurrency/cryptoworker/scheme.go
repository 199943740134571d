// scheme.go - concurrent variants of the scheme operations
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

package cryptoworker

import (
	"crypto/subtle"
	"sync"

	"github.com/naokirin/crypto-sample-go/constants"
	"github.com/naokirin/crypto-sample-go/crypto/abe"
	"github.com/naokirin/crypto-sample-go/crypto/concurrency/jobpacket"
	"github.com/naokirin/crypto-sample-go/crypto/ibe"
	"github.com/naokirin/crypto-sample-go/crypto/utils"
	"github.com/jstuczyn/amcl/version3/go/amcl"
	Curve "github.com/jstuczyn/amcl/version3/go/amcl/BLS381"
)

// sha used for hashing onto the curve and for the KDF/tag. Has to match the
// value used by the plain scheme functions or keys and ciphertexts would not
// be interchangeable between the two paths.
const sha = amcl.SHA256

// MuxParams is identical to normal params, but has an attached mutex, so that
// rng in bpgroup could be shared safely.
type MuxParams struct {
	*ibe.Params
	sync.Mutex
}

// Setup generates a fresh master key together with the public parameters.
// A single setup is not worth parallelizing; the result is wrapped so the
// attached rng can be shared between concurrent callers.
func (cw *Worker) Setup() (*ibe.MasterKey, *MuxParams, error) {
	mk, params, err := ibe.Setup()
	if err != nil {
		return nil, nil, err
	}
	return mk, &MuxParams{params, sync.Mutex{}}, nil
}

// Extract derives the private key for the given identity.
// The single G2 multiplication is pushed onto the job queue.
func (cw *Worker) Extract(mk *ibe.MasterKey, identity string) (*ibe.PrivateKey, error) {
	if !mk.Validate() {
		return nil, ibe.ErrSetupParams
	}
	qid, err := utils.HashStringToG2(sha, identity)
	if err != nil {
		return nil, err
	}
	outCh := make(chan interface{}, 1)
	cw.jobQueue <- jobpacket.MakeG2MulPacket(outCh, qid, mk.S())

	res := <-outCh
	return ibe.NewPrivateKey(res.(*Curve.ECP2)), nil
}

// Encrypt encrypts the message for the given identity. The G1 multiplication
// producing the masking point and the pairing run as separate jobs.
func (cw *Worker) Encrypt(params *MuxParams, identity string, message []byte) (*ibe.Ciphertext, error) {
	if !params.Validate() {
		return nil, ibe.ErrSetupParams
	}
	params.Lock()
	r := Curve.Randomnum(params.P(), params.G.Rng())
	params.Unlock()

	qid, err := utils.HashStringToG2(sha, identity)
	if err != nil {
		return nil, err
	}

	uCh := make(chan interface{}, 1)
	pairCh := make(chan interface{}, 1)
	cw.jobQueue <- jobpacket.MakeG1MulPacket(uCh, params.G1(), r)
	cw.jobQueue <- jobpacket.MakePairingPacket(pairCh, params.G, params.PPub(), qid)

	uRes := <-uCh
	pairRes := <-pairCh
	u := uRes.(*Curve.ECP)
	gt := Curve.GTpow(pairRes.(*Curve.FP12), r)

	v, tag, err := maskAndTag(gt, message)
	if err != nil {
		return nil, err
	}
	return ibe.NewCiphertext(u, v, tag), nil
}

// Decrypt recovers the message from the ciphertext.
func (cw *Worker) Decrypt(params *MuxParams, pk *ibe.PrivateKey, c *ibe.Ciphertext) ([]byte, error) {
	if !pk.Validate() || !c.Validate() {
		return nil, ibe.ErrSetupParams
	}
	outCh := make(chan interface{}, 1)
	cw.jobQueue <- jobpacket.MakePairingPacket(outCh, params.G, c.U(), pk.D())

	res := <-outCh
	gt := res.(*Curve.FP12)

	message, tag, err := unmaskAndTag(gt, c.V())
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare(tag, c.Tag()) != 1 {
		return nil, ibe.ErrIdentityMismatch
	}
	return message, nil
}

// KeyGen derives an attribute key with one G2 multiplication job per
// attribute. The per-attribute channels keep the results index-aligned with
// the attribute list.
func (cw *Worker) KeyGen(mk *ibe.MasterKey, attributes []string) (*abe.PrivateKey, error) {
	if !mk.Validate() {
		return nil, ibe.ErrSetupParams
	}
	attributes = normalizeAttributes(attributes)
	if len(attributes) == 0 {
		return nil, abe.ErrEmptyPolicy
	}

	dsChs := make([]chan interface{}, len(attributes))
	for i, a := range attributes {
		qa, err := utils.HashStringToG2(sha, a)
		if err != nil {
			return nil, err
		}
		dsChs[i] = make(chan interface{}, 1)
		cw.jobQueue <- jobpacket.MakeG2MulPacket(dsChs[i], qa, mk.S())
	}

	ds := make([]*Curve.ECP2, len(attributes))
	for i := range ds {
		res := <-dsChs[i]
		ds[i] = res.(*Curve.ECP2)
	}
	return abe.NewPrivateKey(attributes, ds), nil
}

// EncryptABE encrypts the message under a conjunctive policy with one
// pairing job per policy attribute. The masking secret is a product of the
// individual pairings, so the results can be multiplied in whatever order
// they arrive.
func (cw *Worker) EncryptABE(params *MuxParams, policy []string, message []byte) (*abe.Ciphertext, error) {
	if !params.Validate() {
		return nil, ibe.ErrSetupParams
	}
	policy = normalizeAttributes(policy)
	if len(policy) == 0 {
		return nil, abe.ErrEmptyPolicy
	}

	params.Lock()
	r := Curve.Randomnum(params.P(), params.G.Rng())
	params.Unlock()

	uCh := make(chan interface{}, 1)
	cw.jobQueue <- jobpacket.MakeG1MulPacket(uCh, params.G1(), r)

	pairCh := make(chan interface{}, len(policy))
	for _, a := range policy {
		qa, err := utils.HashStringToG2(sha, a)
		if err != nil {
			return nil, err
		}
		cw.jobQueue <- jobpacket.MakePairingPacket(pairCh, params.G, params.PPub(), qa)
	}

	var prod *Curve.FP12
	for range policy {
		res := <-pairCh
		gta := res.(*Curve.FP12)
		if prod == nil {
			prod = Curve.NewFP12copy(gta)
		} else {
			prod.Mul(gta)
		}
	}
	gt := Curve.GTpow(prod, r)

	uRes := <-uCh
	u := uRes.(*Curve.ECP)

	v, tag, err := maskAndTag(gt, message)
	if err != nil {
		return nil, err
	}
	return abe.NewCiphertext(policy, u, v, tag), nil
}

// DecryptABE recovers the message if the key attributes are a superset of
// the ciphertext policy, pairing each required key component with the
// masking point concurrently.
func (cw *Worker) DecryptABE(params *MuxParams, pk *abe.PrivateKey, c *abe.Ciphertext) ([]byte, error) {
	if !pk.Validate() || !c.Validate() {
		return nil, ibe.ErrSetupParams
	}
	byAttr := make(map[string]*Curve.ECP2, len(pk.Attributes()))
	for i, a := range pk.Attributes() {
		byAttr[a] = pk.Ds()[i]
	}

	pairCh := make(chan interface{}, len(c.Attributes()))
	for _, a := range c.Attributes() {
		d, ok := byAttr[a]
		if !ok {
			return nil, abe.ErrAttributeMismatch
		}
		cw.jobQueue <- jobpacket.MakePairingPacket(pairCh, params.G, c.U(), d)
	}

	var gt *Curve.FP12
	for range c.Attributes() {
		res := <-pairCh
		gta := res.(*Curve.FP12)
		if gt == nil {
			gt = Curve.NewFP12copy(gta)
		} else {
			gt.Mul(gta)
		}
	}

	message, tag, err := unmaskAndTag(gt, c.V())
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare(tag, c.Tag()) != 1 {
		return nil, abe.ErrAttributeMismatch
	}
	return message, nil
}

// DecryptKPABE recovers the message in the key-policy setting, where the
// ciphertext attribute set has to equal the key policy exactly.
func (cw *Worker) DecryptKPABE(params *MuxParams, pk *abe.PrivateKey, c *abe.Ciphertext) ([]byte, error) {
	if !pk.Validate() || !c.Validate() {
		return nil, ibe.ErrSetupParams
	}
	if !sameAttributeSet(pk.Attributes(), c.Attributes()) {
		return nil, abe.ErrAttributeMismatch
	}
	return cw.DecryptABE(params, pk, c)
}

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

func maskAndTag(gt *Curve.FP12, message []byte) ([]byte, []byte, error) {
	gtb := make([]byte, constants.GTLen)
	gt.ToBytes(gtb)

	mask, err := utils.KdfStream(sha, gtb, len(message))
	if err != nil {
		return nil, nil, err
	}
	tag, err := utils.MakeTag(sha, gtb, message)
	if err != nil {
		return nil, nil, err
	}
	return utils.XorBytes(message, mask), tag, nil
}

func unmaskAndTag(gt *Curve.FP12, v []byte) ([]byte, []byte, error) {
	gtb := make([]byte, constants.GTLen)
	gt.ToBytes(gtb)

	mask, err := utils.KdfStream(sha, gtb, len(v))
	if err != nil {
		return nil, nil, err
	}
	message := utils.XorBytes(v, mask)
	tag, err := utils.MakeTag(sha, gtb, message)
	if err != nil {
		return nil, nil, err
	}
	return message, tag, nil
}
