// main_sample.go - sample usage of the identity and attribute based schemes
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

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/naokirin/crypto-sample-go/crypto/abe"
	"github.com/naokirin/crypto-sample-go/crypto/concurrency/cryptoworker"
	"github.com/naokirin/crypto-sample-go/crypto/concurrency/jobqueue"
	"github.com/naokirin/crypto-sample-go/crypto/concurrency/jobworker"
	"github.com/naokirin/crypto-sample-go/crypto/ibe"
	"github.com/naokirin/crypto-sample-go/logger"
	"github.com/naokirin/crypto-sample-go/sampleclientmain/config"
)

// nolint: lll, errcheck
func main() {
	cfgFile := flag.String("f", "config.toml", "Path to the sample client config file.")
	flag.Parse()

	cfg, err := config.LoadFile(*cfgFile)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Failed to load config file '%v': %v\n", *cfgFile, err)
			os.Exit(-1)
		}
		// no config file; run with the defaults
		cfg, err = config.LoadBinary(nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create default config: %v\n", err)
			os.Exit(-1)
		}
	}

	log, err := logger.New(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.Disable)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(-1)
	}
	sampleLog := log.GetLogger("SampleClient")

	mk, params, err := ibe.Setup()
	if err != nil {
		sampleLog.Criticalf("Failed to run setup: %v", err)
		os.Exit(-1)
	}

	jq := jobqueue.New()
	workers := make([]*jobworker.Worker, cfg.Debug.NumJobWorkers)
	for i := range workers {
		workers[i] = jobworker.New(jq.Out(), uint64(i+1), log)
	}
	sampleLog.Noticef("Started %v job worker(s)", cfg.Debug.NumJobWorkers)

	cw := cryptoworker.New(jq.In(), params)

	// identity-based flow
	identity := cfg.Client.Identity
	message := []byte("Hello, IBE!")

	c, err := cw.EncryptWrapper(identity, message)
	if err != nil {
		sampleLog.Criticalf("Failed to encrypt: %v", err)
		os.Exit(-1)
	}
	pk, err := cw.ExtractWrapper(mk, identity)
	if err != nil {
		sampleLog.Criticalf("Failed to extract key: %v", err)
		os.Exit(-1)
	}
	recovered, err := cw.DecryptWrapper(pk, c)
	if err != nil {
		sampleLog.Criticalf("Failed to decrypt: %v", err)
		os.Exit(-1)
	}
	sampleLog.Noticef("Recovered message for %v: %v", identity, string(recovered))

	wrongPk, err := cw.ExtractWrapper(mk, "other@example.com")
	if err != nil {
		sampleLog.Criticalf("Failed to extract key: %v", err)
		os.Exit(-1)
	}
	if _, err = cw.DecryptWrapper(wrongPk, c); err != nil {
		sampleLog.Noticef("Key for another identity was rejected: %v", err)
	}

	// ciphertext-policy flow
	policy := cfg.Client.Policy
	abeMessage := []byte("Hello, ABE!")

	abeC, err := cw.EncryptABEWrapper(policy, abeMessage)
	if err != nil {
		sampleLog.Criticalf("Failed to encrypt under policy %v: %v", policy, err)
		os.Exit(-1)
	}
	abePk, err := cw.KeyGenWrapper(mk, policy)
	if err != nil {
		sampleLog.Criticalf("Failed to generate attribute key: %v", err)
		os.Exit(-1)
	}
	abeRecovered, err := cw.DecryptABEWrapper(abePk, abeC)
	if err != nil {
		sampleLog.Criticalf("Failed to decrypt under policy %v: %v", policy, err)
		os.Exit(-1)
	}
	sampleLog.Noticef("Recovered message under policy %v: %v", policy, string(abeRecovered))

	if len(policy) > 1 {
		partialPk, err := cw.KeyGenWrapper(mk, policy[:1])
		if err != nil {
			sampleLog.Criticalf("Failed to generate attribute key: %v", err)
			os.Exit(-1)
		}
		if _, err = cw.DecryptABEWrapper(partialPk, abeC); err != nil {
			sampleLog.Noticef("Key missing a policy attribute was rejected: %v", err)
		}
	}

	// key-policy flow; uses the plain scheme path
	kpPolicy := cfg.Client.KPPolicy
	kpPk, err := abe.KPKeyGen(mk, kpPolicy)
	if err != nil {
		sampleLog.Criticalf("Failed to generate key-policy key: %v", err)
		os.Exit(-1)
	}
	kpC, err := abe.KPEncrypt(params, kpPolicy, abeMessage)
	if err != nil {
		sampleLog.Criticalf("Failed to encrypt under attributes %v: %v", kpPolicy, err)
		os.Exit(-1)
	}
	kpRecovered, err := abe.KPDecrypt(kpPk, kpC)
	if err != nil {
		sampleLog.Criticalf("Failed to decrypt with key policy %v: %v", kpPolicy, err)
		os.Exit(-1)
	}
	sampleLog.Noticef("Recovered message with key policy %v: %v", kpPolicy, string(kpRecovered))

	if cfg.Client.KeyDirectory != "" {
		if err := os.MkdirAll(cfg.Client.KeyDirectory, 0700); err != nil {
			sampleLog.Errorf("Failed to create key directory: %v", err)
		} else {
			mkFile := filepath.Join(cfg.Client.KeyDirectory, "master.pem")
			paramsFile := filepath.Join(cfg.Client.KeyDirectory, "params.pem")
			pkFile := filepath.Join(cfg.Client.KeyDirectory, "identity_key.pem")
			abePkFile := filepath.Join(cfg.Client.KeyDirectory, "attribute_key.pem")

			if err := mk.ToPEMFile(mkFile); err != nil {
				sampleLog.Errorf("Failed to write master key: %v", err)
			}
			if err := params.ToPEMFile(paramsFile); err != nil {
				sampleLog.Errorf("Failed to write public parameters: %v", err)
			}
			if err := pk.ToPEMFile(pkFile); err != nil {
				sampleLog.Errorf("Failed to write identity key: %v", err)
			}
			if err := abePk.ToPEMFile(abePkFile); err != nil {
				sampleLog.Errorf("Failed to write attribute key: %v", err)
			}
			sampleLog.Noticef("Wrote key material to %v", cfg.Client.KeyDirectory)
		}
	}

	for _, w := range workers {
		w.Halt()
	}
	jq.Close()
	sampleLog.Notice("All done")
}
