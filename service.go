// Copyright 2025 The Witness Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vts

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dropbox/godropbox/time2"
	"github.com/in-toto/go-vts/cryptoutil"
	"github.com/in-toto/go-vts/log"
	"github.com/in-toto/go-vts/protocol"
)

var ErrServiceClosed = errors.New("signing service is closed")

// ErrKeyUnavailable is returned when the service has no usable signing key. It
// is fatal to the request that hit it.
type ErrKeyUnavailable struct {
	Err error
}

func (e ErrKeyUnavailable) Error() string {
	return fmt.Sprintf("signing key unavailable: %v", e.Err)
}

func (e ErrKeyUnavailable) Unwrap() error {
	return e.Err
}

type serviceOptions struct {
	clock time2.Clock
}

type ServiceOption func(*serviceOptions)

// ServiceWithClock overrides the clock timestamps are read from.
func ServiceWithClock(clock time2.Clock) ServiceOption {
	return func(so *serviceOptions) {
		if clock != nil {
			so.clock = clock
		}
	}
}

// Service signs messages together with the time it received them. It holds one
// KeyPair for its whole lifetime and only mutates it in Close, so Sign and Key
// may be called from any number of goroutines.
type Service struct {
	kp        *cryptoutil.KeyPair
	signer    cryptoutil.Signer
	publicKey string
	clock     time2.Clock
	mu        sync.RWMutex
	closed    bool
}

func NewService(kp *cryptoutil.KeyPair, opts ...ServiceOption) (*Service, error) {
	if kp == nil {
		return nil, ErrKeyUnavailable{Err: errors.New("no key pair provided")}
	}

	options := &serviceOptions{
		clock: time2.DefaultClock,
	}

	for _, opt := range opts {
		opt(options)
	}

	signer, err := cryptoutil.NewSigner(kp)
	if err != nil {
		return nil, ErrKeyUnavailable{Err: err}
	}

	return &Service{
		kp:        kp,
		signer:    signer,
		publicKey: protocol.EncodeVerificationKey(kp.VerificationKey()),
		clock:     options.clock,
	}, nil
}

// NewServiceFromBytes reconstructs the KeyPair once from its raw encodings.
func NewServiceFromBytes(signing, verification []byte, opts ...ServiceOption) (*Service, error) {
	kp, err := cryptoutil.KeyPairFromBytes(signing, verification)
	if err != nil {
		return nil, ErrKeyUnavailable{Err: err}
	}

	return NewService(kp, opts...)
}

// Sign timestamps message. The clock is read exactly once and the formatted
// string is used both in the signed bytes and in the response.
func (s *Service) Sign(ctx context.Context, message string) (protocol.SignResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return protocol.SignResponse{}, ErrKeyUnavailable{Err: ErrServiceClosed}
	}

	timeSigned := protocol.FormatTimestamp(s.clock.Now())
	payload := protocol.BuildSignedPayload(message, timeSigned)
	sig, err := s.signer.Sign(ctx, payload)
	if err != nil {
		return protocol.SignResponse{}, fmt.Errorf("failed to sign message: %w", err)
	}

	parsed, err := cryptoutil.ParseSignature(sig)
	if err != nil {
		return protocol.SignResponse{}, fmt.Errorf("signer produced an invalid signature: %w", err)
	}

	resp := protocol.SignResponse{
		Request:    protocol.RequestPost,
		Message:    message,
		TimeSigned: timeSigned,
		Signature:  protocol.EncodeSignature(parsed),
	}

	log.Debugf("signed message of %d bytes at %s", len(message), timeSigned)
	return resp, nil
}

// Key returns the verification key. PublicKey is identical on every call.
func (s *Service) Key() protocol.KeyResponse {
	return protocol.KeyResponse{
		Request:       protocol.RequestGet,
		TimeRequested: protocol.FormatTimestamp(s.clock.Now()),
		PublicKey:     s.publicKey,
	}
}

func (s *Service) PublicKey() *cryptoutil.VerificationKey {
	return s.kp.VerificationKey()
}

func (s *Service) KeyID() (string, error) {
	return s.signer.KeyID()
}

// Close zeroes the signing key once every in-flight Sign has returned. Later
// calls to Sign fail with ErrKeyUnavailable.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}

	s.closed = true
	s.kp.Zero()
	return nil
}
