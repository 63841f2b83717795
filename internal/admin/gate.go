// Copyright 2026 The Pipeboard Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package admin implements the admin-mode gate: a three-state machine
// (logged out, credential entry, logged in) whose LoggedIn state enables
// the delete affordance in the record table.
package admin

import "errors"

// State is the gate's position in the login flow.
type State string

const (
	StateLoggedOut State = "logged_out"
	StateModalOpen State = "modal_open"
	StateLoggedIn  State = "logged_in"
)

// Gate errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotAccepting       = errors.New("gate is not accepting credentials")
)

// Gate tracks one admin login flow. It is not safe for concurrent use;
// each session owns its own gate.
type Gate struct {
	verifier CredentialVerifier
	state    State
}

// NewGate creates a gate in the LoggedOut state.
func NewGate(verifier CredentialVerifier) *Gate {
	return &Gate{verifier: verifier, state: StateLoggedOut}
}

// State returns the current state.
func (g *Gate) State() State {
	return g.state
}

// RequestAdmin opens the credential modal. Requesting while already
// logged in or already entering credentials leaves the state unchanged.
func (g *Gate) RequestAdmin() State {
	if g.state == StateLoggedOut {
		g.state = StateModalOpen
	}
	return g.state
}

// Submit checks the credential pair. On a match the gate moves to
// LoggedIn; on a mismatch it stays in ModalOpen and returns
// ErrInvalidCredentials so the caller can surface the error without
// closing the modal.
func (g *Gate) Submit(username, password string) error {
	if g.state != StateModalOpen {
		return ErrNotAccepting
	}

	ok, err := g.verifier.Verify(username, password)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCredentials
	}

	g.state = StateLoggedIn
	return nil
}

// Logout returns the gate to LoggedOut from any state.
func (g *Gate) Logout() {
	g.state = StateLoggedOut
}

// DeleteEnabled reports whether the delete affordance is visible.
func (g *Gate) DeleteEnabled() bool {
	return g.state == StateLoggedIn
}
