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

package client

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Representative identifies the sales agent a record is attributed to.
// The set is fixed: two agents, one SDR and one BDR.
type Representative string

const (
	RepresentativeAngela Representative = "Angela"
	RepresentativeDavid  Representative = "David"
)

// Representatives returns the fixed set, in display order.
func Representatives() []Representative {
	return []Representative{RepresentativeAngela, RepresentativeDavid}
}

// Valid reports whether r is a member of the fixed set.
func (r Representative) Valid() bool {
	return r == RepresentativeAngela || r == RepresentativeDavid
}

// Label returns the display label used by the dashboard.
func (r Representative) Label() string {
	switch r {
	case RepresentativeAngela:
		return "Angela (SDR)"
	case RepresentativeDavid:
		return "David (BDR)"
	}
	return string(r)
}

// Record is a registered client. Records are immutable after creation;
// the only state change is the one-way flip of Active to false.
type Record struct {
	ID             int64          `json:"id"`
	LegalName      string         `json:"razao_social"`
	TradeName      string         `json:"nome_fantasia"`
	City           string         `json:"cidade"`
	State          string         `json:"estado"`
	Representative Representative `json:"vendedor"`
	RegisteredAt   time.Time      `json:"data_registro"`
	Active         bool           `json:"-"`
}

// Domain errors
var (
	ErrRecordNotFound   = errors.New("client record not found")
	ErrStoreUnavailable = errors.New("client store unavailable")
)

// Required-field labels, as shown to the user.
const (
	FieldLegalName      = "Razão Social"
	FieldTradeName      = "Nome Fantasia"
	FieldCity           = "Cidade"
	FieldState          = "Estado"
	FieldRepresentative = "Vendedor"
)

// ValidationError reports which required fields were missing or invalid
// on a registration attempt. The store is never touched when one is returned.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, fmt.Sprintf("invalid fields: %s", strings.Join(e.Invalid, ", ")))
	}
	if len(parts) == 0 {
		return "validation error"
	}
	return strings.Join(parts, "; ")
}
