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
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pipeboard/pipeboard/internal/audit"
)

// Service provides client registration business logic.
type Service struct {
	store       Store
	auditLogger audit.Logger
	now         func() time.Time
}

// NewService creates a new client service.
func NewService(store Store, auditLogger audit.Logger) *Service {
	return &Service{
		store:       store,
		auditLogger: auditLogger,
		now:         time.Now,
	}
}

// RegisterInput carries the five required fields of a registration form.
type RegisterInput struct {
	LegalName      string
	TradeName      string
	City           string
	State          string
	Representative string
}

// Register validates the input, normalizes city and state to uppercase,
// and persists a new active record with a creation timestamp.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Record, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	record := &Record{
		LegalName:      strings.TrimSpace(in.LegalName),
		TradeName:      strings.TrimSpace(in.TradeName),
		City:           strings.ToUpper(strings.TrimSpace(in.City)),
		State:          strings.ToUpper(strings.TrimSpace(in.State)),
		Representative: Representative(strings.TrimSpace(in.Representative)),
		RegisteredAt:   s.now().UTC(),
		Active:         true,
	}

	if err := s.store.Insert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to insert client record: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeRecordCreated,
		Resource: "client_record",
		Metadata: map[string]any{
			"record_id": record.ID,
			"vendedor":  string(record.Representative),
		},
	})

	return record, nil
}

// ListActive returns a snapshot of all active records.
func (s *Service) ListActive(ctx context.Context) ([]*Record, error) {
	return s.store.ListActive(ctx)
}

// Delete soft-deletes a record. Deleting an identifier that is unknown
// or already inactive returns ErrRecordNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeRecordDeleted,
		Resource: "client_record",
		Metadata: map[string]any{"record_id": id},
	})

	return nil
}

func validate(in RegisterInput) error {
	var verr ValidationError

	if strings.TrimSpace(in.LegalName) == "" {
		verr.Missing = append(verr.Missing, FieldLegalName)
	}
	if strings.TrimSpace(in.TradeName) == "" {
		verr.Missing = append(verr.Missing, FieldTradeName)
	}
	if strings.TrimSpace(in.City) == "" {
		verr.Missing = append(verr.Missing, FieldCity)
	}
	state := strings.TrimSpace(in.State)
	if state == "" {
		verr.Missing = append(verr.Missing, FieldState)
	} else if len([]rune(state)) != 2 {
		verr.Invalid = append(verr.Invalid, FieldState)
	}
	rep := strings.TrimSpace(in.Representative)
	if rep == "" {
		verr.Missing = append(verr.Missing, FieldRepresentative)
	} else if !Representative(rep).Valid() {
		verr.Invalid = append(verr.Invalid, FieldRepresentative)
	}

	if len(verr.Missing) > 0 || len(verr.Invalid) > 0 {
		return &verr
	}
	return nil
}
