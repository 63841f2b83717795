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

// Package memory implements client.Store on a mutex-guarded in-process
// slice. Throughput is not a concern; a single lock around all mutation
// is enough.
package memory

import (
	"context"
	"sync"

	"github.com/pipeboard/pipeboard/internal/client"
)

// Store implements client.Store in process memory.
type Store struct {
	mu      sync.Mutex
	nextID  int64
	records []*client.Record
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{nextID: 1}
}

// Insert assigns the next monotonic identifier and keeps a private copy
// of the record.
func (s *Store) Insert(ctx context.Context, record *client.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.ID = s.nextID
	s.nextID++

	kept := *record
	s.records = append(s.records, &kept)
	return nil
}

// ListActive returns copies of all active records. Mutating the result
// does not affect the store.
func (s *Store) ListActive(ctx context.Context) ([]*client.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*client.Record, 0, len(s.records))
	for _, rec := range s.records {
		if !rec.Active {
			continue
		}
		cp := *rec
		out = append(out, &cp)
	}
	return out, nil
}

// SoftDelete flips the record's active flag. The flip is one-way.
func (s *Store) SoftDelete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if rec.ID == id && rec.Active {
			rec.Active = false
			return nil
		}
	}
	return client.ErrRecordNotFound
}
