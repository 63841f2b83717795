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

package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipeboard/pipeboard/internal/client"
)

func newRecord(rep client.Representative) *client.Record {
	return &client.Record{
		LegalName:      "Acme Ltda",
		TradeName:      "Acme",
		City:           "CAMPINAS",
		State:          "SP",
		Representative: rep,
		RegisteredAt:   time.Now().UTC(),
		Active:         true,
	}
}

func TestInsert_AssignsMonotonicIDs(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	first := newRecord(client.RepresentativeAngela)
	second := newRecord(client.RepresentativeDavid)

	require.NoError(t, s.Insert(ctx, first))
	require.NoError(t, s.Insert(ctx, second))

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestListActive_ReturnsCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, newRecord(client.RepresentativeAngela)))

	listed, err := s.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	// Mutating the snapshot must not leak back into the store
	listed[0].LegalName = "Mutated"

	again, err := s.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltda", again[0].LegalName)
}

func TestSoftDelete(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	rec := newRecord(client.RepresentativeAngela)
	require.NoError(t, s.Insert(ctx, rec))

	require.NoError(t, s.SoftDelete(ctx, rec.ID))

	listed, err := s.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestSoftDelete_UnknownID(t *testing.T) {
	s := NewStore()

	err := s.SoftDelete(context.Background(), 99)

	assert.ErrorIs(t, err, client.ErrRecordNotFound)
}

func TestSoftDelete_AlreadyDeleted(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	rec := newRecord(client.RepresentativeDavid)
	require.NoError(t, s.Insert(ctx, rec))
	require.NoError(t, s.SoftDelete(ctx, rec.ID))

	err := s.SoftDelete(ctx, rec.ID)

	assert.ErrorIs(t, err, client.ErrRecordNotFound)
}
