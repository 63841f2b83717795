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

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipeboard/pipeboard/internal/client"
)

func newMockRepository(t *testing.T) (*ClientRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &ClientRepository{q: mock}, mock
}

func TestInsert_ReturnsGeneratedID(t *testing.T) {
	repo, mock := newMockRepository(t)

	registeredAt := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	record := &client.Record{
		LegalName:      "Acme Ltda",
		TradeName:      "Acme",
		City:           "CAMPINAS",
		State:          "SP",
		Representative: client.RepresentativeAngela,
		RegisteredAt:   registeredAt,
		Active:         true,
	}

	mock.ExpectQuery("INSERT INTO clientes").
		WithArgs("Acme Ltda", "Acme", "CAMPINAS", "SP", "Angela", registeredAt, true).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	err := repo.Insert(context.Background(), record)

	require.NoError(t, err)
	assert.Equal(t, int64(7), record.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_QueryError(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("INSERT INTO clientes").
		WillReturnError(errors.New("connection refused"))

	err := repo.Insert(context.Background(), &client.Record{
		LegalName:      "Acme Ltda",
		TradeName:      "Acme",
		City:           "CAMPINAS",
		State:          "SP",
		Representative: client.RepresentativeAngela,
		Active:         true,
	})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListActive_ReturnsRecords(t *testing.T) {
	repo, mock := newMockRepository(t)

	registeredAt := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{
		"id", "razao_social", "nome_fantasia", "cidade", "estado", "vendedor", "data_registro", "ativo",
	}).
		AddRow(int64(2), "Beta Ltda", "Beta", "SANTOS", "SP", "David", registeredAt, true).
		AddRow(int64(1), "Acme Ltda", "Acme", "CAMPINAS", "SP", "Angela", registeredAt.Add(-24*time.Hour), true)

	mock.ExpectQuery("SELECT id, razao_social").WillReturnRows(rows)

	records, err := repo.ListActive(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(2), records[0].ID)
	assert.Equal(t, client.RepresentativeDavid, records[0].Representative)
	assert.Equal(t, "Acme Ltda", records[1].LegalName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListActive_QueryErrorIsStoreUnavailable(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT id, razao_social").
		WillReturnError(errors.New("connection refused"))

	_, err := repo.ListActive(context.Background())

	assert.ErrorIs(t, err, client.ErrStoreUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDelete_Success(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec("UPDATE clientes SET ativo = FALSE").
		WithArgs(int64(42)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.SoftDelete(context.Background(), 42)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDelete_NoActiveRow(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec("UPDATE clientes SET ativo = FALSE").
		WithArgs(int64(99)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.SoftDelete(context.Background(), 99)

	assert.ErrorIs(t, err, client.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDelete_ExecError(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec("UPDATE clientes SET ativo = FALSE").
		WithArgs(int64(42)).
		WillReturnError(errors.New("connection refused"))

	err := repo.SoftDelete(context.Background(), 42)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, client.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
