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
	"fmt"

	"github.com/pipeboard/pipeboard/internal/client"
)

// ClientRepository implements client.Store on PostgreSQL.
type ClientRepository struct {
	q Queryer
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *DB) *ClientRepository {
	return &ClientRepository{q: db.pool}
}

// Insert persists a new record and assigns the database-generated id.
func (r *ClientRepository) Insert(ctx context.Context, record *client.Record) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO clientes (razao_social, nome_fantasia, cidade, estado, vendedor, data_registro, ativo)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`,
		record.LegalName,
		record.TradeName,
		record.City,
		record.State,
		string(record.Representative),
		record.RegisteredAt,
		record.Active,
	).Scan(&record.ID)

	if err != nil {
		return fmt.Errorf("failed to insert client record: %w", err)
	}

	return nil
}

// ListActive retrieves all active records, newest first. Failures are
// reported as ErrStoreUnavailable so read paths can degrade to an empty
// view instead of erroring out.
func (r *ClientRepository) ListActive(ctx context.Context) ([]*client.Record, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, razao_social, nome_fantasia, cidade, estado, vendedor, data_registro, ativo
		FROM clientes
		WHERE ativo = TRUE
		ORDER BY data_registro DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", client.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var records []*client.Record
	for rows.Next() {
		var rec client.Record
		var vendedor string

		err := rows.Scan(
			&rec.ID,
			&rec.LegalName,
			&rec.TradeName,
			&rec.City,
			&rec.State,
			&vendedor,
			&rec.RegisteredAt,
			&rec.Active,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client record: %w", err)
		}

		rec.Representative = client.Representative(vendedor)
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", client.ErrStoreUnavailable, err)
	}

	return records, nil
}

// SoftDelete marks a record inactive by identifier.
func (r *ClientRepository) SoftDelete(ctx context.Context, id int64) error {
	result, err := r.q.Exec(ctx, `
		UPDATE clientes SET ativo = FALSE
		WHERE id = $1 AND ativo = TRUE
	`, id)

	if err != nil {
		return fmt.Errorf("failed to delete client record: %w", err)
	}

	if result.RowsAffected() == 0 {
		return client.ErrRecordNotFound
	}

	return nil
}
