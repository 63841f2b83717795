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

package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Config holds metrics configuration
type Config struct {
	Enabled bool
}

// Meter wraps OpenTelemetry meter
type Meter struct {
	meter metric.Meter
}

// New creates a new meter instance
func New(ctx context.Context, cfg Config, serviceName string) (*Meter, error) {
	if !cfg.Enabled {
		return &Meter{
			meter: otel.Meter("noop"),
		}, nil
	}

	// Meter from the global meter provider; exporters are configured
	// by the deployment, not here.
	return &Meter{
		meter: otel.Meter(serviceName),
	}, nil
}

// Instruments holds the application's domain counters.
type Instruments struct {
	RecordsCreated     metric.Int64Counter
	RecordsDeleted     metric.Int64Counter
	ReportRequests     metric.Int64Counter
	AdminLoginFailures metric.Int64Counter
}

// NewInstruments creates the domain counters.
func NewInstruments(m *Meter) (*Instruments, error) {
	created, err := m.meter.Int64Counter("client_records_created_total",
		metric.WithDescription("Number of client records registered"))
	if err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}

	deleted, err := m.meter.Int64Counter("client_records_deleted_total",
		metric.WithDescription("Number of client records soft-deleted"))
	if err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}

	reports, err := m.meter.Int64Counter("performance_report_requests_total",
		metric.WithDescription("Number of performance report requests served"))
	if err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}

	loginFailures, err := m.meter.Int64Counter("admin_login_failures_total",
		metric.WithDescription("Number of rejected admin login attempts"))
	if err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}

	return &Instruments{
		RecordsCreated:     created,
		RecordsDeleted:     deleted,
		ReportRequests:     reports,
		AdminLoginFailures: loginFailures,
	}, nil
}
