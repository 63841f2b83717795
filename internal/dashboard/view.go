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

// Package dashboard builds the view models the front end renders: the
// paginated client table (with its admin-only delete column) and the
// per-representative chart panels with KPI cards. Everything here is a
// pure function of the record set and the filter parameters.
package dashboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/pipeboard/pipeboard/internal/client"
	"github.com/pipeboard/pipeboard/internal/report"
)

// PageSize is the fixed table page size.
const PageSize = 10

// User-facing texts. The front end renders them verbatim.
const (
	EmptyStateText   = "Sem dados para exibir"
	deleteActionLink = "[Excluir](#)"
)

// Column describes one table column.
type Column struct {
	Name         string `json:"name"`
	ID           string `json:"id"`
	Presentation string `json:"presentation,omitempty"`
}

// Row is one table row. Action carries the markdown delete link and is
// only set in admin mode.
type Row struct {
	ID             int64     `json:"id"`
	LegalName      string    `json:"razao_social"`
	TradeName      string    `json:"nome_fantasia"`
	City           string    `json:"cidade"`
	State          string    `json:"estado"`
	Representative string    `json:"vendedor"`
	RegisteredAt   time.Time `json:"data_registro"`
	Action         string    `json:"acao,omitempty"`
}

// TableView is the paginated client table.
type TableView struct {
	Columns      []Column `json:"columns"`
	Rows         []Row    `json:"rows"`
	Page         int      `json:"page"`
	PageSize     int      `json:"page_size"`
	TotalPages   int      `json:"total_pages"`
	TotalRecords int      `json:"total_records"`
}

// KPICard is the scalar total displayed alongside a chart.
type KPICard struct {
	Title string `json:"title"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// Panel is one representative's chart plus KPI card.
type Panel struct {
	Representative string          `json:"vendedor"`
	Label          string          `json:"label"`
	KPI            KPICard         `json:"kpi"`
	Series         []report.Bucket `json:"series"`
	Empty          bool            `json:"empty"`
	EmptyText      string          `json:"empty_text,omitempty"`
}

// BuildTable sorts records newest first, paginates, and appends the
// delete column when admin mode is on. Page numbers are 1-based; an
// out-of-range page yields an empty row set.
func BuildTable(records []*client.Record, page int, admin bool) TableView {
	sorted := make([]*client.Record, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].RegisteredAt.After(sorted[j].RegisteredAt)
	})

	if page < 1 {
		page = 1
	}
	total := len(sorted)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages == 0 {
		totalPages = 1
	}

	view := TableView{
		Columns:      columns(admin),
		Rows:         []Row{},
		Page:         page,
		PageSize:     PageSize,
		TotalPages:   totalPages,
		TotalRecords: total,
	}

	start := (page - 1) * PageSize
	if start >= total {
		return view
	}
	end := start + PageSize
	if end > total {
		end = total
	}

	for _, rec := range sorted[start:end] {
		row := Row{
			ID:             rec.ID,
			LegalName:      rec.LegalName,
			TradeName:      rec.TradeName,
			City:           rec.City,
			State:          rec.State,
			Representative: string(rec.Representative),
			RegisteredAt:   rec.RegisteredAt,
		}
		if admin {
			row.Action = deleteActionLink
		}
		view.Rows = append(view.Rows, row)
	}
	return view
}

func columns(admin bool) []Column {
	cols := []Column{
		{Name: "Id", ID: "id"},
		{Name: "Razão Social", ID: "razao_social"},
		{Name: "Nome Fantasia", ID: "nome_fantasia"},
		{Name: "Cidade", ID: "cidade"},
		{Name: "Estado", ID: "estado"},
		{Name: "Vendedor", ID: "vendedor"},
		{Name: "Data Registro", ID: "data_registro"},
	}
	if admin {
		cols = append(cols, Column{Name: "Ação", ID: "acao", Presentation: "markdown"})
	}
	return cols
}

// BuildPanels turns a report into one chart panel per representative.
// A representative with no data gets an explicit empty state rather
// than an empty chart.
func BuildPanels(rep report.Report) []Panel {
	colors := map[client.Representative]string{
		client.RepresentativeAngela: "primary",
		client.RepresentativeDavid:  "success",
	}

	panels := make([]Panel, 0, len(rep.Summaries))
	for _, sum := range rep.Summaries {
		p := Panel{
			Representative: string(sum.Representative),
			Label:          sum.Representative.Label(),
			KPI: KPICard{
				Title: fmt.Sprintf("Total Registros (%s)", sum.Representative),
				Value: sum.Total,
				Color: colors[sum.Representative],
			},
			Series: sum.Buckets,
		}
		if !sum.HasData() {
			p.Empty = true
			p.EmptyText = fmt.Sprintf("Sem dados para %s", sum.Representative)
			p.Series = []report.Bucket{}
		}
		panels = append(panels, p)
	}
	return panels
}
