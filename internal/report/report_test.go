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

package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipeboard/pipeboard/internal/client"
)

func record(rep client.Representative, registeredAt time.Time) *client.Record {
	return &client.Record{
		LegalName:      "Acme Ltda",
		TradeName:      "Acme",
		City:           "SAO PAULO",
		State:          "SP",
		Representative: rep,
		RegisteredAt:   registeredAt,
		Active:         true,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuild_EmptySet(t *testing.T) {
	rep := Build(nil, Range{Start: day(2024, 1, 1), End: day(2024, 1, 31)}, FrequencyWeekly)

	require.Len(t, rep.Summaries, 2)
	assert.Equal(t, client.RepresentativeAngela, rep.Summaries[0].Representative)
	assert.Equal(t, client.RepresentativeDavid, rep.Summaries[1].Representative)
	for _, s := range rep.Summaries {
		assert.Equal(t, 0, s.Total)
		assert.Empty(t, s.Buckets)
		assert.False(t, s.HasData())
	}
}

func TestBuild_EndDateIsInclusive(t *testing.T) {
	records := []*client.Record{
		record(client.RepresentativeAngela, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)),
		record(client.RepresentativeAngela, time.Date(2024, 1, 8, 23, 59, 59, 0, time.UTC)),
		record(client.RepresentativeAngela, time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)),
	}

	// Single-day range covering the whole of Jan 8
	rep := Build(records, Range{Start: day(2024, 1, 8), End: day(2024, 1, 8)}, FrequencyWeekly)

	assert.Equal(t, 2, rep.Summaries[0].Total)
}

func TestBuild_RecordsBeforeStartExcluded(t *testing.T) {
	records := []*client.Record{
		record(client.RepresentativeDavid, time.Date(2024, 1, 7, 23, 59, 0, 0, time.UTC)),
		record(client.RepresentativeDavid, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)),
	}

	rep := Build(records, Range{Start: day(2024, 1, 8), End: day(2024, 1, 31)}, FrequencyWeekly)

	assert.Equal(t, 1, rep.Summaries[1].Total)
}

func TestBuild_WeeklyBucketsStartOnMonday(t *testing.T) {
	// 2024-01-08 is a Monday, 2024-01-14 the following Sunday
	records := []*client.Record{
		record(client.RepresentativeAngela, day(2024, 1, 8)),
		record(client.RepresentativeAngela, day(2024, 1, 10)),
		record(client.RepresentativeAngela, day(2024, 1, 14)),
		record(client.RepresentativeAngela, day(2024, 1, 15)),
	}

	rep := Build(records, Range{Start: day(2024, 1, 1), End: day(2024, 1, 31)}, FrequencyWeekly)

	angela := rep.Summaries[0]
	assert.Equal(t, 4, angela.Total)
	require.Len(t, angela.Buckets, 2)
	assert.Equal(t, "08/01/2024", angela.Buckets[0].Label)
	assert.Equal(t, 3, angela.Buckets[0].Count)
	assert.Equal(t, "15/01/2024", angela.Buckets[1].Label)
	assert.Equal(t, 1, angela.Buckets[1].Count)
}

func TestBuild_MonthlyBuckets(t *testing.T) {
	records := []*client.Record{
		record(client.RepresentativeDavid, day(2024, 1, 5)),
		record(client.RepresentativeDavid, day(2024, 1, 28)),
		record(client.RepresentativeDavid, day(2024, 2, 2)),
	}

	rep := Build(records, Range{Start: day(2024, 1, 1), End: day(2024, 2, 29)}, FrequencyMonthly)

	david := rep.Summaries[1]
	assert.Equal(t, 3, david.Total)
	require.Len(t, david.Buckets, 2)
	assert.Equal(t, "01/2024", david.Buckets[0].Label)
	assert.Equal(t, 2, david.Buckets[0].Count)
	assert.Equal(t, "02/2024", david.Buckets[1].Label)
	assert.Equal(t, 1, david.Buckets[1].Count)
}

func TestBuild_PartitionsByRepresentative(t *testing.T) {
	records := []*client.Record{
		record(client.RepresentativeAngela, day(2024, 1, 10)),
	}

	rep := Build(records, Range{Start: day(2024, 1, 1), End: day(2024, 1, 31)}, FrequencyWeekly)

	assert.True(t, rep.Summaries[0].HasData())
	assert.False(t, rep.Summaries[1].HasData())
	assert.Empty(t, rep.Summaries[1].Buckets)
}

func TestBuild_StartAfterEndYieldsEmpty(t *testing.T) {
	records := []*client.Record{
		record(client.RepresentativeAngela, day(2024, 1, 10)),
	}

	rep := Build(records, Range{Start: day(2024, 2, 1), End: day(2024, 1, 1)}, FrequencyWeekly)

	for _, s := range rep.Summaries {
		assert.Equal(t, 0, s.Total)
	}
}

func TestBuild_BucketsSortedChronologically(t *testing.T) {
	records := []*client.Record{
		record(client.RepresentativeAngela, day(2024, 3, 20)),
		record(client.RepresentativeAngela, day(2024, 1, 3)),
		record(client.RepresentativeAngela, day(2024, 2, 14)),
	}

	rep := Build(records, Range{Start: day(2024, 1, 1), End: day(2024, 3, 31)}, FrequencyMonthly)

	buckets := rep.Summaries[0].Buckets
	require.Len(t, buckets, 3)
	for i := 1; i < len(buckets); i++ {
		assert.True(t, buckets[i-1].Start.Before(buckets[i].Start))
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday maps to itself", day(2024, 1, 8), day(2024, 1, 8)},
		{"wednesday maps back", day(2024, 1, 10), day(2024, 1, 8)},
		{"sunday closes the week", day(2024, 1, 14), day(2024, 1, 8)},
		{"across month boundary", day(2024, 2, 1), day(2024, 1, 29)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, weekStart(tt.in))
		})
	}
}

func TestWindow_Defaults(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	r := Window(nil, nil, now, DefaultWindowDays)

	assert.Equal(t, now.AddDate(0, 0, -30), r.Start)
	assert.Equal(t, now, r.End)
}

func TestWindow_ExplicitBoundsWin(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	start := day(2024, 1, 1)
	end := day(2024, 3, 31)

	r := Window(&start, &end, now, DefaultWindowDays)

	assert.Equal(t, start, r.Start)
	assert.Equal(t, end, r.End)
}

func TestWindow_PartialBounds(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	start := day(2024, 5, 1)

	r := Window(&start, nil, now, 0)

	assert.Equal(t, start, r.Start)
	assert.Equal(t, now, r.End)
}

func TestParseFrequency(t *testing.T) {
	assert.Equal(t, FrequencyMonthly, ParseFrequency("M"))
	assert.Equal(t, FrequencyMonthly, ParseFrequency("monthly"))
	assert.Equal(t, FrequencyWeekly, ParseFrequency("W"))
	assert.Equal(t, FrequencyWeekly, ParseFrequency(""))
	assert.Equal(t, FrequencyWeekly, ParseFrequency("garbage"))
}
