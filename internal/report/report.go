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

// Package report aggregates client registrations into per-representative
// performance series. It is a pure transformation from (record set, date
// range, frequency) to chart-ready buckets; callers decide when to
// recompute and how to render.
package report

import (
	"sort"
	"time"

	"github.com/pipeboard/pipeboard/internal/client"
)

// Frequency selects the bucketing period.
type Frequency string

const (
	FrequencyWeekly  Frequency = "W"
	FrequencyMonthly Frequency = "M"
)

// ParseFrequency maps the wire value to a Frequency, defaulting to weekly.
func ParseFrequency(s string) Frequency {
	switch s {
	case "M", "m", "monthly":
		return FrequencyMonthly
	default:
		return FrequencyWeekly
	}
}

// Period label formats, day-first as shown on the dashboard.
const (
	weeklyLabelFormat  = "02/01/2006"
	monthlyLabelFormat = "01/2006"
)

// Range is a date-level analysis window. Both endpoints are inclusive:
// End covers the entire calendar day it names.
type Range struct {
	Start time.Time
	End   time.Time
}

// DefaultWindowDays is the trailing window applied when no bounds are given.
const DefaultWindowDays = 30

// Window resolves optional bounds into a Range. A missing start defaults
// to windowDays before now; a missing end defaults to today.
func Window(start, end *time.Time, now time.Time, windowDays int) Range {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	r := Range{
		Start: now.AddDate(0, 0, -windowDays),
		End:   now,
	}
	if start != nil {
		r.Start = *start
	}
	if end != nil {
		r.End = *end
	}
	return r
}

// Bucket is one period of a representative's series.
type Bucket struct {
	Start time.Time `json:"-"`
	Label string    `json:"periodo"`
	Count int       `json:"quantidade"`
}

// Summary is one representative's aggregated performance over a range.
// Total is the KPI value; an empty Buckets slice is the explicit no-data
// signal the presentation layer turns into an empty state.
type Summary struct {
	Representative client.Representative `json:"vendedor"`
	Total          int                   `json:"total"`
	Buckets        []Bucket              `json:"buckets"`
}

// HasData reports whether any record fell inside the range.
func (s Summary) HasData() bool {
	return s.Total > 0
}

// Report holds one Summary per representative, in display order. Every
// representative appears even when it has no records.
type Report struct {
	Range     Range     `json:"-"`
	Frequency Frequency `json:"frequency"`
	Summaries []Summary `json:"summaries"`
}

// Build aggregates the given records over the range. Records outside
// [start of Start's day, start of the day after End) are discarded; the
// rest are partitioned by representative and bucketed by calendar week
// (Monday start) or calendar month. A Start after End yields empty
// summaries, not an error.
func Build(records []*client.Record, r Range, freq Frequency) Report {
	from := startOfDay(r.Start)
	to := startOfDay(r.End).AddDate(0, 0, 1)

	byRep := make(map[client.Representative][]*client.Record)
	for _, rec := range records {
		ts := rec.RegisteredAt.UTC()
		if ts.Before(from) || !ts.Before(to) {
			continue
		}
		byRep[rec.Representative] = append(byRep[rec.Representative], rec)
	}

	rep := Report{Range: r, Frequency: freq}
	for _, v := range client.Representatives() {
		rep.Summaries = append(rep.Summaries, summarize(v, byRep[v], freq))
	}
	return rep
}

func summarize(v client.Representative, records []*client.Record, freq Frequency) Summary {
	s := Summary{Representative: v, Total: len(records)}
	if len(records) == 0 {
		return s
	}

	counts := make(map[time.Time]int)
	for _, rec := range records {
		counts[periodStart(rec.RegisteredAt.UTC(), freq)]++
	}

	starts := make([]time.Time, 0, len(counts))
	for start := range counts {
		starts = append(starts, start)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })

	format := weeklyLabelFormat
	if freq == FrequencyMonthly {
		format = monthlyLabelFormat
	}
	for _, start := range starts {
		s.Buckets = append(s.Buckets, Bucket{
			Start: start,
			Label: start.Format(format),
			Count: counts[start],
		})
	}
	return s
}

func periodStart(t time.Time, freq Frequency) time.Time {
	if freq == FrequencyMonthly {
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return weekStart(t)
}

// weekStart returns the Monday beginning t's calendar week.
func weekStart(t time.Time) time.Time {
	day := startOfDay(t)
	wd := int(day.Weekday())
	if wd == 0 {
		wd = 7 // Sunday closes the week, it does not open one
	}
	return day.AddDate(0, 0, -(wd - 1))
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
