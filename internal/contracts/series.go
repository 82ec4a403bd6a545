package contracts

import (
	"sort"
	"time"
)

// Point is a single dated value in a time series
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Series is a date-ordered sequence of points
type Series []Point

// Sort orders the series by date ascending
func (s Series) Sort() {
	sort.Slice(s, func(i, j int) bool { return s[i].Date.Before(s[j].Date) })
}

// Values returns the values in order
func (s Series) Values() []float64 {
	vals := make([]float64, len(s))
	for i, p := range s {
		vals[i] = p.Value
	}
	return vals
}

// Latest returns the last point; ok is false when the series is empty
func (s Series) Latest() (Point, bool) {
	if len(s) == 0 {
		return Point{}, false
	}
	return s[len(s)-1], true
}

// MultiSeries is a date-aligned table with one named column per asset.
// Rows share the Dates index; every column has len(Dates) values.
type MultiSeries struct {
	Dates   []time.Time          `json:"dates"`
	Columns map[string][]float64 `json:"columns"`
}

// NewMultiSeries creates an empty multi-column series
func NewMultiSeries() *MultiSeries {
	return &MultiSeries{Columns: make(map[string][]float64)}
}

// Len returns the number of rows
func (m *MultiSeries) Len() int {
	return len(m.Dates)
}

// Column returns the named column; ok is false when absent
func (m *MultiSeries) Column(name string) ([]float64, bool) {
	col, ok := m.Columns[name]
	return col, ok
}

// HasColumns reports whether every named column is present
func (m *MultiSeries) HasColumns(names ...string) bool {
	for _, name := range names {
		if _, ok := m.Columns[name]; !ok {
			return false
		}
	}
	return true
}

// PivotObservations pivots per-symbol raw observations into a MultiSeries
// keyed by calendar date, keeping only dates where every requested symbol
// has a value (inner-join semantics).
func PivotObservations(obs []RawObservation, symbols ...string) *MultiSeries {
	byDate := make(map[time.Time]map[string]float64)
	for _, o := range obs {
		date := DateOnly(o.Date)
		if _, ok := byDate[date]; !ok {
			byDate[date] = make(map[string]float64)
		}
		byDate[date][o.Symbol] = o.Value
	}

	var dates []time.Time
	for date, row := range byDate {
		complete := true
		for _, sym := range symbols {
			if _, ok := row[sym]; !ok {
				complete = false
				break
			}
		}
		if complete {
			dates = append(dates, date)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	out := NewMultiSeries()
	out.Dates = dates
	for _, sym := range symbols {
		col := make([]float64, len(dates))
		for i, date := range dates {
			col[i] = byDate[date][sym]
		}
		out.Columns[sym] = col
	}
	return out
}
