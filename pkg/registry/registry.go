package registry

import (
	"sort"
)

// Registry resolves symbols against an immutable Table.
type Registry struct {
	table Table
}

// New creates a registry over a copy of table.
func New(table Table) *Registry {
	copied := make(Table, len(table))
	for symbol, ids := range table {
		copied[symbol] = append([]DataSourceID(nil), ids...)
	}
	return &Registry{table: copied}
}

// Default returns a registry over DefaultTable.
func Default() *Registry {
	return New(DefaultTable)
}

// Supports reports whether symbol has at least one registry entry.
func (r *Registry) Supports(symbol string) bool {
	_, ok := r.table[symbol]
	return ok
}

// DataSources returns the data sources registered for symbol, nil when unsupported.
func (r *Registry) DataSources(symbol string) []DataSourceID {
	ids, ok := r.table[symbol]
	if !ok {
		return nil
	}
	return append([]DataSourceID(nil), ids...)
}

// Symbols returns every supported symbol, sorted.
func (r *Registry) Symbols() []string {
	symbols := make([]string, 0, len(r.table))
	for symbol := range r.table {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// SourcesFor groups the requested symbols by the data sources that serve them.
// Each data source keeps its symbols in request order, duplicates included, which is
// also the field order of that data source's report line.
func (r *Registry) SourcesFor(symbols []string) Assignments {
	assignments := Assignments{bySource: make(map[DataSourceID][]string)}
	for _, symbol := range symbols {
		for _, id := range r.table[symbol] {
			assignments.bySource[id] = append(assignments.bySource[id], symbol)
		}
	}
	return assignments
}

// Assignments maps each resolved data source to its ordered symbol list.
type Assignments struct {
	bySource map[DataSourceID][]string
}

// IDs returns the resolved data sources in ascending order.
func (a Assignments) IDs() []DataSourceID {
	ids := make([]DataSourceID, 0, len(a.bySource))
	for id := range a.bySource {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Symbols returns the symbols assigned to id, nil when id was not resolved.
func (a Assignments) Symbols(id DataSourceID) []string {
	return a.bySource[id]
}

// Len returns the number of resolved data sources.
func (a Assignments) Len() int {
	return len(a.bySource)
}
