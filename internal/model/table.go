package model

import (
	"fmt"
	"math/rand"

	"github.com/Lumos-Labs-HQ/mockforge/internal/generator"
)

// Row maps column name to generated value. Column order is kept on the
// table model, not the row, since Go maps do not preserve insertion order.
type Row map[string]any

// JunctionRow is one materialized many-to-many pairing destined for a
// junction table.
type JunctionRow struct {
	Table      string
	FromColumn string
	ToColumn   string
	FromKey    any
	ToKey      any
}

// TableModel aggregates the named columns and relations of one table and
// orchestrates row generation. It has two states: unconfigured (fresh)
// and ready (after Configure ran the setup callbacks).
type TableModel struct {
	name        string
	columnOrder []string
	columns     map[string]*Column
	relations   []*Relation
	configured  bool
}

func NewTableModel(name string) *TableModel {
	return &TableModel{
		name:    name,
		columns: make(map[string]*Column),
	}
}

func (m *TableModel) Name() string {
	return m.name
}

// Configure runs the column and relation setup callbacks exactly once and
// moves the model into the ready state. Either callback may be nil.
func (m *TableModel) Configure(setupColumns, setupRelations func(*TableModel) error) error {
	if m.configured {
		return &generator.ConfigurationError{Field: "table", Reason: fmt.Sprintf("table model %q is already configured", m.name)}
	}
	if setupColumns != nil {
		if err := setupColumns(m); err != nil {
			return fmt.Errorf("table %q: setting up columns: %w", m.name, err)
		}
	}
	if setupRelations != nil {
		if err := setupRelations(m); err != nil {
			return fmt.Errorf("table %q: setting up relations: %w", m.name, err)
		}
	}
	m.configured = true
	return nil
}

// AddColumn appends a column in declaration order. Duplicate names are a
// configuration error.
func (m *TableModel) AddColumn(col *Column) error {
	if col == nil {
		return &generator.ConfigurationError{Field: "column", Reason: "column must not be nil"}
	}
	if _, exists := m.columns[col.Name]; exists {
		return &generator.ConfigurationError{Field: "column", Reason: fmt.Sprintf("duplicate column %q in table %q", col.Name, m.name)}
	}
	m.columns[col.Name] = col
	m.columnOrder = append(m.columnOrder, col.Name)
	return nil
}

func (m *TableModel) AddRelation(rel *Relation) error {
	if rel == nil {
		return &generator.ConfigurationError{Field: "relation", Reason: "relation must not be nil"}
	}
	if rel.Type == ManyToMany {
		// The from-side key must be one of this table's own columns, since
		// junction rows pair it with keys from the target pool.
		if _, ok := m.columns[rel.FromColumn]; !ok {
			return &generator.ConfigurationError{Field: "relation", Reason: fmt.Sprintf("many-to-many from_column %q is not a column of table %q", rel.FromColumn, m.name)}
		}
	}
	m.relations = append(m.relations, rel)
	return nil
}

// Column returns the named column, or nil if it does not exist.
func (m *TableModel) Column(name string) *Column {
	return m.columns[name]
}

// ColumnNames returns the column names in declaration order.
func (m *TableModel) ColumnNames() []string {
	names := make([]string, len(m.columnOrder))
	copy(names, m.columnOrder)
	return names
}

func (m *TableModel) Relations() []*Relation {
	return m.relations
}

// GenerateRow produces one row: every column in declaration order, then
// every relation resolved against the matching target pool. One-to-many
// keys merge into the row; many-to-many pairings come back as junction
// rows instead of inline columns.
func (m *TableModel) GenerateRow(r *rand.Rand, pools map[string]*Pool) (Row, []JunctionRow, error) {
	if !m.configured {
		return nil, nil, &NotConfiguredError{Table: m.name}
	}

	row := make(Row, len(m.columnOrder))
	for _, name := range m.columnOrder {
		value, err := m.columns[name].GenerateValue(r)
		if err != nil {
			return nil, nil, fmt.Errorf("table %q: %w", m.name, err)
		}
		row[name] = value
	}

	var junctions []JunctionRow
	for _, rel := range m.relations {
		pool := pools[rel.ToTable]

		switch rel.Type {
		case OneToMany:
			key, err := rel.Resolve(r, pool)
			if err != nil {
				return nil, nil, fmt.Errorf("table %q: %w", m.name, err)
			}
			row[rel.FromColumn] = key

		case ManyToMany:
			keys, err := rel.ResolveMany(r, pool)
			if err != nil {
				return nil, nil, fmt.Errorf("table %q: %w", m.name, err)
			}
			for _, key := range keys {
				junctions = append(junctions, JunctionRow{
					Table:      rel.JunctionTable,
					FromColumn: rel.JunctionFromColumn,
					ToColumn:   rel.JunctionToColumn,
					FromKey:    row[rel.FromColumn],
					ToKey:      key,
				})
			}
		}
	}

	return row, junctions, nil
}

// GenerateRows produces n rows. Structure is idempotent across calls:
// the column set never changes, only the drawn values do.
func (m *TableModel) GenerateRows(n int, r *rand.Rand, pools map[string]*Pool) ([]Row, []JunctionRow, error) {
	if n < 0 {
		return nil, nil, &InvalidArgumentError{Name: "n", Reason: fmt.Sprintf("row count must not be negative, got %d", n)}
	}
	if !m.configured {
		return nil, nil, &NotConfiguredError{Table: m.name}
	}

	rows := make([]Row, 0, n)
	var junctions []JunctionRow
	for i := 0; i < n; i++ {
		row, jr, err := m.GenerateRow(r, pools)
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, row)
		junctions = append(junctions, jr...)
	}
	return rows, junctions, nil
}
