package model

import (
	"time"

	"github.com/Lumos-Labs-HQ/mockforge/internal/generator"
)

// The Describe types expose the model as plain data for rendering and
// export. They carry no behavior: the templating layer consumes exactly
// this and nothing else.

type TableDescription struct {
	Name      string                `json:"name" yaml:"name"`
	Columns   []ColumnDescription   `json:"columns" yaml:"columns"`
	Relations []RelationDescription `json:"relations,omitempty" yaml:"relations,omitempty"`
}

type ColumnDescription struct {
	Name      string         `json:"name" yaml:"name"`
	Kind      generator.Kind `json:"kind" yaml:"kind"`
	Nullable  bool           `json:"nullable" yaml:"nullable"`
	NullRate  float64        `json:"null_rate,omitempty" yaml:"null_rate,omitempty"`
	MinInt    int64          `json:"min,omitempty" yaml:"min,omitempty"`
	MaxInt    int64          `json:"max,omitempty" yaml:"max,omitempty"`
	MinFloat  float64        `json:"min_float,omitempty" yaml:"min_float,omitempty"`
	MaxFloat  float64        `json:"max_float,omitempty" yaml:"max_float,omitempty"`
	MaxLength int            `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	MinTime   time.Time      `json:"min_time,omitempty" yaml:"min_time,omitempty"`
	MaxTime   time.Time      `json:"max_time,omitempty" yaml:"max_time,omitempty"`
	Choices   []string       `json:"choices,omitempty" yaml:"choices,omitempty"`
}

type RelationDescription struct {
	Type          RelationType `json:"type" yaml:"type"`
	FromColumn    string       `json:"from_column" yaml:"from_column"`
	ToTable       string       `json:"to_table" yaml:"to_table"`
	ToColumn      string       `json:"to_column" yaml:"to_column"`
	JunctionTable string       `json:"junction_table,omitempty" yaml:"junction_table,omitempty"`
	MinRelated    int          `json:"min_related" yaml:"min_related"`
	MaxRelated    int          `json:"max_related" yaml:"max_related"`
	PoolSize      int          `json:"pool_size" yaml:"pool_size"`
}

// Describe flattens the table model into plain descriptive data.
func (m *TableModel) Describe() TableDescription {
	desc := TableDescription{Name: m.name}

	for _, name := range m.columnOrder {
		col := m.columns[name]
		desc.Columns = append(desc.Columns, ColumnDescription{
			Name:      col.Name,
			Kind:      col.Kind,
			Nullable:  col.Nullable,
			NullRate:  col.NullRate(),
			MinInt:    col.Constraints.MinInt,
			MaxInt:    col.Constraints.MaxInt,
			MinFloat:  col.Constraints.MinFloat,
			MaxFloat:  col.Constraints.MaxFloat,
			MaxLength: col.Constraints.MaxLength,
			MinTime:   col.Constraints.MinTime,
			MaxTime:   col.Constraints.MaxTime,
			Choices:   col.Constraints.Choices,
		})
	}

	for _, rel := range m.relations {
		desc.Relations = append(desc.Relations, RelationDescription{
			Type:          rel.Type,
			FromColumn:    rel.FromColumn,
			ToTable:       rel.ToTable,
			ToColumn:      rel.ToColumn,
			JunctionTable: rel.JunctionTable,
			MinRelated:    rel.Config.MinRelated,
			MaxRelated:    rel.Config.MaxRelated,
			PoolSize:      rel.Config.PoolSize,
		})
	}

	return desc
}
