package schema

import (
	"fmt"
	"sort"

	"github.com/Lumos-Labs-HQ/mockforge/internal/types"
)

// SortByDependencies orders tables so that referenced tables come before
// referencing tables (Kahn's algorithm), and validates that every FK
// points at a table in the set. Circular references are an error for the
// caller to resolve; generation order matters because relation pools are
// filled table by table.
func SortByDependencies(tables []types.SchemaTable) ([]types.SchemaTable, error) {
	tableMap := make(map[string]*types.SchemaTable, len(tables))
	for i := range tables {
		tableMap[tables[i].Name] = &tables[i]
	}

	dependencies := make(map[string][]string, len(tables))
	for _, table := range tables {
		var deps []string
		for _, col := range table.Columns {
			if col.ForeignKeyTable == "" {
				continue
			}
			if _, exists := tableMap[col.ForeignKeyTable]; !exists {
				return nil, fmt.Errorf("table %q references non-existent table %q (column %q has REFERENCES %s(%s))",
					table.Name, col.ForeignKeyTable, col.Name, col.ForeignKeyTable, col.ForeignKeyColumn)
			}
			if col.ForeignKeyTable != table.Name {
				deps = append(deps, col.ForeignKeyTable)
			}
		}
		dependencies[table.Name] = deps
	}

	inDegree := make(map[string]int, len(tables))
	for name, deps := range dependencies {
		inDegree[name] = len(deps)
	}

	var queue []string
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	var sorted []types.SchemaTable
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		sorted = append(sorted, *tableMap[name])

		var unblocked []string
		for depName, deps := range dependencies {
			for _, dep := range deps {
				if dep == name {
					inDegree[depName]--
					if inDegree[depName] == 0 {
						unblocked = append(unblocked, depName)
					}
					break
				}
			}
		}
		// Keep the queue sorted so the order is deterministic.
		sort.Strings(unblocked)
		queue = append(queue, unblocked...)
	}

	if len(sorted) != len(tables) {
		var circular []string
		for name, degree := range inDegree {
			if degree > 0 {
				circular = append(circular, name)
			}
		}
		sort.Strings(circular)
		return nil, fmt.Errorf("circular foreign key dependency detected among tables: %v", circular)
	}

	return sorted, nil
}

// Junction describes a detected many-to-many junction table: its two FK
// columns and the tables they point at.
type Junction struct {
	Table      string
	FromTable  string
	FromColumn string // junction column referencing FromTable
	FromRef    string // referenced column in FromTable
	ToTable    string
	ToColumn   string // junction column referencing ToTable
	ToRef      string // referenced column in ToTable
}

// DetectJunctions finds tables whose data columns are exactly two foreign
// keys into two different tables. Such tables are materialized from
// many-to-many pairings instead of being generated independently.
func DetectJunctions(tables []types.SchemaTable) []Junction {
	var junctions []Junction

	for _, table := range tables {
		var fks []types.SchemaColumn
		extra := 0
		for _, col := range table.Columns {
			switch {
			case col.ForeignKeyTable != "" && col.ForeignKeyTable != table.Name:
				fks = append(fks, col)
			case col.IsAutoIncrement || col.IsPrimary:
				// A surrogate key does not disqualify a junction table.
			default:
				extra++
			}
		}

		if len(fks) != 2 || extra > 0 || fks[0].ForeignKeyTable == fks[1].ForeignKeyTable {
			continue
		}

		junctions = append(junctions, Junction{
			Table:      table.Name,
			FromTable:  fks[0].ForeignKeyTable,
			FromColumn: fks[0].Name,
			FromRef:    fks[0].ForeignKeyColumn,
			ToTable:    fks[1].ForeignKeyTable,
			ToColumn:   fks[1].Name,
			ToRef:      fks[1].ForeignKeyColumn,
		})
	}

	return junctions
}
