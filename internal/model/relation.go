package model

import (
	"fmt"
	"math/rand"

	"github.com/Lumos-Labs-HQ/mockforge/internal/generator"
)

type RelationType string

const (
	OneToMany  RelationType = "one_to_many"
	ManyToMany RelationType = "many_to_many"
)

// RelationConfig bounds how many related keys a relation may pick and how
// large the candidate pool is expected to be.
type RelationConfig struct {
	MinRelated int
	MaxRelated int
	PoolSize   int
}

// DefaultRelationConfig mirrors the defaults the schema mapper applies
// when no explicit cardinality is configured.
func DefaultRelationConfig() RelationConfig {
	return RelationConfig{MinRelated: 1, MaxRelated: 5, PoolSize: 10}
}

func NewRelationConfig(minRelated, maxRelated, poolSize int) (RelationConfig, error) {
	if minRelated < 0 {
		return RelationConfig{}, &generator.ConfigurationError{Field: "min_related", Reason: fmt.Sprintf("must not be negative, got %d", minRelated)}
	}
	if minRelated > maxRelated {
		return RelationConfig{}, &generator.ConfigurationError{Field: "min_related", Reason: fmt.Sprintf("min_related %d exceeds max_related %d", minRelated, maxRelated)}
	}
	if poolSize < maxRelated {
		return RelationConfig{}, &generator.ConfigurationError{Field: "pool_size", Reason: fmt.Sprintf("pool_size %d is smaller than max_related %d", poolSize, maxRelated)}
	}
	return RelationConfig{MinRelated: minRelated, MaxRelated: maxRelated, PoolSize: poolSize}, nil
}

// Relation is a directed, cardinality-bounded link from one table's
// column into another table's key space. It is stateless across calls;
// the pool it draws from is shared by reference.
type Relation struct {
	Type          RelationType
	FromTable     string
	FromColumn    string
	ToTable       string
	ToColumn      string
	JunctionTable string // many-to-many only
	// Junction column names receiving the paired keys. Default to
	// "<from_table>_<from_column>" / "<to_table>_<to_column>".
	JunctionFromColumn string
	JunctionToColumn   string
	Config             RelationConfig
}

func NewOneToMany(fromTable, fromColumn, toTable, toColumn string, cfg RelationConfig) (*Relation, error) {
	if fromTable == "" || fromColumn == "" || toTable == "" || toColumn == "" {
		return nil, &generator.ConfigurationError{Field: "relation", Reason: "from/to table and column names must not be empty"}
	}
	return &Relation{
		Type:       OneToMany,
		FromTable:  fromTable,
		FromColumn: fromColumn,
		ToTable:    toTable,
		ToColumn:   toColumn,
		Config:     cfg,
	}, nil
}

func NewManyToMany(fromTable, fromColumn, toTable, toColumn, junctionTable string, cfg RelationConfig) (*Relation, error) {
	if fromTable == "" || fromColumn == "" || toTable == "" || toColumn == "" {
		return nil, &generator.ConfigurationError{Field: "relation", Reason: "from/to table and column names must not be empty"}
	}
	if junctionTable == "" {
		return nil, &generator.ConfigurationError{Field: "junction_table", Reason: "many-to-many relation requires a junction table"}
	}
	return &Relation{
		Type:               ManyToMany,
		FromTable:          fromTable,
		FromColumn:         fromColumn,
		ToTable:            toTable,
		ToColumn:           toColumn,
		JunctionTable:      junctionTable,
		JunctionFromColumn: fromTable + "_" + fromColumn,
		JunctionToColumn:   toTable + "_" + toColumn,
		Config:             cfg,
	}, nil
}

// Resolve picks exactly one key uniformly from the target pool.
func (rel *Relation) Resolve(r *rand.Rand, pool *Pool) (any, error) {
	if pool.Len() == 0 {
		return nil, &EmptyPoolError{FromTable: rel.FromTable, FromColumn: rel.FromColumn, ToTable: rel.ToTable}
	}
	keys := pool.Keys()
	return keys[r.Intn(len(keys))], nil
}

// ResolveMany picks a count uniformly in [min_related, max_related]
// distinct keys without replacement. A max_related larger than the pool
// is capped to the pool size; only breaching min_related is an error.
func (rel *Relation) ResolveMany(r *rand.Rand, pool *Pool) ([]any, error) {
	available := pool.Len()
	if available < rel.Config.MinRelated {
		return nil, &InsufficientPoolError{
			FromTable: rel.FromTable,
			ToTable:   rel.ToTable,
			Needed:    rel.Config.MinRelated,
			Available: available,
		}
	}

	max := rel.Config.MaxRelated
	if max > available {
		max = available
	}
	count := rel.Config.MinRelated
	if max > count {
		count += r.Intn(max - count + 1)
	}

	keys := pool.Keys()
	picked := make([]any, 0, count)
	for _, idx := range r.Perm(available)[:count] {
		picked = append(picked, keys[idx])
	}
	return picked, nil
}
