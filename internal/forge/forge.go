package forge

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Lumos-Labs-HQ/mockforge/internal/config"
	"github.com/Lumos-Labs-HQ/mockforge/internal/generator"
	"github.com/Lumos-Labs-HQ/mockforge/internal/mapper"
	"github.com/Lumos-Labs-HQ/mockforge/internal/model"
	"github.com/Lumos-Labs-HQ/mockforge/internal/schema"
	"github.com/Lumos-Labs-HQ/mockforge/internal/types"
)

// Forge drives one generation run: parse schema, map tables to models,
// wire relations, then generate rows in dependency order so every
// relation finds its target pool already populated.
type Forge struct {
	cfg       *config.Config
	registry  *model.Registry
	tables    []types.SchemaTable
	junctions map[string]schema.Junction
	relCfg    model.RelationConfig

	// reference anchors every default time span of the run. Seeded runs
	// pin it to the start of the UTC day so a rerun with the same seed
	// reproduces the same rows.
	reference time.Time
}

// TableRows is the generated output for one table, columns in
// declaration order.
type TableRows struct {
	Name    string
	Columns []string
	Rows    []model.Row
}

// Result aggregates one run: regular tables in generation order plus the
// materialized junction rows for many-to-many relations.
type Result struct {
	Tables    []TableRows
	Junctions []model.JunctionRow
}

func New(cfg *config.Config) (*Forge, error) {
	relCfg, err := model.NewRelationConfig(
		cfg.Generate.Relations.MinRelated,
		cfg.Generate.Relations.MaxRelated,
		cfg.Generate.Relations.PoolSize,
	)
	if err != nil {
		return nil, err
	}

	reference := time.Now().UTC()
	if cfg.Generate.Seed != 0 {
		reference = reference.Truncate(24 * time.Hour)
	}

	return &Forge{
		cfg:       cfg,
		registry:  model.NewRegistry(),
		junctions: make(map[string]schema.Junction),
		relCfg:    relCfg,
		reference: reference,
	}, nil
}

// LoadSchema parses the configured schema directory and sorts tables in
// dependency order.
func (f *Forge) LoadSchema() error {
	tables, _, err := schema.ParseDir(f.cfg.SchemaDir)
	if err != nil {
		return fmt.Errorf("failed to parse schema: %w", err)
	}
	return f.UseTables(tables)
}

// UseTables accepts already-extracted metadata, for callers that do not
// read .sql files.
func (f *Forge) UseTables(tables []types.SchemaTable) error {
	sorted, err := schema.SortByDependencies(tables)
	if err != nil {
		return err
	}
	f.tables = sorted

	for _, j := range schema.DetectJunctions(sorted) {
		f.junctions[j.Table] = j
	}
	return nil
}

// Build maps every non-junction table into a ready model and attaches
// relations: one-to-many from FK metadata, many-to-many from detected
// junction tables.
func (f *Forge) Build() error {
	if len(f.tables) == 0 {
		return fmt.Errorf("no tables loaded: call LoadSchema first")
	}

	for _, table := range f.tables {
		if _, isJunction := f.junctions[table.Name]; isJunction {
			continue
		}
		m, err := f.buildModel(table)
		if err != nil {
			return err
		}
		if err := f.registry.Register(m); err != nil {
			return err
		}
	}

	pos := make(map[string]int, len(f.tables))
	for i, table := range f.tables {
		pos[table.Name] = i
	}

	for _, j := range f.junctions {
		// The relation must live on whichever endpoint is generated later,
		// so the target pool is already populated when it resolves.
		ownTable, ownRef, ownCol := j.FromTable, j.FromRef, j.FromColumn
		targetTable, targetRef, targetCol := j.ToTable, j.ToRef, j.ToColumn
		if pos[ownTable] < pos[targetTable] {
			ownTable, targetTable = targetTable, ownTable
			ownRef, targetRef = targetRef, ownRef
			ownCol, targetCol = targetCol, ownCol
		}

		owner, err := f.registry.Get(ownTable)
		if err != nil {
			return fmt.Errorf("junction table %q: %w", j.Table, err)
		}
		rel, err := model.NewManyToMany(ownTable, ownRef, targetTable, targetRef, j.Table, f.relCfg)
		if err != nil {
			return err
		}
		rel.JunctionFromColumn = ownCol
		rel.JunctionToColumn = targetCol
		if err := owner.AddRelation(rel); err != nil {
			return err
		}
	}

	return f.registry.Validate()
}

func (f *Forge) buildModel(table types.SchemaTable) (*model.TableModel, error) {
	m := model.NewTableModel(table.Name)

	setupColumns := func(tm *model.TableModel) error {
		for _, meta := range table.Columns {
			col, err := mapper.MapColumnAt(table.Name, meta, f.reference)
			if err != nil {
				return err
			}

			if ov, ok := f.cfg.Generate.Columns[table.Name+"."+meta.Name]; ok {
				col, err = applyOverride(col, meta, ov)
				if err != nil {
					return err
				}
			} else if meta.Nullable && f.cfg.Generate.NullRate > 0 {
				if err := col.SetNullRate(f.cfg.Generate.NullRate); err != nil {
					return err
				}
			}

			if err := tm.AddColumn(col); err != nil {
				return err
			}
		}
		return nil
	}

	setupRelations := func(tm *model.TableModel) error {
		for _, meta := range table.Columns {
			if meta.ForeignKeyTable == "" || meta.ForeignKeyTable == table.Name {
				continue
			}
			rel, err := model.NewOneToMany(table.Name, meta.Name, meta.ForeignKeyTable, meta.ForeignKeyColumn, f.relCfg)
			if err != nil {
				return err
			}
			if err := tm.AddRelation(rel); err != nil {
				return err
			}
		}
		return nil
	}

	if err := m.Configure(setupColumns, setupRelations); err != nil {
		return nil, err
	}
	return m, nil
}

// applyOverride rebuilds a column with config-pinned kind, bounds or null
// rate. Constraint validation runs again on the merged result.
func applyOverride(col *model.Column, meta types.SchemaColumn, ov config.ColumnOverride) (*model.Column, error) {
	kind := col.Kind
	c := col.Constraints

	if ov.Kind != "" {
		kind = generator.Kind(ov.Kind)
	}
	if ov.Min != nil {
		c.MinInt = *ov.Min
		c.MinFloat = float64(*ov.Min)
	}
	if ov.Max != nil {
		c.MaxInt = *ov.Max
		c.MaxFloat = float64(*ov.Max)
	}
	if ov.MaxLength != nil {
		c.MaxLength = *ov.MaxLength
	}
	if len(ov.Choices) > 0 {
		kind = generator.KindChoice
		c.Choices = ov.Choices
	}

	merged, err := model.NewColumn(col.Name, kind, meta.Nullable, c)
	if err != nil {
		return nil, err
	}
	if ov.NullRate != nil {
		if err := merged.SetNullRate(*ov.NullRate); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

// Generate produces rows for every table in dependency order, feeding
// each table's key pool as its rows materialize so downstream relations
// always draw from real keys.
func (f *Forge) Generate() (*Result, error) {
	seed := f.cfg.Generate.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return f.GenerateWith(rand.New(rand.NewSource(seed)))
}

// GenerateWith runs generation against a caller-owned random source,
// which makes runs reproducible under a fixed seed.
func (f *Forge) GenerateWith(r *rand.Rand) (*Result, error) {
	result := &Result{}

	for _, table := range f.tables {
		if _, isJunction := f.junctions[table.Name]; isJunction {
			continue
		}

		m, err := f.registry.Get(table.Name)
		if err != nil {
			return nil, err
		}

		count := f.cfg.CountFor(table.Name)
		rows, junctions, err := m.GenerateRows(count, r, f.registry.Pools())
		if err != nil {
			return nil, err
		}

		// Only keys that actually appear in generated rows feed the pool.
		// A missing or NULL key is never replaced with an invented one;
		// referencing tables hit EmptyPoolError instead of dangling.
		keyColumn := primaryKeyColumn(table)
		pool := f.registry.Pool(table.Name)
		for _, row := range rows {
			if key, ok := row[keyColumn]; ok && key != nil {
				pool.Add(key)
			}
		}

		result.Tables = append(result.Tables, TableRows{
			Name:    table.Name,
			Columns: m.ColumnNames(),
			Rows:    rows,
		})
		result.Junctions = append(result.Junctions, junctions...)
	}

	return result, nil
}

// Registry exposes the built models, mainly for rendering.
func (f *Forge) Registry() *model.Registry {
	return f.registry
}

// Tables returns the dependency-sorted metadata, junction tables included.
func (f *Forge) Tables() []types.SchemaTable {
	return f.tables
}

// IsJunction reports whether a table was detected as a many-to-many
// junction and is therefore materialized from relation pairings.
func (f *Forge) IsJunction(name string) bool {
	_, ok := f.junctions[name]
	return ok
}

func primaryKeyColumn(table types.SchemaTable) string {
	for _, col := range table.Columns {
		if col.IsPrimary {
			return col.Name
		}
	}
	for _, col := range table.Columns {
		if col.Name == "id" {
			return col.Name
		}
	}
	if len(table.Columns) > 0 {
		return table.Columns[0].Name
	}
	return ""
}
