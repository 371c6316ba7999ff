package mapper

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/mockforge/internal/generator"
	"github.com/Lumos-Labs-HQ/mockforge/internal/model"
	"github.com/Lumos-Labs-HQ/mockforge/internal/types"
)

// UnsupportedTypeError means the mapper hit a SQL type family it has no
// dispatch entry for. It is surfaced instead of silently defaulted so
// schema drift never goes unnoticed.
type UnsupportedTypeError struct {
	Table  string
	Column string
	Type   string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported SQL type %q for column %s.%s", e.Type, e.Table, e.Column)
}

// typeFamily is the closed dispatch table from SQL base type to value
// kind. Extending the mapper means adding entries here, never runtime
// registration.
var typeFamily = map[string]generator.Kind{
	"SMALLINT":          generator.KindInteger,
	"SMALLSERIAL":       generator.KindInteger,
	"INT":               generator.KindInteger,
	"INT2":              generator.KindInteger,
	"INT4":              generator.KindInteger,
	"INT8":              generator.KindInteger,
	"INTEGER":           generator.KindInteger,
	"SERIAL":            generator.KindInteger,
	"BIGINT":            generator.KindInteger,
	"BIGSERIAL":         generator.KindInteger,
	"DECIMAL":           generator.KindFloat,
	"NUMERIC":           generator.KindFloat,
	"REAL":              generator.KindFloat,
	"FLOAT":             generator.KindFloat,
	"DOUBLE":            generator.KindFloat,
	"DOUBLE PRECISION":  generator.KindFloat,
	"MONEY":             generator.KindFloat,
	"VARCHAR":           generator.KindString,
	"CHARACTER VARYING": generator.KindString,
	"CHAR":              generator.KindString,
	"CHARACTER":         generator.KindString,
	"TEXT":              generator.KindText,
	"BOOL":              generator.KindBoolean,
	"BOOLEAN":           generator.KindBoolean,
	"TIMESTAMP":         generator.KindDateTime,
	"TIMESTAMPTZ":       generator.KindDateTime,
	"DATETIME":          generator.KindDateTime,
	"TIME":              generator.KindDateTime,
	"DATE":              generator.KindDate,
	"UUID":              generator.KindUUID,
	"JSON":              generator.KindJSON,
	"JSONB":             generator.KindJSON,
}

// Default integer ranges derived from type width. SERIAL keys get the
// integer default rather than the full width so ids stay readable.
const (
	defaultIntMax      = 1_000_000
	smallintMax        = math.MaxInt16
	defaultFloatMax    = 10_000
	defaultStringLen   = 50
	defaultTextLen     = 500
	defaultDateTimeAge = 10 // years back from now
)

// MapColumn maps raw schema metadata to a concrete Column: type family
// picks the kind, column-name heuristics refine it within the family,
// declared length/precision become constraints. Default time spans are
// anchored at the current instant.
func MapColumn(table string, meta types.SchemaColumn) (*model.Column, error) {
	return MapColumnAt(table, meta, time.Now())
}

// MapColumnAt is MapColumn with an explicit reference instant for default
// time spans, so a whole run can share one anchor and stay reproducible.
func MapColumnAt(table string, meta types.SchemaColumn, now time.Time) (*model.Column, error) {
	base, length, precision, scale := splitType(meta.Type)
	if meta.Length > 0 {
		length = meta.Length
	}
	if meta.Precision > 0 {
		precision, scale = meta.Precision, meta.Scale
	}

	if len(meta.EnumValues) > 0 {
		return model.NewColumn(meta.Name, generator.KindChoice, meta.Nullable, generator.Constraints{Choices: meta.EnumValues})
	}

	kind, ok := typeFamily[base]
	if !ok {
		return nil, &UnsupportedTypeError{Table: table, Column: meta.Name, Type: meta.Type}
	}

	c := defaultConstraints(kind, base, length, precision, scale, now)
	kind, c = refineByName(meta.Name, kind, c, now)

	return model.NewColumn(meta.Name, kind, meta.Nullable, c)
}

// MapTable builds a ready table model from parsed metadata: one column
// per schema column in declaration order, one one-to-many relation per
// foreign key. relCfg bounds relation cardinality for the whole table.
func MapTable(meta types.SchemaTable, relCfg model.RelationConfig) (*model.TableModel, error) {
	m := model.NewTableModel(meta.Name)

	setupColumns := func(tm *model.TableModel) error {
		for _, col := range meta.Columns {
			mapped, err := MapColumn(meta.Name, col)
			if err != nil {
				return err
			}
			if err := tm.AddColumn(mapped); err != nil {
				return err
			}
		}
		return nil
	}

	setupRelations := func(tm *model.TableModel) error {
		for _, col := range meta.Columns {
			if col.ForeignKeyTable == "" || col.ForeignKeyTable == meta.Name {
				continue
			}
			rel, err := model.NewOneToMany(meta.Name, col.Name, col.ForeignKeyTable, col.ForeignKeyColumn, relCfg)
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

func defaultConstraints(kind generator.Kind, base string, length, precision, scale int, now time.Time) generator.Constraints {
	var c generator.Constraints

	switch kind {
	case generator.KindInteger:
		c.MinInt = 1
		c.MaxInt = defaultIntMax
		if base == "SMALLINT" || base == "INT2" || base == "SMALLSERIAL" {
			c.MaxInt = smallintMax
		}
	case generator.KindFloat:
		c.MaxFloat = defaultFloatMax
		if precision > 0 {
			// DECIMAL(p,s) can hold at most p-s integer digits.
			c.MaxFloat = math.Pow10(precision-scale) - 1
		}
	case generator.KindString:
		c.MaxLength = defaultStringLen
		if length > 0 {
			c.MaxLength = length
		}
	case generator.KindText:
		c.MaxLength = defaultTextLen
	case generator.KindDateTime, generator.KindDate:
		c.MinTime = now.AddDate(-defaultDateTimeAge, 0, 0)
		c.MaxTime = now
	}

	return c
}

// refineByName applies the column-name heuristics: a VARCHAR called
// "email" should hold email addresses, a "salary" integer should stay in
// a plausible band. Heuristics never cross type families.
func refineByName(name string, kind generator.Kind, c generator.Constraints, now time.Time) (generator.Kind, generator.Constraints) {
	lower := strings.ToLower(name)

	switch kind {
	case generator.KindString, generator.KindText:
		switch {
		case strings.Contains(lower, "email"):
			return generator.KindEmail, c
		case strings.Contains(lower, "first_name") || strings.Contains(lower, "firstname"):
			return generator.KindFirstName, c
		case strings.Contains(lower, "last_name") || strings.Contains(lower, "lastname"):
			return generator.KindLastName, c
		case strings.Contains(lower, "phone"):
			return generator.KindPhone, c
		case strings.Contains(lower, "gender"):
			c.Choices = []string{"M", "F"}
			return generator.KindChoice, c
		case strings.Contains(lower, "url") || strings.Contains(lower, "link") || strings.Contains(lower, "website"):
			return generator.KindURL, c
		case strings.Contains(lower, "address"):
			return generator.KindAddress, c
		case strings.Contains(lower, "city"):
			return generator.KindCity, c
		case strings.Contains(lower, "country"):
			return generator.KindCountry, c
		case strings.Contains(lower, "postal") || strings.Contains(lower, "zip"):
			return generator.KindPostalCode, c
		case strings.Contains(lower, "description") || strings.Contains(lower, "comment") || strings.Contains(lower, "content"):
			if c.MaxLength == 0 || c.MaxLength > defaultTextLen {
				c.MaxLength = defaultTextLen
			}
			return generator.KindText, c
		case strings.Contains(lower, "name") && !strings.Contains(lower, "file") && !strings.Contains(lower, "user"):
			return generator.KindName, c
		}

	case generator.KindInteger:
		switch {
		case strings.Contains(lower, "salary"):
			c.MinInt, c.MaxInt = 30_000, 150_000
		case strings.Contains(lower, "age"):
			c.MinInt, c.MaxInt = 18, 100
		}

	case generator.KindDateTime, generator.KindDate:
		switch {
		case strings.Contains(lower, "birth") || strings.Contains(lower, "dob"):
			// Adults between roughly 20 and 60 years old.
			c.MinTime = now.AddDate(-60, 0, 0)
			c.MaxTime = now.AddDate(-20, 0, 0)
		case strings.Contains(lower, "hire") || strings.Contains(lower, "start") || strings.Contains(lower, "joined"):
			c.MinTime = now.AddDate(-10, 0, 0)
			c.MaxTime = now
		}
	}

	return kind, c
}

// splitType breaks "VARCHAR(50)" into base name and arguments, handling
// multi-word types like "DOUBLE PRECISION" and "CHARACTER VARYING".
func splitType(sqlType string) (base string, length, precision, scale int) {
	t := strings.TrimSpace(strings.ToUpper(sqlType))

	args := ""
	if idx := strings.Index(t, "("); idx > 0 {
		if end := strings.Index(t, ")"); end > idx {
			args = t[idx+1 : end]
		}
		t = strings.TrimSpace(t[:idx])
	}

	// Strip trailing qualifiers like "WITH TIME ZONE".
	switch {
	case strings.HasPrefix(t, "TIMESTAMP"):
		t = "TIMESTAMP"
	case strings.HasPrefix(t, "TIME "):
		t = "TIME"
	case strings.HasPrefix(t, "DOUBLE"):
		t = "DOUBLE PRECISION"
	case strings.HasPrefix(t, "CHARACTER VARYING"):
		t = "CHARACTER VARYING"
	}

	if args != "" {
		parts := strings.Split(args, ",")
		var nums []int
		for _, p := range parts {
			n := 0
			fmt.Sscanf(strings.TrimSpace(p), "%d", &n)
			nums = append(nums, n)
		}
		switch t {
		case "DECIMAL", "NUMERIC", "FLOAT", "DOUBLE PRECISION":
			precision = nums[0]
			if len(nums) > 1 {
				scale = nums[1]
			}
		default:
			length = nums[0]
		}
	}

	return t, length, precision, scale
}
