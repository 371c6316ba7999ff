package types

// SchemaTable is the raw metadata extracted for one table from SQL DDL.
type SchemaTable struct {
	Name    string
	Columns []SchemaColumn
}

// SchemaColumn carries the facts the mapper needs to pick a generator:
// declared type, nullability, length/precision and foreign key target.
type SchemaColumn struct {
	Name             string
	Type             string
	Nullable         bool
	Default          string
	IsPrimary        bool
	IsUnique         bool
	IsAutoIncrement  bool
	ForeignKeyTable  string
	ForeignKeyColumn string
	Length           int // character length for VARCHAR(n)/CHAR(n), 0 if unspecified
	Precision        int // numeric precision for DECIMAL(p,s), 0 if unspecified
	Scale            int
	EnumValues       []string // populated when the column type is a declared enum
}

type SchemaEnum struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// ForeignKey describes a parsed table-level FK constraint before it is
// folded into the owning column.
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}
