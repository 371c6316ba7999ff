package schema

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleSchema = `
-- store schema
CREATE TYPE order_status AS ENUM ('pending', 'shipped', 'delivered');

CREATE TABLE customer (
    id SERIAL PRIMARY KEY,
    name VARCHAR(100) NOT NULL,
    email VARCHAR(100) NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE TABLE "order" (
    id SERIAL PRIMARY KEY,
    customer_id INTEGER NOT NULL REFERENCES customer(id),
    status order_status NOT NULL,
    total DECIMAL(10, 2) NOT NULL
);
`

func TestParseSQLExtractsTables(t *testing.T) {
	tables, enums, err := ParseSQL(sampleSchema)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("Expected 2 tables, got %d", len(tables))
	}
	if len(enums) != 1 {
		t.Fatalf("Expected 1 enum, got %d", len(enums))
	}

	customer := tables[0]
	if customer.Name != "customer" {
		t.Errorf("Expected table customer, got %q", customer.Name)
	}
	if len(customer.Columns) != 4 {
		t.Fatalf("Expected 4 columns, got %d", len(customer.Columns))
	}

	id := customer.Columns[0]
	if !id.IsPrimary || !id.IsAutoIncrement || id.Nullable {
		t.Errorf("Expected SERIAL PRIMARY KEY flags, got %+v", id)
	}

	email := customer.Columns[2]
	if !email.IsUnique || email.Nullable {
		t.Errorf("Expected unique non-nullable email, got %+v", email)
	}

	createdAt := customer.Columns[3]
	if createdAt.Default == "" {
		t.Error("Expected DEFAULT clause captured for created_at")
	}
}

func TestParseSQLForeignKeys(t *testing.T) {
	tables, _, err := ParseSQL(sampleSchema)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	order := tables[1]
	if order.Name != "order" {
		t.Fatalf("Expected quoted table name order, got %q", order.Name)
	}
	cid := order.Columns[1]
	if cid.ForeignKeyTable != "customer" || cid.ForeignKeyColumn != "id" {
		t.Errorf("Expected FK customer.id, got %s.%s", cid.ForeignKeyTable, cid.ForeignKeyColumn)
	}
}

func TestParseSQLEnumApplied(t *testing.T) {
	tables, _, err := ParseSQL(sampleSchema)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	status := tables[1].Columns[2]
	if len(status.EnumValues) != 3 {
		t.Fatalf("Expected 3 enum values, got %d", len(status.EnumValues))
	}
	if status.EnumValues[0] != "pending" {
		t.Errorf("Expected first enum value pending, got %q", status.EnumValues[0])
	}
}

func TestParseSQLDecimalStaysOneColumn(t *testing.T) {
	tables, _, err := ParseSQL(`CREATE TABLE p (price DECIMAL(10, 2) NOT NULL);`)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(tables[0].Columns) != 1 {
		t.Fatalf("Expected 1 column, got %d", len(tables[0].Columns))
	}
	if tables[0].Columns[0].Type != "DECIMAL(10, 2)" {
		t.Errorf("Expected type DECIMAL(10, 2), got %q", tables[0].Columns[0].Type)
	}
}

func TestParseSQLTableLevelForeignKey(t *testing.T) {
	sql := `
CREATE TABLE a (id INTEGER PRIMARY KEY);
CREATE TABLE b (
    id INTEGER PRIMARY KEY,
    a_id INTEGER NOT NULL,
    FOREIGN KEY (a_id) REFERENCES a(id)
);`
	tables, _, err := ParseSQL(sql)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	b := tables[1]
	if len(b.Columns) != 2 {
		t.Fatalf("Expected constraint row excluded, got %d columns", len(b.Columns))
	}
	if b.Columns[1].ForeignKeyTable != "a" {
		t.Errorf("Expected FK on a_id, got %q", b.Columns[1].ForeignKeyTable)
	}
}

func TestParseSQLMultiWordTypes(t *testing.T) {
	tables, _, err := ParseSQL(`CREATE TABLE t (
    score DOUBLE PRECISION,
    at TIMESTAMP WITH TIME ZONE NOT NULL,
    label CHARACTER VARYING(30)
);`)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	cols := tables[0].Columns
	if cols[0].Type != "DOUBLE PRECISION" {
		t.Errorf("Expected DOUBLE PRECISION, got %q", cols[0].Type)
	}
	if cols[1].Type != "TIMESTAMP WITH TIME ZONE" {
		t.Errorf("Expected TIMESTAMP WITH TIME ZONE, got %q", cols[1].Type)
	}
	if cols[2].Type != "CHARACTER VARYING(30)" {
		t.Errorf("Expected CHARACTER VARYING(30), got %q", cols[2].Type)
	}
}

func TestParseSQLSerialNameDoesNotTriggerAutoIncrement(t *testing.T) {
	tables, _, err := ParseSQL(`CREATE TABLE device (serial_number VARCHAR(20) NOT NULL);`)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if tables[0].Columns[0].IsAutoIncrement {
		t.Error("Expected serial_number column to stay a plain varchar")
	}
}

func TestParseSQLStripsComments(t *testing.T) {
	sql := `
-- leading comment
CREATE TABLE t (
    id INTEGER PRIMARY KEY, -- inline
    /* block
       comment */
    name VARCHAR(10)
);`
	tables, _, err := ParseSQL(sql)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(tables[0].Columns) != 2 {
		t.Errorf("Expected 2 columns, got %d", len(tables[0].Columns))
	}
}

func TestParseDirReadsInNameOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "02_order.sql", `CREATE TABLE "order" (id SERIAL PRIMARY KEY, customer_id INTEGER REFERENCES customer(id));`)
	writeFile(t, dir, "01_customer.sql", `CREATE TABLE customer (id SERIAL PRIMARY KEY);`)
	writeFile(t, dir, "notes.txt", "not sql")

	tables, _, err := ParseDir(dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("Expected 2 tables, got %d", len(tables))
	}
	if tables[0].Name != "customer" {
		t.Errorf("Expected customer first (file name order), got %q", tables[0].Name)
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Expected no error writing %s, got %v", name, err)
	}
}
