package mapper

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/Lumos-Labs-HQ/mockforge/internal/generator"
	"github.com/Lumos-Labs-HQ/mockforge/internal/model"
	"github.com/Lumos-Labs-HQ/mockforge/internal/types"
)

func TestMapColumnIntegerFamily(t *testing.T) {
	cases := []string{"INTEGER", "INT", "BIGINT", "SERIAL", "BIGSERIAL", "integer"}
	for _, sqlType := range cases {
		col, err := MapColumn("t", types.SchemaColumn{Name: "id", Type: sqlType})
		if err != nil {
			t.Fatalf("Expected no error for %q, got %v", sqlType, err)
		}
		if col.Kind != generator.KindInteger {
			t.Errorf("Expected integer kind for %q, got %q", sqlType, col.Kind)
		}
	}
}

func TestMapColumnSmallintBounds(t *testing.T) {
	col, err := MapColumn("t", types.SchemaColumn{Name: "rank", Type: "SMALLINT"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if col.Constraints.MaxInt != 32767 {
		t.Errorf("Expected smallint max 32767, got %d", col.Constraints.MaxInt)
	}
}

func TestMapColumnVarcharLength(t *testing.T) {
	col, err := MapColumn("product", types.SchemaColumn{Name: "title", Type: "VARCHAR(50)"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if col.Kind != generator.KindString {
		t.Errorf("Expected string kind, got %q", col.Kind)
	}
	if col.Constraints.MaxLength != 50 {
		t.Errorf("Expected max length 50, got %d", col.Constraints.MaxLength)
	}
}

func TestMapColumnDecimalPrecision(t *testing.T) {
	col, err := MapColumn("product", types.SchemaColumn{Name: "price", Type: "DECIMAL(10, 2)"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if col.Kind != generator.KindFloat {
		t.Errorf("Expected float kind, got %q", col.Kind)
	}
	// 10-2 integer digits: values stay below 10^8.
	if col.Constraints.MaxFloat != 99999999 {
		t.Errorf("Expected max 99999999, got %g", col.Constraints.MaxFloat)
	}
}

func TestMapColumnTextDefaultLength(t *testing.T) {
	col, err := MapColumn("t", types.SchemaColumn{Name: "body", Type: "TEXT"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if col.Kind != generator.KindText {
		t.Errorf("Expected text kind, got %q", col.Kind)
	}
	if col.Constraints.MaxLength != 500 {
		t.Errorf("Expected default text length 500, got %d", col.Constraints.MaxLength)
	}
}

func TestMapColumnMultiWordTypes(t *testing.T) {
	col, err := MapColumn("t", types.SchemaColumn{Name: "score", Type: "DOUBLE PRECISION"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if col.Kind != generator.KindFloat {
		t.Errorf("Expected float kind for DOUBLE PRECISION, got %q", col.Kind)
	}

	col, err = MapColumn("t", types.SchemaColumn{Name: "label", Type: "CHARACTER VARYING(30)"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if col.Constraints.MaxLength != 30 {
		t.Errorf("Expected max length 30, got %d", col.Constraints.MaxLength)
	}

	col, err = MapColumn("t", types.SchemaColumn{Name: "created_at", Type: "TIMESTAMP WITH TIME ZONE"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if col.Kind != generator.KindDateTime {
		t.Errorf("Expected datetime kind, got %q", col.Kind)
	}
}

func TestMapColumnUnsupportedType(t *testing.T) {
	_, err := MapColumn("shape", types.SchemaColumn{Name: "outline", Type: "GEOMETRY"})
	var unsupported *UnsupportedTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Expected UnsupportedTypeError, got %v", err)
	}
	if unsupported.Table != "shape" || unsupported.Column != "outline" {
		t.Errorf("Expected error to name shape.outline, got %s.%s", unsupported.Table, unsupported.Column)
	}
	if !strings.Contains(err.Error(), "GEOMETRY") {
		t.Errorf("Expected error to name the type, got %q", err.Error())
	}
}

func TestMapColumnEnumBecomesChoice(t *testing.T) {
	col, err := MapColumn("t", types.SchemaColumn{
		Name:       "status",
		Type:       "order_status",
		EnumValues: []string{"pending", "shipped", "delivered"},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if col.Kind != generator.KindChoice {
		t.Errorf("Expected choice kind, got %q", col.Kind)
	}
	if len(col.Constraints.Choices) != 3 {
		t.Errorf("Expected 3 choices, got %d", len(col.Constraints.Choices))
	}
}

func TestRefineByNameStringHeuristics(t *testing.T) {
	cases := map[string]generator.Kind{
		"email":         generator.KindEmail,
		"user_email":    generator.KindEmail,
		"first_name":    generator.KindFirstName,
		"last_name":     generator.KindLastName,
		"phone_number":  generator.KindPhone,
		"website_url":   generator.KindURL,
		"home_address":  generator.KindAddress,
		"city":          generator.KindCity,
		"country":       generator.KindCountry,
		"postal_code":   generator.KindPostalCode,
		"zip":           generator.KindPostalCode,
		"description":   generator.KindText,
		"customer_name": generator.KindName,
		"filename":      generator.KindString,
		"username":      generator.KindString,
	}
	for name, want := range cases {
		col, err := MapColumn("t", types.SchemaColumn{Name: name, Type: "VARCHAR(100)"})
		if err != nil {
			t.Fatalf("Expected no error for %q, got %v", name, err)
		}
		if col.Kind != want {
			t.Errorf("Expected kind %q for column %q, got %q", want, name, col.Kind)
		}
	}
}

func TestRefineByNameGender(t *testing.T) {
	col, err := MapColumn("person", types.SchemaColumn{Name: "gender", Type: "VARCHAR(1)"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if col.Kind != generator.KindChoice {
		t.Fatalf("Expected choice kind, got %q", col.Kind)
	}
	if len(col.Constraints.Choices) != 2 || col.Constraints.Choices[0] != "M" {
		t.Errorf("Expected choices M/F, got %v", col.Constraints.Choices)
	}
}

func TestRefineByNameIntegerBands(t *testing.T) {
	col, _ := MapColumn("employee", types.SchemaColumn{Name: "salary", Type: "INTEGER"})
	if col.Constraints.MinInt != 30000 || col.Constraints.MaxInt != 150000 {
		t.Errorf("Expected salary band [30000, 150000], got [%d, %d]", col.Constraints.MinInt, col.Constraints.MaxInt)
	}

	col, _ = MapColumn("employee", types.SchemaColumn{Name: "age", Type: "INTEGER"})
	if col.Constraints.MinInt != 18 || col.Constraints.MaxInt != 100 {
		t.Errorf("Expected age band [18, 100], got [%d, %d]", col.Constraints.MinInt, col.Constraints.MaxInt)
	}
}

func TestRefineByNameBirthDate(t *testing.T) {
	col, err := MapColumn("employee", types.SchemaColumn{Name: "birth_date", Type: "DATE"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	span := col.Constraints.MaxTime.Sub(col.Constraints.MinTime)
	years := span.Hours() / 24 / 365
	if years < 35 || years > 45 {
		t.Errorf("Expected roughly 40-year birth span, got %.1f years", years)
	}
}

func TestMapColumnAtAnchorsTimeBounds(t *testing.T) {
	ref := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	first, err := MapColumnAt("t", types.SchemaColumn{Name: "created_at", Type: "TIMESTAMP"}, ref)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !first.Constraints.MaxTime.Equal(ref) {
		t.Errorf("Expected max time at the reference instant, got %s", first.Constraints.MaxTime)
	}
	if !first.Constraints.MinTime.Equal(ref.AddDate(-10, 0, 0)) {
		t.Errorf("Expected min time a decade before the reference, got %s", first.Constraints.MinTime)
	}

	second, err := MapColumnAt("t", types.SchemaColumn{Name: "created_at", Type: "TIMESTAMP"}, ref)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !second.Constraints.MinTime.Equal(first.Constraints.MinTime) || !second.Constraints.MaxTime.Equal(first.Constraints.MaxTime) {
		t.Error("Expected identical bounds for the same reference instant")
	}
}

func TestMapColumnAtAnchorsHeuristicSpans(t *testing.T) {
	ref := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	col, err := MapColumnAt("employee", types.SchemaColumn{Name: "birth_date", Type: "DATE"}, ref)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !col.Constraints.MinTime.Equal(ref.AddDate(-60, 0, 0)) || !col.Constraints.MaxTime.Equal(ref.AddDate(-20, 0, 0)) {
		t.Errorf("Expected birth span anchored at the reference, got [%s, %s]", col.Constraints.MinTime, col.Constraints.MaxTime)
	}
}

func TestMapTableBuildsReadyModel(t *testing.T) {
	meta := types.SchemaTable{
		Name: "order",
		Columns: []types.SchemaColumn{
			{Name: "id", Type: "SERIAL", IsPrimary: true},
			{Name: "customer_id", Type: "INTEGER", ForeignKeyTable: "customer", ForeignKeyColumn: "id"},
			{Name: "ordered_at", Type: "TIMESTAMP"},
		},
	}

	m, err := MapTable(meta, model.DefaultRelationConfig())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	names := m.ColumnNames()
	if len(names) != 3 || names[0] != "id" || names[1] != "customer_id" {
		t.Errorf("Expected columns in declaration order, got %v", names)
	}

	rels := m.Relations()
	if len(rels) != 1 {
		t.Fatalf("Expected 1 relation, got %d", len(rels))
	}
	if rels[0].ToTable != "customer" || rels[0].ToColumn != "id" {
		t.Errorf("Expected relation to customer.id, got %s.%s", rels[0].ToTable, rels[0].ToColumn)
	}

	pools := map[string]*model.Pool{"customer": model.NewPool(int64(1), int64(2), int64(3))}
	row, _, err := m.GenerateRow(rand.New(rand.NewSource(42)), pools)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	cid := row["customer_id"].(int64)
	if cid < 1 || cid > 3 {
		t.Errorf("Expected customer_id from pool, got %d", cid)
	}
}

func TestSplitType(t *testing.T) {
	base, length, precision, scale := splitType("VARCHAR(50)")
	if base != "VARCHAR" || length != 50 {
		t.Errorf("Expected VARCHAR/50, got %s/%d", base, length)
	}

	base, _, precision, scale = splitType("decimal(8,3)")
	if base != "DECIMAL" || precision != 8 || scale != 3 {
		t.Errorf("Expected DECIMAL/8/3, got %s/%d/%d", base, precision, scale)
	}

	base, _, _, _ = splitType("timestamp with time zone")
	if base != "TIMESTAMP" {
		t.Errorf("Expected TIMESTAMP, got %s", base)
	}
}
