package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/Lumos-Labs-HQ/mockforge/internal/types"
)

// Regex-based DDL extraction: enough to pull table, column type and
// constraint metadata out of CREATE TABLE / CREATE TYPE statements.
// Full dialect parsing is out of scope.

var (
	createTableRegex = regexp.MustCompile(`(?i)CREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?(?:"?(\w+)"?|\x60(\w+)\x60)\s*\(`)
	createTypeRegex  = regexp.MustCompile(`(?i)CREATE\s+TYPE\s+"?(\w+)"?\s+AS\s+ENUM\s*\(\s*([^)]+)\s*\)`)
	enumValueRegex   = regexp.MustCompile(`'([^']+)'`)
	fkConstraintRx   = regexp.MustCompile(`(?i)FOREIGN\s+KEY\s*\(\s*"?(\w+)"?\s*\)\s+REFERENCES\s+"?(\w+)"?\s*\(\s*"?(\w+)"?\s*\)`)
	referencesRegex  = regexp.MustCompile(`(?i)REFERENCES\s+"?(\w+)"?\s*\(\s*"?(\w+)"?\s*\)`)
	defaultRegex     = regexp.MustCompile(`(?i)\bDEFAULT\s+('[^']*'|\([^)]*\)|[^,\s]+)`)
)

// ParseFile parses one .sql file.
func ParseFile(path string) ([]types.SchemaTable, []types.SchemaEnum, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	return ParseSQL(string(content))
}

// ParseDir parses every .sql file in a directory in name order.
func ParseDir(dir string) ([]types.SchemaTable, []types.SchemaEnum, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read schema directory: %w", err)
	}

	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}
	sort.Strings(sqlFiles)

	var allTables []types.SchemaTable
	var allEnums []types.SchemaEnum
	for _, name := range sqlFiles {
		tables, enums, err := ParseFile(filepath.Join(dir, name))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse schema file %s: %w", name, err)
		}
		allTables = append(allTables, tables...)
		allEnums = append(allEnums, enums...)
	}

	applyEnums(allTables, allEnums)
	return allTables, allEnums, nil
}

// ParseSQL extracts table and enum metadata from raw DDL.
func ParseSQL(content string) ([]types.SchemaTable, []types.SchemaEnum, error) {
	var tables []types.SchemaTable
	var enums []types.SchemaEnum

	for _, stmt := range splitStatements(cleanSQL(content)) {
		switch {
		case createTypeRegex.MatchString(stmt):
			if enum, ok := parseCreateType(stmt); ok {
				enums = append(enums, enum)
			}
		case createTableRegex.MatchString(stmt):
			table, err := parseCreateTable(stmt)
			if err != nil {
				return nil, nil, err
			}
			tables = append(tables, table)
		}
	}

	applyEnums(tables, enums)
	return tables, enums, nil
}

func cleanSQL(sql string) string {
	sql = regexp.MustCompile(`--.*|/\*[\s\S]*?\*/`).ReplaceAllString(sql, "")
	return strings.TrimSpace(regexp.MustCompile(`\s+`).ReplaceAllString(sql, " "))
}

func splitStatements(sql string) []string {
	parts := strings.Split(sql, ";")
	result := make([]string, 0, len(parts))
	for _, stmt := range parts {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			result = append(result, stmt)
		}
	}
	return result
}

func parseCreateType(stmt string) (types.SchemaEnum, bool) {
	matches := createTypeRegex.FindStringSubmatch(stmt)
	if len(matches) < 3 {
		return types.SchemaEnum{}, false
	}

	var values []string
	for _, m := range enumValueRegex.FindAllStringSubmatch(matches[2], -1) {
		values = append(values, m[1])
	}
	return types.SchemaEnum{Name: matches[1], Values: values}, true
}

func parseCreateTable(stmt string) (types.SchemaTable, error) {
	matches := createTableRegex.FindStringSubmatch(stmt)
	if len(matches) < 2 {
		return types.SchemaTable{}, fmt.Errorf("could not extract table name from: %s", stmt)
	}
	tableName := matches[1]
	if tableName == "" {
		tableName = matches[2]
	}

	start, end := strings.Index(stmt, "("), strings.LastIndex(stmt, ")")
	if start == -1 || end == -1 || end < start {
		return types.SchemaTable{}, fmt.Errorf("invalid CREATE TABLE syntax for %q", tableName)
	}

	columns, foreignKeys, err := parseColumnDefs(stmt[start+1 : end])
	if err != nil {
		return types.SchemaTable{}, fmt.Errorf("table %q: %w", tableName, err)
	}

	for _, fk := range foreignKeys {
		for i := range columns {
			if columns[i].Name == fk.Column {
				columns[i].ForeignKeyTable = fk.RefTable
				columns[i].ForeignKeyColumn = fk.RefColumn
				break
			}
		}
	}

	return types.SchemaTable{Name: tableName, Columns: columns}, nil
}

func parseColumnDefs(defs string) ([]types.SchemaColumn, []types.ForeignKey, error) {
	var columns []types.SchemaColumn
	var foreignKeys []types.ForeignKey

	for _, def := range splitColumnDefs(defs) {
		if def = strings.TrimSpace(def); def == "" {
			continue
		}

		if isTableConstraint(def) {
			if m := fkConstraintRx.FindStringSubmatch(def); len(m) >= 4 {
				foreignKeys = append(foreignKeys, types.ForeignKey{Column: m[1], RefTable: m[2], RefColumn: m[3]})
			}
			continue
		}

		column, err := parseColumnDef(def)
		if err != nil {
			return nil, nil, err
		}
		columns = append(columns, column)
	}

	return columns, foreignKeys, nil
}

// splitColumnDefs splits on commas outside parentheses, so DECIMAL(10, 2)
// stays in one piece.
func splitColumnDefs(defs string) []string {
	var result []string
	var current strings.Builder
	depth := 0

	for _, ch := range defs {
		switch ch {
		case '(':
			depth++
			current.WriteRune(ch)
		case ')':
			depth--
			current.WriteRune(ch)
		case ',':
			if depth == 0 {
				result = append(result, current.String())
				current.Reset()
			} else {
				current.WriteRune(ch)
			}
		default:
			current.WriteRune(ch)
		}
	}
	if current.Len() > 0 {
		result = append(result, current.String())
	}
	return result
}

func isTableConstraint(def string) bool {
	upper := strings.ToUpper(strings.TrimSpace(def))
	for _, prefix := range []string{"PRIMARY KEY", "FOREIGN KEY", "UNIQUE", "CHECK", "CONSTRAINT", "INDEX", "KEY "} {
		if strings.HasPrefix(upper, prefix) {
			return true
		}
	}
	return false
}

func parseColumnDef(def string) (types.SchemaColumn, error) {
	def = strings.TrimSpace(def)

	spaceIdx := strings.IndexAny(def, " \t")
	if spaceIdx == -1 {
		return types.SchemaColumn{}, fmt.Errorf("invalid column definition: %s", def)
	}

	name := strings.Trim(def[:spaceIdx], "\"`")
	rest := strings.TrimSpace(def[spaceIdx+1:])
	if rest == "" {
		return types.SchemaColumn{}, fmt.Errorf("invalid column definition (no type): %s", def)
	}

	column := types.SchemaColumn{
		Name:     name,
		Nullable: true,
		Type:     extractType(rest),
	}
	parseColumnConstraints(&column, def)
	return column, nil
}

// extractType pulls the declared type off the front of a column
// definition, keeping parenthesized arguments and multi-word names.
func extractType(rest string) string {
	upper := strings.ToUpper(rest)
	for _, multi := range []string{
		"TIMESTAMP WITH TIME ZONE",
		"TIMESTAMP WITHOUT TIME ZONE",
		"DOUBLE PRECISION",
		"CHARACTER VARYING",
	} {
		if strings.HasPrefix(upper, multi) {
			tail := rest[len(multi):]
			if strings.HasPrefix(tail, "(") {
				if end := strings.Index(tail, ")"); end >= 0 {
					return rest[:len(multi)+end+1]
				}
			}
			return rest[:len(multi)]
		}
	}

	depth := 0
	for i, ch := range rest {
		switch {
		case ch == '(':
			depth++
		case ch == ')':
			depth--
			if depth == 0 {
				return rest[:i+1]
			}
		case depth == 0 && (ch == ' ' || ch == '\t'):
			return rest[:i]
		}
	}
	return rest
}

func parseColumnConstraints(column *types.SchemaColumn, def string) {
	upper := strings.ToUpper(def)

	if strings.Contains(upper, "NOT NULL") {
		column.Nullable = false
	}
	if strings.Contains(upper, "PRIMARY KEY") {
		column.IsPrimary = true
		column.Nullable = false
	}
	if strings.Contains(upper, "UNIQUE") {
		column.IsUnique = true
	}
	typeUpper := strings.ToUpper(column.Type)
	if strings.Contains(typeUpper, "SERIAL") ||
		strings.Contains(upper, "AUTOINCREMENT") || strings.Contains(upper, "AUTO_INCREMENT") {
		column.IsAutoIncrement = true
		column.IsPrimary = true
		column.Nullable = false
	}

	if m := referencesRegex.FindStringSubmatch(def); len(m) >= 3 {
		column.ForeignKeyTable = m[1]
		column.ForeignKeyColumn = m[2]
	}
	if m := defaultRegex.FindStringSubmatch(def); len(m) > 1 {
		column.Default = m[1]
	}
}

// applyEnums fills EnumValues on columns whose declared type matches a
// parsed CREATE TYPE ... AS ENUM.
func applyEnums(tables []types.SchemaTable, enums []types.SchemaEnum) {
	if len(enums) == 0 {
		return
	}
	byName := make(map[string][]string, len(enums))
	for _, e := range enums {
		byName[strings.ToLower(e.Name)] = e.Values
	}
	for t := range tables {
		for c := range tables[t].Columns {
			col := &tables[t].Columns[c]
			if values, ok := byName[strings.ToLower(strings.Trim(col.Type, `"`))]; ok {
				col.EnumValues = values
			}
		}
	}
}
