package inserter

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/Lumos-Labs-HQ/mockforge/internal/forge"
	"github.com/Lumos-Labs-HQ/mockforge/internal/model"
	sq "github.com/Masterminds/squirrel"
)

// validIdentifier validates SQL identifiers (table/column names) to
// prevent SQL injection through parsed schema content.
var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

const defaultBatchSize = 100

// statement is one built INSERT ready to execute.
type statement struct {
	query string
	args  []any
}

// Inserter writes a generation result into a live database. Statements
// are built with squirrel using the provider's placeholder format.
type Inserter struct {
	db        *sql.DB
	builder   sq.StatementBuilderType
	batchSize int
}

func New(db *sql.DB, provider string) *Inserter {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Question)
	if provider == "postgresql" || provider == "postgres" {
		builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return &Inserter{
		db:        db,
		builder:   builder,
		batchSize: defaultBatchSize,
	}
}

// SetBatchSize overrides the number of rows per INSERT statement.
func (ins *Inserter) SetBatchSize(n int) {
	if n > 0 {
		ins.batchSize = n
	}
}

// InsertResult writes all table rows and junction rows inside one
// transaction: tables first (they are already in dependency order),
// junction rows last since they reference both sides.
func (ins *Inserter) InsertResult(ctx context.Context, result *forge.Result) error {
	tx, err := ins.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, table := range result.Tables {
		stmts, err := ins.tableStatements(table)
		if err != nil {
			tx.Rollback()
			return err
		}
		if err := execAll(ctx, tx, stmts); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert into %s: %w", table.Name, err)
		}
	}

	junctionStmts, err := ins.junctionStatements(result.Junctions)
	if err != nil {
		tx.Rollback()
		return err
	}
	if err := execAll(ctx, tx, junctionStmts); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to insert junction rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func execAll(ctx context.Context, tx *sql.Tx, stmts []statement) error {
	for _, s := range stmts {
		if _, err := tx.ExecContext(ctx, s.query, s.args...); err != nil {
			return err
		}
	}
	return nil
}

// tableStatements builds batched INSERTs for one table's rows, values in
// column declaration order.
func (ins *Inserter) tableStatements(table forge.TableRows) ([]statement, error) {
	if len(table.Rows) == 0 {
		return nil, nil
	}
	if !validIdentifier.MatchString(table.Name) {
		return nil, fmt.Errorf("invalid table name: %s", table.Name)
	}
	for _, col := range table.Columns {
		if !validIdentifier.MatchString(col) {
			return nil, fmt.Errorf("invalid column name: %s", col)
		}
	}

	var stmts []statement
	for start := 0; start < len(table.Rows); start += ins.batchSize {
		end := start + ins.batchSize
		if end > len(table.Rows) {
			end = len(table.Rows)
		}

		builder := ins.builder.Insert(table.Name).Columns(table.Columns...)
		for _, row := range table.Rows[start:end] {
			values := make([]any, len(table.Columns))
			for i, col := range table.Columns {
				values[i] = row[col]
			}
			builder = builder.Values(values...)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to build insert for %s: %w", table.Name, err)
		}
		stmts = append(stmts, statement{query: query, args: args})
	}
	return stmts, nil
}

// junctionStatements groups pairings per junction table, preserving the
// order tables first appeared in, then batches each group.
func (ins *Inserter) junctionStatements(junctions []model.JunctionRow) ([]statement, error) {
	grouped := make(map[string][]model.JunctionRow)
	var order []string
	for _, jr := range junctions {
		if _, seen := grouped[jr.Table]; !seen {
			order = append(order, jr.Table)
		}
		grouped[jr.Table] = append(grouped[jr.Table], jr)
	}

	var stmts []statement
	for _, table := range order {
		rows := grouped[table]
		if !validIdentifier.MatchString(table) {
			return nil, fmt.Errorf("invalid junction table name: %s", table)
		}
		if !validIdentifier.MatchString(rows[0].FromColumn) || !validIdentifier.MatchString(rows[0].ToColumn) {
			return nil, fmt.Errorf("invalid junction column names for table %s", table)
		}

		for start := 0; start < len(rows); start += ins.batchSize {
			end := start + ins.batchSize
			if end > len(rows) {
				end = len(rows)
			}

			builder := ins.builder.Insert(table).Columns(rows[0].FromColumn, rows[0].ToColumn)
			for _, jr := range rows[start:end] {
				builder = builder.Values(jr.FromKey, jr.ToKey)
			}

			query, args, err := builder.ToSql()
			if err != nil {
				return nil, fmt.Errorf("failed to build junction insert for %s: %w", table, err)
			}
			stmts = append(stmts, statement{query: query, args: args})
		}
	}
	return stmts, nil
}
