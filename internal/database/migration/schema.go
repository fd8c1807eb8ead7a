package migration

import (
	"context"
	"fmt"

	"thinkabout/internal/database"
)

// RequiredColumns lists the columns the repositories read and write.
var RequiredColumns = map[string][]string{
	"users":     {"id", "name", "email", "password_hash", "gender", "date_of_birth", "package", "created_at", "updated_at"},
	"questions": {"id", "question", "choices", "user_id", "created_at", "updated_at"},
	"answers":   {"id", "answer", "user_id", "question_id", "created_at"},
}

// VerifySchema fails when any table in RequiredColumns is missing a column.
func VerifySchema(ctx context.Context, db database.DB) error {
	for table, cols := range RequiredColumns {
		if err := EnsureTableColumns(ctx, db, table, cols...); err != nil {
			return err
		}
	}
	return nil
}

func EnsureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if table == "" {
		return fmt.Errorf("empty table")
	}

	rows, err := db.Query(ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema = 'public' AND table_name = $1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			return fmt.Errorf("schema mismatch: missing column %s.%s", table, col)
		}
	}
	return nil
}
