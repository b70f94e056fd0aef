package database

import (
	"context"
	"fmt"
)

// Tables lists the columns the repositories read and write.
var Tables = map[string][]string{
	"users":            {"id", "first_name", "last_name", "email", "password_hash", "created_at", "updated_at"},
	"contacts":         {"id", "user_id", "first_name", "last_name", "company_name", "email", "phone", "address1", "address2", "created_at", "updated_at"},
	"applications":     {"id", "user_id", "contact_name", "position", "company_name", "applied_on", "created_at", "updated_at"},
	"profile_pictures": {"user_id", "picture_url", "updated_at"},
	"calendar_events":  {"id", "owner_id", "todo", "event_date", "created_at", "updated_at"},
}

// VerifySchema fails when any table in Tables is missing a column.
func VerifySchema(ctx context.Context, db DB) error {
	for table, cols := range Tables {
		if err := EnsureTableColumns(ctx, db, table, cols...); err != nil {
			return err
		}
	}
	return nil
}

func EnsureTableColumns(ctx context.Context, db DB, table string, columns ...string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if table == "" {
		return fmt.Errorf("empty table")
	}

	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema='public' AND table_name=$1`,
		table,
	)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", table, err)
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

	if len(existing) == 0 {
		return fmt.Errorf("schema mismatch: missing table %s", table)
	}
	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			return fmt.Errorf("schema mismatch: missing column %s.%s", table, col)
		}
	}
	return nil
}
