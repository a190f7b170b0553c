package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"dairy-admin/internal/platform/dates"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// defaults razonables para MVP (ajustable luego)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Las fechas de calendario se guardan como texto "YYYY-MM-DD": así el valor
// vuelve exactamente como se escribió, sin corrimientos de zona del driver.

func dateToNull(d *dates.Date) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func dateFromNull(ns sql.NullString) (*dates.Date, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	d, err := dates.Parse(ns.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func dateFromString(s string) (dates.Date, error) {
	return dates.Parse(s)
}
