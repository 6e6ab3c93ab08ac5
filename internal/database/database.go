package database

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/edenniyi/shopstack-be/internal/models"
)

// New opens a bun database handle over SQLite. The caller owns the handle
// and is responsible for closing it on shutdown.
func New(dataSourceName string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if err = sqldb.Ping(); err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if _, err = db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the users and products tables from the model definitions.
func Migrate(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().
		Model((*models.User)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return err
	}

	_, err := db.NewCreateTable().
		Model((*models.Product)(nil)).
		IfNotExists().
		ForeignKey(`("user_id") REFERENCES "users" ("id")`).
		Exec(ctx)
	return err
}
