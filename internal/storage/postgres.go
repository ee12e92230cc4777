package storage

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

// DB is the shared postgres handle behind the match-record sink. It
// stays nil when the server runs csv-only.
var DB *sql.DB

const pingTimeout = 5 * time.Second

// InitPostgres opens the pool and verifies the database is reachable
// before the server starts accepting rooms.
func InitPostgres(ctx context.Context, dsn string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return err
	}
	DB = db
	return nil
}
