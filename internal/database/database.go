// Package database opens the draft database and keeps its schema current.
package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Conceptual-Machines/echo-api/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const connectTimeout = 30 * time.Second

// Dialector maps DB_TYPE to a gorm dialector
func Dialector(dbType, dsn string) (gorm.Dialector, error) {
	switch dbType {
	case "postgres":
		return postgres.Open(dsn), nil
	case "sqlite", "":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("database: unknown db type: %s (allowed: sqlite, postgres)", dbType)
	}
}

// Connect opens the database, giving up after connectTimeout
func Connect(ctx context.Context, dbType, dsn string, debug bool) (*gorm.DB, error) {
	dialector, err := Dialector(dbType, dsn)
	if err != nil {
		return nil, err
	}

	l := gormlogger.Default.LogMode(gormlogger.Silent)
	if debug {
		l = gormlogger.Default.LogMode(gormlogger.Warn)
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	type result struct {
		db  *gorm.DB
		err error
	}
	resC := make(chan result, 1)
	go func() {
		db, err := gorm.Open(dialector, &gorm.Config{Logger: l})
		resC <- result{db: db, err: err}
	}()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("database: timed out opening %s database: %w", dbType, ctx.Err())
		}
		return nil, ctx.Err()
	case res := <-resC:
		if res.err != nil {
			return nil, fmt.Errorf("database: failed to open %s database: %w", dbType, res.err)
		}
		log.Printf("✅ Database connected (type: %s)", dbType)
		return res.db, nil
	}
}

// Migrate creates or updates the drafts table
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.DraftRecord{}); err != nil {
		return fmt.Errorf("database: migration failed: %w", err)
	}
	return nil
}
