package persistence

import (
	"context"
	"database/sql"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"miniblog/internal/config"
)

type txKey struct{}

type DB struct {
	Config *config.Config

	db *gorm.DB
}

// New wraps an already opened connection.
func New(db *gorm.DB) *DB {
	return &DB{db: db}
}

func (db *DB) Init(_ context.Context) error {
	gormDB, err := gorm.Open(postgres.Open(db.Config.DatabaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return err
	}

	db.db = gormDB

	return nil
}

func (db *DB) HealthCheck(ctx context.Context) error {
	sqlDB, err := db.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (db *DB) Shutdown(_ context.Context) error {
	sqlDB, err := db.db.DB()
	if err != nil {
		return nil
	}
	return sqlDB.Close()
}

func (db *DB) Conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.db.WithContext(ctx)
}

// Transaction nests as a savepoint when ctx already carries a transaction.
func (db *DB) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return db.Conn(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func (db *DB) DB() (*sql.DB, error) {
	return db.db.DB()
}

func (db *DB) EstimatedCount(ctx context.Context, tableName string) (int64, error) {
	var count int64
	return count, db.Conn(ctx).Raw(
		`SELECT reltuples::bigint AS count
				FROM pg_class
				WHERE relname = ?`, tableName,
	).Scan(&count).Error
}
