package cmd

import (
	"context"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/earned-wage-access/db"
	"github.com/frahmantamala/earned-wage-access/internal"
	"github.com/frahmantamala/earned-wage-access/internal/bankdirectory"
	directoryPostgres "github.com/frahmantamala/earned-wage-access/internal/bankdirectory/postgres"
)

// sqlDriverName maps the configured driver to its database/sql name.
func sqlDriverName(driver string) string {
	if driver == "postgres" {
		return "pgx"
	}
	return "sqlite3"
}

// initDB opens the bank directory database. The same pool backs GORM and
// the sqlx handle used for health checks.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, *gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}

	var (
		dbConn *sqlx.DB
		gormDB *gorm.DB
		err    error
	)

	switch cfg.Driver {
	case "postgres":
		dbConn, err = sqlx.Connect(sqlDriverName(cfg.Driver), cfg.Source)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
		}
		gormDB, err = gorm.Open(postgres.New(postgres.Config{Conn: dbConn.DB}), gormCfg)
	default:
		gormDB, err = gorm.Open(sqlite.Open(cfg.Source), gormCfg)
		if err == nil {
			sqlDB, dbErr := gormDB.DB()
			if dbErr != nil {
				return nil, nil, fmt.Errorf("failed to get sql handle: %w", dbErr)
			}
			dbConn = sqlx.NewDb(sqlDB, sqlDriverName(cfg.Driver))
		}
	}
	if err != nil {
		if dbConn != nil {
			_ = dbConn.Close()
		}
		return nil, nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	if cfg.ConnMaxLifetime > 0 {
		dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, gormDB, nil
}

// migrateUp applies the embedded migrations for the configured driver.
func migrateUp(ctx context.Context, dbConn *sqlx.DB, driver string) error {
	goose.SetBaseFS(db.Migrations)
	goose.SetTableName("schema_migrations")
	if err := goose.SetDialect(sqlDriverName(driver)); err != nil {
		return fmt.Errorf("goose: %w", err)
	}
	if err := goose.UpContext(ctx, dbConn.DB, db.MigrationsDir(driver)); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// newDirectory builds the bank directory selected by config. dbConn is nil
// unless the directory is SQL backed.
func newDirectory(ctx context.Context, cfg *internal.Config, lg *slog.Logger) (bankdirectory.Directory, *sqlx.DB, error) {
	switch cfg.BankDirectory.Driver {
	case internal.DirectoryDriverHTTP:
		client := bankdirectory.NewClient(bankdirectory.ClientConfig{
			BaseURL: cfg.BankDirectory.BaseURL,
			APIKey:  cfg.BankDirectory.APIKey,
			Timeout: cfg.BankDirectory.LookupTimeout,
		}, lg)
		return client, nil, nil

	case internal.DirectoryDriverSQL:
		dbConn, gormDB, err := initDB(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		repo := directoryPostgres.NewDirectoryRepository(gormDB)

		// An SQLite directory usually lives in memory, so it is migrated and
		// filled on every start.
		if cfg.Database.Driver == "sqlite" {
			if err := migrateUp(ctx, dbConn, cfg.Database.Driver); err != nil {
				_ = dbConn.Close()
				return nil, nil, err
			}
			if err := repo.Upsert(ctx, bankdirectory.FixtureAccounts()); err != nil {
				_ = dbConn.Close()
				return nil, nil, fmt.Errorf("failed to seed bank directory: %w", err)
			}
		}
		return repo, dbConn, nil

	default:
		return bankdirectory.NewStatic(bankdirectory.FixtureAccounts(), cfg.BankDirectory.SimulatedLatency, lg), nil, nil
	}
}
