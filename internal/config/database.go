package config

import (
	"fmt"
	"log"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the process database handle, used by the health check
var DB *gorm.DB

// ConnectDatabase opens the configured database
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	// Configure GORM logger based on mode
	gormLogger := logger.Default.LogMode(logger.Error)
	if cfg.IsDev() && cfg.Debug {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := Open(cfg.Database, gormLogger)
	if err != nil {
		return nil, err
	}

	DB = db

	log.Printf("✅ Database connected successfully [%s]", describe(cfg.Database))
	return db, nil
}

// Open opens a gorm handle for the given settings. Duplicate-key errors are
// translated to gorm.ErrDuplicatedKey so repositories can detect unique
// constraint violations portably.
func Open(d DatabaseConfig, gormLogger logger.Interface) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch d.Driver {
	case "sqlite":
		dialector = sqlite.Open(sqliteDSN(d.DSN))
	case "mysql":
		dialector = mysql.Open(mysqlDSN(d))
	case "postgres":
		dialector = postgres.Open(postgresDSN(d))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", d.Driver)
	}

	if gormLogger == nil {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if d.Driver == "sqlite" {
		// sqlite allows a single writer; serialize through one connection
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func sqliteDSN(path string) string {
	return path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

func mysqlDSN(d DatabaseConfig) string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.DBName,
	)
}

func postgresDSN(d DatabaseConfig) string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.DBName,
	)
}

func describe(d DatabaseConfig) string {
	if d.Driver == "sqlite" {
		return "sqlite:" + d.DSN
	}
	return fmt.Sprintf("%s:%s:%s/%s", d.Driver, d.Host, d.Port, d.DBName)
}

// CloseDatabase closes the database connection
func CloseDatabase() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// HealthCheck checks if database is healthy
func HealthCheck() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Ping()
}
