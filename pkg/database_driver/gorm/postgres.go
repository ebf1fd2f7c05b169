package gorm

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrMissingConnectionInfo is returned when host, port and database are all empty
var ErrMissingConnectionInfo = errors.New("cannot establish the connection: missing host, port and database")

// DB struct
type DB struct {
	Postgres *gorm.DB
}

// DSN builds the libpq connection string
func DSN(host, port, username, pass, dbname string, sslmode bool) string {
	mode := "disable"
	if sslmode {
		mode = "require"
	}
	return fmt.Sprintf("host=%v user=%v password=%v dbname=%v port=%v sslmode=%v connect_timeout=10", host, username, pass, dbname, port, mode)
}

// ConnectToPostgreSQL func
func ConnectToPostgreSQL(host, port, username, pass, dbname string, sslmode bool) (*DB, error) {
	if host == "" && port == "" && dbname == "" {
		return nil, ErrMissingConnectionInfo
	}

	dial := postgres.Open(DSN(host, port, username, pass, dbname, sslmode))
	pg, err := gorm.Open(dial, &gorm.Config{
		DryRun: false,
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		logrus.Error(err)
		return nil, err
	}

	sqlDB, err := pg.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(time.Hour)

	logrus.Infof("Connected to postgres at %s:%s/%s", host, port, dbname)
	return &DB{Postgres: pg}, nil
}

// DisconnectPostgres func
func DisconnectPostgres(db *gorm.DB) {
	sqlDb, err := db.DB()
	if err != nil {
		logrus.Error(err)
		return
	}
	if err := sqlDb.Close(); err != nil {
		logrus.Error(err)
	}
	logrus.Println("Connected with postgres has closed")
}
