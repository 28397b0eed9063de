package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the database selected by configuration: PostgreSQL when a
// DSN is provided, the local SQLite file otherwise. The choice is made once
// here; every repository is written against *gorm.DB and never branches on
// the backend again. TranslateError is enabled so unique-constraint
// violations surface as gorm.ErrDuplicatedKey on both drivers.
func Connect(postgresDSN, sqlitePath string) (*gorm.DB, error) {
	dialector, err := selectDialector(postgresDSN, sqlitePath)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return db, nil
}

func selectDialector(postgresDSN, sqlitePath string) (gorm.Dialector, error) {
	if postgresDSN != "" {
		return postgres.Open(postgresDSN), nil
	}

	if sqlitePath == "" {
		return nil, fmt.Errorf("either a postgres dsn or a sqlite path must be configured")
	}

	return sqlite.Open(sqlitePath), nil
}
