package db

import (
	"log"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies the SQL files in ./migrations against dsn via
// golang-migrate. ConnectAndMigrate calls it on the MIGRATIONS=1 path; the
// AutoMigrate fallback never touches this.
func RunMigrations(dsn string) error {
	log.Println("Running SQL migrations from ./migrations")
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
