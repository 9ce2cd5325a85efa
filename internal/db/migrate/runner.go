// Package migrate applies the embedded VASP directory migrations with golang-migrate.
package migrate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"

	"trisa-demo/relay/internal/db"
)

// ErrNoChange is returned by Version-changing calls that have nothing to do.
var ErrNoChange = migrate.ErrNoChange

// Direction is "up" or "down".
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection validates s.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case Up, Down:
		return d, nil
	default:
		return "", fmt.Errorf("direction must be up or down, got %q", s)
	}
}

// logger adapts logrus to migrate.Logger.
type logger struct {
	log logrus.FieldLogger
}

func (l logger) Printf(format string, v ...any) {
	l.log.Infof(strings.TrimSuffix(format, "\n"), v...)
}

func (l logger) Verbose() bool { return false }

func open(dsn string, log logrus.FieldLogger) (*migrate.Migrate, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}
	src, err := iofs.New(db.MigrationFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migrate source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if log != nil {
		m.Log = logger{log: log}
	}
	return m, nil
}

// Run applies every migration in direction. Being already at the target is not an error.
func Run(dsn string, direction string, log logrus.FieldLogger) error {
	dir, err := ParseDirection(direction)
	if err != nil {
		return err
	}
	m, err := open(dsn, log)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if dir == Up {
		err = m.Up()
	} else {
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Version returns the applied schema version. dirty reports a failed migration.
func Version(dsn string) (version uint, dirty bool, err error) {
	m, err := open(dsn, nil)
	if err != nil {
		return 0, false, err
	}
	defer func() { _, _ = m.Close() }()
	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}
